package netpacket

import (
	"encoding/binary"
)

// OperationSize is the fixed wire size of a NetOperation.
const OperationSize = 20

// NetOperation is the 20-byte control header exchanged during session
// setup: five big-endian uint32 words.
type NetOperation struct {
	Head  uint32
	Conv  uint32
	Token uint32
	Data  uint32
	Tail  uint32
}

// Marshal encodes the operation as its fixed 20-byte form.
func (op NetOperation) Marshal() []byte {
	buf := make([]byte, OperationSize)
	binary.BigEndian.PutUint32(buf[0:4], op.Head)
	binary.BigEndian.PutUint32(buf[4:8], op.Conv)
	binary.BigEndian.PutUint32(buf[8:12], op.Token)
	binary.BigEndian.PutUint32(buf[12:16], op.Data)
	binary.BigEndian.PutUint32(buf[16:20], op.Tail)
	return buf
}

// ParseNetOperation decodes a control operation. The buffer must be
// exactly OperationSize bytes.
func ParseNetOperation(buf []byte) (NetOperation, error) {
	if len(buf) != OperationSize {
		return NetOperation{}, ErrSizeMismatch
	}
	return NetOperation{
		Head:  binary.BigEndian.Uint32(buf[0:4]),
		Conv:  binary.BigEndian.Uint32(buf[4:8]),
		Token: binary.BigEndian.Uint32(buf[8:12]),
		Data:  binary.BigEndian.Uint32(buf[12:16]),
		Tail:  binary.BigEndian.Uint32(buf[16:20]),
	}, nil
}
