// Package netpacket frames UDP payloads with magic head/tail markers and
// carries the fixed-size control operation exchanged outside the framed
// stream. It is a plain buffer transform with no protocol state.
package netpacket

import (
	"encoding/binary"
	"errors"
)

// Frame markers. Every integer in this package is big-endian.
const (
	HeadMagic uint32 = 0x9D74C714
	TailMagic uint32 = 0xD7A152C8
)

// packetOverhead is the fixed framing cost: head magic (4), cmd (2),
// head length (2), body length (4), tail magic (4).
const packetOverhead = 16

var (
	// ErrTooShort is returned when the buffer ends before the frame does.
	ErrTooShort = errors.New("netpacket: buffer too short")

	// ErrInvalidHeadMagic is returned when a frame does not open with
	// HeadMagic.
	ErrInvalidHeadMagic = errors.New("netpacket: invalid head magic")

	// ErrInvalidTailMagic is returned when the byte range announced by
	// the lengths is not followed by TailMagic.
	ErrInvalidTailMagic = errors.New("netpacket: invalid tail magic")

	// ErrSizeMismatch is returned when a buffer's size contradicts the
	// structure it claims to hold.
	ErrSizeMismatch = errors.New("netpacket: size mismatch")
)

// Packet is one framed unit: a command id plus two opaque sections, the
// metadata head and the payload body.
type Packet struct {
	Cmd  uint16
	Head []byte
	Body []byte
}

// EncodedLen returns the full frame size of the packet.
func (p *Packet) EncodedLen() int {
	return packetOverhead + len(p.Head) + len(p.Body)
}

// Marshal encodes the packet as a single frame.
func (p *Packet) Marshal() []byte {
	buf := make([]byte, p.EncodedLen())
	binary.BigEndian.PutUint32(buf[0:4], HeadMagic)
	binary.BigEndian.PutUint16(buf[4:6], p.Cmd)
	binary.BigEndian.PutUint16(buf[6:8], uint16(len(p.Head)))
	binary.BigEndian.PutUint32(buf[8:12], uint32(len(p.Body)))
	off := 12
	off += copy(buf[off:], p.Head)
	off += copy(buf[off:], p.Body)
	binary.BigEndian.PutUint32(buf[off:], TailMagic)
	return buf
}

// ParsePacket decodes one frame from the front of buf and reports how
// many bytes it consumed, so datagrams carrying several frames can be
// split by repeated calls.
func ParsePacket(buf []byte) (*Packet, int, error) {
	if len(buf) < packetOverhead {
		return nil, 0, ErrTooShort
	}
	if binary.BigEndian.Uint32(buf[0:4]) != HeadMagic {
		return nil, 0, ErrInvalidHeadMagic
	}

	cmd := binary.BigEndian.Uint16(buf[4:6])
	headLen := int(binary.BigEndian.Uint16(buf[6:8]))
	bodyLen := int(binary.BigEndian.Uint32(buf[8:12]))

	total := packetOverhead + headLen + bodyLen
	if len(buf) < total {
		return nil, 0, ErrTooShort
	}
	if binary.BigEndian.Uint32(buf[total-4:total]) != TailMagic {
		return nil, 0, ErrInvalidTailMagic
	}

	p := &Packet{
		Cmd:  cmd,
		Head: append([]byte(nil), buf[12:12+headLen]...),
		Body: append([]byte(nil), buf[12+headLen:12+headLen+bodyLen]...),
	}
	return p, total, nil
}
