package wire

import (
	"bytes"
	"io"
)

// Message is the contract every concrete message type implements: it can
// serialize itself to a byte sink, report its encoded size, and rebuild
// itself from a byte source.
//
// A DecodeFromReader implementation is expected to loop on DecodeTag,
// dispatch on the field number to the matching Decode* call, skip or
// retain fields it does not know (SkipField, ReadRawField), and stop
// when DecodeTag reports no more fields. Unknown fields are never an
// error.
type Message interface {
	// EncodeToWriter serializes the message to w.
	EncodeToWriter(w io.Writer) error

	// EncodedLen reports the exact size EncodeToWriter will produce,
	// without materializing bytes.
	EncodedLen() int

	// DecodeFromReader reconstructs the message from r, replacing the
	// receiver's fields.
	DecodeFromReader(r io.Reader) error
}

// Marshal serializes m into a freshly allocated buffer sized by
// EncodedLen.
func Marshal(m Message) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, m.EncodedLen()))
	if err := m.EncodeToWriter(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into m. The slice is wrapped as a bounded
// source, so m's decoder can never read past it.
func Unmarshal(data []byte, m Message) error {
	return m.DecodeFromReader(bytes.NewReader(data))
}

// SkipField consumes the value of a field with the given wire type
// without decoding it.
func SkipField(r io.Reader, wireType WireType) error {
	switch wireType {
	case WireVarint:
		return SkipVarint(r)
	case WireFixed64:
		var buf [8]byte
		return readFull(r, buf[:])
	case WireBytes:
		length, err := DecodeVarint(r)
		if err != nil {
			return err
		}
		if err := skipExactly(r, length); err != nil {
			return err
		}
		return nil
	case WireFixed32:
		var buf [4]byte
		return readFull(r, buf[:])
	default:
		return &InvalidWireTypeError{Code: uint8(wireType)}
	}
}

// ReadRawField reads the value announced by hdr without interpreting it,
// preserving the bytes for unknown-field retention.
func ReadRawField(r io.Reader, hdr *FieldHeader) (*RawField, error) {
	var data []byte

	switch hdr.WireType {
	case WireVarint:
		var buf bytes.Buffer
		if _, err := DecodeVarint(io.TeeReader(r, &buf)); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	case WireFixed64:
		data = make([]byte, 8)
		if err := readFull(r, data); err != nil {
			return nil, err
		}
	case WireBytes:
		length, err := DecodeVarint(r)
		if err != nil {
			return nil, err
		}
		data = make([]byte, length)
		if err := readFull(r, data); err != nil {
			return nil, err
		}
	case WireFixed32:
		data = make([]byte, 4)
		if err := readFull(r, data); err != nil {
			return nil, err
		}
	default:
		return nil, &InvalidWireTypeError{Code: uint8(hdr.WireType)}
	}

	return &RawField{
		FieldNumber: hdr.FieldNumber,
		WireType:    hdr.WireType,
		Data:        data,
	}, nil
}

// skipExactly discards n bytes from r, failing with ErrUnexpectedEOF on
// a short source.
func skipExactly(r io.Reader, n uint64) error {
	if _, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
		if err == io.EOF {
			return ErrUnexpectedEOF
		}
		return err
	}
	return nil
}
