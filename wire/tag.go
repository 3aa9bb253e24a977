package wire

import (
	"io"
)

// EncodeTag encodes a (field number, wire type) pair as a single varint.
func EncodeTag(w io.Writer, fieldNumber FieldNumber, wireType WireType) error {
	return EncodeVarint(w, uint64(MakeTag(fieldNumber, wireType)))
}

// DecodeTag decodes the next field tag from the source. It returns
// (nil, nil) on a clean end of message: either the source is exhausted
// before any tag byte is read, or the tag varint is exactly 0. A nonzero
// tag with field number 0 is ErrInvalidTag; a wire type code outside
// {0, 1, 2, 5} is an InvalidWireTypeError.
func DecodeTag(r io.Reader) (*FieldHeader, error) {
	first, err := readByte(r)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	raw := uint64(first & 0x7F)
	if first&0x80 != 0 {
		var shift uint = 7
		for i := 1; ; i++ {
			if i == maxVarintLen {
				return nil, ErrInvalidVarint
			}
			b, err := readByte(r)
			if err != nil {
				if err == io.EOF {
					return nil, ErrUnexpectedEOF
				}
				return nil, err
			}
			raw |= uint64(b&0x7F) << shift
			if b&0x80 == 0 {
				break
			}
			shift += 7
		}
	}

	if raw == 0 {
		return nil, nil
	}

	fieldNumber, wireType := ParseTag(Tag(raw))
	if fieldNumber == 0 {
		return nil, ErrInvalidTag
	}

	switch wireType {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
	default:
		return nil, &InvalidWireTypeError{Code: uint8(raw & 0x7)}
	}

	return &FieldHeader{FieldNumber: fieldNumber, WireType: wireType}, nil
}

// expectWireType checks a decoded header against the wire type a typed
// field decoder requires.
func expectWireType(hdr *FieldHeader, want WireType) error {
	if hdr.WireType != want {
		return &WireTypeMismatchError{Expected: want, Got: hdr.WireType}
	}
	return nil
}
