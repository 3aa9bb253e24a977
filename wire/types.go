package wire

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint  WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64 WireType = 1 // fixed64, sfixed64, double
	WireBytes   WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireFixed32 WireType = 5 // fixed32, sfixed32, float
)

// String returns the canonical name of the wire type.
func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "length-delimited"
	case WireFixed32:
		return "fixed32"
	default:
		return "invalid"
	}
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}

// FieldHeader is a decoded field tag. Headers are transient: they are
// produced by DecodeTag, consumed to dispatch on the field, and dropped.
type FieldHeader struct {
	FieldNumber FieldNumber
	WireType    WireType
}

// RawField represents a raw (undecoded) protobuf field, typically an
// unknown field retained for forward compatibility.
type RawField struct {
	FieldNumber FieldNumber
	WireType    WireType
	Data        []byte // raw value bytes, tag not included
}
