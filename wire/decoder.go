package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Value decoders read one bare value from the source; field decoders
// (below) read a tag first and scope the value to a field number.

// ValueDecoder decodes one bare value of type T from a bounded buffer.
// Packed and map decoding are parameterized over it.
type ValueDecoder[T any] func(r *bytes.Reader) (T, error)

// DECODER FUNCTIONS

// DecodeUint32 decodes a varint as uint32.
func DecodeUint32(r io.Reader) (uint32, error) {
	v, err := DecodeVarint(r)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// DecodeInt32 decodes a varint as int32.
func DecodeInt32(r io.Reader) (int32, error) {
	v, err := DecodeVarint(r)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// DecodeInt64 decodes a varint as int64.
func DecodeInt64(r io.Reader) (int64, error) {
	v, err := DecodeVarint(r)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// DecodeUint64 decodes a varint as uint64.
func DecodeUint64(r io.Reader) (uint64, error) {
	return DecodeVarint(r)
}

// DecodeSint32 decodes a zigzag varint as int32.
func DecodeSint32(r io.Reader) (int32, error) {
	v, err := DecodeVarint(r)
	if err != nil {
		return 0, err
	}
	return DecodeZigZag32(v), nil
}

// DecodeSint64 decodes a zigzag varint as int64.
func DecodeSint64(r io.Reader) (int64, error) {
	v, err := DecodeVarint(r)
	if err != nil {
		return 0, err
	}
	return DecodeZigZag64(v), nil
}

// DecodeBool decodes a varint as bool; any nonzero value is true.
func DecodeBool(r io.Reader) (bool, error) {
	v, err := DecodeVarint(r)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// DecodeBytes decodes a length-delimited byte payload.
func DecodeBytes(r io.Reader) ([]byte, error) {
	length, err := DecodeVarint(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if err := readFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeString decodes a length-delimited string and validates UTF-8.
func DecodeString(r io.Reader) (string, error) {
	buf, err := DecodeBytes(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}

// DecodeFloat decodes a little-endian fixed32 as float32.
func DecodeFloat(r io.Reader) (float32, error) {
	v, err := DecodeFixed32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// DecodeDouble decodes a little-endian fixed64 as float64.
func DecodeDouble(r io.Reader) (float64, error) {
	v, err := DecodeFixed64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// DecodeFixed32 decodes a little-endian 32-bit fixed-width value.
func DecodeFixed32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// DecodeFixed64 decodes a little-endian 64-bit fixed-width value.
func DecodeFixed64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// DecodeSfixed32 decodes a little-endian 32-bit fixed-width value as int32.
func DecodeSfixed32(r io.Reader) (int32, error) {
	v, err := DecodeFixed32(r)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// DecodeSfixed64 decodes a little-endian 64-bit fixed-width value as int64.
func DecodeSfixed64(r io.Reader) (int64, error) {
	v, err := DecodeFixed64(r)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// DecodeEnum decodes a varint and maps it through the caller-supplied
// conversion. Numbers the conversion does not recognize fail as
// malformed input.
func DecodeEnum[E any](r io.Reader, convert func(int32) (E, bool)) (E, error) {
	var zero E
	n, err := DecodeInt32(r)
	if err != nil {
		return zero, err
	}
	e, ok := convert(n)
	if !ok {
		return zero, malformedf("invalid enum value: %d", n)
	}
	return e, nil
}

// DecodeMessageInto decodes a length-delimited embedded message into m.
// The payload is read into its own bounded buffer first, so the nested
// decode can never consume past the declared length.
func DecodeMessageInto(r io.Reader, m Message) error {
	buf, err := DecodeBytes(r)
	if err != nil {
		return err
	}
	return Unmarshal(buf, m)
}

// DecodePacked decodes a packed repeated field: a length varint followed
// by that many bytes of concatenated bare values.
func DecodePacked[T any](r io.Reader, item ValueDecoder[T]) ([]T, error) {
	buf, err := DecodeBytes(r)
	if err != nil {
		return nil, err
	}

	var result []T
	br := bytes.NewReader(buf)
	for br.Len() > 0 {
		v, err := item(br)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// DecodeMapEntry decodes one length-delimited map entry, for use inside
// a tag-dispatch decode loop that has already matched the map field's
// tag. The entry must hold the key at field 1 followed by the value at
// field 2; anything else is malformed.
func DecodeMapEntry[K comparable, V any](r io.Reader, keyDec ValueDecoder[K], valueDec ValueDecoder[V]) (K, V, error) {
	var zeroK K
	var zeroV V

	buf, err := DecodeBytes(r)
	if err != nil {
		return zeroK, zeroV, err
	}
	entry := bytes.NewReader(buf)

	keyHdr, err := DecodeTag(entry)
	if err != nil {
		return zeroK, zeroV, err
	}
	if keyHdr == nil {
		return zeroK, zeroV, malformedf("missing key in map entry")
	}
	if keyHdr.FieldNumber != 1 {
		return zeroK, zeroV, malformedf("expected field number 1 for key in map entry, got %d", keyHdr.FieldNumber)
	}
	key, err := keyDec(entry)
	if err != nil {
		return zeroK, zeroV, err
	}

	valueHdr, err := DecodeTag(entry)
	if err != nil {
		return zeroK, zeroV, err
	}
	if valueHdr == nil {
		return zeroK, zeroV, malformedf("missing value in map entry")
	}
	if valueHdr.FieldNumber != 2 {
		return zeroK, zeroV, malformedf("expected field number 2 for value in map entry, got %d", valueHdr.FieldNumber)
	}
	value, err := valueDec(entry)
	if err != nil {
		return zeroK, zeroV, err
	}

	return key, value, nil
}

// DecodeMap decodes map entries until the source is exhausted. Every tag
// read must be length-delimited; the entries' field numbers are not
// checked, so the source should contain only this map field.
func DecodeMap[K comparable, V any](r io.Reader, keyDec ValueDecoder[K], valueDec ValueDecoder[V]) (map[K]V, error) {
	result := make(map[K]V)

	for {
		hdr, err := DecodeTag(r)
		if err != nil {
			return nil, err
		}
		if hdr == nil {
			return result, nil
		}
		if err := expectWireType(hdr, WireBytes); err != nil {
			return nil, err
		}

		key, value, err := DecodeMapEntry(r, keyDec, valueDec)
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
}

// FIELD-SCOPED DECODERS
//
// Each Decode*Field reads the next tag and, when its field number
// matches, decodes the value; a wire type mismatch on a matching field
// is a WireTypeMismatchError. When the field number does not match, the
// field is reported absent with ok=false — note that the tag has already
// been consumed, so these decoders only suit sequential scans that probe
// fields in the order they appear on the wire. A clean end of message
// also reports ok=false.

// decodeFieldTag reads the next tag for a field-scoped decoder. ok is
// false at end of message or when the field number doesn't match.
func decodeFieldTag(fieldNumber FieldNumber, r io.Reader, want WireType) (bool, error) {
	hdr, err := DecodeTag(r)
	if err != nil {
		return false, err
	}
	if hdr == nil || hdr.FieldNumber != fieldNumber {
		return false, nil
	}
	if err := expectWireType(hdr, want); err != nil {
		return false, err
	}
	return true, nil
}

// DecodeUint32Field decodes a uint32 field if the next tag carries the
// given field number.
func DecodeUint32Field(fieldNumber FieldNumber, r io.Reader) (uint32, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeUint32(r)
	return v, err == nil, err
}

// DecodeInt32Field decodes an int32 field if the next tag carries the
// given field number.
func DecodeInt32Field(fieldNumber FieldNumber, r io.Reader) (int32, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeInt32(r)
	return v, err == nil, err
}

// DecodeInt64Field decodes an int64 field if the next tag carries the
// given field number.
func DecodeInt64Field(fieldNumber FieldNumber, r io.Reader) (int64, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeInt64(r)
	return v, err == nil, err
}

// DecodeUint64Field decodes a uint64 field if the next tag carries the
// given field number.
func DecodeUint64Field(fieldNumber FieldNumber, r io.Reader) (uint64, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeUint64(r)
	return v, err == nil, err
}

// DecodeSint32Field decodes a zigzag int32 field if the next tag carries
// the given field number.
func DecodeSint32Field(fieldNumber FieldNumber, r io.Reader) (int32, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeSint32(r)
	return v, err == nil, err
}

// DecodeSint64Field decodes a zigzag int64 field if the next tag carries
// the given field number.
func DecodeSint64Field(fieldNumber FieldNumber, r io.Reader) (int64, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeSint64(r)
	return v, err == nil, err
}

// DecodeBoolField decodes a bool field if the next tag carries the given
// field number.
func DecodeBoolField(fieldNumber FieldNumber, r io.Reader) (bool, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return false, false, err
	}
	v, err := DecodeBool(r)
	return v, err == nil, err
}

// DecodeStringField decodes a string field if the next tag carries the
// given field number.
func DecodeStringField(fieldNumber FieldNumber, r io.Reader) (string, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireBytes)
	if !ok {
		return "", false, err
	}
	v, err := DecodeString(r)
	return v, err == nil, err
}

// DecodeBytesField decodes a bytes field if the next tag carries the
// given field number.
func DecodeBytesField(fieldNumber FieldNumber, r io.Reader) ([]byte, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireBytes)
	if !ok {
		return nil, false, err
	}
	v, err := DecodeBytes(r)
	return v, err == nil, err
}

// DecodeFloatField decodes a float32 field if the next tag carries the
// given field number.
func DecodeFloatField(fieldNumber FieldNumber, r io.Reader) (float32, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireFixed32)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeFloat(r)
	return v, err == nil, err
}

// DecodeDoubleField decodes a float64 field if the next tag carries the
// given field number.
func DecodeDoubleField(fieldNumber FieldNumber, r io.Reader) (float64, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireFixed64)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeDouble(r)
	return v, err == nil, err
}

// DecodeFixed32Field decodes a fixed32 field if the next tag carries the
// given field number.
func DecodeFixed32Field(fieldNumber FieldNumber, r io.Reader) (uint32, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireFixed32)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeFixed32(r)
	return v, err == nil, err
}

// DecodeFixed64Field decodes a fixed64 field if the next tag carries the
// given field number.
func DecodeFixed64Field(fieldNumber FieldNumber, r io.Reader) (uint64, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireFixed64)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeFixed64(r)
	return v, err == nil, err
}

// DecodeSfixed32Field decodes an sfixed32 field if the next tag carries
// the given field number.
func DecodeSfixed32Field(fieldNumber FieldNumber, r io.Reader) (int32, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireFixed32)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeSfixed32(r)
	return v, err == nil, err
}

// DecodeSfixed64Field decodes an sfixed64 field if the next tag carries
// the given field number.
func DecodeSfixed64Field(fieldNumber FieldNumber, r io.Reader) (int64, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireFixed64)
	if !ok {
		return 0, false, err
	}
	v, err := DecodeSfixed64(r)
	return v, err == nil, err
}

// DecodeEnumField decodes an enum field through the caller-supplied
// conversion if the next tag carries the given field number.
func DecodeEnumField[E any](fieldNumber FieldNumber, r io.Reader, convert func(int32) (E, bool)) (E, bool, error) {
	var zero E
	ok, err := decodeFieldTag(fieldNumber, r, WireVarint)
	if !ok {
		return zero, false, err
	}
	v, err := DecodeEnum(r, convert)
	return v, err == nil, err
}

// DecodeMessageField decodes an embedded message field into m if the
// next tag carries the given field number.
func DecodeMessageField(fieldNumber FieldNumber, r io.Reader, m Message) (bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireBytes)
	if !ok {
		return false, err
	}
	if err := DecodeMessageInto(r, m); err != nil {
		return false, err
	}
	return true, nil
}

// DecodePackedField decodes a packed repeated field if the next tag
// carries the given field number.
func DecodePackedField[T any](fieldNumber FieldNumber, r io.Reader, item ValueDecoder[T]) ([]T, bool, error) {
	ok, err := decodeFieldTag(fieldNumber, r, WireBytes)
	if !ok {
		return nil, false, err
	}
	v, err := DecodePacked(r, item)
	return v, err == nil, err
}

// DecodeMapField collects consecutive entries of a map field from a
// seekable source. Entries of the given field number are consumed until
// a tag for a different field appears; that tag is rewound so the caller
// can continue decoding the enclosing message. This is the only decode
// path that needs random access; DecodeMap covers pure-forward sources.
func DecodeMapField[K comparable, V any](fieldNumber FieldNumber, rs io.ReadSeeker, keyDec ValueDecoder[K], valueDec ValueDecoder[V]) (map[K]V, error) {
	result := make(map[K]V)

	for {
		start, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}

		hdr, err := DecodeTag(rs)
		if err != nil {
			return nil, err
		}
		if hdr == nil {
			return result, nil
		}
		if hdr.FieldNumber != fieldNumber {
			if _, err := rs.Seek(start, io.SeekStart); err != nil {
				return nil, err
			}
			return result, nil
		}
		if err := expectWireType(hdr, WireBytes); err != nil {
			return nil, err
		}

		key, value, err := DecodeMapEntry(rs, keyDec, valueDec)
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
}
