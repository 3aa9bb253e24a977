package wire

// Field size functions. Each mirrors the matching encoder exactly: a
// zero value contributes no bytes, anything else contributes tag plus
// value. EncodedLen implementations sum these per field.

// FieldSizer reports the encoded size of one tagged field of type T. The
// repeated and map size functions are parameterized over it.
type FieldSizer[T any] func(fieldNumber FieldNumber, v T) int

// TagSize returns the encoded size of the field's tag varint.
func TagSize(fieldNumber FieldNumber) int {
	return VarintSize(uint64(MakeTag(fieldNumber, WireVarint)))
}

// Uint32Size returns the encoded size of a uint32 field.
func Uint32Size(fieldNumber FieldNumber, v uint32) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + VarintSize(uint64(v))
}

// Int32Size returns the encoded size of an int32 field.
func Int32Size(fieldNumber FieldNumber, v int32) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + VarintSize(uint64(int64(v)))
}

// Int64Size returns the encoded size of an int64 field.
func Int64Size(fieldNumber FieldNumber, v int64) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + VarintSize(uint64(v))
}

// Uint64Size returns the encoded size of a uint64 field.
func Uint64Size(fieldNumber FieldNumber, v uint64) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + VarintSize(v)
}

// Sint32Size returns the encoded size of a zigzag int32 field.
func Sint32Size(fieldNumber FieldNumber, v int32) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + VarintSize(EncodeZigZag32(v))
}

// Sint64Size returns the encoded size of a zigzag int64 field.
func Sint64Size(fieldNumber FieldNumber, v int64) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + ZigZagSize(v)
}

// BoolSize returns the encoded size of a bool field.
func BoolSize(fieldNumber FieldNumber, v bool) int {
	if !v {
		return 0
	}
	return TagSize(fieldNumber) + 1
}

// StringSize returns the encoded size of a string field.
func StringSize(fieldNumber FieldNumber, v string) int {
	if v == "" {
		return 0
	}
	return TagSize(fieldNumber) + VarintSize(uint64(len(v))) + len(v)
}

// BytesSize returns the encoded size of a bytes field.
func BytesSize(fieldNumber FieldNumber, v []byte) int {
	if len(v) == 0 {
		return 0
	}
	return TagSize(fieldNumber) + VarintSize(uint64(len(v))) + len(v)
}

// FloatSize returns the encoded size of a float32 field.
func FloatSize(fieldNumber FieldNumber, v float32) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + 4
}

// DoubleSize returns the encoded size of a float64 field.
func DoubleSize(fieldNumber FieldNumber, v float64) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + 8
}

// Fixed32Size returns the encoded size of a fixed32 field.
func Fixed32Size(fieldNumber FieldNumber, v uint32) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + 4
}

// Fixed64Size returns the encoded size of a fixed64 field.
func Fixed64Size(fieldNumber FieldNumber, v uint64) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + 8
}

// Sfixed32Size returns the encoded size of an sfixed32 field.
func Sfixed32Size(fieldNumber FieldNumber, v int32) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + 4
}

// Sfixed64Size returns the encoded size of an sfixed64 field.
func Sfixed64Size(fieldNumber FieldNumber, v int64) int {
	if v == 0 {
		return 0
	}
	return TagSize(fieldNumber) + 8
}

// EnumSize returns the encoded size of an enum field.
func EnumSize(fieldNumber FieldNumber, v int32) int {
	return Int32Size(fieldNumber, v)
}

// MessageSize returns the encoded size of an embedded message field.
func MessageSize(fieldNumber FieldNumber, m Message) int {
	n := m.EncodedLen()
	return TagSize(fieldNumber) + VarintSize(uint64(n)) + n
}

// RepeatedSize returns the encoded size of an unpacked repeated field.
func RepeatedSize[T any](fieldNumber FieldNumber, values []T, size FieldSizer[T]) int {
	total := 0
	for _, v := range values {
		total += size(fieldNumber, v)
	}
	return total
}

// PackedSize returns the encoded size of a packed repeated field, where
// size reports the bare encoding of one element.
func PackedSize[T any](fieldNumber FieldNumber, values []T, size func(v T) int) int {
	if len(values) == 0 {
		return 0
	}
	content := 0
	for _, v := range values {
		content += size(v)
	}
	return TagSize(fieldNumber) + VarintSize(uint64(content)) + content
}

// MapSize returns the encoded size of a map field, where keySize and
// valueSize report the tagged entry sub-fields at numbers 1 and 2.
func MapSize[K comparable, V any](fieldNumber FieldNumber, m map[K]V, keySize FieldSizer[K], valueSize FieldSizer[V]) int {
	total := 0
	for k, v := range m {
		entry := keySize(1, k) + valueSize(2, v)
		total += TagSize(fieldNumber) + VarintSize(uint64(entry)) + entry
	}
	return total
}
