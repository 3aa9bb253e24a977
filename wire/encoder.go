package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Field encoders. Every function takes the destination first, then the
// field number, then the value, and writes nothing when the value equals
// the type's zero value (proto3 implicit presence).

// FieldEncoder encodes one tagged field of type T into a byte sink. It
// is the capability the repeated and map encoders are parameterized
// over; each Encode* function in this file satisfies it.
type FieldEncoder[T any] func(w io.Writer, fieldNumber FieldNumber, v T) error

// ValueEncoder encodes one bare value of type T (no tag, no length) into
// a byte sink. Packed encoding builds on it.
type ValueEncoder[T any] func(w io.Writer, v T) error

// ENCODER FUNCTIONS

// EncodeUint32 encodes a uint32 field as a varint.
func EncodeUint32(w io.Writer, fieldNumber FieldNumber, v uint32) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireVarint); err != nil {
		return err
	}
	return EncodeVarint(w, uint64(v))
}

// EncodeInt32 encodes an int32 field as a varint. Negative values are
// sign-extended to 10 bytes; use EncodeSint32 for sign-heavy fields.
func EncodeInt32(w io.Writer, fieldNumber FieldNumber, v int32) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireVarint); err != nil {
		return err
	}
	return EncodeVarint(w, uint64(int64(v)))
}

// EncodeInt64 encodes an int64 field as a varint.
func EncodeInt64(w io.Writer, fieldNumber FieldNumber, v int64) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireVarint); err != nil {
		return err
	}
	return EncodeVarint(w, uint64(v))
}

// EncodeUint64 encodes a uint64 field as a varint.
func EncodeUint64(w io.Writer, fieldNumber FieldNumber, v uint64) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireVarint); err != nil {
		return err
	}
	return EncodeVarint(w, v)
}

// EncodeSint32 encodes an int32 field as a zigzag varint.
func EncodeSint32(w io.Writer, fieldNumber FieldNumber, v int32) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireVarint); err != nil {
		return err
	}
	return EncodeVarint(w, EncodeZigZag32(v))
}

// EncodeSint64 encodes an int64 field as a zigzag varint.
func EncodeSint64(w io.Writer, fieldNumber FieldNumber, v int64) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireVarint); err != nil {
		return err
	}
	return EncodeVarint(w, EncodeZigZag64(v))
}

// EncodeBool encodes a bool field as a varint. False is omitted.
func EncodeBool(w io.Writer, fieldNumber FieldNumber, v bool) error {
	if !v {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireVarint); err != nil {
		return err
	}
	return EncodeVarint(w, 1)
}

// EncodeString encodes a string field as length-delimited bytes.
func EncodeString(w io.Writer, fieldNumber FieldNumber, v string) error {
	if v == "" {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireBytes); err != nil {
		return err
	}
	if err := EncodeVarint(w, uint64(len(v))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

// EncodeBytes encodes a bytes field as length-delimited bytes.
func EncodeBytes(w io.Writer, fieldNumber FieldNumber, v []byte) error {
	if len(v) == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireBytes); err != nil {
		return err
	}
	if err := EncodeVarint(w, uint64(len(v))); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}

// EncodeFloat encodes a float32 field as little-endian fixed32.
func EncodeFloat(w io.Writer, fieldNumber FieldNumber, v float32) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireFixed32); err != nil {
		return err
	}
	return writeFixed32(w, math.Float32bits(v))
}

// EncodeDouble encodes a float64 field as little-endian fixed64.
func EncodeDouble(w io.Writer, fieldNumber FieldNumber, v float64) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireFixed64); err != nil {
		return err
	}
	return writeFixed64(w, math.Float64bits(v))
}

// EncodeFixed32 encodes a uint32 field as little-endian fixed32.
func EncodeFixed32(w io.Writer, fieldNumber FieldNumber, v uint32) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireFixed32); err != nil {
		return err
	}
	return writeFixed32(w, v)
}

// EncodeFixed64 encodes a uint64 field as little-endian fixed64.
func EncodeFixed64(w io.Writer, fieldNumber FieldNumber, v uint64) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireFixed64); err != nil {
		return err
	}
	return writeFixed64(w, v)
}

// EncodeSfixed32 encodes an int32 field as little-endian fixed32.
func EncodeSfixed32(w io.Writer, fieldNumber FieldNumber, v int32) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireFixed32); err != nil {
		return err
	}
	return writeFixed32(w, uint32(v))
}

// EncodeSfixed64 encodes an int64 field as little-endian fixed64.
func EncodeSfixed64(w io.Writer, fieldNumber FieldNumber, v int64) error {
	if v == 0 {
		return nil
	}
	if err := EncodeTag(w, fieldNumber, WireFixed64); err != nil {
		return err
	}
	return writeFixed64(w, uint64(v))
}

// EncodeEnum encodes an enum field from its numeric value.
func EncodeEnum(w io.Writer, fieldNumber FieldNumber, v int32) error {
	return EncodeInt32(w, fieldNumber, v)
}

// EncodeMessage encodes an embedded message field: tag, length varint,
// then the message's own encoding. Unlike scalars, a present message is
// always written, even when its encoding is empty.
func EncodeMessage(w io.Writer, fieldNumber FieldNumber, m Message) error {
	if err := EncodeTag(w, fieldNumber, WireBytes); err != nil {
		return err
	}
	if err := EncodeVarint(w, uint64(m.EncodedLen())); err != nil {
		return err
	}
	return m.EncodeToWriter(w)
}

// EncodeRepeated encodes an unpacked repeated field: one tagged value
// per element, in slice order.
func EncodeRepeated[T any](w io.Writer, fieldNumber FieldNumber, values []T, enc FieldEncoder[T]) error {
	for _, v := range values {
		if err := enc(w, fieldNumber, v); err != nil {
			return err
		}
	}
	return nil
}

// EncodePacked encodes a packed repeated scalar field: a single tag and
// one length varint covering the concatenated bare encodings. Empty
// slices are omitted entirely.
func EncodePacked[T any](w io.Writer, fieldNumber FieldNumber, values []T, enc ValueEncoder[T]) error {
	if len(values) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, v := range values {
		if err := enc(&buf, v); err != nil {
			return err
		}
	}

	if err := EncodeTag(w, fieldNumber, WireBytes); err != nil {
		return err
	}
	if err := EncodeVarint(w, uint64(buf.Len())); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeMap encodes a map field as repeated length-delimited entry
// messages, key at field 1 and value at field 2. Entry order follows Go
// map iteration and is therefore unspecified, as proto3 allows.
func EncodeMap[K comparable, V any](w io.Writer, fieldNumber FieldNumber, m map[K]V, keyEnc FieldEncoder[K], valueEnc FieldEncoder[V]) error {
	for k, v := range m {
		var entry bytes.Buffer
		if err := keyEnc(&entry, 1, k); err != nil {
			return err
		}
		if err := valueEnc(&entry, 2, v); err != nil {
			return err
		}

		if err := EncodeTag(w, fieldNumber, WireBytes); err != nil {
			return err
		}
		if err := EncodeVarint(w, uint64(entry.Len())); err != nil {
			return err
		}
		if _, err := w.Write(entry.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func writeFixed32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeFixed64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}
