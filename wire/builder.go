package wire

import (
	"bytes"
)

// Builder assembles an encoded message without a compile-time schema.
// Field values are added by number; each number may be assigned once.
// Misuse (a duplicate number, or adding after Build) records a sticky
// BuilderMisuseError and turns every later call into a no-op, so chains
// stay writable and the error surfaces from Build or Err.
//
// A Builder is spent after Build: the buffer and the used-number set are
// both cleared and the instance cannot be reused.
type Builder struct {
	buf    bytes.Buffer
	fields map[FieldNumber]struct{}
	built  bool
	err    *BuilderMisuseError
}

// NewBuilder creates an empty open builder.
func NewBuilder() *Builder {
	return &Builder{
		fields: make(map[FieldNumber]struct{}),
	}
}

// checkField records the field number, or records a misuse error when
// the number was already assigned or the builder was already built.
func (b *Builder) checkField(fieldNumber FieldNumber) bool {
	if b.err != nil {
		return false
	}
	if b.built {
		b.err = &BuilderMisuseError{FieldNumber: fieldNumber, Reason: "builder already built"}
		return false
	}
	if _, dup := b.fields[fieldNumber]; dup {
		b.err = &BuilderMisuseError{FieldNumber: fieldNumber, Reason: "field number already assigned"}
		return false
	}
	b.fields[fieldNumber] = struct{}{}
	return true
}

// Err returns the sticky misuse error, if any.
func (b *Builder) Err() error {
	if b.err == nil {
		return nil
	}
	return b.err
}

// Build returns the accumulated buffer and consumes the builder. It
// fails if any add call misused the builder. The builder is not
// reusable afterwards.
func (b *Builder) Build() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, &BuilderMisuseError{Reason: "builder already built"}
	}
	b.built = true
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	b.buf.Reset()
	b.fields = nil
	return out, nil
}

// AddUint32 adds a uint32 field.
func (b *Builder) AddUint32(fieldNumber FieldNumber, v uint32) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeUint32(&b.buf, fieldNumber, v)
	}
	return b
}

// AddInt32 adds an int32 field.
func (b *Builder) AddInt32(fieldNumber FieldNumber, v int32) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeInt32(&b.buf, fieldNumber, v)
	}
	return b
}

// AddInt64 adds an int64 field.
func (b *Builder) AddInt64(fieldNumber FieldNumber, v int64) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeInt64(&b.buf, fieldNumber, v)
	}
	return b
}

// AddUint64 adds a uint64 field.
func (b *Builder) AddUint64(fieldNumber FieldNumber, v uint64) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeUint64(&b.buf, fieldNumber, v)
	}
	return b
}

// AddSint32 adds a zigzag-encoded int32 field.
func (b *Builder) AddSint32(fieldNumber FieldNumber, v int32) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeSint32(&b.buf, fieldNumber, v)
	}
	return b
}

// AddSint64 adds a zigzag-encoded int64 field.
func (b *Builder) AddSint64(fieldNumber FieldNumber, v int64) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeSint64(&b.buf, fieldNumber, v)
	}
	return b
}

// AddBool adds a bool field.
func (b *Builder) AddBool(fieldNumber FieldNumber, v bool) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeBool(&b.buf, fieldNumber, v)
	}
	return b
}

// AddString adds a string field.
func (b *Builder) AddString(fieldNumber FieldNumber, v string) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeString(&b.buf, fieldNumber, v)
	}
	return b
}

// AddBytes adds a bytes field.
func (b *Builder) AddBytes(fieldNumber FieldNumber, v []byte) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeBytes(&b.buf, fieldNumber, v)
	}
	return b
}

// AddFloat adds a float32 field.
func (b *Builder) AddFloat(fieldNumber FieldNumber, v float32) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeFloat(&b.buf, fieldNumber, v)
	}
	return b
}

// AddDouble adds a float64 field.
func (b *Builder) AddDouble(fieldNumber FieldNumber, v float64) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeDouble(&b.buf, fieldNumber, v)
	}
	return b
}

// AddFixed32 adds a fixed32 field.
func (b *Builder) AddFixed32(fieldNumber FieldNumber, v uint32) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeFixed32(&b.buf, fieldNumber, v)
	}
	return b
}

// AddFixed64 adds a fixed64 field.
func (b *Builder) AddFixed64(fieldNumber FieldNumber, v uint64) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeFixed64(&b.buf, fieldNumber, v)
	}
	return b
}

// AddSfixed32 adds an sfixed32 field.
func (b *Builder) AddSfixed32(fieldNumber FieldNumber, v int32) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeSfixed32(&b.buf, fieldNumber, v)
	}
	return b
}

// AddSfixed64 adds an sfixed64 field.
func (b *Builder) AddSfixed64(fieldNumber FieldNumber, v int64) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeSfixed64(&b.buf, fieldNumber, v)
	}
	return b
}

// AddEnum adds an enum field from its numeric value.
func (b *Builder) AddEnum(fieldNumber FieldNumber, v int32) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeEnum(&b.buf, fieldNumber, v)
	}
	return b
}

// AddNested adds an embedded message field from another builder. The
// inner builder is consumed; if it carries a misuse error, that error is
// adopted by the outer builder.
func (b *Builder) AddNested(fieldNumber FieldNumber, inner *Builder) *Builder {
	if !b.checkField(fieldNumber) {
		return b
	}
	innerBytes, err := inner.Build()
	if err != nil {
		b.err = err.(*BuilderMisuseError)
		return b
	}
	b.appendDelimited(fieldNumber, innerBytes)
	return b
}

// AddRepeatedNested adds a repeated message field from builders, one
// length-delimited element per builder, in order.
func (b *Builder) AddRepeatedNested(fieldNumber FieldNumber, inner []*Builder) *Builder {
	if !b.checkField(fieldNumber) {
		return b
	}
	for _, in := range inner {
		innerBytes, err := in.Build()
		if err != nil {
			b.err = err.(*BuilderMisuseError)
			return b
		}
		b.appendDelimited(fieldNumber, innerBytes)
	}
	return b
}

// AddMessage adds an embedded message field from a Message contract
// implementor.
func (b *Builder) AddMessage(fieldNumber FieldNumber, m Message) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeMessage(&b.buf, fieldNumber, m)
	}
	return b
}

// AddRepeatedMessage adds a repeated message field from Message contract
// implementors, in order.
func (b *Builder) AddRepeatedMessage(fieldNumber FieldNumber, messages []Message) *Builder {
	if !b.checkField(fieldNumber) {
		return b
	}
	for _, m := range messages {
		_ = EncodeMessage(&b.buf, fieldNumber, m)
	}
	return b
}

// appendDelimited frames pre-built message bytes as a length-delimited
// field.
func (b *Builder) appendDelimited(fieldNumber FieldNumber, data []byte) {
	_ = EncodeTag(&b.buf, fieldNumber, WireBytes)
	_ = EncodeVarint(&b.buf, uint64(len(data)))
	b.buf.Write(data)
}

// Generic add operations live at package level: Go methods cannot carry
// type parameters.

// AddRepeated adds an unpacked repeated field, one tagged element per
// value.
func AddRepeated[T any](b *Builder, fieldNumber FieldNumber, values []T, enc FieldEncoder[T]) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeRepeated(&b.buf, fieldNumber, values, enc)
	}
	return b
}

// AddPacked adds a packed repeated scalar field.
func AddPacked[T any](b *Builder, fieldNumber FieldNumber, values []T, enc ValueEncoder[T]) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodePacked(&b.buf, fieldNumber, values, enc)
	}
	return b
}

// AddMap adds a map field with scalar keys and values.
func AddMap[K comparable, V any](b *Builder, fieldNumber FieldNumber, m map[K]V, keyEnc FieldEncoder[K], valueEnc FieldEncoder[V]) *Builder {
	if b.checkField(fieldNumber) {
		_ = EncodeMap(&b.buf, fieldNumber, m, keyEnc, valueEnc)
	}
	return b
}

// AddMapNested adds a map field whose values are pre-built builders.
// Each inner builder is consumed.
func AddMapNested[K comparable](b *Builder, fieldNumber FieldNumber, m map[K]*Builder, keyEnc FieldEncoder[K]) *Builder {
	if !b.checkField(fieldNumber) {
		return b
	}
	for k, inner := range m {
		innerBytes, err := inner.Build()
		if err != nil {
			b.err = err.(*BuilderMisuseError)
			return b
		}

		var entry bytes.Buffer
		if err := keyEnc(&entry, 1, k); err != nil {
			return b
		}
		_ = EncodeTag(&entry, 2, WireBytes)
		_ = EncodeVarint(&entry, uint64(len(innerBytes)))
		entry.Write(innerBytes)

		b.appendDelimited(fieldNumber, entry.Bytes())
	}
	return b
}

// AddMapMessage adds a map field whose values implement the Message
// contract.
func AddMapMessage[K comparable](b *Builder, fieldNumber FieldNumber, m map[K]Message, keyEnc FieldEncoder[K]) *Builder {
	if !b.checkField(fieldNumber) {
		return b
	}
	for k, v := range m {
		var entry bytes.Buffer
		if err := keyEnc(&entry, 1, k); err != nil {
			return b
		}
		if err := EncodeMessage(&entry, 2, v); err != nil {
			return b
		}
		b.appendDelimited(fieldNumber, entry.Bytes())
	}
	return b
}
