package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func decodeVarintValue(r *bytes.Reader) (uint64, error) { return DecodeVarint(r) }

func decodeStringValue(r *bytes.Reader) (string, error) { return DecodeString(r) }

func decodeUint32Value(r *bytes.Reader) (uint32, error) { return DecodeUint32(r) }

func TestDecodeField_RoundTrip(t *testing.T) {
	t.Run("uint32", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeUint32(&buf, 3, 4096))

		v, ok, err := DecodeUint32Field(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint32(4096), v)
	})

	t.Run("int32 negative", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeInt32(&buf, 3, -42))

		v, ok, err := DecodeInt32Field(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int32(-42), v)
	})

	t.Run("sint64", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeSint64(&buf, 3, -987654321))

		v, ok, err := DecodeSint64Field(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(-987654321), v)
	})

	t.Run("bool", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeBool(&buf, 3, true))

		v, ok, err := DecodeBoolField(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, v)
	})

	t.Run("string", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeString(&buf, 3, "héllo wörld"))

		v, ok, err := DecodeStringField(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "héllo wörld", v)
	})

	t.Run("bytes", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeBytes(&buf, 3, []byte{0xDE, 0xAD}))

		v, ok, err := DecodeBytesField(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte{0xDE, 0xAD}, v)
	})

	t.Run("float", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeFloat(&buf, 3, 1.25))

		v, ok, err := DecodeFloatField(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, float32(1.25), v)
	})

	t.Run("double", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeDouble(&buf, 3, -1e100))

		v, ok, err := DecodeDoubleField(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, -1e100, v)
	})

	t.Run("fixed32", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeFixed32(&buf, 3, 0xCAFEBABE))

		v, ok, err := DecodeFixed32Field(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint32(0xCAFEBABE), v)
	})

	t.Run("fixed64", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeFixed64(&buf, 3, 1<<60))

		v, ok, err := DecodeFixed64Field(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint64(1)<<60, v)
	})

	t.Run("sfixed32", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeSfixed32(&buf, 3, -7))

		v, ok, err := DecodeSfixed32Field(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int32(-7), v)
	})

	t.Run("sfixed64", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeSfixed64(&buf, 3, -1<<40))

		v, ok, err := DecodeSfixed64Field(3, bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(-1)<<40, v)
	})
}

func TestDecodeField_AbsentOnEmptyInput(t *testing.T) {
	// A zero value is never encoded, so probing the field on the
	// resulting empty buffer reports absence, not the zero literal.
	var buf bytes.Buffer
	require.NoError(t, EncodeUint32(&buf, 1, 0))
	require.Zero(t, buf.Len())

	_, ok, err := DecodeUint32Field(1, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeField_AbsentOnOtherFieldNumber(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeUint32(&buf, 2, 99))

	_, ok, err := DecodeUint32Field(1, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeField_WireTypeMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeString(&buf, 1, "nope"))

	_, _, err := DecodeUint32Field(1, bytes.NewReader(buf.Bytes()))
	var mismatch *WireTypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, WireVarint, mismatch.Expected)
	assert.Equal(t, WireBytes, mismatch.Got)
}

func TestDecodeString_InvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBytes(&buf, 1, []byte{0xFF, 0xFE}))

	_, _, err := DecodeStringField(1, bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestDecodeBytes_Truncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeVarint(&buf, 10))
	buf.WriteString("shor") // 4 of the promised 10 bytes

	_, err := DecodeBytes(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestDecodeEnum(t *testing.T) {
	type color int32
	convert := func(n int32) (color, bool) {
		if n >= 0 && n <= 2 {
			return color(n), true
		}
		return 0, false
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeEnum(&buf, 1, 2))

	v, ok, err := DecodeEnumField(1, bytes.NewReader(buf.Bytes()), convert)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, color(2), v)

	buf.Reset()
	require.NoError(t, EncodeEnum(&buf, 1, 9))

	_, _, err = DecodeEnumField(1, bytes.NewReader(buf.Bytes()), convert)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestDecodePackedField(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 1 << 50}

	var buf bytes.Buffer
	require.NoError(t, EncodePacked(&buf, 9, values, func(w io.Writer, v uint64) error {
		return EncodeVarint(w, v)
	}))

	got, ok, err := DecodePackedField(9, bytes.NewReader(buf.Bytes()), decodeVarintValue)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, values, got)
}

func TestDecodeMap_RoundTrip(t *testing.T) {
	m := map[string]uint32{"one": 1, "two": 2, "zero-suffix": 300}

	var buf bytes.Buffer
	require.NoError(t, EncodeMap(&buf, 4, m, EncodeString, EncodeUint32))

	got, err := DecodeMap(bytes.NewReader(buf.Bytes()), decodeStringValue, decodeUint32Value)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecodeMap_SwappedEntryFieldsRejected(t *testing.T) {
	// Entry opening with the value sub-field instead of the key:
	// structurally invalid, must not be silently reassigned.
	entry := protowire.AppendVarint(protowire.AppendTag(nil, 2, protowire.VarintType), 7)
	entry = protowire.AppendString(protowire.AppendTag(entry, 1, protowire.BytesType), "k")
	data := protowire.AppendBytes(protowire.AppendTag(nil, 4, protowire.BytesType), entry)

	_, err := DecodeMap(bytes.NewReader(data), decodeStringValue, decodeUint32Value)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestDecodeMap_MissingValueRejected(t *testing.T) {
	entry := protowire.AppendString(protowire.AppendTag(nil, 1, protowire.BytesType), "k")
	data := protowire.AppendBytes(protowire.AppendTag(nil, 4, protowire.BytesType), entry)

	_, err := DecodeMap(bytes.NewReader(data), decodeStringValue, decodeUint32Value)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestDecodeMapField_RewindsForeignTag(t *testing.T) {
	m := map[string]uint32{"a": 1, "b": 2}

	var buf bytes.Buffer
	require.NoError(t, EncodeMap(&buf, 4, m, EncodeString, EncodeUint32))
	// A trailing non-map field the map collector must leave intact.
	require.NoError(t, EncodeUint32(&buf, 5, 777))

	r := bytes.NewReader(buf.Bytes())
	got, err := DecodeMapField(4, r, decodeStringValue, decodeUint32Value)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	// The field-5 tag was rewound; the enclosing decode continues.
	v, ok, err := DecodeUint32Field(5, r)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(777), v)
}

func TestDecodeMapField_EmptyAtForeignTag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeUint32(&buf, 5, 1))

	r := bytes.NewReader(buf.Bytes())
	got, err := DecodeMapField(4, r, decodeStringValue, decodeUint32Value)
	require.NoError(t, err)
	assert.Empty(t, got)

	v, ok, err := DecodeUint32Field(5, r)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)
}

func TestDecodeField_SequentialScanConstraint(t *testing.T) {
	// The non-seeking decoders consume the tag on mismatch: a probe for
	// field 2 against a stream beginning with field 1 eats field 1's
	// tag. This is the documented sequential-scan behavior.
	var buf bytes.Buffer
	require.NoError(t, EncodeUint32(&buf, 1, 5))
	require.NoError(t, EncodeUint32(&buf, 2, 6))

	r := bytes.NewReader(buf.Bytes())
	_, ok, err := DecodeUint32Field(2, r)
	require.NoError(t, err)
	assert.False(t, ok)

	// The unread value of field 1 is now misread as the next tag.
	v, err := DecodeVarint(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)
}
