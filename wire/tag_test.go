package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_RoundTrip(t *testing.T) {
	numbers := []FieldNumber{1, 2, 15, 16, 127, 128, 5000, 1<<29 - 1}
	wireTypes := []WireType{WireVarint, WireFixed64, WireBytes, WireFixed32}

	for _, num := range numbers {
		for _, wt := range wireTypes {
			var buf bytes.Buffer
			require.NoError(t, EncodeTag(&buf, num, wt))

			hdr, err := DecodeTag(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.NotNil(t, hdr)
			assert.Equal(t, num, hdr.FieldNumber)
			assert.Equal(t, wt, hdr.WireType)
		}
	}
}

func TestTag_ParseMakeInverse(t *testing.T) {
	num, wt := ParseTag(MakeTag(42, WireBytes))
	assert.Equal(t, FieldNumber(42), num)
	assert.Equal(t, WireBytes, wt)
}

func TestTag_ZeroMeansEndOfMessage(t *testing.T) {
	hdr, err := DecodeTag(bytes.NewReader([]byte{0x00}))
	require.NoError(t, err)
	assert.Nil(t, hdr)
}

func TestTag_CleanEOFMeansEndOfMessage(t *testing.T) {
	hdr, err := DecodeTag(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Nil(t, hdr)
}

func TestTag_GroupWireTypesRejected(t *testing.T) {
	for _, code := range []uint64{3, 4, 6, 7} {
		var buf bytes.Buffer
		require.NoError(t, EncodeVarint(&buf, uint64(1)<<3|code))

		_, err := DecodeTag(bytes.NewReader(buf.Bytes()))
		var wtErr *InvalidWireTypeError
		require.ErrorAs(t, err, &wtErr, "code %d", code)
		assert.Equal(t, uint8(code), wtErr.Code)
	}
}

func TestTag_FieldNumberZeroInvalid(t *testing.T) {
	// Nonzero varint whose field number bits are all zero: wire type 2
	// alone.
	_, err := DecodeTag(bytes.NewReader([]byte{0x02}))
	require.ErrorIs(t, err, ErrInvalidTag)
}

func TestTag_TruncatedMidVarint(t *testing.T) {
	_, err := DecodeTag(bytes.NewReader([]byte{0x80}))
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestWireType_String(t *testing.T) {
	assert.Equal(t, "varint", WireVarint.String())
	assert.Equal(t, "length-delimited", WireBytes.String())
	assert.Equal(t, "invalid", WireType(3).String())
}
