package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func encodeVarintBytes(t *testing.T, v uint64) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeVarint(&buf, v))
	return buf.Bytes()
}

func TestVarint_RoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 2, 127, 128, 129, 300, 16383, 16384,
		1<<21 - 1, 1 << 21, 1<<32 - 1, 1 << 32,
		1<<63 - 1, 1 << 63, math.MaxUint64,
	}

	for _, v := range values {
		encoded := encodeVarintBytes(t, v)

		decoded, err := DecodeVarint(bytes.NewReader(encoded))
		require.NoError(t, err, "value %d", v)
		assert.Equal(t, v, decoded)
		assert.Equal(t, VarintSize(v), len(encoded), "VarintSize disagrees for %d", v)
	}
}

func TestVarint_MatchesReference(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 54321, 1 << 40, math.MaxUint64}

	for _, v := range values {
		want := protowire.AppendVarint(nil, v)
		assert.Equal(t, want, encodeVarintBytes(t, v), "value %d", v)
	}
}

func TestVarint_Boundaries(t *testing.T) {
	assert.Len(t, encodeVarintBytes(t, 0), 1)
	assert.Len(t, encodeVarintBytes(t, uint64(1)<<63-1), 10)
	assert.Len(t, encodeVarintBytes(t, math.MaxUint64), 10)
}

func TestVarint_TooLong(t *testing.T) {
	// 11 bytes, every one with the continuation flag set.
	data := bytes.Repeat([]byte{0x80}, 11)

	_, err := DecodeVarint(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidVarint)
}

func TestVarint_Truncated(t *testing.T) {
	cases := [][]byte{
		{},
		{0x80},
		{0xFF, 0xFF, 0xAC},
	}

	for _, data := range cases {
		_, err := DecodeVarint(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrUnexpectedEOF, "input %v", data)
	}
}

func TestSkipVarint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeVarint(&buf, 1<<40))
	buf.WriteByte(0x05)

	r := bytes.NewReader(buf.Bytes())
	require.NoError(t, SkipVarint(r))

	next, err := readByte(r)
	require.NoError(t, err)
	assert.Equal(t, byte(0x05), next)
}

func TestZigZag_Symmetry(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 2, -2, 63, -64, 1<<40 - 7, -(1 << 40), math.MaxInt64, math.MinInt64} {
		assert.Equal(t, n, DecodeZigZag64(EncodeZigZag64(n)), "value %d", n)
	}
	for _, n := range []int32{0, 1, -1, 150, -150, math.MaxInt32, math.MinInt32} {
		assert.Equal(t, n, DecodeZigZag32(EncodeZigZag32(n)), "value %d", n)
	}
}

func TestZigZag_Mapping(t *testing.T) {
	// Small-magnitude negatives must stay small.
	assert.Equal(t, uint64(1), EncodeZigZag64(-1))
	assert.Equal(t, uint64(2), EncodeZigZag64(1))
	assert.Equal(t, uint64(0), EncodeZigZag64(0))
	assert.Equal(t, uint64(1), EncodeZigZag32(-1))

	assert.Equal(t, 1, ZigZagSize(-1))
}

func TestVarintSize_AllWidths(t *testing.T) {
	for shift := 0; shift < 64; shift++ {
		v := uint64(1) << shift
		assert.Equal(t, len(encodeVarintBytes(t, v)), VarintSize(v), "1<<%d", shift)
	}
}
