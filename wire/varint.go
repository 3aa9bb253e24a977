package wire

import (
	"io"
)

// maxVarintLen is the longest valid encoding of a 64-bit varint.
const maxVarintLen = 10

// readByte reads a single byte from the source, using the ByteReader
// fast path when available. io.EOF is returned untranslated so callers
// can distinguish a clean end from a truncated value.
func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var buf [1]byte
	for {
		n, err := r.Read(buf[:])
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// readFull fills buf from the source, mapping a short read to
// ErrUnexpectedEOF.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// ENCODER FUNCTIONS

// EncodeVarint encodes a uint64 as a base-128 varint, low 7-bit group
// first, MSB flagging continuation. Output is 1-10 bytes.
func EncodeVarint(w io.Writer, v uint64) error {
	var buf [maxVarintLen]byte
	n := 0
	for v >= 0x80 {
		buf[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	buf[n] = byte(v)
	_, err := w.Write(buf[:n+1])
	return err
}

// EncodeZigZag encodes a signed value as a zigzag varint.
func EncodeZigZag(w io.Writer, v int64) error {
	return EncodeVarint(w, EncodeZigZag64(v))
}

// DECODER FUNCTIONS

// DecodeVarint decodes a base-128 varint from the source. It fails with
// ErrInvalidVarint once more than 10 continuation groups are seen, and
// with ErrUnexpectedEOF if the source ends mid-sequence.
func DecodeVarint(r io.Reader) (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; i < maxVarintLen; i++ {
		b, err := readByte(r)
		if err != nil {
			if err == io.EOF {
				return 0, ErrUnexpectedEOF
			}
			return 0, err
		}

		result |= uint64(b&0x7F) << shift

		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}

	return 0, ErrInvalidVarint
}

// SkipVarint consumes a varint without decoding it, applying the same
// 10-byte bound as DecodeVarint.
func SkipVarint(r io.Reader) error {
	for i := 0; i < maxVarintLen; i++ {
		b, err := readByte(r)
		if err != nil {
			if err == io.EOF {
				return ErrUnexpectedEOF
			}
			return err
		}
		if b&0x80 == 0 {
			return nil
		}
	}
	return ErrInvalidVarint
}

// UTILITY FUNCTIONS

// DecodeZigZag32 decodes a zigzag-encoded 32-bit integer
func DecodeZigZag32(encoded uint64) int32 {
	return int32((uint32(encoded) >> 1) ^ uint32(-int32(encoded&1)))
}

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// EncodeZigZag32 encodes a signed 32-bit integer using zigzag encoding
func EncodeZigZag32(v int32) uint64 {
	return uint64((uint32(v) << 1) ^ uint32(v>>31))
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// VarintSize returns the number of bytes needed to encode the given varint
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// ZigZagSize returns the number of bytes needed to encode the given
// signed value as a zigzag varint.
func ZigZagSize(v int64) int {
	return VarintSize(EncodeZigZag64(v))
}
