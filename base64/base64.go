// Package base64 implements the standard-alphabet Base64 transform used
// by tooling in this module. It is a plain byte transcoder: strict about
// padding and alphabet on decode, tolerant only of CR/LF in the input.
package base64

import (
	"errors"
	"io"
)

const encodeTable = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const invalid = 0xFF

var (
	// ErrInvalidLength is returned when the filtered input length is not
	// a multiple of 4.
	ErrInvalidLength = errors.New("base64: invalid input length")

	// ErrInvalidByte is returned when the input holds a byte outside the
	// alphabet.
	ErrInvalidByte = errors.New("base64: invalid input byte")
)

var decodeTable = buildDecodeTable()

func buildDecodeTable() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = invalid
	}
	for i := 0; i < len(encodeTable); i++ {
		table[encodeTable[i]] = byte(i)
	}
	return table
}

// Encode writes the Base64 encoding of data to w, with '=' padding.
func Encode(w io.Writer, data []byte) error {
	var quad [4]byte
	for i := 0; i < len(data); i += 3 {
		chunk := data[i:min(i+3, len(data))]

		var b1, b2 byte
		if len(chunk) > 1 {
			b1 = chunk[1]
		}
		if len(chunk) > 2 {
			b2 = chunk[2]
		}
		n := uint32(chunk[0])<<16 | uint32(b1)<<8 | uint32(b2)

		quad[0] = encodeTable[n>>18&0x3F]
		quad[1] = encodeTable[n>>12&0x3F]
		quad[2] = '='
		quad[3] = '='
		if len(chunk) > 1 {
			quad[2] = encodeTable[n>>6&0x3F]
		}
		if len(chunk) > 2 {
			quad[3] = encodeTable[n&0x3F]
		}

		if _, err := w.Write(quad[:]); err != nil {
			return err
		}
	}
	return nil
}

// EncodeToString returns the Base64 encoding of data.
func EncodeToString(data []byte) string {
	out := make([]byte, 0, (len(data)+2)/3*4)
	buf := appendWriter{buf: &out}
	// writes to a slice-backed writer cannot fail
	_ = Encode(buf, data)
	return string(out)
}

// Decode decodes Base64 input. CR and LF bytes are stripped first; after
// that the input must be well-formed: length a multiple of 4, bytes from
// the alphabet, '=' only as trailing padding of a final quad.
func Decode(input []byte) ([]byte, error) {
	filtered := make([]byte, 0, len(input))
	for _, b := range input {
		if b != '\r' && b != '\n' {
			filtered = append(filtered, b)
		}
	}

	if len(filtered)%4 != 0 {
		return nil, ErrInvalidLength
	}

	out := make([]byte, 0, len(filtered)/4*3)
	for i := 0; i < len(filtered); i += 4 {
		c0, c1, c2, c3 := filtered[i], filtered[i+1], filtered[i+2], filtered[i+3]

		// '=' may only pad the tail of the final quad.
		if c2 == '=' && c3 != '=' {
			return nil, ErrInvalidByte
		}
		if c3 == '=' && i+4 != len(filtered) {
			return nil, ErrInvalidByte
		}

		v0 := decodeTable[c0]
		v1 := decodeTable[c1]
		var v2, v3 byte
		if c2 != '=' {
			v2 = decodeTable[c2]
		}
		if c3 != '=' {
			v3 = decodeTable[c3]
		}

		if v0 == invalid || v1 == invalid ||
			(c2 != '=' && v2 == invalid) ||
			(c3 != '=' && v3 == invalid) {
			return nil, ErrInvalidByte
		}

		out = append(out, v0<<2|v1>>4)
		if c2 != '=' {
			out = append(out, v1<<4|v2>>2)
		}
		if c3 != '=' {
			out = append(out, v2<<6|v3)
		}
	}

	return out, nil
}

// DecodeString decodes a Base64 string.
func DecodeString(s string) ([]byte, error) {
	return Decode([]byte(s))
}

// appendWriter adapts an append-grown slice to io.Writer.
type appendWriter struct {
	buf *[]byte
}

func (w appendWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
