package wire

import (
	"errors"
	"fmt"
)

// Decode errors. Together with InvalidWireTypeError, WireTypeMismatchError
// and MalformedError these form the complete set of failure shapes a decode
// can report; I/O errors from the underlying source are passed through
// unchanged.
var (
	// ErrUnexpectedEOF is returned when the source ends in the middle of a
	// value (mid-varint, short fixed-width read, truncated payload).
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrInvalidVarint is returned when a varint carries more than 10
	// continuation groups. This bounds reads on corrupt input.
	ErrInvalidVarint = errors.New("invalid varint: exceeds 10 bytes")

	// ErrInvalidTag is returned for a nonzero tag whose field number is 0.
	ErrInvalidTag = errors.New("invalid tag: field number 0")

	// ErrInvalidUTF8 is returned when a string field does not hold valid
	// UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in string field")
)

// InvalidWireTypeError reports a tag whose wire type code is not one of
// the four proto3 codes (0, 1, 2, 5). Codes 3 and 4 are the legacy group
// markers and are rejected.
type InvalidWireTypeError struct {
	Code uint8
}

func (e *InvalidWireTypeError) Error() string {
	return fmt.Sprintf("invalid wire type %d", e.Code)
}

// Is implements errors.Is for comparison against another
// *InvalidWireTypeError regardless of code.
func (e *InvalidWireTypeError) Is(target error) bool {
	_, ok := target.(*InvalidWireTypeError)
	return ok
}

// WireTypeMismatchError reports a field whose wire type does not match
// the scalar kind the caller asked for. This is a contract violation on
// the wire data, never coerced.
type WireTypeMismatchError struct {
	Expected WireType
	Got      WireType
}

func (e *WireTypeMismatchError) Error() string {
	return fmt.Sprintf("wire type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *WireTypeMismatchError) Is(target error) bool {
	_, ok := target.(*WireTypeMismatchError)
	return ok
}

// MalformedError reports structurally invalid input: misordered map-entry
// sub-fields, unmapped enum numbers and the like.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed input: " + e.Reason
}

func (e *MalformedError) Is(target error) bool {
	_, ok := target.(*MalformedError)
	return ok
}

// malformedf builds a MalformedError from a format string.
func malformedf(format string, args ...interface{}) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}

// BuilderMisuseError reports a programming error on a Builder (duplicate
// field number, or use after Build). It is deliberately outside the
// decode error set: it signals a caller bug, not bad external data.
type BuilderMisuseError struct {
	FieldNumber FieldNumber
	Reason      string
}

func (e *BuilderMisuseError) Error() string {
	return fmt.Sprintf("builder misuse on field %d: %s", e.FieldNumber, e.Reason)
}

func (e *BuilderMisuseError) Is(target error) bool {
	_, ok := target.(*BuilderMisuseError)
	return ok
}
