package jalali

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldRange reports a constructor or setter value outside its domain.
	ErrFieldRange = errors.New("field out of range")
	// ErrTypeMismatch reports an operand or callback result of the wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNaiveAware reports an operation mixing naive and aware values.
	ErrNaiveAware = errors.New("can't mix offset-naive and offset-aware datetimes")
	// ErrInvalidCalendar reports a structurally invalid BrokenTime in a strict kernel call.
	ErrInvalidCalendar = errors.New("invalid calendar field")
	// ErrFormatMismatch reports input text that does not match a layout.
	ErrFormatMismatch = errors.New("format mismatch")
	// ErrBeforeEpoch reports a date earlier than 1348-10-11 (1970-01-01).
	ErrBeforeEpoch = fmt.Errorf("%w: predates supported epoch", ErrFieldRange)
)

// ParseError describes a failed Parse call.
type ParseError struct {
	Layout string
	Value  string
	// Offset is the number of input bytes consumed before the mismatch.
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("jalali: parsing %q as %q: %s", e.Value, e.Layout, ErrFormatMismatch)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return fmt.Sprintf("%s (%d bytes remaining)", msg, e.Remaining())
}

// Remaining returns how much of the input was not consumed.
func (e *ParseError) Remaining() int {
	return len(e.Value) - e.Offset
}

func (e *ParseError) Unwrap() error {
	return ErrFormatMismatch
}
