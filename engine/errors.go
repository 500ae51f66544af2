package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERROR KINDS
// ============================================================================
// Every stage wraps one of these sentinels with fmt.Errorf("...: %w").
// Callers classify failures with errors.Is; nothing in the pipeline retries.
// ============================================================================

var (
	// ErrIO reports a missing/unreadable input or an unwritable output.
	ErrIO = errors.New("io error")

	// ErrParse reports malformed delimited text or an unexpected table shape.
	ErrParse = errors.New("parse error")

	// ErrType reports a value that cannot be coerced to the required type.
	ErrType = errors.New("type error")

	// ErrPrecondition reports input the trend estimator cannot fit.
	ErrPrecondition = errors.New("precondition violated")

	// ErrMissingColumn is a parse error raised when a required column is absent.
	ErrMissingColumn = fmt.Errorf("%w: missing column", ErrParse)
)

// ErrorKind returns the name of the error kind err belongs to, or "" if none.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIO):
		return "IOError"
	case errors.Is(err, ErrParse):
		return "ParseError"
	case errors.Is(err, ErrType):
		return "TypeError"
	case errors.Is(err, ErrPrecondition):
		return "PreconditionError"
	default:
		return ""
	}
}
