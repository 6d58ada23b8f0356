package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// trip, day, or item does not exist.
// Front ends map this to "not found" (HTTP 404, CLI exit 1).
var ErrNotFound = errors.New("not found")

// ErrValidation is the single domain-level failure kind: malformed input,
// out-of-range values, blank names, overlapping items, or a storage
// uniqueness violation translated into domain terms.
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by repositories when a write violates a storage
// uniqueness constraint. Services translate it into a ValidationError with a
// message that names the duplicated thing.
var ErrConflict = errors.New("conflict")

// ValidationError carries the human-readable reason for a rejected input.
// It unwraps to ErrValidation so callers can use errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalidf builds a *ValidationError from a format string.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationMessage returns the reason carried by a ValidationError anywhere
// in err's chain, or err.Error() when there is none.
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	return err.Error()
}
