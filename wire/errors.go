package wire

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrCapacityExceeded is returned when a bounded container such as a path
	// or a name buffer is asked to hold more bytes than its fixed capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrMalformedInput is returned when decoding a buffer which is too short
	// for the expected type, or whose content violates the invariants of one
	// of the decoded fields.
	ErrMalformedInput = errors.New("malformed input")
)

// errShortBuffer matches both ErrMalformedInput and io.ErrShortBuffer.
var errShortBuffer = fmt.Errorf("%w: %w", ErrMalformedInput, io.ErrShortBuffer)

// ShortBuffer returns an error reporting that size bytes were needed but only
// have were available.
func ShortBuffer(what string, size, have int) error {
	return fmt.Errorf("%s needs %d bytes, got %d: %w", what, size, have, errShortBuffer)
}

// Malformed returns an error wrapping ErrMalformedInput with a description of
// the problem.
func Malformed(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(msg, args...))
}
