package engine

import "errors"

var (
	// ErrInvalidGate is returned for an unsupported gate selector.
	ErrInvalidGate = errors.New("invalid gate")

	// ErrLengthMismatch is returned when paired signal sequences differ
	// in length. This indicates a caller bug, not bad data.
	ErrLengthMismatch = errors.New("signal length mismatch")

	// ErrSampleCount is returned when the requested sample count is not
	// positive or exceeds the configured cap.
	ErrSampleCount = errors.New("invalid sample count")
)
