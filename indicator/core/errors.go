package core

import "errors"

// Sentinel errors returned by validation. Every engine wraps one of these with
// context, so callers should match with errors.Is.
var (
	// ErrInvalidPeriod is returned when a period is zero, negative or outside
	// the indicator's documented range.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrLengthMismatch is returned when co-indexed input or output series
	// differ in length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInsufficientData is returned when the input is not longer than the
	// indicator's lookback.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter is returned for a non-period parameter outside its
	// domain (deviation multipliers, shadow factors, unsupported MA kinds).
	ErrInvalidParameter = errors.New("invalid parameter")
)
