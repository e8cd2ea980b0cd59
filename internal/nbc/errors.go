package nbc

import "errors"

// Error kinds surfaced by every calculation. Callers match them with
// errors.Is; the wrapping message carries the offending values.
var (
	// ErrInvalidGeometry reports a non-positive or inconsistent roof dimension.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrLookupFailure reports an unknown site, material or occupancy identifier.
	ErrLookupFailure = errors.New("lookup failure")

	// ErrInvalidInput reports a negative load, an unknown category, or a
	// numeric input that would make a code formula undefined.
	ErrInvalidInput = errors.New("invalid input")
)
