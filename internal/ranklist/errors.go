package ranklist

import "errors"

var (
	// ErrNotFound is returned for unknown ranklist ids and for users that
	// are not attached to the ranklist being scored.
	ErrNotFound = errors.New("ranklist: not found")

	// ErrInvalidConfiguration is returned by write paths for out-of-range
	// weights and negative counts. The scoring read path never returns it.
	ErrInvalidConfiguration = errors.New("ranklist: invalid configuration")
)
