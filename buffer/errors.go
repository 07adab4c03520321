package buffer

import "errors"

// Contract violations. Mutators panic with an error wrapping one of these;
// they indicate a bug in the caller, never bad input data.
var (
	ErrReadOnly     = errors.New("buffer is read-only")
	ErrInvalidRange = errors.New("invalid range")
)
