package paramvec

import "errors"

var (
	// ErrInvalidArgument is returned when a length argument is negative.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange is returned when an index is outside the current bounds of a vector.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned when a lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrInconsistentState is returned by State.Verify when the stored element payload
	// disagrees with what the root uuid and name derive.
	ErrInconsistentState = errors.New("inconsistent state")
)
