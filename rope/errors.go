package rope

import "errors"

var (
	// ErrIndexOutOfBounds signals an offset or range outside [0, Len].
	ErrIndexOutOfBounds = errors.New("rope: index out of bounds")
	// ErrNotCharBoundary signals an offset inside a multi-byte UTF-8 sequence.
	ErrNotCharBoundary = errors.New("rope: offset is not a char boundary")
	// ErrInvalidUTF8 signals text which is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("rope: invalid UTF-8")
	// ErrInvariantViolation is returned by Check for a corrupted tree.
	ErrInvariantViolation = errors.New("rope: structural invariant violated")
)

// ErrBuilderCompleted signals an append to a builder after Rope was called.
var ErrBuilderCompleted = errors.New("rope: builder already completed")
