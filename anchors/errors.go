package anchors

import "errors"

var (
	// ErrOffsetOutOfRange signals a negative offset or length.
	ErrOffsetOutOfRange = errors.New("anchors: offset out of range")
	// ErrAnchorDeleted signals an anchor which no longer tracks the text.
	ErrAnchorDeleted = errors.New("anchors: anchor has been deleted")
	// ErrForeignAnchor signals an anchor created by a different index.
	ErrForeignAnchor = errors.New("anchors: anchor belongs to a different index")
	// ErrInvariantViolation is returned by Check for a corrupted index.
	ErrInvariantViolation = errors.New("anchors: structural invariant violated")
)
