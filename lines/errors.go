package lines

import "errors"

var (
	// ErrLineOutOfRange signals a line number or offset outside the text.
	ErrLineOutOfRange = errors.New("lines: line or offset out of range")
	// ErrInvalidRecord signals a malformed line record.
	ErrInvalidRecord = errors.New("lines: invalid line record")
	// ErrStaleLine signals a line view whose line has been removed.
	ErrStaleLine = errors.New("lines: line no longer part of the index")
	// ErrInvariantViolation is returned by Check for a corrupted index.
	ErrInvariantViolation = errors.New("lines: structural invariant violated")
)
