package rbtree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("rbtree: invalid configuration")
	// ErrIndexOutOfBounds signals an invalid positional index.
	ErrIndexOutOfBounds = errors.New("rbtree: index out of bounds")
	// ErrNilNode signals a missing node handle.
	ErrNilNode = errors.New("rbtree: node is nil")
	// ErrForeignNode signals a node which is not (or no longer) part of the tree.
	ErrForeignNode = errors.New("rbtree: node does not belong to tree")
	// ErrInvalidDimension signals a missing seek dimension.
	ErrInvalidDimension = errors.New("rbtree: invalid dimension")
	// ErrInvariantViolation is returned by Check for a corrupted tree.
	ErrInvariantViolation = errors.New("rbtree: red-black invariant violated")
)
