package rbtree

import "fmt"

// Summarized ties a value to its summary type at compile time.
type Summarized[S any] interface {
	Summary() S
}

// Monoid defines how summaries are aggregated up the tree.
//
// For summaries s, t, u, Add should be associative:
//
//	Add(Add(s, t), u) == Add(s, Add(t, u))
//
// and Zero should be the neutral element:
//
//	Add(Zero(), s) == s == Add(s, Zero())
//
// Add need not be commutative; left always precedes right in sequence order.
type Monoid[S any] interface {
	Zero() S
	Add(left, right S) S
}

// Config configures an augmented red-black tree.
type Config[S any] struct {
	// Monoid aggregates summaries up the tree.
	Monoid Monoid[S]
}

func (cfg Config[S]) validate() error {
	if cfg.Monoid == nil {
		return fmt.Errorf("%w: monoid is required", ErrInvalidConfig)
	}
	return nil
}

// Dimension describes a seek dimension over summaries.
//
// K is the dimension key/position type.
type Dimension[S any, K any] interface {
	Zero() K
	Add(acc K, summary S) K
	Compare(acc K, target K) int
}
