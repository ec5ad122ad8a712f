/*
Package rbtree implements an augmented red-black tree with positional access.

Values are kept in sequence order, not in key order. Every node stores a
summary of its subtree, computed with a monoid over the values' summaries, and
a node count. This makes the tree an order-statistics tree which can be
searched along any dimension derived from the summaries (line counts, byte
lengths, offset deltas).

Deletion resolves black-height deficiencies with a double-black sentinel: a
temporary node which takes the place of a removed black leaf, is pushed
upward by sibling case analysis, and is detached once the deficiency is
resolved. Bulk construction with Rebuild creates a tree of minimum height
directly, without per-node fixups.

Node handles stay valid across rotations and removals of other nodes; a
removed node is detached from its tree and may not be used again.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package rbtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
