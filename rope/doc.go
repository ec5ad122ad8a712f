/*
Package rope implements a mutable, AVL-balanced binary rope for UTF-8 text.

Leaves carry fixed-capacity chunks (see package chunk); inner nodes carry only
the total byte length of their subtree and their height. A node is a leaf iff
both children are absent, and every inner node has exactly two children. After
every mutation the balance factor height(left) − height(right) of each node
lies in [−1, 1].

Offsets are byte offsets. Every offset handed to a mutating operation must lie
on a UTF-8 character boundary.

	Operation      |   Rope
	---------------+-----------
	At / IndexOf   |   O(log n)
	Insert         |   O(log n)
	RemoveRange    |   O(log n)
	Clone          |   O(n)
	Iterate        |   O(n)

Ropes are not safe for concurrent use. Readers in other goroutines should work
on a Clone, which shares no mutable state with its source.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package rope

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
