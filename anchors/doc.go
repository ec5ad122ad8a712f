/*
Package anchors keeps track of stable positions in a changing text.

An anchor is a handle to a byte offset. When text is inserted or removed
before an anchor, the anchor moves with the text following it. Anchors are
stored in an augmented red-black tree in offset order; each node stores the
distance from its predecessor's offset, not an absolute offset. An edit
therefore changes a single distance, plus the distances of anchors inside an
edited range, instead of every anchor following the edit.

Anchors located exactly at an insertion point stay in front of the inserted
text (BeforeInsertion) or move to its end (AfterInsertion). Anchors inside a
removed range are deleted, unless they have been created to survive deletion;
surviving anchors collapse to the start of the removed range.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package anchors

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
