/*
Package lines maintains the line structure of a text.

An Index stores one record per line in an augmented red-black tree. A record
knows the length of its line including the line delimiter and the length of
the delimiter itself ("\n", "\r\n" or "\r"). Subtrees aggregate line counts
and byte lengths, which makes lookups by line number and by byte offset
logarithmic.

A text always has at least one line. The last line has no delimiter; every
other line has one. An empty text consists of a single line of length 0.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package lines

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}
