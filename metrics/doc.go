/*
Package metrics provides some pre-manufactured metrics on texts.

Metrics are calculated fragment by fragment, reading a text source
sequentially. A metric may leave bytes at the end of a fragment unprocessed,
e.g. a word which might continue in the next fragment; these bytes are handed
to the metric again, prefixed to the next fragment.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}
