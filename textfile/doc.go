/*
Package textfile provides API helpers to load UTF-8 text files into documents.

Files are read fragment by fragment in a background goroutine. Clients may
follow the progress of loading by subscribing to a loader; the document
itself is created in the goroutine which waits for the loader, and becomes
the owner of the document.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}
