/*
Package textbuf is a text-buffer engine for editors and other applications
which hold large amounts of frequently mutated text.

A Document keeps its text in a rope (package rope), maintains an index of
lines (package lines) and a set of anchors (package anchors), which track
positions in the text across edits. Offsets are byte offsets into UTF-8 text;
every offset handed to a mutation has to lie on a character boundary.

	Operation                 |   Document
	--------------------------+-------------
	Insert / Remove / Replace |   O(log n) + length of re-measured lines
	LineByNumber              |   O(log n)
	LineByOffset              |   O(log n)
	Anchor.Offset             |   O(log n)
	CreateSnapshot            |   O(n)

Documents

A Document belongs to the goroutine which created it. Every operation, except
for taking snapshots and subscribing to change events, checks the calling
goroutine and panics with ErrCrossContextAccess if it is not the owner.
Background readers, e.g. a spell checker or a syntax highlighter, work on
snapshots:

	doc, _ := textbuf.CreateDocument("Hello World")
	snap := doc.CreateSnapshot()
	go func() {
	    text, _ := snap.TextAt(0, 5)
	    ...
	}()
	doc.Insert(5, ",")

Mutations run synchronously: validate, notify Changing, edit the rope,
re-measure the lines touched, move anchors, notify Changed. Invalid arguments
are rejected before anything has changed.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package textbuf

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// BufferError is an error type for the textbuf module
type BufferError string

func (e BufferError) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever an offset, length or line number lies
// outside of the text.
const ErrOutOfRange = BufferError("offset or range out of bounds")

// ErrNotCharBoundary is flagged for offsets inside a multi-byte UTF-8 sequence.
const ErrNotCharBoundary = BufferError("offset is not a char boundary")

// ErrInvalidText is flagged for text which is not valid UTF-8.
const ErrInvalidText = BufferError("text is not valid UTF-8")

// ErrNilArgument is flagged whenever a mandatory handle is missing.
const ErrNilArgument = BufferError("missing argument")

// ErrCrossContextAccess is the panic value for a document used from a
// goroutine other than its owner.
const ErrCrossContextAccess = BufferError("document accessed from foreign goroutine")

// ErrMutationInProgress is flagged for a mutation started while another one
// is still running, e.g. from within a change handler.
const ErrMutationInProgress = BufferError("mutation in progress")

// ErrAnchorDeleted is flagged for operations on anchors which have been removed.
const ErrAnchorDeleted = BufferError("anchor has been deleted")

// ErrClosed is flagged for subscriptions to a closed document.
const ErrClosed = BufferError("document has been closed")

// ErrInvariantViolation is flagged by Check for corrupted internal structures.
// A document reporting it has to be discarded.
const ErrInvariantViolation = BufferError("structural invariant violated")
