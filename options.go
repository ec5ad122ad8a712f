package textbuf

import "github.com/npillmayer/schuko/tracing"

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithTracer sets the tracer a document reports to. Default is T().
func WithTracer(trace tracing.Trace) Option {
	return func(doc *Document) {
		if trace != nil {
			doc.trace = trace
		}
	}
}

// WithoutOwnerCheck disables the goroutine check on every operation. Clients
// are then responsible for serializing access themselves.
func WithoutOwnerCheck() Option {
	return func(doc *Document) {
		doc.checkOwner = false
	}
}

// WithInvariantChecks lets a document validate all of its structures after
// every mutation. A violation panics. This is expensive and meant for tests
// and debugging; builds with tag textbuf_debug have it switched on anyway.
func WithInvariantChecks() Option {
	return func(doc *Document) {
		doc.checkInvariants = true
	}
}
