//go:build textbuf_debug

package textbuf

// debugChecks switches on invariant checks after every mutation.
const debugChecks = true
