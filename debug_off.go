//go:build !textbuf_debug

package textbuf

const debugChecks = false
