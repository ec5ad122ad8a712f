package textbuf

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the id of the calling goroutine, as printed in the
// first line of a stack trace: "goroutine 42 [running]:".
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("cannot read goroutine id from stack: " + err.Error())
	}
	return id
}

// owner remembers the goroutine a document belongs to.
type owner struct {
	id      uint64
	enabled bool
}

func newOwner(enabled bool) owner {
	if !enabled {
		return owner{}
	}
	return owner{id: goroutineID(), enabled: true}
}

// check panics with ErrCrossContextAccess if the calling goroutine is not
// the owner.
func (o owner) check() {
	if !o.enabled {
		return
	}
	if id := goroutineID(); id != o.id {
		T().Errorf("textbuf: document of goroutine %d used by goroutine %d", o.id, id)
		panic(ErrCrossContextAccess)
	}
}
