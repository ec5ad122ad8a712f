package rope

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/npillmayer/textbuf/chunk"
)

// Chunks returns an in-order iterator over the leaves of the rope, yielding
// the start offset and the chunk of each leaf.
//
// The sequence is lazy and may be restarted; the rope must not be mutated
// while iterating.
func (r *Rope) Chunks() iter.Seq2[int, chunk.Chunk] {
	return r.ChunksFrom(0)
}

type pending struct {
	n   *node
	pos int
}

// ChunksFrom is like Chunks, but starts with the leaf containing offset.
func (r *Rope) ChunksFrom(offset int) iter.Seq2[int, chunk.Chunk] {
	return func(yield func(int, chunk.Chunk) bool) {
		if r == nil || r.root == nil || offset >= r.root.length {
			return
		}
		var stack []pending
		n, pos := r.root, 0
		for !n.isLeaf() {
			if offset < pos+n.left.length {
				stack = append(stack, pending{n.right, pos + n.left.length})
				n = n.left
			} else {
				pos += n.left.length
				n = n.right
			}
		}
		if !yield(pos, n.leaf) {
			return
		}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n, pos = p.n, p.pos
			for !n.isLeaf() {
				stack = append(stack, pending{n.right, pos + n.left.length})
				n = n.left
			}
			if !yield(pos, n.leaf) {
				return
			}
		}
	}
}

// Runes returns an iterator over the byte offsets and runes of the text.
func (r *Rope) Runes() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for pos, c := range r.Chunks() {
			for i, ch := range c.String() {
				if !yield(pos+i, ch) {
					return
				}
			}
		}
	}
}

// IndexOf returns the offset of the first byte in [start,start+count) for
// which pred is true, or -1.
func (r *Rope) IndexOf(pred func(byte) bool, start, count int) (int, error) {
	if err := r.checkSpan(start, count); err != nil {
		return -1, err
	}
	end := start + count
	for pos, c := range r.ChunksFrom(start) {
		if pos >= end {
			break
		}
		for i := max(0, start-pos); i < min(c.Len(), end-pos); i++ {
			if pred(c.At(i)) {
				return pos + i, nil
			}
		}
	}
	return -1, nil
}

// IndexByte returns the offset of the first occurrence of b in
// [start,start+count), or -1.
func (r *Rope) IndexByte(b byte, start, count int) (int, error) {
	if err := r.checkSpan(start, count); err != nil {
		return -1, err
	}
	end := start + count
	var buf []byte
	for pos, c := range r.ChunksFrom(start) {
		if pos >= end {
			break
		}
		from := max(0, start-pos)
		buf = c.AppendTo(buf[:0], from, min(c.Len(), end-pos))
		if i := bytes.IndexByte(buf, b); i >= 0 {
			return pos + from + i, nil
		}
	}
	return -1, nil
}

// NextLineBreak returns the offset of the first '\n' or '\r' in [from,to).
// It consults the leaf bitmaps and does not look at the text itself.
func (r *Rope) NextLineBreak(from, to int) (int, bool) {
	from, to = max(0, from), min(to, r.Len())
	for pos, c := range r.ChunksFrom(from) {
		if pos >= to {
			break
		}
		if i, ok := c.NextBreak(max(0, from-pos)); ok {
			if pos+i < to {
				return pos + i, true
			}
			return 0, false
		}
	}
	return 0, false
}

func (r *Rope) checkSpan(start, count int) error {
	if start < 0 || count < 0 || start > r.Len() || count > r.Len()-start {
		return fmt.Errorf("%w: span [%d,%d) for length %d", ErrIndexOutOfBounds,
			start, start+count, r.Len())
	}
	return nil
}
