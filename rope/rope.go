package rope

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/textbuf/chunk"
)

// Rope is a mutable sequence of UTF-8 text, stored in the leaves of an
// AVL-balanced binary tree.
//
// The zero value is an empty rope ready to use.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() *Rope {
	return &Rope{}
}

// FromString creates a rope from a string, building a tree of minimum height.
func FromString(s string) (*Rope, error) {
	return FromBytes([]byte(s))
}

// FromBytes creates a rope from UTF-8 bytes. The input is copied.
func FromBytes(b []byte) (*Rope, error) {
	leaves, err := splitToChunks(b)
	if err != nil {
		return nil, err
	}
	return &Rope{root: buildBalanced(leaves)}, nil
}

// Len returns the length of the text in bytes.
func (r *Rope) Len() int {
	if r == nil || r.root == nil {
		return 0
	}
	return r.root.length
}

// Height returns the height of the tree. Empty ropes and single leaves have
// height 0.
func (r *Rope) Height() int {
	if r == nil || r.root == nil {
		return 0
	}
	return r.root.height
}

// IsCharBoundary reports whether offset lies on a UTF-8 character boundary.
// 0 and Len are boundaries.
func (r *Rope) IsCharBoundary(offset int) bool {
	if offset == 0 || offset == r.Len() {
		return offset >= 0
	}
	if offset < 0 || offset > r.Len() {
		return false
	}
	leaf, local := r.locate(offset)
	return leaf.leaf.IsCharBoundary(local)
}

// locate finds the leaf containing byte offset, which must be in [0,Len).
// An offset on a leaf border belongs to the right leaf.
func (r *Rope) locate(offset int) (*node, int) {
	n := r.root
	for !n.isLeaf() {
		if offset < n.left.length {
			n = n.left
		} else {
			offset -= n.left.length
			n = n.right
		}
	}
	return n, offset
}

func (r *Rope) checkRange(offset, length int) error {
	if offset < 0 || length < 0 || offset > r.Len() || length > r.Len()-offset {
		return fmt.Errorf("%w: range [%d,%d) for length %d", ErrIndexOutOfBounds,
			offset, offset+length, r.Len())
	}
	if !r.IsCharBoundary(offset) {
		return fmt.Errorf("%w: %d", ErrNotCharBoundary, offset)
	}
	if length > 0 && !r.IsCharBoundary(offset+length) {
		return fmt.Errorf("%w: %d", ErrNotCharBoundary, offset+length)
	}
	return nil
}

// Insert inserts text at byte offset. offset must be in [0,Len] and lie on a
// char boundary; text must be valid UTF-8. The rope is left unchanged if an
// error is returned.
func (r *Rope) Insert(offset int, text string) error {
	if err := r.checkRange(offset, 0); err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	if len(text) == 0 {
		return nil
	}
	if r.root == nil {
		leaves, _ := splitToChunks([]byte(text))
		r.root = buildBalanced(leaves)
		return nil
	}
	if len(text) <= chunk.MaxBase/2 {
		r.root = insertSmall(r.root, offset, []byte(text))
		return nil
	}
	leaves, _ := splitToChunks([]byte(text))
	mid := buildBalanced(leaves)
	left, right := split(r.root, offset)
	r.root = join(join(left, mid), right)
	return nil
}

// insertSmall inserts a short text into the leaf at offset. A full leaf is
// split into two leaves under a new inner node, which raises the subtree by
// at most one level, so single and double rotations on the way up suffice.
// An offset on a leaf border goes to the left leaf.
func insertSmall(n *node, offset int, text []byte) *node {
	if n.isLeaf() {
		if len(text) <= n.leaf.Room() {
			c, err := n.leaf.Insert(offset, text)
			assert(err == nil, "rope insert: leaf rejected validated text")
			n.leaf = c
			n.update()
			return n
		}
		buf := n.leaf.AppendTo(nil, 0, offset)
		buf = append(buf, text...)
		buf = n.leaf.AppendTo(buf, offset, n.leaf.Len())
		cut := len(buf) / 2
		for !utf8.RuneStart(buf[cut]) {
			cut--
		}
		l, err1 := chunk.NewBytes(buf[:cut])
		r, err2 := chunk.NewBytes(buf[cut:])
		assert(err1 == nil && err2 == nil, "rope insert: leaf split failed")
		return makeInner(makeLeaf(l), makeLeaf(r))
	}
	if offset <= n.left.length {
		n.left = insertSmall(n.left, offset, text)
	} else {
		n.right = insertSmall(n.right, offset-n.left.length, text)
	}
	return rebalance(n)
}

// RemoveRange removes length bytes starting at offset. Both ends of the range
// must lie on char boundaries and the range must not exceed the text. The
// rope is left unchanged if an error is returned.
func (r *Rope) RemoveRange(offset, length int) error {
	if err := r.checkRange(offset, length); err != nil {
		return err
	}
	if length == 0 {
		return nil
	}
	if length == r.Len() {
		r.root = nil
		return nil
	}
	if leaf, local := r.locate(offset); local+length <= leaf.length {
		r.root = removeInLeaf(r.root, offset, length)
		return nil
	}
	left, rest := split(r.root, offset)
	_, right := split(rest, length)
	r.root = join(left, right)
	return nil
}

// removeInLeaf removes a range lying inside a single leaf. A leaf which
// becomes empty is unlinked and its parent is replaced by the sibling.
func removeInLeaf(n *node, offset, length int) *node {
	if n.isLeaf() {
		c, err := n.leaf.Delete(offset, offset+length)
		assert(err == nil, "rope remove: leaf rejected validated range")
		if c.IsEmpty() {
			return nil
		}
		n.leaf = c
		n.update()
		return n
	}
	if offset < n.left.length {
		n.left = removeInLeaf(n.left, offset, length)
		if n.left == nil {
			return n.right
		}
	} else {
		n.right = removeInLeaf(n.right, offset-n.left.length, length)
		if n.right == nil {
			return n.left
		}
	}
	return rebalance(n)
}

// At returns the byte at offset i.
func (r *Rope) At(i int) (byte, error) {
	if i < 0 || i >= r.Len() {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfBounds, i)
	}
	leaf, local := r.locate(i)
	return leaf.leaf.At(local), nil
}

// Overwrite replaces len(text) bytes starting at offset i with text. Both ends
// of the replaced range must lie on char boundaries.
func (r *Rope) Overwrite(i int, text string) error {
	if err := r.checkRange(i, len(text)); err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	if len(text) == 0 {
		return nil
	}
	if leaf, local := r.locate(i); local+len(text) <= leaf.length {
		c, err := leaf.leaf.Overwrite(local, []byte(text))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotCharBoundary, err)
		}
		leaf.leaf = c
		return nil
	}
	// spans several leaves: lengths are unchanged, but leaf borders need not
	// be rune borders of the new text
	left, rest := split(r.root, i)
	_, right := split(rest, len(text))
	leaves, _ := splitToChunks([]byte(text))
	r.root = join(join(left, buildBalanced(leaves)), right)
	return nil
}

// Report returns length bytes starting at offset as a string.
func (r *Rope) Report(offset, length int) (string, error) {
	if offset < 0 || length < 0 || offset > r.Len() || length > r.Len()-offset {
		return "", fmt.Errorf("%w: range [%d,%d) for length %d", ErrIndexOutOfBounds,
			offset, offset+length, r.Len())
	}
	buf := make([]byte, 0, length)
	for pos, c := range r.ChunksFrom(offset) {
		if pos >= offset+length {
			break
		}
		from := max(0, offset-pos)
		to := min(c.Len(), offset+length-pos)
		buf = c.AppendTo(buf, from, to)
	}
	return string(buf), nil
}

// String returns the complete text.
func (r *Rope) String() string {
	var sb strings.Builder
	sb.Grow(r.Len())
	for _, c := range r.Chunks() {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// WriteTo writes the complete text to w.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var buf []byte
	for _, c := range r.Chunks() {
		buf = c.AppendTo(buf[:0], 0, c.Len())
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Clone returns a deep copy of the rope. The copy shares no nodes and no leaf
// storage with r.
func (r *Rope) Clone() *Rope {
	if r == nil {
		return New()
	}
	return &Rope{root: clone(r.root)}
}

// LeafCount returns the number of leaves.
func (r *Rope) LeafCount() int {
	cnt := 0
	for range r.Chunks() {
		cnt++
	}
	return cnt
}
