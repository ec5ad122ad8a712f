package anchors

import (
	"fmt"
	"io"
	"iter"

	"github.com/npillmayer/textbuf/rbtree"
)

// Index holds the anchors of one text.
type Index struct {
	tree *rbtree.Tree[delta, Summary]
}

// New creates an empty anchor index.
func New() *Index {
	tree, err := rbtree.New[delta](rbtree.Config[Summary]{Monoid: monoid{}})
	if err != nil {
		panic(err) // monoid is always set
	}
	return &Index{tree: tree}
}

// Count returns the number of live anchors.
func (idx *Index) Count() int {
	return idx.tree.Len()
}

// All returns an iterator over all live anchors in offset order. Anchors at
// the same offset are ordered by creation, as long as no insertion at their
// offset separated them by movement.
func (idx *Index) All() iter.Seq[*Anchor] {
	return func(yield func(*Anchor) bool) {
		for n := range idx.tree.All() {
			if !yield(n.Value().anchor) {
				return
			}
		}
	}
}

// Create adds an anchor at offset. An anchor created at the offset of
// existing anchors is placed behind them.
//
// The index does not know the length of the text; callers check the upper
// bound of offset.
func (idx *Index) Create(offset int, movement Movement, survive bool) (*Anchor, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrOffsetOutOfRange, offset)
	}
	a := &Anchor{index: idx, movement: movement, survive: survive}
	succ, before, _ := rbtree.Seek(idx.tree, offsetDimension{}, offset+1)
	if succ == nil {
		a.node = idx.tree.Append(delta{length: offset - before, anchor: a})
		return a, nil
	}
	d := offset - before
	node, err := idx.tree.InsertBefore(succ, delta{length: d, anchor: a})
	if err != nil {
		return nil, err
	}
	a.node = node
	sv := succ.Value()
	sv.length -= d
	_ = idx.tree.SetValue(succ, sv)
	return a, nil
}

// Remove deletes anchor a from the index. The distance of a is added to its
// successor, which keeps all other offsets unchanged.
func (idx *Index) Remove(a *Anchor) error {
	if a == nil || a.index != idx {
		return ErrForeignAnchor
	}
	if a.IsDeleted() {
		return ErrAnchorDeleted
	}
	idx.detach(a, a.Offset(), true)
	return nil
}

// detach unlinks a from the tree and freezes its offset. If keepSuccessor is
// set, the distance of a is handed on to its successor.
func (idx *Index) detach(a *Anchor, offset int, keepSuccessor bool) {
	node := a.node
	if keepSuccessor {
		if succ := idx.tree.Next(node); succ != nil {
			sv := succ.Value()
			sv.length += node.Value().length
			_ = idx.tree.SetValue(succ, sv)
		}
	}
	err := idx.tree.Remove(node)
	assert(err == nil, "anchor node not part of its index")
	a.node = nil
	a.frozen = offset
}

// InsertText moves anchors for an insertion of length bytes at offset.
// Anchors behind offset move by length. Anchors at offset move if their
// movement is AfterInsertion; they are reordered so that all anchors staying
// at offset precede the ones moving, keeping relative order otherwise.
func (idx *Index) InsertText(offset, length int) error {
	if offset < 0 || length < 0 {
		return fmt.Errorf("%w: insertion of %d at %d", ErrOffsetOutOfRange, length, offset)
	}
	if length == 0 {
		return nil
	}
	first, before, _ := rbtree.Seek(idx.tree, offsetDimension{}, offset)
	if first == nil {
		return nil
	}
	if before+first.Value().length > offset {
		idx.grow(first, length)
		return nil
	}
	// collect the run of anchors located exactly at offset
	run := []*anchorNode{first}
	for n := idx.tree.Next(first); n != nil && n.Value().length == 0; n = idx.tree.Next(n) {
		run = append(run, n)
	}
	stay := make([]*Anchor, 0, len(run))
	move := make([]*Anchor, 0, len(run))
	for _, n := range run {
		if a := n.Value().anchor; a.movement == AfterInsertion {
			move = append(move, a)
		} else {
			stay = append(stay, a)
		}
	}
	if len(move) > 0 && len(stay) > 0 {
		// all nodes of the run share one offset, so anchors may be rebound
		// to different nodes of the run without touching any distance
		for i, a := range append(stay, move...) {
			v := run[i].Value()
			v.anchor = a
			a.node = run[i]
			_ = idx.tree.SetValue(run[i], v)
		}
	}
	if len(move) > 0 {
		idx.grow(run[len(stay)], length)
	} else if n := idx.tree.Next(run[len(run)-1]); n != nil {
		idx.grow(n, length)
	}
	return nil
}

func (idx *Index) grow(n *anchorNode, length int) {
	v := n.Value()
	v.length += length
	_ = idx.tree.SetValue(n, v)
}

// RemoveText moves anchors for a removal of length bytes at offset. Anchors
// strictly inside the removed range are deleted, unless they survive
// deletion; surviving anchors and anchors at offset+length move to offset.
// Anchors behind the range move by -length.
//
// RemoveText returns the anchors deleted.
func (idx *Index) RemoveText(offset, length int) ([]*Anchor, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("%w: removal of %d at %d", ErrOffsetOutOfRange, length, offset)
	}
	if length == 0 {
		return nil, nil
	}
	end := offset + length
	n, prev, _ := rbtree.Seek(idx.tree, offsetDimension{}, offset+1)
	type affected struct {
		node   *anchorNode
		offset int
	}
	var window []affected
	cur := prev
	for ; n != nil; n = idx.tree.Next(n) {
		cur += n.Value().length
		if cur > end {
			break
		}
		window = append(window, affected{n, cur})
	}
	// n is now the first anchor behind the range, at offset cur
	var deleted []*Anchor
	for _, w := range window {
		a := w.node.Value().anchor
		if w.offset < end && !a.survive {
			idx.detach(a, offset, false)
			deleted = append(deleted, a)
			continue
		}
		v := w.node.Value()
		v.length = offset - prev
		_ = idx.tree.SetValue(w.node, v)
		prev = offset
	}
	if n != nil {
		v := n.Value()
		v.length = cur - length - prev
		_ = idx.tree.SetValue(n, v)
	}
	if len(deleted) > 0 {
		tracer().Debugf("anchors: removal of [%d,%d) deleted %d anchors", offset, end, len(deleted))
	}
	return deleted, nil
}

// Check validates the red-black invariants of the underlying tree and the
// bindings between anchors and tree nodes.
func (idx *Index) Check() error {
	if err := idx.tree.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	i := 0
	for n := range idx.tree.All() {
		v := n.Value()
		if v.length < 0 {
			return fmt.Errorf("%w: anchor %d has negative distance %d", ErrInvariantViolation, i, v.length)
		}
		if v.anchor == nil || v.anchor.node != n || v.anchor.index != idx {
			return fmt.Errorf("%w: anchor %d is not bound to its node", ErrInvariantViolation, i)
		}
		i++
	}
	return nil
}

// Dump writes the anchor tree to w, for debugging.
func (idx *Index) Dump(w io.Writer) {
	idx.tree.Dump(w, nil)
}
