package rbtree

import (
	"fmt"
	"iter"
)

// Tree is an augmented red-black tree holding values of type V in sequence
// order. S is the summary type of V.
//
// Trees are not safe for concurrent use.
type Tree[V Summarized[S], S comparable] struct {
	root *Node[V, S]
	cfg  Config[S]
}

// New creates an empty tree.
func New[V Summarized[S], S comparable](cfg Config[S]) (*Tree[V, S], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[V, S]{cfg: cfg}, nil
}

// Len returns the number of values in the tree.
func (t *Tree[V, S]) Len() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.root.count
}

// IsEmpty reports whether the tree holds no values.
func (t *Tree[V, S]) IsEmpty() bool {
	return t.Len() == 0
}

// Summary returns the aggregated summary of all values.
func (t *Tree[V, S]) Summary() S {
	if t.root == nil {
		return t.cfg.Monoid.Zero()
	}
	return t.root.total
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[V, S]) Root() *Node[V, S] {
	return t.root
}

// First returns the first node in sequence order.
func (t *Tree[V, S]) First() *Node[V, S] {
	if t.root == nil {
		return nil
	}
	return t.root.leftmost()
}

// Last returns the last node in sequence order.
func (t *Tree[V, S]) Last() *Node[V, S] {
	if t.root == nil {
		return nil
	}
	return t.root.rightmost()
}

// Next returns the in-order successor of n, or nil.
func (t *Tree[V, S]) Next(n *Node[V, S]) *Node[V, S] {
	if n.right != nil {
		return n.right.leftmost()
	}
	for n.parent != nil && n == n.parent.right {
		n = n.parent
	}
	return n.parent
}

// Prev returns the in-order predecessor of n, or nil.
func (t *Tree[V, S]) Prev(n *Node[V, S]) *Node[V, S] {
	if n.left != nil {
		return n.left.rightmost()
	}
	for n.parent != nil && n == n.parent.left {
		n = n.parent
	}
	return n.parent
}

// All returns an in-order iterator over the nodes of t. The tree must not be
// changed structurally while iterating.
func (t *Tree[V, S]) All() iter.Seq[*Node[V, S]] {
	return func(yield func(*Node[V, S]) bool) {
		for n := t.First(); n != nil; n = t.Next(n) {
			if !yield(n) {
				return
			}
		}
	}
}

// Values returns a copy of all values in sequence order.
func (t *Tree[V, S]) Values() []V {
	vals := make([]V, 0, t.Len())
	for n := range t.All() {
		vals = append(vals, n.value)
	}
	return vals
}

// At returns the node at 0-based position index.
func (t *Tree[V, S]) At(index int) (*Node[V, S], error) {
	if index < 0 || index >= t.Len() {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfBounds, index, t.Len())
	}
	n := t.root
	for {
		l := count(n.left)
		switch {
		case index < l:
			n = n.left
		case index == l:
			return n, nil
		default:
			index -= l + 1
			n = n.right
		}
	}
}

// IndexOf returns the 0-based position of n.
func (t *Tree[V, S]) IndexOf(n *Node[V, S]) (int, error) {
	if err := t.owns(n); err != nil {
		return -1, err
	}
	index := count(n.left)
	for ; n.parent != nil; n = n.parent {
		if n == n.parent.right {
			index += count(n.parent.left) + 1
		}
	}
	return index, nil
}

// Prefix returns the aggregated summary of all values before n.
func (t *Tree[V, S]) Prefix(n *Node[V, S]) (S, error) {
	if err := t.owns(n); err != nil {
		return t.cfg.Monoid.Zero(), err
	}
	m := t.cfg.Monoid
	acc := t.totalOf(n.left)
	for ; n.parent != nil; n = n.parent {
		if p := n.parent; n == p.right {
			acc = m.Add(m.Add(t.totalOf(p.left), p.value.Summary()), acc)
		}
	}
	return acc, nil
}

// SetValue replaces the value of n and refreshes the aggregates up to the
// root.
func (t *Tree[V, S]) SetValue(n *Node[V, S], v V) error {
	if err := t.owns(n); err != nil {
		return err
	}
	n.value = v
	t.Touch(n)
	return nil
}

// Touch recomputes the aggregates of n and of all its ancestors. Clients
// call Touch after changing a value's summary in place.
func (t *Tree[V, S]) Touch(n *Node[V, S]) {
	for ; n != nil; n = n.parent {
		t.recompute(n)
	}
}

func (t *Tree[V, S]) owns(n *Node[V, S]) error {
	if n == nil {
		return ErrNilNode
	}
	if n.tree != t {
		return ErrForeignNode
	}
	return nil
}

func (t *Tree[V, S]) totalOf(n *Node[V, S]) S {
	if n == nil {
		return t.cfg.Monoid.Zero()
	}
	return n.total
}

func count[V Summarized[S], S comparable](n *Node[V, S]) int {
	if n == nil {
		return 0
	}
	return n.count
}

// recompute refreshes count and total of n from its children.
func (t *Tree[V, S]) recompute(n *Node[V, S]) {
	m := t.cfg.Monoid
	if n.sentinel {
		n.count, n.total = 0, m.Zero()
		return
	}
	n.count = count(n.left) + 1 + count(n.right)
	n.total = m.Add(m.Add(t.totalOf(n.left), n.value.Summary()), t.totalOf(n.right))
}

// replaceChild links child into the place of old below parent. A nil parent
// denotes the root position.
func (t *Tree[V, S]) replaceChild(parent, old, child *Node[V, S]) {
	switch {
	case parent == nil:
		t.root = child
	case parent.left == old:
		parent.left = child
	default:
		parent.right = child
	}
	if child != nil {
		child.parent = parent
	}
}

// rotateLeft lifts the right child of x. Only x and its former right child
// change subtree composition; their aggregates are recomputed.
func (t *Tree[V, S]) rotateLeft(x *Node[V, S]) {
	y := x.right
	assert(y != nil, "rotateLeft without right child")
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	t.replaceChild(x.parent, x, y)
	y.left = x
	x.parent = y
	t.recompute(x)
	t.recompute(y)
}

// rotateRight is the mirror image of rotateLeft.
func (t *Tree[V, S]) rotateRight(x *Node[V, S]) {
	y := x.left
	assert(y != nil, "rotateRight without left child")
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	t.replaceChild(x.parent, x, y)
	y.right = x
	x.parent = y
	t.recompute(x)
	t.recompute(y)
}
