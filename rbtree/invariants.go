package rbtree

import "fmt"

// Check validates the tree invariants:
//
//   - the root is black and has no parent
//   - parent links agree with child links
//   - no red node has a red child
//   - every path from the root to a nil link passes the same number of
//     black nodes
//   - no double-black node or deletion sentinel is left in the tree
//   - node counts and aggregated summaries agree with a recomputation
//
// Check should be used in tests and debug builds.
func (t *Tree[V, S]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		return nil
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrInvariantViolation)
	}
	if t.root.color != Black {
		return fmt.Errorf("%w: root is %s", ErrInvariantViolation, t.root.color)
	}
	_, err := t.checkNode(t.root, 0)
	return err
}

// checkNode returns the black-height of the subtree at n. index is the
// sequence position of the leftmost node of n and is used for messages only.
func (t *Tree[V, S]) checkNode(n *Node[V, S], index int) (int, error) {
	if n == nil {
		return 1, nil
	}
	if n.sentinel || n.color == DoubleBlack {
		return 0, fmt.Errorf("%w: deletion residue near position %d", ErrInvariantViolation, index)
	}
	if n.tree != t {
		return 0, fmt.Errorf("%w: node near position %d belongs to another tree", ErrInvariantViolation, index)
	}
	for _, c := range []*Node[V, S]{n.left, n.right} {
		if c == nil {
			continue
		}
		if c.parent != n {
			return 0, fmt.Errorf("%w: broken parent link near position %d", ErrInvariantViolation, index)
		}
		if n.color == Red && c.color == Red {
			return 0, fmt.Errorf("%w: red node with red child near position %d", ErrInvariantViolation, index)
		}
	}
	lh, err := t.checkNode(n.left, index)
	if err != nil {
		return 0, err
	}
	rh, err := t.checkNode(n.right, index+count(n.left)+1)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: black-heights %d/%d differ near position %d",
			ErrInvariantViolation, lh, rh, index)
	}
	m := t.cfg.Monoid
	if n.count != count(n.left)+1+count(n.right) {
		return 0, fmt.Errorf("%w: stale node count near position %d", ErrInvariantViolation, index)
	}
	if total := m.Add(m.Add(t.totalOf(n.left), n.value.Summary()), t.totalOf(n.right)); total != n.total {
		return 0, fmt.Errorf("%w: stale summary %v (want %v) near position %d",
			ErrInvariantViolation, n.total, total, index)
	}
	if n.color == Black {
		lh++
	}
	return lh, nil
}
