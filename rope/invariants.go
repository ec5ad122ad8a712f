package rope

import "fmt"

// Check validates the structural invariants of the rope:
//
//   - a node is a leaf iff it has no children; inner nodes have two children
//   - every leaf holds a non-empty, well-formed chunk
//   - lengths and heights of inner nodes agree with their children
//   - the balance factor of every node is in [-1,1]
//
// Check is meant for tests and debug builds. A rope failing the check must be
// considered corrupt.
func (r *Rope) Check() error {
	if r == nil || r.root == nil {
		return nil
	}
	_, err := checkNode(r.root, 0)
	return err
}

func checkNode(n *node, pos int) (int, error) {
	if (n.left == nil) != (n.right == nil) {
		return 0, fmt.Errorf("%w: node at %d has a single child", ErrInvariantViolation, pos)
	}
	if n.isLeaf() {
		if n.leaf.IsEmpty() {
			return 0, fmt.Errorf("%w: empty leaf at %d", ErrInvariantViolation, pos)
		}
		if err := n.leaf.Check(); err != nil {
			return 0, fmt.Errorf("%w: leaf at %d: %v", ErrInvariantViolation, pos, err)
		}
		if n.length != n.leaf.Len() || n.height != 0 {
			return 0, fmt.Errorf("%w: leaf at %d has length %d/height %d, holds %d bytes",
				ErrInvariantViolation, pos, n.length, n.height, n.leaf.Len())
		}
		return n.length, nil
	}
	l, err := checkNode(n.left, pos)
	if err != nil {
		return 0, err
	}
	r, err := checkNode(n.right, pos+l)
	if err != nil {
		return 0, err
	}
	if n.length != l+r {
		return 0, fmt.Errorf("%w: inner node at %d has length %d, children sum to %d",
			ErrInvariantViolation, pos, n.length, l+r)
	}
	if n.height != 1+max(n.left.height, n.right.height) {
		return 0, fmt.Errorf("%w: inner node at %d has stale height %d",
			ErrInvariantViolation, pos, n.height)
	}
	if b := n.balance(); b < -1 || b > 1 {
		return 0, fmt.Errorf("%w: inner node at %d has balance %d", ErrInvariantViolation, pos, b)
	}
	return n.length, nil
}
