package rbtree

// Remove unlinks node n from the tree. n is detached afterwards and must not
// be used with the tree again.
//
// A node with two children first swaps places with its in-order successor, so
// the node physically unlinked has at most one child. Handles to other nodes
// stay valid, as nodes are relinked rather than having their values moved.
func (t *Tree[V, S]) Remove(n *Node[V, S]) error {
	if err := t.owns(n); err != nil {
		return err
	}
	if n.left != nil && n.right != nil {
		t.swapWithSuccessor(n, n.right.leftmost())
	}
	child := n.left
	if child == nil {
		child = n.right
	}
	parent := n.parent
	switch {
	case child != nil:
		// n is black with a single red child
		t.replaceChild(parent, n, child)
		child.color = Black
		t.Touch(parent)
	case n.color == Red:
		t.replaceChild(parent, n, nil)
		t.Touch(parent)
	default:
		t.removeBlackLeaf(n)
	}
	n.parent, n.left, n.right, n.tree = nil, nil, nil, nil
	return nil
}

// removeBlackLeaf unlinks a black leaf. Its place is taken by a double-black
// sentinel, which is pushed up the tree until the missing unit of blackness
// has been redistributed, and is detached afterwards.
func (t *Tree[V, S]) removeBlackLeaf(n *Node[V, S]) {
	parent := n.parent
	if parent == nil {
		t.root = nil
		return
	}
	s := &Node[V, S]{tree: t, sentinel: true, color: DoubleBlack}
	t.recompute(s)
	t.replaceChild(parent, n, s)
	t.Touch(parent)
	t.fixDoubleBlack(s)
	assert(s.left == nil && s.right == nil, "double-black sentinel acquired children")
	parent = s.parent
	t.replaceChild(parent, s, nil)
	t.Touch(parent)
	s.parent = nil
}

// fixDoubleBlack resolves the double-black node x by case analysis on its
// sibling.
func (t *Tree[V, S]) fixDoubleBlack(x *Node[V, S]) {
	for x != t.root && x.color == DoubleBlack {
		p := x.parent
		if x == p.left {
			s := p.right
			assert(s != nil, "double-black node without sibling")
			if s.color == Red {
				// rotate to a black sibling and retry
				s.color, p.color = Black, Red
				t.rotateLeft(p)
				continue
			}
			if isBlack(s.left) && isBlack(s.right) {
				// pull the extra blackness up to the parent
				s.color, x.color = Red, Black
				if p.color == Red {
					p.color = Black
				} else {
					p.color = DoubleBlack
				}
				x = p
				continue
			}
			if isBlack(s.right) {
				s.left.color, s.color = Black, Red
				t.rotateRight(s)
				s = p.right
			}
			s.color, p.color = p.color, Black
			s.right.color = Black
			t.rotateLeft(p)
			x.color = Black
			return
		}
		s := p.left
		assert(s != nil, "double-black node without sibling")
		if s.color == Red {
			s.color, p.color = Black, Red
			t.rotateRight(p)
			continue
		}
		if isBlack(s.left) && isBlack(s.right) {
			s.color, x.color = Red, Black
			if p.color == Red {
				p.color = Black
			} else {
				p.color = DoubleBlack
			}
			x = p
			continue
		}
		if isBlack(s.left) {
			s.right.color, s.color = Black, Red
			t.rotateLeft(s)
			s = p.left
		}
		s.color, p.color = p.color, Black
		s.left.color = Black
		t.rotateRight(p)
		x.color = Black
		return
	}
	x.color = Black
}

// swapWithSuccessor exchanges the tree positions and colors of z and its
// in-order successor y. y is the leftmost node of z's right subtree.
// Aggregates along the affected path are stale afterwards and are refreshed
// by the caller.
func (t *Tree[V, S]) swapWithSuccessor(z, y *Node[V, S]) {
	zp, zl, zr := z.parent, z.left, z.right
	yp, yr := y.parent, y.right
	t.replaceChild(zp, z, y)
	y.left = zl
	zl.parent = y
	if yp == z {
		y.right = z
		z.parent = y
	} else {
		y.right = zr
		zr.parent = y
		yp.left = z
		z.parent = yp
	}
	z.left = nil
	z.right = yr
	if yr != nil {
		yr.parent = z
	}
	z.color, y.color = y.color, z.color
}
