package rbtree

// Append inserts v as the last value of the tree.
func (t *Tree[V, S]) Append(v V) *Node[V, S] {
	n := t.newNode(v)
	if last := t.Last(); last == nil {
		t.root = n
	} else {
		last.right = n
		n.parent = last
	}
	t.insertFixup(n)
	return n
}

// Prepend inserts v as the first value of the tree.
func (t *Tree[V, S]) Prepend(v V) *Node[V, S] {
	if first := t.First(); first != nil {
		n, _ := t.InsertBefore(first, v)
		return n
	}
	return t.Append(v)
}

// InsertAfter inserts v immediately after node at in sequence order.
func (t *Tree[V, S]) InsertAfter(at *Node[V, S], v V) (*Node[V, S], error) {
	if err := t.owns(at); err != nil {
		return nil, err
	}
	n := t.newNode(v)
	if at.right == nil {
		at.right = n
		n.parent = at
	} else {
		succ := at.right.leftmost()
		succ.left = n
		n.parent = succ
	}
	t.insertFixup(n)
	return n, nil
}

// InsertBefore inserts v immediately before node at in sequence order.
func (t *Tree[V, S]) InsertBefore(at *Node[V, S], v V) (*Node[V, S], error) {
	if err := t.owns(at); err != nil {
		return nil, err
	}
	n := t.newNode(v)
	if at.left == nil {
		at.left = n
		n.parent = at
	} else {
		pred := at.left.rightmost()
		pred.right = n
		n.parent = pred
	}
	t.insertFixup(n)
	return n, nil
}

func (t *Tree[V, S]) newNode(v V) *Node[V, S] {
	n := &Node[V, S]{tree: t, color: Red, value: v}
	t.recompute(n)
	return n
}

// insertFixup restores the red-black properties after n has been linked in
// as a red leaf. Aggregates on the path to the root are refreshed first, so
// rotations operate on correct subtree totals.
func (t *Tree[V, S]) insertFixup(n *Node[V, S]) {
	t.Touch(n.parent)
	for n != t.root && isRed(n.parent) {
		p := n.parent
		g := p.parent // exists, as a red parent is never the root
		if p == g.left {
			if u := g.right; isRed(u) {
				p.color, u.color, g.color = Black, Black, Red
				n = g
				continue
			}
			if n == p.right {
				n = p
				t.rotateLeft(n)
				p = n.parent
			}
			p.color, g.color = Black, Red
			t.rotateRight(g)
		} else {
			if u := g.left; isRed(u) {
				p.color, u.color, g.color = Black, Black, Red
				n = g
				continue
			}
			if n == p.left {
				n = p
				t.rotateRight(n)
				p = n.parent
			}
			p.color, g.color = Black, Red
			t.rotateLeft(g)
		}
	}
	t.root.color = Black
}
