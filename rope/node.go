package rope

import "github.com/npillmayer/textbuf/chunk"

// node is either a leaf carrying a chunk or an inner node with exactly two
// children.
type node struct {
	left, right *node
	length      int // bytes in subtree
	height      int // 0 for leaves
	leaf        chunk.Chunk
}

func makeLeaf(c chunk.Chunk) *node {
	return &node{length: c.Len(), leaf: c}
}

func makeInner(left, right *node) *node {
	assert(left != nil && right != nil, "inner node requires two children")
	n := &node{left: left, right: right}
	n.update()
	return n
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// update recomputes length and height from the children. Leaves are not
// touched.
func (n *node) update() {
	if n.isLeaf() {
		n.length = n.leaf.Len()
		n.height = 0
		return
	}
	n.length = n.left.length + n.right.length
	n.height = 1 + max(n.left.height, n.right.height)
}

func (n *node) balance() int {
	if n.isLeaf() {
		return 0
	}
	return n.left.height - n.right.height
}

// rotateRight lifts the left child of n. Only n and its former left child
// change subtree composition, so only these two are recomputed.
func rotateRight(n *node) *node {
	x := n.left
	n.left = x.right
	x.right = n
	n.update()
	x.update()
	return x
}

// rotateLeft is the mirror image of rotateRight.
func rotateLeft(n *node) *node {
	x := n.right
	n.right = x.left
	x.left = n
	n.update()
	x.update()
	return x
}

// rebalance restores the AVL condition at n, assuming both subtrees are
// balanced and their heights differ by at most 2. It returns the new subtree
// root.
func rebalance(n *node) *node {
	if n.isLeaf() {
		return n
	}
	n.update()
	switch b := n.balance(); {
	case b > 1:
		if n.left.balance() < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case b < -1:
		if n.right.balance() > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

// join concatenates two balanced subtrees of arbitrary heights. It descends
// along the spine of the taller tree until the heights are within one, links
// there, and rebalances on the way back up. Adjacent small leaves are merged.
func join(l, r *node) *node {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	switch {
	case l.height > r.height+1:
		l.right = join(l.right, r)
		return rebalance(l)
	case r.height > l.height+1:
		r.left = join(l, r.left)
		return rebalance(r)
	}
	if l.isLeaf() && r.isLeaf() {
		if merged, ok := l.leaf.Append(r.leaf); ok {
			l.leaf = merged
			l.update()
			return l
		}
	}
	return makeInner(l, r)
}

// split cuts subtree n before byte offset, which must be a char boundary.
// Nodes of n are reused; n must not be used afterwards.
func split(n *node, offset int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if offset <= 0 {
		return nil, n
	}
	if offset >= n.length {
		return n, nil
	}
	if n.isLeaf() {
		l, r, err := n.leaf.SplitAt(offset)
		assert(err == nil, "rope split: offset not on char boundary")
		return makeLeaf(l), makeLeaf(r)
	}
	left, right := n.left, n.right
	switch {
	case offset < left.length:
		ll, lr := split(left, offset)
		return ll, join(lr, right)
	case offset == left.length:
		return left, right
	default:
		rl, rr := split(right, offset-left.length)
		return join(left, rl), rr
	}
}

// buildBalanced creates a minimum-height tree over leaves in order.
func buildBalanced(leaves []chunk.Chunk) *node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return makeLeaf(leaves[0])
	}
	mid := len(leaves) / 2
	return makeInner(buildBalanced(leaves[:mid]), buildBalanced(leaves[mid:]))
}

// clone deep-copies subtree n. Leaf chunks are arrays and are copied by value.
func clone(n *node) *node {
	if n == nil {
		return nil
	}
	c := *n
	c.left = clone(n.left)
	c.right = clone(n.right)
	return &c
}
