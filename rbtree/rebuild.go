package rbtree

// Rebuild replaces the content of the tree with values, building a tree of
// minimum height in O(n).
//
// Nodes are placed by recursive midpoint split. If the lowest level is not
// full, exactly the nodes on it are colored red; all other nodes are black.
// This yields a valid red-black tree without any fixups. All previously
// handed out nodes are detached.
func (t *Tree[V, S]) Rebuild(values []V) []*Node[V, S] {
	for n := range t.All() {
		n.tree = nil
	}
	nodes := make([]*Node[V, S], len(values))
	for i, v := range values {
		nodes[i] = &Node[V, S]{tree: t, value: v}
	}
	t.root = t.build(nodes, nil, treeHeight(len(nodes)))
	if t.root != nil {
		t.root.color = Black
	}
	tracer().Debugf("rbtree: rebuilt tree of %d nodes, height %d", len(nodes), treeHeight(len(nodes)))
	return nodes
}

func (t *Tree[V, S]) build(nodes []*Node[V, S], parent *Node[V, S], height int) *Node[V, S] {
	if len(nodes) == 0 {
		return nil
	}
	mid := len(nodes) / 2
	n := nodes[mid]
	n.parent = parent
	n.left = t.build(nodes[:mid], n, height-1)
	n.right = t.build(nodes[mid+1:], n, height-1)
	if height == 1 {
		n.color = Red
	} else {
		n.color = Black
	}
	t.recompute(n)
	return n
}

// treeHeight is the height of a midpoint-split tree of size nodes.
func treeHeight(size int) int {
	h := 0
	for ; size > 0; size /= 2 {
		h++
	}
	return h
}
