package rbtree

// Color is the color of a tree node.
type Color uint8

const (
	Red Color = iota
	Black
	// DoubleBlack marks one extra unit of blackness. It exists only while a
	// deletion is being fixed up.
	DoubleBlack
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	case DoubleBlack:
		return "double-black"
	}
	return "invalid"
}

// Node is a node of a tree, holding one value.
type Node[V Summarized[S], S comparable] struct {
	parent, left, right *Node[V, S]
	tree                *Tree[V, S]
	color               Color
	sentinel            bool
	count               int // nodes in subtree, sentinels excluded
	total               S   // aggregated summary of subtree
	value               V
}

// Value returns the value stored at n.
func (n *Node[V, S]) Value() V {
	return n.value
}

// Color returns the color of n.
func (n *Node[V, S]) Color() Color {
	return n.color
}

// Total returns the aggregated summary of the subtree rooted at n.
func (n *Node[V, S]) Total() S {
	return n.total
}

// Attached reports whether n is currently part of a tree.
func (n *Node[V, S]) Attached() bool {
	return n != nil && n.tree != nil
}

func isRed[V Summarized[S], S comparable](n *Node[V, S]) bool {
	return n != nil && n.color == Red
}

func isBlack[V Summarized[S], S comparable](n *Node[V, S]) bool {
	return n == nil || n.color != Red
}

func (n *Node[V, S]) leftmost() *Node[V, S] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *Node[V, S]) rightmost() *Node[V, S] {
	for n.right != nil {
		n = n.right
	}
	return n
}

func (n *Node[V, S]) sibling() *Node[V, S] {
	if n.parent == nil {
		return nil
	}
	if n == n.parent.left {
		return n.parent.right
	}
	return n.parent.left
}
