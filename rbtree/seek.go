package rbtree

import "fmt"

// Seek finds the first node where the dimension, accumulated in sequence order
// over the values up to and including that node, reaches target.
//
// It returns the node and the accumulated dimension of all values before it.
// If target is never reached, the node is nil and acc holds the dimension of
// the whole tree.
func Seek[V Summarized[S], S comparable, K any](t *Tree[V, S], dim Dimension[S, K], target K) (n *Node[V, S], acc K, err error) {
	if t == nil || dim == nil {
		var zero K
		return nil, zero, fmt.Errorf("%w: cursor not initialized", ErrInvalidDimension)
	}
	acc = dim.Zero()
	n = t.root
	for n != nil {
		if n.left != nil {
			left := dim.Add(acc, n.left.total)
			if dim.Compare(left, target) >= 0 {
				n = n.left
				continue
			}
			acc = left
		}
		self := dim.Add(acc, n.value.Summary())
		if dim.Compare(self, target) >= 0 {
			return n, acc, nil
		}
		acc = self
		n = n.right
	}
	return nil, acc, nil
}
