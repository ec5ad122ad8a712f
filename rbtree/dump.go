package rbtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Palette maps node colors to console colors for Dump.
type Palette map[Color]*color.Color

func makeDefaultPalette() Palette {
	return Palette{
		Red:         color.New(color.FgRed),
		Black:       color.New(color.FgBlue),
		DoubleBlack: color.New(color.FgHiMagenta, color.Bold),
	}
}

// Dump writes the tree sideways to w, root at the left margin and the right
// subtree above the left one. Each node is printed with its value, node count
// and subtree summary, colored by its node color. A nil palette selects a
// default palette; output to non-terminals is uncolored unless color.NoColor
// is cleared by the caller.
func (t *Tree[V, S]) Dump(w io.Writer, palette Palette) {
	if palette == nil {
		palette = makeDefaultPalette()
	}
	if t.root == nil {
		io.WriteString(w, "(empty)\n")
		return
	}
	t.dumpNode(w, t.root, 0, palette)
}

func (t *Tree[V, S]) dumpNode(w io.Writer, n *Node[V, S], depth int, palette Palette) {
	if n == nil {
		return
	}
	t.dumpNode(w, n.right, depth+1, palette)
	io.WriteString(w, strings.Repeat("    ", depth))
	label := fmt.Sprintf("%v [%d] %v", n.value, n.count, n.total)
	if c, ok := palette[n.color]; ok {
		c.Fprint(w, label)
	} else {
		io.WriteString(w, label)
	}
	io.WriteString(w, "\n")
	t.dumpNode(w, n.left, depth+1, palette)
}
