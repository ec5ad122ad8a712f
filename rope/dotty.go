package rope

import (
	"fmt"
	"io"
	"strings"
)

type nodeids struct {
	idTable map[*node]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[*node]int),
		max:     1,
	}
}

func (ids *nodeids) alloc(n *node) int {
	if id := ids.idTable[n]; id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// ToDot outputs the internal structure of a rope in Graphviz DOT format
// (for debugging purposes).
func (r *Rope) ToDot(w io.Writer) error {
	var nodelist, edgelist strings.Builder
	ids := newtable()
	var walk func(n *node, pos int)
	walk = func(n *node, pos int) {
		id := ids.alloc(n)
		if n.isLeaf() {
			label := fmt.Sprintf("%d @%d\\n“%s”", n.length, pos, strstart(n))
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", id, label, nodeDotStyles(true))
			return
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%d h%d\" %s];\n", id, n.length, n.height,
			nodeDotStyles(false))
		walk(n.left, pos)
		walk(n.right, pos+n.left.length)
		fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, ids.alloc(n.left))
		fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, ids.alloc(n.right))
	}
	if r != nil && r.root != nil {
		walk(r.root, 0)
	}
	_, err := io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"+
		nodelist.String()+edgelist.String()+"}\n")
	if err != nil {
		tracer().Errorf("rope DOT: %s", err.Error())
	}
	return err
}

// strstart returns a short, DOT-safe prefix of a leaf's text.
func strstart(n *node) string {
	s := n.leaf.String()
	if n.leaf.CharCount() > 10 {
		runes := []rune(s)
		s = string(runes[:10]) + "…"
	}
	s = strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\\\n", "\r", "\\\\r").Replace(s)
	return s
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\",shape=circle"
	}
	return s
}
