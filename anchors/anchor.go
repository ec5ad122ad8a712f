package anchors

import (
	"fmt"

	"github.com/npillmayer/textbuf/rbtree"
)

// Movement determines what happens to an anchor when text is inserted exactly
// at its offset.
type Movement uint8

const (
	// BeforeInsertion keeps the anchor in front of inserted text.
	BeforeInsertion Movement = iota
	// AfterInsertion moves the anchor behind inserted text.
	AfterInsertion
)

func (m Movement) String() string {
	if m == AfterInsertion {
		return "after-insertion"
	}
	return "before-insertion"
}

// Anchor is a handle to a position in a text.
type Anchor struct {
	index    *Index
	node     *anchorNode // nil once deleted
	movement Movement
	survive  bool
	frozen   int // offset at the time of deletion
}

// Offset returns the current byte offset of the anchor. A deleted anchor
// reports the offset it had when it was deleted.
func (a *Anchor) Offset() int {
	if a.node == nil {
		return a.frozen
	}
	prefix, err := a.index.tree.Prefix(a.node)
	if err != nil {
		panic(fmt.Sprintf("anchor out of sync with index: %v", err))
	}
	return prefix.Length + a.node.Value().length
}

// Movement returns the insertion policy of the anchor.
func (a *Anchor) Movement() Movement {
	return a.movement
}

// SurviveDeletion reports whether the anchor survives removal of the text
// around it.
func (a *Anchor) SurviveDeletion() bool {
	return a.survive
}

// IsDeleted reports whether the anchor has been removed from its index, either
// explicitly or by removal of the text it was located in.
func (a *Anchor) IsDeleted() bool {
	return a.node == nil
}

func (a *Anchor) String() string {
	if a.IsDeleted() {
		return fmt.Sprintf("anchor(deleted @%d)", a.frozen)
	}
	return fmt.Sprintf("anchor(@%d, %s)", a.Offset(), a.movement)
}

// delta is the value stored in the tree: the distance to the offset of the
// preceding anchor, and the anchor bound to the node.
type delta struct {
	length int
	anchor *Anchor
}

// Summary is part of interface rbtree.Summarized.
func (d delta) Summary() Summary {
	return Summary{Count: 1, Length: d.length}
}

func (d delta) String() string {
	return fmt.Sprintf("+%d", d.length)
}

// Summary aggregates the anchors of a subtree.
type Summary struct {
	Count  int
	Length int // sum of distances
}

type monoid struct{}

func (monoid) Zero() Summary { return Summary{} }

func (monoid) Add(left, right Summary) Summary {
	return Summary{Count: left.Count + right.Count, Length: left.Length + right.Length}
}

type offsetDimension struct{}

func (offsetDimension) Zero() int { return 0 }

func (offsetDimension) Add(acc int, s Summary) int { return acc + s.Length }

func (offsetDimension) Compare(acc, target int) int { return acc - target }

type anchorNode = rbtree.Node[delta, Summary]
