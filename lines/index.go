package lines

import (
	"fmt"
	"iter"

	"github.com/npillmayer/textbuf/rbtree"
)

type lineNode = rbtree.Node[Record, Summary]

// Line is a view of one line at the time it was retrieved. Line numbers and
// offsets of a view are not updated when the index changes.
type Line struct {
	Number          int // 1-based
	StartOffset     int
	Length          int // excluding the delimiter
	ExactLength     int // including the delimiter
	DelimiterLength int
	node            *lineNode
}

// EndOffset returns the offset just after the line content, i.e. the offset of
// the delimiter if there is one.
func (l Line) EndOffset() int {
	return l.StartOffset + l.Length
}

// Record returns the record of the line.
func (l Line) Record() Record {
	return Record{ExactLength: l.ExactLength, DelimiterLength: l.DelimiterLength}
}

func (l Line) String() string {
	return fmt.Sprintf("line %d [%d,%d)+%d", l.Number, l.StartOffset, l.EndOffset(), l.DelimiterLength)
}

// Index is the line structure of a text.
type Index struct {
	tree *rbtree.Tree[Record, Summary]
}

// New creates an index for an empty text: a single line of length 0.
func New() *Index {
	tree, err := rbtree.New[Record](rbtree.Config[Summary]{Monoid: monoid{}})
	if err != nil {
		panic(err) // monoid is always set
	}
	tree.Append(Record{})
	return &Index{tree: tree}
}

// FromText creates an index by scanning all of src.
func FromText(src Source) *Index {
	idx := New()
	idx.tree.Rebuild(Scan(src, 0, src.Len()))
	return idx
}

// Rebuild replaces all lines with records, building a tree of minimum height.
// records must be non-empty and only the last record may, and must, have
// delimiter length 0.
func (idx *Index) Rebuild(records []Record) error {
	if err := validateRecords(records, true); err != nil {
		return err
	}
	idx.tree.Rebuild(records)
	return nil
}

func validateRecords(records []Record, final bool) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no records", ErrInvalidRecord)
	}
	for i, r := range records {
		if !r.valid() {
			return fmt.Errorf("%w: record %d is %+v", ErrInvalidRecord, i, r)
		}
		last := i == len(records)-1
		if (r.DelimiterLength == 0) != (last && final) {
			return fmt.Errorf("%w: record %d has delimiter length %d", ErrInvalidRecord, i, r.DelimiterLength)
		}
	}
	return nil
}

// Count returns the number of lines, which is at least 1.
func (idx *Index) Count() int {
	return idx.tree.Len()
}

// TotalLength returns the sum of all exact line lengths, i.e. the length of
// the text.
func (idx *Index) TotalLength() int {
	return idx.tree.Summary().Length
}

// ByNumber returns line n, with n in [1,Count].
func (idx *Index) ByNumber(n int) (Line, error) {
	node, err := idx.tree.At(n - 1)
	if err != nil {
		return Line{}, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, n, idx.Count())
	}
	return idx.view(node), nil
}

// ByOffset returns the line containing byte offset, with offset in
// [0,TotalLength]. An offset at the end of a line's delimiter belongs to the
// following line; offset TotalLength belongs to the last line.
func (idx *Index) ByOffset(offset int) (Line, error) {
	if offset < 0 || offset > idx.TotalLength() {
		return Line{}, fmt.Errorf("%w: offset %d of %d", ErrLineOutOfRange, offset, idx.TotalLength())
	}
	node, start, err := rbtree.Seek(idx.tree, offsetDimension{}, offset+1)
	if err != nil {
		return Line{}, err
	}
	if node == nil {
		last := idx.tree.Last()
		return idx.viewAt(last, idx.Count(), idx.TotalLength()-last.Value().ExactLength), nil
	}
	n, _ := idx.tree.IndexOf(node)
	return idx.viewAt(node, n+1, start), nil
}

func (idx *Index) view(node *lineNode) Line {
	n, _ := idx.tree.IndexOf(node)
	prefix, _ := idx.tree.Prefix(node)
	return idx.viewAt(node, n+1, prefix.Length)
}

func (idx *Index) viewAt(node *lineNode, number, start int) Line {
	r := node.Value()
	return Line{
		Number:          number,
		StartOffset:     start,
		Length:          r.Length(),
		ExactLength:     r.ExactLength,
		DelimiterLength: r.DelimiterLength,
		node:            node,
	}
}

// Lines returns an iterator over all lines, in order.
func (idx *Index) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		number, start := 1, 0
		for node := range idx.tree.All() {
			l := idx.viewAt(node, number, start)
			if !yield(l) {
				return
			}
			number++
			start += l.ExactLength
		}
	}
}

// InsertAfter inserts a new line with record rec after line l.
func (idx *Index) InsertAfter(l Line, rec Record) (Line, error) {
	if !rec.valid() {
		return Line{}, fmt.Errorf("%w: %+v", ErrInvalidRecord, rec)
	}
	node, err := idx.tree.InsertAfter(l.node, rec)
	if err != nil {
		return Line{}, fmt.Errorf("%w: %v", ErrStaleLine, err)
	}
	return idx.view(node), nil
}

// Remove removes line l. The last remaining line cannot be removed.
func (idx *Index) Remove(l Line) error {
	if idx.Count() == 1 {
		return fmt.Errorf("%w: cannot remove the only line", ErrLineOutOfRange)
	}
	if err := idx.tree.Remove(l.node); err != nil {
		return fmt.Errorf("%w: %v", ErrStaleLine, err)
	}
	return nil
}

// SetRecord replaces the record of line l and refreshes the aggregates.
func (idx *Index) SetRecord(l Line, rec Record) error {
	if !rec.valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidRecord, rec)
	}
	if err := idx.tree.SetValue(l.node, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrStaleLine, err)
	}
	return nil
}

// Check validates the red-black invariants of the underlying tree and the
// line invariants: at least one line, and exactly the last line without a
// delimiter.
func (idx *Index) Check() error {
	if err := idx.tree.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	if idx.Count() < 1 {
		return fmt.Errorf("%w: index has no lines", ErrInvariantViolation)
	}
	if err := validateRecords(idx.tree.Values(), true); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	return nil
}

// Tree returns the underlying tree, for inspection.
func (idx *Index) Tree() *rbtree.Tree[Record, Summary] {
	return idx.tree
}
