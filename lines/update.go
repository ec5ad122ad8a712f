package lines

import "fmt"

// Change describes how an edit changed the line structure: lines
// [FirstLine, FirstLine+RemovedLines) of the old text were replaced by lines
// [FirstLine, FirstLine+InsertedLines) of the new text.
type Change struct {
	FirstLine     int
	RemovedLines  int
	InsertedLines int
}

// Update re-measures the lines touched by an edit. src must already contain
// the edit, which replaced removed bytes at offset by inserted bytes; the
// index still describes the text before the edit.
//
// The region rescanned reaches from the start of the line containing offset
// (or the line before, if offset starts a line, as a "\r" ending that line may
// now be followed by '\n') to the end of the line containing offset+removed.
// If the region spans the whole text, the tree is rebuilt.
func (idx *Index) Update(src Source, offset, removed, inserted int) (Change, error) {
	oldTotal := idx.TotalLength()
	if offset < 0 || removed < 0 || inserted < 0 || offset+removed > oldTotal {
		return Change{}, fmt.Errorf("%w: edit at %d (-%d/+%d) of %d", ErrLineOutOfRange,
			offset, removed, inserted, oldTotal)
	}
	if src.Len() != oldTotal-removed+inserted {
		return Change{}, fmt.Errorf("%w: source has %d bytes, expected %d", ErrInvalidRecord,
			src.Len(), oldTotal-removed+inserted)
	}
	first, _ := idx.ByOffset(offset)
	if first.StartOffset == offset && first.Number > 1 {
		first, _ = idx.ByNumber(first.Number - 1)
	}
	last, _ := idx.ByOffset(offset + removed)
	isFinal := last.Number == idx.Count()
	regionEnd := last.StartOffset + last.ExactLength - removed + inserted
	records := Scan(src, first.StartOffset, regionEnd)
	if !isFinal {
		// the region ends with a delimiter; drop the empty remainder
		records = records[:len(records)-1]
	}
	change := Change{
		FirstLine:     first.Number,
		RemovedLines:  last.Number - first.Number + 1,
		InsertedLines: len(records),
	}
	if first.Number == 1 && isFinal {
		idx.tree.Rebuild(records)
		tracer().Debugf("lines: rebuilt index with %d lines", len(records))
		return change, nil
	}
	// reuse the nodes of the old lines, then remove surplus or add lines
	node := first.node
	for i := 0; i < change.RemovedLines; i++ {
		next := idx.tree.Next(node)
		if i < len(records) {
			_ = idx.tree.SetValue(node, records[i])
		} else {
			_ = idx.tree.Remove(node)
		}
		if i < change.RemovedLines-1 {
			node = next
		}
	}
	if n := len(records) - change.RemovedLines; n > 0 {
		// node is the last reused line
		for _, r := range records[change.RemovedLines:] {
			node, _ = idx.tree.InsertAfter(node, r)
		}
	}
	return change, nil
}
