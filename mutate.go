package textbuf

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Insert inserts text at offset.
func (doc *Document) Insert(offset int, text string) error {
	return doc.edit(offset, 0, text)
}

// Remove removes length bytes starting at offset.
func (doc *Document) Remove(offset, length int) error {
	return doc.edit(offset, length, "")
}

// Replace replaces length bytes starting at offset by text.
func (doc *Document) Replace(offset, length int, text string) error {
	return doc.edit(offset, length, text)
}

// Update runs fn as a single mutation: edits done by fn are reported by one
// Changing and one Changed notification. Update fails with
// ErrMutationInProgress if called from within a mutation or a change
// handler. Edits fn has done before returning an error stay in place and are
// reported.
func (doc *Document) Update(fn func() error) error {
	doc.owner.check()
	if fn == nil {
		return ErrNilArgument
	}
	if doc.state != idle {
		return ErrMutationInProgress
	}
	doc.state = mutating
	defer func() {
		if r := recover(); r != nil {
			doc.reset()
			panic(r)
		}
	}()
	err := fn()
	doc.finish()
	return err
}

func (doc *Document) edit(offset, removed int, text string) error {
	doc.owner.check()
	if doc.state == notifying {
		return ErrMutationInProgress
	}
	if err := doc.validate(offset, removed, text); err != nil {
		return err
	}
	if removed == 0 && len(text) == 0 {
		return nil
	}
	grouped := doc.state == mutating
	if !grouped {
		doc.state = mutating
		defer func() {
			if r := recover(); r != nil {
				doc.reset()
				panic(r)
			}
		}()
	}
	if !doc.notified {
		doc.notified = true
		doc.notifyChanging()
	}
	doc.pending = append(doc.pending, doc.apply(offset, removed, text))
	if !grouped {
		doc.finish()
	}
	return nil
}

// validate checks the arguments of an edit against the current text.
func (doc *Document) validate(offset, length int, text string) error {
	n := doc.text.Len()
	if offset < 0 || length < 0 || offset > n || length > n-offset {
		return fmt.Errorf("%w: [%d,%d) of %d", ErrOutOfRange, offset, offset+length, n)
	}
	if !doc.text.IsCharBoundary(offset) {
		return fmt.Errorf("%w: %d", ErrNotCharBoundary, offset)
	}
	if !doc.text.IsCharBoundary(offset + length) {
		return fmt.Errorf("%w: %d", ErrNotCharBoundary, offset+length)
	}
	if !utf8.ValidString(text) {
		return ErrInvalidText
	}
	return nil
}

// apply performs a validated edit on the rope, the lines and the anchors.
// Errors at this point mean that the structures are out of sync.
func (doc *Document) apply(offset, removed int, text string) ChangeRecord {
	doc.mu.Lock()
	err := doc.text.RemoveRange(offset, removed)
	if err == nil {
		err = doc.text.Insert(offset, text)
	}
	doc.mu.Unlock()
	if err != nil {
		panic(fmt.Errorf("%w: validated edit failed: %v", ErrInvariantViolation, err))
	}
	change, err := doc.lines.Update(doc.text, offset, removed, len(text))
	if err != nil {
		panic(fmt.Errorf("%w: line index out of sync: %v", ErrInvariantViolation, err))
	}
	rec := ChangeRecord{
		Offset:         offset,
		InsertedLength: len(text),
		RemovedLength:  removed,
		FirstLine:      change.FirstLine,
		RemovedLines:   change.RemovedLines,
		InsertedLines:  change.InsertedLines,
	}
	if removed > 0 {
		rec.DeletedAnchors, _ = doc.anchors.RemoveText(offset, removed)
	}
	if len(text) > 0 {
		_ = doc.anchors.InsertText(offset, len(text))
	}
	doc.trace.Debugf("textbuf: %v", rec)
	return rec
}

// finish ends a mutation: it checks the structures if configured to, and
// notifies handlers and subscribers.
func (doc *Document) finish() {
	records := doc.pending
	doc.pending, doc.notified = nil, false
	if len(records) == 0 {
		doc.state = idle
		return
	}
	if doc.checkInvariants {
		if err := doc.check(); err != nil {
			doc.trace.Errorf("textbuf: %v", err)
			panic(err)
		}
	}
	doc.state = notifying
	for _, h := range slices.Clone(doc.changed.entries) {
		h.fn(doc, records)
	}
	doc.state = idle
	doc.publish(records)
}

func (doc *Document) notifyChanging() {
	prev := doc.state
	doc.state = notifying
	for _, h := range slices.Clone(doc.changing.entries) {
		h.fn(doc)
	}
	doc.state = prev
}

// reset leaves a mutation interrupted by a panic.
func (doc *Document) reset() {
	doc.state = idle
	doc.pending, doc.notified = nil, false
}
