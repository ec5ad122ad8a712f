package textbuf

import (
	"context"
	"fmt"
	"slices"

	"github.com/guiguan/caster"
)

// ChangeRecord describes a single edit of a document: RemovedLength bytes at
// Offset have been replaced by InsertedLength bytes. Lines
// [FirstLine, FirstLine+RemovedLines) of the old text have been replaced by
// lines [FirstLine, FirstLine+InsertedLines) of the new text.
type ChangeRecord struct {
	Offset         int
	InsertedLength int
	RemovedLength  int
	FirstLine      int
	RemovedLines   int
	InsertedLines  int
	DeletedAnchors []*Anchor // anchors deleted by the removal, if any
}

func (rec ChangeRecord) String() string {
	return fmt.Sprintf("change@%d(-%d/+%d, lines %d:-%d/+%d)", rec.Offset, rec.RemovedLength,
		rec.InsertedLength, rec.FirstLine, rec.RemovedLines, rec.InsertedLines)
}

// ChangingHandler is called before a mutation starts.
type ChangingHandler func(doc *Document)

// ChangedHandler is called after a mutation has completed, with one record
// per edit. Edits grouped by Update are reported together.
type ChangedHandler func(doc *Document, records []ChangeRecord)

type handlerEntry[H any] struct {
	id int
	fn H
}

// handlers is a list of change handlers, in registration order.
type handlers[H any] struct {
	entries []handlerEntry[H]
	nextID  int
}

func (h *handlers[H]) add(fn H) func() {
	h.nextID++
	id := h.nextID
	h.entries = append(h.entries, handlerEntry[H]{id: id, fn: fn})
	return func() {
		h.entries = slices.DeleteFunc(h.entries, func(e handlerEntry[H]) bool {
			return e.id == id
		})
	}
}

// OnChanging registers a handler to be called before every mutation. Handlers
// must not mutate the document; doing so fails with ErrMutationInProgress.
// The returned function unregisters the handler.
func (doc *Document) OnChanging(fn ChangingHandler) func() {
	doc.owner.check()
	if fn == nil {
		panic(ErrNilArgument)
	}
	return doc.changing.add(fn)
}

// OnChanged registers a handler to be called after every mutation. Handlers
// must not mutate the document; doing so fails with ErrMutationInProgress.
// The returned function unregisters the handler.
func (doc *Document) OnChanged(fn ChangedHandler) func() {
	doc.owner.check()
	if fn == nil {
		panic(ErrNilArgument)
	}
	return doc.changed.add(fn)
}

// Subscribe returns a channel receiving the change records of every
// mutation, for consumers living in other goroutines. It may be called from
// any goroutine. The channel is closed when ctx is done or the document is
// closed.
//
// Mutations block until every subscriber has taken their records, so
// subscribers have to keep reading or cancel ctx.
func (doc *Document) Subscribe(ctx context.Context, capacity uint) (<-chan []ChangeRecord, error) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return nil, ErrClosed
	}
	if doc.cast == nil {
		doc.cast = caster.New(context.Background())
	}
	sub, ok := doc.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	out := make(chan []ChangeRecord, capacity)
	go func() {
		defer close(out)
		for msg := range sub {
			records, ok := msg.([]ChangeRecord)
			if !ok {
				continue
			}
			select {
			case out <- records:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close ends all subscriptions. The document stays usable.
func (doc *Document) Close() {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return
	}
	doc.closed = true
	if doc.cast != nil {
		doc.cast.Close()
	}
}

func (doc *Document) publish(records []ChangeRecord) {
	doc.mu.Lock()
	cast := doc.cast
	doc.mu.Unlock()
	if cast == nil {
		return
	}
	cast.Pub(slices.Clone(records))
}
