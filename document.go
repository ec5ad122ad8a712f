package textbuf

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textbuf/anchors"
	"github.com/npillmayer/textbuf/lines"
	"github.com/npillmayer/textbuf/rope"
)

// Line is a view of a line of a document. See package lines.
type Line = lines.Line

// Anchor is a position in a document which follows edits. See package anchors.
type Anchor = anchors.Anchor

// Movement determines where an anchor goes when text is inserted at its offset.
type Movement = anchors.Movement

// Movement policies for anchors.
const (
	BeforeInsertion = anchors.BeforeInsertion
	AfterInsertion  = anchors.AfterInsertion
)

// Document is a mutable text with an index of lines and a set of anchors.
//
// A Document is not safe for concurrent use: it belongs to the goroutine
// which created it. Use CreateSnapshot or CreateReader for reading in other
// goroutines.
type Document struct {
	mu      sync.Mutex // guards text against concurrent cloning
	text    *rope.Rope
	lines   *lines.Index
	anchors *anchors.Index

	owner           owner
	checkOwner      bool
	checkInvariants bool
	trace           tracing.Trace

	state    mutationState
	pending  []ChangeRecord // collected during a running mutation
	notified bool           // Changing has been sent for the running mutation
	changing handlers[ChangingHandler]
	changed  handlers[ChangedHandler]
	cast     *caster.Caster // nil until the first subscription
	closed   bool
}

type mutationState uint8

const (
	idle      mutationState = iota
	mutating                // inside Insert, Remove, Replace or Update
	notifying               // running change handlers
)

// CreateDocument creates a document holding initialText. The calling
// goroutine becomes the owner of the document.
func CreateDocument(initialText string, opts ...Option) (*Document, error) {
	text, err := rope.FromString(initialText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	return documentFromRope(text, opts...), nil
}

// DocumentFromRope creates a document for text, taking ownership of the
// rope. Clients must not use text afterwards. The calling goroutine becomes
// the owner of the document.
func DocumentFromRope(text *rope.Rope, opts ...Option) (*Document, error) {
	if text == nil {
		return nil, ErrNilArgument
	}
	return documentFromRope(text, opts...), nil
}

func documentFromRope(text *rope.Rope, opts ...Option) *Document {
	doc := &Document{
		text:            text,
		lines:           lines.FromText(text),
		anchors:         anchors.New(),
		checkOwner:      true,
		checkInvariants: debugChecks,
		trace:           T(),
	}
	for _, opt := range opts {
		opt(doc)
	}
	doc.owner = newOwner(doc.checkOwner)
	doc.trace.Debugf("textbuf: created document with %d bytes in %d lines",
		doc.text.Len(), doc.lines.Count())
	return doc
}

// Len returns the length of the text in bytes.
func (doc *Document) Len() int {
	doc.owner.check()
	return doc.text.Len()
}

// LineCount returns the number of lines, which is the number of line
// delimiters plus one.
func (doc *Document) LineCount() int {
	doc.owner.check()
	return doc.lines.Count()
}

// LineByNumber returns line n, counting from 1.
func (doc *Document) LineByNumber(n int) (Line, error) {
	doc.owner.check()
	l, err := doc.lines.ByNumber(n)
	if err != nil {
		return Line{}, fmt.Errorf("%w: line %d of %d", ErrOutOfRange, n, doc.lines.Count())
	}
	return l, nil
}

// LineByOffset returns the line containing the byte at offset. The offset of
// a delimiter belongs to the line it ends; offset Len() belongs to the last
// line.
func (doc *Document) LineByOffset(offset int) (Line, error) {
	doc.owner.check()
	l, err := doc.lines.ByOffset(offset)
	if err != nil {
		return Line{}, fmt.Errorf("%w: offset %d of %d", ErrOutOfRange, offset, doc.text.Len())
	}
	return l, nil
}

// Lines returns the lines of the document, in order. The document must not
// be changed while iterating.
func (doc *Document) Lines() iter.Seq[Line] {
	doc.owner.check()
	return doc.lines.Lines()
}

// LineText returns the text of line n, without its delimiter.
func (doc *Document) LineText(n int) (string, error) {
	l, err := doc.LineByNumber(n)
	if err != nil {
		return "", err
	}
	return doc.text.Report(l.StartOffset, l.Length)
}

// TextAt returns length bytes of text starting at offset.
func (doc *Document) TextAt(offset, length int) (string, error) {
	doc.owner.check()
	s, err := doc.text.Report(offset, length)
	if err != nil {
		return "", fmt.Errorf("%w: [%d,%d) of %d", ErrOutOfRange, offset, offset+length, doc.text.Len())
	}
	return s, nil
}

// Text returns the complete text.
func (doc *Document) Text() string {
	doc.owner.check()
	return doc.text.String()
}

// ByteAt returns the byte at offset.
func (doc *Document) ByteAt(offset int) (byte, error) {
	doc.owner.check()
	b, err := doc.text.At(offset)
	if err != nil {
		return 0, fmt.Errorf("%w: %d of %d", ErrOutOfRange, offset, doc.text.Len())
	}
	return b, nil
}

// IndexOf returns the offset of the first occurrence of b in
// [start,start+count), or -1.
func (doc *Document) IndexOf(b byte, start, count int) (int, error) {
	doc.owner.check()
	i, err := doc.text.IndexByte(b, start, count)
	if err != nil {
		return -1, fmt.Errorf("%w: [%d,%d) of %d", ErrOutOfRange, start, start+count, doc.text.Len())
	}
	return i, nil
}

// WriteTo writes the text to w.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	doc.owner.check()
	return doc.text.WriteTo(w)
}

// --- Anchors ---------------------------------------------------------------

// CreateAnchor creates an anchor at offset. Removing the text around the
// anchor deletes it.
func (doc *Document) CreateAnchor(offset int, movement Movement) (*Anchor, error) {
	return doc.createAnchor(offset, movement, false)
}

// CreateSurvivingAnchor creates an anchor at offset which is not deleted by
// removal of the text around it, but moved to the start of the removed range.
func (doc *Document) CreateSurvivingAnchor(offset int, movement Movement) (*Anchor, error) {
	return doc.createAnchor(offset, movement, true)
}

func (doc *Document) createAnchor(offset int, movement Movement, survive bool) (*Anchor, error) {
	doc.owner.check()
	if offset < 0 || offset > doc.text.Len() {
		return nil, fmt.Errorf("%w: anchor at %d of %d", ErrOutOfRange, offset, doc.text.Len())
	}
	if !doc.text.IsCharBoundary(offset) {
		return nil, fmt.Errorf("%w: anchor at %d", ErrNotCharBoundary, offset)
	}
	return doc.anchors.Create(offset, movement, survive)
}

// RemoveAnchor removes anchor a from the document. a reports its last offset
// afterwards.
func (doc *Document) RemoveAnchor(a *Anchor) error {
	doc.owner.check()
	if a == nil {
		return ErrNilArgument
	}
	err := doc.anchors.Remove(a)
	switch {
	case errors.Is(err, anchors.ErrAnchorDeleted):
		return ErrAnchorDeleted
	case err != nil:
		return fmt.Errorf("%w: %v", ErrNilArgument, err)
	}
	return nil
}

// AnchorCount returns the number of live anchors.
func (doc *Document) AnchorCount() int {
	doc.owner.check()
	return doc.anchors.Count()
}

// --- Validation ------------------------------------------------------------

// Check validates the rope, the line index and the anchor index, and their
// agreement on the length of the text.
func (doc *Document) Check() error {
	doc.owner.check()
	return doc.check()
}

func (doc *Document) check() error {
	if err := doc.text.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	if err := doc.lines.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	if err := doc.anchors.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	if doc.lines.TotalLength() != doc.text.Len() {
		return fmt.Errorf("%w: lines cover %d bytes, text has %d", ErrInvariantViolation,
			doc.lines.TotalLength(), doc.text.Len())
	}
	var last *Anchor
	for a := range doc.anchors.All() {
		last = a
	}
	if last != nil && last.Offset() > doc.text.Len() {
		return fmt.Errorf("%w: anchor at %d behind end of text %d", ErrInvariantViolation,
			last.Offset(), doc.text.Len())
	}
	return nil
}

// Dump writes the line and anchor trees to w, for debugging.
func (doc *Document) Dump(w io.Writer) {
	doc.owner.check()
	fmt.Fprintf(w, "document: %d bytes, %d lines, %d anchors, rope height %d\n",
		doc.text.Len(), doc.lines.Count(), doc.anchors.Count(), doc.text.Height())
	fmt.Fprintln(w, "--- lines ---")
	doc.lines.Tree().Dump(w, nil)
	fmt.Fprintln(w, "--- anchors ---")
	doc.anchors.Dump(w)
}

// ToDot writes the rope holding the text in Graphviz DOT format to w, for
// debugging.
func (doc *Document) ToDot(w io.Writer) error {
	doc.owner.check()
	return doc.text.ToDot(w)
}
