package textbuf

import (
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/textbuf/rope"
	"github.com/npillmayer/uax/grapheme"
)

// TextSource is read access to a text.
type TextSource interface {
	Len() int
	TextAt(offset, length int) (string, error)
	ByteAt(offset int) (byte, error)
	IndexOf(b byte, start, count int) (int, error)
	Reader() io.Reader
	String() string
}

var _ TextSource = (*Snapshot)(nil)

// Snapshot is an immutable copy of the text of a document. It shares nothing
// with the document and may be read from any goroutine.
type Snapshot struct {
	text *rope.Rope
}

// CreateSnapshot copies the current text of doc. It may be called from any
// goroutine.
func (doc *Document) CreateSnapshot() *Snapshot {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return &Snapshot{text: doc.text.Clone()}
}

// CreateReader returns a reader for a copy of the current text of doc. It may
// be called from any goroutine.
func (doc *Document) CreateReader() io.Reader {
	return doc.CreateSnapshot().Reader()
}

// Len returns the length of the text in bytes.
func (s *Snapshot) Len() int {
	return s.text.Len()
}

// TextAt returns length bytes of text starting at offset.
func (s *Snapshot) TextAt(offset, length int) (string, error) {
	t, err := s.text.Report(offset, length)
	if err != nil {
		return "", fmt.Errorf("%w: [%d,%d) of %d", ErrOutOfRange, offset, offset+length, s.text.Len())
	}
	return t, nil
}

// ByteAt returns the byte at offset.
func (s *Snapshot) ByteAt(offset int) (byte, error) {
	b, err := s.text.At(offset)
	if err != nil {
		return 0, fmt.Errorf("%w: %d of %d", ErrOutOfRange, offset, s.text.Len())
	}
	return b, nil
}

// IndexOf returns the offset of the first occurrence of b in
// [start,start+count), or -1.
func (s *Snapshot) IndexOf(b byte, start, count int) (int, error) {
	i, err := s.text.IndexByte(b, start, count)
	if err != nil {
		return -1, fmt.Errorf("%w: [%d,%d) of %d", ErrOutOfRange, start, start+count, s.text.Len())
	}
	return i, nil
}

func (s *Snapshot) String() string {
	return s.text.String()
}

var setupGraphemes sync.Once

// Graphemes returns the offsets of grapheme cluster boundaries in
// [offset,offset+length], which are the positions a caret may stop at. The
// result starts with offset and ends with offset+length.
func (s *Snapshot) Graphemes(offset, length int) ([]int, error) {
	text, err := s.TextAt(offset, length)
	if err != nil {
		return nil, err
	}
	if !s.text.IsCharBoundary(offset) || !s.text.IsCharBoundary(offset+length) {
		return nil, fmt.Errorf("%w: [%d,%d)", ErrNotCharBoundary, offset, offset+length)
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(text)
	stops := make([]int, 0, gstr.Len()+1)
	pos := offset
	for i := 0; i < gstr.Len(); i++ {
		stops = append(stops, pos)
		pos += len(gstr.Nth(i))
	}
	return append(stops, pos), nil
}

// Reader returns a reader for the bytes of the snapshot.
func (s *Snapshot) Reader() io.Reader {
	return &textReader{text: s.text}
}

type textReader struct {
	text   *rope.Rope
	cursor int
}

func (tr *textReader) Read(p []byte) (n int, err error) {
	l := min(len(p), tr.text.Len()-tr.cursor)
	if l == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	s, err := tr.text.Report(tr.cursor, l)
	if err != nil {
		return 0, err
	}
	n = copy(p, s)
	tr.cursor += n
	return n, nil
}
