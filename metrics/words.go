package metrics

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/textbuf"
	"github.com/npillmayer/textbuf/rope"
)

// Span is a byte-range descriptor inside a text.
//
// Pos is the start byte offset, Len is the span length in bytes.
type Span struct {
	Pos int
	Len int
}

// End returns the offset behind the span.
func (s Span) End() int {
	return s.Pos + s.Len
}

// WordsMetric collects the spans of words, which are runs of non-space
// characters.
type WordsMetric struct {
	Spans []Span
}

var _ CountingMetric = (*WordsMetric)(nil)

// Apply is part of interface Metric. A word touching the end of frag may
// continue in the next fragment and is left unprocessed.
func (wm *WordsMetric) Apply(frag []byte, pos int, atEOF bool) int {
	spans := findWordSpans(frag, pos)
	unprocessed := 0
	if n := len(spans); !atEOF && n > 0 && spans[n-1].End() == pos+len(frag) {
		unprocessed = spans[n-1].Len
		spans = spans[:n-1]
	}
	wm.Spans = append(wm.Spans, spans...)
	return unprocessed
}

// Count returns the number of recognized words.
func (wm *WordsMetric) Count() int {
	return len(wm.Spans)
}

// Words returns the words in [i,j) of src.
func Words(src textbuf.TextSource, i, j int) (*WordsMetric, error) {
	wm := &WordsMetric{}
	if err := Apply(src, i, j, wm); err != nil {
		return nil, err
	}
	return wm, nil
}

// Materialize concatenates all recognized words in logical order and omits
// non-word separators.
func (wm *WordsMetric) Materialize(src textbuf.TextSource) (*rope.Rope, error) {
	b := rope.NewBuilder()
	for _, span := range wm.Spans {
		word, err := src.TextAt(span.Pos, span.Len)
		if err != nil {
			return nil, err
		}
		if err := b.AppendString(word); err != nil {
			return nil, err
		}
	}
	return b.Rope()
}

func findWordSpans(b []byte, base int) []Span {
	spans := make([]Span, 0, 8)
	for pos := 0; pos < len(b); {
		r, width := utf8.DecodeRune(b[pos:])
		if unicode.IsSpace(r) {
			pos += width
			continue
		}
		start := pos
		pos += width
		for pos < len(b) {
			r, width = utf8.DecodeRune(b[pos:])
			if unicode.IsSpace(r) {
				break
			}
			pos += width
		}
		spans = append(spans, Span{
			Pos: base + start,
			Len: pos - start,
		})
	}
	return spans
}
