package metrics

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textbuf"
)

func snapshot(t *testing.T, text string) *textbuf.Snapshot {
	t.Helper()
	doc, err := textbuf.CreateDocument(text)
	if err != nil {
		t.Fatal(err)
	}
	return doc.CreateSnapshot()
}

func TestWordsWholeText(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	src := snapshot(t, "Hello  my\nname\tis Simon")
	value, err := Words(src, 0, src.Len())
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	if value.Count() != 5 {
		t.Fatalf("unexpected word count: got=%d want=5", value.Count())
	}
	want := []Span{
		{Pos: 0, Len: 5},
		{Pos: 7, Len: 2},
		{Pos: 10, Len: 4},
		{Pos: 15, Len: 2},
		{Pos: 18, Len: 5},
	}
	if len(value.Spans) != len(want) {
		t.Fatalf("unexpected spans len: got=%d want=%d", len(value.Spans), len(want))
	}
	for i := range want {
		if value.Spans[i] != want[i] {
			t.Fatalf("span %d mismatch: got=%+v want=%+v", i, value.Spans[i], want[i])
		}
	}
	materialized, err := value.Materialize(src)
	if err != nil {
		t.Fatal(err)
	}
	if materialized.String() != "HellomynameisSimon" {
		t.Fatalf("unexpected materialized text: got=%q", materialized.String())
	}
}

func TestWordsSubrange(t *testing.T) {
	src := snapshot(t, "xx Hello world yy")
	// "Hello world"
	value, err := Words(src, 3, 14)
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	if value.Count() != 2 {
		t.Fatalf("unexpected word count: got=%d want=2", value.Count())
	}
	if value.Spans[0] != (Span{Pos: 3, Len: 5}) {
		t.Fatalf("first span mismatch: got=%+v", value.Spans[0])
	}
	if value.Spans[1] != (Span{Pos: 9, Len: 5}) {
		t.Fatalf("second span mismatch: got=%+v", value.Spans[1])
	}
}

func TestWordsBoundsValidation(t *testing.T) {
	src := snapshot(t, "abc")
	if _, err := Words(src, 2, 1); err == nil {
		t.Fatalf("expected error for invalid range")
	}
	if _, err := Words(src, 0, 4); err == nil {
		t.Fatalf("expected error for range behind end of text")
	}
}

func TestWordsAcrossFragments(t *testing.T) {
	defer func(size int) { fragmentSize = size }(fragmentSize)
	text := strings.Repeat("größer wörter　", 40)
	src := snapshot(t, text)
	want := len(strings.Fields(text))
	for _, size := range []int{1, 2, 3, 7, 64} {
		fragmentSize = size
		n, err := Count(src, 0, src.Len(), &WordsMetric{})
		if err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Errorf("fragment size %d: counted %d words, want %d", size, n, want)
		}
	}
}

func TestLinesAcrossFragments(t *testing.T) {
	defer func(size int) { fragmentSize = size }(fragmentSize)
	text := "one\r\ntwo\rthree\n\nfour"
	src := snapshot(t, text)
	for _, size := range []int{1, 2, 4, 100} {
		fragmentSize = size
		lm := &LinesMetric{}
		n, err := Count(src, 0, src.Len(), lm)
		if err != nil {
			t.Fatal(err)
		}
		if n != 5 || lm.Longest() != 5 {
			t.Errorf("fragment size %d: %d lines, longest %d; want 5 lines, longest 5", size, n, lm.Longest())
		}
	}
}
