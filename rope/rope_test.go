package rope

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textbuf/chunk"
)

func TestFromStringBuildsMinimumHeight(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	text := strings.Repeat("x", 4*chunk.MaxBase)
	r, err := FromString(text)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != len(text) || r.String() != text {
		t.Fatalf("expected round trip of %d bytes, have %d", len(text), r.Len())
	}
	if r.LeafCount() != 4 || r.Height() != 2 {
		t.Errorf("expected 4 leaves at height 2, have %d leaves at height %d", r.LeafCount(), r.Height())
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
}

func TestEmptyRope(t *testing.T) {
	var r Rope
	if r.Len() != 0 || r.String() != "" || r.Height() != 0 {
		t.Errorf("zero rope should be empty")
	}
	if _, err := r.At(0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected out of bounds for At(0) on empty rope, got %v", err)
	}
	if err := r.Insert(0, "Hello"); err != nil {
		t.Fatal(err)
	}
	if r.String() != "Hello" {
		t.Errorf("expected 'Hello', have %q", r.String())
	}
}

func TestInsertSplitsFullLeaf(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	full := strings.Repeat("a", chunk.MaxBase)
	r, _ := FromString(full)
	if r.Height() != 0 {
		t.Fatalf("expected a single leaf")
	}
	if err := r.Insert(10, "BBB"); err != nil {
		t.Fatal(err)
	}
	want := full[:10] + "BBB" + full[10:]
	if r.String() != want {
		t.Errorf("unexpected text %q", r.String())
	}
	if r.Height() != 1 || r.LeafCount() != 2 {
		t.Errorf("expected two leaves under one inner node, height=%d leaves=%d", r.Height(), r.LeafCount())
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
}

func TestInsertKeepsBalanceOnAppend(t *testing.T) {
	r := New()
	var sb strings.Builder
	for i := 0; i < 2000; i++ {
		if err := r.Insert(r.Len(), "line\n"); err != nil {
			t.Fatal(err)
		}
		sb.WriteString("line\n")
	}
	if err := r.Check(); err != nil {
		t.Fatal(err)
	}
	if r.String() != sb.String() {
		t.Fatalf("text mismatch after appends")
	}
	// AVL height is below 1.44·log2(leaves+2), leaves are at least half full
	if r.Height() > 12 {
		t.Errorf("tree too high for its size: %d", r.Height())
	}
}

func TestInsertLargeText(t *testing.T) {
	r, _ := FromString("Hello World")
	large := strings.Repeat("äöü€", 100)
	if err := r.Insert(6, large); err != nil {
		t.Fatal(err)
	}
	if r.String() != "Hello "+large+"World" {
		t.Errorf("unexpected text after large insert")
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
}

func TestInsertRejectsInvalidArguments(t *testing.T) {
	r, _ := FromString("a😀b")
	if err := r.Insert(2, "x"); !errors.Is(err, ErrNotCharBoundary) {
		t.Errorf("expected ErrNotCharBoundary, got %v", err)
	}
	if err := r.Insert(7, "x"); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if err := r.Insert(-1, "x"); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds for negative offset, got %v", err)
	}
	if err := r.Insert(0, string([]byte{0xc3})); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
	if r.String() != "a😀b" {
		t.Errorf("failed inserts must not change the rope, have %q", r.String())
	}
}

func TestRemoveRange(t *testing.T) {
	text := strings.Repeat("0123456789", 30)
	r, _ := FromString(text)
	if err := r.RemoveRange(5, 200); err != nil {
		t.Fatal(err)
	}
	if r.String() != text[:5]+text[205:] {
		t.Errorf("unexpected text after remove: %q", r.String())
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
	if err := r.RemoveRange(0, r.Len()); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 || r.LeafCount() != 0 {
		t.Errorf("expected empty rope, have %d bytes", r.Len())
	}
}

func TestRemoveUnlinksEmptyLeaf(t *testing.T) {
	r, _ := FromString(strings.Repeat("a", chunk.MaxBase) + "bc")
	if r.LeafCount() != 2 {
		t.Fatalf("expected 2 leaves, have %d", r.LeafCount())
	}
	if err := r.RemoveRange(chunk.MaxBase, 2); err != nil {
		t.Fatal(err)
	}
	if r.LeafCount() != 1 || r.Height() != 0 {
		t.Errorf("expected single leaf after unlinking, have %d leaves", r.LeafCount())
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
}

func TestRemoveRejectsInvalidRanges(t *testing.T) {
	r, _ := FromString("a😀b")
	if err := r.RemoveRange(1, 2); !errors.Is(err, ErrNotCharBoundary) {
		t.Errorf("expected ErrNotCharBoundary, got %v", err)
	}
	if err := r.RemoveRange(4, 3); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if r.String() != "a😀b" {
		t.Errorf("failed removes must not change the rope, have %q", r.String())
	}
}

func TestAtAndOverwrite(t *testing.T) {
	text := strings.Repeat("abcdefgh", 20)
	r, _ := FromString(text)
	for _, i := range []int{0, 63, 64, 100, len(text) - 1} {
		b, err := r.At(i)
		if err != nil || b != text[i] {
			t.Errorf("At(%d) = %q/%v, want %q", i, b, err, text[i])
		}
	}
	if err := r.Overwrite(60, "XXXXXXXX"); err != nil {
		t.Fatal(err)
	}
	want := text[:60] + "XXXXXXXX" + text[68:]
	if r.String() != want {
		t.Errorf("unexpected text after overwrite across leaves")
	}
	if err := r.Overwrite(2, "Y"); err != nil || r.String()[:4] != "abYd" {
		t.Errorf("unexpected overwrite inside a leaf: %v", err)
	}
	if r.Len() != len(text) {
		t.Errorf("overwrite changed length to %d", r.Len())
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
}

func TestReportAndIndex(t *testing.T) {
	text := strings.Repeat("abc\n", 50)
	r, _ := FromString(text)
	s, err := r.Report(62, 10)
	if err != nil || s != text[62:72] {
		t.Errorf("Report = %q/%v, want %q", s, err, text[62:72])
	}
	pos, err := r.IndexByte('\n', 64, 20)
	if err != nil || pos != 67 {
		t.Errorf("IndexByte = %d/%v, want 67", pos, err)
	}
	pos, err = r.IndexOf(func(b byte) bool { return b == 'c' }, 3, 10)
	if err != nil || pos != 6 {
		t.Errorf("IndexOf = %d/%v, want 6", pos, err)
	}
	pos, _ = r.IndexByte('x', 0, r.Len())
	if pos != -1 {
		t.Errorf("expected -1 for missing byte, have %d", pos)
	}
	if brk, ok := r.NextLineBreak(68, r.Len()); !ok || brk != 71 {
		t.Errorf("NextLineBreak = %d/%v, want 71", brk, ok)
	}
	if _, ok := r.NextLineBreak(68, 71); ok {
		t.Errorf("NextLineBreak must not look past its range end")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r, _ := FromString(strings.Repeat("Hello World ", 20))
	c := r.Clone()
	if err := r.Insert(0, "changed "); err != nil {
		t.Fatal(err)
	}
	if err := r.Overwrite(20, "!"); err != nil {
		t.Fatal(err)
	}
	if c.String() != strings.Repeat("Hello World ", 20) {
		t.Errorf("clone was affected by mutation of source")
	}
	if err := c.Check(); err != nil {
		t.Error(err)
	}
}

func TestIteratorsAreRestartable(t *testing.T) {
	r, _ := FromString(strings.Repeat("ü", 100))
	count := func() int {
		n := 0
		for range r.Runes() {
			n++
		}
		return n
	}
	if count() != 100 || count() != 100 {
		t.Errorf("expected 100 runes on each iteration")
	}
	prev := -1
	for pos, c := range r.Chunks() {
		if pos <= prev {
			t.Errorf("chunk offsets not increasing: %d after %d", pos, prev)
		}
		if c.Len()%2 != 0 {
			t.Errorf("chunk at %d cuts a rune", pos)
		}
		prev = pos
	}
}

func TestWriteToAndDot(t *testing.T) {
	r, _ := FromString("one\ntwo\n\"three\"")
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil || n != int64(r.Len()) || buf.String() != r.String() {
		t.Errorf("WriteTo wrote %d bytes: %v", n, err)
	}
	buf.Reset()
	if err := r.ToDot(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "strict digraph {") {
		t.Errorf("unexpected DOT output: %s", buf.String())
	}
}

func TestBuilderHandlesSplitRunes(t *testing.T) {
	text := []byte(strings.Repeat("a€", 100))
	b := NewBuilder()
	for i := 0; i < len(text); i += 7 {
		if err := b.Append(text[i:min(i+7, len(text))]); err != nil {
			t.Fatal(err)
		}
	}
	r, err := b.Rope()
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != string(text) {
		t.Errorf("builder did not reassemble text")
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
	if err := b.AppendString("x"); !errors.Is(err, ErrBuilderCompleted) {
		t.Errorf("expected ErrBuilderCompleted, got %v", err)
	}
	b = NewBuilder()
	_ = b.Append([]byte{'a', 0xe2, 0x82})
	if _, err := b.Rope(); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected dangling sequence to be rejected, got %v", err)
	}
}
