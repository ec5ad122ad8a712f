package chunk

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBuildsBitmaps(t *testing.T) {
	c, err := New("a\n😀b\r")
	if err != nil {
		t.Fatalf("unexpected New error: %v", err)
	}
	if c.Len() != 8 {
		t.Fatalf("unexpected len: %d", c.Len())
	}
	// char starts at offsets: 0 ('a'), 1 ('\n'), 2 ('😀'), 6 ('b'), 7 ('\r')
	for _, off := range []int{0, 1, 2, 6, 7} {
		if c.Chars()&bit(off) == 0 {
			t.Fatalf("expected chars bit at %d", off)
		}
	}
	if c.Newlines()&bit(1) == 0 {
		t.Fatalf("expected newline bit at 1")
	}
	if c.Returns() != bit(7) {
		t.Fatalf("expected single return bit at 7, got %b", c.Returns())
	}
	if c.CharCount() != 5 {
		t.Fatalf("expected 5 runes, got %d", c.CharCount())
	}
}

func TestNewRejectsInvalidUTF8(t *testing.T) {
	_, err := New(string([]byte{0xff}))
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	_, err = NewBytes([]byte{0xff})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8 from NewBytes, got %v", err)
	}
}

func TestNewRejectsOversizedText(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxBase+1))
	if !errors.Is(err, ErrChunkTooLarge) {
		t.Fatalf("expected ErrChunkTooLarge, got %v", err)
	}
}

func TestNewBytesCopiesInput(t *testing.T) {
	src := []byte("ab😀\n")
	c, err := NewBytes(src)
	if err != nil {
		t.Fatalf("unexpected NewBytes error: %v", err)
	}
	src[0] = 'X'
	if c.String() != "ab😀\n" {
		t.Fatalf("chunk should not alias source bytes, got %q", c.String())
	}
}

func TestInsertAndDelete(t *testing.T) {
	c, _ := New("hello world")
	c2, err := c.Insert(5, []byte(",\n"))
	if err != nil {
		t.Fatalf("unexpected Insert error: %v", err)
	}
	if c2.String() != "hello,\n world" {
		t.Fatalf("unexpected text after insert: %q", c2.String())
	}
	if c.String() != "hello world" {
		t.Fatalf("insert modified receiver: %q", c.String())
	}
	if pos, ok := c2.NextBreak(0); !ok || pos != 6 {
		t.Fatalf("expected break at 6, got %d/%v", pos, ok)
	}
	c3, err := c2.Delete(5, 7)
	if err != nil {
		t.Fatalf("unexpected Delete error: %v", err)
	}
	if c3.String() != "hello world" {
		t.Fatalf("unexpected text after delete: %q", c3.String())
	}
	if _, ok := c3.NextBreak(0); ok {
		t.Fatalf("expected no break after delete")
	}
	if err := c3.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestEditsRejectNonBoundaries(t *testing.T) {
	c, _ := New("a😀b")
	if _, err := c.Insert(2, []byte("x")); !errors.Is(err, ErrNotCharBoundary) {
		t.Fatalf("expected ErrNotCharBoundary on insert, got %v", err)
	}
	if _, err := c.Delete(1, 3); !errors.Is(err, ErrNotCharBoundary) {
		t.Fatalf("expected ErrNotCharBoundary on delete, got %v", err)
	}
	if _, _, err := c.SplitAt(4); !errors.Is(err, ErrNotCharBoundary) {
		t.Fatalf("expected ErrNotCharBoundary on split, got %v", err)
	}
	if _, err := c.Insert(9, []byte("x")); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestInsertRejectsOverflow(t *testing.T) {
	c, _ := New(strings.Repeat("a", MaxBase-1))
	if _, err := c.Insert(0, []byte("bc")); !errors.Is(err, ErrChunkTooLarge) {
		t.Fatalf("expected ErrChunkTooLarge, got %v", err)
	}
	if c.Room() != 1 {
		t.Fatalf("expected room 1, got %d", c.Room())
	}
}

func TestOverwrite(t *testing.T) {
	c, _ := New("abc\ndef")
	c2, err := c.Overwrite(3, []byte("X"))
	if err != nil {
		t.Fatalf("unexpected Overwrite error: %v", err)
	}
	if c2.String() != "abcXdef" || c2.Newlines() != 0 {
		t.Fatalf("unexpected overwrite result %q / %b", c2.String(), c2.Newlines())
	}
	if _, err := c.Overwrite(6, []byte("XY")); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestSplitAtAndAppend(t *testing.T) {
	c, _ := New("ab😀c\nd")
	left, right, err := c.SplitAt(6)
	if err != nil {
		t.Fatalf("unexpected SplitAt error: %v", err)
	}
	if left.String() != "ab😀" || right.String() != "c\nd" {
		t.Fatalf("unexpected split: %q | %q", left.String(), right.String())
	}
	if right.Newlines() != bit(1) {
		t.Fatalf("right newline bitmap not rebased: %b", right.Newlines())
	}
	joined, ok := left.Append(right)
	if !ok {
		t.Fatalf("append should fit")
	}
	if joined.String() != c.String() || joined.Chars() != c.Chars() || joined.Newlines() != c.Newlines() {
		t.Fatalf("append did not restore original chunk")
	}
	full, _ := New(strings.Repeat("x", MaxBase))
	if _, ok := full.Append(left); ok {
		t.Fatalf("append beyond capacity should fail")
	}
}

func TestBoundary(t *testing.T) {
	c, _ := New("a😀b")
	for off, want := range map[int]int{0: 0, 1: 1, 2: 1, 3: 1, 4: 1, 5: 5, 6: 6, 9: 6} {
		if got := c.Boundary(off); got != want {
			t.Errorf("Boundary(%d) = %d, want %d", off, got, want)
		}
	}
}
