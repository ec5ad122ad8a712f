/*
Package chunk implements the fixed-capacity leaf storage of a text rope.

A chunk holds at most MaxBase bytes of valid UTF-8 text together with bitmaps
for character starts, line feeds and carriage returns. The bitmaps let callers
find line delimiters and character boundaries without decoding the text.

Chunks are values. Editing operations return a new chunk and never alias the
receiver's storage, so copying a chunk copies its text.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package chunk

import (
	"math/bits"
	"unicode/utf8"
)

// Bitmap indexes byte-local properties inside a chunk.
//
// Bit i corresponds to byte offset i in chunk-local coordinates.
type Bitmap = uint64

const (
	// MaxBase is the maximum chunk payload length in bytes.
	MaxBase = 64
	// MinBase is the occupancy a rope tries to keep for non-trailing leaves.
	MinBase = MaxBase / 4
)

// Chunk stores text and bitmap indexes for fast local coordinate math.
type Chunk struct {
	chars    Bitmap
	newlines Bitmap
	returns  Bitmap
	text     [MaxBase]byte
	n        uint8
}

// New creates a chunk from UTF-8 text.
//
// Returns an error if the text is not valid UTF-8 or exceeds MaxBase bytes.
func New(text string) (Chunk, error) {
	if !utf8.ValidString(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	if len(text) > MaxBase {
		return Chunk{}, ErrChunkTooLarge
	}
	var c Chunk
	c.n = uint8(copy(c.text[:], text))
	c.reindex()
	return c, nil
}

// NewBytes creates a chunk from UTF-8 bytes. The input is copied.
//
// Callers splitting larger input must cut at rune boundaries; NewBytes rejects
// slices starting or ending inside a multi-byte sequence.
func NewBytes(text []byte) (Chunk, error) {
	if !utf8.Valid(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	if len(text) > MaxBase {
		return Chunk{}, ErrChunkTooLarge
	}
	var c Chunk
	c.n = uint8(copy(c.text[:], text))
	c.reindex()
	return c, nil
}

// reindex rebuilds all bitmaps from c.text[:c.n], which must be valid UTF-8.
func (c *Chunk) reindex() {
	c.chars, c.newlines, c.returns = 0, 0, 0
	text := c.text[:c.n]
	for i := 0; i < len(text); {
		c.chars |= bit(i)
		switch text[i] {
		case '\n':
			c.newlines |= bit(i)
		case '\r':
			c.returns |= bit(i)
		}
		_, size := utf8.DecodeRune(text[i:])
		i += size
	}
}

// Len returns the text length in bytes.
func (c Chunk) Len() int {
	return int(c.n)
}

// Room returns the number of bytes that still fit into the chunk.
func (c Chunk) Room() int {
	return MaxBase - int(c.n)
}

// IsEmpty reports whether the chunk has no bytes.
func (c Chunk) IsEmpty() bool {
	return c.n == 0
}

// String returns the chunk text.
func (c Chunk) String() string {
	return string(c.text[:c.n])
}

// Bytes returns a copied byte slice of the chunk text.
func (c Chunk) Bytes() []byte {
	return append([]byte(nil), c.text[:c.n]...)
}

// AppendTo appends the bytes in [from,to) to dst.
func (c Chunk) AppendTo(dst []byte, from, to int) []byte {
	return append(dst, c.text[from:to]...)
}

// At returns the byte at chunk-local offset i. i must be in [0,Len).
func (c Chunk) At(i int) byte {
	return c.text[i]
}

// Chars returns the UTF-8 character-start bitmap.
func (c Chunk) Chars() Bitmap {
	return c.chars
}

// Newlines returns the line feed bitmap.
func (c Chunk) Newlines() Bitmap {
	return c.newlines
}

// Returns returns the carriage return bitmap.
func (c Chunk) Returns() Bitmap {
	return c.returns
}

// CharCount returns the number of runes in the chunk.
func (c Chunk) CharCount() int {
	return bits.OnesCount64(c.chars)
}

// IsCharBoundary reports whether offset is a UTF-8 boundary inside this chunk.
func (c Chunk) IsCharBoundary(offset int) bool {
	if offset == c.Len() {
		return true
	}
	if offset < 0 || offset > c.Len() {
		return false
	}
	return c.chars&bit(offset) != 0
}

// Boundary returns the nearest char boundary at or before offset.
func (c Chunk) Boundary(offset int) int {
	if offset >= c.Len() {
		return c.Len()
	}
	if offset <= 0 {
		return 0
	}
	m := c.chars & prefixMask(offset+1)
	return 63 - bits.LeadingZeros64(m)
}

// NextBreak returns the offset of the first '\n' or '\r' at or after from.
func (c Chunk) NextBreak(from int) (int, bool) {
	if from >= c.Len() {
		return 0, false
	}
	m := (c.newlines | c.returns) &^ prefixMask(from)
	if m == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(m), true
}

// Insert returns a new chunk with text inserted at offset at.
func (c Chunk) Insert(at int, text []byte) (Chunk, error) {
	if at < 0 || at > c.Len() {
		return c, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(at) {
		return c, ErrNotCharBoundary
	}
	if !utf8.Valid(text) {
		return c, ErrInvalidUTF8
	}
	if len(text) > c.Room() {
		return c, ErrChunkTooLarge
	}
	out := c
	n := c.Len()
	copy(out.text[at+len(text):], c.text[at:n])
	copy(out.text[at:], text)
	out.n = uint8(n + len(text))
	out.reindex()
	return out, nil
}

// Delete returns a new chunk without the bytes in [from,to).
func (c Chunk) Delete(from, to int) (Chunk, error) {
	if from < 0 || to < from || to > c.Len() {
		return c, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(from) || !c.IsCharBoundary(to) {
		return c, ErrNotCharBoundary
	}
	out := c
	n := c.Len()
	copy(out.text[from:], c.text[to:n])
	out.n = uint8(n - (to - from))
	out.reindex()
	return out, nil
}

// Overwrite returns a new chunk where len(text) bytes starting at offset at
// are replaced by text. Both ends of the replaced range must be char
// boundaries.
func (c Chunk) Overwrite(at int, text []byte) (Chunk, error) {
	end := at + len(text)
	if at < 0 || end > c.Len() {
		return c, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(at) || !c.IsCharBoundary(end) {
		return c, ErrNotCharBoundary
	}
	if !utf8.Valid(text) {
		return c, ErrInvalidUTF8
	}
	out := c
	copy(out.text[at:end], text)
	out.reindex()
	return out, nil
}

// SplitAt splits a chunk into two chunks at byte offset mid.
func (c Chunk) SplitAt(mid int) (Chunk, Chunk, error) {
	if mid < 0 || mid > c.Len() {
		return Chunk{}, Chunk{}, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(mid) {
		return Chunk{}, Chunk{}, ErrNotCharBoundary
	}
	var left, right Chunk
	left.n = uint8(copy(left.text[:], c.text[:mid]))
	right.n = uint8(copy(right.text[:], c.text[mid:c.n]))
	left.reindex()
	right.reindex()
	return left, right, nil
}

// Append returns a new chunk with other appended.
//
// The boolean is false if the result would exceed MaxBase; in that case, the
// original chunk is returned unchanged.
func (c Chunk) Append(other Chunk) (Chunk, bool) {
	if other.IsEmpty() {
		return c, true
	}
	base := c.Len()
	total := base + other.Len()
	if total > MaxBase {
		return c, false
	}
	out := c
	shift := uint(base)
	out.chars |= other.chars << shift
	out.newlines |= other.newlines << shift
	out.returns |= other.returns << shift
	copy(out.text[base:total], other.text[:other.n])
	out.n = uint8(total)
	return out, true
}

// Check validates that the bitmaps agree with the stored text.
func (c Chunk) Check() error {
	if int(c.n) > MaxBase {
		return ErrChunkTooLarge
	}
	if !utf8.Valid(c.text[:c.n]) {
		return ErrInvalidUTF8
	}
	probe := c
	probe.reindex()
	if probe.chars != c.chars || probe.newlines != c.newlines || probe.returns != c.returns {
		return ErrBitmapMismatch
	}
	return nil
}

// --- Bitmap helpers --------------------------------------------------------

func bit(offset int) Bitmap {
	if offset < 0 || offset >= MaxBase {
		return 0
	}
	return Bitmap(1) << uint(offset)
}

func prefixMask(offset int) Bitmap {
	switch {
	case offset <= 0:
		return 0
	case offset >= MaxBase:
		return ^Bitmap(0)
	default:
		return (Bitmap(1) << uint(offset)) - 1
	}
}
