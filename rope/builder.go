package rope

import (
	"unicode/utf8"

	"github.com/npillmayer/textbuf/chunk"
)

// Builder incrementally stages text and finalizes it into a Rope.
//
// Text is collected as fixed-size chunks; the tree is built in one pass, at
// minimum height, when Rope is called. Loaders reading text in fragments use
// a Builder instead of repeated Insert calls.
//
// The empty instance is a valid builder, but clients may use NewBuilder.
type Builder struct {
	parts []chunk.Chunk
	carry []byte // incomplete UTF-8 sequence at the end of the last fragment
	done  bool
}

// NewBuilder creates a new and empty rope builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Rope returns a rope made from all staged fragments.
//
// It is illegal to continue adding fragments after Rope has been called.
// Calling Rope again returns a fresh rope with the same content.
func (b *Builder) Rope() (*Rope, error) {
	if b == nil {
		return New(), nil
	}
	b.done = true
	if len(b.carry) > 0 {
		return nil, ErrInvalidUTF8
	}
	parts := make([]chunk.Chunk, len(b.parts))
	copy(parts, b.parts)
	r := &Rope{root: buildBalanced(parts)}
	tracer().Debugf("rope builder: %d bytes in %d leaves, height %d", r.Len(), len(parts), r.Height())
	return r, nil
}

// Reset drops the staged build and prepares the builder for a fresh build.
func (b *Builder) Reset() {
	b.parts = nil
	b.carry = nil
	b.done = false
}

// AppendString appends UTF-8 text to the staged build.
func (b *Builder) AppendString(text string) error {
	return b.Append([]byte(text))
}

// Append appends bytes to the staged build.
//
// A fragment may end inside a multi-byte sequence; the trailing bytes are held
// back until the next fragment completes them. This lets callers feed buffers
// read from an io.Reader without aligning them.
func (b *Builder) Append(text []byte) error {
	if b.done {
		return ErrBuilderCompleted
	}
	if len(b.carry) > 0 {
		text = append(b.carry, text...)
		b.carry = nil
	}
	cut := len(text)
	for i := 1; i < utf8.UTFMax && i <= len(text); i++ {
		if utf8.RuneStart(text[len(text)-i]) {
			if !utf8.FullRune(text[len(text)-i:]) {
				cut = len(text) - i
			}
			break
		}
	}
	if cut < len(text) {
		b.carry = append([]byte(nil), text[cut:]...)
		text = text[:cut]
	}
	chunks, err := splitToChunks(text)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if n := len(b.parts); n > 0 {
			if merged, ok := b.parts[n-1].Append(c); ok {
				b.parts[n-1] = merged
				continue
			}
		}
		b.parts = append(b.parts, c)
	}
	return nil
}

// splitToChunks splits UTF-8 bytes into chunk-sized pieces.
//
// Boundaries are adjusted so no chunk starts or ends in the middle of a UTF-8
// rune.
func splitToChunks(text []byte) ([]chunk.Chunk, error) {
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.Valid(text) {
		return nil, ErrInvalidUTF8
	}
	parts := make([]chunk.Chunk, 0, 1+len(text)/chunk.MaxBase)
	for i := 0; i < len(text); {
		end := i + chunk.MaxBase
		if end >= len(text) {
			end = len(text)
		} else {
			for end > i && !utf8.RuneStart(text[end]) {
				end--
			}
			if end == i {
				return nil, ErrInvalidUTF8
			}
		}
		c, err := chunk.NewBytes(text[i:end])
		if err != nil {
			return nil, err
		}
		parts = append(parts, c)
		i = end
	}
	return parts, nil
}
