package chunk

import "errors"

var (
	// ErrInvalidUTF8 signals invalid UTF-8 source text.
	ErrInvalidUTF8 = errors.New("chunk: invalid UTF-8")
	// ErrChunkTooLarge signals that an edit would exceed MaxBase bytes.
	ErrChunkTooLarge = errors.New("chunk: text exceeds chunk capacity")
	// ErrIndexOutOfBounds signals invalid chunk-local byte offsets.
	ErrIndexOutOfBounds = errors.New("chunk: index out of bounds")
	// ErrNotCharBoundary signals offsets in the middle of a UTF-8 sequence.
	ErrNotCharBoundary = errors.New("chunk: offset is not a char boundary")
	// ErrBitmapMismatch signals bitmaps that disagree with the stored text.
	ErrBitmapMismatch = errors.New("chunk: bitmap index out of sync")
)
