package textfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/textbuf"
	"github.com/npillmayer/textbuf/rope"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// ErrNotRegular is returned for files which are not regular files.
var ErrNotRegular = errors.New("textfile: not a regular file")

// Progress is sent to subscribers of a loader after every fragment read.
type Progress struct {
	Loaded int64 // bytes read so far
	Size   int64 // size of the file
}

// Loader reads a text file in the background.
type Loader struct {
	path     string
	info     os.FileInfo    // result from Stat(path)
	file     *os.File       // file handle
	fragSize int64          // bytes read at a time
	cast     *caster.Caster // broadcaster for loading progress
	start    sync.Once
	done     chan struct{}
	text     *rope.Rope // result, valid after done
	err      error      // result, valid after done
}

// Open opens a file, which must be a regular text file, for loading. Clients
// may indicate a recommended fragment length. It may be 0, letting Open use
// sensible defaults. Opening of the file is always done synchronously;
// reading starts with Start or Wait.
func Open(name string, fragSize int64) (*Loader, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	if fragSize <= 0 || fragSize > tenKb {
		fragSize = defaultFragSize(fi.Size())
	}
	return &Loader{
		path:     name,
		info:     fi,
		file:     file,
		fragSize: fragSize,
		cast:     caster.New(context.Background()),
		done:     make(chan struct{}),
	}, nil
}

func defaultFragSize(size int64) int64 {
	switch {
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// Progress subscribes to the loading progress. The channel is closed when
// loading has finished or ctx is done. Subscribers have to keep reading.
func (l *Loader) Progress(ctx context.Context) (<-chan Progress, error) {
	sub, ok := l.cast.Sub(ctx, 1)
	if !ok {
		return nil, textbuf.ErrClosed
	}
	out := make(chan Progress, 1)
	go func() {
		defer close(out)
		for msg := range sub {
			p, ok := msg.(Progress)
			if !ok {
				continue
			}
			select {
			case out <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Start starts loading in the background. Calling Start more than once has
// no effect.
func (l *Loader) Start() {
	l.start.Do(func() {
		go l.load()
	})
}

// Wait starts loading, if not already done, and waits until the file has
// been read completely. The calling goroutine becomes the owner of the
// document returned.
func (l *Loader) Wait(opts ...textbuf.Option) (*textbuf.Document, error) {
	l.Start()
	<-l.done
	if l.err != nil {
		return nil, l.err
	}
	return textbuf.DocumentFromRope(l.text, opts...)
}

func (l *Loader) load() {
	defer close(l.done)
	defer l.cast.Close()
	defer l.file.Close()
	size := l.info.Size()
	b := rope.NewBuilder()
	buf := make([]byte, l.fragSize)
	var pos int64
	for pos < size {
		cnt, err := l.file.ReadAt(buf[:min(l.fragSize, size-pos)], pos)
		if err != nil && err != io.EOF {
			l.err = fmt.Errorf("error loading text fragment of %s: %w", l.path, err)
			return
		} else if cnt == 0 {
			l.err = fmt.Errorf("file %s has been truncated while loading", l.path)
			return
		}
		if err = b.Append(buf[:cnt]); err != nil {
			l.err = fmt.Errorf("%s at %d: %w", l.path, pos, err)
			return
		}
		pos += int64(cnt)
		l.cast.Pub(Progress{Loaded: pos, Size: size})
	}
	l.text, l.err = b.Rope()
	if l.err != nil {
		l.err = fmt.Errorf("%s: %w", l.path, l.err)
		return
	}
	tracer().Debugf("textfile: loaded %d bytes from %s", size, l.path)
}

// Load reads a file, which must be a UTF-8 text file, into a document.
func Load(name string, opts ...textbuf.Option) (*textbuf.Document, error) {
	l, err := Open(name, 0)
	if err != nil {
		return nil, err
	}
	return l.Wait(opts...)
}
