package textbuf

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotIsIndependent(t *testing.T) {
	text := strings.Repeat("snapshot text\n", 100)
	doc, err := CreateDocument(text)
	require.NoError(t, err)
	snap := doc.CreateSnapshot()
	require.NoError(t, doc.Insert(0, "changed "))
	require.NoError(t, doc.Remove(100, 300))

	read := make(chan string)
	go func() {
		s, _ := snap.TextAt(0, snap.Len())
		read <- s
	}()
	assert.Equal(t, text, <-read)
	assert.Equal(t, text, snap.String())

	b, err := snap.ByteAt(9)
	require.NoError(t, err)
	assert.Equal(t, byte('t'), b)
	i, err := snap.IndexOf('\n', 0, snap.Len())
	require.NoError(t, err)
	assert.Equal(t, 13, i)
	_, err = snap.TextAt(1, snap.Len())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSnapshotFromOtherGoroutine(t *testing.T) {
	doc, err := CreateDocument("shared")
	require.NoError(t, err)
	snaps := make(chan *Snapshot)
	go func() { snaps <- doc.CreateSnapshot() }()
	snap := <-snaps
	assert.Equal(t, "shared", snap.String())
}

func TestCreateReader(t *testing.T) {
	text := strings.Repeat("0123456789", 50)
	doc, err := CreateDocument(text)
	require.NoError(t, err)
	r := doc.CreateReader()
	require.NoError(t, doc.Remove(0, 10))

	buf := make([]byte, 7)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "0123456", string(buf[:n]))
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, text[7:], string(rest))
	n, err = r.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestGraphemes(t *testing.T) {
	// 'e' with combining acute accent is a single grapheme
	doc, err := CreateDocument("aéx")
	require.NoError(t, err)
	snap := doc.CreateSnapshot()
	stops, err := snap.Graphemes(0, snap.Len())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4, 5}, stops)

	stops, err = snap.Graphemes(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, stops)

	_, err = snap.Graphemes(3, 1)
	assert.ErrorIs(t, err, ErrNotCharBoundary)
	_, err = snap.Graphemes(0, 6)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSubscribe(t *testing.T) {
	doc, err := CreateDocument("abc")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := doc.Subscribe(ctx, 4)
	require.NoError(t, err)

	require.NoError(t, doc.Insert(3, "\ndef"))
	select {
	case records := <-ch:
		require.Len(t, records, 1)
		assert.Equal(t, 3, records[0].Offset)
		assert.Equal(t, 4, records[0].InsertedLength)
		assert.Equal(t, 2, records[0].InsertedLines)
	case <-time.After(5 * time.Second):
		t.Fatal("no change records received")
	}

	doc.Close()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after Close")
	case <-time.After(5 * time.Second):
		t.Fatal("subscription not closed")
	}
	_, err = doc.Subscribe(ctx, 1)
	assert.ErrorIs(t, err, ErrClosed)
	// the document stays usable
	assert.NoError(t, doc.Insert(0, "x"))
}
