package textbuf

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeNotifications(t *testing.T) {
	doc, err := CreateDocument("abc\ndef\n")
	require.NoError(t, err)
	var events []string
	var records []ChangeRecord
	doc.OnChanging(func(d *Document) {
		events = append(events, "changing:"+strconv.Itoa(d.Len()))
	})
	unregister := doc.OnChanged(func(d *Document, recs []ChangeRecord) {
		events = append(events, "changed:"+strconv.Itoa(d.Len()))
		records = recs
	})

	require.NoError(t, doc.Insert(0, "X"))
	assert.Equal(t, []string{"changing:8", "changed:9"}, events)
	require.Len(t, records, 1)
	assert.Equal(t, ChangeRecord{
		Offset:         0,
		InsertedLength: 1,
		FirstLine:      1,
		RemovedLines:   1,
		InsertedLines:  1,
	}, records[0])

	require.NoError(t, doc.Replace(3, 2, "\n\n"))
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Offset)
	assert.Equal(t, 2, records[0].InsertedLength)
	assert.Equal(t, 2, records[0].RemovedLength)
	assert.Equal(t, records[0].RemovedLines+1, records[0].InsertedLines)

	unregister()
	events = nil
	require.NoError(t, doc.Remove(0, 1))
	assert.Equal(t, []string{"changing:9"}, events)
}

func TestMutationFromHandlerFails(t *testing.T) {
	doc, err := CreateDocument("text")
	require.NoError(t, err)
	var fromChanging, fromChanged, fromUpdate error
	doc.OnChanging(func(d *Document) {
		fromChanging = d.Insert(0, "a")
	})
	doc.OnChanged(func(d *Document, _ []ChangeRecord) {
		fromChanged = d.Remove(0, 1)
		fromUpdate = d.Update(func() error { return nil })
	})
	require.NoError(t, doc.Insert(4, "!"))
	assert.ErrorIs(t, fromChanging, ErrMutationInProgress)
	assert.ErrorIs(t, fromChanged, ErrMutationInProgress)
	assert.ErrorIs(t, fromUpdate, ErrMutationInProgress)
	assert.Equal(t, "text!", doc.Text())

	// handlers may still read the document
	var lines int
	doc.OnChanged(func(d *Document, _ []ChangeRecord) { lines = d.LineCount() })
	require.NoError(t, doc.Insert(0, "\n"))
	assert.Equal(t, 2, lines)
}

func TestUpdateGroupsChanges(t *testing.T) {
	doc, err := CreateDocument("one two")
	require.NoError(t, err)
	changing, changed := 0, 0
	var records []ChangeRecord
	doc.OnChanging(func(*Document) { changing++ })
	doc.OnChanged(func(_ *Document, recs []ChangeRecord) {
		changed++
		records = recs
	})

	err = doc.Update(func() error {
		if err := doc.Replace(3, 1, "\n"); err != nil {
			return err
		}
		return doc.Insert(0, "zero\n")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, changing)
	assert.Equal(t, 1, changed)
	require.Len(t, records, 2)
	assert.Equal(t, 3, records[0].Offset)
	assert.Equal(t, 0, records[1].Offset)
	assert.Equal(t, "zero\none\ntwo", doc.Text())

	nested := doc.Update(func() error {
		return doc.Update(func() error { return nil })
	})
	assert.ErrorIs(t, nested, ErrMutationInProgress)

	// edits done before an error are kept and reported
	failure := errors.New("stop")
	err = doc.Update(func() error {
		_ = doc.Insert(0, "#")
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, "#zero\none\ntwo", doc.Text())
	require.Len(t, records, 1)
	assert.Equal(t, 2, changed)

	// an Update without edits notifies nobody
	require.NoError(t, doc.Update(func() error { return nil }))
	assert.Equal(t, 2, changed)
	assert.ErrorIs(t, doc.Update(nil), ErrNilArgument)
}

func TestPanickingHandlerResetsDocument(t *testing.T) {
	doc, err := CreateDocument("abc")
	require.NoError(t, err)
	remove := doc.OnChanged(func(*Document, []ChangeRecord) { panic("boom") })
	assert.Panics(t, func() { _ = doc.Insert(0, "x") })
	remove()
	assert.NoError(t, doc.Insert(0, "y"))
	assert.Equal(t, "yxabc", doc.Text())
}

func TestCrossContextAccessPanics(t *testing.T) {
	doc, err := CreateDocument("owned")
	require.NoError(t, err)
	recovered := make(chan any)
	go func() {
		defer func() { recovered <- recover() }()
		_ = doc.Insert(0, "x")
	}()
	assert.Equal(t, ErrCrossContextAccess, <-recovered)
	assert.Equal(t, "owned", doc.Text())

	free, err := CreateDocument("free", WithoutOwnerCheck())
	require.NoError(t, err)
	go func() {
		defer func() { recovered <- recover() }()
		_ = free.Insert(0, "x")
	}()
	assert.Nil(t, <-recovered)
	assert.Equal(t, "xfree", free.Text())
}

// --- Randomized edits against a string model --------------------------------

type modelAnchor struct {
	a       *Anchor
	offset  int
	deleted bool
}

func countLines(s string) int {
	n := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			n++
		case '\n':
			n++
		}
	}
	return n
}

func charBoundary(s string, offset int) int {
	for offset > 0 && offset < len(s) && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}

func runRandomEdits(t *testing.T, seed int64, steps int) {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	pieces := []string{"a", "bc", "\n", "\r", "\r\n", "ü", "€uro\n", "lorem ipsum dolor sit amet "}
	doc, err := CreateDocument("", WithInvariantChecks())
	require.NoError(t, err)
	model := ""
	var anchors []*modelAnchor
	for i := 0; i < steps; i++ {
		offset := charBoundary(model, rnd.Intn(len(model)+1))
		switch op := rnd.Intn(10); {
		case op < 2:
			a, err := doc.CreateAnchor(offset, Movement(rnd.Intn(2)))
			require.NoError(t, err)
			anchors = append(anchors, &modelAnchor{a: a, offset: offset})
			continue
		case op < 3 && len(anchors) > 0:
			m := anchors[rnd.Intn(len(anchors))]
			err := doc.RemoveAnchor(m.a)
			if m.deleted {
				require.ErrorIs(t, err, ErrAnchorDeleted)
			} else {
				require.NoError(t, err)
			}
			m.deleted = true
			continue
		}
		removed := 0
		if rnd.Intn(2) == 0 {
			removed = charBoundary(model, offset+rnd.Intn(len(model)-offset+1)) - offset
		}
		text := ""
		for n := rnd.Intn(4); n > 0; n-- {
			text += pieces[rnd.Intn(len(pieces))]
		}
		require.NoError(t, doc.Replace(offset, removed, text), "step %d", i)
		model = model[:offset] + text + model[offset+removed:]
		for _, m := range anchors {
			switch {
			case m.deleted || m.offset <= offset:
			case m.offset < offset+removed:
				m.deleted, m.offset = true, offset
			default:
				m.offset -= removed
			}
			if !m.deleted && (m.offset > offset || m.offset == offset && m.a.Movement() == AfterInsertion) {
				m.offset += len(text)
			}
		}
		require.Equal(t, model, doc.Text(), "step %d", i)
		require.Equal(t, countLines(model), doc.LineCount(), "step %d", i)
		total := 0
		for line := range doc.Lines() {
			total += line.ExactLength
		}
		require.Equal(t, doc.Len(), total, "step %d", i)
		for j, m := range anchors {
			require.Equal(t, m.deleted, m.a.IsDeleted(), "step %d, anchor %d", i, j)
			require.Equal(t, m.offset, m.a.Offset(), "step %d, anchor %d", i, j)
		}
	}
}

func TestRandomizedEditsProperty(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 4711} {
		t.Run("seed_"+strconv.FormatInt(seed, 10), func(t *testing.T) {
			runRandomEdits(t, seed, 250)
		})
	}
}

func FuzzRandomizedEditsProperty(f *testing.F) {
	// How to run:
	//   go test -run=^$ -fuzz=FuzzRandomizedEditsProperty -fuzztime=30s .
	f.Add(int64(1), uint8(40))
	f.Add(int64(77), uint8(200))
	f.Fuzz(func(t *testing.T, seed int64, steps uint8) {
		runRandomEdits(t, seed, int(steps)+1)
	})
}
