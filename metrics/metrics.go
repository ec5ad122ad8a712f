package metrics

import (
	"fmt"

	"github.com/npillmayer/textbuf"
)

// Metric is a metric to calculate on a text. Sometimes it's helpful to find
// information about a (large) text by collecting metrics from fragments and
// assembling them.
//
// Apply measures a fragment of text located at byte offset pos. Clients will
// have no control over size or boundaries of the fragment: it may end in the
// middle of a word or even of a rune. Apply returns the number of bytes at
// the end of frag which it could not measure yet; these are handed in again,
// prefixed to the next fragment. With atEOF set, frag ends the text and has
// to be measured completely.
type Metric interface {
	Apply(frag []byte, pos int, atEOF bool) (unprocessed int)
}

// fragmentSize is the number of bytes read from a text source at a time.
var fragmentSize = 4096

// Apply applies a metric calculation on a (section of a) text.
//
// i and j are text positions with Go slice semantics.
// If [i, j) does not specify a valid slice of the text, textbuf.ErrOutOfRange
// will be returned.
func Apply(src textbuf.TextSource, i, j int, metric Metric) error {
	if i < 0 || j > src.Len() || j < i {
		return fmt.Errorf("%w: [%d,%d) of %d", textbuf.ErrOutOfRange, i, j, src.Len())
	}
	buf := make([]byte, 0, fragmentSize)
	pos, next := i, i // pos is the offset of buf[0]
	for {
		n := min(fragmentSize, j-next)
		frag, err := src.TextAt(next, n)
		if err != nil {
			return err
		}
		buf = append(buf, frag...)
		next += n
		atEOF := next == j
		u := metric.Apply(buf, pos, atEOF)
		if atEOF {
			tracer().Debugf("metrics: measured [%d,%d)", i, j)
			return nil
		}
		if u < 0 || u > len(buf) {
			return fmt.Errorf("metric left %d of %d bytes unprocessed", u, len(buf))
		}
		consumed := len(buf) - u
		pos += consumed
		buf = append(buf[:0], buf[consumed:]...)
	}
}

// ---------------------------------------------------------------------------

// CountingMetric is a type for metrics that count items in text. Possible
// items may be lines, words, emojis, …
type CountingMetric interface {
	Metric
	Count() int
}

// Count applies a counting metric to a text.
func Count(src textbuf.TextSource, i, j int, metric CountingMetric) (int, error) {
	if err := Apply(src, i, j, metric); err != nil {
		return -1, fmt.Errorf("metrics.Count could not be applied: %w", err)
	}
	return metric.Count(), nil
}
