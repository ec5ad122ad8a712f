package metrics

// LinesMetric counts the lines of a text. Lines are delimited by "\n", "\r"
// or "\r\n"; a text with n delimiters has n+1 lines.
type LinesMetric struct {
	delimiters int
	current    int // length of the current line
	longest    int
}

var _ CountingMetric = (*LinesMetric)(nil)

// Apply is part of interface Metric. A '\r' at the end of frag may be the
// start of a "\r\n" and is left unprocessed.
func (lm *LinesMetric) Apply(frag []byte, pos int, atEOF bool) int {
	end := len(frag)
	if !atEOF && end > 0 && frag[end-1] == '\r' {
		end--
	}
	for i := 0; i < end; i++ {
		switch frag[i] {
		case '\r':
			if i+1 < end && frag[i+1] == '\n' {
				i++
			}
			lm.endLine()
		case '\n':
			lm.endLine()
		default:
			lm.current++
		}
	}
	if atEOF {
		lm.longest = max(lm.longest, lm.current)
	}
	return len(frag) - end
}

func (lm *LinesMetric) endLine() {
	lm.delimiters++
	lm.longest = max(lm.longest, lm.current)
	lm.current = 0
}

// Count returns the number of lines.
func (lm *LinesMetric) Count() int {
	return lm.delimiters + 1
}

// Longest returns the length of the longest line in bytes, without its
// delimiter.
func (lm *LinesMetric) Longest() int {
	return lm.longest
}
