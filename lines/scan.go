package lines

// Source is the text the line structure is computed from. *rope.Rope
// satisfies Source.
type Source interface {
	Len() int
	At(i int) (byte, error)
	// NextLineBreak returns the offset of the first '\n' or '\r' in [from,to).
	NextLineBreak(from, to int) (int, bool)
}

// Scan returns the line records for the text in [from,to) of src.
//
// Delimiters are "\n", "\r\n" and a lone "\r". A "\r" at position to-1 is
// not joined with a '\n' at position to. The last record always covers the
// text after the last delimiter and has delimiter length 0; it may be empty.
func Scan(src Source, from, to int) []Record {
	from, to = max(0, from), min(to, src.Len())
	var records []Record
	pos := from
	for pos <= to {
		brk, ok := src.NextLineBreak(pos, to)
		if !ok {
			records = append(records, Record{ExactLength: to - pos})
			break
		}
		delim := 1
		if b, _ := src.At(brk); b == '\r' && brk+1 < to {
			if next, _ := src.At(brk + 1); next == '\n' {
				delim = 2
			}
		}
		records = append(records, Record{ExactLength: brk + delim - pos, DelimiterLength: delim})
		pos = brk + delim
	}
	return records
}
