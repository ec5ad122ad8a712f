package lines

import "fmt"

// Record describes one line.
type Record struct {
	ExactLength     int // bytes of the line including its delimiter
	DelimiterLength int // 0, 1 or 2
}

// Length returns the length of the line content, excluding the delimiter.
func (r Record) Length() int {
	return r.ExactLength - r.DelimiterLength
}

// Summary is part of interface rbtree.Summarized.
func (r Record) Summary() Summary {
	return Summary{Count: 1, Length: r.ExactLength}
}

func (r Record) String() string {
	return fmt.Sprintf("%d+%d", r.Length(), r.DelimiterLength)
}

func (r Record) valid() bool {
	return r.DelimiterLength >= 0 && r.DelimiterLength <= 2 && r.ExactLength >= r.DelimiterLength
}

// Summary aggregates records of a subtree.
type Summary struct {
	Count  int // number of lines
	Length int // sum of exact lengths
}

type monoid struct{}

func (monoid) Zero() Summary { return Summary{} }

func (monoid) Add(left, right Summary) Summary {
	return Summary{Count: left.Count + right.Count, Length: left.Length + right.Length}
}

// offsetDimension seeks along byte offsets.
type offsetDimension struct{}

func (offsetDimension) Zero() int { return 0 }

func (offsetDimension) Add(acc int, s Summary) int { return acc + s.Length }

func (offsetDimension) Compare(acc, target int) int { return acc - target }
