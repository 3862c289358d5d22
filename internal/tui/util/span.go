package util

// Span is a clickable horizontal range [Start, End) on one screen row.
type Span struct {
	Start int
	End   int
	Index int
}

// Contains reports whether column x falls inside the span.
func (s Span) Contains(x int) bool { return x >= s.Start && x < s.End }

// Hit returns the Index of the span under column x, or -1.
func Hit(spans []Span, x int) int {
	for _, s := range spans {
		if s.Contains(x) {
			return s.Index
		}
	}
	return -1
}
