package symbol

// Span is a half-open code-point range [Start, End) over a normalized text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of code points covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether index i lies inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// SpanMask materializes the union of spans as a per-index set over a text of n code
// points. Indices outside [0, n) are ignored.
func SpanMask(n int, spans []Span) []bool {
	mask := make([]bool, n)
	for _, s := range spans {
		start, end := max(s.Start, 0), min(s.End, n)
		for i := start; i < end; i++ {
			mask[i] = true
		}
	}
	return mask
}
