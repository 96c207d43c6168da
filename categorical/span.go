package categorical

// Span represents a half-open range of dumps [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of dumps covered by the span.
func (x Span) Len() int {
	return x.End - x.Start
}

// Contains reports whether dump falls inside the span.
func (x Span) Contains(dump int) bool {
	return dump >= x.Start && dump < x.End
}

// Intersect returns the intersection with the span y. If the spans do not
// overlap, the second value returned by the method is false.
func (x Span) Intersect(y Span) (Span, bool) {
	start := max(x.Start, y.Start)
	end := min(x.End, y.End)
	if start >= end {
		return Span{}, false
	}
	return Span{Start: start, End: end}, true
}
