package core

import "math"

// Interval is a closed range of ray parameters
type Interval struct {
	Start float64
	End   float64
}

var (
	// EmptyInterval contains only zero; never used as a query range
	EmptyInterval = Interval{Start: 0, End: 0}
	// UniverseInterval spans every real number
	UniverseInterval = Interval{Start: math.Inf(-1), End: math.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(start, end float64) Interval {
	return Interval{Start: start, End: end}
}

// Contains reports whether start <= x <= end
func (i Interval) Contains(x float64) bool {
	return i.Start <= x && x <= i.End
}

// Surrounds reports whether start < x < end. Intersections use this so a
// hit exactly on either bound is rejected.
func (i Interval) Surrounds(x float64) bool {
	return i.Start < x && x < i.End
}

// WithEnd returns a copy of the interval with a new upper bound
func (i Interval) WithEnd(end float64) Interval {
	return Interval{Start: i.Start, End: end}
}
