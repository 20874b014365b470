// Package scale maps data values onto pixel coordinates.
package scale

import "math"

// Linear is a continuous linear mapping from Domain to Range. Values are
// never mutated after construction; a new selection builds a new scale.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// Map converts a data value into a pixel coordinate. A degenerate domain
// maps every value onto the middle of the range.
func (s Linear) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	span := d1 - d0
	var t float64
	switch {
	case math.IsNaN(span):
		return math.NaN()
	case span == 0:
		t = 0.5
	default:
		t = (v - d0) / span
	}
	return r0 + t*(r1-r0)
}

// Invert converts a pixel coordinate back into a data value
func (s Linear) Invert(px float64) float64 {
	return Linear{Domain: s.Range, Range: s.Domain}.Map(px)
}

// Contains reports whether v lies inside the domain, whichever way round it is
func (s Linear) Contains(v float64) bool {
	lo, hi := s.Domain[0], s.Domain[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// Ticks returns roughly count human-friendly values inside the domain
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// TickStep returns the spacing between the values Ticks would produce
func (s Linear) TickStep(count int) float64 {
	return TickStep(s.Domain[0], s.Domain[1], count)
}
