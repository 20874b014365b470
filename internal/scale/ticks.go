package scale

import "math"

// DefaultTickCount matches the tick density of a d3 axis.
const DefaultTickCount = 10

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec picks a step of 1, 2 or 5 times a power of ten and returns the
// first and last multiples of it inside [start, stop]. A negative inc means
// the step is 1/-inc, which keeps small steps exact.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && count >= 0.5 && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns evenly spaced round values between start and stop. The
// order follows the arguments, so a reversed domain yields descending ticks.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) {
		return nil
	}
	n := int(i2-i1) + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var k float64
		if reverse {
			k = i2 - float64(i)
		} else {
			k = i1 + float64(i)
		}
		if inc < 0 {
			out[i] = k / -inc
		} else {
			out[i] = k * inc
		}
	}
	return out
}

// TickStep is the distance between consecutive ticks for the given bounds
func TickStep(start, stop float64, count int) float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) || start == stop {
		return 0
	}
	if stop < start {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}
