package chart

import "math"

// Canvas geometry shared by both charts.
const (
	Width      = 500
	Height     = 500
	RangeStart = 50.0
	RangeEnd   = 450.0

	// DefaultTickCount is the approximate number of ticks per axis.
	DefaultTickCount = 10
)

// tick step thresholds: steps are 1, 2, 5 or 10 times a power of ten.
var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear maps a data domain onto a pixel range.
//
// A domain with equal ends maps every value to the middle of the range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear builds a scale from domain [d0, d1] to range [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map scales v. NaN maps to NaN.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	var t float64
	switch {
	case math.IsNaN(v):
		return math.NaN()
	case span == 0:
		t = 0.5
	default:
		t = (v - s.D0) / span
	}
	return s.R0 + t*(s.R1-s.R0)
}

// Ticks returns roughly count evenly spaced, round values inside the domain,
// ordered like the domain.
func (s Linear) Ticks(count int) []float64 {
	return ticks(s.D0, s.D1, count)
}

// TickStep returns the spacing between the values Ticks would return.
func (s Linear) TickStep(count int) float64 {
	lo, hi := s.D0, s.D1
	if hi < lo {
		lo, hi = hi, lo
	}
	return tickStep(lo, hi, count)
}

func ticks(start, stop float64, count int) []float64 {
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
	if i2 < i1 {
		return nil
	}

	n := int(i2-i1) + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i1 + float64(i)
		if inc < 0 {
			out[i] = k / -inc
		} else {
			out[i] = k * inc
		}
	}

	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// tickSpec picks a round step for the interval. A negative inc means the
// step is 1/-inc, which keeps fractional ticks exact when divided back out.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
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

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func tickStep(start, stop float64, count int) float64 {
	if start == stop || count <= 0 {
		return 0
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}
