package analysis

import "github.com/san-kum/physics3/internal/physics3"

// SampleCurve evaluates r.Clamp at n evenly spaced points covering the range
// widened by half its span on each side, so both saturated tails show up.
// A degenerate range is widened to a unit span.
func SampleCurve(r physics3.RangeParam, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}

	lo, hi := r.Minimum, r.Maximum
	if lo > hi {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span / 2
	hi += span / 2

	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		xs[i] = x
		ys[i] = r.Clamp(x)
	}
	return xs, ys
}
