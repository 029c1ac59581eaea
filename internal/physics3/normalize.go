package physics3

import "math"

// Normalize sanitizes an externally supplied value against the range. A nil
// value yields Default; anything else is clamped with Clamp.
func (r RangeParam) Normalize(value *float64) float64 {
	if value == nil {
		return r.Default
	}
	return r.Clamp(*value)
}

// Clamp returns min(Maximum, max(Minimum, v)). The order matters on an
// inverted range: Maximum wins. A NaN operand is ignored by max/min, so a NaN
// value lands on a bound instead of propagating.
func (r RangeParam) Clamp(v float64) float64 {
	return minNum(r.Maximum, maxNum(r.Minimum, v))
}

// Contains reports whether v lies inside [Minimum, Maximum].
func (r RangeParam) Contains(v float64) bool {
	return v >= r.Minimum && v <= r.Maximum
}

// Valid reports whether the range is well formed.
func (r RangeParam) Valid() bool {
	return r.Minimum <= r.Maximum
}

func maxNum(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	case a > b:
		return a
	default:
		return b
	}
}

func minNum(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	case a < b:
		return a
	default:
		return b
	}
}
