package math

import "math"

// DefaultEpsilon is the relative tolerance used by Equal.
const DefaultEpsilon = 1e-12

// EqualFloat compares two finite numbers with a tolerance relative to their
// magnitude (absolute below 1). Non-finite values are never equal.
func EqualFloat(a, b, epsilon float64) bool {
	if a == b {
		return !math.IsInf(a, 0) && !math.IsNaN(a)
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= epsilon*math.Max(1.0, math.Max(math.Abs(a), math.Abs(b)))
}

// EqualSlices compares two slices element-wise with EqualFloat.
func EqualSlices(a, b []float64, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualFloat(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

// Equal reports whether two matrices match within DefaultEpsilon.
func (m Mat4) Equal(other Mat4) bool {
	return EqualSlices(m[:], other[:], DefaultEpsilon)
}
