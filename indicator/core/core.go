// Package core holds the pieces every indicator shares: the numeric type
// constraint, input validation, the smoothing/extrema/regression kernels and
// the categorical enums. Nothing in here knows what a particular indicator
// means.
package core

import "math"

// -----------------------------------------------------------------------------
// Numeric width
// -----------------------------------------------------------------------------

// Float is the set of floating-point types an indicator can be computed in.
// Batch and incremental engines are instantiated with the same T so that both
// paths round identically.
type Float interface {
	~float32 | ~float64
}

// NaN returns the undefined sentinel used for warm-up prefixes.
func NaN[T Float]() T {
	return T(math.NaN())
}

// IsNaN reports whether v is the undefined sentinel.
func IsNaN[T Float](v T) bool {
	return math.IsNaN(float64(v))
}

// FillNaN writes the undefined sentinel into the first n entries of every
// buffer. n larger than a buffer is clipped to its length.
func FillNaN[T Float](n int, bufs ...[]T) {
	nan := NaN[T]()
	for _, b := range bufs {
		m := n
		if m > len(b) {
			m = len(b)
		}
		for i := 0; i < m; i++ {
			b[i] = nan
		}
	}
}

// Abs is math.Abs for any Float.
func Abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Clamp restricts value to [min, max].
func Clamp[T Float](value, min, max T) T {
	if min == max {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
