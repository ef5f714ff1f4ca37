package core

import "math"

// -----------------------------------------------------------------------------
// Smoothing kernels
// -----------------------------------------------------------------------------

// EMAAlpha is the exponential smoothing factor 2/(period+1).
func EMAAlpha[T Float](period int) T {
	return T(2) / T(period+1)
}

// EMAStep advances an exponential moving average by one sample.
func EMAStep[T Float](sample, prev, alpha T) T {
	return alpha*sample + (1-alpha)*prev
}

// WilderStep advances a Wilder running sum: prev - prev/period + sample.
// This is the sum form used for directional movement, not the average form.
func WilderStep[T Float](prev, sample T, period int) T {
	return prev - prev/T(period) + sample
}

// RMAStep advances Wilder's moving average (average form):
// (prev*(period-1) + sample) / period.
func RMAStep[T Float](prev, sample T, period int) T {
	return (prev*T(period-1) + sample) / T(period)
}

// -----------------------------------------------------------------------------
// Rolling sums
// -----------------------------------------------------------------------------

// Sum adds up every element of s.
func Sum[T Float](s []T) T {
	var sum T
	for _, v := range s {
		sum += v
	}
	return sum
}

// SumSquares adds up the squares of every element of s.
func SumSquares[T Float](s []T) T {
	var sum T
	for _, v := range s {
		sum += v * v
	}
	return sum
}

// Mean is the arithmetic mean of s; s must not be empty.
func Mean[T Float](s []T) T {
	return Sum(s) / T(len(s))
}

// RollingSumStep slides a window sum: drop oldest, add newest.
func RollingSumStep[T Float](prevSum, newest, oldest T) T {
	return prevSum + newest - oldest
}

// RollingMeanStep slides a window mean without carrying the sum.
func RollingMeanStep[T Float](prevMean, newest, oldest T, period int) T {
	return prevMean + (newest-oldest)/T(period)
}

// -----------------------------------------------------------------------------
// Rolling extrema
// -----------------------------------------------------------------------------

// Highest scans s for its maximum; s must not be empty.
func Highest[T Float](s []T) T {
	h := s[0]
	for _, v := range s[1:] {
		if v > h {
			h = v
		}
	}
	return h
}

// Lowest scans s for its minimum; s must not be empty.
func Lowest[T Float](s []T) T {
	l := s[0]
	for _, v := range s[1:] {
		if v < l {
			l = v
		}
	}
	return l
}

// ExtremaStep folds a new high/low into caller-supplied previous extrema.
// It never forgets a value, so it is only exact while the sample leaving the
// trailing window is not the current extremum.
func ExtremaStep[T Float](high, low, prevHighest, prevLowest T) (highest, lowest T) {
	highest, lowest = prevHighest, prevLowest
	if high > highest {
		highest = high
	}
	if low < lowest {
		lowest = low
	}
	return highest, lowest
}

// -----------------------------------------------------------------------------
// Price-bar kernels
// -----------------------------------------------------------------------------

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|).
func TrueRange[T Float](high, low, prevClose T) T {
	tr := high - low
	if d := Abs(high - prevClose); d > tr {
		tr = d
	}
	if d := Abs(low - prevClose); d > tr {
		tr = d
	}
	return tr
}

// DirectionalMovement returns the raw +DM and -DM between two bars. At most
// one of them is non-zero.
func DirectionalMovement[T Float](high, low, prevHigh, prevLow T) (plusDM, minusDM T) {
	up := high - prevHigh
	down := prevLow - low
	if up > down && up > 0 {
		plusDM = up
	}
	if down > up && down > 0 {
		minusDM = down
	}
	return plusDM, minusDM
}

// -----------------------------------------------------------------------------
// Linear regression
//
// The window is indexed x = 0 (oldest) .. n-1 (newest). Only the y-dependent
// sums are carried; sum(x) and sum(x^2) are closed-form in n.
// -----------------------------------------------------------------------------

// LinRegSums returns sum(y) and sum(x*y) over the window.
func LinRegSums[T Float](window []T) (sumY, sumXY T) {
	for i, v := range window {
		sumY += v
		sumXY += T(i) * v
	}
	return sumY, sumXY
}

// LinRegSumsStep slides the sums by one sample. oldest is the value leaving
// the window, newest the value entering it, n the window length.
func LinRegSumsStep[T Float](sumY, sumXY, newest, oldest T, n int) (T, T) {
	nextXY := sumXY - (sumY - oldest) + T(n-1)*newest
	nextY := sumY - oldest + newest
	return nextY, nextXY
}

// LinRegFit returns the least-squares slope and intercept for a window of n
// points with the given sums.
func LinRegFit[T Float](sumY, sumXY T, n int) (slope, intercept T) {
	fn := T(n)
	sumX := T(n*(n-1)) / 2
	sumX2 := T((n-1)*n*(2*n-1)) / 6
	denom := fn*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / fn
	}
	slope = (fn*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / fn
	return slope, intercept
}

// Degrees converts the arctangent of a slope to degrees.
func Degrees[T Float](slope T) T {
	return T(math.Atan(float64(slope)) * 180 / math.Pi)
}

// Sqrt is math.Sqrt for any Float, returning 0 for tiny negative inputs
// produced by cancellation.
func Sqrt[T Float](v T) T {
	if v <= 0 {
		return 0
	}
	return T(math.Sqrt(float64(v)))
}
