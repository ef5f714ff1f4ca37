// Package trend holds trend-following overlays: Wilder's Parabolic SAR and the
// Hull moving average.
package trend

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

const (
	DefaultSARAcceleration = 0.02
	DefaultSARMaximum      = 0.2
)

// SARState is everything Parabolic SAR carries from bar to bar.
type SARState[T core.Float] struct {
	SAR     T    // stop level for the next bar
	EP      T    // extreme point of the current trend
	AF      T    // acceleration factor
	Uptrend bool // trend direction
}

func checkSARParams(acceleration, maximum float64) error {
	if err := core.CheckPositive("SAR acceleration", acceleration); err != nil {
		return err
	}
	if err := core.CheckPositive("SAR maximum", maximum); err != nil {
		return err
	}
	if acceleration > maximum {
		return fmt.Errorf("%w: SAR acceleration %g exceeds maximum %g", core.ErrInvalidParameter, acceleration, maximum)
	}
	return nil
}

// SARLookback returns the warm-up length of Parabolic SAR: the first stop is
// placed once two bars fix the initial trend.
func SARLookback(acceleration, maximum float64) (int, error) {
	if err := checkSARParams(acceleration, maximum); err != nil {
		return 0, err
	}
	return 1, nil
}

// SARSeed opens the first trend from bars 0 and 1. A rising midpoint starts
// an uptrend stopped at the first low; otherwise a downtrend stopped at the
// first high.
func SARSeed[T core.Float](high0, low0, high1, low1 T, acceleration float64) SARState[T] {
	st := SARState[T]{AF: T(acceleration)}
	st.Uptrend = (high1+low1)/2 >= (high0+low0)/2
	if st.Uptrend {
		st.EP = max(high0, high1)
		st.SAR = low0
	} else {
		st.EP = min(low0, low1)
		st.SAR = high0
	}
	return st
}

func sarStep[T core.Float](high, low, prevHigh, prevLow, prev2High, prev2Low T, prev SARState[T], acceleration, maximum T) SARState[T] {
	st := prev
	sar := prev.SAR + prev.AF*(prev.EP-prev.SAR)

	if st.Uptrend {
		// The stop may not rise into the previous two bars.
		sar = min(sar, prevLow, prev2Low)
		if low < sar {
			// A new short stop starts at the old extreme but never below
			// this bar's or the previous bar's high.
			st.Uptrend = false
			sar, st.EP, st.AF = max(prev.EP, high, prevHigh), low, acceleration
		} else if high > st.EP {
			st.EP = high
			st.AF = min(st.AF+acceleration, maximum)
		}
	} else {
		sar = max(sar, prevHigh, prev2High)
		if high > sar {
			st.Uptrend = true
			sar, st.EP, st.AF = min(prev.EP, low, prevLow), high, acceleration
		} else if low < st.EP {
			st.EP = low
			st.AF = min(st.AF+acceleration, maximum)
		}
	}
	st.SAR = sar
	return st
}

// SAR computes Wilder's Parabolic Stop and Reverse over high/low bars.
func SAR[T core.Float](high, low []T, acceleration, maximum float64, out []T) error {
	lookback, err := SARLookback(acceleration, maximum)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{high, low}, [][]T{out}); err != nil {
		return fmt.Errorf("SAR: %w", err)
	}

	core.FillNaN(lookback, out)
	st := SARSeed(high[0], low[0], high[1], low[1], acceleration)
	out[1] = st.SAR
	for i := 2; i < len(high); i++ {
		st = sarStep(high[i], low[i], high[i-1], low[i-1], high[i-2], low[i-2], st, T(acceleration), T(maximum))
		out[i] = st.SAR
	}
	return nil
}

// SARInc advances Parabolic SAR by one bar. prevHigh/prevLow belong to the
// bar before high/low and prev2High/prev2Low to the one before that.
func SARInc[T core.Float](high, low, prevHigh, prevLow, prev2High, prev2Low T, prev SARState[T], acceleration, maximum float64) (T, SARState[T], error) {
	if err := checkSARParams(acceleration, maximum); err != nil {
		return 0, SARState[T]{}, err
	}
	st := sarStep(high, low, prevHigh, prevLow, prev2High, prev2Low, prev, T(acceleration), T(maximum))
	return st.SAR, st, nil
}
