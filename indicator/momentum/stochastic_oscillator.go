package momentum

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/indicator/overlap"
)

const (
	DefaultStochasticKPeriod    = 14
	DefaultStochasticDPeriod    = 3
	DefaultStochasticOverbought = 80.0
	DefaultStochasticOversold   = 20.0
)

func checkStochPeriods(kPeriod, dPeriod int) error {
	if err := core.CheckPeriod("stochastic %K period", kPeriod, 2); err != nil {
		return err
	}
	return core.CheckPeriod("stochastic %D period", dPeriod, 2)
}

// StochLookback returns the warm-up length shared by %K and %D: the %K window
// plus the %D average over it.
func StochLookback(kPeriod, dPeriod int) (int, error) {
	if err := checkStochPeriods(kPeriod, dPeriod); err != nil {
		return 0, err
	}
	return kPeriod + dPeriod - 2, nil
}

// stochK places close within [lowest, highest] on a 0..100 scale; a flat
// window yields 0.
func stochK[T core.Float](highest, lowest, close T) T {
	r := highest - lowest
	if r == 0 {
		return 0
	}
	return (close - lowest) / r * 100
}

// StochState is carried between StochInc steps: the current %D and the last
// dPeriod %K values, oldest first.
type StochState[T core.Float] struct {
	D T
	K []T
}

func stochKAt[T core.Float](high, low, close []T, kPeriod, i int) T {
	w := i - kPeriod + 1
	return stochK(core.Highest(high[w:i+1]), core.Lowest(low[w:i+1]), close[i])
}

// Stoch computes the fast stochastic oscillator. %K is the close's position
// in the kPeriod high/low range and %D the dPeriod simple average of %K. Both
// outputs are undefined before the combined lookback.
func Stoch[T core.Float](high, low, close []T, kPeriod, dPeriod int, outK, outD []T) error {
	lookback, err := StochLookback(kPeriod, dPeriod)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{high, low, close}, [][]T{outK, outD}, kPeriod, dPeriod); err != nil {
		return fmt.Errorf("STOCH: %w", err)
	}

	for i := kPeriod - 1; i < len(close); i++ {
		outK[i] = stochKAt(high, low, close, kPeriod, i)
	}
	overlap.SMAFrom(outK, dPeriod, lookback, outD)
	core.FillNaN(lookback, outK, outD)
	return nil
}

// StochSeed returns the state at the last bar of a trailing window of
// kPeriod+dPeriod-1 bars, the shortest span that defines %D. Continuing from
// it with StochInc reproduces the batch output.
func StochSeed[T core.Float](high, low, close []T, kPeriod, dPeriod int) (StochState[T], error) {
	lookback, err := StochLookback(kPeriod, dPeriod)
	if err != nil {
		return StochState[T]{}, err
	}
	if err := core.CheckSameLength(len(close), high, low); err != nil {
		return StochState[T]{}, fmt.Errorf("STOCH seed: %w", err)
	}
	if err := core.CheckWindow(len(close), lookback+1); err != nil {
		return StochState[T]{}, fmt.Errorf("STOCH seed: %w", err)
	}
	k := make([]T, dPeriod)
	for j := range k {
		k[j] = stochKAt(high, low, close, kPeriod, kPeriod-1+j)
	}
	return StochState[T]{D: core.Mean(k), K: k}, nil
}

// StochInc advances the oscillator by one bar. highWindow and lowWindow are
// the trailing kPeriod bars ending at the new one. prev is left untouched.
func StochInc[T core.Float](highWindow, lowWindow []T, close T, prev StochState[T], kPeriod, dPeriod int) (k, d T, next StochState[T], err error) {
	if err := checkStochPeriods(kPeriod, dPeriod); err != nil {
		return 0, 0, StochState[T]{}, err
	}
	if err := core.CheckWindow(len(highWindow), kPeriod); err != nil {
		return 0, 0, StochState[T]{}, fmt.Errorf("STOCH high window: %w", err)
	}
	if err := core.CheckWindow(len(lowWindow), kPeriod); err != nil {
		return 0, 0, StochState[T]{}, fmt.Errorf("STOCH low window: %w", err)
	}
	if err := core.CheckWindow(len(prev.K), dPeriod); err != nil {
		return 0, 0, StochState[T]{}, fmt.Errorf("STOCH %%K history: %w", err)
	}
	k = stochK(core.Highest(highWindow), core.Lowest(lowWindow), close)
	d = core.RollingMeanStep(prev.D, k, prev.K[0], dPeriod)
	ks := make([]T, dPeriod)
	copy(ks, prev.K[1:])
	ks[dPeriod-1] = k
	return k, d, StochState[T]{D: d, K: ks}, nil
}

// StochCrossover classifies %K crossing %D: upward inside the oversold zone is
// bullish, downward inside the overbought zone bearish.
func StochCrossover[T core.Float](prevK, prevD, k, d, overbought, oversold T) core.Signal {
	for _, v := range []T{prevK, prevD, k, d} {
		if core.IsNaN(v) {
			return core.SignalInvalid
		}
	}
	switch {
	case prevK <= prevD && k > d && d < oversold:
		return core.SignalBullish
	case prevK >= prevD && k < d && d > overbought:
		return core.SignalBearish
	default:
		return core.SignalNeutral
	}
}
