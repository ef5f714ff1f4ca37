package volatility

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

const (
	DefaultBollingerPeriod     = 20
	DefaultBollingerMultiplier = 2.0
)

// BBandsState is the running sum and sum of squares of the trailing window.
type BBandsState[T core.Float] struct {
	Sum   T
	SumSq T
}

// BBandsValue is one set of bands.
type BBandsValue[T core.Float] struct {
	Upper  T
	Middle T
	Lower  T
}

func checkBBands(period int, dev float64) error {
	if err := core.CheckPeriod("BBANDS period", period, 2); err != nil {
		return err
	}
	return core.CheckPositive("BBANDS deviation multiplier", dev)
}

// BBandsLookback returns the warm-up length of Bollinger Bands.
func BBandsLookback(period int, dev float64) (int, error) {
	if err := checkBBands(period, dev); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// BBandsSeed returns the sums over one full window of period closes.
func BBandsSeed[T core.Float](window []T, period int) (BBandsState[T], error) {
	if err := core.CheckPeriod("BBANDS period", period, 2); err != nil {
		return BBandsState[T]{}, err
	}
	if err := core.CheckWindow(len(window), period); err != nil {
		return BBandsState[T]{}, fmt.Errorf("BBANDS seed: %w", err)
	}
	return BBandsState[T]{Sum: core.Sum(window), SumSq: core.SumSquares(window)}, nil
}

// bands uses the population standard deviation of the window.
func bands[T core.Float](st BBandsState[T], period int, dev T) BBandsValue[T] {
	n := T(period)
	mean := st.Sum / n
	width := dev * core.Sqrt(st.SumSq/n-mean*mean)
	return BBandsValue[T]{Upper: mean + width, Middle: mean, Lower: mean - width}
}

func bbandsStep[T core.Float](newest, oldest T, prev BBandsState[T]) BBandsState[T] {
	return BBandsState[T]{
		Sum:   core.RollingSumStep(prev.Sum, newest, oldest),
		SumSq: core.RollingSumStep(prev.SumSq, newest*newest, oldest*oldest),
	}
}

// BBands computes Bollinger Bands: an SMA middle band with upper and lower
// bands dev standard deviations away.
func BBands[T core.Float](input []T, period int, dev float64, outUpper, outMiddle, outLower []T) error {
	lookback, err := BBandsLookback(period, dev)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{outUpper, outMiddle, outLower}, period); err != nil {
		return fmt.Errorf("BBANDS: %w", err)
	}

	core.FillNaN(lookback, outUpper, outMiddle, outLower)
	st := BBandsState[T]{Sum: core.Sum(input[:period]), SumSq: core.SumSquares(input[:period])}
	for i := lookback; i < len(input); i++ {
		if i > lookback {
			st = bbandsStep(input[i], input[i-period], st)
		}
		b := bands(st, period, T(dev))
		outUpper[i], outMiddle[i], outLower[i] = b.Upper, b.Middle, b.Lower
	}
	return nil
}

// BBandsInc slides the window by one close. oldest is the close leaving it.
func BBandsInc[T core.Float](newest, oldest T, prev BBandsState[T], period int, dev float64) (BBandsValue[T], BBandsState[T], error) {
	if err := checkBBands(period, dev); err != nil {
		return BBandsValue[T]{}, BBandsState[T]{}, err
	}
	st := bbandsStep(newest, oldest, prev)
	return bands(st, period, T(dev)), st, nil
}
