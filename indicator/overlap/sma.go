// Package overlap implements the moving averages. Every average has a batch
// form over a whole series and an Inc form that advances one sample from the
// caller's previous value.
package overlap

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// SMALookback returns the warm-up length of SMA.
func SMALookback(period int) (int, error) {
	if err := core.CheckPeriod("SMA period", period, 2); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// SMA computes the simple moving average of input into out.
//
// The first value is the plain mean of input[0:period]; every later value is
// produced by SMAInc from the previous one, so streaming callers seeded with
// out[i] reproduce out[i+1:] exactly.
func SMA[T core.Float](input []T, period int, out []T) error {
	lookback, err := SMALookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out}, period); err != nil {
		return fmt.Errorf("SMA: %w", err)
	}

	core.FillNaN(lookback, out)
	SMAFrom(input, period, lookback, out)
	return nil
}

// SMAFrom writes the SMA of input into out[start:], seeding out[start] with
// the mean of input[start-period+1 : start+1]. Entries before start are left
// alone. The caller guarantees start >= period-1 and len(out) == len(input).
func SMAFrom[T core.Float](input []T, period, start int, out []T) {
	prev := core.Mean(input[start-period+1 : start+1])
	out[start] = prev
	for i := start + 1; i < len(input); i++ {
		prev = core.RollingMeanStep(prev, input[i], input[i-period], period)
		out[i] = prev
	}
}

// SMAInc advances a simple moving average: newest enters the window and
// oldest (the sample period bars back) leaves it.
func SMAInc[T core.Float](prevSMA, newest, oldest T, period int) (T, error) {
	if err := core.CheckPeriod("SMA period", period, 2); err != nil {
		return 0, err
	}
	return core.RollingMeanStep(prevSMA, newest, oldest, period), nil
}
