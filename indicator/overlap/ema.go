package overlap

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// EMALookback returns the warm-up length of EMA.
func EMALookback(period int) (int, error) {
	if err := core.CheckPeriod("EMA period", period, 2); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// EMA computes the exponential moving average of input into out. The average
// is seeded with the SMA of the first period samples and then smoothed with
// alpha = 2/(period+1).
func EMA[T core.Float](input []T, period int, out []T) error {
	lookback, err := EMALookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out}, period); err != nil {
		return fmt.Errorf("EMA: %w", err)
	}
	core.FillNaN(lookback, out)
	EMAFrom(input, period, lookback, out)
	return nil
}

// EMAFrom writes the EMA of input into out[start:], seeding out[start] with
// the mean of input[start-period+1 : start+1]. Entries before start are left
// alone, which lets chained averages (DEMA, TEMA, MACD) run an EMA over a
// series whose head is still undefined. The caller guarantees
// start >= period-1 and len(out) == len(input).
func EMAFrom[T core.Float](input []T, period, start int, out []T) {
	alpha := core.EMAAlpha[T](period)
	prev := core.Mean(input[start-period+1 : start+1])
	out[start] = prev
	for i := start + 1; i < len(input); i++ {
		prev = core.EMAStep(input[i], prev, alpha)
		out[i] = prev
	}
}

// EMAInc advances an exponential moving average by one sample.
func EMAInc[T core.Float](price, prevEMA T, period int) (T, error) {
	if err := core.CheckPeriod("EMA period", period, 2); err != nil {
		return 0, err
	}
	return core.EMAStep(price, prevEMA, core.EMAAlpha[T](period)), nil
}
