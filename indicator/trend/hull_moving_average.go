package trend

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/indicator/overlap"
)

// DefaultHMAPeriod is the common Hull period.
const DefaultHMAPeriod = 9

// hmaPeriods returns the half and square-root WMA periods of a Hull average.
func hmaPeriods(period int) (half, root int) {
	return period / 2, int(core.Sqrt(float64(period)))
}

// HMALookback returns the warm-up length of HMA: the full WMA followed by the
// square-root WMA over the raw Hull series. Both inner averages need at least
// two samples, so period must be at least 4.
func HMALookback(period int) (int, error) {
	if err := core.CheckPeriod("HMA period", period, 4); err != nil {
		return 0, err
	}
	_, root := hmaPeriods(period)
	return period + root - 2, nil
}

// HMA computes Alan Hull's moving average:
// WMA(2*WMA(input, period/2) - WMA(input, period), sqrt(period)).
func HMA[T core.Float](input []T, period int, out []T) error {
	lookback, err := HMALookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out}, period); err != nil {
		return fmt.Errorf("HMA: %w", err)
	}

	n := len(input)
	half, root := hmaPeriods(period)
	full, halfWMA := make([]T, n), make([]T, n)
	start := period - 1
	overlap.WMAFrom(input, period, start, full)
	overlap.WMAFrom(input, half, start, halfWMA)
	raw := make([]T, n)
	for i := start; i < n; i++ {
		raw[i] = 2*halfWMA[i] - full[i]
	}
	overlap.WMAFrom(raw, root, lookback, out)
	core.FillNaN(lookback, out)
	return nil
}

// HMAInc computes HMA for the newest sample from its trailing window of
// period+sqrt(period)-1 samples (oldest first).
func HMAInc[T core.Float](window []T, period int) (T, error) {
	lookback, err := HMALookback(period)
	if err != nil {
		return 0, err
	}
	if err := core.CheckWindow(len(window), lookback+1); err != nil {
		return 0, fmt.Errorf("HMA window: %w", err)
	}
	out := make([]T, len(window))
	if err := HMA(window, period, out); err != nil {
		return 0, err
	}
	return out[len(out)-1], nil
}

// HMATrend reports the direction of the Hull average between two samples.
func HMATrend[T core.Float](prev, curr T) core.Signal {
	switch {
	case core.IsNaN(prev) || core.IsNaN(curr):
		return core.SignalInvalid
	case curr > prev:
		return core.SignalBullish
	case curr < prev:
		return core.SignalBearish
	default:
		return core.SignalNeutral
	}
}
