package overlap

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// WMAState carries the two running sums a weighted moving average needs to
// advance without the window.
type WMAState[T core.Float] struct {
	Sum         T // plain sum of the window
	WeightedSum T // sum of value*weight, oldest weight 1, newest weight period
}

// WMALookback returns the warm-up length of WMA.
func WMALookback(period int) (int, error) {
	if err := core.CheckPeriod("WMA period", period, 2); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// WMASeed builds the state for a full window (oldest first). The window must
// hold exactly period samples.
func WMASeed[T core.Float](window []T, period int) (WMAState[T], error) {
	if err := core.CheckPeriod("WMA period", period, 2); err != nil {
		return WMAState[T]{}, err
	}
	if err := core.CheckWindow(len(window), period); err != nil {
		return WMAState[T]{}, fmt.Errorf("WMA seed: %w", err)
	}
	return wmaSeed(window), nil
}

func wmaSeed[T core.Float](window []T) WMAState[T] {
	var st WMAState[T]
	for i, v := range window {
		st.Sum += v
		st.WeightedSum += T(i+1) * v
	}
	return st
}

func wmaDenominator[T core.Float](period int) T {
	return T(period*(period+1)) / 2
}

func wmaStep[T core.Float](st WMAState[T], newest, oldest T, period int) WMAState[T] {
	return WMAState[T]{
		WeightedSum: st.WeightedSum + T(period)*newest - st.Sum,
		Sum:         core.RollingSumStep(st.Sum, newest, oldest),
	}
}

// WMA computes the linearly weighted moving average of input into out; the
// newest sample carries weight period.
func WMA[T core.Float](input []T, period int, out []T) error {
	lookback, err := WMALookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out}, period); err != nil {
		return fmt.Errorf("WMA: %w", err)
	}

	core.FillNaN(lookback, out)
	WMAFrom(input, period, lookback, out)
	return nil
}

// WMAFrom writes the WMA of input into out[start:], the first value covering
// input[start-period+1 : start+1]. Entries before start are left alone. The
// caller guarantees start >= period-1 and len(out) == len(input).
func WMAFrom[T core.Float](input []T, period, start int, out []T) {
	denom := wmaDenominator[T](period)
	st := wmaSeed(input[start-period+1 : start+1])
	out[start] = st.WeightedSum / denom
	for i := start + 1; i < len(input); i++ {
		st = wmaStep(st, input[i], input[i-period], period)
		out[i] = st.WeightedSum / denom
	}
}

// WMAInc advances a weighted moving average. oldest is the sample leaving the
// window (period bars before newest).
func WMAInc[T core.Float](newest, oldest T, prev WMAState[T], period int) (T, WMAState[T], error) {
	if err := core.CheckPeriod("WMA period", period, 2); err != nil {
		return 0, WMAState[T]{}, err
	}
	st := wmaStep(prev, newest, oldest, period)
	return st.WeightedSum / wmaDenominator[T](period), st, nil
}
