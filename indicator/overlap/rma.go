package overlap

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// RMALookback returns the warm-up length of RMA.
func RMALookback(period int) (int, error) {
	if err := core.CheckPeriod("RMA period", period, 2); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// RMA computes Wilder's moving average (also known as SMMA) of input into
// out, seeded with the SMA of the first period samples.
func RMA[T core.Float](input []T, period int, out []T) error {
	lookback, err := RMALookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out}, period); err != nil {
		return fmt.Errorf("RMA: %w", err)
	}

	core.FillNaN(lookback, out)
	prev := core.Mean(input[:period])
	out[lookback] = prev
	for i := lookback + 1; i < len(input); i++ {
		prev = core.RMAStep(prev, input[i], period)
		out[i] = prev
	}
	return nil
}

// RMAInc advances Wilder's moving average by one sample.
func RMAInc[T core.Float](price, prevRMA T, period int) (T, error) {
	if err := core.CheckPeriod("RMA period", period, 2); err != nil {
		return 0, err
	}
	return core.RMAStep(prevRMA, price, period), nil
}
