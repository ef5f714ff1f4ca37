package overlap

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// DEMAState is the pair of chained EMAs behind a double exponential average.
type DEMAState[T core.Float] struct {
	EMA1 T
	EMA2 T
}

// DEMALookback returns the warm-up length of DEMA: two chained EMA warm-ups.
func DEMALookback(period int) (int, error) {
	if err := core.CheckPeriod("DEMA period", period, 2); err != nil {
		return 0, err
	}
	return 2 * (period - 1), nil
}

// DEMA computes 2*EMA(x) - EMA(EMA(x)). The two inner EMAs are written to
// outEMA1 and outEMA2 so a streaming caller can seed DEMAInc from any index
// at or after the lookback.
func DEMA[T core.Float](input []T, period int, out, outEMA1, outEMA2 []T) error {
	lookback, err := DEMALookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out, outEMA1, outEMA2}, period); err != nil {
		return fmt.Errorf("DEMA: %w", err)
	}

	EMAFrom(input, period, period-1, outEMA1)
	EMAFrom(outEMA1, period, lookback, outEMA2)
	for i := lookback; i < len(input); i++ {
		out[i] = 2*outEMA1[i] - outEMA2[i]
	}
	core.FillNaN(lookback, out, outEMA1, outEMA2)
	return nil
}

// DEMAInc advances a double exponential average by one sample.
func DEMAInc[T core.Float](price T, prev DEMAState[T], period int) (T, DEMAState[T], error) {
	if err := core.CheckPeriod("DEMA period", period, 2); err != nil {
		return 0, DEMAState[T]{}, err
	}
	alpha := core.EMAAlpha[T](period)
	st := DEMAState[T]{EMA1: core.EMAStep(price, prev.EMA1, alpha)}
	st.EMA2 = core.EMAStep(st.EMA1, prev.EMA2, alpha)
	return 2*st.EMA1 - st.EMA2, st, nil
}
