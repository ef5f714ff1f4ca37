package overlap

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// TEMAState is the triple of chained EMAs behind a triple exponential average.
type TEMAState[T core.Float] struct {
	EMA1 T
	EMA2 T
	EMA3 T
}

// TEMALookback returns the warm-up length of TEMA: three chained EMA warm-ups.
func TEMALookback(period int) (int, error) {
	if err := core.CheckPeriod("TEMA period", period, 2); err != nil {
		return 0, err
	}
	return 3 * (period - 1), nil
}

// TEMA computes 3*EMA1 - 3*EMA2 + EMA3 where each EMA smooths the previous.
func TEMA[T core.Float](input []T, period int, out, outEMA1, outEMA2, outEMA3 []T) error {
	lookback, err := TEMALookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out, outEMA1, outEMA2, outEMA3}, period); err != nil {
		return fmt.Errorf("TEMA: %w", err)
	}

	EMAFrom(input, period, period-1, outEMA1)
	EMAFrom(outEMA1, period, 2*(period-1), outEMA2)
	EMAFrom(outEMA2, period, lookback, outEMA3)
	for i := lookback; i < len(input); i++ {
		out[i] = 3*outEMA1[i] - 3*outEMA2[i] + outEMA3[i]
	}
	core.FillNaN(lookback, out, outEMA1, outEMA2, outEMA3)
	return nil
}

// TEMAInc advances a triple exponential average by one sample.
func TEMAInc[T core.Float](price T, prev TEMAState[T], period int) (T, TEMAState[T], error) {
	if err := core.CheckPeriod("TEMA period", period, 2); err != nil {
		return 0, TEMAState[T]{}, err
	}
	alpha := core.EMAAlpha[T](period)
	var st TEMAState[T]
	st.EMA1 = core.EMAStep(price, prev.EMA1, alpha)
	st.EMA2 = core.EMAStep(st.EMA1, prev.EMA2, alpha)
	st.EMA3 = core.EMAStep(st.EMA2, prev.EMA3, alpha)
	return 3*st.EMA1 - 3*st.EMA2 + st.EMA3, st, nil
}
