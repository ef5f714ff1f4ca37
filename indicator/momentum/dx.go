package momentum

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// DefaultDXPeriod is Wilder's original period.
const DefaultDXPeriod = 14

// DXState is the Wilder-smoothed running sums carried between DX steps.
type DXState[T core.Float] struct {
	PlusDM  T // smoothed +DM
	MinusDM T // smoothed -DM
	TR      T // smoothed true range
}

// DXLookback returns the warm-up length of DX. The first value needs period
// bar-to-bar differences, so it lands on index period.
func DXLookback(period int) (int, error) {
	if err := core.CheckPeriod("DX period", period, 2); err != nil {
		return 0, err
	}
	return period, nil
}

// DXSeed returns the state just before the first DX value: the plain sums of
// +DM, -DM and TR over the first period-1 bar-to-bar differences (indices 1
// through period-1). Feeding bar period onward through DXInc from this seed
// reproduces the whole defined part of the batch output.
func DXSeed[T core.Float](high, low, close []T, period int) (DXState[T], error) {
	lookback, err := DXLookback(period)
	if err != nil {
		return DXState[T]{}, err
	}
	if err := core.ValidateSeries(lookback, [][]T{high, low, close}, nil, period); err != nil {
		return DXState[T]{}, fmt.Errorf("DX seed: %w", err)
	}
	return dxSeed(high, low, close, period), nil
}

func dxSeed[T core.Float](high, low, close []T, period int) DXState[T] {
	var st DXState[T]
	for i := 1; i < period; i++ {
		plus, minus := core.DirectionalMovement(high[i], low[i], high[i-1], low[i-1])
		st.PlusDM += plus
		st.MinusDM += minus
		st.TR += core.TrueRange(high[i], low[i], close[i-1])
	}
	return st
}

func dxStep[T core.Float](high, low, prevHigh, prevLow, prevClose T, prev DXState[T], period int) (T, DXState[T]) {
	plus, minus := core.DirectionalMovement(high, low, prevHigh, prevLow)
	st := DXState[T]{
		PlusDM:  core.WilderStep(prev.PlusDM, plus, period),
		MinusDM: core.WilderStep(prev.MinusDM, minus, period),
		TR:      core.WilderStep(prev.TR, core.TrueRange(high, low, prevClose), period),
	}
	return dxValue(st.PlusDM, st.MinusDM), st
}

// dxValue is 100*|+DM - -DM| / (+DM + -DM), zero when both are zero. The
// smoothed true range cancels out of the +DI/-DI ratio.
func dxValue[T core.Float](plusDM, minusDM T) T {
	sum := plusDM + minusDM
	if sum == 0 {
		return 0
	}
	return 100 * core.Abs(plusDM-minusDM) / sum
}

// DX computes Wilder's Directional Movement Index. Besides the index itself
// the smoothed +DM, -DM and TR series are written so a streaming caller can
// pick up from any defined index with DXInc.
func DX[T core.Float](high, low, close []T, period int, outDX, outPlusDM, outMinusDM, outTR []T) error {
	lookback, err := DXLookback(period)
	if err != nil {
		return err
	}
	err = core.ValidateSeries(lookback,
		[][]T{high, low, close},
		[][]T{outDX, outPlusDM, outMinusDM, outTR},
		period)
	if err != nil {
		return fmt.Errorf("DX: %w", err)
	}

	core.FillNaN(lookback, outDX, outPlusDM, outMinusDM, outTR)
	st := dxSeed(high, low, close, period)
	for i := lookback; i < len(high); i++ {
		var dx T
		dx, st = dxStep(high[i], low[i], high[i-1], low[i-1], close[i-1], st, period)
		outDX[i] = dx
		outPlusDM[i] = st.PlusDM
		outMinusDM[i] = st.MinusDM
		outTR[i] = st.TR
	}
	return nil
}

// DXInc advances DX by one bar. prevHigh, prevLow and prevClose belong to the
// bar before high/low.
func DXInc[T core.Float](high, low, prevHigh, prevLow, prevClose T, prev DXState[T], period int) (T, DXState[T], error) {
	if err := core.CheckPeriod("DX period", period, 2); err != nil {
		return 0, DXState[T]{}, err
	}
	dx, st := dxStep(high, low, prevHigh, prevLow, prevClose, prev, period)
	return dx, st, nil
}
