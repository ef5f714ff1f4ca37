package volume

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

const (
	DefaultMFIPeriod     = 14
	DefaultMFIOverbought = 80.0
	DefaultMFIOversold   = 20.0
)

// MFIState is the positive and negative money flow summed over the window.
type MFIState[T core.Float] struct {
	PosFlow T
	NegFlow T
}

// MFILookback returns the warm-up length of MFI: period bar-to-bar flows.
func MFILookback(period int) (int, error) {
	if err := core.CheckPeriod("MFI period", period, 2); err != nil {
		return 0, err
	}
	return period, nil
}

// MoneyFlow is the signed raw money flow of a bar: typical price times
// volume, positive when the close rose, negative when it fell and zero when
// unchanged.
func MoneyFlow[T core.Float](high, low, close, volume, prevClose T) T {
	raw := (high + low + close) / 3 * volume
	switch {
	case close > prevClose:
		return raw
	case close < prevClose:
		return -raw
	default:
		return 0
	}
}

func splitFlow[T core.Float](flow T) (pos, neg T) {
	if flow > 0 {
		return flow, 0
	}
	return 0, -flow
}

// mfiValue mirrors the RSI edge cases: no flow is neutral (50), only inflow
// 100, only outflow 0.
func mfiValue[T core.Float](st MFIState[T]) T {
	switch {
	case st.PosFlow <= 0 && st.NegFlow <= 0:
		return 50
	case st.NegFlow <= 0:
		return 100
	case st.PosFlow <= 0:
		return 0
	}
	return core.Clamp(100-100/(1+st.PosFlow/st.NegFlow), 0, 100)
}

func mfiStep[T core.Float](flow, oldestFlow T, prev MFIState[T]) MFIState[T] {
	inPos, inNeg := splitFlow(flow)
	outPos, outNeg := splitFlow(oldestFlow)
	return MFIState[T]{
		PosFlow: core.RollingSumStep(prev.PosFlow, inPos, outPos),
		NegFlow: core.RollingSumStep(prev.NegFlow, inNeg, outNeg),
	}
}

// MFI computes the Money Flow Index, a volume-weighted RSI over the typical
// price. The window sums are written alongside so MFIInc can continue from
// any defined bar. Negative or NaN volume is rejected before any write.
func MFI[T core.Float](high, low, close, volume []T, period int, outMFI, outPos, outNeg []T) error {
	lookback, err := MFILookback(period)
	if err != nil {
		return err
	}
	err = core.ValidateSeries(lookback,
		[][]T{high, low, close, volume},
		[][]T{outMFI, outPos, outNeg},
		period)
	if err != nil {
		return fmt.Errorf("MFI: %w", err)
	}
	for i, v := range volume {
		if err := checkVolume(v); err != nil {
			return fmt.Errorf("MFI bar %d: %w", i, err)
		}
	}

	flows := make([]T, len(close))
	for i := 1; i < len(close); i++ {
		flows[i] = MoneyFlow(high[i], low[i], close[i], volume[i], close[i-1])
	}

	core.FillNaN(lookback, outMFI, outPos, outNeg)
	var st MFIState[T]
	for _, f := range flows[1 : period+1] {
		p, n := splitFlow(f)
		st.PosFlow += p
		st.NegFlow += n
	}
	outMFI[lookback], outPos[lookback], outNeg[lookback] = mfiValue(st), st.PosFlow, st.NegFlow
	for i := lookback + 1; i < len(close); i++ {
		st = mfiStep(flows[i], flows[i-period], st)
		outMFI[i], outPos[i], outNeg[i] = mfiValue(st), st.PosFlow, st.NegFlow
	}
	return nil
}

// MFIInc advances MFI by one money flow (see MoneyFlow). oldestFlow is the
// flow of the bar period bars back, which leaves the window.
func MFIInc[T core.Float](flow, oldestFlow T, prev MFIState[T], period int) (T, MFIState[T], error) {
	if err := core.CheckPeriod("MFI period", period, 2); err != nil {
		return 0, MFIState[T]{}, err
	}
	st := mfiStep(flow, oldestFlow, prev)
	return mfiValue(st), st, nil
}
