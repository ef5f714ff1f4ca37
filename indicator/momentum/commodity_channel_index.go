package momentum

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

const (
	DefaultCCIPeriod     = 20
	DefaultCCIOverbought = 100.0
	DefaultCCIOversold   = -100.0
	cciConstant          = 0.015
)

// CCILookback returns the warm-up length of CCI.
func CCILookback(period int) (int, error) {
	if err := core.CheckPeriod("CCI period", period, 2); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// TypicalPrice is (high+low+close)/3.
func TypicalPrice[T core.Float](high, low, close T) T {
	return (high + low + close) / 3
}

// cciWindow computes CCI for the newest element of a typical-price window.
// A window without deviation yields 0.
func cciWindow[T core.Float](tp []T) T {
	mean := core.Mean(tp)
	var dev T
	for _, v := range tp {
		dev += core.Abs(v - mean)
	}
	dev /= T(len(tp))
	if dev == 0 {
		return 0
	}
	return (tp[len(tp)-1] - mean) / (cciConstant * dev)
}

// CCI computes Lambert's Commodity Channel Index: the distance of the typical
// price from its period mean, in units of 0.015 mean absolute deviations.
func CCI[T core.Float](high, low, close []T, period int, out []T) error {
	lookback, err := CCILookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{high, low, close}, [][]T{out}, period); err != nil {
		return fmt.Errorf("CCI: %w", err)
	}

	tp := make([]T, len(high))
	for i := range high {
		tp[i] = TypicalPrice(high[i], low[i], close[i])
	}
	core.FillNaN(lookback, out)
	for i := lookback; i < len(tp); i++ {
		out[i] = cciWindow(tp[i-lookback : i+1])
	}
	return nil
}

// CCIInc computes CCI for the newest bar from its trailing window of period
// bars (oldest first). The mean deviation has no running form, so the window
// is required.
func CCIInc[T core.Float](high, low, close []T, period int) (T, error) {
	if err := core.CheckPeriod("CCI period", period, 2); err != nil {
		return 0, err
	}
	for _, w := range [][]T{high, low, close} {
		if err := core.CheckWindow(len(w), period); err != nil {
			return 0, fmt.Errorf("CCI window: %w", err)
		}
	}
	tp := make([]T, period)
	for i := range tp {
		tp[i] = TypicalPrice(high[i], low[i], close[i])
	}
	return cciWindow(tp), nil
}

// CCILevel reports whether a CCI value sits above overbought (bearish), below
// oversold (bullish) or in between (neutral).
func CCILevel[T core.Float](v, overbought, oversold T) core.Signal {
	switch {
	case core.IsNaN(v):
		return core.SignalInvalid
	case v > overbought:
		return core.SignalBearish
	case v < oversold:
		return core.SignalBullish
	default:
		return core.SignalNeutral
	}
}
