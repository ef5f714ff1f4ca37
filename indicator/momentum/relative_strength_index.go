package momentum

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

const (
	DefaultRSIPeriod     = 14
	DefaultRSIOverbought = 70
	DefaultRSIOversold   = 30
)

// RSIState holds Wilder's smoothed average gain and loss.
type RSIState[T core.Float] struct {
	AvgGain T
	AvgLoss T
}

// RSILookback returns the warm-up length of RSI: period price changes are
// needed, so the first value lands on index period.
func RSILookback(period int) (int, error) {
	if err := core.CheckPeriod("RSI period", period, 2); err != nil {
		return 0, err
	}
	return period, nil
}

func gainLoss[T core.Float](price, prevPrice T) (gain, loss T) {
	diff := price - prevPrice
	if diff > 0 {
		gain = diff
	} else if diff < 0 {
		loss = -diff
	}
	return gain, loss
}

// rsiValue follows J. Wilder's edge cases: no movement is neutral (50), pure
// upward movement 100, pure downward movement 0.
func rsiValue[T core.Float](st RSIState[T]) T {
	if st.AvgLoss == 0 {
		if st.AvgGain == 0 {
			return 50
		}
		return 100
	}
	if st.AvgGain == 0 {
		return 0
	}
	rs := st.AvgGain / st.AvgLoss
	return core.Clamp(100-100/(1+rs), 0, 100)
}

// RSI computes the Relative Strength Index of input. The averages are seeded
// with the simple mean of the first period gains/losses and then smoothed
// with Wilder's average (RMA); they are written alongside the index so
// RSIInc can continue from any defined bar.
func RSI[T core.Float](input []T, period int, outRSI, outAvgGain, outAvgLoss []T) error {
	lookback, err := RSILookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{outRSI, outAvgGain, outAvgLoss}, period); err != nil {
		return fmt.Errorf("RSI: %w", err)
	}

	core.FillNaN(lookback, outRSI, outAvgGain, outAvgLoss)
	var gainSum, lossSum T
	for i := 1; i <= period; i++ {
		g, l := gainLoss(input[i], input[i-1])
		gainSum += g
		lossSum += l
	}
	st := RSIState[T]{AvgGain: gainSum / T(period), AvgLoss: lossSum / T(period)}
	outRSI[lookback], outAvgGain[lookback], outAvgLoss[lookback] = rsiValue(st), st.AvgGain, st.AvgLoss

	for i := lookback + 1; i < len(input); i++ {
		st = rsiStep(input[i], input[i-1], st, period)
		outRSI[i], outAvgGain[i], outAvgLoss[i] = rsiValue(st), st.AvgGain, st.AvgLoss
	}
	return nil
}

func rsiStep[T core.Float](price, prevPrice T, prev RSIState[T], period int) RSIState[T] {
	g, l := gainLoss(price, prevPrice)
	return RSIState[T]{
		AvgGain: core.RMAStep(prev.AvgGain, g, period),
		AvgLoss: core.RMAStep(prev.AvgLoss, l, period),
	}
}

// RSIInc advances RSI by one price.
func RSIInc[T core.Float](price, prevPrice T, prev RSIState[T], period int) (T, RSIState[T], error) {
	if err := core.CheckPeriod("RSI period", period, 2); err != nil {
		return 0, RSIState[T]{}, err
	}
	st := rsiStep(price, prevPrice, prev, period)
	return rsiValue(st), st, nil
}

// RSICrossover classifies a move from prev to curr: crossing up through the
// oversold line is bullish, crossing down through the overbought line is
// bearish, anything else neutral. Undefined inputs yield SignalInvalid.
func RSICrossover[T core.Float](prev, curr, overbought, oversold T) core.Signal {
	if core.IsNaN(prev) || core.IsNaN(curr) {
		return core.SignalInvalid
	}
	switch {
	case prev <= oversold && curr > oversold:
		return core.SignalBullish
	case prev >= overbought && curr < overbought:
		return core.SignalBearish
	default:
		return core.SignalNeutral
	}
}
