package volatility

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// DefaultATRPeriod is Wilder's original period.
const DefaultATRPeriod = 14

// ATRLookback returns the warm-up length of ATR. The true range needs the
// previous close, so the first of period true ranges is at index 1 and the
// first ATR at index period.
func ATRLookback(period int) (int, error) {
	if err := core.CheckPeriod("ATR period", period, 2); err != nil {
		return 0, err
	}
	return period, nil
}

// ATR computes the Average True Range: the mean of the first period true
// ranges, then Wilder's moving average of every later one.
func ATR[T core.Float](high, low, close []T, period int, out []T) error {
	lookback, err := ATRLookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{high, low, close}, [][]T{out}, period); err != nil {
		return fmt.Errorf("ATR: %w", err)
	}

	core.FillNaN(lookback, out)
	var sum T
	for i := 1; i <= period; i++ {
		sum += core.TrueRange(high[i], low[i], close[i-1])
	}
	prev := sum / T(period)
	out[lookback] = prev
	for i := lookback + 1; i < len(high); i++ {
		prev = core.RMAStep(prev, core.TrueRange(high[i], low[i], close[i-1]), period)
		out[i] = prev
	}
	return nil
}

// ATRInc advances ATR by one bar; prevClose is the close of the bar before.
func ATRInc[T core.Float](high, low, prevClose, prevATR T, period int) (T, error) {
	if err := core.CheckPeriod("ATR period", period, 2); err != nil {
		return 0, err
	}
	return core.RMAStep(prevATR, core.TrueRange(high, low, prevClose), period), nil
}
