// Package pattern recognises candlestick patterns and reports them as
// core.Signal codes.
package pattern

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

const (
	DefaultLongShadowPeriod = 14
	DefaultLongShadowFactor = 0.5
)

func checkLongShadow(period int, factor float64) error {
	if err := core.CheckPeriod("CDL_LONG_SHADOW period", period, 2); err != nil {
		return err
	}
	return core.CheckRange("CDL_LONG_SHADOW factor", factor, 0, 1)
}

// LongShadowLookback returns the warm-up length of CDL_LONG_SHADOW: the body
// average is seeded from the first period bars and the first classified bar
// is the one after them.
func LongShadowLookback(period int, factor float64) (int, error) {
	if err := checkLongShadow(period, factor); err != nil {
		return 0, err
	}
	return period, nil
}

func body[T core.Float](open, close T) T { return core.Abs(close - open) }

// classifyLongShadow reports a bar whose lower (upper) shadow covers at least
// factor of its range while the opposite shadow does not, and whose body is no
// larger than the average body so far.
func classifyLongShadow[T core.Float](open, high, low, close, bodyAvg, factor T) core.Signal {
	rng := high - low
	if rng <= 0 || body(open, close) > bodyAvg {
		return core.SignalNeutral
	}
	top, bottom := open, close
	if close > open {
		top, bottom = close, open
	}
	upper := high - top
	lower := bottom - low
	limit := factor * rng
	switch {
	case lower >= limit && upper < limit:
		return core.SignalBullish
	case upper >= limit && lower < limit:
		return core.SignalBearish
	default:
		return core.SignalNeutral
	}
}

// CDLLongShadow scans for long-shadow candles. Bars before the lookback are
// reported as SignalInvalid and their body average as NaN. Each bar is
// classified against the body average of the bars before it, and the average
// is then updated with Wilder's smoothing.
func CDLLongShadow[T core.Float](open, high, low, close []T, period int, factor float64, outSignals []core.Signal, outBodyAvg []T) error {
	lookback, err := LongShadowLookback(period, factor)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{open, high, low, close}, [][]T{outBodyAvg}, period); err != nil {
		return fmt.Errorf("CDL_LONG_SHADOW: %w", err)
	}
	if err := core.CheckSameLength(len(open), outSignals); err != nil {
		return fmt.Errorf("CDL_LONG_SHADOW signals: %w", err)
	}

	core.FillNaN(lookback, outBodyAvg)
	for i := 0; i < lookback; i++ {
		outSignals[i] = core.SignalInvalid
	}
	var sum T
	for i := 0; i < period; i++ {
		sum += body(open[i], close[i])
	}
	avg := sum / T(period)
	for i := lookback; i < len(open); i++ {
		outSignals[i], avg = longShadowStep(open[i], high[i], low[i], close[i], avg, T(factor), period)
		outBodyAvg[i] = avg
	}
	return nil
}

func longShadowStep[T core.Float](open, high, low, close, prevBodyAvg, factor T, period int) (core.Signal, T) {
	sig := classifyLongShadow(open, high, low, close, prevBodyAvg, factor)
	return sig, core.RMAStep(prevBodyAvg, body(open, close), period)
}

// CDLLongShadowInc classifies one bar and returns the updated body average.
func CDLLongShadowInc[T core.Float](open, high, low, close, prevBodyAvg T, period int, factor float64) (core.Signal, T, error) {
	if err := checkLongShadow(period, factor); err != nil {
		return core.SignalInvalid, 0, err
	}
	sig, avg := longShadowStep(open, high, low, close, prevBodyAvg, T(factor), period)
	return sig, avg, nil
}
