// Package price holds indicators that combine the high, low and close of a
// bar (or a window of bars) into a single representative price.
package price

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// MidpriceState is the trailing extrema carried between MidpriceInc calls.
type MidpriceState[T core.Float] struct {
	Highest T
	Lowest  T
}

// MidpriceLookback returns the warm-up length of MIDPRICE.
func MidpriceLookback(period int) (int, error) {
	if err := core.CheckPeriod("MIDPRICE period", period, 2); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// Midprice computes (highest high + lowest low) / 2 over the trailing period
// bars. The extrema are rescanned over the full window at every index and
// written to outHighest/outLowest.
func Midprice[T core.Float](high, low []T, period int, outMid, outHighest, outLowest []T) error {
	lookback, err := MidpriceLookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{high, low}, [][]T{outMid, outHighest, outLowest}, period); err != nil {
		return fmt.Errorf("MIDPRICE: %w", err)
	}

	core.FillNaN(lookback, outMid, outHighest, outLowest)
	for i := lookback; i < len(high); i++ {
		st := scanWindow(high[i-lookback:i+1], low[i-lookback:i+1])
		outMid[i] = (st.Highest + st.Lowest) / 2
		outHighest[i] = st.Highest
		outLowest[i] = st.Lowest
	}
	return nil
}

func scanWindow[T core.Float](high, low []T) MidpriceState[T] {
	return MidpriceState[T]{Highest: core.Highest(high), Lowest: core.Lowest(low)}
}

// MidpriceInc advances MIDPRICE by one bar from the previous extrema.
//
// This is an approximation: the extrema only ever widen, since the bar leaving
// the window is not known. Results match the batch path only while the bar
// that drops out was not the window's extremum. Use MidpriceIncExact when the
// trailing window is at hand.
func MidpriceInc[T core.Float](high, low T, prev MidpriceState[T], period int) (T, MidpriceState[T], error) {
	if err := core.CheckPeriod("MIDPRICE period", period, 2); err != nil {
		return 0, MidpriceState[T]{}, err
	}
	var st MidpriceState[T]
	st.Highest, st.Lowest = core.ExtremaStep(high, low, prev.Highest, prev.Lowest)
	return (st.Highest + st.Lowest) / 2, st, nil
}

// MidpriceIncExact computes MIDPRICE for the newest bar from its full trailing
// window (period bars ending at the newest one). It reproduces the batch
// output exactly.
func MidpriceIncExact[T core.Float](highWindow, lowWindow []T, period int) (T, MidpriceState[T], error) {
	if err := core.CheckPeriod("MIDPRICE period", period, 2); err != nil {
		return 0, MidpriceState[T]{}, err
	}
	if err := core.CheckWindow(len(highWindow), period); err != nil {
		return 0, MidpriceState[T]{}, fmt.Errorf("MIDPRICE high window: %w", err)
	}
	if err := core.CheckWindow(len(lowWindow), period); err != nil {
		return 0, MidpriceState[T]{}, fmt.Errorf("MIDPRICE low window: %w", err)
	}
	st := scanWindow(highWindow, lowWindow)
	return (st.Highest + st.Lowest) / 2, st, nil
}
