package momentum

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/indicator/overlap"
)

const (
	DefaultMACDFastPeriod   = 12
	DefaultMACDSlowPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

// MACDState is the set of EMAs carried between MACD steps.
type MACDState[T core.Float] struct {
	FastEMA T
	SlowEMA T
	Signal  T
}

// MACDValue is one MACD sample: the line (fast - slow), the signal line (EMA
// of the line) and the histogram (line - signal).
type MACDValue[T core.Float] struct {
	MACD      T
	Signal    T
	Histogram T
}

func checkMACDPeriods(fastPeriod, slowPeriod, signalPeriod int) error {
	if err := core.CheckPeriod("MACD fast period", fastPeriod, 2); err != nil {
		return err
	}
	if err := core.CheckPeriod("MACD slow period", slowPeriod, 2); err != nil {
		return err
	}
	if err := core.CheckPeriod("MACD signal period", signalPeriod, 2); err != nil {
		return err
	}
	return core.CheckPeriodOrder(fastPeriod, slowPeriod)
}

// MACDLookback returns the warm-up length of MACD: the slow EMA warm-up plus
// the signal EMA warm-up over the MACD line, slow+signal-2.
func MACDLookback(fastPeriod, slowPeriod, signalPeriod int) (int, error) {
	if err := checkMACDPeriods(fastPeriod, slowPeriod, signalPeriod); err != nil {
		return 0, err
	}
	return slowPeriod + signalPeriod - 2, nil
}

// MACD computes the Moving Average Convergence/Divergence of input.
//
// Both EMAs are seeded with their SMA and run over the whole input; the MACD
// line starts where the slow EMA does and the signal EMA is seeded with the
// SMA of the first signalPeriod MACD values. All five outputs are undefined
// before the lookback. The fast and slow EMA series are exposed because they,
// together with the signal line, are the state MACDInc continues from.
func MACD[T core.Float](input []T, fastPeriod, slowPeriod, signalPeriod int, outMACD, outSignal, outHist, outFastEMA, outSlowEMA []T) error {
	lookback, err := MACDLookback(fastPeriod, slowPeriod, signalPeriod)
	if err != nil {
		return err
	}
	err = core.ValidateSeries(lookback,
		[][]T{input},
		[][]T{outMACD, outSignal, outHist, outFastEMA, outSlowEMA},
		fastPeriod, slowPeriod, signalPeriod)
	if err != nil {
		return fmt.Errorf("MACD: %w", err)
	}

	overlap.EMAFrom(input, fastPeriod, fastPeriod-1, outFastEMA)
	overlap.EMAFrom(input, slowPeriod, slowPeriod-1, outSlowEMA)
	for i := slowPeriod - 1; i < len(input); i++ {
		outMACD[i] = outFastEMA[i] - outSlowEMA[i]
	}
	overlap.EMAFrom(outMACD, signalPeriod, lookback, outSignal)
	for i := lookback; i < len(input); i++ {
		outHist[i] = outMACD[i] - outSignal[i]
	}
	core.FillNaN(lookback, outMACD, outSignal, outHist, outFastEMA, outSlowEMA)
	return nil
}

// MACDInc advances MACD by one price. Seed prev from the batch outputs at any
// index at or after the lookback.
func MACDInc[T core.Float](price T, prev MACDState[T], fastPeriod, slowPeriod, signalPeriod int) (MACDValue[T], MACDState[T], error) {
	if err := checkMACDPeriods(fastPeriod, slowPeriod, signalPeriod); err != nil {
		return MACDValue[T]{}, MACDState[T]{}, err
	}
	st := MACDState[T]{
		FastEMA: core.EMAStep(price, prev.FastEMA, core.EMAAlpha[T](fastPeriod)),
		SlowEMA: core.EMAStep(price, prev.SlowEMA, core.EMAAlpha[T](slowPeriod)),
	}
	line := st.FastEMA - st.SlowEMA
	st.Signal = core.EMAStep(line, prev.Signal, core.EMAAlpha[T](signalPeriod))
	return MACDValue[T]{MACD: line, Signal: st.Signal, Histogram: line - st.Signal}, st, nil
}
