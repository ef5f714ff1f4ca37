// Package volume holds indicators weighted by traded volume.
package volume

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// VWAPState is the cumulative price*volume and volume since the session start.
type VWAPState[T core.Float] struct {
	CumPV  T
	CumVol T
}

// VWAPLookback is zero: every bar has a defined VWAP.
func VWAPLookback() int { return 0 }

func checkVolume[T core.Float](v T) error {
	if v < 0 || core.IsNaN(v) {
		return fmt.Errorf("%w: volume must be non-negative, got %g", core.ErrInvalidParameter, float64(v))
	}
	return nil
}

func vwapStep[T core.Float](high, low, close, volume T, prev VWAPState[T]) (T, VWAPState[T]) {
	typical := (high + low + close) / 3
	st := VWAPState[T]{CumPV: prev.CumPV + typical*volume, CumVol: prev.CumVol + volume}
	if st.CumVol == 0 {
		return typical, st
	}
	return st.CumPV / st.CumVol, st
}

// VWAP computes the cumulative Volume Weighted Average Price over the typical
// price (high+low+close)/3. While no volume has traded the typical price
// itself is reported. Negative volume is rejected before anything is written.
func VWAP[T core.Float](high, low, close, volume []T, outVWAP, outCumPV, outCumVol []T) error {
	err := core.ValidateSeries(0,
		[][]T{high, low, close, volume},
		[][]T{outVWAP, outCumPV, outCumVol})
	if err != nil {
		return fmt.Errorf("VWAP: %w", err)
	}
	for i, v := range volume {
		if err := checkVolume(v); err != nil {
			return fmt.Errorf("VWAP bar %d: %w", i, err)
		}
	}

	var st VWAPState[T]
	for i := range high {
		outVWAP[i], st = vwapStep(high[i], low[i], close[i], volume[i], st)
		outCumPV[i], outCumVol[i] = st.CumPV, st.CumVol
	}
	return nil
}

// VWAPInc adds one bar to the running VWAP.
func VWAPInc[T core.Float](high, low, close, volume T, prev VWAPState[T]) (T, VWAPState[T], error) {
	if err := checkVolume(volume); err != nil {
		return 0, VWAPState[T]{}, err
	}
	v, st := vwapStep(high, low, close, volume, prev)
	return v, st, nil
}
