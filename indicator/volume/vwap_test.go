package volume

import (
	"testing"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVWAP_Calculation(t *testing.T) {
	high := []float64{10, 11, 12}
	low := []float64{8, 9, 10}
	close := []float64{9, 10, 11}
	vol := []float64{2, 1, 0}
	out, pv, cv := make([]float64, 3), make([]float64, 3), make([]float64, 3)
	require.NoError(t, VWAP(high, low, close, vol, out, pv, cv))

	assert.InDelta(t, 9.0, out[0], 1e-12)
	// ((9*2) + (10*1)) / (2+1)
	assert.InDelta(t, 28.0/3, out[1], 1e-12)
	assert.InDelta(t, 28.0/3, out[2], 1e-12)
	assert.Equal(t, 3.0, cv[2])
	assert.Equal(t, 28.0, pv[2])
}

func TestVWAP_NoVolumeUsesTypicalPrice(t *testing.T) {
	v, st, err := VWAPInc(12.0, 9.0, 9.0, 0.0, VWAPState[float64]{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
	assert.Equal(t, VWAPState[float64]{}, st)
}

func TestVWAP_BatchIncrementalEquivalence(t *testing.T) {
	n := 50
	high, low, close, vol := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		p := 100 + float64(i%7) - float64(i%3)
		high[i], low[i], close[i] = p+1, p-1, p+0.25
		vol[i] = float64(1 + i%5)
	}
	out, pv, cv := make([]float64, n), make([]float64, n), make([]float64, n)
	require.NoError(t, VWAP(high, low, close, vol, out, pv, cv))

	st := VWAPState[float64]{CumPV: pv[0], CumVol: cv[0]}
	for i := 1; i < n; i++ {
		v, next, err := VWAPInc(high[i], low[i], close[i], vol[i], st)
		require.NoError(t, err)
		assert.Equal(t, out[i], v)
		st = next
	}
}

func TestVWAP_InvalidInput(t *testing.T) {
	out := []float64{5, 5}
	err := VWAP([]float64{10, 10}, []float64{9, 9}, []float64{9.5, 9.5}, []float64{1, -1}, out, make([]float64, 2), make([]float64, 2))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Equal(t, []float64{5, 5}, out)

	err = VWAP([]float64{}, []float64{}, []float64{}, []float64{}, []float64{}, []float64{}, []float64{})
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, _, err = VWAPInc(10.0, 9.0, 9.5, -1.0, VWAPState[float64]{})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}
