package pattern

import (
	"math"
	"math/rand"
	"testing"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLongShadow(t *testing.T) {
	cases := []struct {
		name                   string
		open, high, low, close float64
		want                   core.Signal
	}{
		{"hammer", 9.6, 10, 6, 9.8, core.SignalBullish},
		{"shooting star", 6.4, 10, 6, 6.2, core.SignalBearish},
		{"doji both shadows", 8, 10, 6, 8, core.SignalNeutral},
		{"no range", 5, 5, 5, 5, core.SignalNeutral},
		{"body too large", 6, 10, 5.5, 10, core.SignalNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyLongShadow(tc.open, tc.high, tc.low, tc.close, 1.0, 0.5)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCDLLongShadow_Series(t *testing.T) {
	open := []float64{10, 10, 10, 9.6, 6.4}
	high := []float64{11, 11, 11, 10, 10}
	low := []float64{9, 9, 9, 6, 6}
	close := []float64{11, 9, 11, 9.8, 6.2}
	sig := make([]core.Signal, 5)
	avg := make([]float64, 5)
	require.NoError(t, CDLLongShadow(open, high, low, close, 3, 0.5, sig, avg))

	assert.Equal(t, []core.Signal{core.SignalInvalid, core.SignalInvalid, core.SignalInvalid, core.SignalBullish, core.SignalBearish}, sig)
	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(avg[i]))
	}
	// seed 1, then (1*2 + 0.2)/3
	assert.InDelta(t, 2.2/3, avg[3], 1e-12)
}

func TestCDLLongShadow_BatchIncrementalEquivalence(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	n := 300
	open, high, low, close := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		open[i] = 100 + r.Float64()*4
		close[i] = 100 + r.Float64()*4
		high[i] = math.Max(open[i], close[i]) + r.Float64()*3
		low[i] = math.Min(open[i], close[i]) - r.Float64()*3
	}
	sig := make([]core.Signal, n)
	avg := make([]float64, n)
	require.NoError(t, CDLLongShadow(open, high, low, close, DefaultLongShadowPeriod, DefaultLongShadowFactor, sig, avg))

	prev := avg[DefaultLongShadowPeriod]
	for i := DefaultLongShadowPeriod + 1; i < n; i++ {
		s, next, err := CDLLongShadowInc(open[i], high[i], low[i], close[i], prev, DefaultLongShadowPeriod, DefaultLongShadowFactor)
		require.NoError(t, err)
		assert.Equal(t, sig[i], s)
		assert.Equal(t, avg[i], next)
		prev = next
	}
}

func TestCDLLongShadow_Validation(t *testing.T) {
	bar := []float64{1, 2, 3, 4}
	sig := []core.Signal{7, 7, 7, 7}
	avg := []float64{7, 7, 7, 7}

	for _, factor := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		err := CDLLongShadow(bar, bar, bar, bar, 2, factor, sig, avg)
		assert.ErrorIs(t, err, core.ErrInvalidParameter)
	}
	assert.ErrorIs(t, CDLLongShadow(bar, bar, bar, bar, 1, 0.5, sig, avg), core.ErrInvalidPeriod)
	assert.ErrorIs(t, CDLLongShadow(bar, bar, bar, bar, 4, 0.5, sig, avg), core.ErrInsufficientData)
	assert.ErrorIs(t, CDLLongShadow(bar, bar, bar, bar, 2, 0.5, sig[:3], avg), core.ErrLengthMismatch)
	assert.Equal(t, []core.Signal{7, 7, 7, 7}, sig)
	assert.Equal(t, []float64{7, 7, 7, 7}, avg)

	s, v, err := CDLLongShadowInc(1.0, 2.0, 0.5, 1.5, 1.0, 3, 2)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Equal(t, core.SignalInvalid, s)
	assert.Zero(t, v)
}
