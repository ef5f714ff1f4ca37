package overlap

import (
	"math"
	"testing"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_KnownValues(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := make([]float64, len(in))
	require.NoError(t, SMA(in, 3, out))

	assertWarmup(t, out, 2)
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestEMA_KnownValues(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := make([]float64, len(in))
	require.NoError(t, EMA(in, 3, out))

	assertWarmup(t, out, 2)
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestRMA_KnownValues(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := make([]float64, len(in))
	require.NoError(t, RMA(in, 3, out))

	assertWarmup(t, out, 2)
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 8.0/3, out[3], 1e-12)
	assert.InDelta(t, 31.0/9, out[4], 1e-12)
}

func TestWMA_KnownValues(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := make([]float64, len(in))
	require.NoError(t, WMA(in, 3, out))

	assertWarmup(t, out, 2)
	assert.InDelta(t, 14.0/6, out[2], 1e-12)
	assert.InDelta(t, 20.0/6, out[3], 1e-12)
	assert.InDelta(t, 26.0/6, out[4], 1e-12)
}

func TestDEMA_TEMA_ConstantSeries(t *testing.T) {
	in := filled(20, 7)
	n := len(in)

	dema, e1, e2 := make([]float64, n), make([]float64, n), make([]float64, n)
	require.NoError(t, DEMA(in, 4, dema, e1, e2))
	assertWarmup(t, dema, 6)
	assertWarmup(t, e1, 6)
	for i := 6; i < n; i++ {
		assert.InDelta(t, 7.0, dema[i], 1e-12)
	}

	tema, t1, t2, t3 := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	require.NoError(t, TEMA(in, 4, tema, t1, t2, t3))
	assertWarmup(t, tema, 9)
	assertWarmup(t, t3, 9)
	for i := 9; i < n; i++ {
		assert.InDelta(t, 7.0, tema[i], 1e-12)
	}
}

func TestMovingAverages_BatchIncrementalEquivalence(t *testing.T) {
	in := nrandVals(200)
	n := len(in)
	const period = 10

	t.Run("SMA", func(t *testing.T) {
		out := make([]float64, n)
		require.NoError(t, SMA(in, period, out))
		prev := out[period-1]
		for i := period; i < n; i++ {
			v, err := SMAInc(prev, in[i], in[i-period], period)
			require.NoError(t, err)
			assert.InDelta(t, out[i], v, 1e-9)
			prev = v
		}
	})

	t.Run("EMA", func(t *testing.T) {
		out := make([]float64, n)
		require.NoError(t, EMA(in, period, out))
		prev := out[period-1]
		for i := period; i < n; i++ {
			v, err := EMAInc(in[i], prev, period)
			require.NoError(t, err)
			assert.Equal(t, out[i], v)
			prev = v
		}
	})

	t.Run("RMA", func(t *testing.T) {
		out := make([]float64, n)
		require.NoError(t, RMA(in, period, out))
		prev := out[period-1]
		for i := period; i < n; i++ {
			v, err := RMAInc(in[i], prev, period)
			require.NoError(t, err)
			assert.Equal(t, out[i], v)
			prev = v
		}
	})

	t.Run("WMA", func(t *testing.T) {
		out := make([]float64, n)
		require.NoError(t, WMA(in, period, out))
		st, err := WMASeed(in[:period], period)
		require.NoError(t, err)
		for i := period; i < n; i++ {
			v, next, err := WMAInc(in[i], in[i-period], st, period)
			require.NoError(t, err)
			assert.Equal(t, out[i], v)
			st = next
		}
	})

	t.Run("DEMA", func(t *testing.T) {
		out, e1, e2 := make([]float64, n), make([]float64, n), make([]float64, n)
		require.NoError(t, DEMA(in, period, out, e1, e2))
		lookback, _ := DEMALookback(period)
		st := DEMAState[float64]{EMA1: e1[lookback], EMA2: e2[lookback]}
		for i := lookback + 1; i < n; i++ {
			v, next, err := DEMAInc(in[i], st, period)
			require.NoError(t, err)
			assert.Equal(t, out[i], v)
			assert.Equal(t, e1[i], next.EMA1)
			st = next
		}
	})

	t.Run("TEMA", func(t *testing.T) {
		out, e1, e2, e3 := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
		require.NoError(t, TEMA(in, period, out, e1, e2, e3))
		lookback, _ := TEMALookback(period)
		st := TEMAState[float64]{EMA1: e1[lookback], EMA2: e2[lookback], EMA3: e3[lookback]}
		for i := lookback + 1; i < n; i++ {
			v, next, err := TEMAInc(in[i], st, period)
			require.NoError(t, err)
			assert.Equal(t, out[i], v)
			st = next
		}
	})
}

func TestMovingAverages_ValidationLeavesOutputUntouched(t *testing.T) {
	in := nrandVals(10)
	cases := []struct {
		name string
		call func(out []float64) error
		want error
	}{
		{"SMA zero period", func(out []float64) error { return SMA(in, 0, out) }, core.ErrInvalidPeriod},
		{"EMA period one", func(out []float64) error { return EMA(in, 1, out) }, core.ErrInvalidPeriod},
		{"RMA too short", func(out []float64) error { return RMA(in, 11, out) }, core.ErrInsufficientData},
		{"WMA period exceeds length", func(out []float64) error { return WMA(in, 11, out) }, core.ErrInsufficientData},
		{"SMA period equals length", func(out []float64) error { return SMA(in, 10, out) }, core.ErrInsufficientData},
		{"EMA period equals length", func(out []float64) error { return EMA(in, 10, out) }, core.ErrInsufficientData},
		{"RMA period equals length", func(out []float64) error { return RMA(in, 10, out) }, core.ErrInsufficientData},
		{"WMA period equals length", func(out []float64) error { return WMA(in, 10, out) }, core.ErrInsufficientData},
		{"MA period equals length", func(out []float64) error { return MA(in, 10, core.MATypeSMA, out) }, core.ErrInsufficientData},
		{"SMA short output", func(out []float64) error { return SMA(in, 3, out[:9]) }, core.ErrLengthMismatch},
		{"DEMA too short", func(out []float64) error {
			return DEMA(in, 6, out, make([]float64, 10), make([]float64, 10))
		}, core.ErrInsufficientData},
		{"MA unsupported", func(out []float64) error { return MA(in, 3, core.MATypeKAMA, out) }, core.ErrInvalidParameter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filled(10, 42)
			err := tc.call(out)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, filled(10, 42), out)
		})
	}
}

func TestIncrementalRejectsBadPeriod(t *testing.T) {
	_, err := SMAInc(1.0, 2.0, 3.0, 0)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	_, err = EMAInc(1.0, 2.0, 1)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	_, err = RMAInc(1.0, 2.0, -4)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	v, st, err := WMAInc(1.0, 2.0, WMAState[float64]{Sum: 9, WeightedSum: 9}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	assert.Zero(t, v)
	assert.Equal(t, WMAState[float64]{}, st)
	_, err = WMASeed([]float64{1, 2}, 3)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestMA_Dispatch(t *testing.T) {
	in := nrandVals(60)
	n := len(in)
	for _, mt := range []core.MAType{core.MATypeSMA, core.MATypeEMA, core.MATypeRMA, core.MATypeWMA, core.MATypeDEMA, core.MATypeTEMA} {
		t.Run(mt.String(), func(t *testing.T) {
			got := make([]float64, n)
			require.NoError(t, MA(in, 5, mt, got))

			want := make([]float64, n)
			switch mt {
			case core.MATypeSMA:
				require.NoError(t, SMA(in, 5, want))
			case core.MATypeEMA:
				require.NoError(t, EMA(in, 5, want))
			case core.MATypeRMA:
				require.NoError(t, RMA(in, 5, want))
			case core.MATypeWMA:
				require.NoError(t, WMA(in, 5, want))
			case core.MATypeDEMA:
				require.NoError(t, DEMA(in, 5, want, make([]float64, n), make([]float64, n)))
			case core.MATypeTEMA:
				require.NoError(t, TEMA(in, 5, want, make([]float64, n), make([]float64, n), make([]float64, n)))
			}
			lookback, err := MALookback(5, mt)
			require.NoError(t, err)
			assertWarmup(t, got, lookback)
			assert.Equal(t, want[lookback:], got[lookback:])
		})
	}

	_, err := MALookback(5, core.MAType(42))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestEMA_Float32(t *testing.T) {
	in := []float32{1, 2, 3, 4, 5}
	out := make([]float32, len(in))
	require.NoError(t, EMA(in, 3, out))
	assert.True(t, math.IsNaN(float64(out[0])))
	assert.Equal(t, float32(4), out[4])

	v, err := EMAInc(float32(6), out[4], 3)
	require.NoError(t, err)
	assert.Equal(t, float32(5), v)
}
