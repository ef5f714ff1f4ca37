package momentum

import (
	"math"
	"testing"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSI_KnownValues(t *testing.T) {
	in := []float64{1, 2, 3, 2, 1}
	b := buffers(3, len(in))
	require.NoError(t, RSI(in, 2, b[0], b[1], b[2]))

	assertWarmup(t, b[0], 2)
	assert.True(t, approxEqual(100, b[0][2]))
	assert.True(t, approxEqual(50, b[0][3]))
	assert.True(t, approxEqual(25, b[0][4]))
	assert.True(t, approxEqual(0.25, b[1][4]))
	assert.True(t, approxEqual(0.75, b[2][4]))
}

func TestRSI_EdgeCases(t *testing.T) {
	t.Run("flat is neutral", func(t *testing.T) {
		in := filled(10, 4)
		b := buffers(3, len(in))
		require.NoError(t, RSI(in, 3, b[0], b[1], b[2]))
		for i := 3; i < len(in); i++ {
			assert.Equal(t, 50.0, b[0][i])
		}
	})
	t.Run("falling only is zero", func(t *testing.T) {
		in := []float64{9, 8, 7, 6, 5, 4}
		b := buffers(3, len(in))
		require.NoError(t, RSI(in, 3, b[0], b[1], b[2]))
		for i := 3; i < len(in); i++ {
			assert.Equal(t, 0.0, b[0][i])
		}
	})
}

func TestRSI_Bounded(t *testing.T) {
	in := closes(400)
	b := buffers(3, len(in))
	require.NoError(t, RSI(in, DefaultRSIPeriod, b[0], b[1], b[2]))
	for i := DefaultRSIPeriod; i < len(in); i++ {
		assert.False(t, math.IsNaN(b[0][i]))
		assert.GreaterOrEqual(t, b[0][i], 0.0)
		assert.LessOrEqual(t, b[0][i], 100.0)
	}
}

func TestRSI_BatchIncrementalEquivalence(t *testing.T) {
	in := closes(200)
	b := buffers(3, len(in))
	require.NoError(t, RSI(in, DefaultRSIPeriod, b[0], b[1], b[2]))

	st := RSIState[float64]{AvgGain: b[1][DefaultRSIPeriod], AvgLoss: b[2][DefaultRSIPeriod]}
	for i := DefaultRSIPeriod + 1; i < len(in); i++ {
		v, next, err := RSIInc(in[i], in[i-1], st, DefaultRSIPeriod)
		require.NoError(t, err)
		assert.Equal(t, b[0][i], v)
		st = next
	}
}

func TestRSI_Validation(t *testing.T) {
	in := closes(10)
	outs := [][]float64{filled(10, 42), filled(10, 42), filled(10, 42)}
	err := RSI(in, 10, outs[0], outs[1], outs[2])
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	err = RSI(in, 1, outs[0], outs[1], outs[2])
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	for _, out := range outs {
		assert.Equal(t, filled(10, 42), out)
	}

	_, st, err := RSIInc(1.0, 2.0, RSIState[float64]{AvgGain: 1}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	assert.Equal(t, RSIState[float64]{}, st)
}

func TestRSICrossover(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name       string
		prev, curr float64
		want       core.Signal
	}{
		{"leaves oversold", 25, 35, core.SignalBullish},
		{"leaves overbought", 75, 65, core.SignalBearish},
		{"stays mid", 45, 55, core.SignalNeutral},
		{"enters oversold", 35, 25, core.SignalNeutral},
		{"undefined", nan, 40, core.SignalInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RSICrossover(tc.prev, tc.curr, DefaultRSIOverbought, DefaultRSIOversold))
		})
	}
}
