package momentum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func approxEqual(a, b float64) bool {
	const eps = 1e-6
	return math.Abs(a-b) <= eps
}

// randomBars returns a deterministic random-walk OHLC series.
func randomBars(n int) (high, low, close []float64) {
	r := rand.New(rand.NewSource(7))
	high, low, close = make([]float64, n), make([]float64, n), make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price += r.Float64()*4 - 2
		spread := 0.5 + r.Float64()*2
		high[i] = price + spread*r.Float64()
		low[i] = price - spread*r.Float64()
		close[i] = low[i] + (high[i]-low[i])*r.Float64()
	}
	return high, low, close
}

func nanF() float64 { return math.NaN() }

func closes(n int) []float64 {
	_, _, c := randomBars(n)
	return c
}

func filled(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func buffers(count, n int) [][]float64 {
	out := make([][]float64, count)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}

func assertWarmup(t *testing.T, out []float64, lookback int) {
	t.Helper()
	for i := 0; i < lookback; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d should be NaN", i)
	}
	for i := lookback; i < len(out); i++ {
		assert.False(t, math.IsNaN(out[i]), "index %d should be defined", i)
	}
}
