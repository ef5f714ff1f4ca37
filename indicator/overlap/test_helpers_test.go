package overlap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nrandVals(n int) []float64 {
	r := rand.New(rand.NewSource(42))
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 50 + r.Float64()*100
	}
	return vals
}

func filled(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
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
