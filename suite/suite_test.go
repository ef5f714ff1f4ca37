package suite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gokand/config"
	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/core"
)

func syntheticBars(n int) indicator.Bars {
	b := indicator.Bars{
		Open:   make([]core.TAFloat, n),
		High:   make([]core.TAFloat, n),
		Low:    make([]core.TAFloat, n),
		Close:  make([]core.TAFloat, n),
		Volume: make([]core.TAFloat, n),
	}
	for i := 0; i < n; i++ {
		c := 100 + 8*math.Sin(float64(i)/9)
		b.Open[i] = core.TAFloat(c - 0.4)
		b.Close[i] = core.TAFloat(c)
		b.High[i] = core.TAFloat(c + 1.5)
		b.Low[i] = core.TAFloat(c - 1.5)
		b.Volume[i] = core.TAFloat(1000 + 50*(i%10))
	}
	return b
}

func TestIndicatorSuite_DefaultRun(t *testing.T) {
	s, err := NewIndicatorSuite()
	require.NoError(t, err)

	bars := syntheticBars(120)
	res, err := s.Run(bars)
	require.NoError(t, err)
	assert.Equal(t, 120, res.Len())
	assert.Equal(t, 33, res.Lookback) // MACD 12/26/9

	names := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"dx.dx", "dx.plus_dm", "dx.minus_dm", "dx.tr",
		"macd.macd", "macd.signal", "macd.histogram", "macd.fast_ema", "macd.slow_ema",
		"midprice.midprice", "midprice.highest", "midprice.lowest",
		"wclprice.wclprice",
		"bbands.upper", "bbands.middle", "bbands.lower",
	}, names)

	wcl, ok := res.Column("wclprice.wclprice")
	require.True(t, ok)
	assert.Equal(t, 0, wcl.Lookback)
	want := (2*bars.Close[5] + bars.High[5] + bars.Low[5]) / 4
	assert.Equal(t, want, wcl.Values[5])

	_, ok = res.Column("nope")
	assert.False(t, ok)
}

func TestIndicatorSuite_RejectsInvalidConfigUpFront(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Indicators = append(cfg.Indicators, config.Job{Name: "MACD", Label: "bad", Params: indicator.Params{FastPeriod: 30, SlowPeriod: 10}})
	_, err := NewIndicatorSuiteWithConfig(&cfg)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
}

func TestIndicatorSuite_RunErrors(t *testing.T) {
	cfg := config.Config{Indicators: []config.Job{{Name: "WCLPRICE"}, {Name: "DX", Params: indicator.Params{Period: 50}}}}
	s, err := NewIndicatorSuiteWithConfig(&cfg)
	require.NoError(t, err)
	assert.Len(t, s.Jobs(), 2)

	_, err = s.Run(syntheticBars(20))
	assert.ErrorIs(t, err, core.ErrInsufficientData)
	assert.Contains(t, err.Error(), "dx")
}

func resultOf(cols ...Column) *Result {
	r := &Result{index: make(map[string]int)}
	for i, c := range cols {
		r.index[c.Name] = i
		r.Columns = append(r.Columns, c)
	}
	return r
}

func TestConsensus(t *testing.T) {
	nan := core.NaN[core.TAFloat]()
	rsi := Column{Name: "rsi.rsi", Indicator: "RSI", Output: "rsi", Values: []core.TAFloat{nan, 25, 35, 75, 65}}
	hist := Column{Name: "macd.histogram", Indicator: "MACD", Output: "histogram", Values: []core.TAFloat{nan, -1, 1, 1, -1}}
	shadow := Column{Name: "cdl.signal", Indicator: "CDL_LONG_SHADOW", Output: "signal", Values: []core.TAFloat{nan, nan, 0, 100, -100}}
	r := resultOf(rsi, hist, shadow)

	cases := []struct {
		bar  int
		want core.Signal
	}{
		{1, core.SignalInvalid}, // every voter still warming up at bar 0
		{2, core.SignalBullish}, // RSI + MACD
		{3, core.SignalNeutral}, // single long-shadow vote
		{4, core.SignalBearish}, // RSI + MACD + shadow
	}
	for _, tc := range cases {
		got, err := r.Consensus(tc.bar)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "bar %d", tc.bar)
	}

	_, err := r.Consensus(0)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = r.Consensus(5)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestConsensus_MFIVotes(t *testing.T) {
	nan := core.NaN[core.TAFloat]()
	rsi := Column{Name: "rsi.rsi", Indicator: "RSI", Output: "rsi", Values: []core.TAFloat{nan, 25, 35}}
	mfi := Column{Name: "mfi.mfi", Indicator: "MFI", Output: "mfi", Values: []core.TAFloat{nan, 15, 25}}
	got, err := resultOf(rsi, mfi).Consensus(2)
	require.NoError(t, err)
	assert.Equal(t, core.SignalBullish, got)

	mfi.Values = []core.TAFloat{nan, 85, 75}
	got, err = resultOf(rsi, mfi).Consensus(2)
	require.NoError(t, err)
	assert.Equal(t, core.SignalNeutral, got, "opposing votes cancel")
}

func TestConsensus_OnRealRun(t *testing.T) {
	cfg := config.Config{Indicators: []config.Job{
		{Name: "RSI", Params: indicator.Params{Period: 5}},
		{Name: "MACD", Params: indicator.Params{FastPeriod: 3, SlowPeriod: 8, SignalPeriod: 3}},
		{Name: "CDL_LONG_SHADOW"},
	}}
	s, err := NewIndicatorSuiteWithConfig(&cfg)
	require.NoError(t, err)
	res, err := s.Run(syntheticBars(200))
	require.NoError(t, err)

	for i := res.Lookback + 1; i < res.Len(); i++ {
		sig, err := res.Consensus(i)
		require.NoError(t, err)
		assert.Contains(t, []core.Signal{core.SignalBullish, core.SignalBearish, core.SignalNeutral}, sig)
	}
}
