package indicator

import (
	"slices"
	"strings"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/indicator/momentum"
	"github.com/evdnx/gokand/indicator/overlap"
	"github.com/evdnx/gokand/indicator/pattern"
	"github.com/evdnx/gokand/indicator/price"
	"github.com/evdnx/gokand/indicator/statistic"
	"github.com/evdnx/gokand/indicator/trend"
	"github.com/evdnx/gokand/indicator/volatility"
	"github.com/evdnx/gokand/indicator/volume"
)

// num is the float width of the catalogue.
type num = core.TAFloat

var (
	hlc       = []string{ColHigh, ColLow, ColClose}
	hlcv      = []string{ColHigh, ColLow, ColClose, ColVolume}
	closeOnly = []string{ColClose}
)

func periodLookback(f func(int) (int, error)) func(Params) (int, error) {
	return func(p Params) (int, error) { return f(p.Period) }
}

func single(f func([]num, int, []num) error) computeFunc {
	return func(in [][]num, p Params, out [][]num) error {
		return f(in[0], p.Period, out[0])
	}
}

func linReg(f func([]num, int, []num, []num, []num) error) computeFunc {
	return func(in [][]num, p Params, out [][]num) error {
		return f(in[0], p.Period, out[0], out[1], out[2])
	}
}

func buildCatalogue() []Definition {
	defs := []Definition{
		{
			Name:        "DX",
			Description: "Directional Movement Index",
			Inputs:      hlc,
			Outputs:     []string{"dx", "plus_dm", "minus_dm", "tr"},
			Defaults:    Params{Period: momentum.DefaultDXPeriod},
			lookback:    periodLookback(momentum.DXLookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return momentum.DX(in[0], in[1], in[2], p.Period, out[0], out[1], out[2], out[3])
			},
		},
		{
			Name:        "MACD",
			Description: "Moving Average Convergence/Divergence",
			Inputs:      closeOnly,
			Outputs:     []string{"macd", "signal", "histogram", "fast_ema", "slow_ema"},
			Defaults: Params{
				FastPeriod:   momentum.DefaultMACDFastPeriod,
				SlowPeriod:   momentum.DefaultMACDSlowPeriod,
				SignalPeriod: momentum.DefaultMACDSignalPeriod,
			},
			lookback: func(p Params) (int, error) {
				return momentum.MACDLookback(p.FastPeriod, p.SlowPeriod, p.SignalPeriod)
			},
			compute: func(in [][]num, p Params, out [][]num) error {
				return momentum.MACD(in[0], p.FastPeriod, p.SlowPeriod, p.SignalPeriod, out[0], out[1], out[2], out[3], out[4])
			},
		},
		{
			Name:        "RSI",
			Description: "Relative Strength Index",
			Inputs:      closeOnly,
			Outputs:     []string{"rsi", "avg_gain", "avg_loss"},
			Defaults:    Params{Period: momentum.DefaultRSIPeriod},
			lookback:    periodLookback(momentum.RSILookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return momentum.RSI(in[0], p.Period, out[0], out[1], out[2])
			},
		},
		{
			Name:        "MIDPRICE",
			Description: "Midpoint Price over period",
			Inputs:      []string{ColHigh, ColLow},
			Outputs:     []string{"midprice", "highest", "lowest"},
			Defaults:    Params{Period: 14},
			lookback:    periodLookback(price.MidpriceLookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return price.Midprice(in[0], in[1], p.Period, out[0], out[1], out[2])
			},
		},
		{
			Name:        "WCLPRICE",
			Description: "Weighted Close Price",
			Inputs:      hlc,
			Outputs:     []string{"wclprice"},
			lookback:    func(Params) (int, error) { return price.WCLPriceLookback(), nil },
			compute: func(in [][]num, _ Params, out [][]num) error {
				return price.WCLPrice(in[0], in[1], in[2], out[0])
			},
		},
		{
			Name:        "SMA",
			Description: "Simple Moving Average",
			Inputs:      closeOnly,
			Outputs:     []string{"sma"},
			Defaults:    Params{Period: 30},
			lookback:    periodLookback(overlap.SMALookback),
			compute:     single(overlap.SMA[num]),
		},
		{
			Name:        "EMA",
			Description: "Exponential Moving Average",
			Inputs:      closeOnly,
			Outputs:     []string{"ema"},
			Defaults:    Params{Period: 30},
			lookback:    periodLookback(overlap.EMALookback),
			compute:     single(overlap.EMA[num]),
		},
		{
			Name:        "RMA",
			Description: "Wilder's Moving Average",
			Inputs:      closeOnly,
			Outputs:     []string{"rma"},
			Defaults:    Params{Period: 14},
			lookback:    periodLookback(overlap.RMALookback),
			compute:     single(overlap.RMA[num]),
		},
		{
			Name:        "WMA",
			Description: "Weighted Moving Average",
			Inputs:      closeOnly,
			Outputs:     []string{"wma"},
			Defaults:    Params{Period: 30},
			lookback:    periodLookback(overlap.WMALookback),
			compute:     single(overlap.WMA[num]),
		},
		{
			Name:        "DEMA",
			Description: "Double Exponential Moving Average",
			Inputs:      closeOnly,
			Outputs:     []string{"dema", "ema1", "ema2"},
			Defaults:    Params{Period: 30},
			lookback:    periodLookback(overlap.DEMALookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return overlap.DEMA(in[0], p.Period, out[0], out[1], out[2])
			},
		},
		{
			Name:        "TEMA",
			Description: "Triple Exponential Moving Average",
			Inputs:      closeOnly,
			Outputs:     []string{"tema", "ema1", "ema2", "ema3"},
			Defaults:    Params{Period: 30},
			lookback:    periodLookback(overlap.TEMALookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return overlap.TEMA(in[0], p.Period, out[0], out[1], out[2], out[3])
			},
		},
		{
			Name:        "MA",
			Description: "Moving Average of a selectable kind",
			Inputs:      closeOnly,
			Outputs:     []string{"ma"},
			Defaults:    Params{Period: 30, MAType: core.DefaultMAType.String()},
			lookback: func(p Params) (int, error) {
				mt, err := core.ParseMAType(p.MAType)
				if err != nil {
					return 0, err
				}
				return overlap.MALookback(p.Period, mt)
			},
			compute: func(in [][]num, p Params, out [][]num) error {
				mt, err := core.ParseMAType(p.MAType)
				if err != nil {
					return err
				}
				return overlap.MA(in[0], p.Period, mt, out[0])
			},
		},
		{
			Name:        "ATR",
			Description: "Average True Range",
			Inputs:      hlc,
			Outputs:     []string{"atr"},
			Defaults:    Params{Period: volatility.DefaultATRPeriod},
			lookback:    periodLookback(volatility.ATRLookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return volatility.ATR(in[0], in[1], in[2], p.Period, out[0])
			},
		},
		{
			Name:        "BBANDS",
			Description: "Bollinger Bands",
			Inputs:      closeOnly,
			Outputs:     []string{"upper", "middle", "lower"},
			Defaults:    Params{Period: volatility.DefaultBollingerPeriod, Factor: volatility.DefaultBollingerMultiplier},
			lookback: func(p Params) (int, error) {
				return volatility.BBandsLookback(p.Period, p.Factor)
			},
			compute: func(in [][]num, p Params, out [][]num) error {
				return volatility.BBands(in[0], p.Period, p.Factor, out[0], out[1], out[2])
			},
		},
		{
			Name:        "VWAP",
			Description: "Volume Weighted Average Price",
			Inputs:      hlcv,
			Outputs:     []string{"vwap", "cum_pv", "cum_volume"},
			lookback:    func(Params) (int, error) { return volume.VWAPLookback(), nil },
			compute: func(in [][]num, _ Params, out [][]num) error {
				return volume.VWAP(in[0], in[1], in[2], in[3], out[0], out[1], out[2])
			},
		},
		{
			Name:        "MFI",
			Description: "Money Flow Index",
			Inputs:      hlcv,
			Outputs:     []string{"mfi", "pos_flow", "neg_flow"},
			Defaults:    Params{Period: volume.DefaultMFIPeriod},
			lookback:    periodLookback(volume.MFILookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return volume.MFI(in[0], in[1], in[2], in[3], p.Period, out[0], out[1], out[2])
			},
		},
		{
			Name:        "CCI",
			Description: "Commodity Channel Index",
			Inputs:      hlc,
			Outputs:     []string{"cci"},
			Defaults:    Params{Period: momentum.DefaultCCIPeriod},
			lookback:    periodLookback(momentum.CCILookback),
			compute: func(in [][]num, p Params, out [][]num) error {
				return momentum.CCI(in[0], in[1], in[2], p.Period, out[0])
			},
		},
		{
			Name:        "STOCH",
			Description: "Fast Stochastic Oscillator (period = %K, signal_period = %D)",
			Inputs:      hlc,
			Outputs:     []string{"k", "d"},
			Defaults:    Params{Period: momentum.DefaultStochasticKPeriod, SignalPeriod: momentum.DefaultStochasticDPeriod},
			lookback: func(p Params) (int, error) {
				return momentum.StochLookback(p.Period, p.SignalPeriod)
			},
			compute: func(in [][]num, p Params, out [][]num) error {
				return momentum.Stoch(in[0], in[1], in[2], p.Period, p.SignalPeriod, out[0], out[1])
			},
		},
		{
			Name:        "HMA",
			Description: "Hull Moving Average",
			Inputs:      closeOnly,
			Outputs:     []string{"hma"},
			Defaults:    Params{Period: trend.DefaultHMAPeriod},
			lookback:    periodLookback(trend.HMALookback),
			compute:     single(trend.HMA[num]),
		},
		{
			Name:        "SAR",
			Description: "Parabolic SAR (factor = acceleration, maximum = cap)",
			Inputs:      []string{ColHigh, ColLow},
			Outputs:     []string{"sar"},
			Defaults:    Params{Factor: trend.DefaultSARAcceleration, Maximum: trend.DefaultSARMaximum},
			lookback: func(p Params) (int, error) {
				return trend.SARLookback(p.Factor, p.Maximum)
			},
			compute: func(in [][]num, p Params, out [][]num) error {
				return trend.SAR(in[0], in[1], p.Factor, p.Maximum, out[0])
			},
		},
		{
			Name:        "LINEARREG",
			Description: "Linear Regression end point",
			Inputs:      closeOnly,
			Outputs:     []string{"linearreg", "sum_y", "sum_xy"},
			Defaults:    Params{Period: 14},
			lookback:    periodLookback(statistic.LinearRegLookback),
			compute:     linReg(statistic.LinearReg[num]),
		},
		{
			Name:        "LINEARREG_SLOPE",
			Description: "Linear Regression slope",
			Inputs:      closeOnly,
			Outputs:     []string{"slope", "sum_y", "sum_xy"},
			Defaults:    Params{Period: 14},
			lookback:    periodLookback(statistic.LinearRegLookback),
			compute:     linReg(statistic.LinearRegSlope[num]),
		},
		{
			Name:        "LINEARREG_INTERCEPT",
			Description: "Linear Regression intercept",
			Inputs:      closeOnly,
			Outputs:     []string{"intercept", "sum_y", "sum_xy"},
			Defaults:    Params{Period: 14},
			lookback:    periodLookback(statistic.LinearRegLookback),
			compute:     linReg(statistic.LinearRegIntercept[num]),
		},
		{
			Name:        "LINEARREG_ANGLE",
			Description: "Linear Regression angle in degrees",
			Inputs:      closeOnly,
			Outputs:     []string{"angle", "sum_y", "sum_xy"},
			Defaults:    Params{Period: 14},
			lookback:    periodLookback(statistic.LinearRegLookback),
			compute:     linReg(statistic.LinearRegAngle[num]),
		},
		{
			Name:        "CDL_LONG_SHADOW",
			Description: "Long Shadow candlestick pattern",
			Inputs:      []string{ColOpen, ColHigh, ColLow, ColClose},
			Outputs:     []string{"signal", "body_avg"},
			Defaults:    Params{Period: pattern.DefaultLongShadowPeriod, Factor: pattern.DefaultLongShadowFactor},
			lookback: func(p Params) (int, error) {
				return pattern.LongShadowLookback(p.Period, p.Factor)
			},
			compute: computeLongShadow,
		},
	}
	slices.SortFunc(defs, func(a, b Definition) int { return strings.Compare(a.Name, b.Name) })
	return defs
}

// computeLongShadow writes signal codes as floats; the warm-up prefix is NaN
// like every other column.
func computeLongShadow(in [][]num, p Params, out [][]num) error {
	signals := make([]core.Signal, len(in[0]))
	err := pattern.CDLLongShadow(in[0], in[1], in[2], in[3], p.Period, p.Factor, signals, out[1])
	if err != nil {
		return err
	}
	for i, s := range signals {
		if s == core.SignalInvalid {
			out[0][i] = core.NaN[num]()
			continue
		}
		out[0][i] = num(s)
	}
	return nil
}
