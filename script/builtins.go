package script

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/indicator/momentum"
	"github.com/evdnx/gokand/indicator/overlap"
	"github.com/evdnx/gokand/indicator/price"
)

type builtinFunc = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

// paramArgs are the optional keyword parameters shared by every batch
// builtin.
type paramArgs struct {
	period, fast, slow, signal int
	factor, maximum            starlark.Value
	maType                     string
}

func (p *paramArgs) pairs() []any {
	return []any{
		"period?", &p.period,
		"fast_period?", &p.fast,
		"slow_period?", &p.slow,
		"signal_period?", &p.signal,
		"factor?", &p.factor,
		"maximum?", &p.maximum,
		"ma_type?", &p.maType,
	}
}

func (p *paramArgs) params() (indicator.Params, error) {
	out := indicator.Params{
		Period:       p.period,
		FastPeriod:   p.fast,
		SlowPeriod:   p.slow,
		SignalPeriod: p.signal,
		MAType:       p.maType,
	}
	for _, f := range []struct {
		name string
		v    starlark.Value
		dst  *float64
	}{{"factor", p.factor, &out.Factor}, {"maximum", p.maximum, &out.Maximum}} {
		if f.v == nil {
			continue
		}
		x, ok := starlark.AsFloat(f.v)
		if !ok {
			return out, fmt.Errorf("%s: got %s, want number", f.name, f.v.Type())
		}
		*f.dst = x
	}
	return out, nil
}

func batchBuiltin(def indicator.Definition) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		inputs := make([]starlark.Value, len(def.Inputs))
		var pa paramArgs
		pairs := make([]any, 0, 2*len(def.Inputs)+14)
		for i, name := range def.Inputs {
			pairs = append(pairs, name, &inputs[i])
		}
		pairs = append(pairs, pa.pairs()...)
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, pairs...); err != nil {
			return nil, err
		}

		var bars indicator.Bars
		for i, name := range def.Inputs {
			s, err := toSeries(name, inputs[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fn.Name(), err)
			}
			switch name {
			case indicator.ColOpen:
				bars.Open = s
			case indicator.ColHigh:
				bars.High = s
			case indicator.ColLow:
				bars.Low = s
			case indicator.ColClose:
				bars.Close = s
			case indicator.ColVolume:
				bars.Volume = s
			}
		}
		params, err := pa.params()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		outs, err := def.Compute(bars, params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		if len(outs) == 1 {
			return toList(outs[0]), nil
		}
		t := make(starlark.Tuple, len(outs))
		for i, o := range outs {
			t[i] = toList(o)
		}
		return t, nil
	}
}

func catalogueBuiltin(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	names := indicator.Names()
	elems := make([]starlark.Value, len(names))
	for i, n := range names {
		elems[i] = starlark.String(strings.ToLower(n))
	}
	return starlark.NewList(elems), nil
}

func lookbackBuiltin(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var pa paramArgs
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, append([]any{"name", &name}, pa.pairs()...)...); err != nil {
		return nil, err
	}
	def, ok := indicator.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: unknown indicator %q", fn.Name(), name)
	}
	params, err := pa.params()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	n, err := def.Lookback(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	return starlark.MakeInt(n), nil
}

// ---------------------------------------------------------------------
// Incremental builtins
// ---------------------------------------------------------------------

// unpackInc reads len(floats) numeric arguments followed by len(ints) integer
// arguments, all required.
func unpackInc(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, floats, ints []string) ([]core.TAFloat, []int, error) {
	fv := make([]starlark.Value, len(floats))
	iv := make([]int, len(ints))
	pairs := make([]any, 0, 2*(len(floats)+len(ints)))
	for i, n := range floats {
		pairs = append(pairs, n, &fv[i])
	}
	for i, n := range ints {
		pairs = append(pairs, n, &iv[i])
	}
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, pairs...); err != nil {
		return nil, nil, err
	}
	out := make([]core.TAFloat, len(fv))
	for i, v := range fv {
		f, err := toFloat(floats[i], v)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		out[i] = f
	}
	return out, iv, nil
}

var incBuiltins = map[string]builtinFunc{
	"dx_inc": func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		f, i, err := unpackInc(fn, args, kwargs,
			[]string{"high", "low", "prev_high", "prev_low", "prev_close", "prev_plus_dm", "prev_minus_dm", "prev_tr"},
			[]string{"period"})
		if err != nil {
			return nil, err
		}
		prev := momentum.DXState[core.TAFloat]{PlusDM: f[5], MinusDM: f[6], TR: f[7]}
		dx, st, err := momentum.DXInc(f[0], f[1], f[2], f[3], f[4], prev, i[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		return floatTuple(dx, st.PlusDM, st.MinusDM, st.TR), nil
	},
	"macd_inc": func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		f, i, err := unpackInc(fn, args, kwargs,
			[]string{"price", "prev_fast_ema", "prev_slow_ema", "prev_signal"},
			[]string{"fast_period", "slow_period", "signal_period"})
		if err != nil {
			return nil, err
		}
		prev := momentum.MACDState[core.TAFloat]{FastEMA: f[1], SlowEMA: f[2], Signal: f[3]}
		v, st, err := momentum.MACDInc(f[0], prev, i[0], i[1], i[2])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		return floatTuple(v.MACD, v.Signal, v.Histogram, st.FastEMA, st.SlowEMA), nil
	},
	"midprice_inc": func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		f, i, err := unpackInc(fn, args, kwargs,
			[]string{"high", "low", "prev_highest", "prev_lowest"},
			[]string{"period"})
		if err != nil {
			return nil, err
		}
		prev := price.MidpriceState[core.TAFloat]{Highest: f[2], Lowest: f[3]}
		mid, st, err := price.MidpriceInc(f[0], f[1], prev, i[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		return floatTuple(mid, st.Highest, st.Lowest), nil
	},
	"wclprice_inc": func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		f, _, err := unpackInc(fn, args, kwargs, []string{"high", "low", "close"}, nil)
		if err != nil {
			return nil, err
		}
		return starlark.Float(float64(price.WCLPriceInc(f[0], f[1], f[2]))), nil
	},
	"ema_inc": func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		f, i, err := unpackInc(fn, args, kwargs, []string{"price", "prev_ema"}, []string{"period"})
		if err != nil {
			return nil, err
		}
		v, err := overlap.EMAInc(f[0], f[1], i[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		return starlark.Float(float64(v)), nil
	},
	"rsi_inc": func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		f, i, err := unpackInc(fn, args, kwargs, []string{"price", "prev_price", "prev_avg_gain", "prev_avg_loss"}, []string{"period"})
		if err != nil {
			return nil, err
		}
		prev := momentum.RSIState[core.TAFloat]{AvgGain: f[2], AvgLoss: f[3]}
		v, st, err := momentum.RSIInc(f[0], f[1], prev, i[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		return floatTuple(v, st.AvgGain, st.AvgLoss), nil
	},
}
