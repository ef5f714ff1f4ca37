// Package script hosts Starlark programs that call the indicator catalogue.
//
// Every catalogue entry is a batch builtin named after it in lower case
// (dx, macd, midprice, ...). Builtins take the input columns as lists,
// followed by optional keyword parameters (period, fast_period, slow_period,
// signal_period, factor, maximum, ma_type), and return a list for single-output
// indicators or a tuple of lists otherwise. Undefined warm-up values are NaN.
// The *_inc builtins expose the incremental engines.
package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/core"
)

// Host runs scripts with the indicator builtins predeclared.
type Host struct {
	logger   zerolog.Logger
	bars     *indicator.Bars
	maxSteps uint64
	builtins starlark.StringDict
}

// Option configures a Host.
type Option func(*Host)

// WithBars predeclares a `bars` struct with open/high/low/close/volume lists.
func WithBars(b indicator.Bars) Option {
	return func(h *Host) { h.bars = &b }
}

// WithMaxSteps bounds the number of Starlark execution steps per run.
func WithMaxSteps(n uint64) Option {
	return func(h *Host) { h.maxSteps = n }
}

// New creates a host. Script print() output goes to logger at info level.
func New(logger zerolog.Logger, opts ...Option) *Host {
	h := &Host{logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	h.builtins = h.setupBuiltins()
	return h
}

// Builtins returns a copy of the predeclared names.
func (h *Host) Builtins() starlark.StringDict {
	out := make(starlark.StringDict, len(h.builtins))
	for k, v := range h.builtins {
		out[k] = v
	}
	return out
}

// ExecFile runs one script and returns its globals. src may be nil (read
// filename), a string, a []byte or an io.Reader. Cancelling ctx stops the
// script at its next step.
func (h *Host) ExecFile(ctx context.Context, filename string, src any) (starlark.StringDict, error) {
	if r, ok := src.(io.Reader); ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("script: read %s: %w", filename, err)
		}
		src = data
	}

	log := h.logger.With().Str("script", filename).Logger()
	thread := &starlark.Thread{
		Name:  "gokand-" + filename,
		Print: func(_ *starlark.Thread, msg string) { log.Info().Msg(msg) },
	}
	if h.maxSteps > 0 {
		thread.SetMaxExecutionSteps(h.maxSteps)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	log.Debug().Msg("running script")
	globals, err := starlark.ExecFile(thread, filename, src, h.Builtins())
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			log.Error().Str("backtrace", evalErr.Backtrace()).Msg("script failed")
		}
		return nil, fmt.Errorf("script: %w", err)
	}
	log.Debug().Int("steps", int(thread.ExecutionSteps())).Msg("script finished")
	return globals, nil
}

func (h *Host) setupBuiltins() starlark.StringDict {
	b := starlark.StringDict{
		"catalogue": starlark.NewBuiltin("catalogue", catalogueBuiltin),
		"lookback":  starlark.NewBuiltin("lookback", lookbackBuiltin),
		"signal":    signalStruct(),
	}
	for _, def := range indicator.Catalogue() {
		name := strings.ToLower(def.Name)
		b[name] = starlark.NewBuiltin(name, batchBuiltin(def))
	}
	for name, fn := range incBuiltins {
		b[name] = starlark.NewBuiltin(name, fn)
	}
	if h.bars != nil {
		b["bars"] = starlarkstruct.FromStringDict(starlark.String("bars"), starlark.StringDict{
			"open":   toList(h.bars.Open),
			"high":   toList(h.bars.High),
			"low":    toList(h.bars.Low),
			"close":  toList(h.bars.Close),
			"volume": toList(h.bars.Volume),
		})
	}
	return b
}

func signalStruct() starlark.Value {
	codes := starlark.StringDict{}
	for _, s := range []core.Signal{core.SignalBullish, core.SignalBalance, core.SignalBearish, core.SignalNeutral, core.SignalPattern, core.SignalInvalid} {
		codes[strings.ToLower(s.String())] = starlark.MakeInt(int(s))
	}
	return starlarkstruct.FromStringDict(starlark.String("signal"), codes)
}

// ---------------------------------------------------------------------
// Value conversion
// ---------------------------------------------------------------------

func toList(s []core.TAFloat) *starlark.List {
	elems := make([]starlark.Value, len(s))
	for i, v := range s {
		elems[i] = starlark.Float(float64(v))
	}
	return starlark.NewList(elems)
}

func toFloat(name string, v starlark.Value) (core.TAFloat, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: got %s, want number", name, v.Type())
	}
	return core.TAFloat(f), nil
}

func toSeries(name string, v starlark.Value) ([]core.TAFloat, error) {
	it, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("%s: got %s, want list of numbers", name, v.Type())
	}
	var out []core.TAFloat
	if seq, ok := v.(starlark.Sequence); ok {
		out = make([]core.TAFloat, 0, seq.Len())
	}
	iter := it.Iterate()
	defer iter.Done()
	var x starlark.Value
	for i := 0; iter.Next(&x); i++ {
		f, err := toFloat(fmt.Sprintf("%s[%d]", name, i), x)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func floatTuple(vs ...core.TAFloat) starlark.Tuple {
	t := make(starlark.Tuple, len(vs))
	for i, v := range vs {
		t[i] = starlark.Float(float64(v))
	}
	return t
}
