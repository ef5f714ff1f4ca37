// Package suite runs a configured list of catalogue indicators over one set of
// bars and combines their signals into a single verdict.
package suite

import (
	"fmt"

	"github.com/evdnx/gokand/config"
	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/indicator/momentum"
	"github.com/evdnx/gokand/indicator/volume"
)

// Column is one named output series of a job.
type Column struct {
	Name      string // "<job key>.<output>"
	Indicator string
	Output    string
	Lookback  int
	Values    []core.TAFloat
}

// Result holds every job's output columns in configuration order.
type Result struct {
	Columns  []Column
	Lookback int // longest warm-up of any job
	index    map[string]int
}

// Column finds a column by its full name.
func (r *Result) Column(name string) (Column, bool) {
	i, ok := r.index[name]
	if !ok {
		return Column{}, false
	}
	return r.Columns[i], true
}

// Len is the number of bars covered by every column.
func (r *Result) Len() int {
	if len(r.Columns) == 0 {
		return 0
	}
	return len(r.Columns[0].Values)
}

type job struct {
	config.Job
	def indicator.Definition
}

// IndicatorSuite is a validated, immutable job list.
type IndicatorSuite struct {
	jobs []job
}

// NewIndicatorSuite creates a suite running the default job list.
func NewIndicatorSuite() (*IndicatorSuite, error) {
	cfg := config.DefaultConfig()
	return NewIndicatorSuiteWithConfig(&cfg)
}

// NewIndicatorSuiteWithConfig validates every job in cfg up front, so a bad
// job fails here rather than halfway through a run.
func NewIndicatorSuiteWithConfig(cfg *config.Config) (*IndicatorSuite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &IndicatorSuite{jobs: make([]job, 0, len(cfg.Indicators))}
	for _, j := range cfg.Indicators {
		def, _ := indicator.Lookup(j.Name)
		s.jobs = append(s.jobs, job{Job: j, def: def})
	}
	return s, nil
}

// Jobs returns the configured jobs.
func (s *IndicatorSuite) Jobs() []config.Job {
	out := make([]config.Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = j.Job
	}
	return out
}

// Run computes every job over bars, one after the other. The first failing
// job aborts the run.
func (s *IndicatorSuite) Run(bars indicator.Bars) (*Result, error) {
	res := &Result{index: make(map[string]int)}
	for _, j := range s.jobs {
		lookback, err := j.def.Lookback(j.Params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", j.Key(), err)
		}
		outs, err := j.def.Compute(bars, j.Params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", j.Key(), err)
		}
		res.Lookback = max(res.Lookback, lookback)
		for k, values := range outs {
			col := Column{
				Name:      j.Key() + "." + j.def.Outputs[k],
				Indicator: j.def.Name,
				Output:    j.def.Outputs[k],
				Lookback:  lookback,
				Values:    values,
			}
			res.index[col.Name] = len(res.Columns)
			res.Columns = append(res.Columns, col)
		}
	}
	return res, nil
}

// ---------------------------------------------------------------------
// Consensus – weighted vote of the signal-producing columns.
// ---------------------------------------------------------------------

const (
	weightRSI        = 1.0
	weightMFI        = 1.0
	weightMACD       = 1.5
	weightLongShadow = 0.8
)

// Consensus combines, at bar i, RSI crossovers of the 70/30 lines, MFI
// crossovers of the 80/20 lines, MACD histogram zero crossings and
// long-shadow candles. At least two columns must
// vote before a bullish or bearish verdict is returned; otherwise the result
// is SignalNeutral. Bars where no voting column is defined yet are
// SignalInvalid.
func (r *Result) Consensus(i int) (core.Signal, error) {
	if i < 1 || i >= r.Len() {
		return core.SignalInvalid, fmt.Errorf("%w: bar %d outside [1, %d)", core.ErrInvalidParameter, i, r.Len())
	}

	var (
		score   float64
		contrib int
		defined bool
	)
	vote := func(sig core.Signal, weight float64) {
		switch sig {
		case core.SignalInvalid:
			return
		case core.SignalBullish:
			score += weight
			contrib++
		case core.SignalBearish:
			score -= weight
			contrib++
		}
		defined = true
	}

	for _, c := range r.Columns {
		prev, curr := c.Values[i-1], c.Values[i]
		switch {
		case c.Indicator == "RSI" && c.Output == "rsi":
			vote(momentum.RSICrossover(prev, curr, momentum.DefaultRSIOverbought, momentum.DefaultRSIOversold), weightRSI)
		case c.Indicator == "MFI" && c.Output == "mfi":
			vote(momentum.RSICrossover(prev, curr, volume.DefaultMFIOverbought, volume.DefaultMFIOversold), weightMFI)
		case c.Indicator == "MACD" && c.Output == "histogram":
			vote(zeroCross(prev, curr), weightMACD)
		case c.Indicator == "CDL_LONG_SHADOW" && c.Output == "signal":
			if core.IsNaN(curr) {
				continue
			}
			vote(core.Signal(curr), weightLongShadow)
		}
	}

	switch {
	case !defined:
		return core.SignalInvalid, nil
	case contrib >= 2 && score >= 1.0:
		return core.SignalBullish, nil
	case contrib >= 2 && score <= -1.0:
		return core.SignalBearish, nil
	default:
		return core.SignalNeutral, nil
	}
}

func zeroCross(prev, curr core.TAFloat) core.Signal {
	switch {
	case core.IsNaN(prev) || core.IsNaN(curr):
		return core.SignalInvalid
	case prev <= 0 && curr > 0:
		return core.SignalBullish
	case prev >= 0 && curr < 0:
		return core.SignalBearish
	default:
		return core.SignalNeutral
	}
}
