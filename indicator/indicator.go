// Package indicator is the catalogue of every indicator in the module. Each
// Definition describes an indicator's input columns, output columns and
// warm-up length, and can compute it over a set of Bars at the build-time
// float width (core.TAFloat).
//
// The typed, generic engines live in the sub-packages (momentum, overlap,
// price, statistic, volatility, volume, pattern); this package only adapts
// them to a uniform, name-addressable shape for the suite runner, the
// scripting host and the CLI.
package indicator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/evdnx/gokand/indicator/core"
)

// Column names used in Definition.Inputs.
const (
	ColOpen   = "open"
	ColHigh   = "high"
	ColLow    = "low"
	ColClose  = "close"
	ColVolume = "volume"
)

// Bars is a set of co-indexed OHLCV columns. Columns an indicator does not
// read may be left nil.
type Bars struct {
	Open   []core.TAFloat
	High   []core.TAFloat
	Low    []core.TAFloat
	Close  []core.TAFloat
	Volume []core.TAFloat
}

// Len is the length of the longest column.
func (b Bars) Len() int {
	n := 0
	for _, c := range [][]core.TAFloat{b.Open, b.High, b.Low, b.Close, b.Volume} {
		n = max(n, len(c))
	}
	return n
}

// Column returns the named column.
func (b Bars) Column(name string) ([]core.TAFloat, error) {
	switch strings.ToLower(name) {
	case ColOpen:
		return b.Open, nil
	case ColHigh:
		return b.High, nil
	case ColLow:
		return b.Low, nil
	case ColClose:
		return b.Close, nil
	case ColVolume:
		return b.Volume, nil
	}
	return nil, fmt.Errorf("%w: unknown column %q", core.ErrInvalidParameter, name)
}

// Params carries every tunable an indicator may take. Zero values are
// replaced by the indicator's defaults.
type Params struct {
	Period       int     `json:"period,omitempty" yaml:"period,omitempty"`
	FastPeriod   int     `json:"fast_period,omitempty" yaml:"fast_period,omitempty"`
	SlowPeriod   int     `json:"slow_period,omitempty" yaml:"slow_period,omitempty"`
	SignalPeriod int     `json:"signal_period,omitempty" yaml:"signal_period,omitempty"`
	Factor       float64 `json:"factor,omitempty" yaml:"factor,omitempty"`   // BBANDS deviations, long-shadow ratio, SAR acceleration
	Maximum      float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"` // SAR acceleration cap
	MAType       string  `json:"ma_type,omitempty" yaml:"ma_type,omitempty"` // see core.ParseMAType
}

// WithDefaults fills every zero field of p from def.
func (p Params) WithDefaults(def Params) Params {
	if p.Period == 0 {
		p.Period = def.Period
	}
	if p.FastPeriod == 0 {
		p.FastPeriod = def.FastPeriod
	}
	if p.SlowPeriod == 0 {
		p.SlowPeriod = def.SlowPeriod
	}
	if p.SignalPeriod == 0 {
		p.SignalPeriod = def.SignalPeriod
	}
	if p.Factor == 0 {
		p.Factor = def.Factor
	}
	if p.Maximum == 0 {
		p.Maximum = def.Maximum
	}
	if p.MAType == "" {
		p.MAType = def.MAType
	}
	return p
}

type computeFunc func(in [][]core.TAFloat, p Params, out [][]core.TAFloat) error

// Definition describes one catalogue entry.
type Definition struct {
	Name        string
	Description string
	Inputs      []string
	Outputs     []string
	Defaults    Params

	lookback func(Params) (int, error)
	compute  computeFunc
}

// Lookback is the warm-up length for p (defaults applied).
func (d Definition) Lookback(p Params) (int, error) {
	return d.lookback(p.WithDefaults(d.Defaults))
}

// Compute runs the indicator over b and returns freshly allocated output
// columns in the order of d.Outputs.
func (d Definition) Compute(b Bars, p Params) ([][]core.TAFloat, error) {
	in := make([][]core.TAFloat, len(d.Inputs))
	for i, name := range d.Inputs {
		col, err := b.Column(name)
		if err != nil {
			return nil, err
		}
		if col == nil {
			return nil, fmt.Errorf("%s: %w: missing %s column", d.Name, core.ErrLengthMismatch, name)
		}
		in[i] = col
	}
	n := len(in[0])
	out := make([][]core.TAFloat, len(d.Outputs))
	for i := range out {
		out[i] = make([]core.TAFloat, n)
	}
	if err := d.compute(in, p.WithDefaults(d.Defaults), out); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	catalogue = buildCatalogue()
	byName    = indexCatalogue(catalogue)
)

func indexCatalogue(defs []Definition) map[string]Definition {
	m := make(map[string]Definition, len(defs))
	for _, d := range defs {
		m[strings.ToUpper(d.Name)] = d
	}
	return m
}

// Catalogue returns every indicator, sorted by name.
func Catalogue() []Definition {
	return slices.Clone(catalogue)
}

// Names returns the catalogue's indicator names, sorted.
func Names() []string {
	names := make([]string, len(catalogue))
	for i, d := range catalogue {
		names[i] = d.Name
	}
	return names
}

// Lookup finds an indicator by case-insensitive name.
func Lookup(name string) (Definition, bool) {
	d, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	return d, ok
}
