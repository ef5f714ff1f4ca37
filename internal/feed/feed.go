// Package feed moves bars in and result columns out: CSV files and SQLite
// tables on either side.
package feed

import (
	"fmt"
	"strings"

	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/core"
)

// Frame is a loaded bar set plus the optional time labels of each bar.
type Frame struct {
	Times []string
	Bars  indicator.Bars
}

// Len is the number of bars in the frame.
func (f *Frame) Len() int { return f.Bars.Len() }

var columnAliases = map[string]string{
	"o": indicator.ColOpen, "open": indicator.ColOpen,
	"h": indicator.ColHigh, "high": indicator.ColHigh,
	"l": indicator.ColLow, "low": indicator.ColLow,
	"c": indicator.ColClose, "close": indicator.ColClose,
	"v": indicator.ColVolume, "vol": indicator.ColVolume, "volume": indicator.ColVolume,
	"time": "time", "date": "time", "timestamp": "time", "datetime": "time",
}

// canonical maps a header name to a bar column or "time"; unknown headers map
// to "".
func canonical(name string) string {
	return columnAliases[strings.ToLower(strings.TrimSpace(name))]
}

// frameBuilder collects rows column by column.
type frameBuilder struct {
	slots []string // canonical name per source column, "" = ignored
	frame Frame
}

func newFrameBuilder(headers []string) (*frameBuilder, error) {
	b := &frameBuilder{slots: make([]string, len(headers))}
	seen := map[string]bool{}
	for i, h := range headers {
		name := canonical(h)
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("feed: duplicate %s column %q", name, h)
		}
		seen[name] = true
		b.slots[i] = name
	}
	if !seen[indicator.ColClose] {
		return nil, fmt.Errorf("feed: no close column in %v", headers)
	}
	for _, name := range []string{indicator.ColOpen, indicator.ColHigh, indicator.ColLow, indicator.ColClose, indicator.ColVolume} {
		if seen[name] {
			col := b.column(name)
			*col = []core.TAFloat{}
		}
	}
	return b, nil
}

func (b *frameBuilder) column(name string) *[]core.TAFloat {
	switch name {
	case indicator.ColOpen:
		return &b.frame.Bars.Open
	case indicator.ColHigh:
		return &b.frame.Bars.High
	case indicator.ColLow:
		return &b.frame.Bars.Low
	case indicator.ColClose:
		return &b.frame.Bars.Close
	case indicator.ColVolume:
		return &b.frame.Bars.Volume
	}
	return nil
}

func (b *frameBuilder) hasTime() bool {
	for _, s := range b.slots {
		if s == "time" {
			return true
		}
	}
	return false
}
