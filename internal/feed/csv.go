package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/suite"
)

// ReadCSV loads bars from CSV with a header row. Recognised headers are
// open/high/low/close/volume (or o/h/l/c/v) and time/date/timestamp; other
// columns are ignored. Prices are parsed as decimals so values such as
// "1.10" are read exactly as written before conversion to the float width.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("feed: read header: %w", err)
	}
	b, err := newFrameBuilder(header)
	if err != nil {
		return nil, err
	}
	withTime := b.hasTime()

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("feed: line %d: %w", line, err)
		}
		var stamp string
		for i, slot := range b.slots {
			switch slot {
			case "":
			case "time":
				stamp = rec[i]
			default:
				v, err := parseDecimal(rec[i])
				if err != nil {
					return nil, fmt.Errorf("feed: line %d %s: %w", line, slot, err)
				}
				col := b.column(slot)
				*col = append(*col, v)
			}
		}
		if withTime {
			b.frame.Times = append(b.frame.Times, stamp)
		}
	}
	return &b.frame, nil
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseDecimal(s string) (core.TAFloat, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return core.TAFloat(d.InexactFloat64()), nil
}

// FormatValue renders v rounded to precision decimal places; undefined values
// render as the empty string.
func FormatValue(v core.TAFloat, precision int) string {
	if core.IsNaN(v) {
		return ""
	}
	return decimal.NewFromFloat(float64(v)).StringFixed(int32(precision))
}

// WriteCSV writes one row per bar: an optional time column followed by every
// result column. With skipWarmup the rows before res.Lookback are omitted.
func WriteCSV(w io.Writer, times []string, res *suite.Result, precision int, skipWarmup bool) error {
	if times != nil && len(times) != res.Len() {
		return fmt.Errorf("feed: %d time labels for %d bars", len(times), res.Len())
	}
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(res.Columns)+1)
	if times != nil {
		header = append(header, "time")
	}
	for _, c := range res.Columns {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	start := 0
	if skipWarmup {
		start = min(res.Lookback, res.Len())
	}
	row := make([]string, len(header))
	for i := start; i < res.Len(); i++ {
		row = row[:0]
		if times != nil {
			row = append(row, times[i])
		}
		for _, c := range res.Columns {
			row = append(row, FormatValue(c.Values[i], precision))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
