package feed

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/gokand/config"
	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/suite"
)

const sampleCSV = `Date,Open,High,Low,Close,Volume,Note
2024-01-01,10.0,11.5,9.5,11.0,1200,a
2024-01-02,11.0,12.0,10.5,11.75,900,b
2024-01-03,11.75,12.25,11.0,12.0,1500,c
2024-01-04,12.0,12.5,11.25,11.5,1100,d
`

func TestReadCSV(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}, f.Times)
	assert.Equal(t, []core.TAFloat{11, 11.75, 12, 11.5}, f.Bars.Close)
	assert.Equal(t, core.TAFloat(1500), f.Bars.Volume[2])
	assert.Equal(t, core.TAFloat(9.5), f.Bars.Low[0])
}

func TestReadCSV_CloseOnly(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("c\n1\n2\n3\n"))
	require.NoError(t, err)
	assert.Nil(t, f.Times)
	assert.Nil(t, f.Bars.High)
	assert.Equal(t, []core.TAFloat{1, 2, 3}, f.Bars.Close)
}

func TestReadCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"no close column":  "open,high\n1,2\n",
		"duplicate column": "close,c\n1,2\n",
		"bad number":       "close\n1\nabc\n",
		"empty":            "",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "13.50", FormatValue(13.5, 2))
	assert.Equal(t, "0.333", FormatValue(1.0/3, 3))
	assert.Equal(t, "", FormatValue(core.NaN[core.TAFloat](), 3))
}

func runSuite(t *testing.T, f *Frame) *suite.Result {
	t.Helper()
	cfg := config.Config{Indicators: []config.Job{
		{Name: "WCLPRICE"},
		{Name: "MIDPRICE", Params: indicator.Params{Period: 2}},
	}}
	s, err := suite.NewIndicatorSuiteWithConfig(&cfg)
	require.NoError(t, err)
	res, err := s.Run(f.Bars)
	require.NoError(t, err)
	return res
}

func TestWriteCSV(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	res := runSuite(t, f)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, f.Times, res, 2, false))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"time", "wclprice.wclprice", "midprice.midprice", "midprice.highest", "midprice.lowest"}, rows[0])
	assert.Equal(t, []string{"2024-01-01", "10.75", "", "", ""}, rows[1])
	assert.Equal(t, "10.75", rows[2][2]) // (12 + 9.5) / 2

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, nil, res, 1, true))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "wclprice.wclprice", rows[0][0])

	assert.Error(t, WriteCSV(&buf, []string{"x"}, res, 2, false))
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "bars.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.DB().ExecContext(ctx, `CREATE TABLE bars (time TEXT, open REAL, high REAL, low REAL, close REAL, volume REAL)`)
	require.NoError(t, err)
	src, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	for i := 0; i < src.Len(); i++ {
		_, err := db.DB().ExecContext(ctx, `INSERT INTO bars VALUES (?, ?, ?, ?, ?, ?)`,
			src.Times[i], float64(src.Bars.Open[i]), float64(src.Bars.High[i]), float64(src.Bars.Low[i]), float64(src.Bars.Close[i]), nil)
		require.NoError(t, err)
	}

	f, err := db.LoadTable(ctx, "bars")
	require.NoError(t, err)
	assert.Equal(t, src.Times, f.Times)
	assert.Equal(t, src.Bars.Close, f.Bars.Close)
	assert.Equal(t, []core.TAFloat{0, 0, 0, 0}, f.Bars.Volume)

	q, err := db.LoadQuery(ctx, `SELECT close AS c FROM bars WHERE close > ?`, 11.5)
	require.NoError(t, err)
	assert.Equal(t, []core.TAFloat{11.75, 12}, q.Bars.Close)

	res := runSuite(t, f)
	require.NoError(t, db.SaveResult(ctx, "results", f.Times, res))
	require.NoError(t, db.SaveResult(ctx, "results", f.Times, res))

	var n int
	require.NoError(t, db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n))
	assert.Equal(t, 4, n)
	var mid *float64
	require.NoError(t, db.DB().QueryRowContext(ctx, `SELECT "midprice.midprice" FROM results WHERE bar = 0`).Scan(&mid))
	assert.Nil(t, mid)
	require.NoError(t, db.DB().QueryRowContext(ctx, `SELECT "midprice.midprice" FROM results WHERE bar = 1`).Scan(&mid))
	require.NotNil(t, mid)
	assert.Equal(t, 10.75, *mid)

	_, err = db.LoadTable(ctx, "bars; DROP TABLE bars")
	assert.Error(t, err)
	assert.Error(t, db.SaveResult(ctx, "bad name", nil, res))
}

func TestSQLite_NullPriceRejected(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "null.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.DB().ExecContext(ctx, `CREATE TABLE q (close REAL); INSERT INTO q VALUES (1.0), (NULL);`)
	require.NoError(t, err)
	_, err = db.LoadTable(ctx, "q")
	assert.Error(t, err)
}
