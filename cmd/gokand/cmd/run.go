package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evdnx/gokand/internal/feed"
	"github.com/evdnx/gokand/suite"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured indicators over a bar set",
	Long: `Run every configured indicator over OHLCV bars and write the result
columns as CSV.

Bars come from a CSV file (--input) or a SQLite database (--db with --table or
--query). Results go to stdout, a CSV file (--output) or back into the SQLite
database (--out-table).

Examples:
  gokand run -i bars.csv
  gokand run -c gokand.yaml -i bars.csv -o indicators.csv
  gokand run --db market.db --table btc_1h --out-table btc_1h_indicators`,
	RunE: runRun,
}

type sourceFlags struct {
	input string
	db    string
	table string
	query string
}

var (
	runSource    sourceFlags
	runOutput    string
	runOutTable  string
	runConsensus bool
)

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.input, "input", "i", "", "CSV file with OHLCV bars")
	cmd.Flags().StringVar(&s.db, "db", "", "SQLite database with OHLCV bars")
	cmd.Flags().StringVar(&s.table, "table", "", "SQLite table to load (with --db)")
	cmd.Flags().StringVar(&s.query, "query", "", "SQL query to load (with --db)")
}

func init() {
	rootCmd.AddCommand(runCmd)

	runSource.register(runCmd)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "CSV output file (default stdout)")
	runCmd.Flags().StringVar(&runOutTable, "out-table", "", "write results into this SQLite table (with --db)")
	runCmd.Flags().BoolVar(&runConsensus, "consensus", false, "log the consensus signal of the last bar")
}

// load reads the bar set named by the source flags. The returned database,
// when non-nil, stays open for writing results and must be closed by the
// caller.
func (s *sourceFlags) load(ctx context.Context) (*feed.Frame, *feed.SQLite, error) {
	switch {
	case s.input != "" && s.db != "":
		return nil, nil, errors.New("use either --input or --db, not both")
	case s.input != "":
		frame, err := feed.ReadCSVFile(s.input)
		return frame, nil, err
	case s.db != "":
		db, err := feed.OpenSQLite(s.db)
		if err != nil {
			return nil, nil, err
		}
		var frame *feed.Frame
		switch {
		case s.table != "" && s.query != "":
			err = errors.New("use either --table or --query, not both")
		case s.table != "":
			frame, err = db.LoadTable(ctx, s.table)
		case s.query != "":
			frame, err = db.LoadQuery(ctx, s.query)
		default:
			err = errors.New("--db needs --table or --query")
		}
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return frame, db, nil
	default:
		return nil, nil, errors.New("no bars: set --input or --db")
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	frame, db, err := runSource.load(ctx)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	if db != nil {
		defer db.Close()
	}
	logger.Info().Int("bars", frame.Len()).Int("indicators", len(cfg.Indicators)).Msg("bars loaded")

	s, err := suite.NewIndicatorSuiteWithConfig(cfg)
	if err != nil {
		return err
	}
	res, err := s.Run(frame.Bars)
	if err != nil {
		return fmt.Errorf("run indicators: %w", err)
	}
	logger.Debug().Int("columns", len(res.Columns)).Int("lookback", res.Lookback).Msg("indicators computed")

	if runConsensus {
		logConsensus(logger, res)
	}

	if runOutTable != "" {
		if db == nil {
			return errors.New("--out-table needs --db")
		}
		if err := db.SaveResult(ctx, runOutTable, frame.Times, res); err != nil {
			return fmt.Errorf("save results: %w", err)
		}
		logger.Info().Str("table", runOutTable).Msg("results saved")
		if runOutput == "" {
			return nil
		}
	}
	return writeResult(cmd.OutOrStdout(), frame, res, cfg.Output.Precision, cfg.Output.SkipNaN, logger)
}

func writeResult(stdout io.Writer, frame *feed.Frame, res *suite.Result, precision int, skipWarmup bool, logger zerolog.Logger) error {
	write := func(w io.Writer) error {
		if err := feed.WriteCSV(w, frame.Times, res, precision, skipWarmup); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		return nil
	}
	if runOutput == "" {
		return write(stdout)
	}
	f, err := os.Create(runOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeAndClose(f, write); err != nil {
		return err
	}
	logger.Info().Str("file", runOutput).Msg("results written")
	return nil
}

// writeAndClose runs write against wc and closes it. A close failure is
// reported when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return write(wc)
}

func logConsensus(logger zerolog.Logger, res *suite.Result) {
	if res.Len() == 0 {
		return
	}
	last := res.Len() - 1
	sig, err := res.Consensus(last)
	if err != nil {
		logger.Warn().Err(err).Msg("consensus unavailable")
		return
	}
	logger.Info().Int("bar", last).Stringer("signal", sig).Msg("consensus")
}
