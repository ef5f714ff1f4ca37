package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/evdnx/gokand/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Run a Starlark script against the indicator catalogue",
	Long: `Execute a Starlark script with every catalogue indicator predeclared as a
builtin (dx, macd, midprice, wclprice, ...) and the incremental *_inc
builtins. When bars are given, they are available as the 'bars' struct.

Example:
  gokand script analysis.star -i bars.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

var (
	scriptSource   sourceFlags
	scriptMaxSteps uint64
)

func init() {
	rootCmd.AddCommand(scriptCmd)

	scriptSource.register(scriptCmd)
	scriptCmd.Flags().Uint64Var(&scriptMaxSteps, "max-steps", 0, "abort after this many execution steps (0 = unlimited)")
}

func runScript(cmd *cobra.Command, args []string) error {
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

	opts := []script.Option{script.WithMaxSteps(scriptMaxSteps)}
	if scriptSource.input != "" || scriptSource.db != "" {
		frame, db, err := scriptSource.load(ctx)
		if err != nil {
			return fmt.Errorf("load bars: %w", err)
		}
		if db != nil {
			db.Close()
		}
		opts = append(opts, script.WithBars(frame.Bars))
		logger.Debug().Int("bars", frame.Len()).Msg("bars loaded")
	}

	host := script.New(logger, opts...)
	if _, err := host.ExecFile(ctx, args[0], nil); err != nil {
		return err
	}
	return nil
}
