package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evdnx/gokand/config"
	"github.com/evdnx/gokand/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "gokand",
	Short: "Technical analysis indicators over OHLCV bars",
	Long: `gokand computes technical analysis indicators (DX, MACD, MIDPRICE,
WCLPRICE, moving averages, Bollinger Bands, ATR, VWAP, linear regression and
candlestick patterns) over OHLCV bars loaded from CSV files or SQLite tables.

Indicators can be run from a configuration file, listed from the built-in
catalogue, or called from Starlark scripts.`,
	SilenceUsage: true,
}

var (
	configPath string
	envFile    string
	logLevel   string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML or JSON); defaults to the built-in job set")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with GOKAND_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// loadConfig reads --config (or the defaults), applies environment overrides
// and validates the result.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if configPath == "" {
		def := config.DefaultConfig()
		cfg = &def
	} else {
		var err error
		if cfg, err = config.LoadFromFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: %w", err)
	}
	return logger, nil
}
