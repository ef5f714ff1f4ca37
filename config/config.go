// Package config loads and validates the job list the suite runner and CLI
// execute, together with logging and output settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/momentum"
	"github.com/evdnx/gokand/indicator/volatility"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GOKAND_"

const maxReasonablePeriod = 1_000_000

// Job is one indicator run: a catalogue name, an optional output label and the
// indicator's parameters. Zero parameters fall back to the catalogue defaults.
type Job struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`

	indicator.Params `yaml:",inline"`
}

// Key is the label used for this job's output columns.
func (j Job) Key() string {
	if j.Label != "" {
		return j.Label
	}
	return strings.ToLower(j.Name)
}

// LoggingConfig selects the log level and encoder.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // console or json
}

// OutputConfig controls how result columns are written.
type OutputConfig struct {
	Precision int  `yaml:"precision" json:"precision"`
	SkipNaN   bool `yaml:"skip_nan" json:"skip_nan"` // drop rows inside the longest warm-up
}

// Config is the whole configuration file.
type Config struct {
	Indicators []Job         `yaml:"indicators" json:"indicators"`
	Logging    LoggingConfig `yaml:"logging" json:"logging"`
	Output     OutputConfig  `yaml:"output" json:"output"`
}

// DefaultConfig runs the four core indicators with their standard periods.
func DefaultConfig() Config {
	return Config{
		Indicators: []Job{
			{Name: "DX", Params: indicator.Params{Period: momentum.DefaultDXPeriod}},
			{Name: "MACD", Params: indicator.Params{
				FastPeriod:   momentum.DefaultMACDFastPeriod,
				SlowPeriod:   momentum.DefaultMACDSlowPeriod,
				SignalPeriod: momentum.DefaultMACDSignalPeriod,
			}},
			{Name: "MIDPRICE", Params: indicator.Params{Period: 14}},
			{Name: "WCLPRICE"},
			{Name: "BBANDS", Params: indicator.Params{
				Period: volatility.DefaultBollingerPeriod,
				Factor: volatility.DefaultBollingerMultiplier,
			}},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Precision: 6},
	}
}

// Validate checks every job against the catalogue and that output labels are
// unique.
func (c *Config) Validate() error {
	if len(c.Indicators) == 0 {
		return errors.New("config: no indicators configured")
	}
	seen := make(map[string]bool, len(c.Indicators))
	for i, job := range c.Indicators {
		if err := job.Validate(); err != nil {
			return fmt.Errorf("config: indicator %d: %w", i, err)
		}
		if seen[job.Key()] {
			return fmt.Errorf("config: duplicate indicator label %q", job.Key())
		}
		seen[job.Key()] = true
	}
	if c.Output.Precision < 0 || c.Output.Precision > 16 {
		return fmt.Errorf("config: output precision must be within [0, 16], got %d", c.Output.Precision)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// Validate resolves the job in the catalogue and checks its parameters.
func (j Job) Validate() error {
	def, ok := indicator.Lookup(j.Name)
	if !ok {
		return fmt.Errorf("unknown indicator %q", j.Name)
	}
	for _, p := range []int{j.Period, j.FastPeriod, j.SlowPeriod, j.SignalPeriod} {
		if p < 0 || p > maxReasonablePeriod {
			return fmt.Errorf("%s: period %d out of range [0, %d]", def.Name, p, maxReasonablePeriod)
		}
	}
	if _, err := def.Lookback(j.Params); err != nil {
		return fmt.Errorf("%s: %w", def.Name, err)
	}
	return nil
}

// LoadFromFile reads a YAML or JSON configuration. Files ending in .json are
// decoded as JSON, anything else as YAML. Logging and output settings missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	cfg.Indicators = nil
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveToFile writes the configuration as YAML (or JSON for a .json path).
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ApplyEnv loads envFile (if it exists) into the environment and applies
// GOKAND_LOG_LEVEL, GOKAND_LOG_FORMAT and GOKAND_PRECISION overrides.
// Variables already set in the environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvPrefix + "PRECISION"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sPRECISION: %w", EnvPrefix, err)
		}
		c.Output.Precision = p
	}
	return nil
}
