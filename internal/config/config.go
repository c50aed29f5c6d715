// Package config loads search settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-mcts/internal/deal"
	"github.com/lox/holdem-mcts/internal/mcts"
)

// Config is the complete file configuration.
type Config struct {
	Search *SearchSettings `hcl:"search,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

// SearchSettings mirrors mcts.Config.
type SearchSettings struct {
	Simulations int     `hcl:"simulations,optional"`
	Exploration float64 `hcl:"exploration,optional"`
	SampleLimit int     `hcl:"sample_limit,optional"`
	Workers     int     `hcl:"workers,optional"`
	Seed        int64   `hcl:"seed,optional"`
}

// LogSettings controls the logger.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Search: &SearchSettings{
			Simulations: mcts.DefaultIterations,
			Exploration: mcts.DefaultExploration,
			SampleLimit: deal.DefaultSampleLimit,
			Workers:     1,
		},
		Log: &LogSettings{
			Level: "warn",
		},
	}
}

// Load reads filename. A missing file yields Default(); fields left out of
// the file take their default values.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Search == nil {
		c.Search = def.Search
	}
	if c.Search.Simulations == 0 {
		c.Search.Simulations = def.Search.Simulations
	}
	if c.Search.Exploration == 0 {
		c.Search.Exploration = def.Search.Exploration
	}
	if c.Search.SampleLimit == 0 {
		c.Search.SampleLimit = def.Search.SampleLimit
	}
	if c.Search.Workers == 0 {
		c.Search.Workers = def.Search.Workers
	}
	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks ranges and the log level.
func (c *Config) Validate() error {
	if c.Search == nil || c.Log == nil {
		return errors.New("search and log settings are required")
	}
	if c.Search.Simulations <= 0 {
		return fmt.Errorf("invalid simulations: %d", c.Search.Simulations)
	}
	if c.Search.Exploration <= 0 {
		return fmt.Errorf("invalid exploration: %g", c.Search.Exploration)
	}
	if c.Search.SampleLimit <= 0 {
		return fmt.Errorf("invalid sample_limit: %d", c.Search.SampleLimit)
	}
	if c.Search.Workers < 1 || c.Search.Workers > 256 {
		return fmt.Errorf("workers must be between 1 and 256, got %d", c.Search.Workers)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// SearchConfig converts the file settings into an engine configuration.
func (c *Config) SearchConfig() mcts.Config {
	return mcts.Config{
		Iterations:  c.Search.Simulations,
		Exploration: c.Search.Exploration,
		SampleLimit: c.Search.SampleLimit,
		Workers:     c.Search.Workers,
		Seed:        c.Search.Seed,
	}
}

// NewLogger builds a logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "holdem-mcts",
	}), nil
}
