package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-mcts/internal/mcts"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem-mcts.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
search {
  simulations  = 5000
  exploration  = 1.1
  sample_limit = 250
  workers      = 4
  seed         = 99
}

log {
  level = "debug"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, mcts.Config{
		Iterations:  5000,
		Exploration: 1.1,
		SampleLimit: 250,
		Workers:     4,
		Seed:        99,
	}, cfg.SearchConfig())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
search {
  simulations = 300
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	def := Default()
	assert.Equal(t, 300, cfg.Search.Simulations)
	assert.Equal(t, def.Search.Exploration, cfg.Search.Exploration)
	assert.Equal(t, def.Search.SampleLimit, cfg.Search.SampleLimit)
	assert.Equal(t, 1, cfg.Search.Workers)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `search {`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `search { simulations = "lots" }`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `engine { depth = 3 }`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative simulations", func(c *Config) { c.Search.Simulations = -1 }},
		{"negative exploration", func(c *Config) { c.Search.Exploration = -0.5 }},
		{"negative sample limit", func(c *Config) { c.Search.SampleLimit = -3 }},
		{"too many workers", func(c *Config) { c.Search.Workers = 1000 }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"missing block", func(c *Config) { c.Log = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "Info")
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")

	_, err = NewLogger(&buf, "chatty")
	assert.Error(t, err)
}
