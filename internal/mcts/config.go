package mcts

import (
	"errors"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-mcts/internal/deal"
)

// DefaultIterations is the number of simulations run when none is given.
const DefaultIterations = 1000

// DefaultExploration is the UCB1 exploration constant, √2.
var DefaultExploration = math.Sqrt2

// Config controls a search.
type Config struct {
	// Iterations is the total number of select/expand/rollout/backpropagate
	// rounds, summed over all workers.
	Iterations int

	// Exploration is the UCB1 constant c. Zero means DefaultExploration.
	Exploration float64

	// SampleLimit caps the actions sampled at each node. Zero means
	// deal.DefaultSampleLimit.
	SampleLimit int

	// Workers shards iterations across private trees. Zero means one.
	Workers int

	// Seed drives every random choice. Zero picks a time-based seed.
	Seed int64

	Logger *log.Logger
	Clock  quartz.Clock
}

// DefaultConfig returns the reference single-threaded configuration.
func DefaultConfig() Config {
	return Config{
		Iterations:  DefaultIterations,
		Exploration: DefaultExploration,
		SampleLimit: deal.DefaultSampleLimit,
		Workers:     1,
	}
}

// Validate rejects configurations that cannot run.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("iterations must be > 0")
	}
	if c.Exploration < 0 || math.IsNaN(c.Exploration) || math.IsInf(c.Exploration, 0) {
		return errors.New("exploration must be a finite value >= 0")
	}
	if c.SampleLimit < 0 {
		return errors.New("sample limit must be >= 0")
	}
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Exploration == 0 {
		c.Exploration = DefaultExploration
	}
	if c.SampleLimit == 0 {
		c.SampleLimit = deal.DefaultSampleLimit
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Workers > c.Iterations {
		c.Workers = c.Iterations
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	return c
}
