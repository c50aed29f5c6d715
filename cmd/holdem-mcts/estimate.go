package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lox/holdem-mcts/equity"
	"github.com/lox/holdem-mcts/internal/config"
	"github.com/lox/holdem-mcts/poker"
)

// EstimateCmd runs one search. Zero-valued flags fall back to the config
// file, which falls back to built-in defaults.
type EstimateCmd struct {
	Hole1 string `arg:"" help:"First hole card (e.g. As)"`
	Hole2 string `arg:"" help:"Second hole card (e.g. Ks)"`

	Simulations int    `short:"n" env:"HOLDEM_MCTS_SIMULATIONS" help:"Number of MCTS iterations"`
	Board       string `short:"b" env:"HOLDEM_MCTS_BOARD" help:"Known community cards (e.g. 'Qh Jh 2c')"`
	Opponent    string `short:"o" env:"HOLDEM_MCTS_OPPONENT" help:"Known opponent hole cards (e.g. '2c2d')"`
	Seed        int64  `short:"s" env:"HOLDEM_MCTS_SEED" help:"Random seed for reproducible results (0 = time based)"`
	Workers     int    `short:"w" env:"HOLDEM_MCTS_WORKERS" help:"Parallel workers, each with its own tree"`
	Config      string `short:"c" env:"HOLDEM_MCTS_CONFIG" default:"holdem-mcts.hcl" help:"HCL config file"`
	LogLevel    string `env:"HOLDEM_MCTS_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	NoColor     bool   `env:"NO_COLOR" help:"Disable colored output"`
}

func (c *EstimateCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, os.Stdout, os.Stderr)
}

func (c *EstimateCmd) run(ctx context.Context, out, logOut io.Writer) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(logOut, cfg.Log.Level)
	if err != nil {
		return err
	}
	if c.NoColor {
		disableColor()
	}

	search := cfg.SearchConfig()
	q, err := equity.NewQuery(c.Hole1, c.Hole2, search.Iterations,
		equity.WithSeed(search.Seed),
		equity.WithWorkers(search.Workers),
		equity.WithExploration(search.Exploration),
		equity.WithSampleLimit(search.SampleLimit),
		equity.WithBoard(c.Board),
		equity.WithOpponent(c.Opponent),
		equity.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("Estimating equity",
		"hole", poker.FormatCards(q.Hero[:]),
		"simulations", search.Iterations,
		"workers", search.Workers)

	res, err := equity.Estimate(ctx, q)
	if err != nil {
		return err
	}
	render(out, q, res, c.NoColor)
	return nil
}

func (c *EstimateCmd) applyOverrides(cfg *config.Config) {
	if c.Simulations != 0 {
		cfg.Search.Simulations = c.Simulations
	}
	if c.Seed != 0 {
		cfg.Search.Seed = c.Seed
	}
	if c.Workers != 0 {
		cfg.Search.Workers = c.Workers
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
}

func render(w io.Writer, q equity.Query, res equity.Result, noColor bool) {
	hand := poker.NewStartingHand(q.Hero[0], q.Hero[1])
	lines := []string{
		row("hand", handStyle.Render(poker.FormatCards(q.Hero[:]))+"  "+
			categoryStyle.Render(fmt.Sprintf("%s, %s", hand, hand.Category()))),
	}
	if len(q.Board) > 0 {
		lines = append(lines, row("board", handStyle.Render(poker.FormatCards(q.Board))))
	}
	if len(q.Opponent) > 0 {
		lines = append(lines, row("opponent", handStyle.Render(poker.FormatCards(q.Opponent))))
	} else {
		lines = append(lines, row("opponent", mutedStyle.Render("random")))
	}

	bar := newEquityBar(noColor)
	lines = append(lines, row("equity",
		bar.ViewAs(res.Equity)+" "+equityStyle.Render(fmt.Sprintf("%.2f%%", res.Equity*100))))

	lo, hi := res.Rollouts.ConfidenceInterval95()
	lines = append(lines, row("rollouts", fmt.Sprintf("%d won, %d tied, %d lost  %s",
		res.Rollouts.Wins, res.Rollouts.Ties, res.Rollouts.Losses,
		mutedStyle.Render(fmt.Sprintf("95%% CI %.1f%% to %.1f%%", lo*100, hi*100)))))

	// The reference table only covers hands with nothing else known.
	if len(q.Board) == 0 && len(q.Opponent) == 0 {
		if pct, ok := equity.LookupPreflop(q.Hero[0], q.Hero[1]); ok {
			diff := res.Equity*100 - float64(pct)
			lines = append(lines, row("table",
				fmt.Sprintf("%d%%  %s", pct, mutedStyle.Render(fmt.Sprintf("(%+.1f)", diff)))))
		}
	}

	lines = append(lines, row("search", mutedStyle.Render(fmt.Sprintf(
		"%d simulations, %d nodes, depth %d, %d workers, seed %d, %s",
		res.Visits, res.Nodes, res.MaxDepth, res.Workers, res.Seed, res.Elapsed.Round(time.Microsecond)))))
	if res.Underflows > 0 {
		lines = append(lines, row("warning", warnStyle.Render(
			fmt.Sprintf("%d rollouts ran out of cards", res.Underflows))))
	}

	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
