package mcts

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-mcts/internal/deal"
	"github.com/lox/holdem-mcts/internal/randutil"
	"github.com/lox/holdem-mcts/internal/statistics"
)

// Result summarises a finished search. With several workers the counters
// are sums over the private trees and MaxDepth is the deepest of them.
type Result struct {
	Equity     float64
	Visits     int
	Payoff     float64
	Nodes      int
	MaxDepth   int
	Workers    int
	Seed       int64
	Elapsed    time.Duration
	Underflows int
	Rollouts   statistics.Rollouts
}

// Search runs cfg.Iterations rounds of MCTS from root and returns the hero's
// estimated equity. It stops early with ctx.Err() if ctx is cancelled.
func Search(ctx context.Context, root deal.State, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	cfg = cfg.withDefaults()
	seed := randutil.Seed(cfg.Seed)

	cfg.Logger.Debug("Starting search",
		"state", root.String(),
		"iterations", cfg.Iterations,
		"workers", cfg.Workers,
		"seed", seed)

	start := cfg.Clock.Now()
	var (
		res Result
		err error
	)
	if cfg.Workers == 1 {
		res, err = searchSingle(ctx, root, cfg, seed)
	} else {
		res, err = searchParallel(ctx, root, cfg, seed)
	}
	if err != nil {
		return Result{}, err
	}
	res.Seed = seed
	res.Elapsed = cfg.Clock.Since(start)

	cfg.Logger.Debug("Search complete",
		"equity", fmt.Sprintf("%.4f", res.Equity),
		"visits", res.Visits,
		"nodes", res.Nodes,
		"max_depth", res.MaxDepth,
		"elapsed", res.Elapsed)
	if res.Underflows > 0 {
		cfg.Logger.Warn("Rollouts ran out of cards", "count", res.Underflows)
	}
	return res, nil
}

func searchSingle(ctx context.Context, root deal.State, cfg Config, seed int64) (Result, error) {
	tree := NewTree(root, randutil.New(seed), cfg.Exploration, cfg.SampleLimit, cfg.Logger)
	if err := run(ctx, tree, cfg.Iterations); err != nil {
		return Result{}, err
	}
	return summarise(tree), nil
}

func searchParallel(ctx context.Context, root deal.State, cfg Config, seed int64) (Result, error) {
	perWorker := cfg.Iterations / cfg.Workers
	remainder := cfg.Iterations % cfg.Workers

	trees := make([]*Tree, cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		iterations := perWorker
		if w < remainder {
			iterations++
		}
		g.Go(func() error {
			tree := NewTree(root, randutil.Stream(seed, w), cfg.Exploration, cfg.SampleLimit, cfg.Logger)
			if err := run(gctx, tree, iterations); err != nil {
				return err
			}
			trees[w] = tree
			cfg.Logger.Debug("Worker finished",
				"worker", w,
				"iterations", iterations,
				"equity", fmt.Sprintf("%.4f", tree.Equity()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return merge(trees), nil
}

func run(ctx context.Context, tree *Tree, iterations int) error {
	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		tree.Iterate()
	}
	return nil
}

func summarise(tree *Tree) Result {
	return merge([]*Tree{tree})
}

// merge sums root statistics across trees.
func merge(trees []*Tree) Result {
	res := Result{Workers: len(trees)}
	for _, t := range trees {
		visits, payoff := t.Root()
		res.Visits += visits
		res.Payoff += payoff
		res.Nodes += t.Len()
		res.Rollouts.Merge(t.Rollouts())
		if d := t.MaxDepth(); d > res.MaxDepth {
			res.MaxDepth = d
		}
	}
	res.Underflows = res.Rollouts.Underflows
	if res.Visits > 0 {
		res.Equity = res.Payoff / float64(res.Visits)
	}
	return res
}
