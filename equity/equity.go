// Package equity estimates heads-up Texas Hold'em win probability with Monte
// Carlo Tree Search and exposes the underlying hand evaluator.
//
// Equity counts a win as 1 and a tie as one half, against a single opponent
// whose unknown hole cards are drawn uniformly from the remaining deck.
package equity

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-mcts/internal/deal"
	"github.com/lox/holdem-mcts/internal/mcts"
	"github.com/lox/holdem-mcts/poker"
)

var (
	ErrInvalidCard        = poker.ErrInvalidCard
	ErrDuplicateCard      = poker.ErrDuplicateCard
	ErrInvalidHandSize    = poker.ErrInvalidHandSize
	ErrInsufficientCards  = poker.ErrInsufficientCards
	ErrInvalidSimulations = errors.New("simulations must be positive")
)

// Result is the full outcome of a search.
type Result = mcts.Result

// EvaluateFive scores exactly five cards given as tokens such as "As".
func EvaluateFive(cards ...string) (poker.HandScore, error) {
	if len(cards) != 5 {
		return poker.HandScore{}, fmt.Errorf("%w: need 5 cards, got %d", ErrInvalidHandSize, len(cards))
	}
	parsed, err := parseTokens(cards)
	if err != nil {
		return poker.HandScore{}, err
	}
	return poker.EvaluateFive(parsed)
}

// BestOfSeven returns the best five-card score from hole and board tokens.
func BestOfSeven(hole, board []string) (poker.HandScore, error) {
	h, err := parseTokens(hole)
	if err != nil {
		return poker.HandScore{}, err
	}
	b, err := parseTokens(board)
	if err != nil {
		return poker.HandScore{}, err
	}
	return poker.BestOfSeven(h, b)
}

// Query describes one estimate. Opponent and Board may be empty.
type Query struct {
	Hero     [2]poker.Card
	Opponent []poker.Card
	Board    []poker.Card
	Search   mcts.Config
}

// Estimate runs the search for q and returns the full result.
func Estimate(ctx context.Context, q Query) (Result, error) {
	if q.Search.Iterations <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidSimulations, q.Search.Iterations)
	}
	root, err := deal.NewState(q.Hero, q.Opponent, q.Board)
	if err != nil {
		return Result{}, err
	}
	return mcts.Search(ctx, root, q.Search)
}

// EstimateWinProbability returns the hero's equity holding hole1 and hole2
// after the given number of simulations.
func EstimateWinProbability(ctx context.Context, hole1, hole2 string, simulations int, opts ...Option) (float64, error) {
	q, err := NewQuery(hole1, hole2, simulations, opts...)
	if err != nil {
		return 0, err
	}
	res, err := Estimate(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.Equity, nil
}

// NewQuery parses the hero's cards and applies opts.
func NewQuery(hole1, hole2 string, simulations int, opts ...Option) (Query, error) {
	o := options{search: mcts.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	o.search.Iterations = simulations

	c1, err := poker.ParseCard(hole1)
	if err != nil {
		return Query{}, err
	}
	c2, err := poker.ParseCard(hole2)
	if err != nil {
		return Query{}, err
	}
	if c1 == c2 {
		return Query{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c1)
	}
	if simulations <= 0 {
		return Query{}, fmt.Errorf("%w: %d", ErrInvalidSimulations, simulations)
	}

	q := Query{Hero: [2]poker.Card{c1, c2}, Search: o.search}
	if q.Board, err = poker.ParseCards(o.board); err != nil {
		return Query{}, fmt.Errorf("board: %w", err)
	}
	if q.Opponent, err = poker.ParseCards(o.opponent); err != nil {
		return Query{}, fmt.Errorf("opponent: %w", err)
	}
	return q, nil
}

func parseTokens(tokens []string) ([]poker.Card, error) {
	cards := make([]poker.Card, len(tokens))
	for i, s := range tokens {
		c, err := poker.ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}

// Option adjusts an estimate.
type Option func(*options)

type options struct {
	search   mcts.Config
	board    string
	opponent string
}

// WithSeed fixes the random seed so results are reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) { o.search.Seed = seed }
}

// WithWorkers shards the simulations over n private trees.
func WithWorkers(n int) Option {
	return func(o *options) { o.search.Workers = n }
}

// WithExploration sets the UCB1 exploration constant.
func WithExploration(c float64) Option {
	return func(o *options) { o.search.Exploration = c }
}

// WithSampleLimit caps how many deals each node samples.
func WithSampleLimit(n int) Option {
	return func(o *options) { o.search.SampleLimit = n }
}

// WithBoard starts from known community cards, e.g. "Qh Jh 2c".
func WithBoard(cards string) Option {
	return func(o *options) { o.board = cards }
}

// WithOpponent fixes the opponent's hole cards, e.g. "2c2d".
func WithOpponent(cards string) Option {
	return func(o *options) { o.opponent = cards }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.search.Logger = logger }
}

func WithClock(clock quartz.Clock) Option {
	return func(o *options) { o.search.Clock = clock }
}
