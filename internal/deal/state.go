// Package deal models the chance nodes of a heads-up deal: which cards are
// known (hero, opponent, board) and which remain in the deck.
package deal

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/holdem-mcts/poker"
)

// DefaultSampleLimit caps how many next deals a state exposes.
const DefaultSampleLimit = 1000

var (
	// ErrInvalidBoard is returned for boards that are not 0, 3, 4 or 5 cards.
	ErrInvalidBoard = errors.New("invalid board size")
	// ErrInvalidOpponent is returned when the opponent hand is not 0 or 2 cards.
	ErrInvalidOpponent = errors.New("invalid opponent hand size")
)

// Stage is the next thing to be dealt.
type Stage uint8

const (
	StageOpponent Stage = iota // opponent hole cards unknown
	StageFlop                  // opponent known, board empty
	StageTurn                  // flop dealt
	StageRiver                 // turn dealt
	StageComplete              // board has 5 cards, nothing left to deal
)

func (s Stage) String() string {
	switch s {
	case StageOpponent:
		return "opponent"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Draw is how many cards one action deals at this stage.
func (s Stage) Draw() int {
	switch s {
	case StageOpponent:
		return 2
	case StageFlop:
		return 3
	case StageTurn, StageRiver:
		return 1
	default:
		return 0
	}
}

// Action is one possible deal: up to three cards.
type Action struct {
	Cards [3]poker.Card
	N     int
}

// Slice returns the dealt cards.
func (a Action) Slice() []poker.Card {
	return a.Cards[:a.N]
}

func (a Action) String() string {
	return poker.FormatCards(a.Slice())
}

// State is an immutable snapshot of a deal. Hero, opponent, board and deck
// are pairwise disjoint and together make up the full 52-card deck.
type State struct {
	hero        [2]poker.Card
	opponent    [2]poker.Card
	hasOpponent bool
	board       [5]poker.Card
	boardLen    int
	deck        poker.Hand
}

// NewState builds a state from known cards. The opponent hand may be empty
// or two cards; the board may hold 0, 3, 4 or 5 cards. The deck is always
// derived as the complement of the cards in play.
func NewState(hero [2]poker.Card, opponent, board []poker.Card) (State, error) {
	var s State
	s.hero = hero

	switch len(opponent) {
	case 0:
	case 2:
		s.hasOpponent = true
		copy(s.opponent[:], opponent)
	default:
		return State{}, fmt.Errorf("%w: %d cards", ErrInvalidOpponent, len(opponent))
	}

	switch len(board) {
	case 0, 3, 4, 5:
		s.boardLen = copy(s.board[:], board)
	default:
		return State{}, fmt.Errorf("%w: %d cards", ErrInvalidBoard, len(board))
	}

	all := append([]poker.Card{hero[0], hero[1]}, opponent...)
	all = append(all, board...)
	inPlay, err := poker.DisjointHand(all...)
	if err != nil {
		return State{}, err
	}
	s.deck = inPlay.Remaining()
	return s, nil
}

// Hero returns the hero's hole cards.
func (s State) Hero() [2]poker.Card { return s.hero }

// Opponent returns the opponent hole cards and whether they are known.
func (s State) Opponent() ([2]poker.Card, bool) { return s.opponent, s.hasOpponent }

// Board returns a copy of the community cards dealt so far.
func (s State) Board() []poker.Card {
	return append([]poker.Card(nil), s.board[:s.boardLen]...)
}

// Deck returns the cards not yet in play.
func (s State) Deck() poker.Hand { return s.deck }

// InPlay returns every card that has been dealt.
func (s State) InPlay() poker.Hand { return s.deck.Remaining() }

// Stage reports what the next action deals.
func (s State) Stage() Stage {
	if !s.hasOpponent {
		return StageOpponent
	}
	switch s.boardLen {
	case 0:
		return StageFlop
	case 3:
		return StageTurn
	case 4:
		return StageRiver
	default:
		return StageComplete
	}
}

// Terminal reports whether nothing is left to deal.
func (s State) Terminal() bool {
	return s.Stage() == StageComplete
}

// ActionSpace is the number of distinct actions available before sampling.
func (s State) ActionSpace() int {
	return binomial(s.deck.CountCards(), s.Stage().Draw())
}

// LegalActions samples at most limit distinct next deals uniformly without
// replacement. When the space is no larger than limit it is returned whole.
// A complete board, or too few cards in the deck, yields no actions.
func (s State) LegalActions(rng *rand.Rand, limit int) []Action {
	k := s.Stage().Draw()
	n := s.deck.CountCards()
	if k == 0 || n < k {
		return nil
	}

	cards := s.deck.Cards()
	ranks := sampleRanks(binomial(n, k), limit, rng)
	actions := make([]Action, len(ranks))
	idx := make([]int, k)
	for i, r := range ranks {
		unrank(r, n, k, idx)
		actions[i].N = k
		for j, c := range idx {
			actions[i].Cards[j] = cards[c]
		}
	}
	return actions
}

// Apply returns the state after dealing the action. The receiver is never
// modified. It panics if the action does not fit the stage or deals a card
// that is not in the deck.
func (s State) Apply(a Action) State {
	stage := s.Stage()
	if a.N != stage.Draw() || a.N == 0 {
		panic(fmt.Sprintf("deal: %d card action at stage %s", a.N, stage))
	}

	next := s
	for _, c := range a.Slice() {
		if !next.deck.HasCard(c) {
			panic(fmt.Sprintf("deal: card %s is not in the deck", c))
		}
		next.deck.RemoveCard(c)
	}

	if stage == StageOpponent {
		next.opponent = [2]poker.Card{a.Cards[0], a.Cards[1]}
		next.hasOpponent = true
		return next
	}
	next.boardLen += copy(next.board[next.boardLen:], a.Slice())
	return next
}

// Complete deals the rest of the hand at random: the opponent's hole cards
// if unknown, then the board up to five cards. ok is false if the deck runs
// out first.
func (s State) Complete(rng *rand.Rand) (opponent [2]poker.Card, board [5]poker.Card, ok bool) {
	deck := poker.NewDeckFrom(s.deck, rng)

	opponent = s.opponent
	if !s.hasOpponent {
		dealt := deck.Deal(2)
		if dealt == nil {
			return opponent, board, false
		}
		copy(opponent[:], dealt)
	}

	copy(board[:], s.board[:s.boardLen])
	for i := s.boardLen; i < len(board); i++ {
		c, more := deck.DealOne()
		if !more {
			return opponent, board, false
		}
		board[i] = c
	}
	return opponent, board, true
}

func (s State) String() string {
	var b strings.Builder
	b.WriteString("hero=")
	b.WriteString(poker.FormatCards(s.hero[:]))
	b.WriteString(" opponent=")
	if s.hasOpponent {
		b.WriteString(poker.FormatCards(s.opponent[:]))
	} else {
		b.WriteString("?")
	}
	b.WriteString(" board=")
	b.WriteString(poker.FormatCards(s.board[:s.boardLen]))
	fmt.Fprintf(&b, " deck=%d", s.deck.CountCards())
	return b.String()
}
