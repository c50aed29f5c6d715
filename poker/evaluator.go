package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var (
	// ErrInvalidHandSize is returned when an evaluator receives the wrong number of cards.
	ErrInvalidHandSize = errors.New("invalid hand size")
	// ErrInsufficientCards is returned when fewer than five cards are available.
	ErrInsufficientCards = errors.New("insufficient cards")
)

// HandCategory enumerates hand classes from weakest (1) to strongest (9).
type HandCategory uint8

const (
	HighCard HandCategory = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name.
func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// NoRank pads unused tiebreak slots. It sorts below every real rank.
const NoRank int8 = -1

// HandScore is a totally ordered hand strength: category first, then the
// tiebreak ranks in the order defined for that category.
type HandScore struct {
	Category HandCategory
	Tiebreak [5]int8
}

func newScore(cat HandCategory, ranks ...int8) HandScore {
	s := HandScore{Category: cat, Tiebreak: [5]int8{NoRank, NoRank, NoRank, NoRank, NoRank}}
	copy(s.Tiebreak[:], ranks)
	return s
}

// Compare returns 1 if s beats o, -1 if o beats s and 0 for a tie.
func (s HandScore) Compare(o HandScore) int {
	if s.Category != o.Category {
		if s.Category > o.Category {
			return 1
		}
		return -1
	}
	for i := range s.Tiebreak {
		if s.Tiebreak[i] != o.Tiebreak[i] {
			if s.Tiebreak[i] > o.Tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Beats reports whether s is strictly stronger than o.
func (s HandScore) Beats(o HandScore) bool {
	return s.Compare(o) > 0
}

// String describes the hand, e.g. "Straight Flush (5)" or "Two Pair (K Q 9)".
func (s HandScore) String() string {
	var parts []string
	for _, r := range s.Tiebreak {
		if r == NoRank {
			break
		}
		parts = append(parts, string(RankChar(uint8(r))))
	}
	return fmt.Sprintf("%s (%s)", s.Category, strings.Join(parts, " "))
}

// EvaluateFive scores exactly five distinct cards.
func EvaluateFive(cards []Card) (HandScore, error) {
	if len(cards) != 5 {
		return HandScore{}, fmt.Errorf("%w: need 5 cards, got %d", ErrInvalidHandSize, len(cards))
	}
	h, err := DisjointHand(cards...)
	if err != nil {
		return HandScore{}, err
	}
	return evaluateFive(h), nil
}

// BestOfSeven returns the best five-card score that can be built from the
// hole cards and board. Hole and board together must hold 5 to 7 cards.
func BestOfSeven(hole, board []Card) (HandScore, error) {
	n := len(hole) + len(board)
	if n < 5 {
		return HandScore{}, fmt.Errorf("%w: need at least 5 cards, got %d", ErrInsufficientCards, n)
	}
	if n > 7 {
		return HandScore{}, fmt.Errorf("%w: at most 7 cards, got %d", ErrInvalidHandSize, n)
	}
	all := make([]Card, 0, n)
	all = append(all, hole...)
	all = append(all, board...)
	if _, err := DisjointHand(all...); err != nil {
		return HandScore{}, err
	}
	return bestOf(all), nil
}

// ScoreSeven is the unchecked seven card path used by simulations.
// The cards must be distinct.
func ScoreSeven(cards [7]Card) HandScore {
	return bestOf(cards[:])
}

// bestOf enumerates every 5-card subset of 5..7 cards and keeps the maximum.
func bestOf(cards []Card) HandScore {
	n := uint(len(cards))
	var best HandScore
	for pick := uint(0); pick < 1<<n; pick++ {
		if bits.OnesCount(pick) != 5 {
			continue
		}
		var h Hand
		for i := uint(0); i < n; i++ {
			if pick&(1<<i) != 0 {
				h |= Hand(cards[i])
			}
		}
		if score := evaluateFive(h); score.Compare(best) > 0 {
			best = score
		}
	}
	return best
}

// evaluateFive classifies a five card set. Checks run in strict priority
// order and each branch is terminal.
func evaluateFive(h Hand) HandScore {
	var counts [13]uint8
	var rankMask uint16
	flush := false
	for suit := uint8(0); suit < 4; suit++ {
		mask := h.GetSuitMask(suit)
		if bits.OnesCount16(mask) == 5 {
			flush = true
		}
		rankMask |= mask
		for m := mask; m != 0; m &= m - 1 {
			counts[bits.TrailingZeros16(m)]++
		}
	}

	var quads, trips, pairs, singles uint16
	for r, n := range counts {
		switch n {
		case 4:
			quads |= 1 << r
		case 3:
			trips |= 1 << r
		case 2:
			pairs |= 1 << r
		case 1:
			singles |= 1 << r
		}
	}

	straightHigh, straight := checkStraight(rankMask)

	switch {
	case straight && flush:
		return newScore(StraightFlush, straightHigh)
	case quads != 0:
		return newScore(FourOfAKind, highestRank(quads), highestRank(singles))
	case trips != 0 && pairs != 0:
		return newScore(FullHouse, highestRank(trips), highestRank(pairs))
	case flush:
		return newScore(Flush, ranksDesc(rankMask)...)
	case straight:
		return newScore(Straight, straightHigh)
	case trips != 0:
		return newScore(ThreeOfAKind, append([]int8{highestRank(trips)}, ranksDesc(singles)...)...)
	case bits.OnesCount16(pairs) == 2:
		return newScore(TwoPair, append(ranksDesc(pairs), highestRank(singles))...)
	case pairs != 0:
		return newScore(Pair, append([]int8{highestRank(pairs)}, ranksDesc(singles)...)...)
	default:
		return newScore(HighCard, ranksDesc(rankMask)...)
	}
}

// checkStraight reports a straight among exactly five distinct ranks and its
// high rank. The wheel (A-2-3-4-5) reports Five as its high card.
func checkStraight(mask uint16) (int8, bool) {
	const wheelMask = 0x100F // Ace + 2-3-4-5
	if bits.OnesCount16(mask) != 5 {
		return NoRank, false
	}
	if mask == wheelMask {
		return int8(Five), true
	}
	low := bits.TrailingZeros16(mask)
	if mask>>low == 0x1F {
		return int8(low + 4), true
	}
	return NoRank, false
}

// highestRank returns the highest rank present in the bitmask (or NoRank when empty).
func highestRank(mask uint16) int8 {
	if mask == 0 {
		return NoRank
	}
	return int8(bits.Len16(mask) - 1)
}

// ranksDesc lists the ranks in mask from highest to lowest.
func ranksDesc(mask uint16) []int8 {
	out := make([]int8, 0, bits.OnesCount16(mask))
	for mask != 0 {
		top := highestRank(mask)
		out = append(out, top)
		mask &^= 1 << top
	}
	return out
}
