package poker

// HoleCardCategory represents the strength category of hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
)

// StartingHand is the suit-independent shape of two hole cards, such as
// "AKs" or "72o". High >= Low always holds.
type StartingHand struct {
	High   uint8
	Low    uint8
	Suited bool
}

// NewStartingHand normalises two hole cards into a StartingHand.
func NewStartingHand(c1, c2 Card) StartingHand {
	high, low := c1.Rank(), c2.Rank()
	if low > high {
		high, low = low, high
	}
	return StartingHand{High: high, Low: low, Suited: c1.Suit() == c2.Suit()}
}

// Pair reports whether both cards share a rank.
func (s StartingHand) Pair() bool {
	return s.High == s.Low
}

// String returns the conventional notation: "AA", "AKs", "72o".
func (s StartingHand) String() string {
	out := []byte{RankChar(s.High), RankChar(s.Low)}
	switch {
	case s.Pair():
	case s.Suited:
		out = append(out, 's')
	default:
		out = append(out, 'o')
	}
	return string(out)
}

// Category provides a simple preflop hand categorization.
// Premium (JJ+, AK), Strong (TT, AQ/AJ), Medium (77-99, suited broadway),
// Weak (small pairs, suited connectors), Trash (everything else).
func (s StartingHand) Category() HoleCardCategory {
	switch {
	case s.Pair() && s.High >= Jack:
		return CategoryPremium
	case s.High == Ace && s.Low == King:
		return CategoryPremium
	case s.Pair() && s.High == Ten:
		return CategoryStrong
	case s.High == Ace && (s.Low == Queen || s.Low == Jack):
		return CategoryStrong
	case s.Pair() && s.High >= Seven:
		return CategoryMedium
	case s.Suited && s.Low >= Ten:
		return CategoryMedium
	case s.Pair():
		return CategoryWeak
	case s.Suited && s.High-s.Low <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}

// CategorizeHoleCards buckets two hole cards into a HoleCardCategory.
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	return NewStartingHand(card1, card2).Category()
}
