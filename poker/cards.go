package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Ranks, lowest first. Rank values double as tiebreak values in HandScore.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits. Suits carry no ranking weight.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

var (
	// ErrInvalidCard is returned for malformed card tokens.
	ErrInvalidCard = errors.New("invalid card")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Card is a single playing card encoded as one bit of a 52-bit set.
// Bit index is suit*13 + rank.
type Card uint64

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return bits.OnesCount64(uint64(c)) == 1 && Hand(c)&FullDeckMask != 0
}

func (c Card) index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the rank, 0 (deuce) through 12 (ace).
func (c Card) Rank() uint8 {
	return uint8(c.index() % 13)
}

// Suit returns the suit, 0 (clubs) through 3 (spades).
func (c Card) Suit() uint8 {
	return uint8(c.index() / 13)
}

// String renders the card as rank+suit, e.g. "As".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// RankChar returns the single character used for a rank.
func RankChar(rank uint8) byte {
	if int(rank) >= len(rankChars) {
		return '?'
	}
	return rankChars[rank]
}

// ParseCard parses a two character token such as "As" or "td".
// Both rank and suit are case-insensitive.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q must be 2 characters", ErrInvalidCard, s)
	}
	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("%w: %q has unknown rank", ErrInvalidCard, s)
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("%w: %q has unknown suit", ErrInvalidCard, s)
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// MustParseCard is ParseCard for static inputs; it panics on error.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a run of card tokens, either concatenated ("AsKd")
// or separated by whitespace ("As Kd").
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %q has an odd number of characters", ErrInvalidCard, s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for static inputs; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// Hand is a set of cards stored as a bitset.
type Hand uint64

// FullDeckMask has all 52 card bits set.
const FullDeckMask Hand = (1 << 52) - 1

// NewHand builds a set from cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard inserts a card into the set.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// RemoveCard deletes a card from the set.
func (h *Hand) RemoveCard(c Card) {
	*h &^= Hand(c)
}

// HasCard reports whether the card is in the set.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the set.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns a 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((uint64(h) >> (uint(suit) * 13)) & 0x1FFF)
}

// Remaining returns every card of the full deck not in h.
func (h Hand) Remaining() Hand {
	return FullDeckMask &^ h
}

// Cards lists the set in ascending bit order (clubs first, deuce first).
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.CountCards())
	for v := uint64(h & FullDeckMask); v != 0; v &= v - 1 {
		out = append(out, Card(v&-v))
	}
	return out
}

// String renders the set as space separated cards.
func (h Hand) String() string {
	return FormatCards(h.Cards())
}

// FormatCards joins cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// FullDeck returns all 52 cards, suit-major then rank ascending.
func FullDeck() []Card {
	return FullDeckMask.Cards()
}

// DisjointHand builds a set from cards, failing if any card is invalid or
// repeats.
func DisjointHand(cards ...Card) (Hand, error) {
	var h Hand
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %#x", ErrInvalidCard, uint64(c))
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		h.AddCard(c)
	}
	return h, nil
}
