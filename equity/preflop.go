package equity

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-mcts/poker"
)

// PreflopHand is one row of the reference table.
type PreflopHand struct {
	Hand    poker.StartingHand
	Percent int
}

// preflopPercent is heads-up equity against a random hand, in whole percent.
var preflopPercent = map[string]int{
	"AA": 86, "KK": 83, "QQ": 81, "JJ": 78, "TT": 76, "99": 73, "88": 70,
	"77": 67, "66": 64, "55": 61, "44": 58, "33": 55, "22": 51,

	"AKs": 68, "AQs": 67, "AJs": 67, "ATs": 66, "A9s": 64, "A8s": 64, "A7s": 63,
	"A6s": 62, "A5s": 62, "A4s": 61, "A3s": 60, "A2s": 59,
	"KQs": 65, "KJs": 64, "KTs": 63, "K9s": 61, "K8s": 60, "K7s": 59, "K6s": 59,
	"K5s": 58, "K4s": 57, "K3s": 56, "K2s": 55,
	"QJs": 62, "QTs": 61, "Q9s": 59, "Q8s": 58, "Q7s": 56, "Q6s": 56, "Q5s": 55,
	"Q4s": 54, "Q3s": 53, "Q2s": 52,
	"JTs": 59, "J9s": 57, "J8s": 56, "J7s": 54, "J6s": 53, "J5s": 52, "J4s": 51,
	"J3s": 50, "J2s": 49,
	"T9s": 56, "T8s": 54, "T7s": 53, "T6s": 51, "T5s": 49, "T4s": 49, "T3s": 48, "T2s": 47,
	"98s": 53, "97s": 51, "96s": 50, "95s": 48, "94s": 46, "93s": 46, "92s": 45,
	"87s": 50, "86s": 49, "85s": 47, "84s": 45, "83s": 43, "82s": 43,
	"76s": 48, "75s": 46, "74s": 44, "73s": 42, "72s": 40,
	"65s": 46, "64s": 44, "63s": 42, "62s": 40,
	"54s": 44, "53s": 42, "52s": 40,
	"43s": 41, "42s": 39,
	"32s": 38,

	"AKo": 67, "AQo": 66, "AJo": 65, "ATo": 65, "A9o": 63, "A8o": 62, "A7o": 61,
	"A6o": 60, "A5o": 60, "A4o": 59, "A3o": 58, "A2o": 57,
	"KQo": 63, "KJo": 62, "KTo": 62, "K9o": 60, "K8o": 58, "K7o": 57, "K6o": 56,
	"K5o": 56, "K4o": 55, "K3o": 54, "K2o": 53,
	"QJo": 60, "QTo": 59, "Q9o": 57, "Q8o": 56, "Q7o": 54, "Q6o": 53, "Q5o": 53,
	"Q4o": 52, "Q3o": 51, "Q2o": 50,
	"JTo": 57, "J9o": 55, "J8o": 54, "J7o": 52, "J6o": 50, "J5o": 50, "J4o": 49,
	"J3o": 48, "J2o": 47,
	"T9o": 54, "T8o": 52, "T7o": 50, "T6o": 49, "T5o": 47, "T4o": 46, "T3o": 45, "T2o": 44,
	"98o": 51, "97o": 49, "96o": 47, "95o": 46, "94o": 44, "93o": 43, "92o": 42,
	"87o": 48, "86o": 46, "85o": 44, "84o": 42, "83o": 40, "82o": 40,
	"76o": 45, "75o": 44, "74o": 42, "73o": 40, "72o": 38,
	"65o": 43, "64o": 41, "63o": 39, "62o": 37,
	"54o": 41, "53o": 39, "52o": 37,
	"43o": 38, "42o": 36,
	"32o": 35,
}

var preflopTable = buildPreflopTable()

func buildPreflopTable() map[poker.StartingHand]int {
	table := make(map[poker.StartingHand]int, len(preflopPercent))
	for notation, pct := range preflopPercent {
		hand, err := parseStartingHand(notation)
		if err != nil {
			panic(err)
		}
		table[hand] = pct
	}
	return table
}

// parseStartingHand reads "AKs", "72o" or "TT". Pairs are keyed as suited.
func parseStartingHand(s string) (poker.StartingHand, error) {
	if len(s) < 2 || len(s) > 3 {
		return poker.StartingHand{}, fmt.Errorf("bad starting hand %q", s)
	}
	// Borrow a suit so ParseCard can read the rank.
	hi, err := poker.ParseCard(s[0:1] + "c")
	if err != nil {
		return poker.StartingHand{}, fmt.Errorf("bad starting hand %q: %w", s, err)
	}
	lo, err := poker.ParseCard(s[1:2] + "d")
	if err != nil {
		return poker.StartingHand{}, fmt.Errorf("bad starting hand %q: %w", s, err)
	}
	hand := poker.StartingHand{High: hi.Rank(), Low: lo.Rank()}
	if hand.Low > hand.High {
		return poker.StartingHand{}, fmt.Errorf("bad starting hand %q: ranks out of order", s)
	}
	switch {
	case hand.Pair():
		if len(s) != 2 {
			return poker.StartingHand{}, fmt.Errorf("bad starting hand %q", s)
		}
		hand.Suited = true
	case len(s) == 3 && s[2] == 's':
		hand.Suited = true
	case len(s) == 3 && s[2] == 'o':
	default:
		return poker.StartingHand{}, fmt.Errorf("bad starting hand %q", s)
	}
	return hand, nil
}

// LookupPreflop returns the reference equity for two hole cards in whole
// percent. Card order does not matter.
func LookupPreflop(c1, c2 poker.Card) (int, bool) {
	hand := poker.NewStartingHand(c1, c2)
	if hand.Pair() {
		hand.Suited = true
	}
	pct, ok := preflopTable[hand]
	return pct, ok
}

// PreflopHands lists the reference table, strongest first. Hands with equal
// equity are ordered by notation.
func PreflopHands() []PreflopHand {
	hands := make([]PreflopHand, 0, len(preflopTable))
	for hand, pct := range preflopTable {
		hands = append(hands, PreflopHand{Hand: hand, Percent: pct})
	}
	sort.Slice(hands, func(i, j int) bool {
		if hands[i].Percent != hands[j].Percent {
			return hands[i].Percent > hands[j].Percent
		}
		return notationLess(hands[i].Hand, hands[j].Hand)
	})
	return hands
}

func notationLess(a, b poker.StartingHand) bool {
	if a.High != b.High {
		return a.High > b.High
	}
	if a.Low != b.Low {
		return a.Low > b.Low
	}
	return a.Suited && !b.Suited
}
