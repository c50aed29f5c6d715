package poker

import (
	rand "math/rand/v2"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvaluate(t *testing.T, cards string) HandScore {
	t.Helper()
	score, err := EvaluateFive(MustParseCards(cards))
	require.NoError(t, err, cards)
	return score
}

func TestEvaluateFiveCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		category HandCategory
		tiebreak []uint8
	}{
		{"royal flush", "AsKsQsJsTs", StraightFlush, []uint8{Ace}},
		{"steel wheel", "Ac2c3c4c5c", StraightFlush, []uint8{Five}},
		{"quad deuces", "2c2d2h2s3c", FourOfAKind, []uint8{Two, Three}},
		{"quads kicker above", "9c9d9h9sAd", FourOfAKind, []uint8{Nine, Ace}},
		{"full house", "KcKdKh4s4c", FullHouse, []uint8{King, Four}},
		{"full house low trips", "4c4d4hKsKc", FullHouse, []uint8{Four, King}},
		{"flush", "Ah9h7h4h2h", Flush, []uint8{Ace, Nine, Seven, Four, Two}},
		{"broadway", "AcKdQhJsTc", Straight, []uint8{Ace}},
		{"wheel", "Ad2c3h4s5c", Straight, []uint8{Five}},
		{"six high straight", "2c3d4h5s6c", Straight, []uint8{Six}},
		{"trips", "7c7d7hKs2c", ThreeOfAKind, []uint8{Seven, King, Two}},
		{"two pair", "JcJd4h4sAc", TwoPair, []uint8{Jack, Four, Ace}},
		{"two pair kicker between", "9c9d2h2s5c", TwoPair, []uint8{Nine, Two, Five}},
		{"pair", "QcQd9h5s3c", Pair, []uint8{Queen, Nine, Five, Three}},
		{"high card", "Kc9d7h5s3c", HighCard, []uint8{King, Nine, Seven, Five, Three}},
		{"almost wheel", "Ac2d3h4s6c", HighCard, []uint8{Ace, Six, Four, Three, Two}},
		{"wrap is not straight", "QcKdAh2s3c", HighCard, []uint8{Ace, King, Queen, Three, Two}},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			score := mustEvaluate(t, tc.cards)
			assert.Equal(t, tc.category, score.Category)

			want := [5]int8{NoRank, NoRank, NoRank, NoRank, NoRank}
			for i, r := range tc.tiebreak {
				want[i] = int8(r)
			}
			assert.Equal(t, want, score.Tiebreak)
		})
	}
}

func TestEvaluateFiveErrors(t *testing.T) {
	t.Parallel()
	_, err := EvaluateFive(MustParseCards("AsKsQsJs"))
	assert.ErrorIs(t, err, ErrInvalidHandSize)

	_, err = EvaluateFive(MustParseCards("AsKsQsJsTs9s"))
	assert.ErrorIs(t, err, ErrInvalidHandSize)

	_, err = EvaluateFive(MustParseCards("AsAsQsJsTs"))
	assert.ErrorIs(t, err, ErrDuplicateCard)
}

func TestWheelRanksBelowSixHighStraightFlush(t *testing.T) {
	t.Parallel()
	wheel := mustEvaluate(t, "Ac2c3c4c5c")
	sixHigh := mustEvaluate(t, "6c5c4c3c2c")
	require.Equal(t, StraightFlush, wheel.Category)
	require.Equal(t, StraightFlush, sixHigh.Category)
	assert.Equal(t, -1, wheel.Compare(sixHigh))
	assert.True(t, sixHigh.Beats(wheel))
}

// Weakest hand of each category against the strongest of the category below.
func TestCategoryMonotonicity(t *testing.T) {
	t.Parallel()
	ladder := []struct {
		weakest   string
		strongest string
	}{
		{"Ac2c3c4c5c", "AcAdAhAsKc"}, // straight flush vs quads
		{"2c2d2h2s3c", "AcAdAhKsKc"}, // quads vs full house
		{"2c2d2h3s3c", "AsKsQsJs9s"}, // full house vs flush
		{"7c5c4c3c2c", "AcKdQhJsTc"}, // flush vs straight
		{"Ad2c3h4s5c", "AcAdAhKsQc"}, // straight vs trips
		{"2c2d2h4s3c", "AcAdKhKsQc"}, // trips vs two pair
		{"3c3d2h2s4c", "AcAdKhQsJc"}, // two pair vs pair
		{"2c2d5h4s3c", "AcKdQhJs9c"}, // pair vs high card
	}
	for _, step := range ladder {
		weak := mustEvaluate(t, step.weakest)
		strong := mustEvaluate(t, step.strongest)
		require.Equal(t, strong.Category+1, weak.Category, "%s vs %s", step.weakest, step.strongest)
		assert.True(t, weak.Beats(strong), "%s should beat %s", step.weakest, step.strongest)
	}
}

func TestTiebreakOrdering(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		better string
		worse  string
	}{
		{"quad kicker", "9c9d9h9sAd", "9c9d9h9sKd"},
		{"full house trips first", "3c3d3hAsAc", "2c2d2hAsAc"},
		{"flush last kicker", "Ah9h7h4h3h", "Ac9c7c4c2c"},
		{"two pair kicker", "JcJd4h4sAc", "JhJs4c4dKc"},
		{"two pair low pair", "JcJd5h5s2c", "JhJs4c4dAc"},
		{"pair kicker", "QcQd9h5s4c", "QhQs9c5d3c"},
		{"high card second rank", "AcQd7h5s3c", "AdJh9c8s7d"},
	}
	for _, tc := range tests {
		better := mustEvaluate(t, tc.better)
		worse := mustEvaluate(t, tc.worse)
		assert.Equal(t, 1, better.Compare(worse), tc.name)
		assert.Equal(t, -1, worse.Compare(better), tc.name)
	}

	split := mustEvaluate(t, "AcKdQhJs9c")
	assert.Equal(t, 0, split.Compare(mustEvaluate(t, "AdKhQsJc9d")), "suits never break ties")
}

func TestEvaluateFiveOrderInvariant(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		cards := NewDeck(rng).Deal(5)
		hand := append([]Card(nil), cards...)
		want, err := EvaluateFive(hand)
		require.NoError(t, err)
		for j := 0; j < 5; j++ {
			rng.Shuffle(len(hand), func(a, b int) { hand[a], hand[b] = hand[b], hand[a] })
			got, err := EvaluateFive(hand)
			require.NoError(t, err)
			require.Equal(t, want, got, FormatCards(hand))
		}
	}
}

func bruteForceBest(t *testing.T, cards []Card) HandScore {
	t.Helper()
	var best HandScore
	first := true
	for a := 0; a < len(cards); a++ {
		for b := a + 1; b < len(cards); b++ {
			five := make([]Card, 0, 5)
			for i, c := range cards {
				if i != a && i != b {
					five = append(five, c)
				}
			}
			score, err := EvaluateFive(five)
			require.NoError(t, err)
			if first || score.Beats(best) {
				best = score
				first = false
			}
		}
	}
	return best
}

func TestBestOfSeven(t *testing.T) {
	t.Parallel()
	hole := MustParseCards("AhKh")
	board := MustParseCards("QhJh2c3d9s")

	got, err := BestOfSeven(hole, board)
	require.NoError(t, err)
	assert.Equal(t, bruteForceBest(t, append(append([]Card{}, hole...), board...)), got)
	assert.NotEqual(t, Flush, got.Category, "only four hearts are present")
	assert.Equal(t, HighCard, got.Category)
	assert.Equal(t, [5]int8{int8(Ace), int8(King), int8(Queen), int8(Jack), int8(Nine)}, got.Tiebreak)
}

func TestBestOfSevenPicksBestSubset(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hole, board string
		category    HandCategory
		tiebreak0   uint8
	}{
		{"AhKh", "QhJhTh2c3d", StraightFlush, Ace},
		{"2c3d", "4h5sAc9d9h", Straight, Five},
		{"9c9d", "9h9sAcKdQh", FourOfAKind, Nine},
		{"AcAd", "KcKdKh2s2c", FullHouse, King},
		{"7h2h", "Ah9h4h3c5h", Flush, Ace},
		{"6c7d", "8h9sTcJdQh", Straight, Queen},
	}
	for _, tc := range tests {
		got, err := BestOfSeven(MustParseCards(tc.hole), MustParseCards(tc.board))
		require.NoError(t, err)
		assert.Equal(t, tc.category, got.Category, "%s + %s", tc.hole, tc.board)
		assert.Equal(t, int8(tc.tiebreak0), got.Tiebreak[0], "%s + %s", tc.hole, tc.board)
	}
}

func TestBestOfSevenArity(t *testing.T) {
	t.Parallel()
	_, err := BestOfSeven(MustParseCards("AhKh"), MustParseCards("QhJh"))
	assert.ErrorIs(t, err, ErrInsufficientCards)

	_, err = BestOfSeven(MustParseCards("AhKh"), MustParseCards("QhJhTh9h8h7h"))
	assert.ErrorIs(t, err, ErrInvalidHandSize)

	_, err = BestOfSeven(MustParseCards("AhKh"), MustParseCards("AhJhTh"))
	assert.ErrorIs(t, err, ErrDuplicateCard)

	// Flop only: five cards is exactly one subset
	got, err := BestOfSeven(MustParseCards("AhKh"), MustParseCards("QhJhTh"))
	require.NoError(t, err)
	assert.Equal(t, StraightFlush, got.Category)
}

func TestScoreSevenMatchesBruteForce(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 300; i++ {
		var seven [7]Card
		copy(seven[:], NewDeck(rng).Deal(7))
		assert.Equal(t, bruteForceBest(t, seven[:]), ScoreSeven(seven), FormatCards(seven[:]))
	}
}

func toOracle(t *testing.T, c Card) ph.Card {
	t.Helper()
	suits := [4]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}
	// The oracle numbers ranks 1..13 with the ace as 1.
	rank := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		rank = ph.Rank(1)
	}
	out, err := ph.MakeCard(suits[c.Suit()], rank)
	require.NoError(t, err)
	return out
}

func oracleEval(t *testing.T, cards []Card) int16 {
	t.Helper()
	var five [5]ph.Card
	for i, c := range cards {
		five[i] = toOracle(t, c)
	}
	return ph.Eval5(&five)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Cross-checks pairwise ordering against an independent evaluator.
func TestEvaluateFiveAgreesWithOracle(t *testing.T) {
	t.Parallel()

	// Calibrate which direction the oracle treats as stronger.
	royal := oracleEval(t, MustParseCards("AsKsQsJsTs"))
	junk := oracleEval(t, MustParseCards("7c5d4h3s2c"))
	require.NotEqual(t, royal, junk)
	direction := 1
	if royal < junk {
		direction = -1
	}

	rng := rand.New(rand.NewPCG(2024, 10))
	for i := 0; i < 2000; i++ {
		deck := NewDeck(rng)
		a := append([]Card(nil), deck.Deal(5)...)
		b := append([]Card(nil), deck.Deal(5)...)

		sa, err := EvaluateFive(a)
		require.NoError(t, err)
		sb, err := EvaluateFive(b)
		require.NoError(t, err)

		want := direction * sign(int(oracleEval(t, a))-int(oracleEval(t, b)))
		require.Equal(t, want, sa.Compare(sb), "%s vs %s", FormatCards(a), FormatCards(b))
	}
}

func TestHandScoreString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Straight Flush (5)", mustEvaluate(t, "Ac2c3c4c5c").String())
	assert.Equal(t, "Two Pair (J 4 A)", mustEvaluate(t, "JcJd4h4sAc").String())
	assert.Equal(t, "Unknown", HandCategory(0).String())
}

func BenchmarkScoreSeven(b *testing.B) {
	rng := rand.New(rand.NewPCG(42, 42))
	hands := make([][7]Card, 256)
	for i := range hands {
		copy(hands[i][:], NewDeck(rng).Deal(7))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ScoreSeven(hands[i%len(hands)])
	}
}
