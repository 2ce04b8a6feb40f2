package evaluator

import (
	"testing"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func five(t *testing.T, s string) [5]deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	require.NoError(t, err)
	require.Len(t, cards, 5)
	var out [5]deck.Card
	copy(out[:], cards)
	return out
}

func TestScoreHandCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected Category
	}{
		{"royal flush", "AsKsQsJsTs", RoyalFlush},
		{"straight flush", "9h8h7h6h5h", StraightFlush},
		{"four of a kind", "AsAhAdAcKs", FourOfAKind},
		{"full house", "KsKhKd2c2s", FullHouse},
		{"flush", "As9s7s4s2s", Flush},
		{"straight", "9s8h7d6c5s", Straight},
		{"wheel straight", "As2h3d4c5s", Straight},
		{"three of a kind", "7s7h7dKcQs", ThreeOfAKind},
		{"two pair", "JsJh4d4cAs", TwoPair},
		{"one pair", "TsTh8d4c2s", OnePair},
		{"high card", "AsJh8d4c2s", HighCard},
		{"broken straight", "As Kh Qd Jc 9s", HighCard},
		{"wraparound is not a straight", "Qs Kh Ad 2c 3s", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreHand(five(t, tt.cards))
			assert.Equal(t, tt.expected, result.Category)
			assert.Equal(t, tt.expected.String(), result.Name())
		})
	}
}

func TestScoreHandSteelWheelIsRoyal(t *testing.T) {
	// A-5-4-3-2 suited sorts with the ace on top, which is what decides royalty
	result := ScoreHand(five(t, "As2s3s4s5s"))
	assert.Equal(t, RoyalFlush, result.Category)
}

func TestScoreHandTiebreakerSortedDescending(t *testing.T) {
	result := ScoreHand(five(t, "2c Kd 2h 9s Kc"))
	assert.Equal(t, TwoPair, result.Category)
	assert.Equal(t, [5]deck.Rank{deck.King, deck.King, deck.Nine, deck.Two, deck.Two}, result.Tiebreaker)
	assert.Equal(t, deck.King, result.Cards[0].Rank)
}

func TestScoreHandOrderIndependent(t *testing.T) {
	rng := randutil.New(7)
	for i := 0; i < 200; i++ {
		d := deck.NewShuffledDeck(rng)
		cards, err := d.DrawN(5)
		require.NoError(t, err)

		var hand [5]deck.Card
		copy(hand[:], cards)
		want := ScoreHand(hand)

		rng.Shuffle(len(hand), func(a, b int) { hand[a], hand[b] = hand[b], hand[a] })
		got := ScoreHand(hand)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.Tiebreaker, got.Tiebreaker)
	}
}

func TestCompareHands(t *testing.T) {
	t.Run("category dominates ranks", func(t *testing.T) {
		pair := ScoreHand(five(t, "2s2h3d4c6s"))
		high := ScoreHand(five(t, "AsKhQdJc9s"))
		assert.Equal(t, 1, CompareHands(pair, high))
		assert.Equal(t, -1, CompareHands(high, pair))
	})

	t.Run("tiebreaker compared lexicographically", func(t *testing.T) {
		a := ScoreHand(five(t, "AsKh9d4c2s"))
		b := ScoreHand(five(t, "AsKh8d7c6s"))
		assert.Equal(t, 1, CompareHands(a, b))
	})

	t.Run("identical ranks tie across suits", func(t *testing.T) {
		a := ScoreHand(five(t, "AsKh9d4c2s"))
		b := ScoreHand(five(t, "AhKd9c4s2h"))
		assert.Equal(t, 0, CompareHands(a, b))
		assert.True(t, a.Equal(b))
	})
}

func TestEvaluateHandRoyalFlush(t *testing.T) {
	cards := deck.MustParseCards("As Ks Qs Js 10s 2h 3h")
	result, err := EvaluateHand(cards)
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, result.Category)
	assert.Equal(t, "Royal Flush", result.Name())
	assert.Equal(t, [5]deck.Rank{deck.Ace, deck.King, deck.Queen, deck.Jack, deck.Ten}, result.Tiebreaker)
}

func TestEvaluateHandCardCount(t *testing.T) {
	_, err := EvaluateHand(deck.MustParseCards("AsKsQsJs"))
	assert.ErrorIs(t, err, ErrTooFewCards)

	_, err = EvaluateHand(deck.MustParseCards("AsKsQsJsTs9s8s7s"))
	assert.ErrorIs(t, err, ErrTooManyCards)

	_, err = EvaluateHand(deck.MustParseCards("AsAsQsJsTs"))
	assert.ErrorIs(t, err, ErrDuplicateCard)

	assert.Panics(t, func() { MustEvaluateHand(nil) })
}

func TestEvaluateHandBeatsEverySubset(t *testing.T) {
	rng := randutil.New(11)
	for i := 0; i < 100; i++ {
		d := deck.NewShuffledDeck(rng)
		cards, err := d.DrawN(7)
		require.NoError(t, err)

		best, err := EvaluateHand(cards)
		require.NoError(t, err)

		subsets := Combinations(cards, 5)
		require.Len(t, subsets, 21)

		matched := false
		for _, subset := range subsets {
			var hand [5]deck.Card
			copy(hand[:], subset)
			score := ScoreHand(hand)
			assert.GreaterOrEqual(t, CompareHands(best, score), 0)
			if CompareHands(best, score) == 0 {
				matched = true
			}
		}
		assert.True(t, matched, "best hand must come from one of the subsets")
	}
}

func TestCombinations(t *testing.T) {
	items := []int{1, 2, 3, 4}
	assert.Equal(t, [][]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}, Combinations(items, 2))
	assert.Len(t, Combinations(make([]int, 6), 5), 6)
	assert.Equal(t, [][]int{{}}, Combinations(items, 0))
	assert.Nil(t, Combinations(items, 5))
}

func toOracle(t *testing.T, c deck.Card) poker.Card {
	t.Helper()
	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	default:
		s = poker.Spade
	}
	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}
	card, err := poker.MakeCard(s, r)
	require.NoError(t, err)
	return card
}

func oracleScore(t *testing.T, hand [5]deck.Card) int16 {
	var cards [5]poker.Card
	for i, c := range hand {
		cards[i] = toOracle(t, c)
	}
	return poker.Eval5(&cards)
}

func isWheel(r HandResult) bool {
	return r.Tiebreaker == [5]deck.Rank{deck.Ace, deck.Five, deck.Four, deck.Three, deck.Two}
}

// Categories must order hands the same way a reference evaluator does, and
// hands the reference considers equal must tie.
func TestCategoriesAgreeWithReferenceEvaluator(t *testing.T) {
	rng := randutil.New(2024)
	for i := 0; i < 2000; i++ {
		d := deck.NewShuffledDeck(rng)
		cards, err := d.DrawN(10)
		require.NoError(t, err)

		var a, b [5]deck.Card
		copy(a[:], cards[:5])
		copy(b[:], cards[5:])

		ra, rb := ScoreHand(a), ScoreHand(b)
		if isWheel(ra) || isWheel(rb) {
			continue
		}
		oa, ob := oracleScore(t, a), oracleScore(t, b)

		if oa == ob {
			assert.Equal(t, 0, CompareHands(ra, rb), "%v vs %v", ra, rb)
			continue
		}
		if ra.Category != rb.Category {
			assert.Equal(t, oa > ob, ra.Category > rb.Category, "%v vs %v", ra, rb)
		}
	}
}
