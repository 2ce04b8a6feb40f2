package bot

import (
	"slices"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/game"
)

// EvaluateHandStrength scores a hand between 0 and 1. It is a rough
// heuristic over the cards visible now, not an equity calculation. Without
// two hole cards it returns 0.
func EvaluateHandStrength(hole, community []deck.Card, street game.Street) float64 {
	if len(hole) < 2 {
		return 0
	}
	if street == game.StreetPreflop || len(community) == 0 {
		return preflopStrength(hole[0], hole[1])
	}
	return postflopStrength(append(append([]deck.Card(nil), hole...), community...))
}

func preflopStrength(a, b deck.Card) float64 {
	high, low := max(a.Rank, b.Rank), min(a.Rank, b.Rank)

	var strength float64
	switch {
	case high == low && high >= deck.Ten:
		strength = 0.9
	case high == low && high >= deck.Seven:
		strength = 0.7
	case high == low:
		strength = 0.5
	case high == deck.Ace:
		strength = 0.6
	case high >= deck.Queen:
		strength = 0.5
	case high >= deck.Ten:
		strength = 0.4
	default:
		strength = 0.3
	}

	if a.Suit == b.Suit {
		strength += 0.1
	}
	if high-low <= 1 && high >= deck.Ten {
		strength += 0.1
	}
	return min(strength, 1)
}

func postflopStrength(cards []deck.Card) float64 {
	rankCounts := make(map[deck.Rank]int)
	suitCounts := make(map[deck.Suit]int)
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	maxRank, pairs := 0, 0
	for _, n := range rankCounts {
		maxRank = max(maxRank, n)
		if n == 2 {
			pairs++
		}
	}

	var strength float64
	switch {
	case maxRank >= 4:
		strength = 0.95
	case maxRank == 3:
		strength = 0.75
	case maxRank == 2 && pairs >= 2:
		strength = 0.6
	case maxRank == 2:
		strength = 0.5
	default:
		strength = 0.3
	}

	maxSuit := 0
	for _, n := range suitCounts {
		maxSuit = max(maxSuit, n)
	}
	switch {
	case maxSuit >= 5:
		strength = max(strength, 0.85)
	case maxSuit == 4:
		strength += 0.1
	}

	switch run := longestRun(rankCounts); {
	case run >= 5:
		strength = max(strength, 0.8)
	case run == 4:
		strength += 0.1
	}

	return min(strength, 1)
}

// longestRun is the length of the longest sequence of consecutive ranks
func longestRun(rankCounts map[deck.Rank]int) int {
	ranks := make([]deck.Rank, 0, len(rankCounts))
	for r := range rankCounts {
		ranks = append(ranks, r)
	}
	slices.Sort(ranks)

	best, run := 0, 0
	for i, r := range ranks {
		if i > 0 && r == ranks[i-1]+1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}
