// Package evaluator ranks poker hands.
//
// ScoreHand classifies exactly five cards. EvaluateHand takes a pool of five
// to seven cards, scores every five card subset (21 of them for seven cards)
// and keeps the best by CompareHands.
//
//	best, err := evaluator.EvaluateHand(append(hole, board...))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(best.Name()) // "Royal Flush"
//
// Everything here is pure and safe for concurrent use.
package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/pokerrooms/internal/deck"
)

var (
	// ErrTooFewCards is returned when fewer than five cards are evaluated
	ErrTooFewCards = errors.New("at least 5 cards are required")
	// ErrTooManyCards is returned when more than seven cards are evaluated
	ErrTooManyCards = errors.New("at most 7 cards can be evaluated")
	// ErrDuplicateCard is returned when the same card appears twice
	ErrDuplicateCard = errors.New("duplicate card")
)

// ScoreHand classifies five cards.
func ScoreHand(hand [5]deck.Card) HandResult {
	cards := hand
	slices.SortStableFunc(cards[:], func(a, b deck.Card) int {
		return int(b.Rank) - int(a.Rank)
	})

	var ranks [5]deck.Rank
	rankCounts := make(map[deck.Rank]int, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
		rankCounts[c.Rank]++
	}

	counts := make([]int, 0, len(rankCounts))
	for _, n := range rankCounts {
		counts = append(counts, n)
	}
	slices.SortFunc(counts, func(a, b int) int { return b - a })
	counts = append(counts, 0) // so counts[1] is always addressable

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	straight := isStraight(ranks)

	result := HandResult{Tiebreaker: ranks, Cards: cards}
	switch {
	case flush && straight && ranks[0] == deck.Ace:
		result.Category = RoyalFlush
	case flush && straight:
		result.Category = StraightFlush
	case counts[0] == 4:
		result.Category = FourOfAKind
	case counts[0] == 3 && counts[1] == 2:
		result.Category = FullHouse
	case flush:
		result.Category = Flush
	case straight:
		result.Category = Straight
	case counts[0] == 3:
		result.Category = ThreeOfAKind
	case counts[0] == 2 && counts[1] == 2:
		result.Category = TwoPair
	case counts[0] == 2:
		result.Category = OnePair
	default:
		result.Category = HighCard
	}
	return result
}

// isStraight expects ranks sorted high to low. A-5-4-3-2 (the wheel) counts.
func isStraight(ranks [5]deck.Rank) bool {
	if ranks == [5]deck.Rank{deck.Ace, deck.Five, deck.Four, deck.Three, deck.Two} {
		return true
	}
	for i := 0; i < len(ranks)-1; i++ {
		if ranks[i]-ranks[i+1] != 1 {
			return false
		}
	}
	return true
}

// EvaluateHand returns the best five card hand that can be made from cards.
// It accepts between five and seven distinct cards.
func EvaluateHand(cards []deck.Card) (HandResult, error) {
	switch {
	case len(cards) < 5:
		return HandResult{}, fmt.Errorf("%w: got %d", ErrTooFewCards, len(cards))
	case len(cards) > 7:
		return HandResult{}, fmt.Errorf("%w: got %d", ErrTooManyCards, len(cards))
	}

	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return HandResult{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
	}

	var best HandResult
	for i, combo := range Combinations(cards, 5) {
		var five [5]deck.Card
		copy(five[:], combo)
		score := ScoreHand(five)
		if i == 0 || CompareHands(score, best) > 0 {
			best = score
		}
	}
	return best, nil
}

// MustEvaluateHand is EvaluateHand for callers that have already validated
// their input; it panics on error.
func MustEvaluateHand(cards []deck.Card) HandResult {
	result, err := EvaluateHand(cards)
	if err != nil {
		panic(fmt.Sprintf("evaluate %v: %v", cards, err))
	}
	return result
}

// Combinations returns every k element subset of items, preserving input order
// within each subset. Subsets are produced in lexicographic index order.
func Combinations[T any](items []T, k int) [][]T {
	if k < 0 || k > len(items) {
		return nil
	}

	var out [][]T
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		combo := make([]T, k)
		for i, j := range idx {
			combo[i] = items[j]
		}
		out = append(out, combo)

		// Advance the rightmost index that still has room
		i := k - 1
		for i >= 0 && idx[i] == len(items)-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
