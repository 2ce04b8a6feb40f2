package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/pokerrooms/internal/deck"
)

// Category is the class of a five card hand, 1 (High Card) through 10 (Royal Flush)
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
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
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandResult is the classification of a five card hand.
//
// Tiebreaker is the five ranks of the hand sorted high to low. It is compared
// lexicographically within a category, without reordering pairs or trips
// ahead of their kickers.
type HandResult struct {
	Category   Category
	Tiebreaker [5]deck.Rank
	Cards      [5]deck.Card // The five cards that scored, highest rank first
}

// Name returns the category name, e.g. "Full House"
func (h HandResult) Name() string {
	return h.Category.String()
}

// Equal reports whether two results tie: same category and same tiebreaker.
// The cards that produced them are not compared.
func (h HandResult) Equal(other HandResult) bool {
	return CompareHands(h, other) == 0
}

// String returns a string representation of the hand
func (h HandResult) String() string {
	cardStrs := make([]string, 0, len(h.Cards))
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(cardStrs, " "))
}

// CompareHands compares two hands and returns:
// -1 if a is weaker than b
//
//	0 if a ties b
//	1 if a is stronger than b
func CompareHands(a, b HandResult) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}

	for i := range a.Tiebreaker {
		if a.Tiebreaker[i] < b.Tiebreaker[i] {
			return -1
		}
		if a.Tiebreaker[i] > b.Tiebreaker[i] {
			return 1
		}
	}

	return 0
}
