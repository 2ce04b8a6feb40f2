package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The numeric value is the rank's poker value,
// so Two is 2 and Ace is 14.
type Rank int

const (
	Two Rank = iota + 2
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

// String returns the rank label as shown at the table ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card. Cards are plain values and never mutated.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "10♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

type cardJSON struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// MarshalJSON encodes the card as {"rank":"10","suit":"♠"}
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Rank: c.Rank.String(), Suit: c.Suit.String()})
}

// UnmarshalJSON decodes the form produced by MarshalJSON
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseCard(raw.Rank + raw.Suit)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var suitSymbols = map[string]Suit{
	"s": Spades, "S": Spades, "♠": Spades,
	"h": Hearts, "H": Hearts, "♥": Hearts,
	"d": Diamonds, "D": Diamonds, "♦": Diamonds,
	"c": Clubs, "C": Clubs, "♣": Clubs,
}

// ParseCard parses a single card such as "As", "10h", "Td" or "Q♣"
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	rankPart := s[:1]
	if strings.HasPrefix(s, "10") {
		rankPart = "10"
	}

	rank, err := parseRank(rankPart)
	if err != nil {
		return Card{}, err
	}

	suit, ok := suitSymbols[s[len(rankPart):]]
	if !ok {
		return Card{}, fmt.Errorf("unknown suit %q in card %q", s[len(rankPart):], s)
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsKsQsJsTs" where each card is [Rank][Suit]; "10" is accepted
// as well as "T" and spaces are ignored.
// Ranks: A, K, Q, J, T/10, 9, 8, 7, 6, 5, 4, 3, 2
// Suits: s (spades), h (hearts), d (diamonds), c (clubs) or their symbols
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	cards := []Card{}

	for s != "" {
		rankLen := 1
		if strings.HasPrefix(s, "10") {
			rankLen = 2
		}
		if len(s) <= rankLen {
			return nil, fmt.Errorf("incomplete card %q", s)
		}

		// Suit symbols are multi-byte, letters are one byte
		suitLen := 1
		for sym := range suitSymbols {
			if len(sym) > 1 && strings.HasPrefix(s[rankLen:], sym) {
				suitLen = len(sym)
				break
			}
		}

		card, err := ParseCard(s[:rankLen+suitLen])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
		s = s[rankLen+suitLen:]
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "A", "a":
		return Ace, nil
	case "K", "k":
		return King, nil
	case "Q", "q":
		return Queen, nil
	case "J", "j":
		return Jack, nil
	case "T", "t", "10":
		return Ten, nil
	case "9":
		return Nine, nil
	case "8":
		return Eight, nil
	case "7":
		return Seven, nil
	case "6":
		return Six, nil
	case "5":
		return Five, nil
	case "4":
		return Four, nil
	case "3":
		return Three, nil
	case "2":
		return Two, nil
	default:
		return 0, fmt.Errorf("unknown rank %q", s)
	}
}
