package game

import "fmt"

// Street is the table's position in the hand state machine
type Street int

const (
	StreetWaiting Street = iota
	StreetPreflop
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
)

var streetNames = [...]string{"waiting", "preflop", "flop", "turn", "river", "showdown"}

// String returns the street name as sent to clients
func (s Street) String() string {
	if s < StreetWaiting || s > StreetShowdown {
		return "unknown"
	}
	return streetNames[s]
}

// Betting reports whether players act on this street
func (s Street) Betting() bool {
	return s >= StreetPreflop && s <= StreetRiver
}

// MarshalText encodes the street as its name
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a street name
func (s *Street) UnmarshalText(text []byte) error {
	for i, name := range streetNames {
		if name == string(text) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// communityCardsFor is how many cards are dealt when the street begins
func communityCardsFor(s Street) int {
	switch s {
	case StreetFlop:
		return 3
	case StreetTurn, StreetRiver:
		return 1
	default:
		return 0
	}
}
