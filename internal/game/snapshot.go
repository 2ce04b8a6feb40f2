package game

import "github.com/lox/pokerrooms/internal/deck"

// PlayerState is a player as seen in a Snapshot
type PlayerState struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar"`
	Chips  int         `json:"chips"`
	Bet    int         `json:"currentBet"`
	Folded bool        `json:"folded"`
	AllIn  bool        `json:"allIn"`
	Active bool        `json:"active"`
	Cards  []deck.Card `json:"cards"`
}

// Snapshot is a detached copy of the table state. It is what gets sent to
// clients (after Redacted) and what bots decide from.
type Snapshot struct {
	RoomID             string        `json:"roomId"`
	HandNumber         int           `json:"handNumber"`
	HandID             string        `json:"handId,omitempty"`
	Players            []PlayerState `json:"players"`
	CommunityCards     []deck.Card   `json:"communityCards"`
	Pot                int           `json:"pot"`
	CurrentBet         int           `json:"currentBet"`
	CurrentPlayerIndex int           `json:"currentPlayerIndex"`
	DealerIndex        int           `json:"dealerIndex"`
	SmallBlind         int           `json:"smallBlind"`
	BigBlind           int           `json:"bigBlind"`
	Street             Street        `json:"gameState"`
}

// Snapshot copies the full table state, hole cards included
func (t *Table) Snapshot() Snapshot {
	s := Snapshot{
		RoomID:             t.roomID,
		HandNumber:         t.handNumber,
		HandID:             t.handID,
		Players:            make([]PlayerState, len(t.players)),
		CommunityCards:     append([]deck.Card{}, t.communityCards...),
		Pot:                t.pot,
		CurrentBet:         t.currentBet,
		CurrentPlayerIndex: t.currentIndex,
		DealerIndex:        t.dealerIndex,
		SmallBlind:         t.config.SmallBlind,
		BigBlind:           t.config.BigBlind,
		Street:             t.street,
	}
	for i, p := range t.players {
		s.Players[i] = PlayerState{
			ID:     p.ID,
			Name:   p.Name,
			Avatar: p.Avatar,
			Chips:  p.Chips,
			Bet:    p.Bet,
			Folded: p.Folded,
			AllIn:  p.AllIn,
			Active: p.Active,
			Cards:  append([]deck.Card{}, p.HoleCards...),
		}
	}
	return s
}

// Redacted returns a copy of the snapshot with every other player's hole
// cards removed. Nothing is hidden at showdown.
func (s Snapshot) Redacted(viewerID string) Snapshot {
	out := s
	out.Players = make([]PlayerState, len(s.Players))
	for i, p := range s.Players {
		if p.ID != viewerID && s.Street != StreetShowdown {
			p.Cards = []deck.Card{}
		}
		out.Players[i] = p
	}
	return out
}

// Seat returns the index of the player with the given id, or -1
func (s Snapshot) Seat(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the acting player, if a betting street is underway
func (s Snapshot) CurrentPlayer() (PlayerState, bool) {
	if !s.Street.Betting() || s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return PlayerState{}, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}
