package game

import "github.com/lox/pokerrooms/internal/deck"

// Player is a seat at the table. The table owns its players; callers get
// copies from Players, Player and CurrentPlayer.
type Player struct {
	ID        string
	Name      string
	Avatar    string
	Chips     int
	HoleCards []deck.Card
	Bet       int // Chips put in on the current street
	Folded    bool
	AllIn     bool
	Active    bool // Dealt into the current hand
}

// CanAct returns true if the player is still making betting decisions this hand
func (p *Player) CanAct() bool {
	return p.Active && !p.Folded && !p.AllIn
}

// InHand returns true if the player is contesting the pot
func (p *Player) InHand() bool {
	return p.Active && !p.Folded
}

func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.AllIn = false
	p.Active = p.Chips > 0
	p.Folded = !p.Active
}

// commit moves up to amount chips from the player into their bet, going
// all-in when the stack runs out. It returns the chips actually moved.
func (p *Player) commit(amount int) int {
	if amount >= p.Chips {
		amount = p.Chips
		p.AllIn = true
	}
	p.Chips -= amount
	p.Bet += amount
	return amount
}

func (p *Player) clone() Player {
	c := *p
	if p.HoleCards != nil {
		c.HoleCards = append([]deck.Card(nil), p.HoleCards...)
	}
	return c
}
