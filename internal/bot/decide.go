package bot

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lox/pokerrooms/internal/game"
)

// Situation is what a bot weighs when choosing an action
type Situation struct {
	HandStrength float64
	CallAmount   int
	PotOdds      float64 // call / (pot + call), 0 with nothing to call
	Position     float64 // seat / players
	Chips        int
	Pot          int
}

// DecideAction picks an action for the situation
func DecideAction(rng *rand.Rand, p Profile, s Situation) game.Action {
	threshold := s.HandStrength + (rng.Float64()-0.5)*p.Difficulty.jitter()
	threshold += p.Style.shift()

	if s.CallAmount == 0 {
		switch {
		case threshold > 0.6:
			return raiseOr(min(int(float64(s.Pot)*0.5*p.Aggression), s.Chips), game.Check())
		case rng.Float64() < p.BluffFrequency && threshold > 0.4:
			return raiseOr(min(int(float64(s.Pot)*0.3), s.Chips), game.Check())
		default:
			return game.Check()
		}
	}

	callRatio := math.Inf(1)
	if s.Chips > 0 {
		callRatio = float64(s.CallAmount) / float64(s.Chips)
	}
	remaining := s.Chips - s.CallAmount

	switch {
	case threshold > 0.8:
		if callRatio < 0.5 && rng.Float64() < p.Aggression {
			amount := int(float64(s.CallAmount)*2 + float64(s.Pot)*0.3)
			return raiseOr(min(amount, remaining), game.Call())
		}
		return game.Call()

	case threshold > 0.6:
		if callRatio < 0.3 && rng.Float64() < 0.3 {
			return raiseOr(min(int(float64(s.CallAmount)*1.5), remaining), game.Call())
		}
		return game.Call()

	case threshold > 0.4:
		if s.PotOdds < 0.3 || callRatio < 0.2 {
			return game.Call()
		}
		return game.Fold()

	default:
		if callRatio < 0.1 && rng.Float64() < p.BluffFrequency {
			return game.Call()
		}
		return game.Fold()
	}
}

// raiseOr raises by amount, or falls back when there is nothing to raise
func raiseOr(amount int, fallback game.Action) game.Action {
	if amount <= 0 {
		return fallback
	}
	return game.Raise(amount)
}

// Decide reads the bot's situation out of a table snapshot and picks an
// action for playerID.
func Decide(rng *rand.Rand, p Profile, snap game.Snapshot, playerID string) (game.Action, error) {
	seat := snap.Seat(playerID)
	if seat < 0 {
		return nil, fmt.Errorf("%w: %s", game.ErrPlayerNotFound, playerID)
	}
	me := snap.Players[seat]

	call := max(snap.CurrentBet-me.Bet, 0)
	potOdds := 0.0
	if call > 0 {
		potOdds = float64(call) / float64(snap.Pot+call)
	}

	return DecideAction(rng, p, Situation{
		HandStrength: EvaluateHandStrength(me.Cards, snap.CommunityCards, snap.Street),
		CallAmount:   call,
		PotOdds:      potOdds,
		Position:     float64(seat) / float64(len(snap.Players)),
		Chips:        me.Chips,
		Pot:          snap.Pot,
	}), nil
}
