package game

import (
	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/evaluator"
)

const (
	ReasonAllFolded = "all others folded"
	ReasonShowdown  = "showdown"
)

// ShowdownHand is a contender's hand as revealed at showdown
type ShowdownHand struct {
	PlayerID  string      `json:"playerId"`
	HoleCards []deck.Card `json:"holeCards"`
	BestHand  []deck.Card `json:"bestHand"`
	Category  string      `json:"category"`
}

// ShowdownResult is how the pot of a finished hand was paid out. The pot is
// split evenly between the winners and the remainder of that division is
// discarded; Remainder reports how many chips that was.
type ShowdownResult struct {
	HandNumber      int            `json:"handNumber"`
	HandID          string         `json:"handId"`
	Winners         []string       `json:"winners"`
	CategoryName    string         `json:"categoryName,omitempty"`
	Pot             int            `json:"pot"`
	PerWinnerPayout int            `json:"perWinnerPayout"`
	Remainder       int            `json:"remainder"`
	Reason          string         `json:"reason"`
	Hands           []ShowdownHand `json:"hands,omitempty"`
}

// EvaluateShowdown returns the result of the hand that just finished
func (t *Table) EvaluateShowdown() (ShowdownResult, error) {
	if t.street != StreetShowdown || t.showdown == nil {
		return ShowdownResult{}, ErrNoShowdown
	}
	res := *t.showdown
	res.Winners = append([]string(nil), t.showdown.Winners...)
	res.Hands = append([]ShowdownHand(nil), t.showdown.Hands...)
	return res, nil
}

// finishHand moves to showdown, picks the winners and pays them
func (t *Table) finishHand() {
	t.street = StreetShowdown
	for _, p := range t.players {
		p.Bet = 0
	}
	t.currentBet = 0

	res := &ShowdownResult{
		HandNumber: t.handNumber,
		HandID:     t.handID,
		Pot:        t.pot,
	}

	var contenders []*Player
	for _, p := range t.players {
		if p.InHand() {
			contenders = append(contenders, p)
		}
	}

	var winners []*Player
	if len(contenders) == 1 {
		res.Reason = ReasonAllFolded
		winners = contenders
	} else {
		res.Reason = ReasonShowdown
		var best evaluator.HandResult
		for _, p := range contenders {
			pool := append(append([]deck.Card(nil), p.HoleCards...), t.communityCards...)
			hand := evaluator.MustEvaluateHand(pool)
			res.Hands = append(res.Hands, ShowdownHand{
				PlayerID:  p.ID,
				HoleCards: append([]deck.Card(nil), p.HoleCards...),
				BestHand:  hand.Cards[:],
				Category:  hand.Name(),
			})

			switch cmp := evaluator.CompareHands(hand, best); {
			case len(winners) == 0 || cmp > 0:
				best = hand
				winners = []*Player{p}
			case cmp == 0:
				winners = append(winners, p)
			}
		}
		res.CategoryName = best.Name()
	}

	if len(winners) > 0 {
		res.PerWinnerPayout = t.pot / len(winners)
		res.Remainder = t.pot % len(winners)
		for _, w := range winners {
			w.Chips += res.PerWinnerPayout
			res.Winners = append(res.Winners, w.ID)
		}
	}
	t.pot = 0
	t.showdown = res
}
