package game

import "fmt"

// PlayerAction applies an action for the player whose turn it is. A
// rejected action leaves the table untouched.
func (t *Table) PlayerAction(playerID string, action Action) error {
	if !t.street.Betting() {
		return ErrNoHandInProgress
	}

	idx := t.seatOf(playerID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	p := t.players[idx]
	if p.Folded {
		return ErrAlreadyFolded
	}
	if idx != t.currentIndex || !p.CanAct() {
		return ErrNotCurrentPlayer
	}

	switch a := action.(type) {
	case FoldAction:
		p.Folded = true

	case CheckAction:
		if p.Bet < t.currentBet {
			return ErrCannotCheck
		}

	case CallAction:
		t.pot += p.commit(t.currentBet - p.Bet)

	case RaiseAction:
		if a.Amount < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmount, a.Amount)
		}
		target := t.currentBet + a.Amount
		delta := target - p.Bet
		t.pot += p.commit(delta)
		// A raise cut short by the stack does not move the table's bet
		if !p.AllIn {
			t.currentBet = target
		}

	case AllInAction:
		t.pot += p.commit(p.Chips)
		if p.Bet > t.currentBet {
			t.currentBet = p.Bet
		}

	default:
		return fmt.Errorf("%w: %v", ErrInvalidAction, action)
	}

	if t.contenders() == 1 {
		t.finishHand()
		return nil
	}

	if next := t.nextSeat(t.currentIndex, (*Player).CanAct); next >= 0 {
		t.currentIndex = next
	}

	if t.roundComplete() {
		t.advanceStreet()
	}
	return nil
}

// roundComplete is true once every player still able to act has matched the
// current bet, including when nobody is able to act.
func (t *Table) roundComplete() bool {
	for _, p := range t.players {
		if p.CanAct() && p.Bet != t.currentBet {
			return false
		}
	}
	return true
}

// advanceStreet closes the betting round and deals the next street. With
// fewer than two players able to bet the board is run out to showdown.
func (t *Table) advanceStreet() {
	for t.street.Betting() {
		for _, p := range t.players {
			p.Bet = 0
		}
		t.currentBet = 0

		if t.street == StreetRiver {
			t.finishHand()
			return
		}

		t.street++
		t.communityCards = append(t.communityCards, t.draw(communityCardsFor(t.street))...)

		if t.actors() >= 2 {
			t.currentIndex = t.dealerIndex
			if next := t.nextSeat(t.dealerIndex, (*Player).CanAct); next >= 0 {
				t.currentIndex = next
			}
			return
		}
	}
}

// contenders counts players still in the hand
func (t *Table) contenders() int {
	n := 0
	for _, p := range t.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// actors counts players who can still bet
func (t *Table) actors() int {
	n := 0
	for _, p := range t.players {
		if p.CanAct() {
			n++
		}
	}
	return n
}
