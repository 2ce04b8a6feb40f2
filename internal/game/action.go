package game

import (
	"fmt"
	"strings"
)

// Action is one of FoldAction, CheckAction, CallAction, AllInAction or
// RaiseAction. The set is closed; switch on the concrete type.
type Action interface {
	// Name is the wire name: fold, check, call, allin or raise
	Name() string
	String() string
	isAction()
}

// FoldAction gives up the hand
type FoldAction struct{}

// CheckAction passes when there is nothing to call
type CheckAction struct{}

// CallAction matches the table's current bet, or as much of it as the stack allows
type CallAction struct{}

// AllInAction commits the whole remaining stack
type AllInAction struct{}

// RaiseAction raises the table's bet by Amount. Amount is on top of the
// current bet, not the new total.
type RaiseAction struct {
	Amount int
}

func (FoldAction) Name() string  { return "fold" }
func (CheckAction) Name() string { return "check" }
func (CallAction) Name() string  { return "call" }
func (AllInAction) Name() string { return "allin" }
func (RaiseAction) Name() string { return "raise" }

func (a FoldAction) String() string  { return a.Name() }
func (a CheckAction) String() string { return a.Name() }
func (a CallAction) String() string  { return a.Name() }
func (a AllInAction) String() string { return a.Name() }
func (a RaiseAction) String() string { return fmt.Sprintf("raise %d", a.Amount) }

func (FoldAction) isAction()  {}
func (CheckAction) isAction() {}
func (CallAction) isAction()  {}
func (AllInAction) isAction() {}
func (RaiseAction) isAction() {}

// Fold returns a FoldAction
func Fold() Action { return FoldAction{} }

// Check returns a CheckAction
func Check() Action { return CheckAction{} }

// Call returns a CallAction
func Call() Action { return CallAction{} }

// AllIn returns an AllInAction
func AllIn() Action { return AllInAction{} }

// Raise returns a RaiseAction of amount over the current bet
func Raise(amount int) Action { return RaiseAction{Amount: amount} }

// ParseAction converts a wire action name and amount into an Action. The
// amount is ignored for everything except raise.
func ParseAction(name string, amount int) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fold":
		return Fold(), nil
	case "check":
		return Check(), nil
	case "call":
		return Call(), nil
	case "allin", "all-in", "all_in":
		return AllIn(), nil
	case "raise", "bet":
		if amount < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
		}
		return Raise(amount), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, name)
	}
}

// Amount returns the raise amount carried by a, or 0 for other actions
func Amount(a Action) int {
	if r, ok := a.(RaiseAction); ok {
		return r.Amount
	}
	return 0
}
