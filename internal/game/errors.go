package game

import "errors"

var (
	// ErrRoomFull is returned when every seat is taken
	ErrRoomFull = errors.New("room is full")
	// ErrInsufficientPlayers is returned when a hand is started with fewer than two funded players
	ErrInsufficientPlayers = errors.New("need at least 2 players to start")
	// ErrNotCurrentPlayer is returned when someone acts out of turn
	ErrNotCurrentPlayer = errors.New("not your turn")
	// ErrAlreadyFolded is returned when a folded player tries to act
	ErrAlreadyFolded = errors.New("player has already folded")
	// ErrCannotCheck is returned when checking while facing a bet
	ErrCannotCheck = errors.New("cannot check, there is a bet to call")

	// ErrNoHandInProgress is returned for actions outside a betting street
	ErrNoHandInProgress = errors.New("no hand in progress")
	// ErrHandInProgress is returned when a hand is started mid-hand
	ErrHandInProgress = errors.New("hand already in progress")
	// ErrPlayerNotFound is returned for an id that is not seated
	ErrPlayerNotFound = errors.New("player not found")
	// ErrDuplicatePlayer is returned when an id is seated twice
	ErrDuplicatePlayer = errors.New("player already seated")
	// ErrInvalidAmount is returned for a negative raise
	ErrInvalidAmount = errors.New("raise amount must not be negative")
	// ErrInvalidAction is returned for a nil action
	ErrInvalidAction = errors.New("invalid action")
	// ErrNoShowdown is returned when asking for a result before the hand ends
	ErrNoShowdown = errors.New("hand has not reached showdown")
)
