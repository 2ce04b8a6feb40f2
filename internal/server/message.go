package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lox/pokerrooms/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type JoinRoomData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar,omitempty"`
}

type PlayerActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

type AddBotData struct {
	Difficulty string `json:"difficulty,omitempty"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type JoinedRoomData struct {
	RoomID   string        `json:"roomId"`
	PlayerID string        `json:"playerId"`
	State    game.Snapshot `json:"gameState"`
}

// PlayerInfo describes a seated player in join and leave notices
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Bot    bool   `json:"bot,omitempty"`
}

type PlayerJoinedData struct {
	Player PlayerInfo `json:"player"`
}

type PlayerLeftData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type GameStartedData struct {
	HandNumber  int    `json:"handNumber"`
	HandID      string `json:"handId"`
	DealerIndex int    `json:"dealerIndex"`
}

type ActionTakenData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
	Bot      bool   `json:"bot,omitempty"`
}

type ShowdownData struct {
	game.ShowdownResult
	WinnerNames []string `json:"winnerNames"`
}

// RoomInfo summarises a room for listings
type RoomInfo struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Bots    int    `json:"bots"`
	Street  string `json:"street"`
	Hand    int    `json:"hand"`
}

// errorCode maps a rejection to the code sent to the client
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrRoomFull):
		return "room_full"
	case errors.Is(err, game.ErrInsufficientPlayers):
		return "insufficient_players"
	case errors.Is(err, game.ErrNotCurrentPlayer):
		return "not_your_turn"
	case errors.Is(err, game.ErrAlreadyFolded):
		return "already_folded"
	case errors.Is(err, game.ErrCannotCheck):
		return "cannot_check"
	case errors.Is(err, game.ErrNoHandInProgress):
		return "no_hand_in_progress"
	case errors.Is(err, game.ErrHandInProgress):
		return "hand_in_progress"
	case errors.Is(err, game.ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, game.ErrDuplicatePlayer):
		return "already_joined"
	case errors.Is(err, game.ErrInvalidAmount), errors.Is(err, game.ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, ErrNoBots):
		return "no_bots"
	case errors.Is(err, ErrNotInRoom):
		return "not_in_room"
	default:
		return "request_failed"
	}
}
