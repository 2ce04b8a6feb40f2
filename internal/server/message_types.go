package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

const (
	// Client to server messages
	MessageTypeJoinRoom     MessageType = "join_room"
	MessageTypeLeaveRoom    MessageType = "leave_room"
	MessageTypeStartGame    MessageType = "start_game"
	MessageTypePlayerAction MessageType = "player_action"
	MessageTypeAddBot       MessageType = "add_bot"
	MessageTypeRemoveBot    MessageType = "remove_bot"

	// Server to client messages
	MessageTypeJoinedRoom   MessageType = "joined_room"
	MessageTypePlayerJoined MessageType = "player_joined"
	MessageTypePlayerLeft   MessageType = "player_left"
	MessageTypeUpdateGame   MessageType = "update_game"
	MessageTypeGameStarted  MessageType = "game_started"
	MessageTypeActionTaken  MessageType = "action_taken"
	MessageTypeShowdown     MessageType = "showdown"
	MessageTypeError        MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
