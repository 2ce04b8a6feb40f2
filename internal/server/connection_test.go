package server

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinAfterDisconnectFreesSeat(t *testing.T) {
	s, _ := newTestServer(t)
	conn := NewConnection(nil, "p1", s, s.logger)

	// The socket went away while the join was being handled
	conn.cancel()
	conn.handleJoinRoom(JoinRoomData{RoomID: "den", PlayerName: "Alice"})

	_, ok := s.Registry().Get("den")
	assert.False(t, ok, "room should be torn down with its only player gone")
}

func TestFailedJoinClearsRoom(t *testing.T) {
	s, _ := newTestServer(t)
	for i := range 8 {
		_, err := s.Registry().Join("full", fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i), "")
		require.NoError(t, err)
	}

	conn := NewConnection(nil, "late", s, s.logger)
	conn.handleJoinRoom(JoinRoomData{RoomID: "full", PlayerName: "Late"})

	assert.Empty(t, conn.Room())
	require.Len(t, conn.send, 1)
	msg := <-conn.send
	assert.Equal(t, MessageTypeError, msg.Type)
	assert.Equal(t, "room_full", decode[ErrorData](t, msg).Code)
}
