package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	config := RoomConfig{Table: game.DefaultConfig(), NextHandDelay: 5 * time.Second}
	s := NewServer("unused", config, randutil.New(1), quartz.NewMock(t), log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Stop()
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType MessageType, data any) {
	t.Helper()
	msg, err := NewMessage(msgType, data, time.Now())
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

// readUntil reads messages until one of the wanted type arrives
func readUntil(t *testing.T, conn *websocket.Conn, msgType MessageType) *Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg), "waiting for %s", msgType)
		if msg.Type == msgType {
			return &msg
		}
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestWebSocketGameFlow(t *testing.T) {
	s, ts := newTestServer(t)

	alice := dial(t, ts)
	sendMessage(t, alice, MessageTypeJoinRoom, JoinRoomData{RoomID: "table-1", PlayerName: "Alice", Avatar: "🦊"})
	joined := decode[JoinedRoomData](t, readUntil(t, alice, MessageTypeJoinedRoom))
	assert.Equal(t, "table-1", joined.RoomID)
	assert.NotEmpty(t, joined.PlayerID)

	bob := dial(t, ts)
	sendMessage(t, bob, MessageTypeJoinRoom, JoinRoomData{RoomID: "table-1", PlayerName: "Bob"})
	bobJoined := decode[JoinedRoomData](t, readUntil(t, bob, MessageTypeJoinedRoom))

	notice := decode[PlayerJoinedData](t, readUntil(t, alice, MessageTypePlayerJoined))
	if notice.Player.ID == joined.PlayerID {
		// Alice also hears about her own arrival first
		notice = decode[PlayerJoinedData](t, readUntil(t, alice, MessageTypePlayerJoined))
	}
	assert.Equal(t, "Bob", notice.Player.Name)

	resp, err := http.Get(ts.URL + "/rooms")
	require.NoError(t, err)
	var rooms []RoomInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rooms))
	_ = resp.Body.Close()
	require.Len(t, rooms, 1)
	assert.Equal(t, 2, rooms[0].Players)

	sendMessage(t, alice, MessageTypeStartGame, nil)
	started := decode[GameStartedData](t, readUntil(t, bob, MessageTypeGameStarted))
	assert.Equal(t, 1, started.HandNumber)

	// Alice is the big blind; acting now is out of turn
	sendMessage(t, alice, MessageTypePlayerAction, PlayerActionData{Action: "call"})
	errData := decode[ErrorData](t, readUntil(t, alice, MessageTypeError))
	assert.Equal(t, "not_your_turn", errData.Code)

	sendMessage(t, bob, MessageTypePlayerAction, PlayerActionData{Action: "shove"})
	errData = decode[ErrorData](t, readUntil(t, bob, MessageTypeError))
	assert.Equal(t, "invalid_action", errData.Code)

	sendMessage(t, bob, MessageTypePlayerAction, PlayerActionData{Action: "fold"})
	result := decode[ShowdownData](t, readUntil(t, alice, MessageTypeShowdown))
	assert.Equal(t, []string{joined.PlayerID}, result.Winners)

	// Disconnecting leaves the room
	require.NoError(t, bob.Close())
	require.Eventually(t, func() bool {
		room, ok := s.Registry().Get("table-1")
		return ok && room.Snapshot().Seat(bobJoined.PlayerID) < 0
	}, 2*time.Second, 10*time.Millisecond)
	left := decode[PlayerLeftData](t, readUntil(t, alice, MessageTypePlayerLeft))
	assert.Equal(t, bobJoined.PlayerID, left.PlayerID)
}

func TestWebSocketRejectsBadRequests(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	sendMessage(t, conn, MessageTypeStartGame, nil)
	assert.Equal(t, "not_in_room", decode[ErrorData](t, readUntil(t, conn, MessageTypeError)).Code)

	sendMessage(t, conn, MessageTypeJoinRoom, JoinRoomData{RoomID: "x"})
	assert.Equal(t, "invalid_message", decode[ErrorData](t, readUntil(t, conn, MessageTypeError)).Code)

	sendMessage(t, conn, MessageType("dance"), nil)
	assert.Equal(t, "unknown_message_type", decode[ErrorData](t, readUntil(t, conn, MessageTypeError)).Code)

	sendMessage(t, conn, MessageTypeJoinRoom, JoinRoomData{RoomID: "x", PlayerName: "Zed"})
	readUntil(t, conn, MessageTypeJoinedRoom)
	sendMessage(t, conn, MessageTypeJoinRoom, JoinRoomData{RoomID: "y", PlayerName: "Zed"})
	assert.Equal(t, "already_joined", decode[ErrorData](t, readUntil(t, conn, MessageTypeError)).Code)

	sendMessage(t, conn, MessageTypeAddBot, AddBotData{Difficulty: "hard"})
	bot := decode[PlayerJoinedData](t, readUntil(t, conn, MessageTypePlayerJoined))
	if !bot.Player.Bot {
		bot = decode[PlayerJoinedData](t, readUntil(t, conn, MessageTypePlayerJoined))
	}
	assert.True(t, bot.Player.Bot)

	sendMessage(t, conn, MessageTypeRemoveBot, nil)
	assert.Equal(t, bot.Player.ID, decode[PlayerLeftData](t, readUntil(t, conn, MessageTypePlayerLeft)).PlayerID)
}
