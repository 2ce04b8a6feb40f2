package client

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/lox/pokerrooms/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	config := server.RoomConfig{Table: game.DefaultConfig(), NextHandDelay: 5 * time.Second}
	s := server.NewServer("unused", config, randutil.New(7), quartz.NewMock(t), log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Stop()
		ts.Close()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Dial(ctx, ts.URL, log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitFor(t *testing.T, c *Client, msgType server.MessageType) *server.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg, err := c.WaitFor(ctx, msgType)
	require.NoError(t, err)
	return msg
}

func TestClientPlaysHeadsUp(t *testing.T) {
	ts := newTestServer(t)

	alice := dial(t, ts)
	require.NoError(t, alice.JoinRoom("den", "Alice", ""))
	joined, err := Decode[server.JoinedRoomData](waitFor(t, alice, server.MessageTypeJoinedRoom))
	require.NoError(t, err)
	assert.Equal(t, joined.PlayerID, alice.PlayerID())
	assert.Equal(t, "den", alice.RoomID())

	bob := dial(t, ts)
	require.NoError(t, bob.JoinRoom("den", "Bob", ""))
	waitFor(t, bob, server.MessageTypeJoinedRoom)

	require.NoError(t, alice.StartGame())
	started, err := Decode[server.GameStartedData](waitFor(t, bob, server.MessageTypeGameStarted))
	require.NoError(t, err)
	assert.Equal(t, 1, started.HandNumber)

	// Alice deals, so Bob posts the small blind and is first to act
	require.NoError(t, bob.Act("fold", 0))
	result, err := Decode[server.ShowdownData](waitFor(t, alice, server.MessageTypeShowdown))
	require.NoError(t, err)
	assert.Equal(t, []string{alice.PlayerID()}, result.Winners)
	assert.Equal(t, game.ReasonAllFolded, result.Reason)
}

func TestClientErrorsAndBots(t *testing.T) {
	ts := newTestServer(t)
	c := dial(t, ts)

	require.NoError(t, c.StartGame())
	errData, err := Decode[server.ErrorData](waitFor(t, c, server.MessageTypeError))
	require.NoError(t, err)
	assert.Equal(t, "not_in_room", errData.Code)

	require.NoError(t, c.JoinRoom("lounge", "Cara", "🐙"))
	waitFor(t, c, server.MessageTypeJoinedRoom)

	require.NoError(t, c.AddBot("easy"))
	// Cara hears about her own seat before the bot's
	var bot server.PlayerJoinedData
	for !bot.Player.Bot {
		bot, err = Decode[server.PlayerJoinedData](waitFor(t, c, server.MessageTypePlayerJoined))
		require.NoError(t, err)
	}

	require.NoError(t, c.RemoveBot())
	left, err := Decode[server.PlayerLeftData](waitFor(t, c, server.MessageTypePlayerLeft))
	require.NoError(t, err)
	assert.Equal(t, bot.Player.ID, left.PlayerID)
}

func TestClientClose(t *testing.T) {
	ts := newTestServer(t)
	c := dial(t, ts)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.WaitFor(context.Background(), server.MessageTypeJoinedRoom)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.JoinRoom("x", "y", ""), ErrClosed)
}

func TestDialRejectsBadURL(t *testing.T) {
	_, err := Dial(context.Background(), "://nope", log.New(io.Discard))
	assert.Error(t, err)
}
