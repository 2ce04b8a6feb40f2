package server

import (
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	to  string
	msg *Message
}

// recordingNotifier keeps every message the room sends
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *recordingNotifier) Send(playerID string, msg *Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{to: playerID, msg: msg})
}

// messages returns the messages of one type sent to a player
func (n *recordingNotifier) messages(playerID string, msgType MessageType) []*Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []*Message
	for _, s := range n.sent {
		if s.to == playerID && s.msg.Type == msgType {
			out = append(out, s.msg)
		}
	}
	return out
}

func (n *recordingNotifier) count(playerID string, msgType MessageType) int {
	return len(n.messages(playerID, msgType))
}

func decode[T any](t *testing.T, msg *Message) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Data, &v))
	return v
}

type testRoom struct {
	*Room
	clock    *quartz.Mock
	notifier *recordingNotifier
}

func newTestRoom(t *testing.T, seed int64, opts ...game.Option) *testRoom {
	t.Helper()
	clock := quartz.NewMock(t)
	notifier := &recordingNotifier{}
	config := RoomConfig{Table: game.DefaultConfig(), NextHandDelay: 5 * time.Second}
	room := NewRoom("room-1", config, randutil.New(seed), clock, notifier, log.New(io.Discard), opts...)
	t.Cleanup(room.Close)
	return &testRoom{Room: room, clock: clock, notifier: notifier}
}

// actionCount reads how many table mutations the room has applied
func (r *testRoom) actionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.actions
}

func (r *testRoom) turn(t *testing.T) turn {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.currentTurn()
	require.True(t, ok, "nobody to act")
	return current
}

func (r *testRoom) pendingTimers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}
