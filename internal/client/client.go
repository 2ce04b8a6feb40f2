// Package client is a WebSocket client for the room protocol served by
// internal/server.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/pokerrooms/internal/server" // Reuse message types
)

// ErrClosed is returned once the connection has gone away
var ErrClosed = errors.New("client closed")

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

// Client represents a WebSocket connection to a poker room server
type Client struct {
	conn     *websocket.Conn
	send     chan *server.Message
	messages chan *server.Message
	logger   *log.Logger
	done     chan struct{}

	mu        sync.RWMutex
	playerID  string
	roomID    string
	closeOnce sync.Once
}

// Dial connects to serverURL, which may use the http(s) or ws(s) scheme.
// The /ws path is appended when missing.
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	logger = logger.WithPrefix("client")
	logger.Debug("Connecting to server", "url", u.String())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	c := &Client{
		conn:     conn,
		send:     make(chan *server.Message, 64),
		messages: make(chan *server.Message, 256),
		logger:   logger,
		done:     make(chan struct{}),
	}

	go c.readPump()
	go c.writePump()

	return c, nil
}

// Close shuts the connection down. It is safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// Messages delivers every message received from the server. The channel is
// closed when the connection ends.
func (c *Client) Messages() <-chan *server.Message {
	return c.messages
}

// PlayerID returns the id the server assigned, known once a room is joined
func (c *Client) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// RoomID returns the room the client is seated in, if any
func (c *Client) RoomID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

// JoinRoom asks for a seat in roomID, creating the room if needed
func (c *Client) JoinRoom(roomID, name, avatar string) error {
	return c.sendMessage(server.MessageTypeJoinRoom, server.JoinRoomData{
		RoomID:     roomID,
		PlayerName: name,
		Avatar:     avatar,
	})
}

// LeaveRoom gives up the current seat
func (c *Client) LeaveRoom() error {
	return c.sendMessage(server.MessageTypeLeaveRoom, struct{}{})
}

// StartGame asks the room to deal a hand
func (c *Client) StartGame() error {
	return c.sendMessage(server.MessageTypeStartGame, struct{}{})
}

// Act submits a betting decision such as "call" or "raise" with an amount
func (c *Client) Act(action string, amount int) error {
	return c.sendMessage(server.MessageTypePlayerAction, server.PlayerActionData{
		Action: action,
		Amount: amount,
	})
}

// AddBot seats a computer opponent; an empty difficulty uses the room default
func (c *Client) AddBot(difficulty string) error {
	return c.sendMessage(server.MessageTypeAddBot, server.AddBotData{Difficulty: difficulty})
}

// RemoveBot unseats the most recently added bot
func (c *Client) RemoveBot() error {
	return c.sendMessage(server.MessageTypeRemoveBot, struct{}{})
}

// WaitFor discards messages until one of msgType arrives
func (c *Client) WaitFor(ctx context.Context, msgType server.MessageType) (*server.Message, error) {
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				return nil, ErrClosed
			}
			if msg.Type == msgType {
				return msg, nil
			}
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", msgType, ctx.Err())
		}
	}
}

func (c *Client) sendMessage(msgType server.MessageType, data any) error {
	msg, err := server.NewMessage(msgType, data, time.Now())
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return fmt.Errorf("send buffer full")
	}
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() {
		close(c.messages)
		_ = c.Close()
	}()

	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("WebSocket error", "error", err)
			}
			return
		}

		c.logger.Debug("Received message", "type", msg.Type)
		c.track(&msg)

		select {
		case c.messages <- &msg:
		case <-c.done:
			return
		}
	}
}

// track records seat changes so callers can ask who they are
func (c *Client) track(msg *server.Message) {
	switch msg.Type {
	case server.MessageTypeJoinedRoom:
		data, err := Decode[server.JoinedRoomData](msg)
		if err != nil {
			c.logger.Warn("Malformed joined_room", "error", err)
			return
		}
		c.mu.Lock()
		c.playerID = data.PlayerID
		c.roomID = data.RoomID
		c.mu.Unlock()
	case server.MessageTypePlayerLeft:
		data, err := Decode[server.PlayerLeftData](msg)
		if err != nil {
			return
		}
		c.mu.Lock()
		if data.PlayerID == c.playerID {
			c.roomID = ""
		}
		c.mu.Unlock()
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				_ = c.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
