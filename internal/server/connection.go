package server

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/pokerrooms/internal/bot"
	"github.com/lox/pokerrooms/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	maxNameLength = 24
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// Connection represents a WebSocket connection to a client. The player id
// is assigned when the client connects and is used for every room it joins.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	playerID  string
	roomID    string
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, playerID string, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:     conn,
		send:     make(chan *Message, 256),
		playerID: playerID,
		server:   server,
		logger:   logger.WithPrefix("conn").With("player", playerID),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.cancel()
		close(c.send)
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client without blocking
func (c *Connection) SendMessage(msg *Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ctx.Err() != nil {
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, dropping connection")
		go func() { _ = c.Close() }()
		return ErrConnectionClosed
	}
}

// PlayerID returns the id assigned to this connection
func (c *Connection) PlayerID() string {
	return c.playerID
}

// Room returns the room the player is in, if any
func (c *Connection) Room() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

func (c *Connection) setRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeLeaveRoom:
		c.handleLeaveRoom()

	case MessageTypeStartGame:
		c.withRoom(func(room *Room) error {
			return room.Start(c.playerID)
		})

	case MessageTypePlayerAction:
		var data PlayerActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse player action data")
			return
		}
		action, err := game.ParseAction(data.Action, data.Amount)
		if err != nil {
			c.sendError(errorCode(err), err.Error())
			return
		}
		c.withRoom(func(room *Room) error {
			return room.Act(c.playerID, action)
		})

	case MessageTypeAddBot:
		var data AddBotData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError("invalid_message", "Failed to parse add bot data")
				return
			}
		}
		difficulty, err := bot.ParseDifficulty(data.Difficulty)
		if err != nil {
			c.sendError("invalid_message", err.Error())
			return
		}
		c.withRoom(func(room *Room) error {
			_, err := room.AddBot(difficulty)
			return err
		})

	case MessageTypeRemoveBot:
		c.withRoom(func(room *Room) error {
			return room.RemoveBot()
		})

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	roomID := strings.TrimSpace(data.RoomID)
	name := strings.TrimSpace(data.PlayerName)
	if roomID == "" || name == "" {
		c.sendError("invalid_message", "Room id and player name are required")
		return
	}
	if len([]rune(name)) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}

	if current := c.Room(); current != "" {
		c.sendError("already_joined", "Already in room "+current)
		return
	}

	c.logger.Info("Join room request", "room", roomID, "name", name)
	c.setRoom(roomID)
	if _, err := c.server.registry.Join(roomID, c.playerID, name, data.Avatar); err != nil {
		c.setRoom("")
		c.sendError(errorCode(err), err.Error())
		return
	}

	// unregister may have run before the seat existed
	if c.ctx.Err() != nil {
		c.logger.Debug("Connection closed while joining", "room", roomID)
		_ = c.server.registry.Leave(roomID, c.playerID)
	}
}

func (c *Connection) handleLeaveRoom() {
	roomID := c.Room()
	if roomID == "" {
		c.sendError(errorCode(ErrNotInRoom), ErrNotInRoom.Error())
		return
	}
	c.setRoom("")
	if err := c.server.registry.Leave(roomID, c.playerID); err != nil {
		c.logger.Debug("Leave failed", "room", roomID, "error", err)
	}
}

// withRoom runs f against the player's room and reports any error back
func (c *Connection) withRoom(f func(*Room) error) {
	room, ok := c.server.registry.Get(c.Room())
	if !ok {
		c.sendError(errorCode(ErrNotInRoom), ErrNotInRoom.Error())
		return
	}
	if err := f(room); err != nil {
		c.sendError(errorCode(err), err.Error())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	}, time.Now())
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}
