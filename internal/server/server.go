package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	registry    *Registry
	connections map[string]*Connection
	logger      *log.Logger
	mu          sync.RWMutex
}

// NewServer creates a new WebSocket server. rng seeds every room; clock
// drives bot thinking time and the pause between hands.
func NewServer(addr string, config RoomConfig, rng *rand.Rand, clock quartz.Clock, logger *log.Logger) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The browser client may be served from anywhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[string]*Connection),
		logger:      logger.WithPrefix("server"),
	}
	s.registry = NewRegistry(config, rng, clock, s, logger)
	return s
}

// Registry returns the server's rooms
func (s *Server) Registry() *Registry {
	return s.registry
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	r.Get("/rooms", s.handleRooms)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		s.Stop()
		return err
	})
	return g.Wait()
}

// Stop closes every connection and room
func (s *Server) Stop() {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for _, conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
	s.registry.Close()
}

// Send delivers a message to a connected player. Messages for players who
// have gone away are dropped.
func (s *Server) Send(playerID string, msg *Message) {
	s.mu.RLock()
	conn, ok := s.connections[playerID]
	s.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		s.logger.Debug("Failed to send message", "player", playerID, "type", msg.Type, "error", err)
	}
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn.PlayerID()] = conn
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "player", conn.PlayerID(), "total", total)
}

// unregister forgets the connection and takes the player out of their room
func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.connections, conn.PlayerID())
	total := len(s.connections)
	s.mu.Unlock()

	if roomID := conn.Room(); roomID != "" {
		s.logger.Info("Cleaning up disconnected player", "player", conn.PlayerID(), "room", roomID)
		_ = s.registry.Leave(roomID, conn.PlayerID())
	}
	s.logger.Info("Client disconnected", "player", conn.PlayerID(), "total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(ws, uuid.NewString(), s, s.logger)
	s.register(client)
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.registry.List()); err != nil {
		s.logger.Error("Failed to encode rooms", "error", err)
	}
}
