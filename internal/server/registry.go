package server

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerrooms/internal/randutil"
)

// Registry maps room ids to rooms. Rooms are created on first join and
// closed once their last human leaves.
type Registry struct {
	config   RoomConfig
	clock    quartz.Clock
	notifier Notifier
	logger   *log.Logger

	mu    sync.Mutex
	rng   *rand.Rand
	rooms map[string]*Room
}

// NewRegistry creates an empty registry. Each room gets its own generator
// derived from rng.
func NewRegistry(config RoomConfig, rng *rand.Rand, clock quartz.Clock, notifier Notifier, logger *log.Logger) *Registry {
	return &Registry{
		config:   config,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
		rng:      rng,
		rooms:    make(map[string]*Room),
	}
}

// Join seats a player in a room, creating the room if needed
func (reg *Registry) Join(roomID, playerID, name, avatar string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, existed := reg.rooms[roomID]
	if !existed {
		room = NewRoom(roomID, reg.config, randutil.Child(reg.rng), reg.clock, reg.notifier, reg.logger)
		reg.rooms[roomID] = room
		reg.logger.Info("Room created", "room", roomID)
	}

	if _, err := room.Join(playerID, name, avatar); err != nil {
		if !existed {
			room.Close()
			delete(reg.rooms, roomID)
		}
		return nil, err
	}
	return room, nil
}

// Leave removes a player from a room and tears the room down if no humans remain
func (reg *Registry) Leave(roomID, playerID string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return ErrNotInRoom
	}

	occupied, err := room.Leave(playerID)
	if !occupied {
		room.Close()
		delete(reg.rooms, roomID)
		reg.logger.Info("Room closed", "room", roomID)
	}
	return err
}

// Get returns a room by id
func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[roomID]
	return room, ok
}

// List summarises every room, ordered by id
func (reg *Registry) List() []RoomInfo {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	infos := make([]RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		infos = append(infos, room.Info())
	}
	slices.SortFunc(infos, func(a, b RoomInfo) int { return strings.Compare(a.ID, b.ID) })
	return infos
}

// Close closes every room
func (reg *Registry) Close() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for id, room := range reg.rooms {
		room.Close()
		delete(reg.rooms, id)
	}
}
