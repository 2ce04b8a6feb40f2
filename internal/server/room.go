package server

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/pokerrooms/internal/bot"
	"github.com/lox/pokerrooms/internal/game"
)

var (
	ErrNoBots    = errors.New("no bots to remove")
	ErrNotInRoom = errors.New("not in a room")
)

// Notifier delivers a message to one connected player
type Notifier interface {
	Send(playerID string, msg *Message)
}

// RoomConfig holds the settings shared by every room
type RoomConfig struct {
	Table         game.Config
	NextHandDelay time.Duration
}

var botNames = []string{
	"Ada", "Bluffington", "Chipper", "Dealer Dan", "Esme", "Flopsy",
	"Gus", "High Card Hal", "Ivy", "Jackpot", "Kicker", "Lucky Lou",
}

// turn identifies one decision point. A bot decision is only applied if the
// table is still at the turn it was computed for.
type turn struct {
	hand    int
	street  game.Street
	player  string
	actions int
}

// Room owns one table and everything that drives it: the humans watching,
// the bot seats and the timers for bot turns and the next hand. All table
// access goes through the room's mutex.
type Room struct {
	id       string
	config   RoomConfig
	clock    quartz.Clock
	notifier Notifier
	logger   *log.Logger

	mu        sync.Mutex
	rng       *rand.Rand
	table     *game.Table
	humans    []string
	bots      []string
	profiles  map[string]bot.Profile
	actions   int
	scheduled *turn
	announced int
	timers    map[*quartz.Timer]struct{}
	closed    bool
}

// NewRoom creates an empty room. rng is owned by the room from here on.
func NewRoom(id string, config RoomConfig, rng *rand.Rand, clock quartz.Clock, notifier Notifier, logger *log.Logger, opts ...game.Option) *Room {
	return &Room{
		id:       id,
		config:   config,
		clock:    clock,
		notifier: notifier,
		logger:   logger.WithPrefix("room").With("room", id),
		rng:      rng,
		table:    game.NewTable(id, config.Table, rng, opts...),
		profiles: make(map[string]bot.Profile),
		timers:   make(map[*quartz.Timer]struct{}),
	}
}

// ID returns the room id
func (r *Room) ID() string {
	return r.id
}

// Join seats a human player and sends them the current state
func (r *Room) Join(playerID, name, avatar string) (game.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.table.AddPlayer(playerID, name, avatar)
	if err != nil {
		return game.Snapshot{}, err
	}
	r.humans = append(r.humans, playerID)
	r.logger.Info("Player joined", "player", playerID, "name", name, "seats", r.table.NumPlayers())

	state := r.table.Snapshot().Redacted(playerID)
	r.send(playerID, MessageTypeJoinedRoom, JoinedRoomData{RoomID: r.id, PlayerID: playerID, State: state})
	r.broadcast(MessageTypePlayerJoined, PlayerJoinedData{Player: PlayerInfo{ID: p.ID, Name: p.Name, Avatar: p.Avatar}})
	r.broadcastState()
	return state, nil
}

// Leave removes a human player. It reports whether any humans remain.
func (r *Room) Leave(playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.humans, playerID) {
		return len(r.humans) > 0, fmt.Errorf("%w: %s", game.ErrPlayerNotFound, playerID)
	}
	p, _ := r.table.Player(playerID)
	if err := r.removeSeat(playerID); err != nil {
		return len(r.humans) > 0, err
	}
	r.humans = slices.DeleteFunc(r.humans, func(id string) bool { return id == playerID })
	r.logger.Info("Player left", "player", playerID, "seats", r.table.NumPlayers())

	r.broadcast(MessageTypePlayerLeft, PlayerLeftData{PlayerID: playerID, Name: p.Name})
	r.broadcastState()
	r.afterChange()
	return len(r.humans) > 0, nil
}

// Start begins a hand
func (r *Room) Start(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.humans, playerID) {
		return ErrNotInRoom
	}
	return r.startHand()
}

// Act applies a human player's action
func (r *Room) Act(playerID string, action game.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.table.PlayerAction(playerID, action); err != nil {
		r.logger.Debug("Action rejected", "player", playerID, "action", action, "error", err)
		return err
	}
	r.actions++
	r.announceAction(playerID, action, false)
	r.afterChange()
	return nil
}

// AddBot seats a computer player with a freshly drawn personality
func (r *Room) AddBot(difficulty bot.Difficulty) (game.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := "bot-" + uuid.NewString()
	name := fmt.Sprintf("%s (bot)", botNames[r.rng.IntN(len(botNames))])
	p, err := r.table.AddPlayer(id, name, "🤖")
	if err != nil {
		return game.Player{}, err
	}

	profile := bot.NewProfile(r.rng, difficulty)
	r.profiles[id] = profile
	r.bots = append(r.bots, id)
	r.logger.Info("Bot added", "bot", id, "name", name, "profile", profile)

	r.broadcast(MessageTypePlayerJoined, PlayerJoinedData{Player: PlayerInfo{ID: id, Name: name, Avatar: p.Avatar, Bot: true}})
	r.broadcastState()
	r.afterChange()
	return p, nil
}

// RemoveBot removes the most recently added bot
func (r *Room) RemoveBot() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.bots) == 0 {
		return ErrNoBots
	}
	id := r.bots[len(r.bots)-1]
	p, _ := r.table.Player(id)
	if err := r.removeSeat(id); err != nil {
		return err
	}
	r.logger.Info("Bot removed", "bot", id)

	r.broadcast(MessageTypePlayerLeft, PlayerLeftData{PlayerID: id, Name: p.Name})
	r.broadcastState()
	r.afterChange()
	return nil
}

// Snapshot returns the unredacted table state
func (r *Room) Snapshot() game.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Snapshot()
}

// Info summarises the room for listings
func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{
		ID:      r.id,
		Players: len(r.humans),
		Bots:    len(r.bots),
		Street:  r.table.Street().String(),
		Hand:    r.table.HandNumber(),
	}
}

// Close stops any pending timers. The room ignores timers that fire afterwards.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for t := range r.timers {
		t.Stop()
	}
	clear(r.timers)
	r.logger.Debug("Room closed")
}

func (r *Room) startHand() error {
	if err := r.table.StartHand(); err != nil {
		return err
	}
	r.actions++
	r.logger.Info("Hand started", "hand", r.table.HandNumber(), "id", r.table.HandID(), "players", r.table.NumPlayers())

	r.broadcast(MessageTypeGameStarted, GameStartedData{
		HandNumber:  r.table.HandNumber(),
		HandID:      r.table.HandID(),
		DealerIndex: r.table.DealerIndex(),
	})
	r.broadcastState()
	r.afterChange()
	return nil
}

func (r *Room) removeSeat(id string) error {
	if err := r.table.RemovePlayer(id); err != nil {
		return err
	}
	delete(r.profiles, id)
	r.bots = slices.DeleteFunc(r.bots, func(b string) bool { return b == id })
	r.actions++
	return nil
}

// afterChange reacts to the table's new state: it announces a finished hand
// or schedules the acting bot.
func (r *Room) afterChange() {
	if r.closed {
		return
	}

	if r.table.Street() == game.StreetShowdown {
		r.announceShowdown()
		return
	}

	current, ok := r.currentTurn()
	if !ok {
		return
	}
	profile, isBot := r.profiles[current.player]
	if !isBot || (r.scheduled != nil && *r.scheduled == current) {
		return
	}

	action, err := bot.Decide(r.rng, profile, r.table.Snapshot(), current.player)
	if err != nil {
		r.logger.Error("Bot decision failed", "bot", current.player, "error", err)
		return
	}
	delay := profile.ThinkingDelay(r.rng)
	r.scheduled = &current
	r.logger.Debug("Bot thinking", "bot", current.player, "delay", delay, "action", action)

	r.after(delay, func() {
		r.applyBotDecision(current, action)
	})
}

func (r *Room) currentTurn() (turn, bool) {
	p, ok := r.table.CurrentPlayer()
	if !ok {
		return turn{}, false
	}
	return turn{
		hand:    r.table.HandNumber(),
		street:  r.table.Street(),
		player:  p.ID,
		actions: r.actions,
	}, true
}

// applyBotDecision plays a decision computed earlier, unless the table has
// moved on since.
func (r *Room) applyBotDecision(decidedAt turn, action game.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if r.scheduled != nil && *r.scheduled == decidedAt {
		r.scheduled = nil
	}

	current, ok := r.currentTurn()
	if !ok || current != decidedAt {
		r.logger.Debug("Discarding stale bot decision", "bot", decidedAt.player, "hand", decidedAt.hand, "street", decidedAt.street)
		return
	}

	if err := r.table.PlayerAction(decidedAt.player, action); err != nil {
		r.logger.Warn("Bot action rejected, folding", "bot", decidedAt.player, "action", action, "error", err)
		action = game.Fold()
		if err := r.table.PlayerAction(decidedAt.player, action); err != nil {
			r.logger.Error("Bot fold rejected", "bot", decidedAt.player, "error", err)
			return
		}
	}
	r.actions++
	r.announceAction(decidedAt.player, action, true)
	r.afterChange()
}

func (r *Room) announceAction(playerID string, action game.Action, isBot bool) {
	p, _ := r.table.Player(playerID)
	r.logger.Info("Player acted", "player", playerID, "action", action, "street", r.table.Street())
	r.broadcast(MessageTypeActionTaken, ActionTakenData{
		PlayerID: playerID,
		Name:     p.Name,
		Action:   action.Name(),
		Amount:   game.Amount(action),
		Bot:      isBot,
	})
	r.broadcastState()
}

// announceShowdown sends the result of the hand once and schedules the next one
func (r *Room) announceShowdown() {
	hand := r.table.HandNumber()
	if r.announced == hand {
		return
	}
	res, err := r.table.EvaluateShowdown()
	if err != nil {
		r.logger.Error("Showdown unavailable", "hand", hand, "error", err)
		return
	}
	r.announced = hand

	names := make([]string, 0, len(res.Winners))
	for _, id := range res.Winners {
		p, _ := r.table.Player(id)
		names = append(names, p.Name)
	}
	r.logger.Info("Hand finished", "hand", hand, "winners", names, "hand_name", res.CategoryName,
		"payout", res.PerWinnerPayout, "dropped", res.Remainder, "reason", res.Reason)
	r.broadcast(MessageTypeShowdown, ShowdownData{ShowdownResult: res, WinnerNames: names})

	r.after(r.config.NextHandDelay, func() {
		r.nextHand(hand)
	})
}

// nextHand moves the button and deals again, provided nobody started a
// hand manually in the meantime.
func (r *Room) nextHand(finished int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.table.HandNumber() != finished || r.table.Street().Betting() {
		return
	}

	r.table.RotateDealer()
	for _, id := range slices.Clone(r.bots) {
		if p, ok := r.table.Player(id); ok && p.Chips == 0 {
			if err := r.removeSeat(id); err == nil {
				r.logger.Info("Busted bot removed", "bot", id)
				r.broadcast(MessageTypePlayerLeft, PlayerLeftData{PlayerID: id, Name: p.Name})
			}
		}
	}

	if err := r.startHand(); err != nil {
		r.logger.Info("Waiting for players", "error", err)
		r.broadcastState()
	}
}

// after runs f on the room's clock and keeps the timer so Close can stop it
func (r *Room) after(d time.Duration, f func()) {
	var t *quartz.Timer
	t = r.clock.AfterFunc(d, func() {
		r.mu.Lock()
		delete(r.timers, t)
		r.mu.Unlock()
		f()
	})
	r.timers[t] = struct{}{}
}

func (r *Room) send(playerID string, msgType MessageType, data any) {
	msg, err := NewMessage(msgType, data, r.clock.Now())
	if err != nil {
		r.logger.Error("Failed to create message", "type", msgType, "error", err)
		return
	}
	r.notifier.Send(playerID, msg)
}

func (r *Room) broadcast(msgType MessageType, data any) {
	msg, err := NewMessage(msgType, data, r.clock.Now())
	if err != nil {
		r.logger.Error("Failed to create message", "type", msgType, "error", err)
		return
	}
	for _, id := range r.humans {
		r.notifier.Send(id, msg)
	}
}

// broadcastState sends every human the table as they are allowed to see it
func (r *Room) broadcastState() {
	state := r.table.Snapshot()
	for _, id := range r.humans {
		r.send(id, MessageTypeUpdateGame, state.Redacted(id))
	}
}
