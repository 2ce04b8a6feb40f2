package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/gameid"
)

// Config holds the fixed parameters of a table
type Config struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
	MaxPlayers    int
}

// DefaultConfig returns blinds of 10/20, 1000 chip stacks and eight seats
func DefaultConfig() Config {
	return Config{
		SmallBlind:    10,
		BigBlind:      20,
		StartingChips: 1000,
		MaxPlayers:    8,
	}
}

// Validate checks the config is playable
func (c Config) Validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= 0 {
		return fmt.Errorf("blinds must be positive (got %d/%d)", c.SmallBlind, c.BigBlind)
	}
	if c.SmallBlind > c.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", c.SmallBlind, c.BigBlind)
	}
	if c.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	if c.MaxPlayers < 2 {
		return fmt.Errorf("max players must be at least 2")
	}
	return nil
}

// DeckSource builds the deck for a new hand
type DeckSource func(rng *rand.Rand) *deck.Deck

// Option configures a Table
type Option func(*Table)

// WithDeckSource replaces the shuffled deck used for each hand
func WithDeckSource(src DeckSource) Option {
	return func(t *Table) {
		t.deckSource = src
	}
}

// Table is one poker table and the hand in progress on it
type Table struct {
	roomID     string
	config     Config
	rng        *rand.Rand
	deckSource DeckSource

	players []*Player

	deck           *deck.Deck
	communityCards []deck.Card
	pot            int
	currentBet     int
	dealerIndex    int
	currentIndex   int
	street         Street

	handNumber int
	handID     string
	showdown   *ShowdownResult
}

// NewTable creates an empty table. rng drives shuffles and hand ids.
func NewTable(roomID string, config Config, rng *rand.Rand, opts ...Option) *Table {
	if rng == nil {
		panic("rng is required for table creation")
	}

	t := &Table{
		roomID:     roomID,
		config:     config,
		rng:        rng,
		deckSource: deck.NewShuffledDeck,
		players:    make([]*Player, 0, config.MaxPlayers),
		street:     StreetWaiting,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RoomID returns the id of the room the table belongs to
func (t *Table) RoomID() string { return t.roomID }

// Config returns the stakes and seat limit
func (t *Table) Config() Config { return t.config }

// Street returns the current stage of the hand
func (t *Table) Street() Street { return t.street }

// Pot returns the chips committed this hand and not yet paid out
func (t *Table) Pot() int { return t.pot }

// CurrentBet is the amount each player must have in front of them to stay in this street
func (t *Table) CurrentBet() int { return t.currentBet }

// DealerIndex returns the dealer's seat
func (t *Table) DealerIndex() int { return t.dealerIndex }

// HandNumber counts hands dealt at this table, starting at 1
func (t *Table) HandNumber() int { return t.handNumber }

// HandID returns the identifier of the current or last hand
func (t *Table) HandID() string { return t.handID }

// NumPlayers returns the number of seated players
func (t *Table) NumPlayers() int { return len(t.players) }

// CurrentPlayerIndex returns the acting seat
func (t *Table) CurrentPlayerIndex() int { return t.currentIndex }

// CommunityCards returns a copy of the board
func (t *Table) CommunityCards() []deck.Card {
	return append([]deck.Card(nil), t.communityCards...)
}

// Players returns copies of every seated player in seat order
func (t *Table) Players() []Player {
	out := make([]Player, len(t.players))
	for i, p := range t.players {
		out[i] = p.clone()
	}
	return out
}

// Player returns a copy of the player with the given id
func (t *Table) Player(id string) (Player, bool) {
	if i := t.seatOf(id); i >= 0 {
		return t.players[i].clone(), true
	}
	return Player{}, false
}

// CurrentPlayer returns the player whose turn it is. ok is false outside a
// betting street.
func (t *Table) CurrentPlayer() (p Player, ok bool) {
	if !t.street.Betting() || t.currentIndex < 0 || t.currentIndex >= len(t.players) {
		return Player{}, false
	}
	return t.players[t.currentIndex].clone(), true
}

// TotalChips is every stack plus the pot
func (t *Table) TotalChips() int {
	total := t.pot
	for _, p := range t.players {
		total += p.Chips
	}
	return total
}

func (t *Table) seatOf(id string) int {
	for i, p := range t.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// AddPlayer seats a new player with the starting stack. A player joining
// during a hand sits out until the next one.
func (t *Table) AddPlayer(id, name, avatar string) (Player, error) {
	if t.seatOf(id) >= 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
	}
	if len(t.players) >= t.config.MaxPlayers {
		return Player{}, ErrRoomFull
	}

	p := &Player{
		ID:     id,
		Name:   name,
		Avatar: avatar,
		Chips:  t.config.StartingChips,
	}
	if t.street.Betting() {
		p.Folded = true
	}
	t.players = append(t.players, p)
	return p.clone(), nil
}

// StartHand shuffles a fresh deck, deals hole cards, posts the blinds and
// hands action to the seat after the big blind.
func (t *Table) StartHand() error {
	if t.street.Betting() {
		return ErrHandInProgress
	}

	funded := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return ErrInsufficientPlayers
	}

	if t.dealerIndex >= len(t.players) {
		t.dealerIndex = 0
	}

	t.handNumber++
	t.handID = gameid.New(t.rng)
	t.deck = t.deckSource(t.rng)
	t.communityCards = make([]deck.Card, 0, 5)
	t.pot = 0
	t.currentBet = 0
	t.showdown = nil

	for _, p := range t.players {
		p.resetForHand()
	}
	for _, p := range t.players {
		if p.Active {
			p.HoleCards = t.draw(2)
		}
	}

	t.street = StreetPreflop
	sb := t.nextSeat(t.dealerIndex, (*Player).InHand)
	bb := t.nextSeat(sb, (*Player).InHand)
	t.pot += t.players[sb].commit(t.config.SmallBlind)
	t.pot += t.players[bb].commit(t.config.BigBlind)
	t.currentBet = t.config.BigBlind

	t.currentIndex = bb
	if next := t.nextSeat(bb, (*Player).CanAct); next >= 0 {
		t.currentIndex = next
	}

	if t.roundComplete() {
		t.advanceStreet()
	}
	return nil
}

// RotateDealer moves the button one seat to the left
func (t *Table) RotateDealer() {
	if len(t.players) == 0 {
		t.dealerIndex = 0
		return
	}
	t.dealerIndex = (t.dealerIndex + 1) % len(t.players)
}

// RemovePlayer takes a player out of their seat. If fewer than two players
// remain mid-hand the hand is abandoned: the pot is discarded, not refunded.
func (t *Table) RemovePlayer(id string) error {
	idx := t.seatOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}

	wasCurrent := idx == t.currentIndex
	t.players = append(t.players[:idx], t.players[idx+1:]...)

	if idx < t.dealerIndex {
		t.dealerIndex--
	}
	if t.dealerIndex >= len(t.players) {
		t.dealerIndex = 0
	}
	if idx < t.currentIndex {
		t.currentIndex--
	}
	if t.currentIndex >= len(t.players) {
		t.currentIndex = 0
	}

	if !t.street.Betting() {
		return nil
	}

	if len(t.players) < 2 {
		t.abandonHand()
		return nil
	}

	if t.contenders() == 1 {
		t.finishHand()
		return nil
	}

	// The seat now at currentIndex is the one after the removed player
	if wasCurrent && !t.players[t.currentIndex].CanAct() {
		if next := t.nextSeat(t.currentIndex, (*Player).CanAct); next >= 0 {
			t.currentIndex = next
		}
	}

	if t.roundComplete() {
		t.advanceStreet()
	}
	return nil
}

func (t *Table) abandonHand() {
	t.pot = 0
	t.currentBet = 0
	t.communityCards = nil
	t.street = StreetWaiting
	t.currentIndex = 0
	for _, p := range t.players {
		p.HoleCards = nil
		p.Bet = 0
	}
}

// nextSeat returns the first seat after from (wrapping, at most once around)
// that satisfies ok, or -1 if none does.
func (t *Table) nextSeat(from int, ok func(*Player) bool) int {
	n := len(t.players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if ok(t.players[i]) {
			return i
		}
	}
	return -1
}

func (t *Table) draw(n int) []deck.Card {
	cards, err := t.deck.DrawN(n)
	if err != nil {
		// A hand never uses more than 21 of the 52 cards
		panic(fmt.Sprintf("dealing %d cards: %v", n, err))
	}
	return cards
}
