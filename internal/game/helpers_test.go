package game

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/stretchr/testify/require"
)

type testTableConfig struct {
	seed    int64
	config  Config
	players int
	chips   []int
	cards   string
}

type testTableOption func(*testTableConfig)

func withSeed(seed int64) testTableOption {
	return func(c *testTableConfig) { c.seed = seed }
}

func withBlinds(small, big int) testTableOption {
	return func(c *testTableConfig) {
		c.config.SmallBlind = small
		c.config.BigBlind = big
	}
}

func withPlayers(n int) testTableOption {
	return func(c *testTableConfig) { c.players = n }
}

// withChips sets each seat's stack, in seat order
func withChips(chips ...int) testTableOption {
	return func(c *testTableConfig) {
		c.chips = chips
		if len(chips) > c.players {
			c.players = len(chips)
		}
	}
}

// withDeck stacks the deck: hole cards are dealt two at a time in seat
// order, then the flop, turn and river.
func withDeck(cards string) testTableOption {
	return func(c *testTableConfig) { c.cards = cards }
}

// newTestTable seats players p1..pN (seat 0 is the dealer) without starting a hand
func newTestTable(t *testing.T, opts ...testTableOption) *Table {
	t.Helper()

	cfg := &testTableConfig{seed: 42, config: DefaultConfig(), players: 2}
	for _, opt := range opts {
		opt(cfg)
	}

	var tableOpts []Option
	if cfg.cards != "" {
		order := deck.MustParseCards(cfg.cards)
		tableOpts = append(tableOpts, WithDeckSource(func(rng *rand.Rand) *deck.Deck {
			return deck.NewStackedDeck(rng, order)
		}))
	}

	table := NewTable("test-room", cfg.config, randutil.New(cfg.seed), tableOpts...)
	for i := 0; i < cfg.players; i++ {
		_, err := table.AddPlayer(fmt.Sprintf("p%d", i+1), fmt.Sprintf("Player %d", i+1), "")
		require.NoError(t, err)
		if i < len(cfg.chips) {
			table.players[i].Chips = cfg.chips[i]
		}
	}
	return table
}

// startTestHand seats the players and starts a hand
func startTestHand(t *testing.T, opts ...testTableOption) *Table {
	t.Helper()
	table := newTestTable(t, opts...)
	require.NoError(t, table.StartHand())
	return table
}

func currentID(t *testing.T, table *Table) string {
	t.Helper()
	p, ok := table.CurrentPlayer()
	require.True(t, ok, "no player to act on %s", table.Street())
	return p.ID
}

func act(t *testing.T, table *Table, playerID string, action Action) {
	t.Helper()
	require.Equal(t, playerID, currentID(t, table), "acting out of turn")
	require.NoError(t, table.PlayerAction(playerID, action))
}

func chips(table *Table, id string) int {
	p, _ := table.Player(id)
	return p.Chips
}
