// Package game implements a single Texas Hold'em table: seating, blinds,
// betting rounds, street progression and showdown payout.
//
// A Table is not safe for concurrent use. Callers serialise every mutation
// for a table, typically behind the room that owns it. The package performs
// no I/O; randomness comes from the *rand.Rand handed to NewTable.
//
// Basic flow:
//
//	t := game.NewTable("room-1", game.DefaultConfig(), rng)
//	t.AddPlayer("p1", "Alice", "🦊")
//	t.AddPlayer("p2", "Bob", "🐻")
//	if err := t.StartHand(); err != nil { ... }
//	p, _ := t.CurrentPlayer()
//	err := t.PlayerAction(p.ID, game.Call())
//
// When the river completes, or every player but one folds, the table moves
// to StreetShowdown and pays the pot. EvaluateShowdown returns that result.
package game
