// Package randutil builds the *rand.Rand values threaded through decks, rooms
// and bot decisions. Nothing in the module reads a global random source.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// NewTimeSeeded returns a generator seeded from the wall clock, for production use.
func NewTimeSeeded() *rand.Rand {
	return New(time.Now().UnixNano())
}

// Child derives an independent generator from parent. Rooms get their own
// child so that one room's draws never shift another room's sequence.
func Child(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(splitmix(parent.Uint64()), splitmix(parent.Uint64())))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
