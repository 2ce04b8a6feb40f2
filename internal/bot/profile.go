// Package bot decides actions for computer controlled seats.
//
// A bot is nothing more than an immutable Profile. Every call takes the
// random source explicitly, so a seeded *rand.Rand replays the same
// decisions. Nothing here holds state between calls or remembers opponents.
package bot

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Difficulty controls how much noise is added to a bot's read of its hand
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// jitter is the full width of the uniform noise applied to hand strength
func (d Difficulty) jitter() float64 {
	switch d {
	case Easy:
		return 0.4
	case Hard:
		return 0.1
	default:
		return 0.2
	}
}

// ParseDifficulty parses "easy", "medium" or "hard". An empty string is medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "", "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Style is a bot's playing personality
type Style int

const (
	Tight Style = iota
	Loose
	Aggressive
	Passive
	Balanced
)

var styles = [...]Style{Tight, Loose, Aggressive, Passive, Balanced}

func (s Style) String() string {
	switch s {
	case Tight:
		return "tight"
	case Loose:
		return "loose"
	case Aggressive:
		return "aggressive"
	case Passive:
		return "passive"
	case Balanced:
		return "balanced"
	default:
		return "unknown"
	}
}

// shift is the fixed adjustment a style makes to hand strength
func (s Style) shift() float64 {
	switch s {
	case Aggressive:
		return 0.1
	case Tight:
		return -0.1
	default:
		return 0
	}
}

// Profile is a bot's fixed personality, drawn once when the bot is created
type Profile struct {
	Difficulty     Difficulty
	Style          Style
	BluffFrequency float64 // [0, 0.3)
	Aggression     float64 // [0.3, 0.8)
}

// NewProfile draws a random personality for the given difficulty
func NewProfile(rng *rand.Rand, difficulty Difficulty) Profile {
	return Profile{
		Difficulty:     difficulty,
		Style:          styles[rng.IntN(len(styles))],
		BluffFrequency: rng.Float64() * 0.3,
		Aggression:     rng.Float64()*0.5 + 0.3,
	}
}

func (p Profile) String() string {
	return fmt.Sprintf("%s/%s bluff=%.2f aggression=%.2f", p.Difficulty, p.Style, p.BluffFrequency, p.Aggression)
}

const (
	minThinking   = 1000 * time.Millisecond
	thinkingRange = 2000 * time.Millisecond
)

// ThinkingDelay is how long the bot pauses before acting, 1s to 3s. It has
// no bearing on the decision itself.
func (p Profile) ThinkingDelay(rng *rand.Rand) time.Duration {
	return minThinking + time.Duration(rng.Float64()*float64(thinkingRange))
}
