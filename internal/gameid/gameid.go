// Package gameid generates hand identifiers: a UUIDv7 whose random bits come
// from the room's generator, encoded as 26 characters of Crockford base32.
// IDs sort by creation time.
package gameid

import (
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of an encoded id
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// rngReader adapts a *rand.Rand to io.Reader for uuid.NewV7FromReader
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], r.rng.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}

// New returns a new hand id drawing its random bits from rng
func New(rng *rand.Rand) string {
	id, err := uuid.NewV7FromReader(rngReader{rng: rng})
	if err != nil {
		// rngReader never fails
		panic(fmt.Sprintf("gameid: %v", err))
	}
	return encoding.EncodeToString(id[:])
}

// Validate checks if an id is well formed (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	if _, err := encoding.DecodeString(id); err != nil {
		return fmt.Errorf("invalid game ID: %w", err)
	}

	return nil
}
