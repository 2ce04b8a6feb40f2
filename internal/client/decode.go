package client

import (
	"encoding/json"
	"fmt"

	"github.com/lox/pokerrooms/internal/server"
)

// Decode unpacks a message payload into T
func Decode[T any](msg *server.Message) (T, error) {
	var data T
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return data, fmt.Errorf("decode %s: %w", msg.Type, err)
	}
	return data, nil
}
