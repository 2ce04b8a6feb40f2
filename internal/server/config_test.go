package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:3000", cfg.Address())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Table.SmallBlind)
	assert.Equal(t, 20, cfg.Table.BigBlind)
	assert.Equal(t, 1000, cfg.Table.StartingChips)
	assert.Equal(t, 8, cfg.Table.MaxPlayers)
	assert.Equal(t, 5*time.Second, cfg.RoomConfig().NextHandDelay)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 8080
  log_level = "debug"
}

table {
  small_blind     = 25
  big_blind       = 50
  next_hand_delay = "2s"
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "debug", cfg.Server.LogLevel)

	room := cfg.RoomConfig()
	assert.Equal(t, 25, room.Table.SmallBlind)
	assert.Equal(t, 50, room.Table.BigBlind)
	assert.Equal(t, 1000, room.Table.StartingChips)
	assert.Equal(t, 8, room.Table.MaxPlayers)
	assert.Equal(t, 2*time.Second, room.NextHandDelay)
}

func TestLoadConfigOnlyServerBlock(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `server { port = 9000 }`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Table.BigBlind)
}

func TestLoadConfigInvalidHCL(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `server {`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `server { unknown = 1 }`))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"log level", func(c *Config) { c.Server.LogLevel = "loud" }},
		{"blinds", func(c *Config) { c.Table.SmallBlind = 30 }},
		{"seats", func(c *Config) { c.Table.MaxPlayers = 9 }},
		{"too few seats", func(c *Config) { c.Table.MaxPlayers = 1 }},
		{"delay", func(c *Config) { c.Table.NextHandDelay = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
