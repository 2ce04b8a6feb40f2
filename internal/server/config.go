package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokerrooms/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Table  *TableSettings  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableSettings applies to every room the server creates
type TableSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	MaxPlayers    int    `hcl:"max_players,optional"`
	NextHandDelay string `hcl:"next_hand_delay,optional"`
}

const (
	defaultAddress       = "localhost"
	defaultPort          = 3000
	defaultLogLevel      = "info"
	defaultNextHandDelay = "5s"
)

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	table := game.DefaultConfig()
	return &Config{
		Server: &ServerSettings{
			Address:  defaultAddress,
			Port:     defaultPort,
			LogLevel: defaultLogLevel,
		},
		Table: &TableSettings{
			SmallBlind:    table.SmallBlind,
			BigBlind:      table.BigBlind,
			StartingChips: table.StartingChips,
			MaxPlayers:    table.MaxPlayers,
			NextHandDelay: defaultNextHandDelay,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server == nil {
		c.Server = defaults.Server
	}
	if c.Table == nil {
		c.Table = defaults.Table
	}

	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaults.Server.LogLevel
	}

	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = defaults.Table.SmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = defaults.Table.BigBlind
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = defaults.Table.StartingChips
	}
	if c.Table.MaxPlayers == 0 {
		c.Table.MaxPlayers = defaults.Table.MaxPlayers
	}
	if c.Table.NextHandDelay == "" {
		c.Table.NextHandDelay = defaults.Table.NextHandDelay
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server == nil || c.Table == nil {
		return fmt.Errorf("server and table settings are required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if err := c.GameConfig().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if c.Table.MaxPlayers > 8 {
		return fmt.Errorf("table: max players must be between 2 and 8")
	}

	delay, err := time.ParseDuration(c.Table.NextHandDelay)
	if err != nil {
		return fmt.Errorf("table: invalid next_hand_delay: %w", err)
	}
	if delay < 0 {
		return fmt.Errorf("table: next_hand_delay must not be negative")
	}
	return nil
}

// Address returns the listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig returns the table parameters for new rooms
func (c *Config) GameConfig() game.Config {
	return game.Config{
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		StartingChips: c.Table.StartingChips,
		MaxPlayers:    c.Table.MaxPlayers,
	}
}

// RoomConfig returns the settings every room is created with. Call
// Validate first; an unparseable delay falls back to the default.
func (c *Config) RoomConfig() RoomConfig {
	delay, err := time.ParseDuration(c.Table.NextHandDelay)
	if err != nil {
		delay, _ = time.ParseDuration(defaultNextHandDelay)
	}
	return RoomConfig{
		Table:         c.GameConfig(),
		NextHandDelay: delay,
	}
}
