package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/lox/pokerrooms/internal/client"
	"github.com/lox/pokerrooms/internal/tui"
)

var CLI struct {
	Config   string `short:"c" default:"holdem-client.hcl" env:"POKER_CLIENT_CONFIG" help:"Path to HCL configuration file"`
	Server   string `short:"s" env:"POKER_SERVER" help:"Server URL to connect to (overrides config)"`
	Room     string `short:"r" env:"POKER_ROOM" help:"Room to join (overrides config)"`
	Player   string `short:"p" env:"POKER_PLAYER" help:"Player name (overrides config)"`
	Avatar   string `env:"POKER_AVATAR" help:"Avatar shown next to your name (overrides config)"`
	Bots     int    `short:"b" help:"Bots to seat after joining (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	LogFile  string `help:"Log file path (overrides config)"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name("holdem-client"),
		kong.Description("Play in a Hold'em room from the terminal"),
	)

	cfg, err := client.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	if CLI.Server != "" {
		cfg.Server.URL = CLI.Server
	}
	if CLI.Room != "" {
		cfg.Player.Room = CLI.Room
	}
	if CLI.Player != "" {
		cfg.Player.Name = CLI.Player
	}
	if CLI.Avatar != "" {
		cfg.Player.Avatar = CLI.Avatar
	}
	if CLI.Bots != 0 {
		cfg.Player.Bots = CLI.Bots
	}
	if CLI.LogLevel != "" {
		cfg.UI.LogLevel = CLI.LogLevel
	}
	if CLI.LogFile != "" {
		cfg.UI.LogFile = CLI.LogFile
	}

	if strings.TrimSpace(cfg.Player.Name) == "" {
		fmt.Print("Enter your player name: ")
		var input string
		_, _ = fmt.Scanln(&input)
		cfg.Player.Name = strings.TrimSpace(input)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		ctx.Exit(1)
	}
	defer func() { _ = logFile.Close() }()

	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(cfg.UI.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("Starting Holdem Client",
		"server", cfg.Server.URL,
		"player", cfg.Player.Name,
		"room", cfg.Player.Room,
		"config", CLI.Config)

	if err := run(cfg, logger); err != nil {
		logger.Error("Client failed", "error", err)
		fmt.Printf("Error: %v\n", err)
		_ = logFile.Close()
		ctx.Exit(1)
	}
}

func run(cfg *client.Config, logger *log.Logger) error {
	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ConnectTimeout)*time.Second)
	defer cancel()

	conn, err := client.Dial(dialCtx, cfg.Server.URL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	session := tui.Session{Name: cfg.Player.Name, Avatar: cfg.Player.Avatar, Room: cfg.Player.Room}
	if err := conn.JoinRoom(session.Room, session.Name, session.Avatar); err != nil {
		return err
	}
	for range cfg.Player.Bots {
		if err := conn.AddBot(""); err != nil {
			return err
		}
	}

	program := tea.NewProgram(tui.NewModel(conn, session, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
