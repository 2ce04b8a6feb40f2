package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"
	"github.com/lox/pokerrooms/internal/randutil"
	"github.com/lox/pokerrooms/internal/server"
)

var CLI struct {
	Config   string `short:"c" default:"holdem-server.hcl" env:"POKER_CONFIG" help:"Path to HCL configuration file"`
	Addr     string `short:"a" env:"POKER_ADDR" help:"Address to bind to (overrides config)"`
	Port     int    `short:"p" env:"POKER_PORT" help:"Port to listen on (overrides config)"`
	LogLevel string `short:"l" env:"POKER_LOG_LEVEL" help:"Log level (overrides config)"`
	Seed     int64  `env:"POKER_SEED" help:"Seed for shuffles and bots; 0 seeds from the clock"`
}

func main() {
	// A .env file is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	kctx := kong.Parse(&CLI,
		kong.Name("holdem-server"),
		kong.Description("Multiplayer Texas Hold'em rooms over WebSocket"),
	)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.Port != 0 {
		cfg.Server.Port = CLI.Port
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	switch strings.ToLower(cfg.Server.LogLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	rng := randutil.NewTimeSeeded()
	if CLI.Seed != 0 {
		rng = randutil.New(CLI.Seed)
	}

	room := cfg.RoomConfig()
	logger.Info("Starting Holdem Server",
		"addr", cfg.Address(),
		"stakes", fmt.Sprintf("%d/%d", room.Table.SmallBlind, room.Table.BigBlind),
		"stack", room.Table.StartingChips,
		"seats", room.Table.MaxPlayers,
		"nextHandDelay", room.NextHandDelay)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg.Address(), room, rng, quartz.NewReal(), logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server failed", "error", err)
		stop()
		kctx.Exit(1)
	}
	logger.Info("Server stopped")
}
