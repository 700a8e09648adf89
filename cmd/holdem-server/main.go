package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerrooms/internal/room"
	"github.com/lox/pokerrooms/internal/server"
)

var CLI struct {
	Config        string `short:"c" long:"config" default:"holdem-server.hcl" help:"Path to HCL configuration file"`
	Addr          string `short:"a" long:"addr" help:"Host to bind to (overrides config)"`
	Port          int    `short:"p" long:"port" env:"PORT" help:"Port to listen on (overrides config)"`
	LogLevel      string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	Seed          int64  `long:"seed" help:"Seed for shuffles and bots, 0 for random (overrides config)"`
	BotDelay      string `long:"bot-delay" help:"Delay before a bot acts, e.g. 900ms (overrides config)"`
	NextHandDelay string `long:"next-hand-delay" help:"Delay before the next hand is dealt, 0s to disable (overrides config)"`
	BotPolicy     string `long:"bot-policy" help:"Bot strategy: heuristic, random or calling (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("holdem-server"),
		kong.Description("Texas Hold'em room server"))

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
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
	if CLI.Seed != 0 {
		cfg.Rooms.Seed = CLI.Seed
	}
	if CLI.BotDelay != "" {
		cfg.Rooms.BotDelay = CLI.BotDelay
	}
	if CLI.NextHandDelay != "" {
		cfg.Rooms.NextHandDelay = CLI.NextHandDelay
	}
	if CLI.BotPolicy != "" {
		cfg.Rooms.BotPolicy = CLI.BotPolicy
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.Level(),
	})

	registry := room.NewRegistry(cfg.RoomOptions(logger))
	srv := server.NewServer(registry, logger)

	logger.Info("Starting Holdem Server",
		"addr", cfg.Addr(),
		"botDelay", cfg.Rooms.BotDelay,
		"nextHandDelay", cfg.Rooms.NextHandDelay,
		"seed", cfg.Rooms.Seed)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, cfg.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		ctx.Exit(1)
	}
	logger.Info("Server stopped")
}
