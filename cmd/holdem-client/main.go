package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerrooms/internal/client"
	"github.com/lox/pokerrooms/internal/tui"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"holdem-client.hcl" help:"Path to HCL configuration file"`
	Server   string `short:"s" long:"server" help:"Server URL to connect to (overrides config)"`
	Name     string `short:"n" long:"name" help:"Display name (overrides config)"`
	Room     string `short:"r" long:"room" help:"Room code to join (overrides config)"`
	Password string `short:"p" long:"password" env:"HOLDEM_PASSWORD" help:"Room password (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	LogFile  string `long:"log-file" help:"Log file path (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := client.LoadClientConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	if CLI.Server != "" {
		cfg.Server.URL = CLI.Server
	}
	if CLI.Name != "" {
		cfg.Player.Name = CLI.Name
	}
	if CLI.Room != "" {
		cfg.Player.Room = CLI.Room
	}
	if CLI.Password != "" {
		cfg.Player.Password = CLI.Password
	}
	if CLI.LogLevel != "" {
		cfg.UI.LogLevel = CLI.LogLevel
	}
	if CLI.LogFile != "" {
		cfg.UI.LogFile = CLI.LogFile
	}

	if cfg.Player.Name == "" {
		cfg.Player.Name = prompt("Enter your name: ")
	}
	if cfg.Player.Room == "" {
		cfg.Player.Room = prompt("Room code: ")
	}
	if cfg.Player.Password == "" {
		cfg.Player.Password = prompt("Room password: ")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		ctx.Exit(1)
	}
	defer func() { _ = logFile.Close() }()

	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	logger.Info("Starting Holdem Client",
		"server", cfg.Server.URL,
		"room", cfg.Player.Room,
		"name", cfg.Player.Name,
		"config", CLI.Config)

	wsClient := client.NewClient(cfg.Server.URL, logger)

	connectCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ConnectTimeout)*time.Second)
	err = wsClient.Connect(connectCtx)
	cancel()
	if err != nil {
		fmt.Printf("Failed to connect to server: %v\n", err)
		ctx.Exit(1)
	}
	defer func() { _ = wsClient.Disconnect() }()

	if err := wsClient.Join(cfg.Player.Room, cfg.Player.Name, cfg.Player.Password); err != nil {
		fmt.Printf("Failed to join room: %v\n", err)
		ctx.Exit(1)
	}

	model := tui.NewModel(wsClient, wsClient.Messages(), logger)
	model.AddLogEntry("=== Texas Hold'em ===")
	model.AddLogEntry("Connected to " + cfg.Server.URL)
	model.AddLogEntry("Commands: " + tui.HelpText)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		ctx.Exit(1)
	}
}

func prompt(label string) string {
	fmt.Print(label)
	var input string
	_, _ = fmt.Scanln(&input)
	return strings.TrimSpace(input)
}
