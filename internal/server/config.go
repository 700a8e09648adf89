package server

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerrooms/internal/bot"
	"github.com/lox/pokerrooms/internal/dealer"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/protocol"
	"github.com/lox/pokerrooms/internal/room"
)

const (
	DefaultAddress       = "localhost"
	DefaultPort          = 3000
	DefaultLogLevel      = "info"
	DefaultNextHandDelay = 2500 * time.Millisecond
)

// Config represents the complete server configuration
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Rooms  *RoomSettings   `hcl:"rooms,block"`
}

// ServerSettings contains listener and logging configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RoomSettings configures every room the server creates. Durations are
// written as Go duration strings, e.g. "900ms". A next_hand_delay of "0s"
// disables automatic dealing. bot_policy is "heuristic", "random" or
// "calling".
type RoomSettings struct {
	BotPolicy     string `hcl:"bot_policy,optional"`
	BotDelay      string `hcl:"bot_delay,optional"`
	NextHandDelay string `hcl:"next_hand_delay,optional"`
	Seed          int64  `hcl:"seed,optional"`
	HistoryLimit  int    `hcl:"history_limit,optional"`
	Bots          *int   `hcl:"default_bots,optional"`
	Stack         int    `hcl:"default_stack,optional"`
	Blinds        string `hcl:"default_blinds,optional"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
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
	return decodeConfig(file.Body)
}

// ParseConfig parses configuration from HCL source
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decodeConfig(file.Body)
}

func decodeConfig(body hcl.Body) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}

	if c.Rooms == nil {
		c.Rooms = &RoomSettings{}
	}
	if c.Rooms.BotPolicy == "" {
		c.Rooms.BotPolicy = bot.PolicyHeuristic
	}
	if c.Rooms.BotDelay == "" {
		c.Rooms.BotDelay = dealer.DefaultBotDelay.String()
	}
	if c.Rooms.NextHandDelay == "" {
		c.Rooms.NextHandDelay = DefaultNextHandDelay.String()
	}
	if c.Rooms.HistoryLimit == 0 {
		c.Rooms.HistoryLimit = game.DefaultHistoryLimit
	}
	if c.Rooms.Bots == nil {
		bots := game.DefaultBotCount
		c.Rooms.Bots = &bots
	}
	if c.Rooms.Stack == 0 {
		c.Rooms.Stack = game.DefaultStartingStack
	}
	if c.Rooms.Blinds == "" {
		c.Rooms.Blinds = game.FormatBlinds(game.DefaultSmallBlind, game.DefaultBigBlind)
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}

	if _, err := bot.NewPolicy(c.Rooms.BotPolicy, log.Default()); err != nil {
		return fmt.Errorf("rooms: bot_policy: %w", err)
	}
	botDelay, err := time.ParseDuration(c.Rooms.BotDelay)
	if err != nil {
		return fmt.Errorf("rooms: bot_delay: %w", err)
	}
	if botDelay <= 0 {
		return fmt.Errorf("rooms: bot_delay must be positive")
	}
	nextHand, err := time.ParseDuration(c.Rooms.NextHandDelay)
	if err != nil {
		return fmt.Errorf("rooms: next_hand_delay: %w", err)
	}
	if nextHand < 0 {
		return fmt.Errorf("rooms: next_hand_delay must not be negative")
	}
	if c.Rooms.HistoryLimit < 1 {
		return fmt.Errorf("rooms: history_limit must be positive")
	}
	if parts := strings.Split(c.Rooms.Blinds, ","); len(parts) != 2 {
		return fmt.Errorf("rooms: default_blinds must be written as \"sb,bb\"")
	}
	return nil
}

// Addr returns the full listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Level returns the configured log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.Server.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// RoomOptions converts the room settings into options for a room registry.
// The config must have passed Validate.
func (c *Config) RoomOptions(logger *log.Logger) room.Options {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	botDelay, _ := time.ParseDuration(c.Rooms.BotDelay)
	nextHand, _ := time.ParseDuration(c.Rooms.NextHandDelay)
	policy, _ := bot.NewPolicy(c.Rooms.BotPolicy, logger)
	return room.Options{
		Logger:        logger,
		Policy:        policy,
		Seed:          c.Rooms.Seed,
		BotDelay:      botDelay,
		NextHandDelay: nextHand,
		HistoryLimit:  c.Rooms.HistoryLimit,
		DefaultConfig: room.ClampConfig(protocol.LobbyConfig{
			Bots:   *c.Rooms.Bots,
			Stack:  c.Rooms.Stack,
			Blinds: c.Rooms.Blinds,
		}),
	}
}
