package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerrooms/internal/bot"
	"github.com/lox/pokerrooms/internal/dealer"
	"github.com/lox/pokerrooms/internal/protocol"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:3000", cfg.Addr())
	assert.Equal(t, log.InfoLevel, cfg.Level())

	opts := cfg.RoomOptions(nil)
	assert.IsType(t, &bot.Heuristic{}, opts.Policy)
	assert.Equal(t, dealer.DefaultBotDelay, opts.BotDelay)
	assert.Equal(t, DefaultNextHandDelay, opts.NextHandDelay)
	assert.Equal(t, protocol.LobbyConfig{Bots: 3, Stack: 1000, Blinds: "10,20"}, opts.DefaultConfig)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()
	src := `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

rooms {
  bot_policy      = "random"
  bot_delay       = "250ms"
  next_hand_delay = "0s"
  seed            = 42
  default_bots    = 0
  default_stack   = 500000
  default_blinds  = "5,10"
}
`
	cfg, err := ParseConfig([]byte(src), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, log.DebugLevel, cfg.Level())

	opts := cfg.RoomOptions(nil)
	assert.Equal(t, bot.Random{MaxRaiseBlinds: bot.DefaultRandomRaiseBlinds}, opts.Policy)
	assert.Equal(t, 250*time.Millisecond, opts.BotDelay)
	assert.Zero(t, opts.NextHandDelay)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, protocol.LobbyConfig{Bots: 0, Stack: 100000, Blinds: "5,10"}, opts.DefaultConfig)
}

func TestParseConfigFillsMissingBlocks(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig([]byte(`server { port = 8081 }`), "partial.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8081", cfg.Addr())
	assert.Equal(t, 3, *cfg.Rooms.Bots)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	tests := map[string]func(*Config){
		"port":            func(c *Config) { c.Server.Port = 70000 },
		"bot policy":      func(c *Config) { c.Rooms.BotPolicy = "gto" },
		"log level":       func(c *Config) { c.Server.LogLevel = "loud" },
		"bot delay":       func(c *Config) { c.Rooms.BotDelay = "soon" },
		"zero bot delay":  func(c *Config) { c.Rooms.BotDelay = "0s" },
		"next hand delay": func(c *Config) { c.Rooms.NextHandDelay = "-1s" },
		"history":         func(c *Config) { c.Rooms.HistoryLimit = -1 },
		"blinds":          func(c *Config) { c.Rooms.Blinds = "10" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`rooms { seed = 7 }`), 0o600))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Rooms.Seed)

	require.NoError(t, os.WriteFile(path, []byte(`rooms {`), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
