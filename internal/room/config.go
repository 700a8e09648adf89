package room

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerrooms/internal/bot"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/protocol"
)

const (
	MaxCodeLength     = 32
	MaxNameLength     = 24
	MaxPasswordLength = 48
	MaxChatLength     = 300
)

// Options configures every room created by a Registry
type Options struct {
	Clock         quartz.Clock
	Logger        *log.Logger
	Policy        bot.Policy
	Seed          int64
	BotDelay      time.Duration
	NextHandDelay time.Duration
	HistoryLimit  int
	DefaultConfig protocol.LobbyConfig
}

// DefaultLobbyConfig is the configuration of a new room
func DefaultLobbyConfig() protocol.LobbyConfig {
	return protocol.LobbyConfig{
		Bots:   game.DefaultBotCount,
		Stack:  game.DefaultStartingStack,
		Blinds: game.FormatBlinds(game.DefaultSmallBlind, game.DefaultBigBlind),
	}
}

// ClampConfig forces a lobby config into range. Malformed blinds fall back
// to the defaults.
func ClampConfig(c protocol.LobbyConfig) protocol.LobbyConfig {
	rc := RoomConfig(c)
	return protocol.LobbyConfig{
		Bots:   rc.BotCount,
		Stack:  rc.StartingStack,
		Blinds: game.FormatBlinds(rc.SmallBlind, rc.BigBlind),
	}
}

// RoomConfig converts a lobby config into the engine's table config
func RoomConfig(c protocol.LobbyConfig) game.RoomConfig {
	sb, bb := game.ParseBlinds(c.Blinds)
	return game.RoomConfig{
		SmallBlind:    sb,
		BigBlind:      bb,
		StartingStack: c.Stack,
		BotCount:      c.Bots,
	}.Clamp()
}

func applyHostConfig(c protocol.LobbyConfig, update protocol.HostConfig) protocol.LobbyConfig {
	if update.Bots != nil {
		c.Bots = *update.Bots
	}
	if update.Stack != nil {
		c.Stack = *update.Stack
	}
	if update.Blinds != nil {
		c.Blinds = *update.Blinds
	}
	return ClampConfig(c)
}

// truncate trims s and cuts it to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
