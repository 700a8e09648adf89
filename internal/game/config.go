package game

import (
	"strconv"
	"strings"
)

const (
	DefaultSmallBlind    = 10
	DefaultBigBlind      = 20
	DefaultStartingStack = 1000
	DefaultBotCount      = 3

	MinBots  = 0
	MaxBots  = 10
	MinStack = 100
	MaxStack = 100000

	DefaultHistoryLimit = 60

	// MaxSeats is the most seats one deck can serve: two hole cards each,
	// five board cards and three burns.
	MaxSeats = 22
)

// RoomConfig holds the table parameters fixed when a table is rebuilt
type RoomConfig struct {
	SmallBlind    int `json:"smallBlind"`
	BigBlind      int `json:"bigBlind"`
	StartingStack int `json:"startingStack"`
	BotCount      int `json:"botCount"`
}

// DefaultRoomConfig returns the configuration used by a freshly created room
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		SmallBlind:    DefaultSmallBlind,
		BigBlind:      DefaultBigBlind,
		StartingStack: DefaultStartingStack,
		BotCount:      DefaultBotCount,
	}
}

// Clamp returns a copy of the config with every field forced into range.
// Out-of-range values are never an error.
func (c RoomConfig) Clamp() RoomConfig {
	c.BotCount = clamp(c.BotCount, MinBots, MaxBots)
	c.StartingStack = clamp(c.StartingStack, MinStack, MaxStack)
	if c.SmallBlind <= 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		c.SmallBlind, c.BigBlind = DefaultSmallBlind, DefaultBigBlind
	}
	return c
}

// ParseBlinds parses blinds written as "sb,bb". Malformed input falls back
// to the default blinds.
func ParseBlinds(s string) (small, big int) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return DefaultSmallBlind, DefaultBigBlind
	}
	sb, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	bb, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || sb <= 0 || bb <= 0 || sb > bb {
		return DefaultSmallBlind, DefaultBigBlind
	}
	return sb, bb
}

// FormatBlinds is the inverse of ParseBlinds
func FormatBlinds(small, big int) string {
	return strconv.Itoa(small) + "," + strconv.Itoa(big)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
