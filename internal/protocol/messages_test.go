package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerrooms/internal/game"
)

func TestMessageEnvelope(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(TypeJoin, Join{Room: "abc", Name: "Alice", Password: "pw"})
	require.NoError(t, err)

	frame, err := msg.Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(frame, &raw))
	assert.Equal(t, "join", raw["type"])
	assert.Contains(t, raw, "timestamp")
	assert.Equal(t, map[string]any{"room": "abc", "name": "Alice", "password": "pw"}, raw["data"])

	parsed, err := Parse(frame)
	require.NoError(t, err)
	var join Join
	require.NoError(t, parsed.Decode(&join))
	assert.Equal(t, Join{Room: "abc", Name: "Alice", Password: "pw"}, join)
}

func TestParseRejectsBadFrames(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("not json"))
	require.Error(t, err)

	_, err = Parse([]byte(`{"data":{}}`))
	require.Error(t, err)
}

func TestMessageWithoutData(t *testing.T) {
	t.Parallel()

	msg, err := Parse([]byte(`{"type":"ready"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeReady, msg.Type)

	var chat Chat
	require.NoError(t, msg.Decode(&chat))
	assert.Empty(t, chat.Text)
}

func TestHostConfigPartialUpdate(t *testing.T) {
	t.Parallel()

	msg, err := Parse([]byte(`{"type":"hostConfig","data":{"bots":4}}`))
	require.NoError(t, err)

	var cfg HostConfig
	require.NoError(t, msg.Decode(&cfg))
	require.NotNil(t, cfg.Bots)
	assert.Equal(t, 4, *cfg.Bots)
	assert.Nil(t, cfg.Stack)
	assert.Nil(t, cfg.Blinds)
}

func TestStateCarriesCardsAsText(t *testing.T) {
	t.Parallel()

	tbl := game.RebuildTable(game.DefaultRoomConfig(), []game.SeatSpec{{Name: "Alice"}, {Name: "Bob"}})
	require.NoError(t, tbl.StartHand())

	msg := MustMessage(TypeState, State{Seat: 0, Table: tbl.Snapshot(0)})

	var decoded struct {
		Seat  int `json:"seat"`
		Table struct {
			Seats []struct {
				HoleCards []string `json:"holeCards"`
			} `json:"seats"`
		} `json:"table"`
	}
	require.NoError(t, msg.Decode(&decoded))
	require.Len(t, decoded.Table.Seats, 2)
	require.Len(t, decoded.Table.Seats[0].HoleCards, 2)
	assert.Len(t, decoded.Table.Seats[0].HoleCards[0], 2)
	assert.Empty(t, decoded.Table.Seats[1].HoleCards)
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	msg := ErrorMessage(CodeForbidden, "only the host can start")
	var e Error
	require.NoError(t, msg.Decode(&e))
	assert.Equal(t, Error{Code: CodeForbidden, Message: "only the host can start"}, e)
}
