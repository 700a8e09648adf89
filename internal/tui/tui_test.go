package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/protocol"
)

type sent struct {
	typ  protocol.MessageType
	data any
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(typ protocol.MessageType, data any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{typ, data})
	return nil
}

func newTestModel(t *testing.T) (*Model, *fakeSender, chan *protocol.Message) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	sender := &fakeSender{}
	incoming := make(chan *protocol.Message, 16)
	m := NewModel(sender, incoming, logger)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, sender, incoming
}

func deliver(m *Model, typ protocol.MessageType, data any) {
	m.Update(ServerMsg{Message: protocol.MustMessage(typ, data)})
}

func typeLine(m *Model, line string) tea.Cmd {
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestParseCommand(t *testing.T) {
	t.Parallel()
	four, big, blinds := 4, 5000, "25,50"

	tests := []struct {
		input string
		want  *Command
	}{
		{"fold", &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: "fold"}}},
		{"  CHECK ", &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: "check"}}},
		{"call", &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: "call"}}},
		{"raise 60", &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: "raise", Amount: 60}}},
		{"raise to $80", &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: "raise", Amount: 80}}},
		{"bet 40", &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: "raise", Amount: 40}}},
		{"ready", &Command{Type: protocol.TypeReady}},
		{"unready", &Command{Type: protocol.TypeUnready}},
		{"start", &Command{Type: protocol.TypeStart}},
		{"lobby", &Command{Type: protocol.TypeGetLobby}},
		{"host", &Command{Type: protocol.TypePingHost}},
		{"bots 4", &Command{Type: protocol.TypeHostConfig, Data: protocol.HostConfig{Bots: &four}}},
		{"stack 5000", &Command{Type: protocol.TypeHostConfig, Data: protocol.HostConfig{Stack: &big}}},
		{"blinds 25,50", &Command{Type: protocol.TypeHostConfig, Data: protocol.HostConfig{Blinds: &blinds}}},
		{"topup 2 500", &Command{Type: protocol.TypeTopUp, Data: protocol.TopUp{Seat: 2, Amount: 500}}},
		{"say call me maybe", &Command{Type: protocol.TypeChat, Data: protocol.Chat{Text: "call me maybe"}}},
		{"nice hand", &Command{Type: protocol.TypeChat, Data: protocol.Chat{Text: "nice hand"}}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseCommandErrors(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"raise", "raise lots", "bots", "topup 1", "blinds"} {
		_, err := ParseCommand(input)
		assert.Error(t, err, input)
	}

	_, err := ParseCommand("quit")
	assert.ErrorIs(t, err, ErrQuit)

	cmd, err := ParseCommand("   ")
	assert.NoError(t, err)
	assert.Nil(t, cmd)

	cmd, err = ParseCommand("say   ")
	assert.NoError(t, err)
	assert.Nil(t, cmd)
}

func TestModelTracksLobbyAndHost(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)

	deliver(m, protocol.TypeWelcome, protocol.Welcome{ClientID: "a", Room: "felt", Name: "Alice", HostID: "a", IsHost: true})
	assert.True(t, m.IsHost())
	require.NotEmpty(t, m.Log())
	assert.Contains(t, m.Log()[0], "Joined room felt as Alice (host)")

	deliver(m, protocol.TypeLobby, protocol.Lobby{
		Room:   "felt",
		HostID: "a",
		Members: []protocol.Member{
			{ID: "a", Name: "Alice", Seat: 0},
			{ID: "b", Name: "Bob", Seat: 1, Ready: true},
		},
		Config: protocol.LobbyConfig{Bots: 2, Stack: 1000, Blinds: "10,20"},
	})
	view := m.View()
	assert.Contains(t, view, "Room felt")
	assert.Contains(t, view, "Bob")
	assert.Contains(t, view, "bots 2")
	assert.Contains(t, view, "You are the host")

	deliver(m, protocol.TypeHostChanged, protocol.HostChanged{HostID: "b"})
	assert.False(t, m.IsHost())
	assert.Contains(t, m.Log()[len(m.Log())-1], "Host changed to Bob")
}

func TestModelShowsTurnPrompt(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)

	deliver(m, protocol.TypeWelcome, protocol.Welcome{ClientID: "a", Room: "felt", Name: "Alice"})
	deliver(m, protocol.TypeState, protocol.State{
		Seat: 0,
		Table: game.PublicTableView{
			Viewer:         0,
			HandNumber:     1,
			HandActive:     true,
			Street:         game.Preflop,
			Pot:            30,
			CurrentBet:     20,
			ToAct:          0,
			DealerSeat:     0,
			SmallBlindSeat: 0,
			BigBlindSeat:   1,
			Seats: []game.SeatView{
				{ID: 0, Name: "Alice", Stack: 990, Bet: 10, InHand: true, HoleCards: deck.MustParseCards("AsKd")},
				{ID: 1, Name: "Bot 1", IsBot: true, Stack: 980, Bet: 20, InHand: true, HoleCards: []deck.Card{}},
			},
		},
	})

	assert.True(t, m.MyTurn())
	view := m.View()
	assert.Contains(t, view, "Your turn")
	assert.Contains(t, view, "call 10")
	assert.Contains(t, view, "Hand #1 · preflop")
	assert.Contains(t, view, "Pot: 30")
	assert.Contains(t, view, "Alice (you)")
}

func TestModelLogsTableEvents(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)

	deliver(m, protocol.TypeHistory, protocol.History{HandNumber: 1, Line: "Alice calls 10"})
	deliver(m, protocol.TypeChat, protocol.Chat{Name: "Bob", Text: "gl"})
	deliver(m, protocol.TypeHandSettled, protocol.HandSettled{
		HandNumber: 1,
		Showdown:   game.ShowdownInfo{WinnerNames: []string{"Bob"}, Label: "Flush"},
		Payouts:    []game.Payout{{Seat: 1, Amount: 120}},
	})
	deliver(m, protocol.TypeError, protocol.Error{Code: protocol.CodeRejected, Message: "action rejected: not your turn"})

	log := strings.Join(m.Log(), "\n")
	assert.Contains(t, log, "Alice calls 10")
	assert.Contains(t, log, "Bob:")
	assert.Contains(t, log, "gl")
	assert.Contains(t, log, "Hand #1: Bob won 120 (Flush)")
	assert.Contains(t, log, "not your turn")
}

func TestEnterSendsCommand(t *testing.T) {
	t.Parallel()
	m, sender, _ := newTestModel(t)

	typeLine(m, "raise 60")
	require.Len(t, sender.sent, 1)
	assert.Equal(t, protocol.TypeAction, sender.sent[0].typ)
	assert.Equal(t, protocol.Action{Action: "raise", Amount: 60}, sender.sent[0].data)
	assert.Empty(t, m.input.Value())

	typeLine(m, "raise")
	assert.Len(t, sender.sent, 1)
	assert.Contains(t, m.Log()[len(m.Log())-1], "missing number")

	sender.err = errors.New("boom")
	typeLine(m, "fold")
	assert.Contains(t, m.Log()[len(m.Log())-1], "send failed: boom")
}

func TestQuitCommand(t *testing.T) {
	t.Parallel()
	m, sender, _ := newTestModel(t)

	cmd := typeLine(m, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, sender.sent)
	assert.Empty(t, m.View())
}

func TestDisconnectStopsSending(t *testing.T) {
	t.Parallel()
	m, sender, incoming := newTestModel(t)

	close(incoming)
	msg := m.waitForMessage()()
	assert.IsType(t, DisconnectedMsg{}, msg)
	m.Update(msg)

	typeLine(m, "call")
	assert.Empty(t, sender.sent)
	assert.Contains(t, m.Log()[len(m.Log())-1], "not connected")
}

func TestFormatCards(t *testing.T) {
	t.Parallel()
	assert.Empty(t, FormatCards(nil))
	got := FormatCards(deck.MustParseCards("AsKh"))
	assert.True(t, strings.HasPrefix(got, "["))
	assert.Contains(t, got, "A♠")
	assert.Contains(t, got, "K♥")
}
