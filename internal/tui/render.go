package tui

import (
	"fmt"
	"strings"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/protocol"
)

// renderSidebar shows the lobby before a game starts and the table after
func (m *Model) renderSidebar() string {
	var b strings.Builder

	if m.lobby != nil {
		b.WriteString(roomTitleStyle.Render(" Room " + m.lobby.Room + " "))
		b.WriteString("\n")
		cfg := m.lobby.Config
		b.WriteString(mutedStyle.Render(fmt.Sprintf("bots %d · stack %d · blinds %s", cfg.Bots, cfg.Stack, cfg.Blinds)))
		b.WriteString("\n\n")
	}

	if m.state != nil {
		b.WriteString(renderTable(m.state.Table, m.state.Seat))
		return b.String()
	}

	if m.lobby == nil {
		b.WriteString(mutedStyle.Render("Waiting for lobby..."))
		return b.String()
	}
	for _, mem := range m.lobby.Members {
		line := mem.Name
		if mem.ID == m.lobby.HostID {
			line += " ★"
		}
		if mem.Ready {
			line = winStyle.Render(line + " ✓")
		} else {
			line = seatStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderTable draws a table view for viewer
func renderTable(view game.PublicTableView, viewer int) string {
	var b strings.Builder

	if view.HandNumber > 0 {
		b.WriteString(handStyle.Render(fmt.Sprintf("Hand #%d · %s", view.HandNumber, view.Street)))
		b.WriteString("\n")
	}
	if len(view.Board) > 0 {
		b.WriteString("Board " + FormatCards(view.Board))
		b.WriteString("\n")
	}
	b.WriteString(noticeStyle.Render(fmt.Sprintf("Pot: %d", view.Pot)))
	if view.CurrentBet > 0 {
		b.WriteString(" | ")
		b.WriteString(noticeStyle.Render(fmt.Sprintf("Bet: %d", view.CurrentBet)))
	}
	b.WriteString("\n\n")

	for _, s := range view.Seats {
		b.WriteString(renderSeat(view, s, viewer))
		b.WriteString("\n")
	}

	if view.Showdown != nil && !view.HandActive {
		b.WriteString("\n")
		b.WriteString(winStyle.Render(fmt.Sprintf("%s (%s)", strings.Join(view.Showdown.WinnerNames, ", "), view.Showdown.Label)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderSeat(view game.PublicTableView, s game.SeatView, viewer int) string {
	marker := "  "
	if view.HandActive && view.ToAct == s.ID {
		marker = "→ "
	}

	var tags []string
	if s.ID == view.DealerSeat {
		tags = append(tags, "D")
	}
	if s.ID == view.SmallBlindSeat {
		tags = append(tags, "SB")
	}
	if s.ID == view.BigBlindSeat {
		tags = append(tags, "BB")
	}

	name := s.Name
	if s.ID == viewer {
		name += " (you)"
	}
	line := fmt.Sprintf("%s%d %s %d", marker, s.ID, name, s.Stack)
	if len(tags) > 0 {
		line += " [" + strings.Join(tags, ",") + "]"
	}
	if s.Bet > 0 {
		line += fmt.Sprintf(" bet %d", s.Bet)
	}
	if len(s.HoleCards) > 0 {
		line += " " + FormatCards(s.HoleCards)
	}
	if s.HandLabel != "" {
		line += " " + s.HandLabel
	}

	switch {
	case s.Away:
		return mutedStyle.Render(line + " away")
	case s.Folded:
		return mutedStyle.Render(line + " folded")
	case s.AllIn:
		return noticeStyle.Render(line + " all-in")
	case !s.InHand && view.HandActive:
		return mutedStyle.Render(line + " out")
	}
	return seatStyle.Render(line)
}

// renderActionPane shows the decision prompt, the input and key help
func (m *Model) renderActionPane() string {
	var b strings.Builder

	switch {
	case m.MyTurn():
		view := m.state.Table
		me := view.Seats[m.state.Seat]
		toCall := max(0, view.CurrentBet-me.Bet)
		hand := FormatCards(me.HoleCards)
		if toCall > 0 {
			b.WriteString(promptStyle.Render(fmt.Sprintf("Your turn %s: fold · call %d · raise N", hand, min(toCall, me.Stack))))
		} else {
			b.WriteString(promptStyle.Render(fmt.Sprintf("Your turn %s: check · raise N", hand)))
		}
	case m.lobby != nil && !m.lobby.Started && m.IsHost():
		b.WriteString(handStyle.Render("You are the host: bots N · stack N · blinds SB,BB · start"))
	case m.state != nil && m.state.Table.HandActive:
		b.WriteString(handStyle.Render("Waiting..."))
	default:
		b.WriteString(handStyle.Render("Waiting for the next hand"))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.focusedPane == 0 {
		b.WriteString(mutedStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Tab to input"))
	} else {
		b.WriteString(mutedStyle.Render(HelpText))
	}
	return b.String()
}

// settledLine summarises a settled hand for the log
func settledLine(h protocol.HandSettled) string {
	total := game.PayoutTotal(h.Payouts)
	winners := strings.Join(h.Showdown.WinnerNames, ", ")
	if winners == "" {
		return fmt.Sprintf("Hand #%d over", h.HandNumber)
	}
	return fmt.Sprintf("Hand #%d: %s won %d (%s)", h.HandNumber, winners, total, h.Showdown.Label)
}

// FormatCards formats cards with colors
func FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}
	formatted := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			formatted[i] = redCardStyle.Render(card.Pretty())
		} else {
			formatted[i] = blackCardStyle.Render(card.Pretty())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
