// Package tui is the terminal client: a scrolling log of table history and
// chat, a sidebar with the lobby and table, and a command line.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerrooms/internal/protocol"
)

const maxLogLines = 500

// Sender delivers messages to the server
type Sender interface {
	Send(messageType protocol.MessageType, data any) error
}

// ServerMsg carries one server message into the Bubble Tea loop
type ServerMsg struct {
	Message *protocol.Message
}

// DisconnectedMsg reports that the server connection has closed
type DisconnectedMsg struct{}

// Model represents the Bubble Tea model for the poker client
type Model struct {
	logger   *log.Logger
	sender   Sender
	incoming <-chan *protocol.Message

	logViewport viewport.Model
	input       textinput.Model
	gameLog     []string
	focusedPane int // 0 = log, 1 = input
	width       int
	height      int
	quitting    bool

	clientID     string
	name         string
	hostID       string
	lobby        *protocol.Lobby
	state        *protocol.State
	disconnected bool
}

// NewModel creates a model that reads server messages from incoming and
// sends commands through sender
func NewModel(sender Sender, incoming <-chan *protocol.Message, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "call, raise 60, fold, ready, start, or say something"
	ti.Focus()
	ti.CharLimit = 300
	ti.Width = 100
	ti.PromptStyle = inputPromptStyle
	ti.TextStyle = inputTextStyle
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		sender:      sender,
		incoming:    incoming,
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForMessage())
}

// waitForMessage returns a command that blocks for the next server message
func (m *Model) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.incoming
		if !ok {
			return DisconnectedMsg{}
		}
		return ServerMsg{Message: msg}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ServerMsg:
		m.apply(msg.Message)
		return m, m.waitForMessage()

	case DisconnectedMsg:
		m.disconnected = true
		m.AddLogEntry(errorStyle.Render("Disconnected from server"))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := m.input.Value()
				m.input.SetValue("")
				if err := m.submit(line); errors.Is(err, ErrQuit) {
					m.quitting = true
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit parses a line of input and sends it
func (m *Model) submit(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		if !errors.Is(err, ErrQuit) {
			m.AddLogEntry(errorStyle.Render(err.Error()))
		}
		return err
	}
	if cmd == nil {
		return nil
	}
	if m.disconnected {
		m.AddLogEntry(errorStyle.Render("not connected"))
		return nil
	}
	if err := m.sender.Send(cmd.Type, cmd.Data); err != nil {
		m.logger.Error("Failed to send", "type", cmd.Type, "error", err)
		m.AddLogEntry(errorStyle.Render("send failed: " + err.Error()))
		return err
	}
	return nil
}

// apply folds one server message into the model
func (m *Model) apply(msg *protocol.Message) {
	m.logger.Debug("Server message", "type", msg.Type)

	switch msg.Type {
	case protocol.TypeWelcome:
		var w protocol.Welcome
		if m.decode(msg, &w) {
			m.clientID, m.name, m.hostID = w.ClientID, w.Name, w.HostID
			line := fmt.Sprintf("Joined room %s as %s", w.Room, w.Name)
			if w.IsHost {
				line += " (host)"
			}
			m.AddLogEntry(winStyle.Render(line))
		}

	case protocol.TypeLobby:
		var l protocol.Lobby
		if m.decode(msg, &l) {
			m.lobby = &l
			m.hostID = l.HostID
		}

	case protocol.TypeHostChanged:
		var h protocol.HostChanged
		if m.decode(msg, &h) && h.HostID != m.hostID {
			m.hostID = h.HostID
			if m.IsHost() {
				m.AddLogEntry(noticeStyle.Render("You are now the host"))
			} else {
				m.AddLogEntry(mutedStyle.Render("Host changed to " + m.memberName(h.HostID)))
			}
		}

	case protocol.TypeState:
		var s protocol.State
		if m.decode(msg, &s) {
			m.state = &s
		}

	case protocol.TypeHistory:
		var h protocol.History
		if m.decode(msg, &h) {
			m.AddLogEntry(historyStyle.Render(h.Line))
		}

	case protocol.TypeHandSettled:
		var h protocol.HandSettled
		if m.decode(msg, &h) {
			m.AddLogEntry(handStyle.Render(settledLine(h)))
		}

	case protocol.TypeChat:
		var c protocol.Chat
		if m.decode(msg, &c) {
			m.AddLogEntry(chatNameStyle.Render(c.Name+":") + " " + c.Text)
		}

	case protocol.TypeError:
		var e protocol.Error
		if m.decode(msg, &e) {
			m.AddLogEntry(errorStyle.Render(e.Message))
		}

	default:
		m.logger.Debug("Ignoring message", "type", msg.Type)
	}
}

func (m *Model) decode(msg *protocol.Message, v any) bool {
	if err := msg.Decode(v); err != nil {
		m.logger.Warn("Bad server message", "type", msg.Type, "error", err)
		return false
	}
	return true
}

// IsHost reports whether this client is the room host
func (m *Model) IsHost() bool {
	return m.clientID != "" && m.clientID == m.hostID
}

// MyTurn reports whether the table is waiting on this client's seat
func (m *Model) MyTurn() bool {
	return m.state != nil && m.state.Seat >= 0 &&
		m.state.Table.HandActive && m.state.Table.ToAct == m.state.Seat
}

func (m *Model) memberName(id string) string {
	if m.lobby != nil {
		for _, mem := range m.lobby.Members {
			if mem.ID == id {
				return mem.Name
			}
		}
	}
	return id
}

// Log returns a copy of the log lines
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// AddLogEntry appends a line to the log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := paneStyle(true).
		Width(max(1, m.width-2)).
		Height(max(1, actionHeight)).
		Render(actionContent)

	sidebarContent := m.renderSidebar()
	sidebarWidth := max(32, lipgloss.Width(sidebarContent))
	paneHeight := max(1, m.height-actionHeight-4)

	sidebarPane := paneStyle(false).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(1, m.width-sidebarWidth-4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	logPane := paneStyle(m.focusedPane == 0).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}
