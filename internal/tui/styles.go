package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the panes and the log.
const (
	accentColor = lipgloss.Color("#04B575")
	mutedColor  = lipgloss.Color("#626262")
	textColor   = lipgloss.Color("#FAFAFA")
	hostColor   = lipgloss.Color("#7D56F4")
	chipColor   = lipgloss.Color("#FFEAA7")
	redColor    = lipgloss.Color("#FF6B6B")
	greenColor  = lipgloss.Color("#96CEB4")
)

var (
	roomTitleStyle = lipgloss.NewStyle().Foreground(textColor).Background(hostColor).Bold(true)
	historyStyle   = lipgloss.NewStyle().Foreground(textColor)
	seatStyle      = lipgloss.NewStyle().Foreground(textColor)
	mutedStyle     = lipgloss.NewStyle().Foreground(mutedColor)

	handStyle   = lipgloss.NewStyle().Foreground(greenColor).Bold(true)
	winStyle    = lipgloss.NewStyle().Foreground(greenColor).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(chipColor).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(redColor).Bold(true)

	chatNameStyle = lipgloss.NewStyle().Foreground(hostColor).Bold(true)

	redCardStyle   = lipgloss.NewStyle().Foreground(redColor).Bold(true)
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0")).Bold(true)

	inputPromptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	inputTextStyle   = lipgloss.NewStyle().Foreground(textColor)
)

// paneStyle is the rounded border around each pane, highlighted when focused
func paneStyle(focused bool) lipgloss.Style {
	border := mutedColor
	if focused {
		border = accentColor
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}
