package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/session"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5555"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
)

// Style definitions
var (
	styleStatus = lipgloss.NewStyle().
			Bold(true)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleSent = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleReceived = lipgloss.NewStyle().
			Foreground(colorBlue)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray)

	styleFocusedPane = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorYellow)
)

// View renders the status line, input box, and message history.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	status := m.renderStatusLine()
	input := m.renderInputBox()
	history := m.renderHistoryBox()

	return lipgloss.JoinVertical(lipgloss.Left, status, input, history)
}

func (m Model) renderStatusLine() string {
	var text string
	switch m.sess.Focus() {
	case session.FocusInput:
		text = "INPUT mode"
	default:
		if idx := m.sess.Selected(); idx >= 0 {
			text = fmt.Sprintf("VIEW mode | selected message %d/%d", idx+1, len(m.sess.History()))
		} else {
			text = "VIEW mode | no message selected"
		}
	}

	help := styleSubtle.Render("  tab: switch | enter: send | j/k: navigate | c: copy | esc: quit")
	return styleStatus.Render(text) + help
}

func (m Model) renderInputBox() string {
	style := stylePane
	if m.sess.Focus() == session.FocusInput {
		style = styleFocusedPane
	}

	content := m.sess.Input()
	if m.sess.Focus() == session.FocusInput {
		content += "█"
	}

	return style.
		Width(m.width - 2).
		Render(" Input\n " + content)
}

func (m Model) renderHistoryBox() string {
	style := stylePane
	if m.sess.Focus() == session.FocusHistory {
		style = styleFocusedPane
	}

	return style.
		Width(m.width - 2).
		Render(" Events\n" + m.historyView.View())
}

// resizeHistoryView fits the viewport into the space below the status
// line and input box.
func (m *Model) resizeHistoryView() {
	// status(1) + input box(4) + history border/title(3)
	height := m.height - 8
	if height < 1 {
		height = 1
	}
	width := m.width - 4
	if width < 1 {
		width = 1
	}
	m.historyView.Width = width
	m.historyView.Height = height
}

// updateHistoryView rebuilds the viewport content from the session
// history and keeps the selection (or the newest line) visible.
func (m *Model) updateHistoryView() {
	history := m.sess.History()
	if len(history) == 0 {
		m.historyView.SetContent(styleSubtle.Render("No messages yet..."))
		return
	}

	selected := m.sess.Selected()
	lines := make([]string, 0, len(history))
	for i, line := range history {
		var style lipgloss.Style
		switch line.Kind {
		case session.KindSent:
			style = styleSent
		case session.KindReceived:
			style = styleReceived
		case session.KindError:
			style = styleError
		default:
			style = styleSubtle
		}

		text := line.String()
		if i == selected {
			text = styleSelected.Render("> " + text)
		} else {
			text = "  " + style.Render(text)
		}
		lines = append(lines, text)
	}

	m.historyView.SetContent(strings.Join(lines, "\n"))

	if selected < 0 {
		m.historyView.GotoBottom()
		return
	}

	// Scroll just enough to keep the selected line visible.
	if selected < m.historyView.YOffset {
		m.historyView.YOffset = selected
	} else if selected >= m.historyView.YOffset+m.historyView.Height {
		m.historyView.YOffset = selected - m.historyView.Height + 1
	}
}
