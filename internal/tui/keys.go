package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/session"
)

// handleKeyPress routes a key event according to the current focus mode.
// Unrecognized keys are ignored.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Esc ends the session regardless of focus.
	if msg.Type == tea.KeyEsc {
		m.quitting = true
		return tea.Quit
	}

	if m.sess.Focus() == session.FocusInput {
		return m.handleInputKeys(msg)
	}
	return m.handleHistoryKeys(msg)
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab:
		m.sess.ToggleFocus()

	case tea.KeyEnter:
		m.sess.Submit()
		m.updateHistoryView()

	case tea.KeyBackspace:
		m.sess.Backspace()

	case tea.KeySpace:
		m.sess.Type(" ")

	case tea.KeyRunes:
		m.sess.Type(string(msg.Runes))
	}

	return nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		m.sess.ToggleFocus()

	case "j", "down":
		m.sess.MoveSelection(1)
		m.updateHistoryView()

	case "k", "up":
		m.sess.MoveSelection(-1)
		m.updateHistoryView()

	case "backspace", "shift+backspace":
		// Terminals transmit shift+backspace as a plain DEL, so the
		// modifier is not observable here; both forms clear the buffer.
		m.sess.ClearInput()
		m.updateHistoryView()

	case "c":
		m.copySelectedLine()
		m.updateHistoryView()
	}

	return nil
}

// copySelectedLine puts the selected (or newest) history line on the
// system clipboard and reports the outcome as a diagnostic line.
func (m *Model) copySelectedLine() {
	line, ok := m.sess.SelectedLine()
	if !ok {
		return
	}
	if err := clipboard.WriteAll(line.String()); err != nil {
		m.sess.Append(session.Line{Kind: session.KindInternal, Text: fmt.Sprintf("failed to copy: %v", err)})
		return
	}
	m.sess.Append(session.Line{Kind: session.KindInternal, Text: "copied line to clipboard"})
}
