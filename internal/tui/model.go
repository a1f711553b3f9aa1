package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/config"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/session"
)

// tickMsg drives the state refresh cycle, independent of redraws.
type tickMsg time.Time

// Model is the Bubble Tea model wrapping the session state machine.
type Model struct {
	cfg  config.Config
	sess *session.Session

	historyView viewport.Model
	width       int
	height      int
	quitting    bool
}

// newModel creates the TUI model around an existing session.
func newModel(cfg config.Config, sess *session.Session) Model {
	return Model{
		cfg:         cfg,
		sess:        sess,
		historyView: viewport.New(80, 20),
	}
}

// Init schedules the first state tick.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeHistoryView()
		m.updateHistoryView()

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.sess.DrainTick()
		m.updateHistoryView()
		return m, m.tick()

	case tea.MouseMsg:
		// Capture and discard so the terminal buffer does not scroll
		// underneath the alt screen. Navigation is keyboard-only.
	}

	return m, nil
}
