package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/codec"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/config"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/pump"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/session"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/wire"
)

func newTestModel(t *testing.T) (*Model, *pump.Fabric) {
	t.Helper()

	c, err := codec.Resolve("json")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	fabric := pump.NewFabric()
	sess := session.New(wire.NewGeneric(c, c), fabric)

	cfg := config.Default()
	cfg.URL = "ws://localhost:8080/ws"

	m := newModel(cfg, sess)
	m.width = 100
	m.height = 30
	m.resizeHistoryView()
	return &m, fabric
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_TabTogglesFocus(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.sess.Focus() != session.FocusHistory {
		t.Fatalf("focus = %v, want FocusHistory", m.sess.Focus())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.sess.Focus() != session.FocusInput {
		t.Fatalf("focus = %v, want FocusInput", m.sess.Focus())
	}
}

func TestUpdate_TypingEditsBuffer(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("hi"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(keyRunes("x"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.sess.Input(); got != "hi " {
		t.Errorf("input = %q, want %q", got, "hi ")
	}
}

func TestUpdate_EnterSubmitsAction(t *testing.T) {
	m, fabric := newTestModel(t)

	m.Update(keyRunes(`{"ping":1}`))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case action := <-fabric.Outbound:
		if wire.FormatPayload(action) != `{"ping":1}` {
			t.Errorf("action = %v", action)
		}
	case <-time.After(time.Second):
		t.Fatal("enter did not queue an action")
	}
}

func TestUpdate_EscQuits(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit the program")
	}
	if !m.quitting {
		t.Error("quitting flag not set")
	}
}

func TestUpdate_EscQuitsFromHistoryFocus(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit from history focus too")
	}
}

func TestUpdate_HistoryNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < 3; i++ {
		m.sess.Append(session.Line{Kind: session.KindInternal, Text: "x"})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m.Update(keyRunes("j"))
	if m.sess.Selected() != 0 {
		t.Fatalf("selection = %d, want 0", m.sess.Selected())
	}
	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	if m.sess.Selected() != 2 {
		t.Errorf("selection = %d, want clamp at 2", m.sess.Selected())
	}
	m.Update(keyRunes("k"))
	if m.sess.Selected() != 1 {
		t.Errorf("selection = %d, want 1", m.sess.Selected())
	}
}

// Typing keys must not edit the buffer while history is focused.
func TestUpdate_HistoryFocusIgnoresText(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m.Update(keyRunes("z"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.sess.Input(); got != "" {
		t.Errorf("input = %q, want empty", got)
	}
	if len(m.sess.History()) != 0 {
		t.Errorf("history gained %d lines", len(m.sess.History()))
	}
}

// Backspace in history focus clears the draft; terminals deliver
// shift+backspace as the plain backspace key, so this is the only form
// the binding can arrive in.
func TestUpdate_HistoryBackspaceClearsInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.sess.Type("half-typed")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.sess.Input(); got != "" {
		t.Errorf("input = %q, want empty", got)
	}
	history := m.sess.History()
	if len(history) != 1 || history[0].String() != "internal message: cleared input box" {
		t.Errorf("history = %v", history)
	}
}

func TestUpdate_TickDrainsFabricAndReschedules(t *testing.T) {
	m, fabric := newTestModel(t)

	fabric.Inbound <- wire.Inbound{Event: "pong"}
	fabric.Diagnostics <- "read failed: boom"

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should reschedule itself")
	}

	history := m.sess.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if got := history[0].String(); got != "received: pong" {
		t.Errorf("history[0] = %q", got)
	}
	if got := history[1].String(); got != "internal message: read failed: boom" {
		t.Errorf("history[1] = %q", got)
	}
}

func TestUpdate_TickAfterQuitDoesNotReschedule(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd != nil {
		t.Error("tick after quit should not reschedule")
	}
}

func TestView_BeforeFirstResize(t *testing.T) {
	c, _ := codec.Resolve("json")
	fabric := pump.NewFabric()
	sess := session.New(wire.NewGeneric(c, c), fabric)
	cfg := config.Default()
	m := newModel(cfg, sess)

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before resize = %q", got)
	}
}

func TestView_RendersPanes(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.sess.Type("draft")
	m.sess.Append(session.Line{Kind: session.KindReceived, Text: `{"n":1}`})
	m.updateHistoryView()

	view := m.View()
	for _, want := range []string{"INPUT mode", "Input", "Events", "draft", "received:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_HistoryFocusStatusLine(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.sess.Append(session.Line{Kind: session.KindInternal, Text: "x"})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "no message selected") {
		t.Error("view should report no selection")
	}

	m.Update(keyRunes("j"))
	if !strings.Contains(m.View(), "selected message 1/1") {
		t.Error("view should report the selection")
	}
}
