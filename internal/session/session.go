// Package session owns the client's interactive state: focus mode, the
// input buffer, the bounded message history, and the selection cursor.
// A Session is mutated only by the single-threaded UI loop, so it needs
// no locking; concurrency enters exclusively through the fabric channels
// drained in DrainTick.
package session

import (
	"github.com/Instant-Reactive-Systems/wire-cli/internal/pump"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/wire"
)

// MaxMessages bounds the history buffer. Insertion is at the tail; at
// capacity the head is evicted first (strict FIFO).
const MaxMessages = 100

// Focus identifies which UI region receives keyboard input.
type Focus int

const (
	// FocusInput routes keys to the input buffer. Initial state.
	FocusInput Focus = iota
	// FocusHistory routes keys to history navigation.
	FocusHistory
)

// Kind classifies a history line so the view can style it and the
// operator can tell application traffic from client internals.
type Kind int

const (
	KindReceived Kind = iota
	KindSent
	KindError
	KindInternal
)

// Line is one immutable entry in the visible history.
type Line struct {
	Kind Kind
	Text string
}

// String renders the line with its kind prefix.
func (l Line) String() string {
	switch l.Kind {
	case KindReceived:
		return "received: " + l.Text
	case KindSent:
		return "sent: " + l.Text
	case KindError:
		return "error: " + l.Text
	default:
		return "internal message: " + l.Text
	}
}

// Session is the root aggregate of the interactive client.
type Session struct {
	proto  wire.Protocol
	fabric *pump.Fabric

	focus    Focus
	input    string
	history  []Line
	selected int // index into history, -1 when nothing is selected
}

// New creates a session bound to a protocol and channel fabric. The
// session does not own the fabric or the transport behind it.
func New(proto wire.Protocol, fabric *pump.Fabric) *Session {
	return &Session{
		proto:    proto,
		fabric:   fabric,
		focus:    FocusInput,
		selected: -1,
	}
}

// Focus returns the current focus mode.
func (s *Session) Focus() Focus { return s.focus }

// Input returns the current input buffer contents.
func (s *Session) Input() string { return s.input }

// History returns the retained lines, oldest first. The returned slice
// is the session's own; callers must not mutate it.
func (s *Session) History() []Line { return s.history }

// Selected returns the selected history index, or -1.
func (s *Session) Selected() int { return s.selected }

// SelectedLine returns the selected line, falling back to the newest
// line when nothing is selected.
func (s *Session) SelectedLine() (Line, bool) {
	if s.selected >= 0 && s.selected < len(s.history) {
		return s.history[s.selected], true
	}
	if len(s.history) > 0 {
		return s.history[len(s.history)-1], true
	}
	return Line{}, false
}

// ToggleFocus switches between input and history focus. Buffer, history,
// and selection are untouched.
func (s *Session) ToggleFocus() {
	if s.focus == FocusInput {
		s.focus = FocusHistory
	} else {
		s.focus = FocusInput
	}
}

// Type appends printable input to the buffer.
func (s *Session) Type(text string) {
	s.input += text
}

// Backspace drops the last character of the buffer.
func (s *Session) Backspace() {
	if len(s.input) > 0 {
		runes := []rune(s.input)
		s.input = string(runes[:len(runes)-1])
	}
}

// ClearInput empties the buffer and records the action in history.
func (s *Session) ClearInput() {
	s.input = ""
	s.Append(Line{Kind: KindInternal, Text: "cleared input box"})
}

// Submit parses the buffer as an outbound action. On success the raw
// text is logged as sent and the action queued for the outbound pump; on
// parse failure a single error line is logged. Either way the buffer is
// cleared. An empty buffer is a no-op.
func (s *Session) Submit() {
	if s.input == "" {
		return
	}

	text := s.input
	s.input = ""

	action, err := s.proto.ParseAction(text)
	if err != nil {
		s.Append(Line{Kind: KindError, Text: "invalid request format: " + text})
		return
	}

	s.Append(Line{Kind: KindSent, Text: text})
	s.fabric.Outbound <- action
}

// MoveSelection moves the history selection by delta, clamped to the
// buffer. With no current selection the first line is selected.
func (s *Session) MoveSelection(delta int) {
	if len(s.history) == 0 {
		return
	}
	if s.selected < 0 {
		s.selected = 0
		return
	}
	s.selected += delta
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected > len(s.history)-1 {
		s.selected = len(s.history) - 1
	}
}

// Append adds a line at the tail, evicting the head at capacity. When
// eviction shifts the buffer, an existing selection moves with the line
// it pointed at; a selection on the evicted head is cleared.
func (s *Session) Append(line Line) {
	if len(s.history) >= MaxMessages {
		s.history = append(s.history[:0], s.history[1:]...)
		switch {
		case s.selected == 0:
			s.selected = -1
		case s.selected > 0:
			s.selected--
		}
	}
	s.history = append(s.history, line)
}

// DrainTick empties the inbound and diagnostics channels without
// blocking, appending one line per message: inbound first, diagnostics
// second. Called once per state tick regardless of focus.
func (s *Session) DrainTick() {
	for {
		select {
		case in := <-s.fabric.Inbound:
			if in.IsErr() {
				s.Append(Line{Kind: KindError, Text: wire.FormatPayload(in.Err)})
			} else {
				s.Append(Line{Kind: KindReceived, Text: wire.FormatPayload(in.Event)})
			}
		default:
			s.drainDiagnostics()
			return
		}
	}
}

func (s *Session) drainDiagnostics() {
	for {
		select {
		case msg := <-s.fabric.Diagnostics:
			s.Append(Line{Kind: KindInternal, Text: msg})
		default:
			return
		}
	}
}
