// Package wire defines the message envelope exchanged with the remote
// service and the capability interface that adapts one application
// protocol's payload types to the orchestration core.
package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/codec"
)

// Inbound is one decoded inbound frame: either an application event or an
// application-level error, never both. ReceivedAt is stamped when the
// frame is decoded.
type Inbound struct {
	Event      any
	Err        any
	ReceivedAt time.Time

	isErr bool
}

// IsErr reports whether the frame carried an application error payload.
// Decoded frames record the envelope tag explicitly, so an error whose
// payload is null still reports true.
func (in Inbound) IsErr() bool { return in.isErr || in.Err != nil }

// Protocol adapts a concrete application protocol to the client. The
// orchestration core is written once against this interface; a protocol
// implementation binds it to specific payload types and text formats.
type Protocol interface {
	// DecodeInbound parses one raw inbound frame.
	DecodeInbound(frame []byte) (Inbound, error)
	// ParseAction parses operator-typed text into an outbound action.
	ParseAction(text string) (any, error)
	// EncodeAction serializes an action to a raw outbound frame.
	EncodeAction(action any) ([]byte, error)
}

// Generic is a Protocol for schema-less debugging: payloads decode into
// plain maps/values of whatever shape the service sends. Inbound frames
// must be a tagged envelope with exactly one of an "Ok" (event) or "Err"
// key, mirroring the service's result type on the wire.
type Generic struct {
	in  codec.Codec
	out codec.Codec
}

// NewGeneric builds a Generic protocol over one inbound and one outbound
// codec. The two formats are configured independently.
func NewGeneric(inbound, outbound codec.Codec) Generic {
	return Generic{in: inbound, out: outbound}
}

// DecodeInbound parses a tagged Ok/Err envelope. An event envelope may
// carry a capture timestamp; when absent the receipt time is used.
func (g Generic) DecodeInbound(frame []byte) (Inbound, error) {
	var envelope map[string]any
	if err := g.in.Unmarshal(frame, &envelope); err != nil {
		return Inbound{}, fmt.Errorf("decode inbound frame: %w", err)
	}

	now := time.Now()

	if payload, ok := envelope["Ok"]; ok {
		in := Inbound{Event: payload, ReceivedAt: now}
		if wrapped, ok := payload.(map[string]any); ok {
			if event, ok := wrapped["event"]; ok {
				in.Event = event
			}
			if stamp, ok := wrapped["timestamp"].(string); ok {
				if t, err := time.Parse(time.RFC3339, stamp); err == nil {
					in.ReceivedAt = t
				}
			}
		}
		return in, nil
	}

	if payload, ok := envelope["Err"]; ok {
		return Inbound{Err: payload, ReceivedAt: now, isErr: true}, nil
	}

	return Inbound{}, fmt.Errorf("inbound frame is not an Ok/Err envelope")
}

// ParseAction decodes operator input with the outbound codec. The raw
// text must be a complete document in that format.
func (g Generic) ParseAction(text string) (any, error) {
	var action any
	if err := g.out.Unmarshal([]byte(text), &action); err != nil {
		return nil, fmt.Errorf("parse action: %w", err)
	}
	return action, nil
}

// EncodeAction serializes an action with the outbound codec.
func (g Generic) EncodeAction(action any) ([]byte, error) {
	data, err := g.out.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("encode action: %w", err)
	}
	return data, nil
}

// FormatPayload renders a decoded payload for display, preferring compact
// JSON and falling back to Go formatting for values JSON cannot express.
func FormatPayload(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}
