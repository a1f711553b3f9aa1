// Package transport provides the duplex frame connection to the remote
// service. The session core only sees the Transport interface; the
// WebSocket implementation lives here.
package transport

import (
	"context"
	"time"
)

// DefaultHandshakeTimeout bounds connection establishment when the
// configuration does not set its own limit.
const DefaultHandshakeTimeout = 45 * time.Second

// Transport is a duplex connection carrying discrete text frames.
//
// ReadFrame and WriteFrame honor context cancellation even while blocked
// on the underlying connection; cancelling the context tears the
// connection down so a suspended call returns promptly.
type Transport interface {
	// ReadFrame returns the next inbound text frame. It returns io.EOF
	// when the peer closes the stream cleanly.
	ReadFrame(ctx context.Context) ([]byte, error)
	// WriteFrame sends one outbound text frame.
	WriteFrame(ctx context.Context, frame []byte) error
	// Close tears down the connection. Safe to call more than once.
	Close() error
}
