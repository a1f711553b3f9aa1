package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TLSConfig carries the optional TLS settings for wss endpoints.
type TLSConfig struct {
	CertFile           string `yaml:"certFile,omitempty"`
	KeyFile            string `yaml:"keyFile,omitempty"`
	CAFile             string `yaml:"caFile,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify,omitempty"`
}

// DialConfig describes one WebSocket endpoint.
type DialConfig struct {
	URL              string
	Headers          map[string]string
	Subprotocols     []string
	HandshakeTimeout time.Duration
	TLS              *TLSConfig
}

// WebSocket is a Transport over a gorilla/websocket connection.
type WebSocket struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Dial connects to the endpoint. Connection failure is fatal to the
// caller; the error carries the HTTP status when the handshake got far
// enough to produce one.
func Dial(ctx context.Context, cfg DialConfig) (*WebSocket, error) {
	timeout := cfg.HandshakeTimeout
	if timeout <= 0 {
		timeout = DefaultHandshakeTimeout
	}

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
		Subprotocols:     cfg.Subprotocols,
	}

	if cfg.TLS != nil {
		tlsClientConfig, err := buildTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("TLS configuration error: %w", err)
		}
		dialer.TLSClientConfig = tlsClientConfig
	}

	headers := http.Header{}
	for key, value := range cfg.Headers {
		headers.Set(key, value)
	}

	conn, resp, err := dialer.DialContext(ctx, cfg.URL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	return &WebSocket{conn: conn}, nil
}

// ReadFrame returns the next text frame, skipping binary and control
// frames. Cancelling the context closes the connection, which unblocks a
// suspended read.
func (t *WebSocket) ReadFrame(ctx context.Context) ([]byte, error) {
	stop := context.AfterFunc(ctx, func() { _ = t.Close() })
	defer stop()

	for {
		messageType, message, err := t.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, err
		}
		if messageType != websocket.TextMessage {
			continue
		}
		return message, nil
	}
}

// WriteFrame sends one text frame. gorilla permits a single concurrent
// writer, so writes are serialized here.
func (t *WebSocket) WriteFrame(ctx context.Context, frame []byte) error {
	stop := context.AfterFunc(ctx, func() { _ = t.Close() })
	defer stop()

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := t.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Close sends a best-effort close frame and tears down the connection.
func (t *WebSocket) Close() error {
	t.closeOnce.Do(func() {
		t.writeMu.Lock()
		_ = t.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		t.writeMu.Unlock()
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

func buildTLSConfig(cfg *TLSConfig) (*tls.Config, error) {
	config := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		config.Certificates = []tls.Certificate{cert}
	}

	if cfg.CAFile != "" {
		caCert, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		config.RootCAs = caCertPool
	}

	return config, nil
}
