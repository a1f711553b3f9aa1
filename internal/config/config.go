// Package config loads and validates the client configuration: endpoint,
// codec formats, refresh rates, and transport options. Values come from
// an optional YAML profile file overridden by CLI flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/codec"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/transport"
)

const (
	// DefaultTickRate is the state refresh rate in ticks per second.
	DefaultTickRate = 4.0
	// DefaultFrameRate is the redraw rate in frames per second.
	DefaultFrameRate = 30.0
)

// Config describes one client session.
type Config struct {
	// URL is the target endpoint (ws:// or wss://). Required.
	URL string `yaml:"url"`

	// InboundFormat and OutboundFormat each name one codec format.
	// Exactly one of each is active; selection is fixed at startup.
	InboundFormat  string `yaml:"inboundFormat"`
	OutboundFormat string `yaml:"outboundFormat"`

	// TickRate drives the state machine's drain-and-append cycle;
	// FrameRate drives redraws. The two cadences are independent.
	TickRate  float64 `yaml:"tickRate"`
	FrameRate float64 `yaml:"frameRate"`

	Headers          map[string]string    `yaml:"headers,omitempty"`
	Subprotocols     []string             `yaml:"subprotocols,omitempty"`
	HandshakeTimeout time.Duration        `yaml:"handshakeTimeout,omitempty"`
	TLS              *transport.TLSConfig `yaml:"tls,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InboundFormat:  "json",
		OutboundFormat: "json",
		TickRate:       DefaultTickRate,
		FrameRate:      DefaultFrameRate,
	}
}

// DefaultPath returns the profile file location (~/.wirecli/config.yaml).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".wirecli", "config.yaml"), nil
}

// Load reads a YAML profile over the defaults. A missing file yields the
// defaults when explicit is false (the default path may simply not
// exist); an explicitly named file must exist.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can establish a session. Any
// failure here is fatal at startup.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("endpoint url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid endpoint url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("endpoint url must use ws:// or wss://, got %q", c.URL)
	}

	if _, err := codec.Resolve(c.InboundFormat); err != nil {
		return fmt.Errorf("inbound format: %w", err)
	}
	if _, err := codec.Resolve(c.OutboundFormat); err != nil {
		return fmt.Errorf("outbound format: %w", err)
	}

	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %v", c.TickRate)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %v", c.FrameRate)
	}
	return nil
}

// TickInterval converts the tick rate to a duration between state ticks.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// DialConfig projects the transport-facing settings.
func (c *Config) DialConfig() transport.DialConfig {
	return transport.DialConfig{
		URL:              c.URL,
		Headers:          c.Headers,
		Subprotocols:     c.Subprotocols,
		HandshakeTimeout: c.HandshakeTimeout,
		TLS:              c.TLS,
	}
}
