package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/codec"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/config"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/transport"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/tui"
)

var (
	version = "0.1.0"
)

var (
	flagConfig       string
	flagIn           string
	flagOut          string
	flagTickRate     float64
	flagFrameRate    float64
	flagHeaders      []string
	flagSubprotocols []string
	flagTLSCert      string
	flagTLSKey       string
	flagTLSCA        string
	flagInsecure     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wirecli <url>",
	Short: "Interactive WebSocket debug client",
	Long: `wirecli connects to a WebSocket endpoint and opens an interactive
terminal session: type a request in the input box, press enter to send
it, and watch the server's events stream into the history pane.

Requests and events are encoded per connection; both directions default
to JSON and can be set independently with --in and --out.

Examples:
  wirecli ws://localhost:8080/ws
  wirecli wss://api.example.com/ws --in yaml --out json
  wirecli ws://localhost:8080/ws --header "Authorization=Bearer tok"
  wirecli wss://internal.example.com/ws --tls-ca ca.pem`,
	Version:       version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		cfg.URL = args[0]
		if err := applyFlags(cmd, &cfg); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return tui.Run(ctx, cfg)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported message formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range codec.Formats() {
			fmt.Println(name)
		}
	},
}

func init() {
	defaultConfig, _ := config.DefaultPath()
	rootCmd.Flags().StringVar(&flagConfig, "config", defaultConfig, "Path to the config file")
	rootCmd.Flags().StringVar(&flagIn, "in", "", "Inbound message format (json, jsonc, yaml)")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "Outbound message format (json, jsonc, yaml)")
	rootCmd.Flags().Float64Var(&flagTickRate, "tick-rate", 0, "State refresh rate in ticks per second")
	rootCmd.Flags().Float64Var(&flagFrameRate, "frame-rate", 0, "Render rate in frames per second")
	rootCmd.Flags().StringArrayVar(&flagHeaders, "header", nil, "Handshake header as key=value (repeatable)")
	rootCmd.Flags().StringArrayVar(&flagSubprotocols, "subprotocol", nil, "WebSocket subprotocol to offer (repeatable)")
	rootCmd.Flags().StringVar(&flagTLSCert, "tls-cert", "", "Client certificate file for mutual TLS")
	rootCmd.Flags().StringVar(&flagTLSKey, "tls-key", "", "Client key file for mutual TLS")
	rootCmd.Flags().StringVar(&flagTLSCA, "tls-ca", "", "CA bundle for server verification")
	rootCmd.Flags().BoolVar(&flagInsecure, "insecure", false, "Skip TLS certificate verification")

	rootCmd.AddCommand(formatsCmd)
}

// applyFlags overlays explicitly set flags on top of the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("in") {
		cfg.InboundFormat = flagIn
	}
	if cmd.Flags().Changed("out") {
		cfg.OutboundFormat = flagOut
	}
	if cmd.Flags().Changed("tick-rate") {
		cfg.TickRate = flagTickRate
	}
	if cmd.Flags().Changed("frame-rate") {
		cfg.FrameRate = flagFrameRate
	}
	for _, header := range flagHeaders {
		key, value, ok := strings.Cut(header, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid header %q, expected key=value", header)
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers[key] = value
	}
	if len(flagSubprotocols) > 0 {
		cfg.Subprotocols = append(cfg.Subprotocols, flagSubprotocols...)
	}

	if flagTLSCert != "" || flagTLSKey != "" || flagTLSCA != "" || flagInsecure {
		if cfg.TLS == nil {
			cfg.TLS = &transport.TLSConfig{}
		}
		if flagTLSCert != "" {
			cfg.TLS.CertFile = flagTLSCert
		}
		if flagTLSKey != "" {
			cfg.TLS.KeyFile = flagTLSKey
		}
		if flagTLSCA != "" {
			cfg.TLS.CAFile = flagTLSCA
		}
		if flagInsecure {
			cfg.TLS.InsecureSkipVerify = true
		}
	}

	return nil
}
