/*
Package tui implements the interactive terminal client.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: wraps the session state machine and the history viewport
  - Update: routes key events to the session and drains the channel
    fabric once per state tick
  - View: renders the status line, input box, and message history

# Threading Model

The Bubble Tea event loop is single-threaded and is the only writer of
session state. The transport pumps run as separate goroutines under an
errgroup and communicate exclusively through the bounded channels in
package pump. Run owns the whole lifecycle: dial, start pumps, run the
program, cancel the pumps, close the transport.

# Cadences

Two independent rates are configured at startup: the state tick rate
(drain channels, append history) and the frame rate (redraw). The tick
is driven by tea.Tick, the redraw cap by tea.WithFPS.
*/
package tui
