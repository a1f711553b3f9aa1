package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/codec"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/config"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/pump"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/session"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/transport"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/wire"
)

// Run executes the full session lifecycle and blocks until the operator
// quits, the context ends, or a fatal error occurs. Only errors that
// prevent establishing the session (bad configuration, dial failure,
// terminal failure) are returned; frame-level failures surface as
// history lines instead.
func Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Validate guarantees both formats resolve.
	inCodec, _ := codec.Resolve(cfg.InboundFormat)
	outCodec, _ := codec.Resolve(cfg.OutboundFormat)
	proto := wire.NewGeneric(inCodec, outCodec)

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, err := transport.Dial(pumpCtx, cfg.DialConfig())
	if err != nil {
		return err
	}
	defer conn.Close()

	fabric := pump.NewFabric()

	group, pumpCtx := errgroup.WithContext(pumpCtx)
	group.Go(func() error { return pump.RunInbound(pumpCtx, conn, proto, fabric) })
	group.Go(func() error { return pump.RunOutbound(pumpCtx, conn, proto, fabric) })

	sess := session.New(proto, fabric)
	model := newModel(cfg, sess)

	// The alt screen and raw mode are acquired by the program and
	// released on every exit path, including fatal errors.
	program := tea.NewProgram(&model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithFPS(int(cfg.FrameRate)),
	)
	_, runErr := program.Run()

	// Tear down the pumps even while they are blocked on transport I/O:
	// cancellation closes the connection, which unblocks them.
	cancel()
	_ = conn.Close()
	_ = group.Wait()

	if runErr != nil && ctx.Err() != nil {
		// Caller-initiated cancellation is a clean shutdown.
		return nil
	}
	return runErr
}
