// Package pump moves frames between the Transport and the session's
// channels. The inbound and outbound pumps are independent activities:
// frame-level failures become diagnostics, never pump errors, and both
// stop promptly when their context is cancelled.
package pump

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Instant-Reactive-Systems/wire-cli/internal/transport"
	"github.com/Instant-Reactive-Systems/wire-cli/internal/wire"
)

// ChannelCapacity bounds each fabric channel. Producers block on a full
// channel; nothing is dropped.
const ChannelCapacity = 100

// Fabric is the set of channels connecting the pumps to the session loop.
type Fabric struct {
	// Inbound carries decoded frames from the inbound pump to the session.
	Inbound chan wire.Inbound
	// Outbound carries parsed actions from the session to the outbound pump.
	Outbound chan any
	// Diagnostics carries transport/codec failure reports from both pumps.
	Diagnostics chan string
}

// NewFabric builds the three bounded channels.
func NewFabric() *Fabric {
	return &Fabric{
		Inbound:     make(chan wire.Inbound, ChannelCapacity),
		Outbound:    make(chan any, ChannelCapacity),
		Diagnostics: make(chan string, ChannelCapacity),
	}
}

func (f *Fabric) report(ctx context.Context, msg string) {
	select {
	case f.Diagnostics <- msg:
	case <-ctx.Done():
	}
}

// RunInbound reads frames until the transport ends or the context is
// cancelled. Decode failures are reported and skipped; a transport error
// or clean stream end produces one final diagnostic before returning.
func RunInbound(ctx context.Context, t transport.Transport, proto wire.Protocol, fabric *Fabric) error {
	for {
		frame, err := t.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				fabric.report(ctx, "connection closed by server")
			} else {
				fabric.report(ctx, fmt.Sprintf("read failed: %v", err))
			}
			return nil
		}

		inbound, err := proto.DecodeInbound(frame)
		if err != nil {
			fabric.report(ctx, err.Error())
			continue
		}

		select {
		case fabric.Inbound <- inbound:
		case <-ctx.Done():
			return nil
		}
	}
}

// RunOutbound encodes and sends queued actions until the context is
// cancelled. Encode and write failures are reported and the pump keeps
// serving subsequent actions.
func RunOutbound(ctx context.Context, t transport.Transport, proto wire.Protocol, fabric *Fabric) error {
	for {
		var action any
		select {
		case action = <-fabric.Outbound:
		case <-ctx.Done():
			return nil
		}

		frame, err := proto.EncodeAction(action)
		if err != nil {
			fabric.report(ctx, err.Error())
			continue
		}

		if err := t.WriteFrame(ctx, frame); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fabric.report(ctx, fmt.Sprintf("send failed: %v", err))
			continue
		}
	}
}
