// Package runloop glues the pieces into the cooperative main loop: pump the
// host transport, drain the interrupt mailbox, and pace network ticks. The
// loop is the single execution context every runtime mutation happens on.
package runloop

import (
	"context"
	"time"

	"github.com/example/flowgrid/capabilities"
	"github.com/example/flowgrid/core"
	"github.com/example/flowgrid/hostcomm"
	"github.com/example/flowgrid/network"
)

// DefaultTickInterval paces the network when no interval is configured.
const DefaultTickInterval = time.Millisecond

// Runner owns one iteration order: transport bytes first (host commands take
// effect before the tick), then deferred interrupt work, then the tick.
type Runner struct {
	net       *network.Network
	transport hostcomm.HostTransport
	mailbox   *capabilities.Mailbox
	interval  time.Duration
}

// New creates a runner. Transport and mailbox may be nil; a non-positive
// interval falls back to DefaultTickInterval.
func New(net *network.Network, transport hostcomm.HostTransport, mailbox *capabilities.Mailbox, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{net: net, transport: transport, mailbox: mailbox, interval: interval}
}

// Step executes one loop iteration synchronously.
func (r *Runner) Step() {
	if r == nil {
		return
	}
	if r.transport != nil {
		r.transport.RunTick()
	}
	if r.mailbox != nil {
		r.mailbox.Drain()
	}
	// While Stopped the loop only pumps the host; ticking would just emit
	// NotRunning every interval.
	if r.net != nil && r.net.State() == core.StateRunning {
		r.net.RunTick()
	}
}

// Run steps the loop at the configured interval until the context ends.
func (r *Runner) Run(ctx context.Context) error {
	if r == nil {
		return nil
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Step()
		}
	}
}
