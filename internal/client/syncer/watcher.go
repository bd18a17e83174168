// Package syncer keeps the client's offline state in step with the
// registry: a Watcher tracks reachability and a Syncer replays the lookups
// queued while the registry was down.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// DefaultProbeTimeout bounds a single reachability probe.
const DefaultProbeTimeout = 3 * time.Second

// Pinger is satisfied by client.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher probes the registry on a fixed interval. It starts offline, so
// the first successful probe counts as a transition.
type Watcher struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger

	mu       sync.Mutex
	mode     Mode
	onOnline []func(ctx context.Context)
}

// DefaultInterval is used when NewWatcher gets a non-positive interval.
const DefaultInterval = 15 * time.Second

func NewWatcher(p Pinger, interval time.Duration, logger logging.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		pinger:   p,
		interval: interval,
		timeout:  DefaultProbeTimeout,
		logger:   logger.With("module", "watcher"),
		mode:     ModeOffline,
	}
}

// OnOnline registers fn to run after every offline to online transition.
func (w *Watcher) OnOnline(fn func(ctx context.Context)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onOnline = append(w.onOnline, fn)
}

func (w *Watcher) Mode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

func (w *Watcher) Online() bool { return w.Mode() == ModeOnline }

// Check probes once and updates the mode. Callbacks run synchronously.
func (w *Watcher) Check(ctx context.Context) Mode {
	pctx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.pinger.Ping(pctx)
	cancel()

	mode := ModeOnline
	if err != nil {
		mode = ModeOffline
	}

	callbacks := w.setMode(ctx, mode)
	for _, fn := range callbacks {
		fn(ctx)
	}
	return mode
}

// setMode returns the callbacks to fire when the watcher just came online.
func (w *Watcher) setMode(ctx context.Context, mode Mode) []func(context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.mode == mode {
		return nil
	}
	w.mode = mode
	w.logger.Info(ctx, "switched mode", "mode", string(mode))

	if mode != ModeOnline {
		return nil
	}
	return append([]func(context.Context){}, w.onOnline...)
}

// Run checks immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}
