package hyprland

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/TanaroSch/overlay-core/internal/platform"
)

const (
	// DefaultAttempts is how many times the client list is polled.
	DefaultAttempts = 20
	// DefaultInterval is the pause between polls.
	DefaultInterval = 100 * time.Millisecond
)

// Discovery configures the client-list polling loop.
type Discovery struct {
	Attempts int
	Interval time.Duration
}

// Enforcer finds this process's overlay window in Hyprland and makes it
// floating, pinned and hidden from screen sharing.
type Enforcer struct {
	client *Client
	env    platform.Env
	pid    int
	marker string

	mu        sync.Mutex
	discovery Discovery
	current   *Task
}

// NewEnforcer creates an enforcer matching windows owned by pid whose class
// or title equals marker.
func NewEnforcer(client *Client, env platform.Env, pid int, marker string, d Discovery) *Enforcer {
	return &Enforcer{
		client:    client,
		env:       env,
		pid:       pid,
		marker:    marker,
		discovery: normalizeDiscovery(d),
	}
}

func normalizeDiscovery(d Discovery) Discovery {
	if d.Attempts < 1 {
		d.Attempts = DefaultAttempts
	}
	if d.Interval <= 0 {
		d.Interval = DefaultInterval
	}
	return d
}

// SetDiscovery changes the polling budget for subsequent runs.
func (e *Enforcer) SetDiscovery(d Discovery) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discovery = normalizeDiscovery(d)
}

// Task is a handle to one background discovery run.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	found  bool
}

// Cancel stops the run at its next poll or dispatch.
func (t *Task) Cancel() { t.cancel() }

// Done is closed when the run has finished.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the run finishes and reports whether the window was found.
func (t *Task) Wait() bool {
	<-t.done
	return t.found
}

// Trigger starts a discovery run in the background and returns its handle.
// Any previous run is cancelled and awaited first so two pollers never
// overlap. Outside Hyprland the returned task is already finished.
func (e *Enforcer) Trigger(ctx context.Context) *Task {
	ctx, cancel := context.WithCancel(ctx)
	task := &Task{cancel: cancel, done: make(chan struct{})}

	if !platform.IsHyprlandSession(e.env) {
		cancel()
		close(task.done)
		return task
	}

	e.mu.Lock()
	prev := e.current
	e.current = task
	e.mu.Unlock()

	go func() {
		defer close(task.done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Recovered from panic in Hyprland discovery", "panic", r)
			}
		}()

		if prev != nil {
			prev.Cancel()
			<-prev.done
		}
		task.found = e.Run(ctx)
	}()
	return task
}

// Run polls the client list until the overlay window shows up, the attempt
// budget is spent or ctx is cancelled, and reports whether it was found.
// Every failure is logged and none is returned.
func (e *Enforcer) Run(ctx context.Context) bool {
	if !platform.IsHyprlandSession(e.env) {
		return false
	}

	e.mu.Lock()
	d := e.discovery
	e.mu.Unlock()

	for attempt := 1; attempt <= d.Attempts; attempt++ {
		if ctx.Err() != nil {
			slog.Debug("Hyprland: discovery cancelled", "attempt", attempt)
			return false
		}

		client, err := e.find(ctx)
		if err != nil {
			slog.Warn("Hyprland: clients query failed", "attempt", attempt, "error", err)
		} else if client != nil {
			e.enforce(ctx, *client)
			return true
		}

		if attempt == d.Attempts {
			break
		}
		timer := time.NewTimer(d.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Debug("Hyprland: discovery cancelled", "attempt", attempt)
			return false
		case <-timer.C:
		}
	}

	slog.Warn("Hyprland: overlay window was not found in clients list", "attempts", d.Attempts, "pid", e.pid, "marker", e.marker)
	return false
}

func (e *Enforcer) find(ctx context.Context) (*WindowClient, error) {
	clients, err := e.client.Clients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		c := clients[i]
		if c.PID == e.pid && (c.Class == e.marker || c.Title == e.marker) {
			return &c, nil
		}
	}
	return nil, nil
}

// enforce issues the property dispatches. Each one is independent.
func (e *Enforcer) enforce(ctx context.Context, c WindowClient) {
	if !c.Floating {
		if err := e.client.SetFloating(ctx, c.Address); err != nil {
			slog.Warn("Hyprland: setfloating failed", "address", c.Address, "error", err)
		}
	}
	if !c.Pinned {
		if err := e.client.Pin(ctx, c.Address); err != nil {
			slog.Warn("Hyprland: pin failed", "address", c.Address, "error", err)
		}
	}
	if err := e.client.SetNoScreenShare(ctx, c.Address); err != nil {
		slog.Warn("Hyprland: setprop no_screen_share failed", "address", c.Address, "error", err)
	}
	slog.Info("Hyprland: overlay window configured", "address", c.Address)
}
