package instance

import (
	"errors"
	"log/slog"
)

// ErrAlreadyRunning is returned by TryLock when another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Gate decides whether this process is the primary instance.
type Gate struct {
	lock     *Lock
	Endpoint string
}

// Acquire takes the single-instance lock for name. When another process
// already holds it, Acquire returns ErrAlreadyRunning together with a Gate
// whose Endpoint can be passed to Send.
func Acquire(name string) (*Gate, error) {
	endpoint := DefaultEndpoint(name)
	lock, err := TryLock(DefaultLockName(name))
	if err != nil {
		return &Gate{Endpoint: endpoint}, err
	}
	prepareEndpoint(endpoint)
	return &Gate{lock: lock, Endpoint: endpoint}, nil
}

// Primary reports whether this process holds the lock.
func (g *Gate) Primary() bool { return g.lock != nil }

// Release drops the lock. Safe to call more than once.
func (g *Gate) Release() {
	if g == nil || g.lock == nil {
		return
	}
	if err := g.lock.Release(); err != nil {
		slog.Warn("Single-instance lock release failed", "error", err)
	}
	g.lock = nil
}
