// Package native grabs global shortcuts directly from the operating system:
// XGrabKey on X11 and RegisterHotKey on Windows and macOS. Nothing here
// touches the display at package init, so binaries linking it still start
// in sessions without an X server.
package native

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
	"github.com/TanaroSch/overlay-core/internal/platform"
)

// grabber is the per-OS key grab primitive. Grab arranges for press to run
// once per key press of s and returns the function that releases the grab.
type grabber interface {
	name() string
	available() error
	grab(s hotkey.Shortcut, press func()) (release func() error, err error)
}

// Backend registers shortcuts through the OS grab primitive.
type Backend struct {
	mu             sync.Mutex
	grabber        grabber
	registeredKeys map[string]*nativeHotkey
}

// NewBackend creates a backend for the current OS. The display connection,
// if any, is opened on first use.
func NewBackend() *Backend {
	return newBackend(newGrabber())
}

func newBackend(g grabber) *Backend {
	return &Backend{grabber: g, registeredKeys: make(map[string]*nativeHotkey)}
}

// Name returns the name of this backend.
func (b *Backend) Name() string {
	return "Native (" + b.grabber.name() + ")"
}

// IsAvailable reports whether the OS grab primitive can be reached.
func (b *Backend) IsAvailable() bool {
	if err := b.grabber.available(); err != nil {
		slog.Debug("Native backend: not available", "backend", b.grabber.name(), "error", err)
		return false
	}
	return true
}

// Register grabs accelerator. A missing display or an unsupported key is
// returned as an error.
func (b *Backend) Register(accelerator string) (hotkey.RegisteredHotkey, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, exists := b.registeredKeys[accelerator]; exists {
		slog.Debug("Native backend: hotkey already registered, returning existing", "accelerator", accelerator)
		return existing, nil
	}

	shortcut, err := hotkey.ParseAccelerator(accelerator)
	if err != nil {
		return nil, err
	}
	if err := b.grabber.available(); err != nil {
		return nil, fmt.Errorf("%w: %w", hotkey.ErrBackendNotAvailable, err)
	}

	wrapped := &nativeHotkey{
		accelerator: accelerator,
		keydownCh:   make(chan struct{}),
		stopCh:      make(chan struct{}),
	}
	release, err := b.grabber.grab(shortcut, wrapped.press)
	if err != nil {
		return nil, fmt.Errorf("failed to register hotkey %q: %w", accelerator, err)
	}
	wrapped.release = release

	b.registeredKeys[accelerator] = wrapped
	slog.Info("Native backend: registered hotkey", "accelerator", accelerator, "backend", b.grabber.name())
	return wrapped, nil
}

// Unregister removes a single hotkey.
func (b *Backend) Unregister(accelerator string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	hk, exists := b.registeredKeys[accelerator]
	if !exists {
		slog.Debug("Native backend: hotkey not found for unregister", "accelerator", accelerator)
		return nil
	}
	if err := hk.Close(); err != nil {
		return err
	}
	delete(b.registeredKeys, accelerator)
	slog.Info("Native backend: unregistered hotkey", "accelerator", accelerator)
	return nil
}

// UnregisterAll removes all registered hotkeys.
func (b *Backend) UnregisterAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for accelerator, hk := range b.registeredKeys {
		if err := hk.Close(); err != nil {
			slog.Warn("Native backend: error unregistering hotkey", "accelerator", accelerator, "error", err)
		}
	}
	b.registeredKeys = make(map[string]*nativeHotkey)
	return nil
}

// nativeHotkey forwards grab callbacks onto its keydown channel.
type nativeHotkey struct {
	accelerator string
	release     func() error
	keydownCh   chan struct{}
	stopCh      chan struct{}
	closeOnce   sync.Once

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

func (h *nativeHotkey) Keydown() <-chan struct{} { return h.keydownCh }

// press blocks until the listener takes the event or the hotkey is closed.
func (h *nativeHotkey) press() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.inflight.Add(1)
	h.mu.Unlock()
	defer h.inflight.Done()

	select {
	case h.keydownCh <- struct{}{}:
	case <-h.stopCh:
	}
}

// Close releases the grab and closes the keydown channel once no press is
// being delivered.
func (h *nativeHotkey) Close() error {
	var err error
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		h.mu.Unlock()
		close(h.stopCh)
		if h.release != nil {
			if rerr := h.release(); rerr != nil {
				err = fmt.Errorf("failed to unregister hotkey %q: %w", h.accelerator, rerr)
			}
		}
		h.inflight.Wait()
		close(h.keydownCh)
	})
	return err
}

// Select chooses the backend for the given display server:
//  1. Windows/X11/macOS: the native grab, when the display can be reached
//  2. Wayland: hotkey.CompositorBackend, activation arrives through the compositor bind
//  3. Unknown, or no reachable display: hotkey.CompositorBackend, so bindings are still tracked
func Select(ds platform.DisplayServer) hotkey.Backend {
	switch ds {
	case platform.DisplayServerWindows, platform.DisplayServerX11:
		backend := NewBackend()
		if backend.IsAvailable() {
			slog.Info("Selected hotkey backend", "backend", backend.Name(), "display_server", ds.String())
			return backend
		}
		slog.Warn("Native backend not available, falling back to compositor backend", "display_server", ds.String())
	case platform.DisplayServerWayland:
		slog.Info("Wayland detected: global shortcuts are delivered through the compositor bind")
	default:
		slog.Warn("Unknown display server: native hotkeys unavailable")
	}
	return hotkey.NewCompositorBackend()
}
