package hotkey

import (
	"log/slog"
	"sync"
)

// CompositorBackend is used where the process cannot grab keys itself, such
// as Wayland sessions. It validates and records registrations so the rebind
// sequence behaves identically; activation is delivered by the compositor
// running `<command> --toggle-overlay`, which reaches the running instance
// through the single-instance relay.
type CompositorBackend struct {
	mu         sync.Mutex
	registered map[string]*compositorHotkey
}

// NewCompositorBackend creates an empty compositor backend.
func NewCompositorBackend() *CompositorBackend {
	return &CompositorBackend{registered: make(map[string]*compositorHotkey)}
}

// Name returns the name of this backend.
func (b *CompositorBackend) Name() string { return "Compositor bind" }

// IsAvailable always reports true; the backend needs no OS support.
func (b *CompositorBackend) IsAvailable() bool { return true }

// Register records accelerator after checking that it parses.
func (b *CompositorBackend) Register(accelerator string) (RegisteredHotkey, error) {
	if _, err := ParseAccelerator(accelerator); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.registered[accelerator]; ok {
		return existing, nil
	}
	hk := &compositorHotkey{keydownCh: make(chan struct{})}
	b.registered[accelerator] = hk
	slog.Debug("Compositor backend: recorded hotkey", "accelerator", accelerator)
	return hk, nil
}

// Unregister forgets accelerator.
func (b *CompositorBackend) Unregister(accelerator string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if hk, ok := b.registered[accelerator]; ok {
		_ = hk.Close()
		delete(b.registered, accelerator)
	}
	return nil
}

// UnregisterAll forgets every accelerator.
func (b *CompositorBackend) UnregisterAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, hk := range b.registered {
		_ = hk.Close()
	}
	b.registered = make(map[string]*compositorHotkey)
	return nil
}

// Registered reports whether accelerator is currently recorded.
func (b *CompositorBackend) Registered(accelerator string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.registered[accelerator]
	return ok
}

type compositorHotkey struct {
	keydownCh chan struct{}
	closeOnce sync.Once
}

func (h *compositorHotkey) Keydown() <-chan struct{} { return h.keydownCh }

func (h *compositorHotkey) Close() error {
	h.closeOnce.Do(func() { close(h.keydownCh) })
	return nil
}
