package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Handler runs the application logic bound to an action.
type Handler func() error

// Manager handles registration and lifecycle of global hotkeys and owns the
// rebind-with-rollback sequence.
type Manager struct {
	backend  Backend
	registry *Registry
	handlers map[Action]Handler

	// updateMu makes rebinds single-flight. The registry lock is never held
	// across backend calls.
	updateMu sync.Mutex
}

// NewManager creates a new hotkey manager.
func NewManager(backend Backend, registry *Registry, handlers map[Action]Handler) *Manager {
	return &Manager{
		backend:  backend,
		registry: registry,
		handlers: handlers,
	}
}

// Backend returns the shortcut backend in use.
func (m *Manager) Backend() Backend { return m.backend }

// Registry returns the binding registry the manager commits to.
func (m *Manager) Registry() *Registry { return m.registry }

// RegisterAll registers every binding currently in the registry. Failures are
// collected so one bad binding does not prevent the others.
func (m *Manager) RegisterAll() error {
	m.updateMu.Lock()
	defer m.updateMu.Unlock()

	var errs []error
	for _, b := range m.registry.List() {
		if err := m.register(b.Action, b.Accelerator); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s %q: %w", ErrRegistrationFailed, b.Action, b.Accelerator, err))
			continue
		}
		slog.Info("Registered hotkey", "action", b.Action, "accelerator", b.Accelerator, "backend", m.backend.Name())
	}
	return errors.Join(errs...)
}

// UnregisterAll releases every shortcut held by the backend.
func (m *Manager) UnregisterAll() {
	if err := m.backend.UnregisterAll(); err != nil {
		slog.Warn("Error unregistering hotkeys", "error", err)
	}
}

// Update rebinds action to accelerator. Input is validated before the backend
// is touched; if the new shortcut cannot be registered the old one is restored
// and the registry keeps its previous value.
func (m *Manager) Update(action Action, accelerator string) error {
	raw := strings.TrimSpace(accelerator)
	if raw == "" {
		return ErrEmptyAccelerator
	}
	shortcut, err := ParseAccelerator(raw)
	if err != nil {
		return err
	}
	next := shortcut.String()

	m.updateMu.Lock()
	defer m.updateMu.Unlock()

	current, ok := m.registry.Get(action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}
	if next == canonicalOrSelf(current) {
		slog.Debug("Hotkey unchanged", "action", action, "accelerator", next)
		return nil
	}

	// An unregister failure leaves the old shortcut in whatever state the
	// backend left it; the registry still reports it as current.
	if err := m.backend.Unregister(current); err != nil {
		return fmt.Errorf("%w: unregister %q: %w", ErrRegistrationFailed, current, err)
	}

	if err := m.register(action, next); err != nil {
		if rbErr := m.register(action, current); rbErr != nil {
			slog.Error("Failed to restore previous hotkey", "action", action, "accelerator", current, "error", rbErr)
		} else {
			slog.Warn("Restored previous hotkey after failed rebind", "action", action, "accelerator", current)
		}
		return fmt.Errorf("%w: register %q: %w", ErrRegistrationFailed, next, err)
	}

	m.registry.Set(action, next)
	slog.Info("Hotkey updated", "action", action, "from", current, "to", next)
	return nil
}

// Trigger runs the handler for action as if its shortcut had been pressed
// and returns the handler's error. A panicking handler is reported as an
// error.
func (m *Manager) Trigger(action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hotkey handler for %s panicked: %v", action, r)
		}
	}()

	handler, ok := m.handlers[action]
	if !ok || handler == nil {
		return fmt.Errorf("%w: no handler for %q", ErrUnsupportedAction, action)
	}
	return handler()
}

func (m *Manager) register(action Action, accelerator string) error {
	hk, err := m.backend.Register(accelerator)
	if err != nil {
		return err
	}
	go m.listen(action, accelerator, hk)
	return nil
}

// listen forwards key presses until the backend closes the channel.
func (m *Manager) listen(action Action, accelerator string, hk RegisteredHotkey) {
	for range hk.Keydown() {
		slog.Debug("Hotkey pressed", "action", action, "accelerator", accelerator)
		m.dispatch(action)
	}
}

func (m *Manager) dispatch(action Action) {
	if err := m.Trigger(action); err != nil {
		slog.Error("Hotkey handler failed", "action", action, "error", err)
	}
}

func canonicalOrSelf(accelerator string) string {
	if normalized, err := NormalizeAccelerator(accelerator); err == nil {
		return normalized
	}
	return accelerator
}
