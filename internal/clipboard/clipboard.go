package clipboard

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend works on this system
// (for example no xclip/xsel/wl-copy on Linux).
var ErrUnavailable = errors.New("clipboard is not available")

// Manager copies generated text to the system clipboard and remembers what
// was there before so the user can restore it.
type Manager struct {
	mu       sync.Mutex
	previous string
	hasPrev  bool

	system   bool
	readAll  func() (string, error)
	writeAll func(string) error
}

// NewManager creates a manager backed by the system clipboard.
func NewManager() *Manager {
	return &Manager{system: true, readAll: clipboard.ReadAll, writeAll: clipboard.WriteAll}
}

// Copy places text on the clipboard.
func (m *Manager) Copy(text string) error {
	if m.system && clipboard.Unsupported {
		return ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, err := m.readAll(); err == nil {
		m.previous, m.hasPrev = prev, true
	} else {
		slog.Debug("Could not read clipboard before copy", "error", err)
		m.hasPrev = false
	}

	if err := m.writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	slog.Info("Copied text to clipboard", "bytes", len(text))
	return nil
}

// CanRestore reports whether Restore has something to put back.
func (m *Manager) CanRestore() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasPrev
}

// Restore puts back the clipboard content that the last Copy replaced.
func (m *Manager) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasPrev {
		return errors.New("nothing to restore")
	}
	if err := m.writeAll(m.previous); err != nil {
		return fmt.Errorf("restore clipboard: %w", err)
	}
	m.hasPrev = false
	slog.Info("Restored previous clipboard content")
	return nil
}
