package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	content  string
	readErr  error
	writeErr error
}

func newTestManager(mem *memClipboard) *Manager {
	return &Manager{
		readAll: func() (string, error) {
			return mem.content, mem.readErr
		},
		writeAll: func(s string) error {
			if mem.writeErr != nil {
				return mem.writeErr
			}
			mem.content = s
			return nil
		},
	}
}

func TestCopyAndRestore(t *testing.T) {
	mem := &memClipboard{content: "user text"}
	m := newTestManager(mem)

	require.NoError(t, m.Copy("bind = SUPER, O, exec, oc --toggle-overlay"))
	assert.Equal(t, "bind = SUPER, O, exec, oc --toggle-overlay", mem.content)
	assert.True(t, m.CanRestore())

	require.NoError(t, m.Restore())
	assert.Equal(t, "user text", mem.content)
	assert.False(t, m.CanRestore())
	assert.Error(t, m.Restore())
}

func TestCopyWithUnreadableClipboard(t *testing.T) {
	mem := &memClipboard{readErr: errors.New("empty")}
	m := newTestManager(mem)

	require.NoError(t, m.Copy("x"))
	assert.Equal(t, "x", mem.content)
	assert.False(t, m.CanRestore())
}

func TestCopyWriteFailure(t *testing.T) {
	mem := &memClipboard{writeErr: errors.New("no xclip")}
	m := newTestManager(mem)

	err := m.Copy("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no xclip")
}
