package hotkey

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrySeedsDefaults(t *testing.T) {
	r := NewRegistry()
	got := r.List()

	require.Len(t, got, len(Actions()))
	assert.Equal(t, DefaultBindings(), got)
	assert.Equal(t, []Binding{{Action: ActionToggleOverlay, Accelerator: "Ctrl+Shift+Space"}}, got)
}

func TestRegistryGetSet(t *testing.T) {
	r := NewRegistry()

	accel, ok := r.Get(ActionToggleOverlay)
	require.True(t, ok)
	assert.Equal(t, "Ctrl+Shift+Space", accel)

	r.Set(ActionToggleOverlay, "Alt+F1")
	accel, ok = r.Get(ActionToggleOverlay)
	require.True(t, ok)
	assert.Equal(t, "Alt+F1", accel)

	_, ok = r.Get(Action("does_not_exist"))
	assert.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Set(ActionToggleOverlay, "Ctrl+K")
		}()
		go func() {
			defer wg.Done()
			_ = r.List()
		}()
	}
	wg.Wait()

	accel, _ := r.Get(ActionToggleOverlay)
	assert.Equal(t, "Ctrl+K", accel)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("toggle_overlay_visibility")
	require.NoError(t, err)
	assert.Equal(t, ActionToggleOverlay, a)

	_, err = ParseAction("open_settings")
	assert.ErrorIs(t, err, ErrUnsupportedAction)
	assert.ErrorContains(t, err, "known: toggle_overlay_visibility")
}

func TestDefaultBindingsIsACopy(t *testing.T) {
	d := DefaultBindings()
	d[0].Accelerator = "Ctrl+Z"
	assert.Equal(t, "Ctrl+Shift+Space", DefaultBindings()[0].Accelerator)
}
