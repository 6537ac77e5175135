package native

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
	"github.com/TanaroSch/overlay-core/internal/platform"
)

// fakeGrabber records grabs and lets tests press them.
type fakeGrabber struct {
	mu       sync.Mutex
	availErr error
	grabErr  error
	presses  map[string]func()
	released []string
}

func newFakeGrabber() *fakeGrabber {
	return &fakeGrabber{presses: map[string]func(){}}
}

func (f *fakeGrabber) name() string     { return "fake" }
func (f *fakeGrabber) available() error { return f.availErr }

func (f *fakeGrabber) grab(s hotkey.Shortcut, press func()) (func() error, error) {
	if f.grabErr != nil {
		return nil, f.grabErr
	}
	key := s.String()
	f.mu.Lock()
	f.presses[key] = press
	f.mu.Unlock()
	return func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.presses, key)
		f.released = append(f.released, key)
		return nil
	}, nil
}

func (f *fakeGrabber) press(key string) {
	f.mu.Lock()
	press := f.presses[key]
	f.mu.Unlock()
	press()
}

func TestBackendDeliversPresses(t *testing.T) {
	g := newFakeGrabber()
	b := newBackend(g)

	hk, err := b.Register("Ctrl+Shift+Space")
	require.NoError(t, err)
	assert.Equal(t, "Native (fake)", b.Name())

	go g.press("Ctrl+Shift+Space")
	select {
	case _, ok := <-hk.Keydown():
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("press was not delivered")
	}

	again, err := b.Register("Ctrl+Shift+Space")
	require.NoError(t, err)
	assert.Same(t, hk, again)
}

func TestBackendUnregisterClosesChannel(t *testing.T) {
	g := newFakeGrabber()
	b := newBackend(g)

	hk, err := b.Register("Alt+K")
	require.NoError(t, err)
	require.NoError(t, b.Unregister("Alt+K"))
	require.NoError(t, b.Unregister("Alt+K"))

	_, ok := <-hk.Keydown()
	assert.False(t, ok)
	assert.Equal(t, []string{"Alt+K"}, g.released)
}

func TestBackendPressAfterCloseIsDropped(t *testing.T) {
	g := newFakeGrabber()
	b := newBackend(g)

	hk, err := b.Register("Alt+K")
	require.NoError(t, err)
	press := g.presses["Alt+K"]
	require.NoError(t, b.UnregisterAll())

	assert.NotPanics(t, press)
	_, ok := <-hk.Keydown()
	assert.False(t, ok)
}

func TestBackendUnavailable(t *testing.T) {
	g := newFakeGrabber()
	g.availErr = errors.New("connect to X11 display: bad display string")
	b := newBackend(g)

	assert.False(t, b.IsAvailable())
	_, err := b.Register("Ctrl+K")
	assert.ErrorIs(t, err, hotkey.ErrBackendNotAvailable)
	assert.Contains(t, err.Error(), "bad display string")
}

func TestBackendRegisterErrors(t *testing.T) {
	g := newFakeGrabber()
	b := newBackend(g)

	_, err := b.Register("Ctrl+")
	assert.ErrorIs(t, err, hotkey.ErrInvalidAccelerator)

	g.grabErr = errors.New("BadAccess")
	_, err = b.Register("Ctrl+K")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BadAccess")
}

func TestBackendWithManagerRollback(t *testing.T) {
	g := newFakeGrabber()
	b := newBackend(g)
	m := hotkey.NewManager(b, hotkey.NewRegistry(), nil)
	require.NoError(t, m.RegisterAll())

	g.grabErr = errors.New("BadAccess")
	err := m.Update(hotkey.ActionToggleOverlay, "Alt+K")
	assert.ErrorIs(t, err, hotkey.ErrRegistrationFailed)
	g.grabErr = nil

	accel, _ := m.Registry().Get(hotkey.ActionToggleOverlay)
	assert.Equal(t, "Ctrl+Shift+Space", accel)
}

func TestSelectWithoutNativeDisplay(t *testing.T) {
	for _, ds := range []platform.DisplayServer{platform.DisplayServerWayland, platform.DisplayServerUnknown} {
		_, ok := Select(ds).(*hotkey.CompositorBackend)
		assert.True(t, ok, "display server %s", ds)
	}
}
