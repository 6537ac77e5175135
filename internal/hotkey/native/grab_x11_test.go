//go:build linux

package native

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
	"github.com/TanaroSch/overlay-core/internal/platform"
)

func TestNoDisplayFailsAtRegister(t *testing.T) {
	t.Setenv("DISPLAY", "")

	b := NewBackend()
	assert.False(t, b.IsAvailable())

	_, err := b.Register("Ctrl+Shift+Space")
	assert.ErrorIs(t, err, hotkey.ErrBackendNotAvailable)

	_, ok := Select(platform.DisplayServerX11).(*hotkey.CompositorBackend)
	assert.True(t, ok)
}

func TestKeysymFor(t *testing.T) {
	tests := []struct {
		code string
		want xproto.Keysym
	}{
		{"KeyA", 'a'},
		{"KeyZ", 'z'},
		{"Digit7", '7'},
		{"Numpad3", 0xffb3},
		{"F1", 0xffbe},
		{"F12", 0xffc9},
		{"Space", 0x20},
		{"ArrowUp", 0xff52},
		{"AudioVolumeUp", 0x1008ff13},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := keysymFor(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := keysymFor("Nope")
	assert.False(t, ok)
}

func TestFindKeycode(t *testing.T) {
	// Two keysyms per keycode, first keycode 8: rows are 8:[a A] 9:[space] 10:[k K].
	keysyms := []xproto.Keysym{'a', 'A', 0x20, 0, 'k', 'K'}

	code, err := findKeycode(keysyms, 2, 8, 'k')
	require.NoError(t, err)
	assert.Equal(t, xproto.Keycode(10), code)

	code, err = findKeycode(keysyms, 2, 8, 'A')
	require.NoError(t, err)
	assert.Equal(t, xproto.Keycode(8), code)

	_, err = findKeycode(keysyms, 2, 8, 'q')
	assert.Error(t, err)
	_, err = findKeycode(nil, 0, 8, 'q')
	assert.Error(t, err)
}

func TestModMask(t *testing.T) {
	assert.Equal(t, uint16(0), modMask(0))
	assert.Equal(t, uint16(xproto.ModMaskControl|xproto.ModMaskShift), modMask(hotkey.ModCtrl|hotkey.ModShift))
	assert.Equal(t, uint16(xproto.ModMask1|xproto.ModMask4), modMask(hotkey.ModAlt|hotkey.ModSuper))
}
