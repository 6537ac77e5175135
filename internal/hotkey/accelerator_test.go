package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccelerator(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantMods  Modifier
		wantKey   string
		wantCanon string
	}{
		{"default", "Ctrl+Shift+Space", ModCtrl | ModShift, "Space", "Ctrl+Shift+Space"},
		{"lowercase and spaces", " ctrl + alt + k ", ModCtrl | ModAlt, "KeyK", "Ctrl+Alt+K"},
		{"aliases", "Control+Option+Meta+Return", ModCtrl | ModAlt | ModSuper, "Enter", "Ctrl+Alt+Super+Enter"},
		{"duplicate modifiers collapse", "Shift+shift+F5", ModShift, "F5", "Shift+F5"},
		{"digit", "Super+1", ModSuper, "Digit1", "Super+1"},
		{"key code form", "Ctrl+KeyA", ModCtrl, "KeyA", "Ctrl+A"},
		{"arrow", "Alt+Up", ModAlt, "ArrowUp", "Alt+Up"},
		{"bare key", "F12", 0, "F12", "F12"},
		{"numpad", "Ctrl+Num5", ModCtrl, "Numpad5", "Ctrl+Numpad5"},
		{"punctuation", "Ctrl+.", ModCtrl, "Period", "Ctrl+Period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAccelerator(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMods, got.Modifiers)
			assert.Equal(t, tt.wantKey, got.Key)
			assert.Equal(t, tt.wantCanon, got.String())
		})
	}
}

func TestParseAcceleratorErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		for _, in := range []string{"", "   ", "\t\n"} {
			_, err := ParseAccelerator(in)
			assert.ErrorIs(t, err, ErrEmptyAccelerator, "input %q", in)
		}
	})

	invalid := []string{
		"not a real shortcut",
		"Ctrl+",
		"+A",
		"Ctrl++A",
		"Ctrl+Shift",
		"Hyper+A",
		"Ctrl+Banana",
		"A+Ctrl",
	}
	for _, in := range invalid {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAccelerator(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidAccelerator)
			assert.NotErrorIs(t, err, ErrEmptyAccelerator)
		})
	}
}

func TestParseAcceleratorDeterministic(t *testing.T) {
	first, err := ParseAccelerator("ctrl+shift+space")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ParseAccelerator("ctrl+shift+space")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNormalizeAccelerator(t *testing.T) {
	got, err := NormalizeAccelerator("shift+ctrl+SPACE")
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Shift+Space", got)

	_, err = NormalizeAccelerator("")
	assert.ErrorIs(t, err, ErrEmptyAccelerator)
}
