//go:build darwin

package native

import (
	xhotkey "golang.design/x/hotkey"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
)

// nativeModifiers converts accelerator modifiers to macOS modifiers. Alt is
// Option and Super is Command.
func nativeModifiers(m hotkey.Modifier) []xhotkey.Modifier {
	var mods []xhotkey.Modifier
	if m.Has(hotkey.ModCtrl) {
		mods = append(mods, xhotkey.ModCtrl)
	}
	if m.Has(hotkey.ModAlt) {
		mods = append(mods, xhotkey.ModOption)
	}
	if m.Has(hotkey.ModShift) {
		mods = append(mods, xhotkey.ModShift)
	}
	if m.Has(hotkey.ModSuper) {
		mods = append(mods, xhotkey.ModCmd)
	}
	return mods
}
