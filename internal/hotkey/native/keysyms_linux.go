//go:build linux

package native

import (
	"strconv"
	"strings"

	"github.com/jezek/xgb/xproto"
)

// namedKeysyms maps accelerator key codes to X11 keysyms (keysymdef.h,
// XF86keysym.h).
var namedKeysyms = map[string]xproto.Keysym{
	"Space":        0x0020,
	"Enter":        0xff0d,
	"Tab":          0xff09,
	"Escape":       0xff1b,
	"Backspace":    0xff08,
	"Delete":       0xffff,
	"Insert":       0xff63,
	"Home":         0xff50,
	"End":          0xff57,
	"PageUp":       0xff55,
	"PageDown":     0xff56,
	"ArrowLeft":    0xff51,
	"ArrowUp":      0xff52,
	"ArrowRight":   0xff53,
	"ArrowDown":    0xff54,
	"Minus":        0x002d,
	"Equal":        0x003d,
	"BracketLeft":  0x005b,
	"BracketRight": 0x005d,
	"Backslash":    0x005c,
	"Semicolon":    0x003b,
	"Quote":        0x0027,
	"Comma":        0x002c,
	"Period":       0x002e,
	"Slash":        0x002f,
	"Backquote":    0x0060,
	"PrintScreen":  0xff61,
	"Pause":        0xff13,
	"CapsLock":     0xffe5,
	"ScrollLock":   0xff14,
	"NumLock":      0xff7f,
	"ContextMenu":  0xff67,

	"NumpadAdd":      0xffab,
	"NumpadSubtract": 0xffad,
	"NumpadMultiply": 0xffaa,
	"NumpadDivide":   0xffaf,
	"NumpadDecimal":  0xffae,
	"NumpadEnter":    0xff8d,

	"AudioVolumeDown":    0x1008ff11,
	"AudioVolumeMute":    0x1008ff12,
	"AudioVolumeUp":      0x1008ff13,
	"MediaPlayPause":     0x1008ff14,
	"MediaStop":          0x1008ff15,
	"MediaTrackPrevious": 0x1008ff16,
	"MediaTrackNext":     0x1008ff17,
}

// keysymFor returns the keysym for an accelerator key code.
func keysymFor(code string) (xproto.Keysym, bool) {
	switch {
	case len(code) == 4 && strings.HasPrefix(code, "Key"):
		if c := code[3]; c >= 'A' && c <= 'Z' {
			return xproto.Keysym(c - 'A' + 'a'), true
		}
	case len(code) == 6 && strings.HasPrefix(code, "Digit"):
		if c := code[5]; c >= '0' && c <= '9' {
			return xproto.Keysym(c), true
		}
	case len(code) == 7 && strings.HasPrefix(code, "Numpad"):
		if c := code[6]; c >= '0' && c <= '9' {
			return xproto.Keysym(0xffb0 + uint32(c-'0')), true
		}
	case len(code) >= 2 && code[0] == 'F':
		if n, err := strconv.Atoi(code[1:]); err == nil && n >= 1 && n <= 35 {
			return xproto.Keysym(0xffbe + uint32(n-1)), true
		}
	}
	sym, ok := namedKeysyms[code]
	return sym, ok
}
