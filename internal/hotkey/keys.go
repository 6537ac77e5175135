package hotkey

import (
	"fmt"
	"strings"
)

// keyDef describes one key the accelerator parser accepts. code is the
// canonical token carried by Shortcut.Key; display is the spelling used in
// canonical accelerator strings.
type keyDef struct {
	code    string
	display string
	aliases []string
}

var namedKeys = []keyDef{
	{"Space", "Space", nil},
	{"Enter", "Enter", []string{"return"}},
	{"Tab", "Tab", nil},
	{"Escape", "Escape", []string{"esc"}},
	{"Backspace", "Backspace", nil},
	{"Delete", "Delete", []string{"del"}},
	{"Insert", "Insert", []string{"ins"}},
	{"Home", "Home", nil},
	{"End", "End", nil},
	{"PageUp", "PageUp", []string{"pgup"}},
	{"PageDown", "PageDown", []string{"pgdn"}},
	{"ArrowUp", "Up", []string{"up"}},
	{"ArrowDown", "Down", []string{"down"}},
	{"ArrowLeft", "Left", []string{"left"}},
	{"ArrowRight", "Right", []string{"right"}},
	{"Minus", "Minus", []string{"-"}},
	{"Equal", "Equal", []string{"="}},
	{"BracketLeft", "BracketLeft", []string{"["}},
	{"BracketRight", "BracketRight", []string{"]"}},
	{"Backslash", "Backslash", []string{`\`}},
	{"Semicolon", "Semicolon", []string{";"}},
	{"Quote", "Quote", []string{"'"}},
	{"Comma", "Comma", []string{","}},
	{"Period", "Period", []string{"."}},
	{"Slash", "Slash", []string{"/"}},
	{"Backquote", "Backquote", []string{"`", "grave"}},
	{"PrintScreen", "PrintScreen", []string{"print"}},
	{"Pause", "Pause", nil},
	{"CapsLock", "CapsLock", nil},
	{"ScrollLock", "ScrollLock", nil},
	{"NumLock", "NumLock", nil},
	{"ContextMenu", "ContextMenu", []string{"menu"}},
	{"MediaPlayPause", "MediaPlayPause", nil},
	{"MediaStop", "MediaStop", nil},
	{"MediaTrackNext", "MediaTrackNext", nil},
	{"MediaTrackPrevious", "MediaTrackPrevious", nil},
	{"AudioVolumeUp", "AudioVolumeUp", []string{"volumeup"}},
	{"AudioVolumeDown", "AudioVolumeDown", []string{"volumedown"}},
	{"AudioVolumeMute", "AudioVolumeMute", []string{"volumemute"}},
	{"NumpadAdd", "NumpadAdd", nil},
	{"NumpadSubtract", "NumpadSubtract", nil},
	{"NumpadMultiply", "NumpadMultiply", nil},
	{"NumpadDivide", "NumpadDivide", nil},
	{"NumpadDecimal", "NumpadDecimal", nil},
	{"NumpadEnter", "NumpadEnter", nil},
}

var (
	keyCodeByName    = map[string]string{}
	keyDisplayByCode = map[string]string{}
)

func init() {
	defs := append([]keyDef(nil), namedKeys...)
	for c := 'A'; c <= 'Z'; c++ {
		letter := string(c)
		defs = append(defs, keyDef{"Key" + letter, letter, nil})
	}
	for d := '0'; d <= '9'; d++ {
		digit := string(d)
		defs = append(defs,
			keyDef{"Digit" + digit, digit, nil},
			keyDef{"Numpad" + digit, "Numpad" + digit, []string{"num" + digit}},
		)
	}
	for n := 1; n <= 24; n++ {
		fn := fmt.Sprintf("F%d", n)
		defs = append(defs, keyDef{fn, fn, nil})
	}

	for _, def := range defs {
		keyDisplayByCode[def.code] = def.display
		keyCodeByName[strings.ToLower(def.code)] = def.code
		keyCodeByName[strings.ToLower(def.display)] = def.code
		for _, alias := range def.aliases {
			keyCodeByName[strings.ToLower(alias)] = def.code
		}
	}
}

func lookupKey(token string) (string, bool) {
	code, ok := keyCodeByName[strings.ToLower(token)]
	return code, ok
}

func keyDisplayName(code string) string {
	if display, ok := keyDisplayByCode[code]; ok {
		return display
	}
	return code
}
