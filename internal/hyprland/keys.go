package hyprland

import (
	"fmt"
	"strings"
)

var keyNames = map[string]string{
	"Space":        "SPACE",
	"Enter":        "RETURN",
	"Tab":          "TAB",
	"Escape":       "ESCAPE",
	"Backspace":    "BACKSPACE",
	"Delete":       "DELETE",
	"Insert":       "INSERT",
	"Home":         "HOME",
	"End":          "END",
	"PageUp":       "PAGE_UP",
	"PageDown":     "PAGE_DOWN",
	"ArrowUp":      "UP",
	"ArrowDown":    "DOWN",
	"ArrowLeft":    "LEFT",
	"ArrowRight":   "RIGHT",
	"Minus":        "MINUS",
	"Equal":        "EQUAL",
	"BracketLeft":  "BRACKETLEFT",
	"BracketRight": "BRACKETRIGHT",
	"Backslash":    "BACKSLASH",
	"Semicolon":    "SEMICOLON",
	"Quote":        "APOSTROPHE",
	"Comma":        "COMMA",
	"Period":       "PERIOD",
	"Slash":        "SLASH",
	"Backquote":    "GRAVE",
	"PrintScreen":  "PRINT",
}

// TranslateKey maps an accelerator key code to the Hyprland key name:
// letters uppercase, digits bare, function keys uppercased, and a fixed
// table for everything else.
func TranslateKey(code string) (string, error) {
	switch {
	case len(code) == 4 && strings.HasPrefix(code, "Key"):
		return strings.ToUpper(code[3:]), nil
	case len(code) == 6 && strings.HasPrefix(code, "Digit"):
		return code[5:], nil
	case isFunctionKey(code):
		return strings.ToUpper(code), nil
	}
	if name, ok := keyNames[code]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedKey, code)
}

func isFunctionKey(code string) bool {
	if len(code) < 2 || len(code) > 3 || (code[0] != 'F' && code[0] != 'f') {
		return false
	}
	for _, r := range code[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
