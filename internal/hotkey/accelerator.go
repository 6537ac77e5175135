package hotkey

import (
	"fmt"
	"strings"
)

// Modifier is a bit set of accelerator modifiers.
type Modifier uint8

const (
	ModSuper Modifier = 1 << iota
	ModShift
	ModCtrl
	ModAlt
)

// Has reports whether every bit of m2 is set in m.
func (m Modifier) Has(m2 Modifier) bool { return m&m2 == m2 }

// canonicalModifierOrder is the order modifiers appear in canonical accelerator strings.
var canonicalModifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModSuper, "Super"},
}

var modifierByName = map[string]Modifier{
	"ctrl":             ModCtrl,
	"control":          ModCtrl,
	"cmdorctrl":        ModCtrl,
	"commandorcontrol": ModCtrl,
	"shift":            ModShift,
	"alt":              ModAlt,
	"option":           ModAlt,
	"super":            ModSuper,
	"meta":             ModSuper,
	"win":              ModSuper,
	"cmd":              ModSuper,
	"command":          ModSuper,
}

// Shortcut is a parsed accelerator: a modifier set plus one key code such as
// "KeyA", "Digit1", "Space" or "F5". It is derived on demand and never stored.
type Shortcut struct {
	Modifiers Modifier
	Key       string
}

// String returns the canonical accelerator, e.g. "Ctrl+Shift+Space".
func (s Shortcut) String() string {
	parts := make([]string, 0, 5)
	for _, m := range canonicalModifierOrder {
		if s.Modifiers.Has(m.mod) {
			parts = append(parts, m.name)
		}
	}
	parts = append(parts, keyDisplayName(s.Key))
	return strings.Join(parts, "+")
}

// ParseAccelerator parses a human-readable accelerator such as
// "Ctrl+Shift+Space". Modifiers and key names are case-insensitive, duplicate
// modifiers collapse, and the key must come last. Every input either parses
// to exactly one Shortcut or fails.
func ParseAccelerator(accelerator string) (Shortcut, error) {
	raw := strings.TrimSpace(accelerator)
	if raw == "" {
		return Shortcut{}, ErrEmptyAccelerator
	}

	parts := strings.Split(raw, "+")
	var mods Modifier
	for _, token := range parts[:len(parts)-1] {
		name := strings.ToLower(strings.TrimSpace(token))
		if name == "" {
			return Shortcut{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidAccelerator, raw)
		}
		mod, ok := modifierByName[name]
		if !ok {
			return Shortcut{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidAccelerator, strings.TrimSpace(token), raw)
		}
		mods |= mod
	}

	keyToken := strings.TrimSpace(parts[len(parts)-1])
	if keyToken == "" {
		return Shortcut{}, fmt.Errorf("%w: missing key in %q", ErrInvalidAccelerator, raw)
	}
	if _, isMod := modifierByName[strings.ToLower(keyToken)]; isMod {
		return Shortcut{}, fmt.Errorf("%w: %q has modifiers but no key", ErrInvalidAccelerator, raw)
	}
	code, ok := lookupKey(keyToken)
	if !ok {
		return Shortcut{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidAccelerator, keyToken, raw)
	}

	return Shortcut{Modifiers: mods, Key: code}, nil
}

// NormalizeAccelerator returns the canonical form of accelerator.
func NormalizeAccelerator(accelerator string) (string, error) {
	s, err := ParseAccelerator(accelerator)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}
