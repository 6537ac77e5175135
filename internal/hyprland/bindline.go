package hyprland

import (
	"strconv"
	"strings"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
)

// ToggleFlag is appended to the exec command of every bind line.
const ToggleFlag = "--toggle-overlay"

// modifierOrder is the emission order of Hyprland modifier names.
var modifierOrder = []struct {
	mod  hotkey.Modifier
	name string
}{
	{hotkey.ModSuper, "SUPER"},
	{hotkey.ModShift, "SHIFT"},
	{hotkey.ModCtrl, "CTRL"},
	{hotkey.ModAlt, "ALT"},
}

// Modifiers returns the Hyprland modifier list for m, space separated.
func Modifiers(m hotkey.Modifier) string {
	names := make([]string, 0, len(modifierOrder))
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			names = append(names, o.name)
		}
	}
	return strings.Join(names, " ")
}

// BindLine synthesizes `bind = MODS, KEY, exec, <command> --toggle-overlay`.
// MODS is empty when the shortcut has no modifiers.
func BindLine(s hotkey.Shortcut, command string) (string, error) {
	key, err := TranslateKey(s.Key)
	if err != nil {
		return "", err
	}
	return "bind = " + Modifiers(s.Modifiers) + ", " + key + ", exec, " + quoteCommand(command) + " " + ToggleFlag, nil
}

// BindLineFor parses accelerator and synthesizes its bind line.
func BindLineFor(accelerator, command string) (string, error) {
	s, err := hotkey.ParseAccelerator(accelerator)
	if err != nil {
		return "", err
	}
	return BindLine(s, command)
}

// quoteCommand quotes paths containing whitespace so the compositor's shell
// sees a single word.
func quoteCommand(command string) string {
	if strings.ContainsAny(command, " \t") && !strings.HasPrefix(command, `"`) {
		return strconv.Quote(command)
	}
	return command
}
