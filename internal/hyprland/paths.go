package hyprland

import (
	"errors"
	"path/filepath"

	"github.com/TanaroSch/overlay-core/internal/platform"
)

const (
	// FragmentFileName is the bind fragment owned by overlay-core.
	FragmentFileName = "overlay-core-hotkeys.conf"
	// MainConfigFileName is Hyprland's main configuration file.
	MainConfigFileName = "hyprland.conf"
)

// ConfigDir resolves the Hyprland configuration directory. A non-empty
// override wins; otherwise $XDG_CONFIG_HOME/hypr, then $HOME/.config/hypr.
func ConfigDir(env platform.Env, override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}
	if v, ok := env.Lookup(platform.EnvConfigHome); ok && v != "" {
		return filepath.Join(v, "hypr"), nil
	}
	if v, ok := env.Lookup(platform.EnvHome); ok && v != "" {
		return filepath.Join(v, ".config", "hypr"), nil
	}
	return "", &FSError{
		Op:   "resolve",
		Path: "Hyprland config directory",
		Err:  errors.New("neither XDG_CONFIG_HOME nor HOME is set"),
	}
}
