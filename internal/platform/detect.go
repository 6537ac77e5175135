package platform

import (
	"log/slog"
	"os"
	"runtime"
)

// DisplayServer represents the type of display server in use
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerWindows
	DisplayServerX11
	DisplayServerWayland
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWayland:
		return "Wayland"
	default:
		return "Unknown"
	}
}

// Environment variables consulted for capability detection.
const (
	EnvHyprlandInstance = "HYPRLAND_INSTANCE_SIGNATURE"
	EnvWaylandDisplay   = "WAYLAND_DISPLAY"
	EnvX11Display       = "DISPLAY"
	EnvSessionType      = "XDG_SESSION_TYPE"
	EnvConfigHome       = "XDG_CONFIG_HOME"
	EnvHome             = "HOME"
)

// Env is the read-only view of the process environment used by detection.
// Tests substitute a map-backed implementation.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the real process environment.
type OSEnv struct{}

// Lookup implements Env.
func (OSEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// MapEnv is an Env backed by a plain map.
type MapEnv map[string]string

// Lookup implements Env.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func isSet(env Env, key string) bool {
	v, ok := env.Lookup(key)
	return ok && v != ""
}

// DetectDisplayServer determines which display server is currently in use.
// This function is safe to call on any platform.
func DetectDisplayServer() DisplayServer {
	return detectDisplayServer(runtime.GOOS, OSEnv{})
}

func detectDisplayServer(goos string, env Env) DisplayServer {
	// Windows always uses its own system
	if goos == "windows" {
		return DisplayServerWindows
	}

	// Check Wayland first (more specific)
	if isSet(env, EnvWaylandDisplay) {
		slog.Debug("Detected display server: Wayland (WAYLAND_DISPLAY set)")
		return DisplayServerWayland
	}
	if v, _ := env.Lookup(EnvSessionType); v == "wayland" {
		slog.Debug("Detected display server: Wayland (XDG_SESSION_TYPE=wayland)")
		return DisplayServerWayland
	}

	if isSet(env, EnvX11Display) {
		slog.Debug("Detected display server: X11 (DISPLAY set)")
		return DisplayServerX11
	}

	// The native hotkey backend grabs keys on macOS too, so treat it like X11.
	if goos == "darwin" {
		return DisplayServerX11
	}

	slog.Warn("Could not detect display server type")
	return DisplayServerUnknown
}

// IsHyprlandSession reports whether the environment identifies a Hyprland session.
func IsHyprlandSession(env Env) bool {
	return isSet(env, EnvHyprlandInstance)
}
