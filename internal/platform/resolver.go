package platform

import (
	"context"
	"runtime"
)

// Info is the capability snapshot handed to the UI layer. It is recomputed on
// every call; the environment can change between sessions.
type Info struct {
	IsLinux                       bool `json:"isLinux"`
	IsWayland                     bool `json:"isWayland"`
	IsHyprland                    bool `json:"isHyprland"`
	SupportsNativeGlobalShortcuts bool `json:"supportsNativeGlobalShortcuts"`
	CanAutoConfigureHyprland      bool `json:"canAutoConfigureHyprland"`
}

// Hint returns the sentence shown next to the hotkey settings.
func (i Info) Hint() string {
	if i.CanAutoConfigureHyprland {
		return "Hyprland detected. You can apply compositor bind directly from this panel."
	}
	if i.IsWayland && !i.SupportsNativeGlobalShortcuts {
		return "Pure Wayland session detected. Native global shortcuts may not fire without compositor bind."
	}
	return "Native global shortcut backend is available for this session."
}

// ProbeFunc checks that the window manager's CLI is reachable. It is only
// called inside a Hyprland session.
type ProbeFunc func(ctx context.Context) bool

// Resolver computes Info from the environment and a capability probe.
type Resolver struct {
	GOOS  string
	Env   Env
	Probe ProbeFunc
}

// NewResolver returns a Resolver bound to the real process environment.
func NewResolver(probe ProbeFunc) *Resolver {
	return &Resolver{GOOS: runtime.GOOS, Env: OSEnv{}, Probe: probe}
}

// Resolve inspects the environment. It has no side effects beyond running
// the probe and never caches.
func (r *Resolver) Resolve(ctx context.Context) Info {
	if r.GOOS != "linux" {
		return Info{SupportsNativeGlobalShortcuts: true}
	}

	ds := detectDisplayServer(r.GOOS, r.Env)
	info := Info{
		IsLinux:    true,
		IsWayland:  ds == DisplayServerWayland,
		IsHyprland: IsHyprlandSession(r.Env),
	}
	info.SupportsNativeGlobalShortcuts = !info.IsWayland
	if info.IsHyprland && r.Probe != nil {
		info.CanAutoConfigureHyprland = r.Probe(ctx)
	}
	return info
}
