package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func probeReturning(ok bool, calls *int) ProbeFunc {
	return func(context.Context) bool {
		*calls++
		return ok
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		goos       string
		env        MapEnv
		probeOK    bool
		want       Info
		wantProbed bool
	}{
		{
			name: "linux x11 without hyprland",
			goos: "linux",
			env:  MapEnv{EnvX11Display: ":0"},
			want: Info{IsLinux: true, SupportsNativeGlobalShortcuts: true},
		},
		{
			name: "linux with no display markers",
			goos: "linux",
			env:  MapEnv{},
			want: Info{IsLinux: true, SupportsNativeGlobalShortcuts: true},
		},
		{
			name: "pure wayland without hyprland",
			goos: "linux",
			env:  MapEnv{EnvWaylandDisplay: "wayland-1"},
			want: Info{IsLinux: true, IsWayland: true},
		},
		{
			name: "wayland via session type",
			goos: "linux",
			env:  MapEnv{EnvSessionType: "wayland", EnvX11Display: ":0"},
			want: Info{IsLinux: true, IsWayland: true},
		},
		{
			name:       "hyprland with reachable hyprctl",
			goos:       "linux",
			env:        MapEnv{EnvWaylandDisplay: "wayland-1", EnvHyprlandInstance: "abc"},
			probeOK:    true,
			want:       Info{IsLinux: true, IsWayland: true, IsHyprland: true, CanAutoConfigureHyprland: true},
			wantProbed: true,
		},
		{
			name:       "hyprland with broken hyprctl",
			goos:       "linux",
			env:        MapEnv{EnvWaylandDisplay: "wayland-1", EnvHyprlandInstance: "abc"},
			probeOK:    false,
			want:       Info{IsLinux: true, IsWayland: true, IsHyprland: true},
			wantProbed: true,
		},
		{
			name: "empty hyprland marker is ignored",
			goos: "linux",
			env:  MapEnv{EnvX11Display: ":0", EnvHyprlandInstance: ""},
			want: Info{IsLinux: true, SupportsNativeGlobalShortcuts: true},
		},
		{
			name: "windows",
			goos: "windows",
			env:  MapEnv{EnvHyprlandInstance: "abc"},
			want: Info{SupportsNativeGlobalShortcuts: true},
		},
		{
			name: "darwin",
			goos: "darwin",
			env:  MapEnv{EnvWaylandDisplay: "wayland-1"},
			want: Info{SupportsNativeGlobalShortcuts: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			r := &Resolver{GOOS: tt.goos, Env: tt.env, Probe: probeReturning(tt.probeOK, &calls)}

			got := r.Resolve(context.Background())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantProbed, calls > 0)
		})
	}
}

func TestResolveIsNotCached(t *testing.T) {
	env := MapEnv{EnvX11Display: ":0"}
	calls := 0
	r := &Resolver{GOOS: "linux", Env: env, Probe: probeReturning(true, &calls)}

	first := r.Resolve(context.Background())
	assert.False(t, first.IsHyprland)

	env[EnvHyprlandInstance] = "sig"
	second := r.Resolve(context.Background())
	assert.True(t, second.IsHyprland)
	assert.True(t, second.CanAutoConfigureHyprland)
	assert.Equal(t, 1, calls)
}

func TestInfoHint(t *testing.T) {
	assert.Contains(t, Info{CanAutoConfigureHyprland: true}.Hint(), "Hyprland detected")
	assert.Contains(t, Info{IsWayland: true}.Hint(), "Pure Wayland")
	assert.Contains(t, Info{SupportsNativeGlobalShortcuts: true}.Hint(), "Native global shortcut backend")
}

func TestDetectDisplayServer(t *testing.T) {
	assert.Equal(t, DisplayServerWindows, detectDisplayServer("windows", MapEnv{EnvWaylandDisplay: "w"}))
	assert.Equal(t, DisplayServerWayland, detectDisplayServer("linux", MapEnv{EnvWaylandDisplay: "w", EnvX11Display: ":0"}))
	assert.Equal(t, DisplayServerX11, detectDisplayServer("linux", MapEnv{EnvX11Display: ":0"}))
	assert.Equal(t, DisplayServerX11, detectDisplayServer("darwin", MapEnv{}))
	assert.Equal(t, DisplayServerUnknown, detectDisplayServer("linux", MapEnv{}))
	assert.Equal(t, "Wayland", DisplayServerWayland.String())
}
