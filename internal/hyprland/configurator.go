package hyprland

import (
	"context"
	"fmt"
	"sync"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
	"github.com/TanaroSch/overlay-core/internal/platform"
)

// CapabilityResolver reports the current platform capabilities.
type CapabilityResolver interface {
	Resolve(ctx context.Context) platform.Info
}

// Configurator writes the registry's current binding into Hyprland's config.
type Configurator struct {
	resolver CapabilityResolver
	registry *hotkey.Registry

	mu      sync.Mutex
	writer  *Writer
	command string
}

// NewConfigurator creates a configurator. command is the exec prefix placed
// in front of --toggle-overlay.
func NewConfigurator(resolver CapabilityResolver, registry *hotkey.Registry, writer *Writer, command string) *Configurator {
	return &Configurator{
		resolver: resolver,
		registry: registry,
		writer:   writer,
		command:  command,
	}
}

// Reconfigure swaps the writer and exec command after a settings change.
func (c *Configurator) Reconfigure(writer *Writer, command string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer = writer
	c.command = command
}

func (c *Configurator) current() (*Writer, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writer, c.command
}

// BindLine returns the bind line for action's current accelerator.
func (c *Configurator) BindLine(action hotkey.Action) (string, error) {
	accel, ok := c.registry.Get(action)
	if !ok {
		return "", fmt.Errorf("%w: %q", hotkey.ErrUnsupportedAction, action)
	}
	_, command := c.current()
	return BindLineFor(accel, command)
}

// Apply writes action's binding into the Hyprland config and reloads it.
// It refuses to run outside a Hyprland session with a reachable hyprctl.
func (c *Configurator) Apply(ctx context.Context, action hotkey.Action) (ApplyResult, error) {
	if info := c.resolver.Resolve(ctx); !info.CanAutoConfigureHyprland {
		return ApplyResult{}, ErrPlatformUnsupported
	}
	line, err := c.BindLine(action)
	if err != nil {
		return ApplyResult{}, err
	}
	writer, _ := c.current()
	return writer.Apply(ctx, line)
}

// Plan previews what Apply would write for action. It works in any session
// so users can configure Hyprland by hand.
func (c *Configurator) Plan(action hotkey.Action) (Plan, error) {
	line, err := c.BindLine(action)
	if err != nil {
		return Plan{}, err
	}
	writer, _ := c.current()
	return writer.Plan(line)
}
