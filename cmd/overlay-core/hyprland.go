package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/TanaroSch/overlay-core/internal/config"
	"github.com/TanaroSch/overlay-core/internal/diffutil"
	"github.com/TanaroSch/overlay-core/internal/hotkey"
	"github.com/TanaroSch/overlay-core/internal/hyprland"
	"github.com/TanaroSch/overlay-core/internal/platform"
)

// PlatformCmd prints capability flags.
type PlatformCmd struct{}

// Run resolves the current session's capabilities.
func (p *PlatformCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	info := newResolver(cfg).Resolve(context.Background())
	return cli.printJSON(struct {
		platform.Info
		Hint string `json:"hint"`
	}{info, info.Hint()})
}

// HyprlandCmd groups the Hyprland subcommands.
type HyprlandCmd struct {
	BindLine HyprlandBindLineCmd `cmd:"" name:"bind-line" help:"Print the Hyprland bind line for an accelerator"`
	Apply    HyprlandApplyCmd    `cmd:"" help:"Write the toggle bind into hyprland.conf and reload Hyprland"`
}

// HyprlandBindLineCmd prints a bind line.
type HyprlandBindLineCmd struct {
	Accelerator string `arg:"" optional:"" help:"Accelerator, e.g. Ctrl+Shift+Space (default: the built-in toggle binding)"`
}

// Run prints the bind line without touching any file.
func (b *HyprlandBindLineCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	line, err := hyprland.BindLineFor(acceleratorOrDefault(b.Accelerator), cfg.ResolvedToggleCommand())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.stdout(), line)
	return err
}

// HyprlandApplyCmd writes the toggle binding into the Hyprland config.
type HyprlandApplyCmd struct {
	Accelerator string `help:"Accelerator to bind (default: the built-in toggle binding)"`
	DryRun      bool   `help:"Print the changes as a diff instead of writing them"`
}

// Run applies or previews the binding.
func (a *HyprlandApplyCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	registry := hotkey.NewRegistry()
	if a.Accelerator != "" {
		normalized, err := hotkey.NormalizeAccelerator(a.Accelerator)
		if err != nil {
			return err
		}
		registry.Set(hotkey.ActionToggleOverlay, normalized)
	}

	client := hyprland.NewClient(newCommander(cfg))
	writer := hyprland.NewWriterFor(platform.OSEnv{}, cfg.HyprlandConfigDir, client)
	configurator := hyprland.NewConfigurator(newResolver(cfg), registry, writer, cfg.ResolvedToggleCommand())

	if a.DryRun {
		plan, err := configurator.Plan(hotkey.ActionToggleOverlay)
		if err != nil {
			return err
		}
		return writePlan(cli.stdout(), plan)
	}

	result, err := configurator.Apply(context.Background(), hotkey.ActionToggleOverlay)
	if err != nil {
		return err
	}
	return cli.printJSON(result)
}

// writePlan prints a unified diff per file that would change.
func writePlan(w io.Writer, plan hyprland.Plan) error {
	var sb strings.Builder
	for _, change := range []hyprland.FileChange{plan.Fragment, plan.MainConfig} {
		if !change.Changed() {
			fmt.Fprintf(&sb, "%s: unchanged\n", change.Path)
			continue
		}
		sb.WriteString(diffutil.Unified(change.Path, change.Before, change.After, 3))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func acceleratorOrDefault(accel string) string {
	if strings.TrimSpace(accel) != "" {
		return accel
	}
	for _, b := range hotkey.DefaultBindings() {
		if b.Action == hotkey.ActionToggleOverlay {
			return b.Accelerator
		}
	}
	return ""
}

func newCommander(cfg *config.Config) *hyprland.ExecCommander {
	cmd := hyprland.NewExecCommander(cfg.WMCommand)
	cmd.Timeout = cfg.CommandTimeout
	return cmd
}

func newResolver(cfg *config.Config) *platform.Resolver {
	return platform.NewResolver(hyprland.NewClient(newCommander(cfg)).Available)
}
