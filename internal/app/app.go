package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/TanaroSch/overlay-core/internal/clipboard"
	"github.com/TanaroSch/overlay-core/internal/config"
	"github.com/TanaroSch/overlay-core/internal/hotkey"
	"github.com/TanaroSch/overlay-core/internal/hotkey/native"
	"github.com/TanaroSch/overlay-core/internal/hyprland"
	"github.com/TanaroSch/overlay-core/internal/instance"
	"github.com/TanaroSch/overlay-core/internal/overlay"
	"github.com/TanaroSch/overlay-core/internal/platform"
	"github.com/TanaroSch/overlay-core/internal/resources"
	"github.com/TanaroSch/overlay-core/internal/ui"
)

// Name is the application name used for titles, lock files and sockets.
const Name = "overlay-core"

// ToggleOverlayArg is the command-line argument that toggles the overlay,
// either on a fresh launch or relayed from a second invocation.
const ToggleOverlayArg = "--toggle-overlay"

// ActionArgPrefix prefixes an argument that triggers a bindable action by
// name, e.g. --action=toggle_overlay_visibility.
const ActionArgPrefix = "--action="

// Tray is the UI layer driven by the application.
type Tray interface {
	Run()
	Quit()
	SetHotkey(accelerator string)
	SetPlatformHint(hint string)
	SetApplyEnabled(enabled bool)
	SetRestoreEnabled(enabled bool)
}

// Notifier shows desktop notifications.
type Notifier interface {
	ShowNotification(title, message string)
	SetEnabled(enabled bool)
}

// Clipboard copies text and can put back what it replaced.
type Clipboard interface {
	Copy(text string) error
	CanRestore() bool
	Restore() error
}

// Options configures New. Zero fields select the real implementations.
type Options struct {
	Version   string
	Config    *config.Config
	GOOS      string
	Env       platform.Env
	PID       int
	Backend   hotkey.Backend
	Commander hyprland.Commander
	Surface   overlay.Surface
	Clipboard Clipboard
	Notifier  Notifier
	Dialogs   Dialogs
	NewTray   func(ui.MenuActions) Tray

	// ShowPreview opens rendered config previews. Defaults to ui.ShowPreview.
	ShowPreview func(title string, files []ui.PreviewFile) error
}

// Application wires the hotkey manager, the Hyprland integration and the
// tray together and exposes the commands the UI layer calls.
type Application struct {
	version string
	env     platform.Env

	mu     sync.Mutex
	config *config.Config

	registry     *hotkey.Registry
	hotkeys      *hotkey.Manager
	resolver     *platform.Resolver
	client       *hyprland.Client
	configurator *hyprland.Configurator
	enforcer     *hyprland.Enforcer
	window       *overlay.Window
	clipboard    Clipboard
	notifier     Notifier
	dialogs      Dialogs
	tray         Tray
	showPreview  func(string, []ui.PreviewFile) error

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// New creates a new application instance.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		return nil, errors.New("app: config required")
	}
	cfg := opts.Config
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Env == nil {
		opts.Env = platform.OSEnv{}
	}
	if opts.PID == 0 {
		opts.PID = os.Getpid()
	}

	a := &Application{
		version:     opts.Version,
		env:         opts.Env,
		config:      cfg,
		clipboard:   opts.Clipboard,
		notifier:    opts.Notifier,
		dialogs:     opts.Dialogs,
		showPreview: opts.ShowPreview,
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	commander := opts.Commander
	if commander == nil {
		hyprctl := hyprland.NewExecCommander(cfg.WMCommand)
		hyprctl.Timeout = cfg.CommandTimeout
		commander = hyprctl
	}
	a.client = hyprland.NewClient(commander)
	a.resolver = &platform.Resolver{GOOS: opts.GOOS, Env: opts.Env, Probe: a.client.Available}

	backend := opts.Backend
	if backend == nil {
		backend = native.Select(platform.DetectDisplayServer())
	}
	a.registry = hotkey.NewRegistry()
	a.hotkeys = hotkey.NewManager(backend, a.registry, map[hotkey.Action]hotkey.Handler{
		hotkey.ActionToggleOverlay: a.ToggleOverlay,
	})

	a.configurator = hyprland.NewConfigurator(a.resolver, a.registry, a.newWriter(cfg), cfg.ResolvedToggleCommand())
	a.enforcer = hyprland.NewEnforcer(a.client, opts.Env, opts.PID, cfg.WindowMarker, discoveryFrom(cfg))

	surface := opts.Surface
	if surface == nil {
		surface = overlay.NewHeadlessSurface()
	}
	a.window = overlay.NewWindow(surface)
	a.window.OnShow(func() { a.enforcer.Trigger(a.ctx) })

	if a.clipboard == nil {
		a.clipboard = clipboard.NewManager()
	}
	icon, err := resources.GetIcon()
	if err != nil {
		slog.Warn("Failed to load embedded icon", "error", err)
	}
	if a.notifier == nil {
		a.notifier = ui.NewNotificationManager(cfg.UseNotifications, Name, icon)
	}
	if opts.NewTray != nil {
		a.tray = opts.NewTray(a.menuActions())
	} else {
		a.tray = ui.NewSystrayManager(Name, opts.Version, icon, a.menuActions())
	}
	if a.dialogs == nil {
		a.dialogs = zenityDialogs{}
	}
	if a.showPreview == nil {
		a.showPreview = ui.ShowPreview
	}
	return a, nil
}

// newWriter builds the Hyprland config writer for cfg. A directory that
// cannot be resolved is reported by the Hyprland commands.
func (a *Application) newWriter(cfg *config.Config) *hyprland.Writer {
	return hyprland.NewWriterFor(a.env, cfg.HyprlandConfigDir, a.client)
}

func discoveryFrom(cfg *config.Config) hyprland.Discovery {
	return hyprland.Discovery{Attempts: cfg.Discovery.Attempts, Interval: cfg.Discovery.Interval}
}

// Run starts the relay, creates the overlay window, registers the hotkeys,
// handles args as if they had been relayed and blocks in the tray loop
// until Quit or ctx is done.
func (a *Application) Run(ctx context.Context, relay *instance.Server, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A second launch may relay as soon as the instance lock is held, so the
	// relay listens before the slower startup steps.
	if relay != nil {
		if err := relay.Listen(); err != nil {
			return err
		}
	}
	g, gctx := errgroup.WithContext(ctx)
	if relay != nil {
		g.Go(func() error { return relay.Serve(gctx) })
	}
	if path := a.Config().GetConfigPath(); path != "" {
		g.Go(func() error {
			if err := config.Watch(gctx, path, a.applyConfig); err != nil {
				slog.Warn("Config live reload disabled", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		a.tray.Quit()
		return nil
	})

	a.window.Open()
	if err := a.hotkeys.RegisterAll(); err != nil {
		slog.Warn("Failed to register some hotkeys", "error", err)
		a.notifier.ShowNotification("Hotkey Registration Issue", err.Error())
	}
	if err := a.HandleArgs(args); err != nil {
		slog.Warn("Startup arguments failed", "error", err)
	}
	a.refreshTray()

	a.tray.Run()
	cancel()
	a.Shutdown()
	return g.Wait()
}

// Shutdown unregisters hotkeys and stops background work. Safe to call more
// than once.
func (a *Application) Shutdown() {
	a.stopOnce.Do(func() {
		slog.Info("Shutting down, unregistering hotkeys")
		a.cancel()
		a.hotkeys.UnregisterAll()
	})
}

// Config returns the active configuration.
func (a *Application) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config
}

// Window returns the overlay window.
func (a *Application) Window() *overlay.Window { return a.window }

// ListBindings returns every binding in declaration order.
func (a *Application) ListBindings() []hotkey.Binding {
	return a.registry.List()
}

// PlatformInfo returns fresh capability flags.
func (a *Application) PlatformInfo(ctx context.Context) platform.Info {
	return a.resolver.Resolve(ctx)
}

// UpdateBinding rebinds action. On failure the previous shortcut stays active.
func (a *Application) UpdateBinding(action hotkey.Action, accelerator string) error {
	if err := a.hotkeys.Update(action, accelerator); err != nil {
		return err
	}
	if current, ok := a.registry.Get(action); ok && action == hotkey.ActionToggleOverlay {
		a.tray.SetHotkey(current)
	}
	return nil
}

// ApplyHyprlandBinding writes action's binding into the Hyprland config.
func (a *Application) ApplyHyprlandBinding(ctx context.Context, action hotkey.Action) (hyprland.ApplyResult, error) {
	result, err := a.configurator.Apply(ctx, action)
	if err != nil {
		return result, err
	}
	slog.Info("Hyprland: applied hotkey", "bind_line", result.BindLine, "fragment", result.BindFilePath)
	return result, nil
}

// HyprlandBindLine returns the bind line for action's current binding.
func (a *Application) HyprlandBindLine(action hotkey.Action) (string, error) {
	return a.configurator.BindLine(action)
}

// PreviewHyprland computes what ApplyHyprlandBinding would change.
func (a *Application) PreviewHyprland(action hotkey.Action) (hyprland.Plan, error) {
	return a.configurator.Plan(action)
}

// CopyBindLine copies action's bind line to the clipboard.
func (a *Application) CopyBindLine(action hotkey.Action) (string, error) {
	line, err := a.HyprlandBindLine(action)
	if err != nil {
		return "", err
	}
	if err := a.clipboard.Copy(line); err != nil {
		return "", err
	}
	a.tray.SetRestoreEnabled(a.clipboard.CanRestore())
	return line, nil
}

// RestoreClipboard puts back the clipboard content replaced by CopyBindLine.
func (a *Application) RestoreClipboard() error {
	err := a.clipboard.Restore()
	a.tray.SetRestoreEnabled(a.clipboard.CanRestore())
	return err
}

// ToggleOverlay shows a hidden overlay and hides a visible one.
func (a *Application) ToggleOverlay() error {
	return a.window.Toggle()
}

// HandleArgs executes the arguments of a launch, local or relayed. Each
// recognized argument runs its action's handler; an unknown action name
// fails before anything runs.
func (a *Application) HandleArgs(args []string) error {
	actions, err := ActionsFromArgs(args)
	if err != nil {
		return err
	}
	var errs []error
	for _, action := range actions {
		if err := a.hotkeys.Trigger(action); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ActionsFromArgs maps launch arguments to actions. Arguments it does not
// know are ignored.
func ActionsFromArgs(args []string) ([]hotkey.Action, error) {
	var actions []hotkey.Action
	for _, arg := range args {
		switch {
		case arg == ToggleOverlayArg:
			actions = append(actions, hotkey.ActionToggleOverlay)
		case strings.HasPrefix(arg, ActionArgPrefix):
			action, err := hotkey.ParseAction(strings.TrimPrefix(arg, ActionArgPrefix))
			if err != nil {
				return nil, err
			}
			actions = append(actions, action)
		default:
			slog.Debug("Ignoring argument", "arg", arg)
		}
	}
	return actions, nil
}

// applyConfig takes over a reloaded configuration. Settings that are bound
// into long-lived components at startup only take effect after a restart.
func (a *Application) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	prev := a.config
	a.config = cfg
	writer := a.newWriter(cfg)
	a.mu.Unlock()

	a.notifier.SetEnabled(cfg.UseNotifications)
	a.enforcer.SetDiscovery(discoveryFrom(cfg))
	a.configurator.Reconfigure(writer, cfg.ResolvedToggleCommand())

	if prev.WMCommand != cfg.WMCommand || prev.WindowMarker != cfg.WindowMarker || prev.CommandTimeout != cfg.CommandTimeout {
		slog.Warn("Config: wm_command, window_marker and command_timeout changes apply after restart")
	}
	a.refreshTray()
}

func (a *Application) refreshTray() {
	if current, ok := a.registry.Get(hotkey.ActionToggleOverlay); ok {
		a.tray.SetHotkey(current)
	}
	info := a.resolver.Resolve(a.ctx)
	a.tray.SetPlatformHint(info.Hint())
	a.tray.SetApplyEnabled(info.CanAutoConfigureHyprland)
	a.tray.SetRestoreEnabled(a.clipboard.CanRestore())
}

func (a *Application) menuActions() ui.MenuActions {
	return ui.MenuActions{
		ToggleOverlay:    a.onToggleOverlay,
		ChangeHotkey:     a.onChangeHotkey,
		ApplyHyprland:    a.onApplyHyprland,
		PreviewHyprland:  a.onPreviewHyprland,
		CopyBindLine:     a.onCopyBindLine,
		RestoreClipboard: a.onRestoreClipboard,
		OpenConfig:       a.onOpenConfig,
		Quit:             a.Shutdown,
	}
}

func (a *Application) onToggleOverlay() {
	if err := a.ToggleOverlay(); err != nil {
		slog.Error("Toggle overlay failed", "error", err)
		a.notifier.ShowNotification("Overlay Error", err.Error())
	}
}

// onChangeHotkey asks for a new toggle shortcut until the user enters one
// that works or cancels.
func (a *Application) onChangeHotkey() {
	current, _ := a.registry.Get(hotkey.ActionToggleOverlay)
	for {
		accel, err := a.dialogs.Entry(Name+" - Change Toggle Hotkey",
			"Enter the new toggle shortcut (e.g. Ctrl+Shift+Space):", current)
		if err != nil {
			if !errors.Is(err, ErrDialogCanceled) {
				slog.Error("Hotkey dialog failed", "error", err)
			}
			return
		}

		if err := a.UpdateBinding(hotkey.ActionToggleOverlay, accel); err != nil {
			slog.Warn("Hotkey update rejected", "accelerator", accel, "error", err)
			a.dialogs.Error(Name+" - Change Toggle Hotkey", err.Error())
			current = accel
			continue
		}

		updated, _ := a.registry.Get(hotkey.ActionToggleOverlay)
		msg := fmt.Sprintf("Toggle hotkey set to %s.", updated)
		if a.PlatformInfo(a.ctx).CanAutoConfigureHyprland {
			msg += " Use Hyprland > Apply Hotkey to Hyprland to update the compositor bind."
		}
		a.notifier.ShowNotification("Hotkey Updated", msg)
		return
	}
}

func (a *Application) onApplyHyprland() {
	result, err := a.ApplyHyprlandBinding(a.ctx, hotkey.ActionToggleOverlay)
	if err != nil {
		slog.Error("Hyprland apply failed", "error", err)
		a.dialogs.Error(Name+" - Apply to Hyprland", err.Error())
		return
	}
	a.notifier.ShowNotification("Hyprland Updated", result.BindLine)
}

func (a *Application) onPreviewHyprland() {
	plan, err := a.PreviewHyprland(hotkey.ActionToggleOverlay)
	if err != nil {
		a.dialogs.Error(Name+" - Preview Hyprland Changes", err.Error())
		return
	}
	files := []ui.PreviewFile{
		{Path: plan.Fragment.Path, Before: plan.Fragment.Before, After: plan.Fragment.After},
		{Path: plan.MainConfig.Path, Before: plan.MainConfig.Before, After: plan.MainConfig.After},
	}
	if err := a.showPreview("Hyprland configuration preview", files); err != nil {
		slog.Warn("Could not show Hyprland preview", "error", err)
		a.notifier.ShowNotification("Preview Error", err.Error())
	}
}

func (a *Application) onCopyBindLine() {
	line, err := a.CopyBindLine(hotkey.ActionToggleOverlay)
	if err != nil {
		slog.Warn("Copy bind line failed", "error", err)
		a.dialogs.Error(Name+" - Copy Bind Line", err.Error())
		return
	}
	a.notifier.ShowNotification("Bind Line Copied", line)
}

func (a *Application) onRestoreClipboard() {
	if err := a.RestoreClipboard(); err != nil {
		slog.Warn("Clipboard restore failed", "error", err)
		a.notifier.ShowNotification("Clipboard", err.Error())
		return
	}
	a.notifier.ShowNotification("Clipboard Restored", "Previous clipboard content has been restored.")
}

// onOpenConfig opens the config file in the default editor.
func (a *Application) onOpenConfig() {
	configPath := a.Config().GetConfigPath()
	if configPath == "" {
		a.notifier.ShowNotification("Error Opening File", "No configuration file is in use.")
		return
	}
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		absPath = configPath
	}
	if _, err := os.Stat(absPath); err != nil {
		slog.Warn("Config file not accessible", "path", absPath, "error", err)
		a.notifier.ShowNotification("Error Opening File", fmt.Sprintf("Config file not found: %s", absPath))
		return
	}
	if err := ui.OpenFileInDefaultApp(absPath); err != nil {
		slog.Warn("Could not open config file", "path", absPath, "error", err)
		a.notifier.ShowNotification("Error Opening File", fmt.Sprintf("Could not open config file '%s': %v", absPath, err))
	}
}
