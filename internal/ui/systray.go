package ui

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"
)

// MenuActions are the callbacks behind the tray menu items. Nil callbacks
// leave their item out of the menu.
type MenuActions struct {
	ToggleOverlay    func()
	ChangeHotkey     func()
	ApplyHyprland    func()
	PreviewHyprland  func()
	CopyBindLine     func()
	RestoreClipboard func()
	OpenConfig       func()
	Quit             func()
}

// SystrayManager handles the system tray icon and menu.
type SystrayManager struct {
	appName      string
	version      string
	embeddedIcon []byte
	actions      MenuActions

	mu             sync.Mutex
	hotkeyLabel    string
	hint           string
	applyEnabled   bool
	restoreEnabled bool
	miHotkey       *systray.MenuItem
	miHint         *systray.MenuItem
	miApply        *systray.MenuItem
	miRestore      *systray.MenuItem
}

// NewSystrayManager creates a new system tray manager.
func NewSystrayManager(appName, version string, embeddedIcon []byte, actions MenuActions) *SystrayManager {
	return &SystrayManager{
		appName:      appName,
		version:      version,
		embeddedIcon: embeddedIcon,
		actions:      actions,
	}
}

// Run initializes and starts the system tray. It blocks until Quit.
func (s *SystrayManager) Run() {
	systray.Run(s.onReady, s.onExit)
}

// Quit stops the tray loop.
func (s *SystrayManager) Quit() {
	systray.Quit()
}

// SetHotkey shows accelerator as the current toggle shortcut.
func (s *SystrayManager) SetHotkey(accelerator string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotkeyLabel = hotkeyMenuTitle(accelerator)
	if s.miHotkey != nil {
		s.miHotkey.SetTitle(s.hotkeyLabel)
	}
}

// SetPlatformHint shows the capability hint below the hotkey.
func (s *SystrayManager) SetPlatformHint(hint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint = hint
	if s.miHint != nil {
		s.miHint.SetTitle(hint)
	}
}

// SetApplyEnabled enables "Apply to Hyprland" only where auto-configuration
// is possible.
func (s *SystrayManager) SetApplyEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyEnabled = enabled
	setItemEnabled(s.miApply, enabled)
}

// SetRestoreEnabled enables "Restore Clipboard" once there is something to
// put back.
func (s *SystrayManager) SetRestoreEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreEnabled = enabled
	setItemEnabled(s.miRestore, enabled)
}

// onReady is called by systray once the tray is ready.
func (s *SystrayManager) onReady() {
	title := fmt.Sprintf("%s %s", s.appName, s.version)
	systray.SetTitle(title)
	systray.SetTooltip(title)
	if len(s.embeddedIcon) > 0 {
		systray.SetIcon(s.embeddedIcon)
	} else {
		slog.Warn("No embedded icon data to set for systray")
	}

	miVersion := systray.AddMenuItem(fmt.Sprintf("Version: %s", s.version), s.appName+" version")
	miVersion.Disable()

	s.mu.Lock()
	s.miHotkey = systray.AddMenuItem(s.hotkeyLabel, "Current toggle shortcut")
	s.miHotkey.Disable()
	s.miHint = systray.AddMenuItem(s.hint, "Shortcut support in this session")
	s.miHint.Disable()
	s.mu.Unlock()
	systray.AddSeparator()

	s.addItem("Toggle Overlay", "Show or hide the overlay", s.actions.ToggleOverlay)
	s.addItem("Change Toggle Hotkey...", "Rebind the toggle shortcut", s.actions.ChangeHotkey)
	systray.AddSeparator()

	miHyprland := systray.AddMenuItem("Hyprland", "Compositor integration")
	if s.actions.ApplyHyprland != nil {
		s.mu.Lock()
		s.miApply = miHyprland.AddSubMenuItem("Apply Hotkey to Hyprland", "Write the bind into hyprland.conf and reload")
		setItemEnabled(s.miApply, s.applyEnabled)
		item := s.miApply
		s.mu.Unlock()
		handleClicks(item, "Apply Hotkey to Hyprland", s.actions.ApplyHyprland)
	}
	if s.actions.PreviewHyprland != nil {
		item := miHyprland.AddSubMenuItem("Preview Hyprland Changes", "Show what applying would change")
		handleClicks(item, "Preview Hyprland Changes", s.actions.PreviewHyprland)
	}
	if s.actions.CopyBindLine != nil {
		item := miHyprland.AddSubMenuItem("Copy Bind Line", "Copy the bind line for manual configuration")
		handleClicks(item, "Copy Bind Line", s.actions.CopyBindLine)
	}

	if s.actions.RestoreClipboard != nil {
		s.mu.Lock()
		s.miRestore = systray.AddMenuItem("Restore Clipboard", "Put back what was on the clipboard before copying")
		setItemEnabled(s.miRestore, s.restoreEnabled)
		item := s.miRestore
		s.mu.Unlock()
		handleClicks(item, "Restore Clipboard", s.actions.RestoreClipboard)
	}
	systray.AddSeparator()

	s.addItem("Open Config File", "Open config.yaml in the default editor", s.actions.OpenConfig)
	systray.AddSeparator()
	miQuit := systray.AddMenuItem("Quit", "Exit the application")

	go func() {
		<-miQuit.ClickedCh
		slog.Info("Quit menu item clicked")
		if s.actions.Quit != nil {
			s.actions.Quit()
		}
		systray.Quit()
	}()

	slog.Info("Systray ready and menu configured")
}

// onExit is called when the systray is exiting.
func (s *SystrayManager) onExit() {
	slog.Info("Systray exiting")
}

func (s *SystrayManager) addItem(title, tooltip string, fn func()) {
	if fn == nil {
		return
	}
	handleClicks(systray.AddMenuItem(title, tooltip), title, fn)
}

// handleClicks runs fn for every click on item. A panicking callback is
// logged and the item keeps working.
func handleClicks(item *systray.MenuItem, name string, fn func()) {
	go func() {
		for range item.ClickedCh {
			slog.Debug("Menu item clicked", "item", name)
			func() {
				defer func() {
					if r := recover(); r != nil {
						slog.Error("Recovered from panic in menu handler", "item", name, "panic", r)
					}
				}()
				fn()
			}()
		}
	}()
}

func setItemEnabled(item *systray.MenuItem, enabled bool) {
	if item == nil {
		return
	}
	if enabled {
		item.Enable()
	} else {
		item.Disable()
	}
}

func hotkeyMenuTitle(accelerator string) string {
	if accelerator == "" {
		return "Toggle hotkey: (none)"
	}
	return "Toggle hotkey: " + accelerator
}
