package overlay

import (
	"fmt"
	"log/slog"
	"sync"
)

// Flag is a window property the overlay requires.
type Flag string

const (
	FlagDecorations            Flag = "decorations"
	FlagMinimizable            Flag = "minimizable"
	FlagAlwaysOnTop            Flag = "always_on_top"
	FlagContentProtected       Flag = "content_protected"
	FlagSkipTaskbar            Flag = "skip_taskbar"
	FlagVisibleOnAllWorkspaces Flag = "visible_on_all_workspaces"
)

// requiredFlags lists the overlay window flags in the order they are applied.
var requiredFlags = []struct {
	flag Flag
	on   bool
}{
	{FlagDecorations, false},
	{FlagMinimizable, false},
	{FlagAlwaysOnTop, true},
	{FlagContentProtected, true},
	{FlagSkipTaskbar, true},
	{FlagVisibleOnAllWorkspaces, true},
}

// Surface is the GUI shell's window. Show and Hide are opaque to this package.
type Surface interface {
	Show() error
	Hide() error
	SetFlag(flag Flag, on bool) error
}

// Window tracks overlay visibility and notifies listeners when the window
// is created and every time it goes from hidden to visible.
type Window struct {
	surface Surface

	// transition serializes visibility changes so a toggle reads and flips
	// the state as one step.
	transition sync.Mutex

	mu        sync.Mutex
	visible   bool
	opened    bool
	listeners []func()
}

// NewWindow wraps surface. The window starts hidden.
func NewWindow(surface Surface) *Window {
	return &Window{surface: surface}
}

// OnShow registers fn to run once when the window is opened and after every
// hidden to visible transition.
func (w *Window) OnShow(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Visible reports the last known visibility.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Open marks the window as created: it applies the overlay flags and runs
// the OnShow listeners so the window manager side can find the new window.
// Visibility is left alone. Only the first call has an effect.
func (w *Window) Open() {
	w.mu.Lock()
	if w.opened {
		w.mu.Unlock()
		return
	}
	w.opened = true
	w.mu.Unlock()

	w.ApplyWindowFlags()
	slog.Debug("Overlay window created")
	w.notify()
}

// Toggle shows a hidden window and hides a visible one.
func (w *Window) Toggle() error {
	return w.change(func(visible bool) bool { return !visible })
}

// Hide hides the window if it is visible.
func (w *Window) Hide() error {
	return w.change(func(bool) bool { return false })
}

// change moves the window to next(current visibility). Listeners run after
// the transition lock is released so they may call back into the window.
func (w *Window) change(next func(visible bool) bool) error {
	w.transition.Lock()
	shown, err := w.setVisibleLocked(next(w.Visible()))
	w.transition.Unlock()
	if err != nil {
		return err
	}
	if shown {
		w.notify()
	}
	return nil
}

// setVisibleLocked must be called with w.transition held. It reports
// whether the window went from hidden to visible.
func (w *Window) setVisibleLocked(visible bool) (bool, error) {
	if w.Visible() == visible {
		return false, nil
	}

	var err error
	if visible {
		err = w.surface.Show()
	} else {
		err = w.surface.Hide()
	}
	if err != nil {
		return false, fmt.Errorf("overlay %s: %w", visibilityVerb(visible), err)
	}

	w.mu.Lock()
	w.visible = visible
	w.mu.Unlock()
	slog.Debug("Overlay visibility changed", "visible", visible)
	return visible, nil
}

func (w *Window) notify() {
	w.mu.Lock()
	listeners := append([]func(){}, w.listeners...)
	w.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// ApplyWindowFlags sets every required flag. A flag the surface rejects is
// logged and the rest are still applied.
func (w *Window) ApplyWindowFlags() {
	for _, f := range requiredFlags {
		if err := w.surface.SetFlag(f.flag, f.on); err != nil {
			slog.Warn("Failed to apply overlay window flag", "flag", f.flag, "error", err)
		}
	}
}

func visibilityVerb(visible bool) string {
	if visible {
		return "show"
	}
	return "hide"
}

// HeadlessSurface stands in for a GUI shell. It records state and logs.
type HeadlessSurface struct {
	mu    sync.Mutex
	shown bool
	flags map[Flag]bool
}

// NewHeadlessSurface returns a surface with no flags set.
func NewHeadlessSurface() *HeadlessSurface {
	return &HeadlessSurface{flags: make(map[Flag]bool)}
}

func (s *HeadlessSurface) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = true
	slog.Info("Overlay shown")
	return nil
}

func (s *HeadlessSurface) Hide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = false
	slog.Info("Overlay hidden")
	return nil
}

func (s *HeadlessSurface) SetFlag(flag Flag, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[flag] = on
	return nil
}

// Flag returns the recorded value of flag.
func (s *HeadlessSurface) Flag(flag Flag) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.flags[flag]
	return v, ok
}

// Shown reports whether Show was called more recently than Hide.
func (s *HeadlessSurface) Shown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}
