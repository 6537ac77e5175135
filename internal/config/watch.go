package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events editors produce per save.
const reloadDebounce = 150 * time.Millisecond

// Watch reloads the configuration at path whenever it changes and passes
// the result to onChange. Files that fail to parse are logged and skipped.
// The directory is watched rather than the file so that editors replacing
// the file via rename are picked up. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	configPath := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}
	slog.Debug("Watching config for changes", "path", configPath)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldReloadConfig(configPath, event) {
				debounce = time.After(reloadDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Config watcher error", "error", err)
		case <-debounce:
			debounce = nil
			cfg, err := Load(configPath)
			if err != nil {
				slog.Warn("Config reload failed, keeping previous settings", "error", err)
				continue
			}
			slog.Info("Config reloaded", "path", configPath)
			onChange(cfg)
		}
	}
}

// shouldReloadConfig reports whether an fsnotify event warrants a reload.
func shouldReloadConfig(configPath string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == configPath || filepath.Base(name) == filepath.Base(configPath)
}
