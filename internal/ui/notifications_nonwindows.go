//go:build !windows

package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gen2brain/beeep"
)

var (
	iconPathOnce sync.Once
	iconPath     string
)

func (n *NotificationManager) platformNotify(title, message string) error {
	iconPathOnce.Do(func() {
		path, err := writeIconFile(n.embeddedIcon)
		if err != nil {
			slog.Debug("Notification icon unavailable", "error", err)
			return
		}
		iconPath = path
	})
	return beeep.Notify(title, message, iconPath)
}

// writeIconFile stores the icon in the user cache so notification daemons
// that need a path can display it.
func writeIconFile(iconData []byte) (string, error) {
	if len(iconData) == 0 {
		return "", fmt.Errorf("cannot write empty icon data")
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "overlay-core")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "icon.png")
	if err := os.WriteFile(path, iconData, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
