//go:build windows

package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-toast/toast"
)

func (n *NotificationManager) platformNotify(title, message string) error {
	var iconPathForToast string
	if len(n.embeddedIcon) > 0 {
		path, err := writeTempIcon(n.embeddedIcon)
		if err != nil {
			slog.Warn("Error writing temporary icon", "error", err)
		} else {
			iconPathForToast = path
			time.AfterFunc(10*time.Second, func() {
				if errRem := os.Remove(path); errRem != nil && !errors.Is(errRem, os.ErrNotExist) {
					slog.Debug("Error removing temporary icon file", "path", path, "error", errRem)
				}
			})
		}
	}

	notification := toast.Notification{
		AppID:   n.appName,
		Title:   title,
		Message: message,
		Icon:    iconPathForToast,
	}
	if err := notification.Push(); err != nil {
		if strings.Contains(err.Error(), "notification platform is unavailable") {
			return fmt.Errorf("toast platform unavailable (notifications may be disabled in Windows Settings): %w", err)
		}
		return err
	}
	return nil
}

func writeTempIcon(iconData []byte) (string, error) {
	tmpFile, err := os.CreateTemp("", "overlay-core-icon-*.ico")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	if _, err := tmpFile.Write(iconData); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", err
	}
	absPath, err := filepath.Abs(tmpFile.Name())
	if err != nil {
		return tmpFile.Name(), nil
	}
	return absPath, nil
}
