package ui

import (
	"log/slog"
	"sync/atomic"
)

// NotificationManager shows desktop notifications for command outcomes.
type NotificationManager struct {
	enabled      atomic.Bool
	appName      string
	embeddedIcon []byte
	notify       func(title, message string) error
}

// NewNotificationManager creates a new notification manager.
func NewNotificationManager(useNotifications bool, appName string, embeddedIcon []byte) *NotificationManager {
	n := &NotificationManager{appName: appName, embeddedIcon: embeddedIcon}
	n.notify = n.platformNotify
	n.enabled.Store(useNotifications)
	return n
}

// SetEnabled turns notifications on or off, e.g. after a config reload.
func (n *NotificationManager) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// ShowNotification displays a desktop notification if enabled.
func (n *NotificationManager) ShowNotification(title, message string) {
	if !n.enabled.Load() {
		slog.Debug("Notification suppressed", "title", title, "message", message)
		return
	}
	if err := n.notify(title, message); err != nil {
		slog.Warn("Error showing notification", "title", title, "error", err)
	}
}
