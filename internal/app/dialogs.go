package app

import (
	"errors"
	"log/slog"

	"github.com/ncruces/zenity"
)

// ErrDialogCanceled is returned by Dialogs.Entry when the user closes the
// dialog without confirming.
var ErrDialogCanceled = errors.New("dialog canceled")

// Dialogs are the modal prompts used by tray commands.
type Dialogs interface {
	Entry(title, text, initial string) (string, error)
	Error(title, message string)
}

type zenityDialogs struct{}

func (zenityDialogs) Entry(title, text, initial string) (string, error) {
	value, err := zenity.Entry(text,
		zenity.Title(title),
		zenity.EntryText(initial),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrDialogCanceled
	}
	return value, err
}

func (zenityDialogs) Error(title, message string) {
	if err := zenity.Error(message, zenity.Title(title), zenity.ErrorIcon); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		slog.Warn("Could not show error dialog", "title", title, "message", message, "error", err)
	}
}
