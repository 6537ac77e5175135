//go:build windows

package ui

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows"
)

// OpenFileInDefaultApp runs the "open" verb on filePath through ShellExecuteW.
func OpenFileInDefaultApp(filePath string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(filePath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", filePath, err)
	}
	if err := windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		slog.Warn("ShellExecuteW failed", "path", filePath, "error", err)
		return fmt.Errorf("ShellExecuteW open %s: %w", filePath, err)
	}
	return nil
}
