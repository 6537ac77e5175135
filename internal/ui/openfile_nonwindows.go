//go:build !windows

package ui

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// OpenFileInDefaultApp opens filePath with the desktop's default handler.
func OpenFileInDefaultApp(filePath string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}

	cmd := exec.Command(opener, filePath)
	slog.Debug("Opening file in default app", "path", filePath, "opener", opener)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", opener, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
