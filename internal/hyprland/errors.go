package hyprland

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedKey is returned when a key has no Hyprland key name.
	ErrUnsupportedKey = errors.New("key is not supported by Hyprland auto-configuration")
	// ErrPlatformUnsupported is returned when auto-configuration is unavailable in this session.
	ErrPlatformUnsupported = errors.New("auto-configuration requires a running Hyprland session with hyprctl")
	// ErrFilesystemFailed is matched by every *FSError.
	ErrFilesystemFailed = errors.New("config file operation failed")
	// ErrReloadFailed is returned when `hyprctl reload` fails or cannot be run.
	ErrReloadFailed = errors.New("hyprctl reload failed")
)

// FSError records a failed directory or file operation on a Hyprland config path.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFilesystemFailed) hold for every FSError.
func (e *FSError) Is(target error) bool { return target == ErrFilesystemFailed }
