package hyprland

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommand is the Hyprland control CLI.
const DefaultCommand = "hyprctl"

// DefaultTimeout bounds a single hyprctl invocation.
const DefaultTimeout = 5 * time.Second

// Commander runs the window manager CLI with argv-style arguments and
// returns its standard output. Tests substitute a scripted fake.
type Commander interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecCommander runs a real binary.
type ExecCommander struct {
	Path    string
	Timeout time.Duration
}

// NewExecCommander returns a commander for path with the default timeout.
func NewExecCommander(path string) *ExecCommander {
	if path == "" {
		path = DefaultCommand
	}
	return &ExecCommander{Path: path, Timeout: DefaultTimeout}
}

// Run executes the binary. A non-zero exit is reported with stderr attached.
func (c *ExecCommander) Run(ctx context.Context, args ...string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = strings.TrimSpace(string(out))
			}
			return out, fmt.Errorf("%s %s: exit status %d: %s", c.Path, strings.Join(args, " "), exitErr.ExitCode(), msg)
		}
		return out, fmt.Errorf("%s %s: %w", c.Path, strings.Join(args, " "), err)
	}
	return out, nil
}
