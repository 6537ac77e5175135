//go:build !windows

package instance

import (
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// runtimeDir is where the lock file and socket live.
func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "overlay-core-"+strconv.Itoa(os.Getuid()))
}

// DefaultLockName returns the lock file path for name.
func DefaultLockName(name string) string {
	return filepath.Join(runtimeDir(), name+".lock")
}

// DefaultEndpoint returns the relay socket path for name.
func DefaultEndpoint(name string) string {
	return filepath.Join(runtimeDir(), name+".sock")
}

// prepareEndpoint removes a socket left behind by a crashed primary. It is
// only called while holding the lock.
func prepareEndpoint(endpoint string) {
	if err := os.Remove(endpoint); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to remove stale relay socket", "path", endpoint, "error", err)
	}
}

func listen(endpoint string) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(endpoint), 0o700); err != nil {
		return nil, err
	}
	return net.Listen("unix", endpoint)
}

func dial(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", endpoint, timeout)
}
