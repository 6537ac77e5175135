//go:build windows

package instance

import (
	"net"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/Microsoft/go-winio"
)

func sanitizedUser() string {
	username := strings.TrimSpace(os.Getenv("USERNAME"))
	if username == "" {
		if current, err := user.Current(); err == nil {
			username = current.Username
		}
	}
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// DefaultLockName returns the per-user mutex name for name.
func DefaultLockName(name string) string {
	return `Local\` + name + "-" + sanitizedUser()
}

// DefaultEndpoint returns the per-user pipe name for name.
func DefaultEndpoint(name string) string {
	return `\\.\pipe\` + name + "-" + sanitizedUser()
}

func prepareEndpoint(string) {}

func listen(endpoint string) (net.Listener, error) {
	return winio.ListenPipe(endpoint, nil)
}

func dial(endpoint string, timeout time.Duration) (net.Conn, error) {
	return winio.DialPipe(endpoint, &timeout)
}
