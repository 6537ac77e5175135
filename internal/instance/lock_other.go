//go:build !unix && !windows

package instance

// Lock is a no-op on platforms without flock or named mutexes.
type Lock struct{}

// TryLock always succeeds on this platform.
func TryLock(string) (*Lock, error) { return &Lock{}, nil }

// Release is a no-op on this platform.
func (l *Lock) Release() error { return nil }
