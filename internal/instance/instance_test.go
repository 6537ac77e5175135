//go:build unix

package instance

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortTempDir keeps socket paths under the sun_path length limit.
func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "oc")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestTryLockIsExclusive(t *testing.T) {
	path := filepath.Join(shortTempDir(t), "test.lock")

	first, err := TryLock(path)
	require.NoError(t, err)

	_, err = TryLock(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	again, err := TryLock(path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestAcquireUsesRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", shortTempDir(t))

	gate, err := Acquire("oc-test")
	require.NoError(t, err)
	assert.True(t, gate.Primary())
	defer gate.Release()

	second, err := Acquire("oc-test")
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	require.NotNil(t, second)
	assert.False(t, second.Primary())
	assert.Equal(t, gate.Endpoint, second.Endpoint)
}

func TestRelayRoundTrip(t *testing.T) {
	endpoint := filepath.Join(shortTempDir(t), "relay.sock")

	var mu sync.Mutex
	var received [][]string
	srv := NewServer(endpoint, func(args []string) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, args)
		if len(args) > 0 && args[0] == "--fail" {
			return errors.New("toggle failed")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(endpoint)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, Send(endpoint, []string{"--toggle-overlay"}))
	err := Send(endpoint, []string{"--fail"})
	require.Error(t, err)
	assert.Equal(t, "toggle failed", err.Error())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][]string{{"--toggle-overlay"}, {"--fail"}}, received)
}

func TestSendWithoutServer(t *testing.T) {
	err := Send(filepath.Join(shortTempDir(t), "missing.sock"), []string{"--toggle-overlay"})
	assert.Error(t, err)
}

func TestRelayQueuesConnectionsBetweenListenAndServe(t *testing.T) {
	endpoint := filepath.Join(shortTempDir(t), "relay.sock")

	handled := make(chan []string, 1)
	srv := NewServer(endpoint, func(args []string) error {
		handled <- args
		return nil
	})
	require.NoError(t, srv.Listen())
	require.NoError(t, srv.Listen())

	sent := make(chan error, 1)
	go func() { sent <- Send(endpoint, []string{"--toggle-overlay"}) }()

	select {
	case err := <-sent:
		t.Fatalf("send finished before the server was serving: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	select {
	case err := <-sent:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("queued invocation was not answered")
	}
	assert.Equal(t, []string{"--toggle-overlay"}, <-handled)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
