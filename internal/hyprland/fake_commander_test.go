package hyprland

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type fakeResponse struct {
	out []byte
	err error
}

// fakeCommander answers hyprctl invocations from a table keyed by the
// space-joined argv and records every call.
type fakeCommander struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]fakeResponse
	onRun     func(args string)
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{responses: map[string]fakeResponse{}}
}

func (f *fakeCommander) set(args string, out string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[args] = fakeResponse{out: []byte(out), err: err}
}

func (f *fakeCommander) Run(ctx context.Context, args ...string) ([]byte, error) {
	key := strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	hook := f.onRun
	f.mu.Unlock()

	if hook != nil {
		hook(key)
	}

	f.mu.Lock()
	resp, ok := f.responses[key]
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		if strings.HasPrefix(key, "dispatch ") {
			return []byte("ok"), nil
		}
		return nil, errors.New("unexpected command: " + key)
	}
	return resp.out, resp.err
}

func (f *fakeCommander) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCommander) count(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}
