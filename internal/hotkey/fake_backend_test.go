package hotkey

import (
	"errors"
	"sync"
)

type fakeHotkey struct {
	ch   chan struct{}
	once sync.Once
}

func (h *fakeHotkey) Keydown() <-chan struct{} { return h.ch }

func (h *fakeHotkey) Close() error {
	h.once.Do(func() { close(h.ch) })
	return nil
}

// fakeBackend records every call and fails on demand.
type fakeBackend struct {
	mu          sync.Mutex
	calls       []string
	active      map[string]*fakeHotkey
	failFor     map[string]error
	unregErr    error
	failAllRegs bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{active: map[string]*fakeHotkey{}, failFor: map[string]error{}}
}

func (b *fakeBackend) Register(accelerator string) (RegisteredHotkey, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "register "+accelerator)
	if b.failAllRegs {
		return nil, errors.New("grab refused")
	}
	if err, ok := b.failFor[accelerator]; ok {
		return nil, err
	}
	hk := &fakeHotkey{ch: make(chan struct{})}
	b.active[accelerator] = hk
	return hk, nil
}

func (b *fakeBackend) Unregister(accelerator string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "unregister "+accelerator)
	if b.unregErr != nil {
		return b.unregErr
	}
	if hk, ok := b.active[accelerator]; ok {
		_ = hk.Close()
		delete(b.active, accelerator)
	}
	return nil
}

func (b *fakeBackend) UnregisterAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "unregister-all")
	for k, hk := range b.active {
		_ = hk.Close()
		delete(b.active, k)
	}
	return nil
}

func (b *fakeBackend) Name() string      { return "fake" }
func (b *fakeBackend) IsAvailable() bool { return true }

func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) press(accelerator string) {
	b.mu.Lock()
	hk := b.active[accelerator]
	b.mu.Unlock()
	hk.ch <- struct{}{}
}

func (b *fakeBackend) isActive(accelerator string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.active[accelerator]
	return ok
}
