package hotkey

import (
	"fmt"
	"strings"
	"sync"
)

// Action identifies a bindable capability.
type Action string

// ActionToggleOverlay shows or hides the overlay window.
const ActionToggleOverlay Action = "toggle_overlay_visibility"

// builtinBindings lists every supported action in declaration order together
// with its default accelerator.
var builtinBindings = []Binding{
	{Action: ActionToggleOverlay, Accelerator: "Ctrl+Shift+Space"},
}

// Actions returns the supported actions in declaration order.
func Actions() []Action {
	out := make([]Action, len(builtinBindings))
	for i, b := range builtinBindings {
		out[i] = b.Action
	}
	return out
}

func actionList() string {
	names := make([]string, 0, len(builtinBindings))
	for _, a := range Actions() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

// DefaultBindings returns the built-in defaults in declaration order.
func DefaultBindings() []Binding {
	return append([]Binding(nil), builtinBindings...)
}

// ParseAction validates an action identifier received from outside the process.
func ParseAction(name string) (Action, error) {
	for _, b := range builtinBindings {
		if string(b.Action) == name {
			return b.Action, nil
		}
	}
	return "", fmt.Errorf("%w: %q (known: %s)", ErrUnsupportedAction, name, actionList())
}

// Binding is the accelerator currently assigned to an action.
type Binding struct {
	Action      Action `json:"action"`
	Accelerator string `json:"accelerator"`
}

// Registry maps each action to its current accelerator. It is created once
// at startup, seeded with the defaults, and never persisted. Every access is
// serialized by one mutex that is never held across I/O.
type Registry struct {
	mu       sync.Mutex
	bindings map[Action]string
}

// NewRegistry creates a registry seeded with the built-in defaults.
func NewRegistry() *Registry {
	r := &Registry{bindings: make(map[Action]string, len(builtinBindings))}
	for _, b := range builtinBindings {
		r.bindings[b.Action] = b.Accelerator
	}
	return r
}

// List returns all bindings ordered by action declaration order.
func (r *Registry) List() []Binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Binding, 0, len(builtinBindings))
	for _, b := range builtinBindings {
		if accel, ok := r.bindings[b.Action]; ok {
			out = append(out, Binding{Action: b.Action, Accelerator: accel})
		}
	}
	return out
}

// Get returns the accelerator bound to action, or false for unknown actions.
func (r *Registry) Get(action Action) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	accel, ok := r.bindings[action]
	return accel, ok
}

// Set overwrites the accelerator for action. Callers must have verified that
// the accelerator is usable.
func (r *Registry) Set(action Action, accelerator string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[action] = accelerator
}
