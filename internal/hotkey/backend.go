package hotkey

// Backend abstracts the OS-level global shortcut subsystem so that X11,
// Windows and Wayland compositors can be supported behind one interface.
type Backend interface {
	// Register registers a single hotkey with the given accelerator.
	// Returns a RegisteredHotkey handle and any error encountered.
	Register(accelerator string) (RegisteredHotkey, error)

	// Unregister removes a previously registered hotkey. Unknown accelerators
	// are not an error.
	Unregister(accelerator string) error

	// UnregisterAll removes all hotkeys registered by this backend.
	UnregisterAll() error

	// Name returns a human-readable name for this backend (for logging).
	Name() string

	// IsAvailable returns true if this backend can be used on the current system.
	IsAvailable() bool
}

// RegisteredHotkey represents a registered hotkey and provides a channel
// that receives one event per key press. Releases and repeats are not delivered.
type RegisteredHotkey interface {
	// Keydown returns a channel that receives events when the key is pressed.
	// The channel is closed once the hotkey is unregistered.
	Keydown() <-chan struct{}

	// Close cleans up resources associated with this hotkey.
	Close() error
}
