package hotkey

import "errors"

var (
	// ErrEmptyAccelerator is returned when the accelerator is blank after trimming.
	ErrEmptyAccelerator = errors.New("hotkey cannot be empty")
	// ErrInvalidAccelerator is returned when an accelerator cannot be parsed.
	ErrInvalidAccelerator = errors.New("invalid accelerator")
	// ErrUnsupportedAction is returned for actions that have no binding.
	ErrUnsupportedAction = errors.New("unsupported hotkey action")
	// ErrRegistrationFailed is returned when the shortcut backend refuses a bind or unbind.
	ErrRegistrationFailed = errors.New("shortcut registration failed")
	// ErrBackendNotAvailable is returned when a backend cannot be used on the current system.
	ErrBackendNotAvailable = errors.New("backend not available on this system")
)
