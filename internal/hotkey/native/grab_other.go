//go:build !linux && !windows && !darwin

package native

import (
	"fmt"
	"runtime"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
)

type unsupportedGrabber struct{}

func newGrabber() grabber { return unsupportedGrabber{} }

func (unsupportedGrabber) name() string { return "unsupported" }

func (unsupportedGrabber) available() error {
	return fmt.Errorf("native hotkeys are not supported on %s", runtime.GOOS)
}

func (g unsupportedGrabber) grab(hotkey.Shortcut, func()) (func() error, error) {
	return nil, g.available()
}
