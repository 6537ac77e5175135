//go:build windows || darwin

package native

import (
	"fmt"
	"sync"

	xhotkey "golang.design/x/hotkey"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
)

// nativeKeys maps accelerator key codes to golang.design/x/hotkey keys.
// Keys outside this table parse fine but cannot be grabbed natively.
var nativeKeys = map[string]xhotkey.Key{
	"KeyA": xhotkey.KeyA, "KeyB": xhotkey.KeyB, "KeyC": xhotkey.KeyC, "KeyD": xhotkey.KeyD,
	"KeyE": xhotkey.KeyE, "KeyF": xhotkey.KeyF, "KeyG": xhotkey.KeyG, "KeyH": xhotkey.KeyH,
	"KeyI": xhotkey.KeyI, "KeyJ": xhotkey.KeyJ, "KeyK": xhotkey.KeyK, "KeyL": xhotkey.KeyL,
	"KeyM": xhotkey.KeyM, "KeyN": xhotkey.KeyN, "KeyO": xhotkey.KeyO, "KeyP": xhotkey.KeyP,
	"KeyQ": xhotkey.KeyQ, "KeyR": xhotkey.KeyR, "KeyS": xhotkey.KeyS, "KeyT": xhotkey.KeyT,
	"KeyU": xhotkey.KeyU, "KeyV": xhotkey.KeyV, "KeyW": xhotkey.KeyW, "KeyX": xhotkey.KeyX,
	"KeyY": xhotkey.KeyY, "KeyZ": xhotkey.KeyZ,

	"Digit0": xhotkey.Key0, "Digit1": xhotkey.Key1, "Digit2": xhotkey.Key2, "Digit3": xhotkey.Key3,
	"Digit4": xhotkey.Key4, "Digit5": xhotkey.Key5, "Digit6": xhotkey.Key6, "Digit7": xhotkey.Key7,
	"Digit8": xhotkey.Key8, "Digit9": xhotkey.Key9,

	"F1": xhotkey.KeyF1, "F2": xhotkey.KeyF2, "F3": xhotkey.KeyF3, "F4": xhotkey.KeyF4,
	"F5": xhotkey.KeyF5, "F6": xhotkey.KeyF6, "F7": xhotkey.KeyF7, "F8": xhotkey.KeyF8,
	"F9": xhotkey.KeyF9, "F10": xhotkey.KeyF10, "F11": xhotkey.KeyF11, "F12": xhotkey.KeyF12,

	"Space":      xhotkey.KeySpace,
	"Tab":        xhotkey.KeyTab,
	"Enter":      xhotkey.KeyReturn,
	"Escape":     xhotkey.KeyEscape,
	"Delete":     xhotkey.KeyDelete,
	"ArrowUp":    xhotkey.KeyUp,
	"ArrowDown":  xhotkey.KeyDown,
	"ArrowLeft":  xhotkey.KeyLeft,
	"ArrowRight": xhotkey.KeyRight,
}

// osGrabber registers through RegisterHotKey (Windows) or Carbon (macOS).
type osGrabber struct{}

func newGrabber() grabber { return osGrabber{} }

func (osGrabber) name() string { return "golang.design/x/hotkey" }

func (osGrabber) available() error { return nil }

func (osGrabber) grab(s hotkey.Shortcut, press func()) (func() error, error) {
	key, ok := nativeKeys[s.Key]
	if !ok {
		return nil, fmt.Errorf("key %s cannot be grabbed natively", s)
	}
	hk := xhotkey.New(nativeModifiers(s.Modifiers), key)
	if err := hk.Register(); err != nil {
		return nil, err
	}

	// Key-up events are drained so the library never blocks on them.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			case <-hk.Keyup():
			case <-hk.Keydown():
				press()
			}
		}
	}()

	return func() error {
		close(stop)
		err := hk.Unregister()
		wg.Wait()
		return err
	}, nil
}
