//go:build linux

package native

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/TanaroSch/overlay-core/internal/hotkey"
)

// relevantMods are the modifier bits compared against a key press.
const relevantMods = xproto.ModMaskShift | xproto.ModMaskControl | xproto.ModMask1 | xproto.ModMask4

// lockVariants are OR-ed onto every grab so NumLock (Mod2) and CapsLock do
// not swallow the shortcut. Only the first, bare variant is mandatory.
var lockVariants = []uint16{
	0,
	xproto.ModMask2,
	xproto.ModMaskLock,
	xproto.ModMask2 | xproto.ModMaskLock,
}

type grabKey struct {
	code xproto.Keycode
	mods uint16
}

// x11Grabber grabs keys on the root window of $DISPLAY. The connection is
// opened lazily and a failure is remembered, never panicked on.
type x11Grabber struct {
	mu       sync.Mutex
	conn     *xgb.Conn
	root     xproto.Window
	connErr  error
	handlers map[grabKey]func()
}

func newGrabber() grabber {
	return &x11Grabber{handlers: make(map[grabKey]func())}
}

func (g *x11Grabber) name() string { return "X11 XGrabKey" }

func (g *x11Grabber) available() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.connectLocked()
}

func (g *x11Grabber) connectLocked() error {
	if g.conn != nil {
		return nil
	}
	if g.connErr != nil {
		return g.connErr
	}
	conn, err := xgb.NewConn()
	if err != nil {
		g.connErr = fmt.Errorf("connect to X11 display: %w", err)
		return g.connErr
	}
	g.conn = conn
	g.root = xproto.Setup(conn).DefaultScreen(conn).Root
	go g.eventLoop(conn)
	return nil
}

func (g *x11Grabber) grab(s hotkey.Shortcut, press func()) (func() error, error) {
	sym, ok := keysymFor(s.Key)
	if !ok {
		return nil, fmt.Errorf("key %s cannot be grabbed natively", s)
	}
	mods := modMask(s.Modifiers)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.connectLocked(); err != nil {
		return nil, err
	}
	code, err := g.keycodeLocked(sym)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", s, err)
	}

	conn, root := g.conn, g.root
	var grabbed []uint16
	for i, extra := range lockVariants {
		m := mods | extra
		if err := xproto.GrabKeyChecked(conn, false, root, m, code, xproto.GrabModeAsync, xproto.GrabModeAsync).Check(); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("XGrabKey %s: %w", s, err)
			}
			slog.Debug("Native backend: lock-modifier variant not grabbed", "shortcut", s.String(), "mask", m, "error", err)
			continue
		}
		grabbed = append(grabbed, m)
	}

	key := grabKey{code: code, mods: mods}
	g.handlers[key] = press

	return func() error {
		g.mu.Lock()
		delete(g.handlers, key)
		g.mu.Unlock()

		var errs []error
		for _, m := range grabbed {
			if err := xproto.UngrabKeyChecked(conn, code, root, m).Check(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}, nil
}

func (g *x11Grabber) keycodeLocked(sym xproto.Keysym) (xproto.Keycode, error) {
	setup := xproto.Setup(g.conn)
	first, last := setup.MinKeycode, setup.MaxKeycode
	reply, err := xproto.GetKeyboardMapping(g.conn, first, byte(last-first+1)).Reply()
	if err != nil {
		return 0, fmt.Errorf("get keyboard mapping: %w", err)
	}
	return findKeycode(reply.Keysyms, int(reply.KeysymsPerKeycode), first, sym)
}

// eventLoop delivers one press per physical key press. X11 auto-repeat
// shows up as a release immediately followed by a press with the same
// timestamp; such pairs are dropped.
func (g *x11Grabber) eventLoop(conn *xgb.Conn) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic in X11 event loop", "panic", r)
		}
	}()

	down := make(map[xproto.Keycode]bool)
	var pending xgb.Event
	for {
		ev := pending
		pending = nil
		if ev == nil {
			var xerr xgb.Error
			ev, xerr = conn.WaitForEvent()
			if xerr != nil {
				slog.Debug("Native backend: X11 error", "error", xerr)
				continue
			}
			if ev == nil {
				return
			}
		}

		switch e := ev.(type) {
		case xproto.KeyPressEvent:
			if down[e.Detail] {
				continue
			}
			down[e.Detail] = true
			g.dispatch(grabKey{code: e.Detail, mods: e.State & relevantMods})
		case xproto.KeyReleaseEvent:
			next, _ := conn.PollForEvent()
			if kp, ok := next.(xproto.KeyPressEvent); ok && kp.Detail == e.Detail && kp.Time == e.Time {
				continue
			}
			down[e.Detail] = false
			pending = next
		}
	}
}

func (g *x11Grabber) dispatch(key grabKey) {
	g.mu.Lock()
	handler := g.handlers[key]
	g.mu.Unlock()
	if handler != nil {
		handler()
	}
}

// modMask maps accelerator modifiers to X11 masks. Alt is Mod1 and Super
// is Mod4 on virtually every keymap.
func modMask(m hotkey.Modifier) uint16 {
	var mask uint16
	if m.Has(hotkey.ModCtrl) {
		mask |= xproto.ModMaskControl
	}
	if m.Has(hotkey.ModAlt) {
		mask |= xproto.ModMask1
	}
	if m.Has(hotkey.ModShift) {
		mask |= xproto.ModMaskShift
	}
	if m.Has(hotkey.ModSuper) {
		mask |= xproto.ModMask4
	}
	return mask
}

// findKeycode returns the first keycode whose mapping row contains sym.
func findKeycode(keysyms []xproto.Keysym, perKeycode int, first xproto.Keycode, sym xproto.Keysym) (xproto.Keycode, error) {
	if perKeycode <= 0 {
		return 0, errors.New("keyboard mapping is empty")
	}
	for i, ks := range keysyms {
		if ks == sym {
			return first + xproto.Keycode(i/perKeycode), nil
		}
	}
	return 0, fmt.Errorf("keysym %#x is not on the current keyboard", uint32(sym))
}
