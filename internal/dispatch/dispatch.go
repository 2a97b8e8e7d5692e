package dispatch

import (
	"log/slog"
	"math"

	"github.com/dshills/glidekbd/internal/gesture"
	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/layout"
	"github.com/dshills/glidekbd/internal/pointer"
)

// Config configures a Dispatcher.
type Config struct {
	// Gesture tunes the per-interaction recognizers.
	Gesture gesture.Config

	// BaseScale multiplies trackpad motion before the cube-root
	// distance gain. Default: 2.
	BaseScale float64

	// Logger receives dispatch traces and non-fatal errors.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Gesture:   gesture.DefaultConfig(),
		BaseScale: 2,
	}
}

// Dispatcher owns the dispatch targets and creates interactions.
type Dispatcher struct {
	keys   *keyboard.State
	ptr    *pointer.Pointer
	runner Runner
	notify Notifier

	gesture gesture.Config
	scale   float64
	log     *slog.Logger
}

// New creates a dispatcher over the given targets. A nil runner falls
// back to ExecRunner, a nil notifier to NopNotifier.
func New(keys *keyboard.State, ptr *pointer.Pointer, runner Runner, notify Notifier, config Config) *Dispatcher {
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}
	if runner == nil {
		runner = NewExecRunner(log)
	}
	if notify == nil {
		notify = NopNotifier{}
	}
	scale := config.BaseScale
	if scale <= 0 {
		scale = DefaultConfig().BaseScale
	}

	return &Dispatcher{
		keys:    keys,
		ptr:     ptr,
		runner:  runner,
		notify:  notify,
		gesture: config.Gesture,
		scale:   scale,
		log:     log,
	}
}

// Keys returns the keyboard state the dispatcher mutates.
func (d *Dispatcher) Keys() *keyboard.State {
	return d.keys
}

// Begin starts an interaction on a key. The returned Interaction must
// receive the rest of the touch: Move samples, then exactly one End.
func (d *Dispatcher) Begin(def layout.KeyDef) *Interaction {
	i := &Interaction{d: d, def: def}
	i.rec = gesture.New(d.gesture, i.handle)
	i.rec.Begin()
	return i
}

// press forwards a key-down; failures are logged, never propagated.
func (d *Dispatcher) press(code keycode.Code) {
	if err := d.keys.Press(code); err != nil {
		d.log.Error("key press failed", "code", code.String(), "error", err)
	}
}

// release forwards a key-up.
func (d *Dispatcher) release(code keycode.Code) {
	if err := d.keys.Release(code); err != nil {
		d.log.Error("key release failed", "code", code.String(), "error", err)
	}
}

// addModifier holds a modifier's companion code.
func (d *Dispatcher) addModifier(code keycode.Code) {
	if err := d.keys.AddModifier(code); err != nil {
		d.log.Error("modifier press failed", "code", code.String(), "error", err)
	}
}

// removeModifier releases a modifier's companion code.
func (d *Dispatcher) removeModifier(code keycode.Code) {
	if err := d.keys.RemoveModifier(code); err != nil {
		d.log.Error("modifier release failed", "code", code.String(), "error", err)
	}
}

// toggleModifier flips a modifier key's held state off the live mask.
func (d *Dispatcher) toggleModifier(code keycode.Code) {
	bit, ok := code.ModifierBit()
	if !ok {
		return
	}
	if d.keys.Modifiers()&bit != 0 {
		d.removeModifier(code)
	} else {
		d.addModifier(code)
	}
}

// addLock sets a lock's held state.
func (d *Dispatcher) addLock(code keycode.Code) {
	if err := d.keys.AddLock(code); err != nil {
		d.log.Error("lock press failed", "code", code.String(), "error", err)
	}
}

// removeLock clears a lock's held state.
func (d *Dispatcher) removeLock(code keycode.Code) {
	if err := d.keys.RemoveLock(code); err != nil {
		d.log.Error("lock release failed", "code", code.String(), "error", err)
	}
}

// toggleLock flips a lock key's held state off the live mask.
func (d *Dispatcher) toggleLock(code keycode.Code) {
	bit, ok := code.LockBit()
	if !ok {
		return
	}
	if d.keys.Locks()&bit != 0 {
		d.removeLock(code)
	} else {
		d.addLock(code)
	}
}

// tapKey fires press-and-release of one code.
func (d *Dispatcher) tapKey(code keycode.Code) {
	d.press(code)
	d.release(code)
}

// tapModKey fires a tap wrapped in one modifier.
func (d *Dispatcher) tapModKey(mod layout.Modifier, code keycode.Code) {
	d.addModifier(mod.Code())
	d.tapKey(code)
	d.removeModifier(mod.Code())
}

// tapModsKey fires a tap wrapped in a modifier set.
func (d *Dispatcher) tapModsKey(mods []layout.Modifier, code keycode.Code) {
	for _, mod := range mods {
		d.addModifier(mod.Code())
	}
	d.tapKey(code)
	for _, mod := range mods {
		d.removeModifier(mod.Code())
	}
}

// scroll fires one scroll step in a swipe direction.
func (d *Dispatcher) scroll(dir gesture.Direction) {
	var err error
	switch dir {
	case gesture.DirUp:
		err = d.ptr.ScrollUp()
	case gesture.DirDown:
		err = d.ptr.ScrollDown()
	case gesture.DirLeft:
		err = d.ptr.ScrollLeft()
	case gesture.DirRight:
		err = d.ptr.ScrollRight()
	}
	if err != nil {
		d.log.Error("scroll failed", "dir", dir.String(), "error", err)
	}
}

// run spawns a command key's process.
func (d *Dispatcher) run(cmd layout.Command) {
	if err := d.runner.Run(cmd.Cmd, cmd.Args); err != nil {
		d.log.Error("command failed", "cmd", cmd.Cmd, "error", err)
	}
}

// buttonPress holds a pointer button.
func (d *Dispatcher) buttonPress(b pointer.Button) {
	if err := d.ptr.Press(b); err != nil {
		d.log.Error("button press failed", "button", b.String(), "error", err)
	}
}

// buttonRelease releases a pointer button.
func (d *Dispatcher) buttonRelease(b pointer.Button) {
	if err := d.ptr.Release(b); err != nil {
		d.log.Error("button release failed", "button", b.String(), "error", err)
	}
}

// pointerMove forwards scaled trackpad motion. Each axis is scaled by
// the cube root of its cumulative offset, so small drags stay fine
// and long drags cover ground. The up-positive dy flips back to the
// pointer's down-positive convention here.
func (d *Dispatcher) pointerMove(ev gesture.Event) {
	dx := int32(math.Round(ev.DX * d.scale * math.Pow(math.Abs(ev.X), 1.0/3)))
	dy := int32(math.Round(ev.DY * d.scale * math.Pow(math.Abs(ev.Y), 1.0/3)))
	if err := d.ptr.Move(dx, -dy); err != nil {
		d.log.Error("pointer move failed", "error", err)
	}
}

// arrowCode maps a swipe direction to its arrow key.
func arrowCode(dir gesture.Direction) keycode.Code {
	switch dir {
	case gesture.DirUp:
		return keycode.Up
	case gesture.DirLeft:
		return keycode.Left
	case gesture.DirRight:
		return keycode.Right
	default:
		return keycode.Down
	}
}
