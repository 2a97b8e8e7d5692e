package dispatch

import (
	"github.com/dshills/glidekbd/internal/gesture"
	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/layout"
)

// Interaction is one touch on one key: a fresh recognizer plus the key
// definition under the finger. Move and End drive it; the recognizer
// delivers classified events back into handle under its lock, so an
// interaction's dispatch is serialized with its hold timer.
type Interaction struct {
	d   *Dispatcher
	def layout.KeyDef
	rec *gesture.Recognizer

	// dir is the last swiped direction that resolved to a configured
	// action; it selects the release effect. hasDir distinguishes it
	// from the tap release path.
	dir    gesture.Direction
	hasDir bool
}

// Move feeds one touch sample: the cumulative offset from the touch
// origin, in screen coordinates.
func (i *Interaction) Move(x, y float64) {
	i.rec.Move(x, y)
}

// End finishes the touch. Exactly one release path runs: the recorded
// direction's release effect, or the plain tap release.
func (i *Interaction) End() {
	i.rec.End()
}

// handle routes one classified event by the key under the finger.
func (i *Interaction) handle(ev gesture.Event) {
	switch def := i.def.(type) {
	case *layout.BasicKey:
		i.handleBasic(def, ev)
	case *layout.CommandKey:
		i.handleCommand(def, ev)
	case layout.PointerButtonKey:
		i.handleButton(def, ev)
	case layout.PointerKey:
		i.handleTrackpad(ev)
	}
}

// handleBasic dispatches a basic key. Taps split by key class; swipes
// dispatch the configured action for the resolved direction, recording
// it for the release effect. A direction with no configured action is
// a silent no-op and records nothing.
func (i *Interaction) handleBasic(def *layout.BasicKey, ev gesture.Event) {
	switch ev.Kind {
	case gesture.KindTapPressed:
		i.tapPress(def)

	case gesture.KindSwipePressed:
		if action := actionFor(def, ev.Dir); action != nil {
			i.dir, i.hasDir = ev.Dir, true
			i.pressAction(def, action, ev.Dir)
		}

	case gesture.KindSwipeRepeated:
		if action := actionFor(def, ev.Dir); action != nil {
			i.dir, i.hasDir = ev.Dir, true
			i.repeatAction(def, action, ev.Dir)
		}

	case gesture.KindReleased:
		if i.hasDir {
			i.releaseAction(actionFor(def, i.dir))
		} else {
			i.tapRelease(def)
		}
	}
}

// tapPress is the TapPressed effect: normal keys go down with their
// co-mods, modifier and lock keys toggle their held state.
func (i *Interaction) tapPress(def *layout.BasicKey) {
	switch def.Key.Class() {
	case keycode.ClassModifier:
		i.d.toggleModifier(def.Key)
	case keycode.ClassLock:
		i.d.toggleLock(def.Key)
	default:
		for _, mod := range def.Mods {
			i.d.addModifier(mod.Code())
		}
		i.d.press(def.Key)
	}
}

// tapRelease is the plain release effect for normal keys. Modifier and
// lock keys finished their toggle at press time.
func (i *Interaction) tapRelease(def *layout.BasicKey) {
	if def.Key.Class() != keycode.ClassNormal {
		return
	}
	i.d.release(def.Key)
	for _, mod := range def.Mods {
		i.d.removeModifier(mod.Code())
	}
}

// pressAction fires a swipe action's press effect.
func (i *Interaction) pressAction(def *layout.BasicKey, action layout.SwipeAction, dir gesture.Direction) {
	switch a := action.(type) {
	case layout.KeyAction:
		i.d.tapKey(a.Key)
	case layout.ModKeyAction:
		i.d.tapModsKey(a.Mods, a.Key)
	case layout.ModifiedAction:
		i.d.tapModKey(a.Mod, def.Key)
	case layout.LayerAction:
		i.d.keys.SwitchLayer(a.Side, a.Index)
		i.d.notify.LayoutChanged()
	case layout.ArrowAction:
		i.d.tapKey(arrowCode(dir))
	case layout.SelectAction:
		i.d.tapModKey(layout.ModShift, arrowCode(dir))
	case layout.DeleteAction:
		// Select while swiping; the cut lands on release.
		i.d.tapModKey(layout.ModShift, arrowCode(dir))
	case layout.ScrollAction:
		i.d.scroll(dir)
	case layout.CommandAction:
		i.d.run(a.Command)
	case layout.HideAction:
		// Acts on release only.
	}
}

// repeatAction fires a swipe action's repeat effect: the directional
// actions re-fire their press effect for the increment's direction,
// everything else ignores repeats.
func (i *Interaction) repeatAction(def *layout.BasicKey, action layout.SwipeAction, dir gesture.Direction) {
	switch action.(type) {
	case layout.ArrowAction, layout.SelectAction, layout.DeleteAction, layout.ScrollAction:
		i.pressAction(def, action, dir)
	}
}

// releaseAction fires the recorded direction's release effect.
func (i *Interaction) releaseAction(action layout.SwipeAction) {
	switch a := action.(type) {
	case layout.LayerAction:
		i.d.keys.SwitchLayer(a.Side, 0)
		i.d.notify.LayoutChanged()
	case layout.DeleteAction:
		i.d.tapKey(keycode.Backspace)
	case layout.HideAction:
		i.d.notify.HideKeyboard()
	}
}

// handleCommand dispatches a command key: spawn once, on release.
func (i *Interaction) handleCommand(def *layout.CommandKey, ev gesture.Event) {
	if ev.Kind == gesture.KindReleased {
		i.d.run(def.Command)
	}
}

// handleButton dispatches a pointer-button key: the button is held for
// exactly the life of the touch.
func (i *Interaction) handleButton(def layout.PointerButtonKey, ev gesture.Event) {
	switch ev.Kind {
	case gesture.KindTapPressed:
		i.d.buttonPress(def.Button)
	case gesture.KindReleased:
		i.d.buttonRelease(def.Button)
	}
}

// handleTrackpad dispatches the trackpad key: every sample forwards
// scaled motion and raises the mouse layer; release lowers it.
func (i *Interaction) handleTrackpad(ev gesture.Event) {
	switch ev.Kind {
	case gesture.KindFreeMove:
		i.d.pointerMove(ev)
		i.d.keys.EnterMouseLayer()
		i.d.notify.LayoutChanged()
	case gesture.KindReleased:
		i.d.keys.LeaveMouseLayer()
		i.d.notify.LayoutChanged()
	}
}

// actionFor returns the key's configured action for a direction, or
// nil.
func actionFor(def *layout.BasicKey, dir gesture.Direction) layout.SwipeAction {
	switch dir {
	case gesture.DirUp:
		return def.North
	case gesture.DirRight:
		return def.East
	case gesture.DirLeft:
		return def.West
	case gesture.DirDown:
		return def.South
	default:
		return nil
	}
}
