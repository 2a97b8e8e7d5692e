package layout

import (
	"fmt"
	"strings"

	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/pointer"
)

// Side selects one keyboard half.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", s)
	}
}

// ParseSide resolves a side name, case-insensitively.
func ParseSide(name string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return SideLeft, true
	case "right":
		return SideRight, true
	default:
		return 0, false
	}
}

// Modifier is a named modifier a key can co-press or an action can
// apply. Each maps to a fixed companion scan code; the protocol-level
// modifier bitmask is derived from that code, not from this enum.
type Modifier uint8

const (
	ModAlt Modifier = iota
	ModCtrl
	ModShift
	ModMeta
)

// String returns the modifier's layout-file spelling.
func (m Modifier) String() string {
	switch m {
	case ModAlt:
		return "Alt"
	case ModCtrl:
		return "Ctrl"
	case ModShift:
		return "Shift"
	case ModMeta:
		return "Meta"
	default:
		return fmt.Sprintf("modifier(%d)", m)
	}
}

// Code returns the companion scan code emitted for this modifier.
func (m Modifier) Code() keycode.Code {
	switch m {
	case ModAlt:
		return keycode.LeftAlt
	case ModCtrl:
		return keycode.LeftCtrl
	case ModShift:
		return keycode.LeftShift
	case ModMeta:
		return keycode.LeftMeta
	default:
		return keycode.Reserved
	}
}

// ParseModifier resolves a modifier name, case-insensitively.
func ParseModifier(name string) (Modifier, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alt":
		return ModAlt, true
	case "ctrl":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "meta":
		return ModMeta, true
	default:
		return 0, false
	}
}

// Layout is the full two-half keyboard description. Loaded once at
// startup and read-only afterwards; the engine only ever navigates it.
type Layout struct {
	Left  []Layer `yaml:"left"`
	Right []Layer `yaml:"right"`
}

// Layers returns the given side's layers.
func (l *Layout) Layers(side Side) []Layer {
	if side == SideLeft {
		return l.Left
	}
	return l.Right
}

// MouseLayer returns the index of the built-in mouse layer, appended
// as the last left layer at load time.
func (l *Layout) MouseLayer() int {
	return len(l.Left) - 1
}

// Layer is one switchable arrangement of a keyboard half: ordered
// rows of key definitions, top to bottom and left to right.
type Layer struct {
	Rows [][]KeyDef
}

// KeyDef is one key in a layer row. The union is closed: BasicKey,
// CommandKey, PointerButtonKey, and PointerKey are the only variants,
// and dispatch switches over them exhaustively.
type KeyDef interface {
	// Glyph returns the string drawn on the key face.
	Glyph() string

	// Width returns the key's display width in key units.
	Width() float64

	keyDef()
}

// Command describes an external process a key or action can spawn.
type Command struct {
	Cmd   string   `yaml:"cmd"`
	Args  []string `yaml:"args"`
	Label string   `yaml:"label"`
}

// BasicKey emulates a physical key, with optional directional swipe
// actions and co-pressed modifiers.
type BasicKey struct {
	// Key is the emitted scan code.
	Key keycode.Code

	// Mods are co-pressed around every tap of this key.
	Mods []Modifier

	// Directional swipe actions; nil means the direction does nothing.
	North, East, West, South SwipeAction

	// Span is the display width in key units; 0 means 1.
	Span int

	// Label overrides the default glyph.
	Label string
}

// Glyph returns the label, or the scan code's default glyph.
func (k *BasicKey) Glyph() string {
	if k.Label != "" {
		return k.Label
	}
	return k.Key.Glyph()
}

// Width returns the display width in key units.
func (k *BasicKey) Width() float64 {
	if k.Span < 1 {
		return 1
	}
	return float64(k.Span)
}

func (*BasicKey) keyDef() {}

// CommandKey spawns an external process when released.
type CommandKey struct {
	Command
}

// Glyph returns the command's label.
func (k *CommandKey) Glyph() string { return k.Label }

// Width returns the display width in key units.
func (*CommandKey) Width() float64 { return 1 }

func (*CommandKey) keyDef() {}

// PointerButtonKey holds a pointer button while the key is held.
type PointerButtonKey struct {
	Button pointer.Button
}

// Glyph returns the button's glyph.
func (k PointerButtonKey) Glyph() string { return k.Button.Glyph() }

// Width returns the display width in key units.
func (PointerButtonKey) Width() float64 { return 1 }

func (PointerButtonKey) keyDef() {}

// PointerKey is the virtual trackpad: it streams relative motion and
// raises the mouse layer while held.
type PointerKey struct{}

// Glyph returns the trackpad glyph.
func (PointerKey) Glyph() string { return "✱" }

// Width returns the display width in key units.
func (PointerKey) Width() float64 { return 1 }

func (PointerKey) keyDef() {}

// SwipeAction is what a directional swipe on a BasicKey does. The
// union is closed; dispatch switches over it exhaustively.
//
// Actions differ in which phases they act on: most fire once on the
// initial swipe, Layer holds until release, and Arrow/Scroll/Select/
// Delete re-fire on every swipe increment.
type SwipeAction interface {
	swipeAction()
}

// KeyAction taps another key.
type KeyAction struct {
	Key keycode.Code
}

// ModKeyAction taps another key wrapped in modifiers.
type ModKeyAction struct {
	Key  keycode.Code
	Mods []Modifier
}

// ModifiedAction taps the origin key wrapped in a modifier.
type ModifiedAction struct {
	Mod Modifier
}

// LayerAction switches a side's layer while the swipe is held and
// returns it to the default layer on release.
type LayerAction struct {
	Side  Side
	Index int
}

// ArrowAction taps the arrow key matching the swipe direction, once
// per increment.
type ArrowAction struct{}

// ScrollAction scrolls one step in the swipe direction, once per
// increment.
type ScrollAction struct{}

// SelectAction extends a selection: shift-wrapped arrow in the swipe
// direction, once per increment.
type SelectAction struct{}

// DeleteAction selects in the swipe direction and sends Backspace on
// release.
type DeleteAction struct{}

// CommandAction spawns an external process.
type CommandAction struct {
	Command
}

// HideAction hides the keyboard. It acts on release: hiding earlier
// would tear the UI down under an unfinished interaction.
type HideAction struct{}

func (KeyAction) swipeAction()      {}
func (ModKeyAction) swipeAction()   {}
func (ModifiedAction) swipeAction() {}
func (LayerAction) swipeAction()    {}
func (ArrowAction) swipeAction()    {}
func (ScrollAction) swipeAction()   {}
func (SelectAction) swipeAction()   {}
func (DeleteAction) swipeAction()   {}
func (CommandAction) swipeAction()  {}
func (HideAction) swipeAction()     {}
