package layout

import "errors"

// Layout loading errors. All of them are fatal: a keyboard with a
// half-parsed layout would dispatch garbage.
var (
	// ErrEmptySide is returned when a side has no layers.
	ErrEmptySide = errors.New("layout: side has no layers")

	// ErrUnknownKeyName is returned for a key name outside the KEY_* table.
	ErrUnknownKeyName = errors.New("layout: unknown key name")

	// ErrUnknownModifier is returned for a modifier name outside Alt/Ctrl/Shift/Meta.
	ErrUnknownModifier = errors.New("layout: unknown modifier")

	// ErrUnknownSide is returned for a side name outside Left/Right.
	ErrUnknownSide = errors.New("layout: unknown side")

	// ErrUnknownAction is returned for an unrecognized swipe action.
	ErrUnknownAction = errors.New("layout: unknown swipe action")

	// ErrBadKeyDef is returned for a key entry that is neither a
	// known scalar shorthand nor a key/cmd mapping.
	ErrBadKeyDef = errors.New("layout: malformed key definition")

	// ErrLayerOutOfRange is returned when a layer action references a
	// layer index the target side does not have.
	ErrLayerOutOfRange = errors.New("layout: layer reference out of range")
)
