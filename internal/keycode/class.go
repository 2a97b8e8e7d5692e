package keycode

// Class splits keys by how a tap behaves: Normal keys fire
// press+release, Modifier and Lock keys toggle a held state.
type Class int

const (
	ClassNormal Class = iota
	ClassModifier
	ClassLock
)

// String returns a human-readable class name.
func (c Class) String() string {
	switch c {
	case ClassNormal:
		return "normal"
	case ClassModifier:
		return "modifier"
	case ClassLock:
		return "lock"
	default:
		return "unknown"
	}
}

// Protocol-level modifier bits, resent in full on every change.
// Shift/Control/Alt carry the XKB real-modifier bits; Meta is Mod4.
const (
	BitShift uint32 = 1
	BitCtrl  uint32 = 4
	BitAlt   uint32 = 8
	BitMeta  uint32 = 64
)

// Protocol-level lock bits.
const (
	BitCapsLock   uint32 = 2
	BitNumLock    uint32 = 256
	BitScrollLock uint32 = 32768
)

// modifierBits maps modifier scan codes to their protocol bit.
var modifierBits = map[Code]uint32{
	LeftCtrl:   BitCtrl,
	RightCtrl:  BitCtrl,
	LeftMeta:   BitMeta,
	RightMeta:  BitMeta,
	LeftShift:  BitShift,
	RightShift: BitShift,
	LeftAlt:    BitAlt,
	RightAlt:   BitAlt,
}

// lockBits maps lock scan codes to their protocol bit.
var lockBits = map[Code]uint32{
	CapsLock:   BitCapsLock,
	NumLock:    BitNumLock,
	ScrollLock: BitScrollLock,
}

// Class classifies the code by the fixed membership tables.
func (c Code) Class() Class {
	switch {
	case c.IsModifier():
		return ClassModifier
	case c.IsLock():
		return ClassLock
	default:
		return ClassNormal
	}
}

// IsModifier reports whether the code is one of the eight modifier keys.
func (c Code) IsModifier() bool {
	_, ok := modifierBits[c]
	return ok
}

// IsLock reports whether the code is one of the three lock keys.
func (c Code) IsLock() bool {
	_, ok := lockBits[c]
	return ok
}

// ModifierBit returns the protocol modifier bit for a modifier scan code.
func (c Code) ModifierBit() (uint32, bool) {
	b, ok := modifierBits[c]
	return b, ok
}

// LockBit returns the protocol lock bit for a lock scan code.
func (c Code) LockBit() (uint32, bool) {
	b, ok := lockBits[c]
	return b, ok
}
