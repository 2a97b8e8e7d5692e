// Package keycode defines raw kernel scan codes and the fixed tables
// derived from them.
//
// This package is the vocabulary the rest of the engine speaks:
//
//   - Code: a kernel input scan code (KEY_A = 30, KEY_ENTER = 28, ...)
//   - Class: whether a tap of the key toggles state (modifier, lock)
//     or fires press+release (normal)
//   - protocol bit tables: the modifier and lock bitmask bits forwarded
//     to the virtual-keyboard endpoint
//   - default glyphs: the US-layout character shown for a key when the
//     layout does not override its label
//
// Layout files reference keys by their kernel KEY_* names; FromName
// resolves those at load time.
package keycode
