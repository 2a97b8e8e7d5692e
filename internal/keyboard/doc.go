// Package keyboard owns the live emulated-keyboard state: the active
// layer per half, the held modifier bitmask, and the held lock
// bitmask.
//
// Every mutation is serialized into primitive operations on the
// protocol client. Bitmask changes always re-forward the full state,
// even when the mask did not change; the protocol is stateless about
// deltas and resending is harmless.
package keyboard
