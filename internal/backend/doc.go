// Package backend opens the virtual input devices the engine writes
// to.
//
// Three backends exist: wayland speaks the zwp_virtual_keyboard_v1 and
// zwlr_virtual_pointer_v1 protocols and is the normal choice on a
// wlroots compositor; uinput creates kernel devices and works anywhere
// with /dev/uinput access; log emits every operation to the logger and
// drives nothing, for replay runs and debugging.
//
// The wayland protocol carries modifier state as bitmasks, so its
// keyboard forwards SetModifiers verbatim. The kernel knows nothing of
// masks; the uinput keyboard diffs each SetModifiers call against the
// last one and presses or releases exactly the companion keys whose
// bits changed.
package backend
