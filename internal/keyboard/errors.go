package keyboard

import "errors"

var (
	// ErrNotModifier is returned when a modifier operation gets a
	// scan code outside the modifier table. Layout validation makes
	// this unreachable from file data; hitting it is a defect.
	ErrNotModifier = errors.New("keyboard: code is not a modifier")

	// ErrNotLock is the lock-table counterpart of ErrNotModifier.
	ErrNotLock = errors.New("keyboard: code is not a lock")
)
