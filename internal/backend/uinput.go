package backend

import (
	"fmt"
	"sync"

	"github.com/bendahl/uinput"

	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/pointer"
)

// uinputKeyboard is the slice of uinput.Keyboard this backend uses.
type uinputKeyboard interface {
	KeyDown(key int) error
	KeyUp(key int) error
	KeyPress(key int) error
	Close() error
}

// uinputMouse is the slice of uinput.Mouse this backend uses.
type uinputMouse interface {
	Move(x, y int32) error
	Wheel(horizontal bool, delta int32) error
	LeftPress() error
	LeftRelease() error
	RightPress() error
	RightRelease() error
	MiddlePress() error
	MiddleRelease() error
	Close() error
}

// Companion keys per modifier bit, in fixed diff order.
var modifierCompanions = []struct {
	bit  uint32
	code keycode.Code
}{
	{keycode.BitShift, keycode.LeftShift},
	{keycode.BitCtrl, keycode.LeftCtrl},
	{keycode.BitAlt, keycode.LeftAlt},
	{keycode.BitMeta, keycode.LeftMeta},
}

// Companion keys per lock bit, in fixed diff order.
var lockCompanions = []struct {
	bit  uint32
	code keycode.Code
}{
	{keycode.BitCapsLock, keycode.CapsLock},
	{keycode.BitNumLock, keycode.NumLock},
	{keycode.BitScrollLock, keycode.ScrollLock},
}

// UinputKeyboard drives a kernel uinput keyboard. The kernel has no
// notion of modifier masks, so SetModifiers is synthesized: each call
// is diffed against the previous one and only the companion keys whose
// bits changed are touched — modifiers by press or release, locks by a
// state-flipping tap.
type UinputKeyboard struct {
	mu     sync.Mutex
	device uinputKeyboard

	modifiers uint32
	locks     uint32
}

// NewUinputKeyboard creates the kernel device at dev.
func NewUinputKeyboard(dev string) (*UinputKeyboard, error) {
	device, err := uinput.CreateKeyboard(dev, []byte("glidekbd"))
	if err != nil {
		return nil, fmt.Errorf("creating uinput keyboard: %w", err)
	}
	return &UinputKeyboard{device: device}, nil
}

// Press sends a key-down.
func (k *UinputKeyboard) Press(code keycode.Code) error {
	return k.device.KeyDown(int(code))
}

// Release sends a key-up.
func (k *UinputKeyboard) Release(code keycode.Code) error {
	return k.device.KeyUp(int(code))
}

// SetModifiers synthesizes the state change from companion key events.
func (k *UinputKeyboard) SetModifiers(depressed, _, locked, _ uint32) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, m := range modifierCompanions {
		was := k.modifiers&m.bit != 0
		now := depressed&m.bit != 0
		switch {
		case now && !was:
			if err := k.device.KeyDown(int(m.code)); err != nil {
				return err
			}
		case was && !now:
			if err := k.device.KeyUp(int(m.code)); err != nil {
				return err
			}
		}
	}

	for _, l := range lockCompanions {
		if k.locks&l.bit != locked&l.bit {
			if err := k.device.KeyPress(int(l.code)); err != nil {
				return err
			}
		}
	}

	k.modifiers = depressed
	k.locks = locked
	return nil
}

// Close destroys the kernel device.
func (k *UinputKeyboard) Close() error {
	return k.device.Close()
}

// UinputPointer drives a kernel uinput mouse.
type UinputPointer struct {
	device uinputMouse
}

// NewUinputPointer creates the kernel device at dev.
func NewUinputPointer(dev string) (*UinputPointer, error) {
	device, err := uinput.CreateMouse(dev, []byte("glidekbd"))
	if err != nil {
		return nil, fmt.Errorf("creating uinput mouse: %w", err)
	}
	return &UinputPointer{device: device}, nil
}

// Move sends relative motion.
func (p *UinputPointer) Move(dx, dy int32) error {
	return p.device.Move(dx, dy)
}

// ScrollX scrolls horizontally. REL_HWHEEL is right-positive, matching
// the engine convention.
func (p *UinputPointer) ScrollX(amount int32) error {
	return p.device.Wheel(true, notches(amount))
}

// ScrollY scrolls vertically. REL_WHEEL is up-positive, so the
// down-positive engine amount flips sign.
func (p *UinputPointer) ScrollY(amount int32) error {
	return p.device.Wheel(false, -notches(amount))
}

// Press sends a button-down.
func (p *UinputPointer) Press(b pointer.Button) error {
	switch b {
	case pointer.ButtonMiddle:
		return p.device.MiddlePress()
	case pointer.ButtonRight:
		return p.device.RightPress()
	default:
		return p.device.LeftPress()
	}
}

// Release sends a button-up.
func (p *UinputPointer) Release(b pointer.Button) error {
	switch b {
	case pointer.ButtonMiddle:
		return p.device.MiddleRelease()
	case pointer.ButtonRight:
		return p.device.RightRelease()
	default:
		return p.device.LeftRelease()
	}
}

// Close destroys the kernel device.
func (p *UinputPointer) Close() error {
	return p.device.Close()
}

// notches converts a pixel-sized scroll amount to wheel detents, at
// least one in the amount's direction.
func notches(amount int32) int32 {
	n := amount / pointer.DefaultScrollStep
	if n != 0 {
		return n
	}
	switch {
	case amount > 0:
		return 1
	case amount < 0:
		return -1
	default:
		return 0
	}
}

var (
	_ keyboard.Client = (*UinputKeyboard)(nil)
	_ pointer.Client  = (*UinputPointer)(nil)
)
