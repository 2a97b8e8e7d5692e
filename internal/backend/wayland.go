package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/wayland-virtual-input-go/virtual_keyboard"
	"github.com/bnema/wayland-virtual-input-go/virtual_pointer"

	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/pointer"
)

// WaylandKeyboard drives a zwp_virtual_keyboard_v1 device. The
// protocol carries modifier state natively, so masks forward verbatim.
type WaylandKeyboard struct {
	manager *virtual_keyboard.VirtualKeyboardManager
	device  *virtual_keyboard.VirtualKeyboard
}

// NewWaylandKeyboard connects to the compositor and creates the
// virtual keyboard.
func NewWaylandKeyboard(ctx context.Context) (*WaylandKeyboard, error) {
	manager, err := virtual_keyboard.NewVirtualKeyboardManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting virtual keyboard manager: %w", err)
	}

	device, err := manager.CreateKeyboard()
	if err != nil {
		manager.Close()
		return nil, fmt.Errorf("creating virtual keyboard: %w", err)
	}

	return &WaylandKeyboard{manager: manager, device: device}, nil
}

// Press sends a key-down.
func (k *WaylandKeyboard) Press(code keycode.Code) error {
	return k.device.Key(time.Now(), uint32(code), virtual_keyboard.KeyStatePressed)
}

// Release sends a key-up.
func (k *WaylandKeyboard) Release(code keycode.Code) error {
	return k.device.Key(time.Now(), uint32(code), virtual_keyboard.KeyStateReleased)
}

// SetModifiers forwards the full modifier state.
func (k *WaylandKeyboard) SetModifiers(depressed, latched, locked, group uint32) error {
	return k.device.Modifiers(depressed, latched, locked, group)
}

// Close destroys the device and disconnects.
func (k *WaylandKeyboard) Close() error {
	err := k.device.Close()
	if merr := k.manager.Close(); err == nil {
		err = merr
	}
	return err
}

// WaylandPointer drives a zwlr_virtual_pointer_v1 device.
type WaylandPointer struct {
	manager *virtual_pointer.VirtualPointerManager
	device  *virtual_pointer.VirtualPointer
}

// NewWaylandPointer connects to the compositor and creates the virtual
// pointer.
func NewWaylandPointer(ctx context.Context) (*WaylandPointer, error) {
	manager, err := virtual_pointer.NewVirtualPointerManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting virtual pointer manager: %w", err)
	}

	device, err := manager.CreatePointer()
	if err != nil {
		manager.Close()
		return nil, fmt.Errorf("creating virtual pointer: %w", err)
	}

	return &WaylandPointer{manager: manager, device: device}, nil
}

// Move sends relative motion.
func (p *WaylandPointer) Move(dx, dy int32) error {
	if err := p.device.Motion(time.Now(), float64(dx), float64(dy)); err != nil {
		return err
	}
	return p.device.Frame()
}

// ScrollX scrolls horizontally, right-positive.
func (p *WaylandPointer) ScrollX(amount int32) error {
	return p.scroll(virtual_pointer.AxisHorizontal, amount)
}

// ScrollY scrolls vertically, down-positive.
func (p *WaylandPointer) ScrollY(amount int32) error {
	return p.scroll(virtual_pointer.AxisVertical, amount)
}

func (p *WaylandPointer) scroll(axis virtual_pointer.Axis, amount int32) error {
	if err := p.device.AxisSource(virtual_pointer.AxisSourceWheel); err != nil {
		return err
	}
	if err := p.device.Axis(time.Now(), axis, float64(amount)); err != nil {
		return err
	}
	return p.device.Frame()
}

// Press sends a button-down.
func (p *WaylandPointer) Press(b pointer.Button) error {
	if err := p.device.Button(time.Now(), buttonCode(b), virtual_pointer.ButtonStatePressed); err != nil {
		return err
	}
	return p.device.Frame()
}

// Release sends a button-up.
func (p *WaylandPointer) Release(b pointer.Button) error {
	if err := p.device.Button(time.Now(), buttonCode(b), virtual_pointer.ButtonStateReleased); err != nil {
		return err
	}
	return p.device.Frame()
}

// Close destroys the device and disconnects.
func (p *WaylandPointer) Close() error {
	err := p.device.Close()
	if merr := p.manager.Close(); err == nil {
		err = merr
	}
	return err
}

// buttonCode maps a button to its kernel code.
func buttonCode(b pointer.Button) uint32 {
	switch b {
	case pointer.ButtonMiddle:
		return virtual_pointer.BTN_MIDDLE
	case pointer.ButtonRight:
		return virtual_pointer.BTN_RIGHT
	default:
		return virtual_pointer.BTN_LEFT
	}
}

var (
	_ keyboard.Client = (*WaylandKeyboard)(nil)
	_ pointer.Client  = (*WaylandPointer)(nil)
)
