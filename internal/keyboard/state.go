package keyboard

import (
	"fmt"
	"sync"

	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/layout"
)

// Client is the virtual-keyboard protocol endpoint.
type Client interface {
	// Press sends a key-down for a raw scan code.
	Press(code keycode.Code) error

	// Release sends a key-up for a raw scan code.
	Release(code keycode.Code) error

	// SetModifiers forwards the full modifier state. The engine only
	// uses the depressed and locked groups.
	SetModifiers(depressed, latched, locked, group uint32) error

	// Close releases the virtual device.
	Close() error
}

// State is the live emulated keyboard. All methods are safe for
// concurrent use; dispatch writes from one flow, status readers may
// poll from others.
type State struct {
	mu sync.RWMutex

	client Client
	layout *layout.Layout

	// Active layer index per side.
	left, right int

	// Held protocol bitmasks.
	modifiers uint32
	locks     uint32
}

// New creates keyboard state over a validated layout, starting on
// layer 0 of both sides with empty masks.
func New(client Client, l *layout.Layout) *State {
	return &State{
		client: client,
		layout: l,
	}
}

// Press forwards a key-down verbatim.
func (s *State) Press(code keycode.Code) error {
	return s.client.Press(code)
}

// Release forwards a key-up verbatim.
func (s *State) Release(code keycode.Code) error {
	return s.client.Release(code)
}

// AddModifier sets the modifier bit for a modifier scan code and
// re-forwards the full state.
func (s *State) AddModifier(code keycode.Code) error {
	bit, ok := code.ModifierBit()
	if !ok {
		return fmt.Errorf("%s: %w", code, ErrNotModifier)
	}

	s.mu.Lock()
	s.modifiers |= bit
	s.mu.Unlock()
	return s.forward()
}

// RemoveModifier clears the modifier bit for a modifier scan code and
// re-forwards the full state.
func (s *State) RemoveModifier(code keycode.Code) error {
	bit, ok := code.ModifierBit()
	if !ok {
		return fmt.Errorf("%s: %w", code, ErrNotModifier)
	}

	s.mu.Lock()
	s.modifiers &^= bit
	s.mu.Unlock()
	return s.forward()
}

// AddLock sets the lock bit for a lock scan code and re-forwards the
// full state.
func (s *State) AddLock(code keycode.Code) error {
	bit, ok := code.LockBit()
	if !ok {
		return fmt.Errorf("%s: %w", code, ErrNotLock)
	}

	s.mu.Lock()
	s.locks |= bit
	s.mu.Unlock()
	return s.forward()
}

// RemoveLock clears the lock bit for a lock scan code and re-forwards
// the full state.
func (s *State) RemoveLock(code keycode.Code) error {
	bit, ok := code.LockBit()
	if !ok {
		return fmt.Errorf("%s: %w", code, ErrNotLock)
	}

	s.mu.Lock()
	s.locks &^= bit
	s.mu.Unlock()
	return s.forward()
}

// forward resends the full modifier state: held modifiers depressed,
// held locks locked, nothing latched, group 0.
func (s *State) forward() error {
	s.mu.RLock()
	modifiers, locks := s.modifiers, s.locks
	s.mu.RUnlock()
	return s.client.SetModifiers(modifiers, 0, locks, 0)
}

// SwitchLayer activates a layer on one side. Indices come only from
// validated layout data, so an out-of-range index is a defect and
// panics.
func (s *State) SwitchLayer(side layout.Side, index int) {
	if index < 0 || index >= len(s.layout.Layers(side)) {
		panic(fmt.Sprintf("keyboard: layer %d out of range for %s side", index, side))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if side == layout.SideLeft {
		s.left = index
	} else {
		s.right = index
	}
}

// EnterMouseLayer raises the built-in mouse layer on the left side.
func (s *State) EnterMouseLayer() {
	s.SwitchLayer(layout.SideLeft, s.layout.MouseLayer())
}

// LeaveMouseLayer returns the left side to its default layer.
func (s *State) LeaveMouseLayer() {
	s.SwitchLayer(layout.SideLeft, 0)
}

// ActiveLayers returns the active layer index per side.
func (s *State) ActiveLayers() (left, right int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.left, s.right
}

// Layout returns the loaded layout.
func (s *State) Layout() *layout.Layout {
	return s.layout
}

// Modifiers returns the held modifier bitmask.
func (s *State) Modifiers() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modifiers
}

// Locks returns the held lock bitmask.
func (s *State) Locks() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locks
}

// Destroy releases the protocol client.
func (s *State) Destroy() error {
	return s.client.Close()
}
