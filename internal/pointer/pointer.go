// Package pointer fans pointer operations out to the virtual-pointer
// protocol client.
//
// Conventions at this boundary: Move dx is right-positive and dy is
// down-positive; scroll amounts are down/right-positive. Backend
// adapters translate to whatever their device expects.
package pointer

import "fmt"

// Button is one of the fixed pointer buttons.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// String returns a human-readable button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return fmt.Sprintf("button(%d)", b)
	}
}

// Glyph returns the display glyph for a pointer-button key.
func (b Button) Glyph() string {
	switch b {
	case ButtonLeft:
		return "◀"
	case ButtonMiddle:
		return "●"
	case ButtonRight:
		return "▶"
	default:
		return "?"
	}
}

// Client is the virtual-pointer protocol endpoint.
type Client interface {
	Move(dx, dy int32) error
	ScrollX(amount int32) error
	ScrollY(amount int32) error
	Press(b Button) error
	Release(b Button) error
	Close() error
}

// DefaultScrollStep is the scroll amount emitted per dispatched scroll.
const DefaultScrollStep = 10

// Pointer wraps a Client with the fixed per-dispatch scroll step.
type Pointer struct {
	client Client
	step   int32
}

// New returns a Pointer over client. A step of 0 selects
// DefaultScrollStep.
func New(client Client, step int32) *Pointer {
	if step <= 0 {
		step = DefaultScrollStep
	}
	return &Pointer{client: client, step: step}
}

// Move forwards a relative motion.
func (p *Pointer) Move(dx, dy int32) error {
	return p.client.Move(dx, dy)
}

// ScrollUp scrolls content up by one step.
func (p *Pointer) ScrollUp() error {
	return p.client.ScrollY(-p.step)
}

// ScrollDown scrolls content down by one step.
func (p *Pointer) ScrollDown() error {
	return p.client.ScrollY(p.step)
}

// ScrollLeft scrolls content left by one step.
func (p *Pointer) ScrollLeft() error {
	return p.client.ScrollX(-p.step)
}

// ScrollRight scrolls content right by one step.
func (p *Pointer) ScrollRight() error {
	return p.client.ScrollX(p.step)
}

// Press presses a pointer button.
func (p *Pointer) Press(b Button) error {
	return p.client.Press(b)
}

// Release releases a pointer button.
func (p *Pointer) Release(b Button) error {
	return p.client.Release(b)
}
