package backend

import (
	"log/slog"

	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/pointer"
)

// LogKeyboard writes every keyboard operation to the logger and drives
// nothing.
type LogKeyboard struct {
	log *slog.Logger
}

// NewLogKeyboard creates a logging keyboard.
func NewLogKeyboard(log *slog.Logger) *LogKeyboard {
	return &LogKeyboard{log: log.With("device", "keyboard")}
}

// Press logs a key-down.
func (k *LogKeyboard) Press(code keycode.Code) error {
	k.log.Info("press", "key", code.String())
	return nil
}

// Release logs a key-up.
func (k *LogKeyboard) Release(code keycode.Code) error {
	k.log.Info("release", "key", code.String())
	return nil
}

// SetModifiers logs the full modifier state.
func (k *LogKeyboard) SetModifiers(depressed, latched, locked, group uint32) error {
	k.log.Info("modifiers",
		"depressed", depressed,
		"latched", latched,
		"locked", locked,
		"group", group,
	)
	return nil
}

// Close logs the teardown.
func (k *LogKeyboard) Close() error {
	k.log.Info("close")
	return nil
}

// LogPointer writes every pointer operation to the logger and drives
// nothing.
type LogPointer struct {
	log *slog.Logger
}

// NewLogPointer creates a logging pointer.
func NewLogPointer(log *slog.Logger) *LogPointer {
	return &LogPointer{log: log.With("device", "pointer")}
}

// Move logs relative motion.
func (p *LogPointer) Move(dx, dy int32) error {
	p.log.Info("move", "dx", dx, "dy", dy)
	return nil
}

// ScrollX logs a horizontal scroll.
func (p *LogPointer) ScrollX(amount int32) error {
	p.log.Info("scroll", "axis", "x", "amount", amount)
	return nil
}

// ScrollY logs a vertical scroll.
func (p *LogPointer) ScrollY(amount int32) error {
	p.log.Info("scroll", "axis", "y", "amount", amount)
	return nil
}

// Press logs a button-down.
func (p *LogPointer) Press(b pointer.Button) error {
	p.log.Info("press", "button", b.String())
	return nil
}

// Release logs a button-up.
func (p *LogPointer) Release(b pointer.Button) error {
	p.log.Info("release", "button", b.String())
	return nil
}

// Close logs the teardown.
func (p *LogPointer) Close() error {
	p.log.Info("close")
	return nil
}

var (
	_ keyboard.Client = (*LogKeyboard)(nil)
	_ pointer.Client  = (*LogPointer)(nil)
)
