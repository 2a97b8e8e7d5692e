package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/pointer"
)

// Config selects and parameterizes a backend.
type Config struct {
	// Kind is "wayland", "uinput", or "log".
	Kind string

	// UinputDev is the uinput device node, for the uinput backend.
	UinputDev string

	// Logger receives device traces. The log backend writes every
	// operation through it.
	Logger *slog.Logger
}

// Devices bundles the opened virtual keyboard and pointer.
type Devices struct {
	Keyboard keyboard.Client
	Pointer  pointer.Client
}

// Open creates the virtual devices for the configured backend.
func Open(ctx context.Context, cfg Config) (*Devices, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Kind {
	case "wayland":
		kbd, err := NewWaylandKeyboard(ctx)
		if err != nil {
			return nil, err
		}
		ptr, err := NewWaylandPointer(ctx)
		if err != nil {
			kbd.Close()
			return nil, err
		}
		return &Devices{Keyboard: kbd, Pointer: ptr}, nil

	case "uinput":
		dev := cfg.UinputDev
		if dev == "" {
			dev = "/dev/uinput"
		}
		kbd, err := NewUinputKeyboard(dev)
		if err != nil {
			return nil, err
		}
		ptr, err := NewUinputPointer(dev)
		if err != nil {
			kbd.Close()
			return nil, err
		}
		return &Devices{Keyboard: kbd, Pointer: ptr}, nil

	case "log":
		return &Devices{
			Keyboard: NewLogKeyboard(log),
			Pointer:  NewLogPointer(log),
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Kind)
	}
}

// Close releases both devices, reporting the first failure.
func (d *Devices) Close() error {
	kerr := d.Keyboard.Close()
	perr := d.Pointer.Close()
	if kerr != nil {
		return kerr
	}
	return perr
}
