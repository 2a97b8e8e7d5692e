package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/glidekbd/internal/gesture"
	"github.com/dshills/glidekbd/internal/logging"
)

// Config is the full daemon configuration, one section per subsystem.
// Values not present in the file keep their defaults.
type Config struct {
	Gesture GestureConfig `toml:"gesture"`
	Pointer PointerConfig `toml:"pointer"`
	Backend BackendConfig `toml:"backend"`
	Layout  LayoutConfig  `toml:"layout"`
	TUI     TUIConfig     `toml:"tui"`
	Control ControlConfig `toml:"control"`
	Log     LogConfig     `toml:"log"`
}

// GestureConfig tunes gesture classification.
type GestureConfig struct {
	// HoldTermMS is how long a touch may rest unclaimed before it is
	// claimed as a press, in milliseconds.
	HoldTermMS int `toml:"hold_term_ms"`

	// SwipeMinDistance is the offset, in pixels on either axis, at
	// which a touch is claimed as a swipe.
	SwipeMinDistance float64 `toml:"swipe_min_distance"`

	// SwipeAngleTolerance is how many degrees a swipe may deviate from
	// a cardinal axis and still resolve to it.
	SwipeAngleTolerance float64 `toml:"swipe_angle_tolerance"`

	// SwipeMinIncrement is the distance a swipe must travel to repeat,
	// in pixels.
	SwipeMinIncrement float64 `toml:"swipe_min_increment"`
}

// Recognizer converts the section to a recognizer configuration.
func (c GestureConfig) Recognizer() gesture.Config {
	return gesture.Config{
		SwipeMinDistance:    c.SwipeMinDistance,
		SwipeAngleTolerance: c.SwipeAngleTolerance,
		SwipeMinIncrement:   c.SwipeMinIncrement,
		HoldTerm:            time.Duration(c.HoldTermMS) * time.Millisecond,
	}
}

// PointerConfig tunes the virtual trackpad and scrolling.
type PointerConfig struct {
	// BaseScale multiplies trackpad motion before the distance gain.
	BaseScale float64 `toml:"base_scale"`

	// ScrollStep is the scroll amount emitted per dispatched scroll.
	ScrollStep int `toml:"scroll_step"`
}

// BackendConfig selects the virtual-device backend.
type BackendConfig struct {
	// Kind is "wayland", "uinput", or "log".
	Kind string `toml:"kind"`

	// UinputDev is the uinput device node for the uinput backend.
	UinputDev string `toml:"uinput_dev"`
}

// LayoutConfig locates the layout file.
type LayoutConfig struct {
	// Path points at a layout YAML file. Empty selects the embedded
	// default layout.
	Path string `toml:"path"`
}

// TUIConfig tunes the terminal front end.
type TUIConfig struct {
	// PxPerCell converts one cell of horizontal mouse travel to
	// pixels, the unit the gesture thresholds are tuned in.
	PxPerCell float64 `toml:"px_per_cell"`
}

// ControlConfig configures the runtime control surfaces.
type ControlConfig struct {
	// Socket is the control socket path. Empty selects
	// $XDG_RUNTIME_DIR/glidekbd.sock.
	Socket string `toml:"socket"`

	// DBus exports the sm.puri.OSK0 visibility interface.
	DBus bool `toml:"dbus"`
}

// SocketPath resolves the control socket path.
func (c ControlConfig) SocketPath() string {
	if c.Socket != "" {
		return c.Socket
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "glidekbd.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("glidekbd-%d.sock", os.Getuid()))
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is the minimum severity: debug, info, warn, or error.
	Level string `toml:"level"`

	// Format is the output encoding: text or json.
	Format string `toml:"format"`

	// Output is the destination: stderr, stdout, or file.
	Output string `toml:"output"`

	// File is the log file path when Output is "file". Empty selects
	// the XDG state-home default.
	File string `toml:"file"`
}

// Logging converts the section to a logger configuration.
func (c LogConfig) Logging() (logging.Config, error) {
	cfg := logging.DefaultConfig()

	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return cfg, err
	}
	format, err := logging.ParseFormat(c.Format)
	if err != nil {
		return cfg, err
	}

	cfg.Level = level
	cfg.Format = format
	cfg.Output = c.Output
	if c.File != "" {
		cfg.FilePath = c.File
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Gesture: GestureConfig{
			HoldTermMS:          500,
			SwipeMinDistance:    5,
			SwipeAngleTolerance: 15,
			SwipeMinIncrement:   5,
		},
		Pointer: PointerConfig{
			BaseScale:  2,
			ScrollStep: 10,
		},
		Backend: BackendConfig{
			Kind:      "wayland",
			UinputDev: "/dev/uinput",
		},
		TUI: TUIConfig{
			PxPerCell: 10,
		},
		Control: ControlConfig{
			DBus: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// DefaultPath returns the XDG config-home configuration path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, _ := os.UserHomeDir()
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "glidekbd", "config.toml")
}

// Load reads the configuration file at path over the defaults. A
// missing file is not an error; the defaults apply as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch c.Backend.Kind {
	case "wayland", "uinput", "log":
	default:
		return fmt.Errorf("%q: %w", c.Backend.Kind, ErrUnknownBackend)
	}

	if c.Gesture.HoldTermMS <= 0 {
		return fmt.Errorf("gesture.hold_term_ms %d: %w", c.Gesture.HoldTermMS, ErrOutOfRange)
	}
	if c.Gesture.SwipeMinDistance <= 0 {
		return fmt.Errorf("gesture.swipe_min_distance %g: %w", c.Gesture.SwipeMinDistance, ErrOutOfRange)
	}
	if c.Gesture.SwipeAngleTolerance <= 0 || c.Gesture.SwipeAngleTolerance > 45 {
		return fmt.Errorf("gesture.swipe_angle_tolerance %g: %w", c.Gesture.SwipeAngleTolerance, ErrOutOfRange)
	}
	if c.Gesture.SwipeMinIncrement <= 0 {
		return fmt.Errorf("gesture.swipe_min_increment %g: %w", c.Gesture.SwipeMinIncrement, ErrOutOfRange)
	}

	if c.Pointer.BaseScale <= 0 {
		return fmt.Errorf("pointer.base_scale %g: %w", c.Pointer.BaseScale, ErrOutOfRange)
	}
	if c.Pointer.ScrollStep <= 0 {
		return fmt.Errorf("pointer.scroll_step %d: %w", c.Pointer.ScrollStep, ErrOutOfRange)
	}

	if c.TUI.PxPerCell <= 0 {
		return fmt.Errorf("tui.px_per_cell %g: %w", c.TUI.PxPerCell, ErrOutOfRange)
	}

	if _, err := c.Log.Logging(); err != nil {
		return err
	}
	return nil
}
