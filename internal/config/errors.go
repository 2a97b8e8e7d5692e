package config

import "errors"

// Validation errors. Configuration problems are fatal at startup, so
// these only ever surface wrapped with the offending section and value.
var (
	// ErrUnknownBackend reports a backend.kind outside wayland, uinput,
	// and log.
	ErrUnknownBackend = errors.New("config: unknown backend")

	// ErrOutOfRange reports a numeric setting the engine cannot run
	// with.
	ErrOutOfRange = errors.New("config: value out of range")
)
