// Package layout defines the keyboard description: two halves, each a
// stack of layers, each layer rows of key definitions.
//
// A layout is loaded from a YAML document (or the embedded default)
// once at startup, validated, and never mutated afterwards. The
// built-in mouse layer is appended as the last left layer during
// loading, so the trackpad key can raise it by index.
//
// Key definitions and swipe actions are closed unions; the dispatcher
// switches over their variants exhaustively.
package layout
