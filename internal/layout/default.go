package layout

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yml
var defaultLayout []byte

//go:embed mouse-layer.yml
var mouseLayer []byte

// Default returns the embedded default layout.
func Default() (*Layout, error) {
	return Parse(defaultLayout)
}

// DefaultBytes returns a copy of the embedded default layout document,
// the starting point for a user layout file.
func DefaultBytes() []byte {
	return append([]byte(nil), defaultLayout...)
}

// parseMouseLayer decodes the embedded mouse layer.
func parseMouseLayer() (Layer, error) {
	var l Layer
	if err := yaml.Unmarshal(mouseLayer, &l); err != nil {
		return Layer{}, fmt.Errorf("decoding mouse layer: %w", err)
	}
	return l, nil
}
