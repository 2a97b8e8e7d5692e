package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/pointer"
)

// Load reads and parses a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	return Parse(data)
}

// Parse parses a layout document, appends the built-in mouse layer to
// the left side, and validates the result.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}

	if len(l.Left) == 0 {
		return nil, fmt.Errorf("left: %w", ErrEmptySide)
	}
	if len(l.Right) == 0 {
		return nil, fmt.Errorf("right: %w", ErrEmptySide)
	}

	mouse, err := parseMouseLayer()
	if err != nil {
		return nil, err
	}
	l.Left = append(l.Left, mouse)

	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// UnmarshalYAML decodes a layer: a list of rows, each a list of key
// definitions.
func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	var rows [][]keyDefNode
	if err := value.Decode(&rows); err != nil {
		return fmt.Errorf("decoding layer: %w", err)
	}

	l.Rows = make([][]KeyDef, len(rows))
	for i, row := range rows {
		keys := make([]KeyDef, len(row))
		for j, node := range row {
			keys[j] = node.def
		}
		l.Rows[i] = keys
	}
	return nil
}

// UnmarshalYAML decodes a side name.
func (s *Side) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	side, ok := ParseSide(name)
	if !ok {
		return fmt.Errorf("line %d: %q: %w", value.Line, name, ErrUnknownSide)
	}
	*s = side
	return nil
}

// UnmarshalYAML decodes a modifier name.
func (m *Modifier) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	mod, ok := ParseModifier(name)
	if !ok {
		return fmt.Errorf("line %d: %q: %w", value.Line, name, ErrUnknownModifier)
	}
	*m = mod
	return nil
}

// keyDefNode decodes one KeyDef union entry: a scalar shorthand
// (KEY_*, Pointer, PointerLeft/Middle/Right) or a mapping carrying a
// key or cmd field.
type keyDefNode struct {
	def KeyDef
}

func (n *keyDefNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return n.decodeScalar(value)
	case yaml.MappingNode:
		return n.decodeMapping(value)
	default:
		return fmt.Errorf("line %d: %w", value.Line, ErrBadKeyDef)
	}
}

func (n *keyDefNode) decodeScalar(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	switch name {
	case "Pointer":
		n.def = PointerKey{}
		return nil
	case "PointerLeft":
		n.def = PointerButtonKey{Button: pointer.ButtonLeft}
		return nil
	case "PointerMiddle":
		n.def = PointerButtonKey{Button: pointer.ButtonMiddle}
		return nil
	case "PointerRight":
		n.def = PointerButtonKey{Button: pointer.ButtonRight}
		return nil
	}

	code, ok := keycode.FromName(name)
	if !ok {
		return fmt.Errorf("line %d: %q: %w", value.Line, name, ErrUnknownKeyName)
	}
	n.def = &BasicKey{Key: code}
	return nil
}

func (n *keyDefNode) decodeMapping(value *yaml.Node) error {
	switch {
	case hasField(value, "key"):
		key, err := decodeBasicKey(value)
		if err != nil {
			return err
		}
		n.def = key
		return nil
	case hasField(value, "cmd"):
		var cmd Command
		if err := value.Decode(&cmd); err != nil {
			return fmt.Errorf("decoding command key: %w", err)
		}
		if cmd.Label == "" {
			cmd.Label = cmd.Cmd
		}
		n.def = &CommandKey{Command: cmd}
		return nil
	default:
		return fmt.Errorf("line %d: %w", value.Line, ErrBadKeyDef)
	}
}

// basicKeyYAML is the raw mapping shape of a BasicKey.
type basicKeyYAML struct {
	Key   string      `yaml:"key"`
	Mods  []Modifier  `yaml:"mods"`
	North *actionNode `yaml:"n"`
	East  *actionNode `yaml:"e"`
	West  *actionNode `yaml:"w"`
	South *actionNode `yaml:"s"`
	Width int         `yaml:"width"`
	Label string      `yaml:"label"`
}

func decodeBasicKey(value *yaml.Node) (*BasicKey, error) {
	var raw basicKeyYAML
	if err := value.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}

	code, ok := keycode.FromName(raw.Key)
	if !ok {
		return nil, fmt.Errorf("line %d: %q: %w", value.Line, raw.Key, ErrUnknownKeyName)
	}

	key := &BasicKey{
		Key:   code,
		Mods:  raw.Mods,
		Span:  raw.Width,
		Label: raw.Label,
	}
	if raw.North != nil {
		key.North = raw.North.action
	}
	if raw.East != nil {
		key.East = raw.East.action
	}
	if raw.West != nil {
		key.West = raw.West.action
	}
	if raw.South != nil {
		key.South = raw.South.action
	}
	return key, nil
}

// actionNode decodes one SwipeAction union entry: a unit-action string
// (arrow, scroll, select, delete, hide) or a mapping carrying exactly
// one of key, mod, modkey, layer, cmd.
type actionNode struct {
	action SwipeAction
}

func (n *actionNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return n.decodeScalar(value)
	case yaml.MappingNode:
		return n.decodeMapping(value)
	default:
		return fmt.Errorf("line %d: %w", value.Line, ErrUnknownAction)
	}
}

func (n *actionNode) decodeScalar(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	switch name {
	case "arrow":
		n.action = ArrowAction{}
	case "scroll":
		n.action = ScrollAction{}
	case "select":
		n.action = SelectAction{}
	case "delete":
		n.action = DeleteAction{}
	case "hide":
		n.action = HideAction{}
	default:
		return fmt.Errorf("line %d: %q: %w", value.Line, name, ErrUnknownAction)
	}
	return nil
}

// actionYAML is the raw mapping shape of a non-unit SwipeAction.
type actionYAML struct {
	Key    string      `yaml:"key"`
	Mod    string      `yaml:"mod"`
	ModKey *modKeyYAML `yaml:"modkey"`
	Layer  []yaml.Node `yaml:"layer"`
	Cmd    string      `yaml:"cmd"`
	Args   []string    `yaml:"args"`
	Label  string      `yaml:"label"`
}

type modKeyYAML struct {
	Key  string     `yaml:"key"`
	Mods []Modifier `yaml:"mods"`
}

func (n *actionNode) decodeMapping(value *yaml.Node) error {
	var raw actionYAML
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decoding swipe action: %w", err)
	}

	switch {
	case raw.Key != "":
		code, ok := keycode.FromName(raw.Key)
		if !ok {
			return fmt.Errorf("line %d: %q: %w", value.Line, raw.Key, ErrUnknownKeyName)
		}
		n.action = KeyAction{Key: code}

	case raw.Mod != "":
		mod, ok := ParseModifier(raw.Mod)
		if !ok {
			return fmt.Errorf("line %d: %q: %w", value.Line, raw.Mod, ErrUnknownModifier)
		}
		n.action = ModifiedAction{Mod: mod}

	case raw.ModKey != nil:
		code, ok := keycode.FromName(raw.ModKey.Key)
		if !ok {
			return fmt.Errorf("line %d: %q: %w", value.Line, raw.ModKey.Key, ErrUnknownKeyName)
		}
		n.action = ModKeyAction{Key: code, Mods: raw.ModKey.Mods}

	case len(raw.Layer) > 0:
		action, err := decodeLayerAction(value, raw.Layer)
		if err != nil {
			return err
		}
		n.action = action

	case raw.Cmd != "":
		label := raw.Label
		if label == "" {
			label = raw.Cmd
		}
		n.action = CommandAction{Command{Cmd: raw.Cmd, Args: raw.Args, Label: label}}

	default:
		return fmt.Errorf("line %d: %w", value.Line, ErrUnknownAction)
	}
	return nil
}

// decodeLayerAction decodes the [side, index] pair of a layer action.
func decodeLayerAction(value *yaml.Node, parts []yaml.Node) (LayerAction, error) {
	if len(parts) != 2 {
		return LayerAction{}, fmt.Errorf("line %d: layer takes [side, index]: %w", value.Line, ErrUnknownAction)
	}

	var side Side
	if err := parts[0].Decode(&side); err != nil {
		return LayerAction{}, err
	}
	var index int
	if err := parts[1].Decode(&index); err != nil {
		return LayerAction{}, fmt.Errorf("line %d: layer index: %w", value.Line, err)
	}
	return LayerAction{Side: side, Index: index}, nil
}

// hasField reports whether a mapping node carries the given key.
func hasField(value *yaml.Node, name string) bool {
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == name {
			return true
		}
	}
	return false
}
