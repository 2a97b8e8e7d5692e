package layout

import "fmt"

// validate checks cross-references the unmarshalers cannot see:
// every layer action must target a layer the side actually has.
// Runs after the mouse layer is appended, so references to it are
// legal.
func (l *Layout) validate() error {
	for side, layers := range map[Side][]Layer{SideLeft: l.Left, SideRight: l.Right} {
		for i, layer := range layers {
			for j, row := range layer.Rows {
				for k, def := range row {
					key, ok := def.(*BasicKey)
					if !ok {
						continue
					}
					for _, action := range []SwipeAction{key.North, key.East, key.West, key.South} {
						ref, ok := action.(LayerAction)
						if !ok {
							continue
						}
						if ref.Index < 0 || ref.Index >= len(l.Layers(ref.Side)) {
							return fmt.Errorf("%s layer %d row %d key %d: %s[%d]: %w",
								side, i, j, k, ref.Side, ref.Index, ErrLayerOutOfRange)
						}
					}
				}
			}
		}
	}
	return nil
}
