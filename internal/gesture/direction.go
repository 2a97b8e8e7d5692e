package gesture

import (
	"fmt"
	"math"
)

// Direction is a cardinal swipe direction.
type Direction int

const (
	DirUp Direction = iota
	DirLeft
	DirRight
	DirDown
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", d)
	}
}

// FromOffset buckets an offset into the cardinal direction whose axis
// lies within tolerance degrees of the offset's angle. Offsets are in
// screen coordinates (y grows downward), so up is -90° and down is 90°.
// Offsets between buckets resolve to no direction.
func FromOffset(x, y, tolerance float64) (Direction, bool) {
	deg := math.Atan2(y, x) * (180 / math.Pi)
	switch {
	case angleDiff(deg, -90) <= tolerance:
		return DirUp, true
	case angleDiff(deg, 0) <= tolerance:
		return DirRight, true
	case angleDiff(deg, 180) <= tolerance:
		return DirLeft, true
	case angleDiff(deg, 90) <= tolerance:
		return DirDown, true
	default:
		return 0, false
	}
}

// angleDiff returns the absolute angular distance between two angles
// in degrees, normalized to [0, 180].
func angleDiff(a, b float64) float64 {
	return math.Abs(math.Mod(a-b+540, 360) - 180)
}
