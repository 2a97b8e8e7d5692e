package tui

import "github.com/gdamore/tcell/v2"

// handleMouse tracks the primary button through press, drag, and
// release. An interaction binds to the key under the press and
// receives offsets relative to it; where the drag wanders on screen
// afterwards does not matter.
func (u *UI) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && u.drag == nil:
		u.beginDrag(x, y)
	case held && u.drag != nil:
		u.moveDrag(x, y)
	case !held && u.drag != nil:
		u.endDrag(x, y)
	}
}

// beginDrag records the press. A press outside every key still opens
// an inert drag, so sliding onto a key later does not begin one.
func (u *UI) beginDrag(x, y int) {
	d := &drag{x: x, y: y}
	if reg, ok := u.hit(x, y); ok && reg.def != nil {
		d.in = u.disp.Begin(reg.def)
	}
	u.drag = d
}

func (u *UI) moveDrag(x, y int) {
	if u.drag.in == nil {
		return
	}
	dx := float64(x-u.drag.x) * u.pxX
	dy := float64(y-u.drag.y) * u.pxY
	u.drag.in.Move(dx, dy)
}

func (u *UI) endDrag(x, y int) {
	d := u.drag
	u.drag = nil

	if d.in != nil {
		d.in.End()
		return
	}

	// A press that began on the trigger bar restores the grid if the
	// release still lands on it.
	if reg, ok := u.hit(x, y); ok && reg.def == nil {
		u.applyVisible(true)
	}
}

// hit returns the key region containing a cell.
func (u *UI) hit(x, y int) (region, bool) {
	for _, reg := range u.regions {
		if reg.contains(x, y) {
			return reg, true
		}
	}
	return region{}, false
}
