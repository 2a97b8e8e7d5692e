package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/layout"
)

// Grid geometry, in cells. Each key unit spans unitWidth columns and
// keyHeight rows, the last of each being the gap to its neighbor.
const (
	unitWidth = 8
	keyHeight = 4
	halfGap   = 4
	margin    = 1
)

var (
	styleKey    = tcell.StyleDefault.Reverse(true)
	styleStatus = tcell.StyleDefault.Dim(true)
)

// region is the screen footprint of one rendered key. def is nil for
// the trigger bar.
type region struct {
	x, y, w, h int
	def        layout.KeyDef
}

func (r region) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// render repaints the whole screen and rebuilds the hit regions.
func (u *UI) render() {
	u.screen.Clear()
	u.regions = u.regions[:0]

	if u.visible.Load() {
		u.renderGrid()
	} else {
		u.renderTrigger()
	}
	u.renderStatus()

	u.screen.Show()
}

// renderGrid draws the active layer of each half side by side.
func (u *UI) renderGrid() {
	l := u.keys.Layout()
	left, right := u.keys.ActiveLayers()

	u.renderHalf(margin, l.Layers(layout.SideLeft)[left])
	rx := margin + sideWidth(l.Layers(layout.SideLeft)) + halfGap
	u.renderHalf(rx, l.Layers(layout.SideRight)[right])
}

// renderHalf draws one layer's rows starting at column x.
func (u *UI) renderHalf(x int, layer layout.Layer) {
	y := margin
	for _, row := range layer.Rows {
		cx := x
		for _, def := range row {
			w := int(def.Width() * unitWidth)
			u.renderKey(cx, y, w-1, def)
			cx += w
		}
		y += keyHeight
	}
}

// renderKey draws one key block and records its hit region.
func (u *UI) renderKey(x, y, w int, def layout.KeyDef) {
	h := keyHeight - 1
	fill(u.screen, x, y, w, h, styleKey)
	drawCentered(u.screen, x, y+h/2, w, def.Glyph(), styleKey)
	u.regions = append(u.regions, region{x: x, y: y, w: w, h: h, def: def})
}

// renderTrigger draws the collapsed one-key bar that restores the grid.
func (u *UI) renderTrigger() {
	w := 2*unitWidth - 1
	h := keyHeight - 1
	fill(u.screen, margin, margin, w, h, styleKey)
	drawCentered(u.screen, margin, margin+h/2, w, "⌨", styleKey)
	u.regions = append(u.regions, region{x: margin, y: margin, w: w, h: h})
}

// renderStatus writes the active layer pair and any held modifiers and
// locks on the bottom row.
func (u *UI) renderStatus() {
	_, h := u.screen.Size()
	left, right := u.keys.ActiveLayers()

	status := fmt.Sprintf("layer %d/%d", left, right)
	if s := maskNames(u.keys.Modifiers(), modifierNames); s != "" {
		status += "  mod " + s
	}
	if s := maskNames(u.keys.Locks(), lockNames); s != "" {
		status += "  lock " + s
	}
	drawString(u.screen, margin, h-1, status, styleStatus)
}

// maskName pairs a protocol bit with its status-line name.
type maskName struct {
	bit  uint32
	name string
}

var modifierNames = []maskName{
	{keycode.BitShift, "shift"},
	{keycode.BitCtrl, "ctrl"},
	{keycode.BitAlt, "alt"},
	{keycode.BitMeta, "meta"},
}

var lockNames = []maskName{
	{keycode.BitCapsLock, "caps"},
	{keycode.BitNumLock, "num"},
	{keycode.BitScrollLock, "scroll"},
}

// maskNames renders the named bits set in mask, joined with "+".
func maskNames(mask uint32, names []maskName) string {
	var parts []string
	for _, n := range names {
		if mask&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// sideWidth returns the widest row across a side's layers, so the
// right half keeps its place when the left switches layers.
func sideWidth(layers []layout.Layer) int {
	width := 0
	for _, layer := range layers {
		for _, row := range layer.Rows {
			w := 0
			for _, def := range row {
				w += int(def.Width() * unitWidth)
			}
			if w > width {
				width = w
			}
		}
	}
	return width
}

// fill paints a rectangle of spaces.
func fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// drawString writes a run of cells. Every glyph in the default table
// is a single narrow rune, so cells advance one per rune.
func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawCentered writes text centered within a w-cell span.
func drawCentered(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	runes := []rune(text)
	if len(runes) > w {
		runes = runes[:w]
	}
	drawString(s, x+(w-len(runes))/2, y, string(runes), style)
}
