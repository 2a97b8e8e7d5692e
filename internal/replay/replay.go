// Package replay runs Lua scripts that drive synthetic touch
// interactions through the dispatcher, for reproducing gesture bugs
// and tuning thresholds without a display.
//
// Scripts see four globals:
//
//	begin(side, row, col) -- touch a key; row and col are 1-based on
//	                      -- the side's active layer
//	move(dx, dy)          -- slide by pixels; positive dy is downward
//	wait(ms)              -- sleep, e.g. past the hold term
//	finish()              -- lift the touch
//
// plus the base, table, string, and math libraries.
package replay

import (
	"fmt"
	"log/slog"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/glidekbd/internal/dispatch"
	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/layout"
	"github.com/dshills/glidekbd/internal/pointer"
)

// Harness owns a dispatcher and feeds it scripted touches. One script
// runs at a time; the Lua state lives for a single run.
type Harness struct {
	keys *keyboard.State
	disp *dispatch.Dispatcher
	log  *slog.Logger

	// Open interaction and its accumulated offset.
	in   *dispatch.Interaction
	x, y float64
}

// New creates a harness over the dispatch targets.
func New(keys *keyboard.State, ptr *pointer.Pointer, config dispatch.Config) *Harness {
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Harness{
		keys: keys,
		disp: dispatch.New(keys, ptr, nil, dispatch.NopNotifier{}, config),
		log:  log,
	}
}

// RunFile executes a script file.
func (h *Harness) RunFile(path string) error {
	return h.run(func(L *lua.LState) error { return L.DoFile(path) })
}

// RunString executes script source.
func (h *Harness) RunString(code string) error {
	return h.run(func(L *lua.LState) error { return L.DoString(code) })
}

func (h *Harness) run(do func(*lua.LState) error) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Base plus the pure libraries; io, os, debug, and package stay
	// closed.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	L.SetGlobal("begin", L.NewFunction(h.luaBegin))
	L.SetGlobal("move", L.NewFunction(h.luaMove))
	L.SetGlobal("wait", L.NewFunction(h.luaWait))
	L.SetGlobal("finish", L.NewFunction(h.luaFinish))

	err := do(L)

	// A script that bails mid-gesture must not leave keys held on the
	// virtual device.
	if h.in != nil {
		h.log.Warn("script left an interaction open, finishing it")
		h.in.End()
		h.in = nil
	}

	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

func (h *Harness) luaBegin(L *lua.LState) int {
	name := L.CheckString(1)
	row := L.CheckInt(2)
	col := L.CheckInt(3)

	if h.in != nil {
		L.RaiseError("begin: interaction already open, call finish first")
	}

	side, ok := layout.ParseSide(name)
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown side %q", name))
	}

	def, err := h.keyAt(side, row, col)
	if err != nil {
		L.RaiseError("begin: %v", err)
	}

	h.in = h.disp.Begin(def)
	h.x, h.y = 0, 0
	return 0
}

func (h *Harness) luaMove(L *lua.LState) int {
	dx := float64(L.CheckNumber(1))
	dy := float64(L.CheckNumber(2))

	if h.in == nil {
		L.RaiseError("move: no open interaction")
	}

	h.x += dx
	h.y += dy
	h.in.Move(h.x, h.y)
	return 0
}

func (h *Harness) luaWait(L *lua.LState) int {
	ms := L.CheckInt(1)
	if ms < 0 {
		L.ArgError(1, "negative duration")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return 0
}

func (h *Harness) luaFinish(L *lua.LState) int {
	if h.in == nil {
		L.RaiseError("finish: no open interaction")
	}
	h.in.End()
	h.in = nil
	return 0
}

// keyAt resolves a 1-based row and column on a side's active layer.
func (h *Harness) keyAt(side layout.Side, row, col int) (layout.KeyDef, error) {
	left, right := h.keys.ActiveLayers()
	index := left
	if side == layout.SideRight {
		index = right
	}
	layer := h.keys.Layout().Layers(side)[index]

	if row < 1 || row > len(layer.Rows) {
		return nil, fmt.Errorf("row %d out of range, layer has %d rows", row, len(layer.Rows))
	}
	keys := layer.Rows[row-1]
	if col < 1 || col > len(keys) {
		return nil, fmt.Errorf("column %d out of range, row has %d keys", col, len(keys))
	}
	return keys[col-1], nil
}
