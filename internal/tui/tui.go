// Package tui is the terminal front end: it draws the two keyboard
// halves as a key grid and feeds mouse drags into the dispatcher as
// touch interactions.
//
// A terminal mouse reports one pointer at cell resolution, so only one
// key can be touched at a time, and drag offsets are scaled by a
// px-per-cell factor before they reach the gesture recognizer.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glidekbd/internal/dispatch"
	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/pointer"
)

// cellAspect is the assumed height:width ratio of a terminal cell.
// Vertical offsets are scaled by it so a diagonal drag on screen reads
// as a diagonal offset in pixels.
const cellAspect = 2

// DefaultPxPerCell is the pixel width assigned to one cell of
// horizontal mouse travel.
const DefaultPxPerCell = 10

// Config configures the terminal front end.
type Config struct {
	// Keys and Pointer are the dispatch targets.
	Keys    *keyboard.State
	Pointer *pointer.Pointer

	// Runner spawns command keys. nil selects the dispatcher default.
	Runner dispatch.Runner

	// Dispatch tunes gesture recognition and trackpad scaling.
	Dispatch dispatch.Config

	// PxPerCell converts cell-resolution mouse offsets to the pixel
	// scale the gesture thresholds are tuned for. Zero selects
	// DefaultPxPerCell.
	PxPerCell float64

	// OnVisible, when set, observes visibility after each change.
	// Called on the UI goroutine.
	OnVisible func(show bool)

	// Screen overrides the terminal screen; nil allocates one.
	Screen tcell.Screen

	// Logger receives UI traces.
	Logger *slog.Logger
}

// UI owns the terminal screen and the dispatcher driven from it. It
// implements dispatch.Notifier; dispatcher signals and external
// visibility changes are posted into the event queue and applied on
// the UI goroutine.
type UI struct {
	screen    tcell.Screen
	disp      *dispatch.Dispatcher
	keys      *keyboard.State
	log       *slog.Logger
	onVisible func(bool)

	pxX, pxY float64

	visible atomic.Bool

	// UI-goroutine state.
	regions []region
	drag    *drag
}

// drag is an in-flight mouse press. in is nil when the press began
// off-key or on the trigger bar.
type drag struct {
	in   *dispatch.Interaction
	x, y int
}

// New creates the front end and its dispatcher. The screen is not
// touched until Run.
func New(cfg Config) (*UI, error) {
	screen := cfg.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("tui: create screen: %w", err)
		}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	px := cfg.PxPerCell
	if px <= 0 {
		px = DefaultPxPerCell
	}

	u := &UI{
		screen:    screen,
		keys:      cfg.Keys,
		log:       log,
		onVisible: cfg.OnVisible,
		pxX:       px,
		pxY:       px * cellAspect,
	}
	u.visible.Store(true)
	u.disp = dispatch.New(cfg.Keys, cfg.Pointer, cfg.Runner, u, cfg.Dispatch)
	return u, nil
}

// Run initializes the terminal and serves events until the context is
// canceled or the user quits with Esc or Ctrl-C.
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("tui: init screen: %w", err)
	}
	defer u.screen.Fini()

	u.screen.EnableMouse()
	u.screen.HideCursor()
	u.render()

	stop := context.AfterFunc(ctx, func() { u.post(&eventQuit{}) })
	defer stop()

	for {
		ev := u.screen.PollEvent()
		if ev == nil || !u.handleEvent(ev) {
			return nil
		}
	}
}

// handleEvent applies one event. It reports whether the event loop
// should keep running.
func (u *UI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *eventQuit:
		return false
	case *eventRedraw:
		u.render()
	case *eventVisibility:
		u.applyVisible(ev.show)
	case *tcell.EventResize:
		u.screen.Sync()
		u.render()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
	case *tcell.EventMouse:
		u.handleMouse(ev)
	}
	return true
}

// Cross-goroutine signals travel as custom screen events so all state
// changes land on the UI goroutine.
type (
	eventQuit       struct{ tcell.EventTime }
	eventRedraw     struct{ tcell.EventTime }
	eventVisibility struct {
		tcell.EventTime
		show bool
	}
)

// post queues an event for the UI goroutine.
func (u *UI) post(ev tcell.Event) {
	if err := u.screen.PostEvent(ev); err != nil {
		u.log.Debug("ui event dropped", "error", err)
	}
}

// SetVisible shows or hides the key grid. Safe from any goroutine.
func (u *UI) SetVisible(show bool) {
	ev := &eventVisibility{show: show}
	ev.SetEventNow()
	u.post(ev)
}

// Toggle flips visibility and returns the state it switched to.
func (u *UI) Toggle() bool {
	show := !u.visible.Load()
	u.SetVisible(show)
	return show
}

// Visible reports whether the key grid is shown.
func (u *UI) Visible() bool {
	return u.visible.Load()
}

// Redraw schedules a repaint. Safe from any goroutine.
func (u *UI) Redraw() {
	ev := &eventRedraw{}
	ev.SetEventNow()
	u.post(ev)
}

// HideKeyboard implements dispatch.Notifier.
func (u *UI) HideKeyboard() { u.SetVisible(false) }

// LayoutChanged implements dispatch.Notifier.
func (u *UI) LayoutChanged() { u.Redraw() }

// applyVisible flips the grid on the UI goroutine.
func (u *UI) applyVisible(show bool) {
	if u.visible.Swap(show) == show {
		return
	}
	u.render()
	if u.onVisible != nil {
		u.onVisible(show)
	}
}

var _ dispatch.Notifier = (*UI)(nil)
