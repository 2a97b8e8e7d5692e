package gesture

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Kind identifies a classified gesture event.
type Kind uint8

const (
	// KindTapPressed reports the interaction was claimed as a press,
	// by the hold timer or by ending while still unclaimed.
	KindTapPressed Kind = iota

	// KindSwipePressed reports the interaction was claimed as a swipe
	// whose cumulative offset resolved to a direction.
	KindSwipePressed

	// KindSwipeRepeated reports a claimed swipe traveled another
	// increment in a resolvable direction.
	KindSwipeRepeated

	// KindFreeMove reports raw relative motion. Emitted for every
	// sample, whatever the claim state.
	KindFreeMove

	// KindReleased reports the interaction ended. Always the final
	// event.
	KindReleased
)

// String returns a human-readable event kind name.
func (k Kind) String() string {
	switch k {
	case KindTapPressed:
		return "tap-pressed"
	case KindSwipePressed:
		return "swipe-pressed"
	case KindSwipeRepeated:
		return "swipe-repeated"
	case KindFreeMove:
		return "free-move"
	case KindReleased:
		return "released"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Event is one classified gesture event.
type Event struct {
	Kind Kind

	// Dir is the resolved direction for KindSwipePressed and
	// KindSwipeRepeated.
	Dir Direction

	// DX, DY are the relative motion for KindFreeMove since the
	// previous sample. DY is inverted from screen coordinates:
	// upward motion is positive.
	DX, DY float64

	// X, Y are the cumulative offset from the interaction start for
	// KindFreeMove, in screen coordinates.
	X, Y float64
}

// Config configures gesture classification.
type Config struct {
	// SwipeMinDistance is the cumulative offset, in pixels on either
	// axis, at which an unclaimed interaction is claimed as a swipe.
	// Too low and taps are misread as swipes.
	SwipeMinDistance float64

	// SwipeAngleTolerance is how many degrees an offset's angle may
	// deviate from a cardinal axis and still resolve to that
	// direction. The boundary angle itself resolves.
	SwipeAngleTolerance float64

	// SwipeMinIncrement is the distance a claimed swipe must travel
	// from its last reported offset to emit a repeat.
	SwipeMinIncrement float64

	// HoldTerm is how long an unclaimed interaction may sit before
	// it is claimed as a press. Zero disables the hold timer; the
	// interaction is then classified at release.
	HoldTerm time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SwipeMinDistance:    5,
		SwipeAngleTolerance: 15,
		SwipeMinIncrement:   5,
		HoldTerm:            500 * time.Millisecond,
	}
}

// state is the claim state of an interaction.
type state uint8

const (
	stateIdle state = iota
	stateUnclaimed
	statePressed
	stateSwiping
)

// Recognizer classifies one continuous pointer interaction on a key.
//
// Begin, Move, and End drive it; classified events are delivered to
// the sink synchronously, with the recognizer's lock held, in order.
// The hold timer fires on its own goroutine but takes the same lock,
// so sink calls never interleave. The sink must not call back into
// the Recognizer.
type Recognizer struct {
	mu sync.Mutex

	config Config
	sink   func(Event)

	state state

	// lastX, lastY is the previous cumulative offset, for relative
	// motion.
	lastX, lastY float64

	// swipeX, swipeY is the cumulative offset at the last swipe claim
	// or repeat, for increment distances.
	swipeX, swipeY float64

	// Hold timer
	holdTimer *time.Timer
}

// New creates a recognizer delivering events to sink.
func New(config Config, sink func(Event)) *Recognizer {
	if sink == nil {
		sink = func(Event) {}
	}
	return &Recognizer{
		config: config,
		sink:   sink,
	}
}

// Begin starts an interaction: the state becomes unclaimed and the
// hold timer starts racing the swipe threshold.
func (r *Recognizer) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = stateUnclaimed
	r.lastX, r.lastY = 0, 0
	r.resetHoldTimer()
}

// Move feeds one sample: the cumulative offset from the interaction
// start, in screen coordinates (y grows downward). Free motion is
// reported for every sample; the sample may also claim the
// interaction as a swipe or advance a claimed swipe by an increment.
func (r *Recognizer) Move(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateIdle {
		return
	}

	dx := x - r.lastX
	dy := r.lastY - y
	r.sink(Event{Kind: KindFreeMove, DX: dx, DY: dy, X: x, Y: y})
	r.lastX, r.lastY = x, y

	switch r.state {
	case stateUnclaimed:
		if math.Abs(x) < r.config.SwipeMinDistance && math.Abs(y) < r.config.SwipeMinDistance {
			return
		}
		// Claim the swipe even when no direction resolves; the hold
		// timer must not win a diagonal drag.
		r.state = stateSwiping
		r.swipeX, r.swipeY = x, y
		r.stopHoldTimer()
		if dir, ok := FromOffset(x, y, r.config.SwipeAngleTolerance); ok {
			r.sink(Event{Kind: KindSwipePressed, Dir: dir})
		}
	case stateSwiping:
		ix := x - r.swipeX
		iy := y - r.swipeY
		if math.Hypot(ix, iy) < r.config.SwipeMinIncrement {
			return
		}
		r.swipeX, r.swipeY = x, y
		if dir, ok := FromOffset(ix, iy, r.config.SwipeAngleTolerance); ok {
			r.sink(Event{Kind: KindSwipeRepeated, Dir: dir})
		}
	}
}

// End finishes the interaction. An interaction neither classifier
// claimed is a tap, so a press is reported first; release is always
// reported last, and the recognizer returns to idle.
func (r *Recognizer) End() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateIdle {
		return
	}

	r.stopHoldTimer()

	if r.state == stateUnclaimed {
		r.state = statePressed
		r.sink(Event{Kind: KindTapPressed})
	}

	r.state = stateIdle
	r.lastX, r.lastY = 0, 0
	r.sink(Event{Kind: KindReleased})
}

// resetHoldTimer arms the hold timer, replacing any previous one.
func (r *Recognizer) resetHoldTimer() {
	r.stopHoldTimer()

	if r.config.HoldTerm > 0 {
		r.holdTimer = time.AfterFunc(r.config.HoldTerm, func() {
			r.holdExpired()
		})
	}
}

// stopHoldTimer cancels the pending hold timer, if any.
func (r *Recognizer) stopHoldTimer() {
	if r.holdTimer != nil {
		r.holdTimer.Stop()
		r.holdTimer = nil
	}
}

// holdExpired claims the interaction as a press. Stop cannot exclude
// a callback that has already fired, so the claim state is re-checked
// under the lock.
func (r *Recognizer) holdExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateUnclaimed {
		return
	}

	r.state = statePressed
	r.sink(Event{Kind: KindTapPressed})
}
