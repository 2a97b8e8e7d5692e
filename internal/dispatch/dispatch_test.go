package dispatch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/keycode"
	"github.com/dshills/glidekbd/internal/layout"
	"github.com/dshills/glidekbd/internal/pointer"
)

// fakeKeyClient records forwarded keyboard operations as strings.
type fakeKeyClient struct {
	ops      []string
	pressErr error
}

func (c *fakeKeyClient) Press(code keycode.Code) error {
	c.ops = append(c.ops, fmt.Sprintf("press %d", code))
	return c.pressErr
}

func (c *fakeKeyClient) Release(code keycode.Code) error {
	c.ops = append(c.ops, fmt.Sprintf("release %d", code))
	return nil
}

func (c *fakeKeyClient) SetModifiers(depressed, latched, locked, group uint32) error {
	c.ops = append(c.ops, fmt.Sprintf("mods %d %d %d %d", depressed, latched, locked, group))
	return nil
}

func (c *fakeKeyClient) Close() error { return nil }

// fakePtrClient records forwarded pointer operations as strings.
type fakePtrClient struct {
	ops []string
}

func (c *fakePtrClient) Move(dx, dy int32) error {
	c.ops = append(c.ops, fmt.Sprintf("move %d %d", dx, dy))
	return nil
}

func (c *fakePtrClient) ScrollX(amount int32) error {
	c.ops = append(c.ops, fmt.Sprintf("scrollx %d", amount))
	return nil
}

func (c *fakePtrClient) ScrollY(amount int32) error {
	c.ops = append(c.ops, fmt.Sprintf("scrolly %d", amount))
	return nil
}

func (c *fakePtrClient) Press(b pointer.Button) error {
	c.ops = append(c.ops, "press "+b.String())
	return nil
}

func (c *fakePtrClient) Release(b pointer.Button) error {
	c.ops = append(c.ops, "release "+b.String())
	return nil
}

func (c *fakePtrClient) Close() error { return nil }

// fakeRunner records spawned commands.
type fakeRunner struct {
	cmds []string
	err  error
}

func (r *fakeRunner) Run(cmd string, args []string) error {
	r.cmds = append(r.cmds, strings.Join(append([]string{cmd}, args...), " "))
	return r.err
}

// fakeNotifier counts UI signals.
type fakeNotifier struct {
	hides   int
	redraws int
}

func (n *fakeNotifier) HideKeyboard()  { n.hides++ }
func (n *fakeNotifier) LayoutChanged() { n.redraws++ }

func opsEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// fixture wires a dispatcher over recording fakes. The hold timer is
// disabled so taps classify deterministically at End.
type fixture struct {
	keys   *fakeKeyClient
	ptr    *fakePtrClient
	runner *fakeRunner
	notify *fakeNotifier
	state  *keyboard.State
	d      *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		keys:   &fakeKeyClient{},
		ptr:    &fakePtrClient{},
		runner: &fakeRunner{},
		notify: &fakeNotifier{},
	}

	// Three left layers (base, symbols, mouse) and two right layers.
	l := &layout.Layout{
		Left:  []layout.Layer{{}, {}, {}},
		Right: []layout.Layer{{}, {}},
	}
	f.state = keyboard.New(f.keys, l)

	config := DefaultConfig()
	config.Gesture.HoldTerm = 0
	config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	f.d = New(f.state, pointer.New(f.ptr, 0), f.runner, f.notify, config)
	return f
}

// tap runs a full touch with no motion.
func (f *fixture) tap(def layout.KeyDef) {
	i := f.d.Begin(def)
	i.End()
}

// swipe runs a full touch through the given cumulative offsets.
func (f *fixture) swipe(def layout.KeyDef, offsets ...[2]float64) {
	i := f.d.Begin(def)
	for _, o := range offsets {
		i.Move(o[0], o[1])
	}
	i.End()
}

func TestTapPressesAndReleases(t *testing.T) {
	f := newFixture(t)
	f.tap(&layout.BasicKey{Key: keycode.A})

	want := []string{"press 30", "release 30"}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestTapWrapsCoModifiers(t *testing.T) {
	f := newFixture(t)
	f.tap(&layout.BasicKey{Key: keycode.J, Mods: []layout.Modifier{layout.ModCtrl}})

	want := []string{
		"mods 4 0 0 0",
		"press 36",
		"release 36",
		"mods 0 0 0 0",
	}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeModifiedWrapsOriginKey(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{
		Key:  keycode.Q,
		East: layout.ModifiedAction{Mod: layout.ModShift},
	}
	f.swipe(def, [2]float64{10, 0})

	want := []string{
		"mods 1 0 0 0",
		"press 16",
		"release 16",
		"mods 0 0 0 0",
	}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeKeyActionTaps(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{
		Key:   keycode.Q,
		North: layout.KeyAction{Key: keycode.Num1},
	}
	f.swipe(def, [2]float64{0, -10})

	want := []string{"press 2", "release 2"}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeModKeyUnwrapsInAddOrder(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{
		Key: keycode.Z,
		North: layout.ModKeyAction{
			Key:  keycode.Z,
			Mods: []layout.Modifier{layout.ModCtrl, layout.ModShift},
		},
	}
	f.swipe(def, [2]float64{0, -10})

	// Modifiers come off in the order they went on, so the masks pass
	// through 4, 5 on the way up and 1, 0 on the way down.
	want := []string{
		"mods 4 0 0 0",
		"mods 5 0 0 0",
		"press 44",
		"release 44",
		"mods 1 0 0 0",
		"mods 0 0 0 0",
	}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeLayerHoldsUntilRelease(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{
		Key:   keycode.A,
		North: layout.LayerAction{Side: layout.SideLeft, Index: 1},
	}

	i := f.d.Begin(def)
	i.Move(0, -10)

	if left, _ := f.state.ActiveLayers(); left != 1 {
		t.Errorf("left layer during swipe = %d, want 1", left)
	}

	i.End()

	if left, _ := f.state.ActiveLayers(); left != 0 {
		t.Errorf("left layer after release = %d, want 0", left)
	}
	if f.notify.redraws != 2 {
		t.Errorf("redraws = %d, want 2", f.notify.redraws)
	}
	if len(f.keys.ops) != 0 {
		t.Errorf("ops = %v, want none", f.keys.ops)
	}
}

func TestSwipeArrowRepeatsPerIncrement(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{Key: keycode.J, East: layout.ArrowAction{}}
	f.swipe(def, [2]float64{10, 0}, [2]float64{20, 0})

	want := []string{
		"press 106",
		"release 106",
		"press 106",
		"release 106",
	}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeArrowFollowsIncrementDirection(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{
		Key:   keycode.J,
		North: layout.ArrowAction{},
		East:  layout.ArrowAction{},
	}
	// Claim east, then pull straight up for the next increment.
	f.swipe(def, [2]float64{10, 0}, [2]float64{10, -10})

	want := []string{
		"press 106",
		"release 106",
		"press 103",
		"release 103",
	}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeScrollDirections(t *testing.T) {
	tests := []struct {
		offset   [2]float64
		expected string
	}{
		{[2]float64{0, -10}, "scrolly -10"},
		{[2]float64{0, 10}, "scrolly 10"},
		{[2]float64{-10, 0}, "scrollx -10"},
		{[2]float64{10, 0}, "scrollx 10"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			f := newFixture(t)
			def := &layout.BasicKey{
				Key:   keycode.H,
				North: layout.ScrollAction{},
				East:  layout.ScrollAction{},
				West:  layout.ScrollAction{},
				South: layout.ScrollAction{},
			}
			f.swipe(def, tt.offset)

			want := []string{tt.expected}
			if !opsEqual(f.ptr.ops, want) {
				t.Errorf("ptr ops = %v, want %v", f.ptr.ops, want)
			}
		})
	}
}

func TestSwipeSelectShiftWrapsArrow(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{Key: keycode.K, West: layout.SelectAction{}}
	f.swipe(def, [2]float64{-10, 0})

	want := []string{
		"mods 1 0 0 0",
		"press 105",
		"release 105",
		"mods 0 0 0 0",
	}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeDeleteBackspacesOnRelease(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{Key: keycode.Backspace, West: layout.DeleteAction{}}
	f.swipe(def, [2]float64{-10, 0})

	// Selection extends during the swipe; the cut lands on release.
	want := []string{
		"mods 1 0 0 0",
		"press 105",
		"release 105",
		"mods 0 0 0 0",
		"press 14",
		"release 14",
	}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestSwipeHideFiresOnReleaseOnly(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{Key: keycode.Esc, South: layout.HideAction{}}

	i := f.d.Begin(def)
	i.Move(0, 10)

	if f.notify.hides != 0 {
		t.Fatalf("hides before release = %d, want 0", f.notify.hides)
	}

	i.End()

	if f.notify.hides != 1 {
		t.Errorf("hides = %d, want 1", f.notify.hides)
	}
	// The recorded direction owns the release, so the origin key never
	// fires.
	if len(f.keys.ops) != 0 {
		t.Errorf("ops = %v, want none", f.keys.ops)
	}
}

func TestUnrecordedSwipeReleasesKey(t *testing.T) {
	tests := []struct {
		name   string
		offset [2]float64
	}{
		{"configured direction missing", [2]float64{10, 0}},
		{"no direction resolves", [2]float64{5, -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			def := &layout.BasicKey{Key: keycode.A, Mods: []layout.Modifier{layout.ModCtrl}}
			f.swipe(def, tt.offset)

			// No direction was recorded, so the tap release path runs:
			// the key was never pressed, but release and the co-mod
			// removal still fire.
			want := []string{"release 30", "mods 0 0 0 0"}
			if !opsEqual(f.keys.ops, want) {
				t.Errorf("ops = %v, want %v", f.keys.ops, want)
			}
		})
	}
}

func TestRepeatUpdatesReleaseDirection(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{
		Key:   keycode.J,
		East:  layout.ArrowAction{},
		North: layout.HideAction{},
	}
	// Claim east, then repeat north: hide ignores the repeat itself
	// but takes over the release effect.
	f.swipe(def, [2]float64{10, 0}, [2]float64{10, -10})

	want := []string{"press 106", "release 106"}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
	if f.notify.hides != 1 {
		t.Errorf("hides = %d, want 1", f.notify.hides)
	}
}

func TestRepeatIgnoresUnconfiguredDirection(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{Key: keycode.J, East: layout.HideAction{}}
	// The north repeat has no action, so east stays recorded.
	f.swipe(def, [2]float64{10, 0}, [2]float64{10, -10})

	if f.notify.hides != 1 {
		t.Errorf("hides = %d, want 1", f.notify.hides)
	}
	if len(f.keys.ops) != 0 {
		t.Errorf("ops = %v, want none", f.keys.ops)
	}
}

func TestModifierKeyTogglesOnTap(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{Key: keycode.LeftShift}

	f.tap(def)
	f.tap(def)

	// Two taps: held, then released. No scan-code traffic.
	want := []string{"mods 1 0 0 0", "mods 0 0 0 0"}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestLockKeyTogglesOnTap(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{Key: keycode.CapsLock}

	f.tap(def)
	f.tap(def)

	want := []string{"mods 0 0 2 0", "mods 0 0 0 0"}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestTrackpadScalesMotionPerAxis(t *testing.T) {
	f := newFixture(t)

	i := f.d.Begin(layout.PointerKey{})
	i.Move(8, -27)

	// Each axis gains by the cube root of its own cumulative offset:
	// 8*2*2 = 32 right, 27*2*3 = 162 up, negated back to screen
	// convention.
	want := []string{"move 32 -162"}
	if !opsEqual(f.ptr.ops, want) {
		t.Errorf("ptr ops = %v, want %v", f.ptr.ops, want)
	}
	if left, _ := f.state.ActiveLayers(); left != f.state.Layout().MouseLayer() {
		t.Errorf("left layer during drag = %d, want mouse layer %d", left, f.state.Layout().MouseLayer())
	}

	i.End()

	if left, _ := f.state.ActiveLayers(); left != 0 {
		t.Errorf("left layer after release = %d, want 0", left)
	}
	if f.notify.redraws != 2 {
		t.Errorf("redraws = %d, want 2", f.notify.redraws)
	}
}

func TestPointerButtonHeldForTouch(t *testing.T) {
	f := newFixture(t)
	f.tap(layout.PointerButtonKey{Button: pointer.ButtonLeft})

	want := []string{"press left", "release left"}
	if !opsEqual(f.ptr.ops, want) {
		t.Errorf("ptr ops = %v, want %v", f.ptr.ops, want)
	}
}

func TestCommandKeySpawnsOnRelease(t *testing.T) {
	f := newFixture(t)
	def := &layout.CommandKey{Command: layout.Command{Cmd: "htop", Label: "htop"}}

	i := f.d.Begin(def)
	if len(f.runner.cmds) != 0 {
		t.Fatalf("cmds before release = %v, want none", f.runner.cmds)
	}
	i.End()

	want := []string{"htop"}
	if !opsEqual(f.runner.cmds, want) {
		t.Errorf("cmds = %v, want %v", f.runner.cmds, want)
	}
}

func TestSwipeCommandSpawnsOnPress(t *testing.T) {
	f := newFixture(t)
	def := &layout.BasicKey{
		Key: keycode.G,
		North: layout.CommandAction{
			Command: layout.Command{Cmd: "grim", Args: []string{"-g"}, Label: "shot"},
		},
	}
	f.swipe(def, [2]float64{0, -10})

	want := []string{"grim -g"}
	if !opsEqual(f.runner.cmds, want) {
		t.Errorf("cmds = %v, want %v", f.runner.cmds, want)
	}
}

func TestRunnerFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.runner.err = errors.New("spawn failed")
	def := &layout.CommandKey{Command: layout.Command{Cmd: "nope", Label: "nope"}}

	f.tap(def)

	if len(f.runner.cmds) != 1 {
		t.Fatalf("cmds = %v, want 1 attempt", f.runner.cmds)
	}

	// The dispatcher keeps working after a failed spawn.
	f.tap(&layout.BasicKey{Key: keycode.A})
	want := []string{"press 30", "release 30"}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}

func TestKeyErrorsAreNotFatal(t *testing.T) {
	f := newFixture(t)
	f.keys.pressErr = errors.New("device gone")

	f.tap(&layout.BasicKey{Key: keycode.A})

	// Press fails, release still runs.
	want := []string{"press 30", "release 30"}
	if !opsEqual(f.keys.ops, want) {
		t.Errorf("ops = %v, want %v", f.keys.ops, want)
	}
}
