package backend

import (
	"fmt"
	"testing"

	"github.com/dshills/glidekbd/internal/keycode"
)

// fakeUinputKeyboard records key events as strings.
type fakeUinputKeyboard struct {
	ops []string
}

func (f *fakeUinputKeyboard) KeyDown(key int) error {
	f.ops = append(f.ops, fmt.Sprintf("down %d", key))
	return nil
}

func (f *fakeUinputKeyboard) KeyUp(key int) error {
	f.ops = append(f.ops, fmt.Sprintf("up %d", key))
	return nil
}

func (f *fakeUinputKeyboard) KeyPress(key int) error {
	f.ops = append(f.ops, fmt.Sprintf("press %d", key))
	return nil
}

func (f *fakeUinputKeyboard) Close() error { return nil }

// fakeUinputMouse records pointer events as strings.
type fakeUinputMouse struct {
	ops []string
}

func (f *fakeUinputMouse) Move(x, y int32) error {
	f.ops = append(f.ops, fmt.Sprintf("move %d %d", x, y))
	return nil
}

func (f *fakeUinputMouse) Wheel(horizontal bool, delta int32) error {
	f.ops = append(f.ops, fmt.Sprintf("wheel %t %d", horizontal, delta))
	return nil
}

func (f *fakeUinputMouse) LeftPress() error     { f.ops = append(f.ops, "leftpress"); return nil }
func (f *fakeUinputMouse) LeftRelease() error   { f.ops = append(f.ops, "leftrelease"); return nil }
func (f *fakeUinputMouse) RightPress() error    { f.ops = append(f.ops, "rightpress"); return nil }
func (f *fakeUinputMouse) RightRelease() error  { f.ops = append(f.ops, "rightrelease"); return nil }
func (f *fakeUinputMouse) MiddlePress() error   { f.ops = append(f.ops, "middlepress"); return nil }
func (f *fakeUinputMouse) MiddleRelease() error { f.ops = append(f.ops, "middlerelease"); return nil }
func (f *fakeUinputMouse) Close() error         { return nil }

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

func TestUinputSetModifiersDiffs(t *testing.T) {
	fake := &fakeUinputKeyboard{}
	k := &UinputKeyboard{device: fake}

	// Shift appears.
	if err := k.SetModifiers(keycode.BitShift, 0, 0, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}
	// Ctrl joins; Shift unchanged, so only Ctrl is touched.
	if err := k.SetModifiers(keycode.BitShift|keycode.BitCtrl, 0, 0, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}
	// Shift leaves, Ctrl stays.
	if err := k.SetModifiers(keycode.BitCtrl, 0, 0, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}
	// Everything clears.
	if err := k.SetModifiers(0, 0, 0, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}

	want := []string{
		"down 42",
		"down 29",
		"up 42",
		"up 29",
	}
	if !opsEqual(fake.ops, want) {
		t.Errorf("ops = %v, want %v", fake.ops, want)
	}
}

func TestUinputSetModifiersNoChangeIsSilent(t *testing.T) {
	fake := &fakeUinputKeyboard{}
	k := &UinputKeyboard{device: fake}

	if err := k.SetModifiers(keycode.BitAlt, 0, 0, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}
	if err := k.SetModifiers(keycode.BitAlt, 0, 0, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}

	want := []string{"down 56"}
	if !opsEqual(fake.ops, want) {
		t.Errorf("ops = %v, want %v", fake.ops, want)
	}
}

func TestUinputLockChangesTap(t *testing.T) {
	fake := &fakeUinputKeyboard{}
	k := &UinputKeyboard{device: fake}

	// Caps lock engages, then disengages: one tap each way.
	if err := k.SetModifiers(0, 0, keycode.BitCapsLock, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}
	if err := k.SetModifiers(0, 0, 0, 0); err != nil {
		t.Fatalf("SetModifiers() error = %v", err)
	}

	want := []string{"press 58", "press 58"}
	if !opsEqual(fake.ops, want) {
		t.Errorf("ops = %v, want %v", fake.ops, want)
	}
}

func TestUinputPressRelease(t *testing.T) {
	fake := &fakeUinputKeyboard{}
	k := &UinputKeyboard{device: fake}

	if err := k.Press(keycode.A); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	if err := k.Release(keycode.A); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	want := []string{"down 30", "up 30"}
	if !opsEqual(fake.ops, want) {
		t.Errorf("ops = %v, want %v", fake.ops, want)
	}
}

func TestUinputScrollConvertsToNotches(t *testing.T) {
	tests := []struct {
		name     string
		scroll   func(*UinputPointer) error
		expected string
	}{
		{"down one step", func(p *UinputPointer) error { return p.ScrollY(10) }, "wheel false -1"},
		{"up one step", func(p *UinputPointer) error { return p.ScrollY(-10) }, "wheel false 1"},
		{"right one step", func(p *UinputPointer) error { return p.ScrollX(10) }, "wheel true 1"},
		{"left one step", func(p *UinputPointer) error { return p.ScrollX(-10) }, "wheel true -1"},
		{"small amount still scrolls", func(p *UinputPointer) error { return p.ScrollY(3) }, "wheel false -1"},
		{"large amount multiplies", func(p *UinputPointer) error { return p.ScrollY(30) }, "wheel false -3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUinputMouse{}
			p := &UinputPointer{device: fake}

			if err := tt.scroll(p); err != nil {
				t.Fatalf("scroll error = %v", err)
			}
			want := []string{tt.expected}
			if !opsEqual(fake.ops, want) {
				t.Errorf("ops = %v, want %v", fake.ops, want)
			}
		})
	}
}
