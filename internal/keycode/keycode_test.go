package keycode

import "testing"

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Code
		ok   bool
	}{
		{"letter", "KEY_A", A, true},
		{"digit", "KEY_1", Num1, true},
		{"lowercase accepted", "key_enter", Enter, true},
		{"surrounding space", "  KEY_SPACE ", Space, true},
		{"arrow", "KEY_UP", Up, true},
		{"unknown", "KEY_BOGUS", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromName(tt.in)
			if ok != tt.ok {
				t.Fatalf("FromName(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("FromName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := A.String(); got != "KEY_A" {
		t.Errorf("A.String() = %q, want %q", got, "KEY_A")
	}
	if got := Code(999).String(); got != "KEY_999" {
		t.Errorf("Code(999).String() = %q, want %q", got, "KEY_999")
	}
}

func TestStringFromNameRoundTrip(t *testing.T) {
	for c, name := range names {
		got, ok := FromName(name)
		if !ok || got != c {
			t.Errorf("FromName(%q) = %v, %v, want %v, true", name, got, ok, c)
		}
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want Class
	}{
		{"left shift", LeftShift, ClassModifier},
		{"right meta", RightMeta, ClassModifier},
		{"capslock", CapsLock, ClassLock},
		{"scrolllock", ScrollLock, ClassLock},
		{"letter", A, ClassNormal},
		{"enter", Enter, ClassNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.Class(); got != tt.want {
				t.Errorf("%v.Class() = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestModifierBit(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want uint32
		ok   bool
	}{
		{"left shift", LeftShift, BitShift, true},
		{"right shift shares bit", RightShift, BitShift, true},
		{"left ctrl", LeftCtrl, BitCtrl, true},
		{"left alt", LeftAlt, BitAlt, true},
		{"meta distinct from ctrl", LeftMeta, BitMeta, true},
		{"normal key has none", A, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.code.ModifierBit()
			if ok != tt.ok || got != tt.want {
				t.Errorf("%v.ModifierBit() = %d, %v, want %d, %v", tt.code, got, ok, tt.want, tt.ok)
			}
		})
	}

	if BitMeta == BitCtrl {
		t.Error("meta and ctrl must map to distinct protocol bits")
	}
}

func TestLockBit(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want uint32
		ok   bool
	}{
		{"caps", CapsLock, BitCapsLock, true},
		{"num", NumLock, BitNumLock, true},
		{"scroll", ScrollLock, BitScrollLock, true},
		{"modifier has none", LeftShift, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.code.LockBit()
			if ok != tt.ok || got != tt.want {
				t.Errorf("%v.LockBit() = %d, %v, want %d, %v", tt.code, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want string
	}{
		{"letter", A, "a"},
		{"digit", Num9, "9"},
		{"enter symbol", Enter, "⏎"},
		{"fallback uses key name", Compose, "compose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.Glyph(); got != tt.want {
				t.Errorf("%v.Glyph() = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}
