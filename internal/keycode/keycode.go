package keycode

import (
	"fmt"
	"strings"
)

// Code is a raw kernel input scan code, the unit exchanged with the
// virtual-device protocol clients. Code 0 (KEY_RESERVED) is unused.
type Code uint16

// Scan codes from the kernel input-event-codes table. Only the keys a
// layout can reference are named here; anything else can still travel
// through the system as a bare number.
const (
	Reserved   Code = 0
	Esc        Code = 1
	Num1       Code = 2
	Num2       Code = 3
	Num3       Code = 4
	Num4       Code = 5
	Num5       Code = 6
	Num6       Code = 7
	Num7       Code = 8
	Num8       Code = 9
	Num9       Code = 10
	Num0       Code = 11
	Minus      Code = 12
	Equal      Code = 13
	Backspace  Code = 14
	Tab        Code = 15
	Q          Code = 16
	W          Code = 17
	E          Code = 18
	R          Code = 19
	T          Code = 20
	Y          Code = 21
	U          Code = 22
	I          Code = 23
	O          Code = 24
	P          Code = 25
	LeftBrace  Code = 26
	RightBrace Code = 27
	Enter      Code = 28
	LeftCtrl   Code = 29
	A          Code = 30
	S          Code = 31
	D          Code = 32
	F          Code = 33
	G          Code = 34
	H          Code = 35
	J          Code = 36
	K          Code = 37
	L          Code = 38
	Semicolon  Code = 39
	Apostrophe Code = 40
	Grave      Code = 41
	LeftShift  Code = 42
	Backslash  Code = 43
	Z          Code = 44
	X          Code = 45
	C          Code = 46
	V          Code = 47
	B          Code = 48
	N          Code = 49
	M          Code = 50
	Comma      Code = 51
	Dot        Code = 52
	Slash      Code = 53
	RightShift Code = 54
	KPAsterisk Code = 55
	LeftAlt    Code = 56
	Space      Code = 57
	CapsLock   Code = 58
	F1         Code = 59
	F2         Code = 60
	F3         Code = 61
	F4         Code = 62
	F5         Code = 63
	F6         Code = 64
	F7         Code = 65
	F8         Code = 66
	F9         Code = 67
	F10        Code = 68
	NumLock    Code = 69
	ScrollLock Code = 70
	KP7        Code = 71
	KP8        Code = 72
	KP9        Code = 73
	KPMinus    Code = 74
	KP4        Code = 75
	KP5        Code = 76
	KP6        Code = 77
	KPPlus     Code = 78
	KP1        Code = 79
	KP2        Code = 80
	KP3        Code = 81
	KP0        Code = 82
	KPDot      Code = 83
	F11        Code = 87
	F12        Code = 88
	KPEnter    Code = 96
	RightCtrl  Code = 97
	KPSlash    Code = 98
	RightAlt   Code = 100
	Home       Code = 102
	Up         Code = 103
	PageUp     Code = 104
	Left       Code = 105
	Right      Code = 106
	End        Code = 107
	Down       Code = 108
	PageDown   Code = 109
	Insert     Code = 110
	Delete     Code = 111
	LeftMeta   Code = 125
	RightMeta  Code = 126
	Compose    Code = 127
)

// names maps each code to its canonical kernel KEY_* name, which is
// also the spelling layout files use.
var names = map[Code]string{
	Reserved:   "KEY_RESERVED",
	Esc:        "KEY_ESC",
	Num1:       "KEY_1",
	Num2:       "KEY_2",
	Num3:       "KEY_3",
	Num4:       "KEY_4",
	Num5:       "KEY_5",
	Num6:       "KEY_6",
	Num7:       "KEY_7",
	Num8:       "KEY_8",
	Num9:       "KEY_9",
	Num0:       "KEY_0",
	Minus:      "KEY_MINUS",
	Equal:      "KEY_EQUAL",
	Backspace:  "KEY_BACKSPACE",
	Tab:        "KEY_TAB",
	Q:          "KEY_Q",
	W:          "KEY_W",
	E:          "KEY_E",
	R:          "KEY_R",
	T:          "KEY_T",
	Y:          "KEY_Y",
	U:          "KEY_U",
	I:          "KEY_I",
	O:          "KEY_O",
	P:          "KEY_P",
	LeftBrace:  "KEY_LEFTBRACE",
	RightBrace: "KEY_RIGHTBRACE",
	Enter:      "KEY_ENTER",
	LeftCtrl:   "KEY_LEFTCTRL",
	A:          "KEY_A",
	S:          "KEY_S",
	D:          "KEY_D",
	F:          "KEY_F",
	G:          "KEY_G",
	H:          "KEY_H",
	J:          "KEY_J",
	K:          "KEY_K",
	L:          "KEY_L",
	Semicolon:  "KEY_SEMICOLON",
	Apostrophe: "KEY_APOSTROPHE",
	Grave:      "KEY_GRAVE",
	LeftShift:  "KEY_LEFTSHIFT",
	Backslash:  "KEY_BACKSLASH",
	Z:          "KEY_Z",
	X:          "KEY_X",
	C:          "KEY_C",
	V:          "KEY_V",
	B:          "KEY_B",
	N:          "KEY_N",
	M:          "KEY_M",
	Comma:      "KEY_COMMA",
	Dot:        "KEY_DOT",
	Slash:      "KEY_SLASH",
	RightShift: "KEY_RIGHTSHIFT",
	KPAsterisk: "KEY_KPASTERISK",
	LeftAlt:    "KEY_LEFTALT",
	Space:      "KEY_SPACE",
	CapsLock:   "KEY_CAPSLOCK",
	F1:         "KEY_F1",
	F2:         "KEY_F2",
	F3:         "KEY_F3",
	F4:         "KEY_F4",
	F5:         "KEY_F5",
	F6:         "KEY_F6",
	F7:         "KEY_F7",
	F8:         "KEY_F8",
	F9:         "KEY_F9",
	F10:        "KEY_F10",
	NumLock:    "KEY_NUMLOCK",
	ScrollLock: "KEY_SCROLLLOCK",
	KP7:        "KEY_KP7",
	KP8:        "KEY_KP8",
	KP9:        "KEY_KP9",
	KPMinus:    "KEY_KPMINUS",
	KP4:        "KEY_KP4",
	KP5:        "KEY_KP5",
	KP6:        "KEY_KP6",
	KPPlus:     "KEY_KPPLUS",
	KP1:        "KEY_KP1",
	KP2:        "KEY_KP2",
	KP3:        "KEY_KP3",
	KP0:        "KEY_KP0",
	KPDot:      "KEY_KPDOT",
	F11:        "KEY_F11",
	F12:        "KEY_F12",
	KPEnter:    "KEY_KPENTER",
	RightCtrl:  "KEY_RIGHTCTRL",
	KPSlash:    "KEY_KPSLASH",
	RightAlt:   "KEY_RIGHTALT",
	Home:       "KEY_HOME",
	Up:         "KEY_UP",
	PageUp:     "KEY_PAGEUP",
	Left:       "KEY_LEFT",
	Right:      "KEY_RIGHT",
	End:        "KEY_END",
	Down:       "KEY_DOWN",
	PageDown:   "KEY_PAGEDOWN",
	Insert:     "KEY_INSERT",
	Delete:     "KEY_DELETE",
	LeftMeta:   "KEY_LEFTMETA",
	RightMeta:  "KEY_RIGHTMETA",
	Compose:    "KEY_COMPOSE",
}

// byName is the reverse of names, keyed by uppercase KEY_* spelling.
var byName = func() map[string]Code {
	m := make(map[string]Code, len(names))
	for c, n := range names {
		m[n] = c
	}
	return m
}()

// String returns the canonical KEY_* name, or a numeric form for codes
// without one.
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("KEY_%d", c)
}

// FromName resolves a kernel KEY_* name (case-insensitive) to its code.
func FromName(name string) (Code, bool) {
	c, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	return c, ok
}
