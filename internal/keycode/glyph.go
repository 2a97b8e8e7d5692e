package keycode

import "strings"

// glyphs holds the default US-layout display glyph for each code.
// Layouts can override any of these with an explicit label.
var glyphs = map[Code]string{
	Esc:        "⎋",
	Num1:       "1",
	Num2:       "2",
	Num3:       "3",
	Num4:       "4",
	Num5:       "5",
	Num6:       "6",
	Num7:       "7",
	Num8:       "8",
	Num9:       "9",
	Num0:       "0",
	Minus:      "-",
	Equal:      "=",
	Backspace:  "⌫",
	Tab:        "⇥",
	Q:          "q",
	W:          "w",
	E:          "e",
	R:          "r",
	T:          "t",
	Y:          "y",
	U:          "u",
	I:          "i",
	O:          "o",
	P:          "p",
	LeftBrace:  "[",
	RightBrace: "]",
	Enter:      "⏎",
	LeftCtrl:   "⌃",
	A:          "a",
	S:          "s",
	D:          "d",
	F:          "f",
	G:          "g",
	H:          "h",
	J:          "j",
	K:          "k",
	L:          "l",
	Semicolon:  ";",
	Apostrophe: "'",
	Grave:      "`",
	LeftShift:  "⇧",
	Backslash:  "\\",
	Z:          "z",
	X:          "x",
	C:          "c",
	V:          "v",
	B:          "b",
	N:          "n",
	M:          "m",
	Comma:      ",",
	Dot:        ".",
	Slash:      "/",
	RightShift: "⇧",
	KPAsterisk: "*",
	LeftAlt:    "⌥",
	Space:      "␣",
	CapsLock:   "⇪",
	NumLock:    "⇭",
	ScrollLock: "⤓",
	KPMinus:    "-",
	KPPlus:     "+",
	KPDot:      ".",
	KPEnter:    "⏎",
	RightCtrl:  "⌃",
	KPSlash:    "/",
	RightAlt:   "⌥",
	Home:       "⇱",
	Up:         "↑",
	PageUp:     "⇞",
	Left:       "←",
	Right:      "→",
	End:        "⇲",
	Down:       "↓",
	PageDown:   "⇟",
	Insert:     "⎀",
	Delete:     "⌦",
	LeftMeta:   "◆",
	RightMeta:  "◆",
}

// Glyph returns the default display glyph for the code. Codes without a
// dedicated glyph fall back to the lowercased KEY_* suffix.
func (c Code) Glyph() string {
	if g, ok := glyphs[c]; ok {
		return g
	}
	return strings.ToLower(strings.TrimPrefix(c.String(), "KEY_"))
}
