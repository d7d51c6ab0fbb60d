package core

import "strings"

// KeyEvent is a key press delivered to screens.
//
// Key is the normalized key name: lower-case letters ("q"), named keys
// ("enter", "esc", "left", "backspace", "space") or modifier chords
// ("ctrl+d"). Rune holds the typed character, preserving case, for
// printable keys and is 0 otherwise.
type KeyEvent struct {
	Key  string
	Rune rune
}

// Key builds a KeyEvent for a named key with no printable rune.
func Key(name string) KeyEvent {
	return KeyEvent{Key: name}
}

// Char builds a KeyEvent for a typed character.
func Char(r rune) KeyEvent {
	if r == ' ' {
		return KeyEvent{Key: "space", Rune: r}
	}
	return KeyEvent{Key: strings.ToLower(string(r)), Rune: r}
}

// Is reports whether the event matches any of the given key names.
func (k KeyEvent) Is(names ...string) bool {
	for _, n := range names {
		if k.Key == n {
			return true
		}
	}
	return false
}

// Ctrl reports whether the key was pressed with the control modifier.
func (k KeyEvent) Ctrl() bool {
	return strings.HasPrefix(k.Key, "ctrl+")
}

// Printable reports whether the event carries a typed character.
func (k KeyEvent) Printable() bool {
	return k.Rune != 0 && !k.Ctrl()
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

// String returns the button name.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	default:
		return "none"
	}
}

// MouseEvent is a pointer event in world coordinates.
type MouseEvent struct {
	Pos    Vec2
	Button MouseButton
}
