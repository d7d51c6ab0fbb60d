package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// KeyMap defines the key bindings shown in the help footer. Quit,
// Screenshot and Help are handled by the program itself; the rest only
// describe what the screens react to.
type KeyMap struct {
	Move       key.Binding
	Select     key.Binding
	Pause      key.Binding
	Leave      key.Binding
	Debug      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Pause, k.Leave, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Select, k.Pause, k.Leave},
		{k.Debug, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move: key.NewBinding(
			key.WithKeys("left", "right", "a", "d"),
			key.WithHelp("mouse/←→", "move paddle"),
		),
		Select: key.NewBinding(
			key.WithKeys("up", "down", "enter"),
			key.WithHelp("↑↓/enter", "menu"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Leave: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "leave (paused)"),
		),
		Debug: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "debug"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// translateKey converts a Bubble Tea key message into the key events the
// screens receive. Pasted text yields one event per character.
func translateKey(msg tea.KeyMsg) []core.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []core.KeyEvent{core.Key(msg.String())}
		}
		events := make([]core.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, core.Char(r))
		}
		return events
	case tea.KeySpace:
		return []core.KeyEvent{core.Char(' ')}
	default:
		return []core.KeyEvent{core.Key(msg.String())}
	}
}

// translateButton maps a Bubble Tea mouse button to a pointer button.
// Wheel events have no equivalent and report false.
func translateButton(b tea.MouseButton) (core.MouseButton, bool) {
	switch b {
	case tea.MouseButtonNone:
		return core.MouseNone, true
	case tea.MouseButtonLeft:
		return core.MouseLeft, true
	case tea.MouseButtonMiddle:
		return core.MouseMiddle, true
	case tea.MouseButtonRight:
		return core.MouseRight, true
	default:
		return core.MouseNone, false
	}
}
