// Package screens implements the screen stack that drives the game: the
// title menu, gameplay with its pause overlay, game over, the high-score
// table and the fade transitions between them.
package screens

import "github.com/vovakirdan/tui-breakout/internal/core"

// Kind identifies a screen variant.
type Kind int

const (
	KindTitle Kind = iota
	KindBreakout
	KindPause
	KindGameOver
	KindHighScore
	KindFadeIn
	KindFadeOut
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindBreakout:
		return "breakout"
	case KindPause:
		return "pause"
	case KindGameOver:
		return "game-over"
	case KindHighScore:
		return "high-score"
	case KindFadeIn:
		return "fade-in"
	case KindFadeOut:
		return "fade-out"
	default:
		return "unknown"
	}
}

// Screen is one entry of the stack. Every hook runs on the game loop and
// may add or remove screens, including itself.
type Screen interface {
	Kind() Kind

	// OnAdd runs right after the screen joins the stack.
	OnAdd()
	// OnRemove runs right after the screen leaves the stack.
	OnRemove()

	Update()
	Draw(c *core.Canvas)

	KeyDown(ev core.KeyEvent)
	MouseMove(ev core.MouseEvent)
	MouseDown(ev core.MouseEvent)
	MouseUp(ev core.MouseEvent)

	// Deactivate is called when the host loses input focus.
	Deactivate()
}

// Base provides no-op hooks for screens to embed.
type Base struct{}

func (Base) OnAdd() {}
func (Base) OnRemove() {}
func (Base) Update() {}
func (Base) Draw(*core.Canvas) {}
func (Base) KeyDown(core.KeyEvent) {}
func (Base) MouseMove(core.MouseEvent) {}
func (Base) MouseDown(core.MouseEvent) {}
func (Base) MouseUp(core.MouseEvent) {}
func (Base) Deactivate() {}
