package screens

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

func init() {
	Register(KindPause, func(m *Manager) (Screen, error) { return newPause(m), nil })
}

// Pause dims the game and shows the pause text while paused. It lives in
// the stack alongside the gameplay screen that owns it.
type Pause struct {
	Base
	m      *Manager
	dimmer Dimmer
	paused bool
}

func newPause(m *Manager) *Pause {
	p := &Pause{m: m, dimmer: NewDimmer()}
	p.dimmer.Dim = false
	return p
}

func (p *Pause) Kind() Kind { return KindPause }

// Paused reports whether the game is paused.
func (p *Pause) Paused() bool { return p.paused }

// SetPaused pauses or resumes. Resuming clears the dimmer at once.
func (p *Pause) SetPaused(v bool) {
	p.paused = v
	p.dimmer.Dim = v
	if !v {
		p.dimmer.SetOpacity(0)
	}
}

func (p *Pause) Update() { p.dimmer.Update() }

func (p *Pause) Draw(c *core.Canvas) {
	if !p.paused {
		return
	}
	p.dimmer.Draw(c)
	drawLines(c, p.m.ClientSize().Vec().Scale(0.5), core.ColorCyan, "PAUSED", "", "Press Q to quit")
}
