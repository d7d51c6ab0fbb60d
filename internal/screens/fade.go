package screens

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// fadeInDelay holds the fade-in fully opaque for a moment so the new
// screen can lay itself out first.
const fadeInDelay = 200 * time.Millisecond

func init() {
	Register(KindFadeIn, func(m *Manager) (Screen, error) { return newFadeIn(m, nil), nil })
	Register(KindFadeOut, func(m *Manager) (Screen, error) { return newFadeOut(m, nil), nil })
}

// FadeIn starts opaque and clears, then removes itself and calls
// onComplete.
type FadeIn struct {
	Base
	m          *Manager
	created    time.Time
	dimmer     Dimmer
	onComplete func()
}

func newFadeIn(m *Manager, onComplete func()) *FadeIn {
	f := &FadeIn{
		m:          m,
		created:    m.Clock(),
		dimmer:     Dimmer{Dim: false, Strength: 1, Lerp: 0.1},
		onComplete: onComplete,
	}
	f.dimmer.SetOpacity(1)
	return f
}

func (f *FadeIn) Kind() Kind { return KindFadeIn }

// Opacity returns how much of the scene is still hidden.
func (f *FadeIn) Opacity() float64 { return f.dimmer.Opacity() }

func (f *FadeIn) Update() {
	if f.m.Clock().Sub(f.created) < fadeInDelay {
		return
	}
	f.dimmer.Update()
	if f.dimmer.Opacity() <= 0.05 {
		f.m.Remove(f)
		if f.onComplete != nil {
			f.onComplete()
		}
	}
}

func (f *FadeIn) Draw(c *core.Canvas) { f.dimmer.Draw(c) }

// FadeOut darkens the scene, then removes itself and calls onComplete.
type FadeOut struct {
	Base
	m          *Manager
	dimmer     Dimmer
	onComplete func()
}

func newFadeOut(m *Manager, onComplete func()) *FadeOut {
	return &FadeOut{
		m:          m,
		dimmer:     Dimmer{Dim: true, Strength: 1, Lerp: 0.1},
		onComplete: onComplete,
	}
}

func (f *FadeOut) Kind() Kind { return KindFadeOut }

// Opacity returns how much of the scene is hidden.
func (f *FadeOut) Opacity() float64 { return f.dimmer.Opacity() }

func (f *FadeOut) Update() {
	f.dimmer.Update()
	if f.dimmer.Opacity() >= 0.95 {
		f.m.Remove(f)
		if f.onComplete != nil {
			f.onComplete()
		}
	}
}

func (f *FadeOut) Draw(c *core.Canvas) { f.dimmer.Draw(c) }
