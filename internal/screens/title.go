package screens

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

const titleText = "BREAKOUT"

func init() {
	Register(KindTitle, func(m *Manager) (Screen, error) { return newTitle(m) })
}

// Title is the main menu.
type Title struct {
	Base
	m *Manager

	title, shadow Text
	play          *Button
	scores        *Button
	quit          *Button
	menu          *Menu

	transitioning bool
}

func newTitle(m *Manager) (*Title, error) {
	t := &Title{m: m}
	th := m.Theme()

	t.title = Text{Value: titleText, Color: th.Title(), Align: core.AlignTopCenter}
	t.shadow = Text{Value: titleText, Color: th.Shadow(), Align: core.AlignTopCenter}

	if m.Fonts != nil {
		fc := m.Config().Fonts
		f, err := m.Fonts.Get(fc.Family, fc.BannerSize)
		if err != nil {
			return nil, err
		}
		// Fall back to plain text when the banner does not fit the stage.
		if m.Host.MeasureString(titleText, f).W <= m.ClientSize().W {
			t.title.Font = f
			t.shadow.Font = f
		}
	}

	t.play = NewButton(m, "Play")
	t.scores = NewButton(m, "High Scores")
	t.quit = NewButton(m, "Quit")
	t.menu = NewMenu(t.play, t.scores, t.quit)
	return t, nil
}

func (t *Title) Kind() Kind { return KindTitle }

// Menu returns the title buttons.
func (t *Title) Menu() *Menu { return t.menu }

func (t *Title) OnAdd() {
	size := t.m.ClientSize()
	cw := size.W / 2
	offset := size.H / 5

	lift := t.liftOffset()
	t.shadow.Pos = core.V(cw, offset)
	t.title.Pos = core.V(cw, offset).Sub(lift)

	t.play.Center(core.V(cw, offset*2))
	t.scores.Center(core.V(cw, offset*3))
	t.quit.Center(core.V(cw, offset*4))

	t.m.AddFadeIn(nil)
}

// liftOffset is how far the title sits above its shadow: one banner pixel,
// or one cell for plain text.
func (t *Title) liftOffset() core.Vec2 {
	if t.title.Font != nil {
		mask := t.title.Font.Rasterize(titleText)
		s := t.m.Host.MeasureString(titleText, t.title.Font)
		if b := mask.Bounds(); b.Dx() > 0 && b.Dy() > 0 {
			return core.V(s.W/float64(b.Dx()), s.H/float64(b.Dy()))
		}
	}
	s := t.m.Host.MeasureString("M", nil)
	return core.V(s.W, s.H)
}

func (t *Title) MouseMove(ev core.MouseEvent) {
	if t.transitioning {
		return
	}
	t.menu.Hover(ev.Pos)
}

func (t *Title) MouseDown(ev core.MouseEvent) {
	if t.transitioning || ev.Button != core.MouseLeft {
		return
	}
	t.activate(t.menu.At(ev.Pos))
}

func (t *Title) KeyDown(ev core.KeyEvent) {
	if t.transitioning {
		return
	}
	t.activate(t.menu.Key(ev))
}

// activate starts the transition chosen by a button.
func (t *Title) activate(b *Button) {
	switch b {
	case t.play:
		t.transitionTo(KindBreakout)
	case t.scores:
		t.transitionTo(KindHighScore)
	case t.quit:
		t.transitioning = true
		t.m.AddFadeOut(t.m.Close)
	}
}

func (t *Title) transitionTo(k Kind) {
	t.transitioning = true
	t.m.AddFadeOut(func() {
		t.m.Remove(t)
		t.m.mustAdd(k)
	})
}

func (t *Title) Update() {
	if t.transitioning {
		return
	}
	t.menu.Update()
}

func (t *Title) Draw(c *core.Canvas) {
	t.shadow.Draw(c)
	t.title.Draw(c)
	t.menu.Draw(c)
}
