package screens

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func init() {
	Register(KindHighScore, func(m *Manager) (Screen, error) { return newHighScores(m), nil })
}

// HighScoreScreen lists the stored high scores with a button back to the title.
type HighScoreScreen struct {
	Base
	m    *Manager
	back *Button
	menu *Menu

	transitioning bool
}

func newHighScores(m *Manager) *HighScoreScreen {
	h := &HighScoreScreen{m: m, back: NewButton(m, "Back")}
	h.menu = NewMenu(h.back)

	size := m.ClientSize()
	h.back.Pos = core.V(size.W/2-h.back.Size.W/2, size.H-20-h.back.Size.H)
	return h
}

func (h *HighScoreScreen) Kind() Kind { return KindHighScore }

func (h *HighScoreScreen) OnAdd() { h.m.AddFadeIn(nil) }

func (h *HighScoreScreen) MouseMove(ev core.MouseEvent) {
	if h.transitioning {
		return
	}
	h.menu.Hover(ev.Pos)
}

func (h *HighScoreScreen) MouseDown(ev core.MouseEvent) {
	if h.transitioning || ev.Button != core.MouseLeft {
		return
	}
	if h.back.Contains(ev.Pos) {
		h.goBack()
	}
}

func (h *HighScoreScreen) KeyDown(ev core.KeyEvent) {
	if h.transitioning {
		return
	}
	if ev.Is("esc", "backspace", "q", "enter", "space") {
		h.goBack()
		return
	}
	h.menu.Key(ev)
}

func (h *HighScoreScreen) goBack() {
	h.transitioning = true
	h.m.AddFadeOut(func() {
		h.m.Remove(h)
		h.m.mustAdd(KindTitle)
	})
}

func (h *HighScoreScreen) Update() {
	if h.transitioning {
		return
	}
	h.menu.Update()
}

// Lines returns the table rows as drawn.
func (h *HighScoreScreen) Lines() []string {
	if h.m.Scores == nil {
		return []string{"No high scores yet"}
	}
	entries := h.m.Scores.Entries()
	if len(entries) == 0 {
		return []string{"No high scores yet"}
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. %-15s %7d  %s", i+1, e.Name, e.Score, e.Time.Format("2006-01-02"))
	}
	return lines
}

func (h *HighScoreScreen) Draw(c *core.Canvas) {
	th := h.m.Theme()
	size := h.m.ClientSize()

	c.Text(core.V(size.W/2, 20), "HIGH SCORES", th.Title(), core.AlignTopCenter)

	row := c.CellSize().H
	top := size.H / 5
	for i, line := range h.Lines() {
		col := th.Text()
		if i == 0 {
			col = th.Score()
		}
		c.Text(core.V(size.W/2, top+float64(i)*row*1.5), line, col, core.AlignTopCenter)
	}

	h.menu.Draw(c)
}
