package screens

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/highscore"
)

// gameOverInputDelay is the number of ticks key presses are ignored for,
// so a key held at the end of play does not skip the screen.
const gameOverInputDelay = 30

func init() {
	Register(KindGameOver, func(m *Manager) (Screen, error) {
		var r Result
		if b, ok := m.Get(KindBreakout).(*Breakout); ok {
			r = b.Result()
		}
		return newGameOver(m, r), nil
	})
}

// GameOver is shown over the finished game. For a high score it asks for
// a name; otherwise any key continues to the high-score table.
type GameOver struct {
	Base
	m      *Manager
	result Result
	dimmer Dimmer

	highScore     bool
	name          []rune
	ticks         int
	transitioning bool
}

func newGameOver(m *Manager, r Result) *GameOver {
	return &GameOver{
		m:         m,
		result:    r,
		dimmer:    NewDimmer(),
		highScore: m.Scores != nil && m.Scores.IsHighScore(r.Score),
	}
}

func (g *GameOver) Kind() Kind { return KindGameOver }

// HighScore reports whether the screen is asking for a name.
func (g *GameOver) HighScore() bool { return g.highScore }

// Name returns the name typed so far.
func (g *GameOver) Name() string { return string(g.name) }

func (g *GameOver) Update() {
	g.dimmer.Update()
	g.ticks++
}

func (g *GameOver) KeyDown(ev core.KeyEvent) {
	if g.transitioning || g.ticks < gameOverInputDelay {
		return
	}
	if !g.highScore {
		g.finish()
		return
	}

	switch {
	case ev.Is("enter"):
		g.submit()
	case ev.Is("backspace"):
		if len(g.name) > 0 {
			g.name = g.name[:len(g.name)-1]
		}
	case ev.Printable():
		if len(g.name) < highscore.MaxNameLen {
			g.name = append(g.name, ev.Rune)
		}
	}
}

func (g *GameOver) submit() {
	name := strings.TrimSpace(string(g.name))
	if name == "" {
		name = g.m.Player
	}
	_, err := g.m.Scores.Add(highscore.Entry{
		Time:  g.m.Clock(),
		Score: g.result.Score,
		Name:  name,
	})
	if err != nil {
		g.m.Logger.Error("cannot save high score", "err", err)
	}
	g.finish()
}

func (g *GameOver) finish() {
	g.transitioning = true
	g.m.AddFadeOut(func() {
		g.m.RemoveKind(KindBreakout)
		g.m.Remove(g)
		g.m.mustAdd(KindHighScore)
	})
}

func (g *GameOver) Draw(c *core.Canvas) {
	th := g.m.Theme()
	center := g.m.ClientSize().Vec().Scale(0.5)
	row := c.CellSize().H

	g.dimmer.Draw(c)
	c.Text(center, "GAME OVER!", core.ColorMagenta, core.AlignCenter)

	lines := []string{fmt.Sprintf("Score: %d", g.result.Score)}
	if g.result.Won {
		lines = append(lines, "All bricks cleared!")
	}
	lines = append(lines, "")
	if g.highScore {
		lines = append(lines, "New high score! Enter your name:")
	} else {
		lines = append(lines, "Press any key")
	}
	for i, line := range lines {
		c.Text(center.Add(core.V(0, float64(i+2)*row)), line, th.Text(), core.AlignCenter)
	}

	if g.highScore {
		field := string(g.name)
		if !g.transitioning {
			field += "_"
		}
		c.Text(center.Add(core.V(0, float64(len(lines)+2)*row)), field, th.Hover(), core.AlignCenter)
	}
}
