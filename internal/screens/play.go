package screens

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func init() {
	Register(KindBreakout, func(m *Manager) (Screen, error) { return newBreakout(m), nil })
}

// Result is the outcome of a finished session.
type Result struct {
	Score    int
	Won      bool
	Bricks   int
	Duration time.Duration
}

// Breakout is the gameplay screen.
type Breakout struct {
	Base
	m       *Manager
	game    *breakout.Game
	pause   *Pause
	overlay *breakout.ScoreOverlay

	frozen        bool // until the opening fade completes
	transitioning bool
	captured      bool
	started       time.Time
	result        Result

	debug      bool
	dragging   bool
	aiming     bool
	dragOffset core.Vec2
}

func newBreakout(m *Manager) *Breakout {
	b := &Breakout{
		m:      m,
		game:   breakout.New(m.Config()),
		pause:  newPause(m),
		frozen: true,
	}
	measure := func(s string) core.SizeF { return m.Host.MeasureString(s, nil) }
	b.overlay = breakout.NewScoreOverlay(b.game.Stage(), m.Theme().Score(), measure)
	return b
}

func (b *Breakout) Kind() Kind { return KindBreakout }

// Game returns the running session.
func (b *Breakout) Game() *breakout.Game { return b.game }

// Paused reports whether the pause overlay is up.
func (b *Breakout) Paused() bool { return b.pause.Paused() }

// Frozen reports whether the ball is held before the opening fade ends.
func (b *Breakout) Frozen() bool { return b.frozen }

// Debug reports whether debug mode is on.
func (b *Breakout) Debug() bool { return b.debug }

// Result returns the session outcome; valid once the game has ended.
func (b *Breakout) Result() Result { return b.result }

func (b *Breakout) OnAdd() {
	b.m.Add(b.pause)
	b.m.AddFadeIn(func() {
		b.frozen = false
		b.started = b.m.Clock()
	})
	b.captureMouse()
}

func (b *Breakout) OnRemove() {
	b.m.Remove(b.pause)
}

func (b *Breakout) Deactivate() {
	if b.game.Alive() && !b.debug {
		b.setPaused(true)
	}
}

func (b *Breakout) captureMouse() {
	if b.captured {
		return
	}
	b.captured = true
	b.m.Host.CaptureMouse()
}

func (b *Breakout) releaseMouse() {
	if !b.captured {
		return
	}
	b.captured = false
	b.m.Host.ReleaseMouse()
}

func (b *Breakout) setPaused(v bool) {
	if b.pause.Paused() == v {
		return
	}
	if v {
		b.releaseMouse()
	} else {
		b.captureMouse()
	}
	b.pause.SetPaused(v)
}

func (b *Breakout) MouseDown(ev core.MouseEvent) {
	if !b.debug {
		return
	}
	ball := b.game.Ball
	if core.Distance(ev.Pos, ball.Pos) > ball.Radius {
		return
	}
	switch ev.Button {
	case core.MouseLeft:
		b.dragOffset = ev.Pos.Sub(ball.Pos)
		b.dragging = true
	case core.MouseRight:
		b.aiming = true
	}
}

func (b *Breakout) MouseMove(ev core.MouseEvent) {
	if !b.game.Alive() {
		return
	}
	if b.debug {
		if b.dragging {
			b.game.Ball.Pos = ev.Pos.Sub(b.dragOffset)
		} else if b.aiming {
			b.game.AimBall(ev.Pos)
		}
	}
	if b.pause.Paused() {
		return
	}
	b.game.Paddle.SetTarget(ev.Pos.X)
}

func (b *Breakout) MouseUp(core.MouseEvent) {
	b.dragging = false
	b.aiming = false
}

func (b *Breakout) KeyDown(ev core.KeyEvent) {
	if !b.game.Alive() || b.transitioning {
		return
	}

	switch {
	case ev.Is("p"):
		if b.debug {
			return
		}
		b.setPaused(!b.pause.Paused())
	case ev.Is("ctrl+d"):
		if !b.m.Config().Debug.Allow || b.pause.Paused() || b.frozen {
			return
		}
		b.debug = !b.debug
		if b.debug {
			b.releaseMouse()
		} else {
			b.captureMouse()
		}
		b.m.Logger.Debug("debug mode", "on", b.debug)
	case ev.Is("n"):
		if b.debug {
			b.stepBall()
		}
	case ev.Is("r"):
		if b.debug {
			b.game.Recenter()
		}
	case ev.Is("q"):
		if !b.pause.Paused() {
			return
		}
		b.transitioning = true
		b.frozen = true
		b.releaseMouse()
		b.m.AddFadeOut(func() {
			b.m.Remove(b)
			b.m.RemoveKind(KindGameOver)
			b.m.mustAdd(KindTitle)
		})
	case ev.Is("left", "a"):
		b.nudge(-1)
	case ev.Is("right", "d"):
		b.nudge(1)
	}
}

func (b *Breakout) nudge(dir float64) {
	if b.pause.Paused() || b.frozen {
		return
	}
	b.game.NudgePaddle(dir)
}

// stepBall advances the ball one tick, playing the hit sound on a bounce.
func (b *Breakout) stepBall() {
	ev := b.game.StepBall()
	if ev.Bounced && b.m.Sound != nil {
		b.m.Sound.Play(b.m.HitSound)
	}
	b.overlay.SetValue(b.game.Score())
	if ev.Ended {
		b.endGame()
	}
}

// endGame records the result and shows the game over screen.
func (b *Breakout) endGame() {
	b.releaseMouse()

	b.result = Result{
		Score:  b.game.Score(),
		Won:    b.game.Won(),
		Bricks: b.game.BricksDestroyed(),
	}
	if !b.started.IsZero() {
		b.result.Duration = b.m.Clock().Sub(b.started)
	}
	b.m.Logger.Info("session ended",
		"player", b.m.Player,
		"score", b.result.Score,
		"won", b.result.Won,
		"bricks", b.result.Bricks,
		"duration", b.result.Duration.Round(time.Second))

	if b.m.History != nil {
		_, err := b.m.History.SaveSession(storage.Session{
			Player:   b.m.Player,
			Score:    b.result.Score,
			Won:      b.result.Won,
			Bricks:   b.result.Bricks,
			Duration: b.result.Duration,
		})
		if err != nil {
			b.m.Logger.Warn("cannot record session", "err", err)
		}
	}

	b.m.mustAdd(KindGameOver)
}

func (b *Breakout) Update() {
	if b.pause.Paused() {
		return
	}

	b.game.UpdateEffects()
	b.overlay.Update(b.game.Paddle)

	if !b.game.Alive() || b.debug {
		return
	}
	if !b.frozen {
		b.stepBall()
	}
	b.game.Paddle.Update()
}

func (b *Breakout) Draw(c *core.Canvas) {
	b.game.Draw(c)
	b.overlay.Draw(c)
	if b.debug {
		b.game.DrawDebug(c)
	}
}
