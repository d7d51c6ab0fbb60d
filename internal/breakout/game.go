// Package breakout implements the gameplay rules: the ball, paddle and
// brick grid, the per-tick collision resolver, scoring and hit effects.
package breakout

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// State is the outcome of a session.
type State int

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Events reports what happened during one ball step.
type Events struct {
	Bounced   bool // the ball changed direction; play the hit sound
	Hit       bool // a brick was hit
	Destroyed bool // the hit brick was removed
	Points    int  // points awarded this step
	Ended     bool // the session ended this step
}

// Game holds the state of one gameplay session.
type Game struct {
	theme  *config.Theme
	ballCf config.Ball
	padCf  config.Paddle

	Ball   *Ball
	Paddle *Paddle
	Bricks []*Brick

	score     int
	combo     int
	destroyed int
	ticks     uint64
	state     State

	rings  []*HitRing
	scores []*HitScore
}

// New starts a session: a full grid, the paddle at the bottom centre and
// the ball at the stage centre heading down and right.
func New(cfg *config.Config) *Game {
	g := &Game{
		theme:  &cfg.Theme,
		ballCf: cfg.Ball,
		padCf:  cfg.Paddle,
	}
	stage := g.Stage()

	g.Paddle = NewPaddle(
		core.V(stage.W/2, stage.H-g.theme.BrickUnit),
		core.SizeF{W: cfg.Paddle.Width, H: cfg.Paddle.Height},
		cfg.Paddle.Lerp,
	)
	g.Ball = &Ball{
		Pos:    core.V(stage.W/2, stage.H/2),
		Vel:    core.V(1, 1).Normalize().Scale(cfg.Ball.Speed),
		Radius: cfg.Ball.Radius,
		Color:  g.theme.FirmnessColor(0),
	}
	g.Bricks = NewGrid(g.theme)
	return g
}

// Stage returns the world size of the play area.
func (g *Game) Stage() core.SizeF {
	return g.theme.ClientSize()
}

// Theme returns the theme the session was built with.
func (g *Game) Theme() *config.Theme {
	return g.theme
}

func (g *Game) Score() int           { return g.score }
func (g *Game) Combo() int           { return g.combo }
func (g *Game) State() State         { return g.state }
func (g *Game) Alive() bool          { return g.state == StatePlaying }
func (g *Game) Won() bool            { return g.state == StateWon }
func (g *Game) BricksDestroyed() int { return g.destroyed }
func (g *Game) Ticks() uint64        { return g.ticks }

// StepBall moves the ball one tick and applies the consequences. It does
// nothing once the session has ended.
func (g *Game) StepBall() Events {
	var ev Events
	if !g.Alive() {
		return ev
	}
	g.ticks++

	col := Resolve(g.Ball, g.Paddle, g.Bricks, g.Stage(), g.padCf.ReflectOffset)
	ev.Bounced = col.Bounced
	if col.Brick != nil {
		ev.Hit = true
		ev.Points, ev.Destroyed = g.hit(col.Brick)
	}

	if g.Ball.Pos.Y > g.Stage().H+g.theme.FallMargin {
		g.end(StateLost)
	}
	ev.Ended = !g.Alive()
	return ev
}

// hit damages a brick and updates combo and score.
func (g *Game) hit(b *Brick) (points int, destroyed bool) {
	color := g.theme.FirmnessColor(b.Firmness)
	if g.Ball.Color == color {
		g.combo++
	} else {
		g.combo = 0
		g.Ball.Color = color
		g.rings = append(g.rings, NewHitRing(g.Ball.Pos, g.Ball.Radius, color))
	}

	points = 10
	b.Firmness--
	if b.Firmness == 0 {
		g.removeBrick(b)
		g.destroyed++
		points += 5
		destroyed = true
		if len(g.Bricks) == 0 {
			g.end(StateWon)
		}
	}

	points += g.combo
	g.score += points
	g.scores = append(g.scores, NewHitScore(b.Center(), points, g.theme.FirmnessColor(b.Firmness+1)))
	return points, destroyed
}

func (g *Game) removeBrick(b *Brick) {
	if i := slices.Index(g.Bricks, b); i >= 0 {
		g.Bricks = slices.Delete(g.Bricks, i, i+1)
	}
}

// end finishes the session; only the first call has an effect.
func (g *Game) end(s State) {
	if g.state != StatePlaying {
		return
	}
	g.state = s
}

// UpdateEffects advances hit rings and hit scores, dropping faded ones.
func (g *Game) UpdateEffects() {
	g.rings = slices.DeleteFunc(g.rings, func(r *HitRing) bool { return !r.Update() })
	g.scores = slices.DeleteFunc(g.scores, func(s *HitScore) bool { return !s.Update() })
}

// EffectCount returns the number of live hit effects.
func (g *Game) EffectCount() int {
	return len(g.rings) + len(g.scores)
}

// Recenter puts the ball back at the stage centre.
func (g *Game) Recenter() {
	g.Ball.Pos = g.Stage().Vec().Scale(0.5)
}

// AimBall points the ball towards p at the debug speed.
func (g *Game) AimBall(p core.Vec2) {
	d := p.Sub(g.Ball.Pos)
	angle := math.Atan2(d.Y, d.X)
	g.Ball.Vel = core.V(math.Cos(angle), math.Sin(angle)).Scale(g.ballCf.DebugSpeed)
}

// PaddleRange returns the X range the paddle centre may be steered to with
// the keyboard.
func (g *Game) PaddleRange() (float64, float64) {
	half := g.Paddle.Size.W / 2
	return half, g.Stage().W - half
}

// NudgePaddle moves the paddle target by one keyboard step in dir (-1 or 1).
func (g *Game) NudgePaddle(dir float64) {
	lo, hi := g.PaddleRange()
	g.Paddle.Nudge(dir*g.padCf.KeyStep, lo, hi)
}

// Draw draws bricks, paddle, ball and the hit effects.
func (g *Game) Draw(c *core.Canvas) {
	for _, b := range g.Bricks {
		b.Draw(c, g.theme.FirmnessColor(b.Firmness))
	}
	g.Paddle.Draw(c)
	g.Ball.Draw(c)
	for _, r := range g.rings {
		r.Draw(c)
	}
	for _, s := range g.scores {
		s.Draw(c)
	}
}

// DrawDebug draws the ball's direction of travel.
func (g *Game) DrawDebug(c *core.Canvas) {
	dir := g.Ball.Vel.Normalize()
	origin := g.Ball.Pos.Add(dir.Scale(g.Ball.Radius))
	c.Line(origin, origin.Add(dir.Scale(g.theme.GridUnit*10)), core.ColorRed)
}
