package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.Default()
	return New(&cfg)
}

// aimAt places the ball just below a brick at (x, 100), moving up.
func aimAt(g *Game, x float64) {
	g.Ball.Pos = core.V(x+50, 140)
	g.Ball.Vel = core.V(0, -10)
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t)

	if len(g.Bricks) != 80 {
		t.Fatalf("got %d bricks, expected 80", len(g.Bricks))
	}
	if g.Bricks[0].Firmness != 4 || g.Bricks[79].Firmness != 1 {
		t.Errorf("unexpected firmness: first %d, last %d", g.Bricks[0].Firmness, g.Bricks[79].Firmness)
	}
	if g.Ball.Pos != core.V(525, 375) {
		t.Errorf("ball at %v, expected stage centre", g.Ball.Pos)
	}
	if math.Abs(g.Ball.Speed()-10) > 1e-9 {
		t.Errorf("ball speed = %v, expected 10", g.Ball.Speed())
	}
	if g.Ball.Color != core.ColorWhite {
		t.Errorf("ball colour = %v, expected white", g.Ball.Color)
	}
	if g.Paddle.Pos() != core.V(525, 725) {
		t.Errorf("paddle at %v", g.Paddle.Pos())
	}
	if !g.Alive() || g.Score() != 0 {
		t.Error("new game should be running with zero score")
	}
}

func TestHitScoringAndColour(t *testing.T) {
	g := newTestGame(t)
	target := brickAt(500, 100, 2)
	g.Bricks = []*Brick{target, brickAt(100, 400, 4)}

	aimAt(g, 500)
	ev := g.StepBall()

	if !ev.Hit || !ev.Bounced || ev.Destroyed {
		t.Fatalf("first hit events = %+v", ev)
	}
	if ev.Points != 10 || g.Score() != 10 {
		t.Errorf("first hit: points %d, score %d, expected 10", ev.Points, g.Score())
	}
	if g.Ball.Color != core.ColorBrightGreen || g.Combo() != 0 {
		t.Errorf("ball should turn lime with combo 0, got %v combo %d", g.Ball.Color, g.Combo())
	}
	if target.Firmness != 1 {
		t.Errorf("firmness = %d, expected 1", target.Firmness)
	}

	aimAt(g, 500)
	ev = g.StepBall()

	if !ev.Destroyed || ev.Points != 15 {
		t.Errorf("second hit events = %+v, expected destroyed for 15", ev)
	}
	if g.Score() != 25 {
		t.Errorf("score = %d, expected 25", g.Score())
	}
	if len(g.Bricks) != 1 || g.BricksDestroyed() != 1 {
		t.Errorf("brick should be removed, %d left", len(g.Bricks))
	}
	if g.Ball.Color != core.ColorCyan {
		t.Errorf("ball colour = %v, expected cyan", g.Ball.Color)
	}
}

func TestComboOnSameColour(t *testing.T) {
	g := newTestGame(t)
	g.Bricks = []*Brick{brickAt(200, 100, 3), brickAt(500, 100, 3), brickAt(800, 100, 3)}

	wantPoints := []int{10, 11, 12}
	wantCombo := []int{0, 1, 2}
	for i, x := range []float64{200, 500, 800} {
		aimAt(g, x)
		ev := g.StepBall()
		if ev.Points != wantPoints[i] || g.Combo() != wantCombo[i] {
			t.Errorf("hit %d: points %d combo %d, expected %d and %d", i, ev.Points, g.Combo(), wantPoints[i], wantCombo[i])
		}
	}
	if g.Score() != 33 {
		t.Errorf("score = %d, expected 33", g.Score())
	}

	// A different colour resets the combo.
	g.Bricks = append(g.Bricks, brickAt(500, 300, 4))
	g.Ball.Pos = core.V(550, 340)
	g.Ball.Vel = core.V(0, -10)
	ev := g.StepBall()
	if g.Combo() != 0 || ev.Points != 10 {
		t.Errorf("colour change: combo %d points %d, expected 0 and 10", g.Combo(), ev.Points)
	}
}

func TestLastBrickWinsOnce(t *testing.T) {
	g := newTestGame(t)
	g.Bricks = []*Brick{brickAt(500, 100, 1)}

	aimAt(g, 500)
	ev := g.StepBall()

	if !ev.Ended || g.State() != StateWon || !g.Won() {
		t.Fatalf("destroying the last brick should win, events %+v state %v", ev, g.State())
	}
	if g.Score() != 15 {
		t.Errorf("score = %d, expected 15", g.Score())
	}

	ticks := g.Ticks()
	pos := g.Ball.Pos
	ev = g.StepBall()
	if ev != (Events{}) {
		t.Errorf("ended game should not report events, got %+v", ev)
	}
	if g.Ticks() != ticks || g.Ball.Pos != pos {
		t.Error("ended game should not move the ball")
	}
}

func TestFallingBallLoses(t *testing.T) {
	g := newTestGame(t)
	g.Ball.Pos = core.V(100, 845)
	g.Ball.Vel = core.V(0, 10)

	ev := g.StepBall()

	if !ev.Ended || g.State() != StateLost {
		t.Errorf("ball below the stage should lose, events %+v state %v", ev, g.State())
	}
	if g.StepBall().Ended {
		t.Error("loss should be reported once")
	}
}

func TestEffectsFade(t *testing.T) {
	g := newTestGame(t)
	g.Bricks = []*Brick{brickAt(500, 100, 2), brickAt(100, 400, 4)}
	aimAt(g, 500)
	g.StepBall()

	if g.EffectCount() != 2 {
		t.Fatalf("EffectCount() = %d, expected a ring and a score", g.EffectCount())
	}
	for range 100 {
		g.UpdateEffects()
	}
	if g.EffectCount() != 0 {
		t.Errorf("effects should fade out, %d left", g.EffectCount())
	}
}

func TestPaddleLerp(t *testing.T) {
	p := NewPaddle(core.V(525, 725), core.SizeF{W: 120, H: 20}, 1.0/3)
	p.SetTarget(600)
	p.Update()

	if math.Abs(p.Pos().X-550) > 1e-9 || p.Pos().Y != 725 {
		t.Errorf("Pos() = %v, expected (550, 725)", p.Pos())
	}
	for range 100 {
		p.Update()
	}
	if math.Abs(p.Pos().X-600) > 1e-6 {
		t.Errorf("paddle should converge on the target, at %v", p.Pos())
	}

	p.SetPos(core.V(100, 725))
	if p.Target() != p.Pos() {
		t.Error("SetPos should reset the target")
	}
}

func TestNudgePaddleClamps(t *testing.T) {
	g := newTestGame(t)
	for range 50 {
		g.NudgePaddle(-1)
	}
	lo, _ := g.PaddleRange()
	if g.Paddle.Target().X != lo {
		t.Errorf("target = %v, expected clamp at %v", g.Paddle.Target().X, lo)
	}
}

func TestDebugHelpers(t *testing.T) {
	g := newTestGame(t)

	g.Ball.Move(core.V(40, -30))
	g.Recenter()
	if g.Ball.Pos != core.V(525, 375) {
		t.Errorf("Recenter() left ball at %v", g.Ball.Pos)
	}

	g.AimBall(core.V(525, 0))
	if math.Abs(g.Ball.Speed()-8) > 1e-9 || g.Ball.Vel.Y >= 0 {
		t.Errorf("AimBall() velocity = %v", g.Ball.Vel)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t)
		for i := range 3000 {
			if !g.Alive() {
				break
			}
			// Follow the ball with a wobble so the paddle angle varies.
			g.Paddle.SetTarget(g.Ball.Pos.X + float64(i%7-3)*10)
			g.StepBall()
			g.Paddle.Update()
			g.UpdateEffects()
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: score %d/%d tick %d/%d", snap1.Score, snap2.Score, snap1.Tick, snap2.Tick)
	}
	if snap1.Score == 0 {
		t.Error("a tracking paddle should score some points")
	}
}
