package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Collision is the outcome of one resolver step.
type Collision struct {
	Brick   *Brick // brick that takes the hit, nil if none was touched
	Bounced bool   // velocity changed during the step
}

// Resolve advances the ball by its velocity and resolves collisions
// against the paddle, the stage walls and the bricks.
//
// The ball is moved in a single step, so it may pass through thin
// obstacles at high speed. Among all bricks the ball overlaps, the one with
// the largest overlap area takes the hit (the first one wins ties); the
// union of all overlaps decides whether X or Y is inverted.
func Resolve(ball *Ball, paddle *Paddle, bricks []*Brick, stage core.SizeF, reflectOffset float64) Collision {
	ball.Move(ball.Vel)
	before := ball.Vel
	bounds := ball.Bounds()

	// The paddle bounces radially from a point below its centre, so the
	// angle depends on where the ball lands.
	if bounds.Intersects(paddle.Bounds()) {
		origin := paddle.Pos().Add(core.V(0, reflectOffset))
		ball.Vel = ball.Pos.Sub(origin).Normalize().Scale(ball.Vel.Len())
	}

	if (ball.Vel.X < 0 && ball.Pos.X < ball.Radius) ||
		(ball.Vel.X > 0 && ball.Pos.X > stage.W-ball.Radius) {
		ball.Vel.X = -ball.Vel.X
	}
	if ball.Vel.Y < 0 && ball.Pos.Y < ball.Radius {
		ball.Vel.Y = -ball.Vel.Y
	}

	var (
		hit     *Brick
		maxArea float64
		total   core.RectF
	)
	for _, b := range bricks {
		overlap := bounds.Intersect(b.Bounds())
		if overlap.Empty() {
			continue
		}
		if area := overlap.Area(); area > maxArea {
			maxArea = area
			hit = b
		}
		total = total.Union(overlap)
	}

	if hit != nil {
		if total.W > total.H {
			ball.Vel.Y = -ball.Vel.Y
		} else {
			ball.Vel.X = -ball.Vel.X
		}
	}

	return Collision{Brick: hit, Bounced: ball.Vel != before}
}
