package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Ball is the ball in play. Position is its centre; velocity is per tick.
type Ball struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Color  core.Color
}

// Bounds returns the ball's bounding square.
func (b *Ball) Bounds() core.RectF {
	return core.RectAround(b.Pos, core.SizeF{W: b.Radius * 2, H: b.Radius * 2})
}

// Move translates the ball by offset.
func (b *Ball) Move(offset core.Vec2) {
	b.Pos = b.Pos.Add(offset)
}

// Speed returns the magnitude of the velocity.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// Draw draws the ball.
func (b *Ball) Draw(c *core.Canvas) {
	c.FillCircle(b.Pos, b.Radius, b.Color)
}

// Paddle is the player's paddle. Its position follows the target with
// linear interpolation; Y never changes after creation.
type Paddle struct {
	pos    core.Vec2
	target core.Vec2
	Size   core.SizeF
	Lerp   float64
	Color  core.Color
}

// NewPaddle creates a paddle centred at pos.
func NewPaddle(pos core.Vec2, size core.SizeF, lerp float64) *Paddle {
	return &Paddle{pos: pos, target: pos, Size: size, Lerp: lerp, Color: core.ColorCyan}
}

// Pos returns the current (smoothed) centre of the paddle.
func (p *Paddle) Pos() core.Vec2 {
	return p.pos
}

// Target returns the position the paddle is moving towards.
func (p *Paddle) Target() core.Vec2 {
	return p.target
}

// SetPos places the paddle immediately and resets its target.
func (p *Paddle) SetPos(pos core.Vec2) {
	p.pos = pos
	p.target = pos
}

// SetTarget sets the X coordinate the paddle moves towards.
func (p *Paddle) SetTarget(x float64) {
	p.target = core.Vec2{X: x, Y: p.pos.Y}
}

// Nudge shifts the target horizontally, keeping it inside [minX, maxX].
func (p *Paddle) Nudge(dx, minX, maxX float64) {
	p.SetTarget(core.ClampF(p.target.X+dx, minX, maxX))
}

// Update moves the paddle a fixed fraction of the way to its target.
func (p *Paddle) Update() {
	p.pos = core.Lerp(p.pos, p.target, p.Lerp)
}

// Bounds returns the paddle rectangle.
func (p *Paddle) Bounds() core.RectF {
	return core.RectAround(p.pos, p.Size)
}

// Draw draws the paddle.
func (p *Paddle) Draw(c *core.Canvas) {
	c.FillRect(p.Bounds(), p.Color)
}

// Brick is a brick in the grid. It is removed when its firmness reaches 0.
type Brick struct {
	Pos      core.Vec2 // top-left
	Size     core.SizeF
	Firmness int
}

// Bounds returns the brick rectangle.
func (b *Brick) Bounds() core.RectF {
	return core.RectF{X: b.Pos.X, Y: b.Pos.Y, W: b.Size.W, H: b.Size.H}
}

// Center returns the centre of the brick.
func (b *Brick) Center() core.Vec2 {
	return b.Bounds().Center()
}

// Draw draws the brick, leaving a one pixel gap on its right edge so
// neighbours of the same colour stay distinguishable.
func (b *Brick) Draw(c *core.Canvas, color core.Color) {
	r := b.Bounds()
	r.W -= c.PixelSize().W
	c.FillRect(r, color)
}
