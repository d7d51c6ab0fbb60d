package breakout

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// fade returns the colour to draw at the given opacity, and whether
// anything should be drawn at all.
func fade(c core.Color, opacity float64) (core.Color, bool) {
	switch {
	case opacity <= 0:
		return c, false
	case opacity < 0.5:
		return c.Dimmed(), true
	default:
		return c, true
	}
}

// HitRing is an expanding ring marking the start of a new combo colour.
type HitRing struct {
	Pos     core.Vec2
	Radius  float64
	Color   core.Color
	Scale   float64
	Opacity float64
}

// NewHitRing creates a ring at the ball's position.
func NewHitRing(pos core.Vec2, radius float64, color core.Color) *HitRing {
	return &HitRing{Pos: pos, Radius: radius, Color: color, Scale: 1, Opacity: 1}
}

// Update grows the ring and reports whether it is still visible.
func (r *HitRing) Update() bool {
	r.Scale *= 1.05
	r.Scale *= 1.05
	r.Opacity = 1 - r.Scale/8
	return r.Opacity > 0
}

// Draw draws the ring.
func (r *HitRing) Draw(c *core.Canvas) {
	if col, ok := fade(r.Color, r.Opacity); ok {
		c.StrokeCircle(r.Pos, r.Radius*r.Scale, col)
	}
}

// HitScore is the floating number showing the points a hit earned.
type HitScore struct {
	Pos     core.Vec2
	Text    string
	Color   core.Color
	Scale   float64
	Opacity float64
}

// NewHitScore creates a hit score at a brick's centre.
func NewHitScore(pos core.Vec2, points int, color core.Color) *HitScore {
	return &HitScore{Pos: pos, Text: strconv.Itoa(points), Color: color, Scale: 1, Opacity: 1}
}

// Update grows the text and reports whether it is still visible.
func (s *HitScore) Update() bool {
	s.Scale *= 1.05
	s.Opacity = core.ClampF(1-s.Scale/3, 0, 1)
	return s.Opacity > 0
}

// Draw draws the text. Terminal text cannot scale, so growth is shown as
// the text drifting upwards.
func (s *HitScore) Draw(c *core.Canvas) {
	if col, ok := fade(s.Color, s.Opacity); ok {
		lift := (s.Scale - 1) * c.CellSize().H
		c.Text(s.Pos.Sub(core.V(0, lift)), s.Text, col, core.AlignCenter)
	}
}

// ScoreOverlay shows the score in a bottom corner of the stage, moving to
// the other corner whenever the paddle comes close.
type ScoreOverlay struct {
	value   int
	text    string
	pos     core.Vec2
	align   core.Align
	stage   core.SizeF
	color   core.Color
	measure func(string) core.SizeF
}

const overlayMargin = 10

// NewScoreOverlay creates an overlay showing a score of 0 on the left.
func NewScoreOverlay(stage core.SizeF, color core.Color, measure func(string) core.SizeF) *ScoreOverlay {
	o := &ScoreOverlay{stage: stage, color: color, measure: measure}
	o.SetValue(0)
	o.positionLeft()
	return o
}

// Value returns the displayed score.
func (o *ScoreOverlay) Value() int {
	return o.value
}

// SetValue changes the displayed score.
func (o *ScoreOverlay) SetValue(v int) {
	o.value = v
	o.text = fmt.Sprintf("Score: %d", v)
}

// Text returns the displayed text.
func (o *ScoreOverlay) Text() string {
	return o.text
}

// OnRight reports whether the overlay is in the bottom-right corner.
func (o *ScoreOverlay) OnRight() bool {
	return o.align == core.AlignBottomRight
}

func (o *ScoreOverlay) positionLeft() {
	o.pos = core.V(overlayMargin, o.stage.H-overlayMargin)
	o.align = core.AlignBottomLeft
}

func (o *ScoreOverlay) positionRight() {
	o.pos = core.V(o.stage.W-overlayMargin, o.stage.H-overlayMargin)
	o.align = core.AlignBottomRight
}

// Update moves the overlay away from the paddle.
func (o *ScoreOverlay) Update(paddle *Paddle) {
	w := o.measure(o.text).W
	centerX := o.stage.W / 2
	b := paddle.Bounds()

	if o.pos.X < centerX && b.X < o.pos.X+w+overlayMargin {
		o.positionRight()
	} else if o.pos.X > centerX && b.Right() > o.pos.X-w-overlayMargin {
		o.positionLeft()
	}
}

// Draw draws the score text.
func (o *ScoreOverlay) Draw(c *core.Canvas) {
	c.Text(o.pos, o.text, o.color, o.align)
}
