package core

import (
	"image"
	"math"
	"unicode/utf8"
)

// Align anchors a drawn item relative to its position.
type Align int

const (
	AlignTopLeft Align = iota
	AlignTopCenter
	AlignTopRight
	AlignMiddleLeft
	AlignCenter
	AlignMiddleRight
	AlignBottomLeft
	AlignBottomCenter
	AlignBottomRight
)

// TopLeft returns the top-left corner of an item of size s anchored at p.
func (a Align) TopLeft(p Vec2, s SizeF) Vec2 {
	fx := float64(a%3) / 2
	fy := float64(a/3) / 2
	return Vec2{X: p.X - fx*s.W, Y: p.Y - fy*s.H}
}

// Canvas draws world-space shapes and text onto a Screen.
//
// Shapes go to a pixel layer with two pixels per cell (rendered with half
// blocks); text goes to a cell layer that is composed on top. Call Flush to
// write the layers into the screen.
type Canvas struct {
	screen *Screen
	world  SizeF
	pixels []Color // cols x rows*2, ColorDefault means empty
	text   []Cell  // cols x rows, Rune 0 means empty
}

// NewCanvas creates a canvas mapping a world of the given size onto screen.
func NewCanvas(screen *Screen, world SizeF) *Canvas {
	c := &Canvas{screen: screen, world: world}
	c.Clear()
	return c
}

// World returns the world size mapped onto the screen.
func (c *Canvas) World() SizeF {
	return c.world
}

// SetWorld changes the world size.
func (c *Canvas) SetWorld(world SizeF) {
	c.world = world
}

// Screen returns the underlying screen buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

func (c *Canvas) cols() int { return c.screen.Width() }
func (c *Canvas) rows() int { return c.screen.Height() }

// CellSize returns the world size of one character cell.
func (c *Canvas) CellSize() SizeF {
	if c.cols() == 0 || c.rows() == 0 {
		return SizeF{W: 1, H: 1}
	}
	return SizeF{W: c.world.W / float64(c.cols()), H: c.world.H / float64(c.rows())}
}

// PixelSize returns the world size of one half-block pixel.
func (c *Canvas) PixelSize() SizeF {
	cs := c.CellSize()
	return SizeF{W: cs.W, H: cs.H / 2}
}

// CellAt returns the cell containing world point p.
func (c *Canvas) CellAt(p Vec2) (col, row int) {
	cs := c.CellSize()
	return int(math.Floor(p.X / cs.W)), int(math.Floor(p.Y / cs.H))
}

// WorldAt returns the world position of the centre of a cell.
func (c *Canvas) WorldAt(col, row int) Vec2 {
	cs := c.CellSize()
	return Vec2{X: (float64(col) + 0.5) * cs.W, Y: (float64(row) + 0.5) * cs.H}
}

// TextSize returns the world size of a single line of plain text.
func (c *Canvas) TextSize(text string) SizeF {
	cs := c.CellSize()
	return SizeF{W: float64(utf8.RuneCountInString(text)) * cs.W, H: cs.H}
}

// MaskSize returns the world size of a mask drawn with Mask.
func (c *Canvas) MaskSize(m *image.Alpha) SizeF {
	if m == nil {
		return SizeF{}
	}
	ps := c.PixelSize()
	b := m.Bounds()
	return SizeF{W: float64(b.Dx()) * ps.W, H: float64(b.Dy()) * ps.H}
}

// Clear empties both layers, resizing them to the screen if needed.
func (c *Canvas) Clear() {
	n := c.cols() * c.rows()
	if len(c.text) != n {
		c.text = make([]Cell, n)
		c.pixels = make([]Color, n*2)
		return
	}
	clear(c.text)
	clear(c.pixels)
}

func (c *Canvas) setPixel(i, j int, col Color) {
	if i < 0 || i >= c.cols() || j < 0 || j >= c.rows()*2 {
		return
	}
	c.pixels[j*c.cols()+i] = col
}

func (c *Canvas) pixel(i, j int) Color {
	if i < 0 || i >= c.cols() || j < 0 || j >= c.rows()*2 {
		return ColorDefault
	}
	return c.pixels[j*c.cols()+i]
}

// span returns the pixel indices whose centres fall in [lo, hi).
// A non-empty range that covers no centre still yields the nearest pixel.
func span(lo, hi, size float64) (int, int) {
	a := int(math.Ceil(lo/size - 0.5))
	b := int(math.Ceil(hi/size-0.5)) - 1
	if a > b && hi > lo {
		a = int(math.Floor((lo + hi) / 2 / size))
		b = a
	}
	return a, b
}

// FillRect paints every pixel whose centre lies inside r.
func (c *Canvas) FillRect(r RectF, col Color) {
	if r.Empty() {
		return
	}
	ps := c.PixelSize()
	i0, i1 := span(r.X, r.Right(), ps.W)
	j0, j1 := span(r.Y, r.Bottom(), ps.H)
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			c.setPixel(i, j, col)
		}
	}
}

// FillCircle paints a disc. Tiny circles still cover their centre pixel.
func (c *Canvas) FillCircle(center Vec2, radius float64, col Color) {
	c.circle(center, radius, 0, col)
}

// StrokeCircle paints a ring of roughly one pixel thickness.
func (c *Canvas) StrokeCircle(center Vec2, radius float64, col Color) {
	ps := c.PixelSize()
	c.circle(center, radius, radius-math.Max(ps.W, ps.H), col)
}

func (c *Canvas) circle(center Vec2, outer, inner float64, col Color) {
	ps := c.PixelSize()
	i0, i1 := span(center.X-outer, center.X+outer, ps.W)
	j0, j1 := span(center.Y-outer, center.Y+outer, ps.H)
	painted := false
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			p := Vec2{X: (float64(i) + 0.5) * ps.W, Y: (float64(j) + 0.5) * ps.H}
			d := Distance(center, p)
			if d <= outer && d >= inner {
				c.setPixel(i, j, col)
				painted = true
			}
		}
	}
	if !painted && inner <= 0 {
		c.setPixel(int(math.Floor(center.X/ps.W)), int(math.Floor(center.Y/ps.H)), col)
	}
}

// Line paints a straight line between two world points.
func (c *Canvas) Line(a, b Vec2, col Color) {
	ps := c.PixelSize()
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X)/ps.W, math.Abs(b.Y-a.Y)/ps.H)))
	for s := 0; s <= steps; s++ {
		t := 0.0
		if steps > 0 {
			t = float64(s) / float64(steps)
		}
		p := Lerp(a, b, t)
		c.setPixel(int(math.Floor(p.X/ps.W)), int(math.Floor(p.Y/ps.H)), col)
	}
}

// Text writes a single line of text anchored at p.
func (c *Canvas) Text(p Vec2, text string, col Color, align Align) {
	cs := c.CellSize()
	tl := align.TopLeft(p, c.TextSize(text))
	x := int(math.Round(tl.X / cs.W))
	y := int(math.Round(tl.Y / cs.H))
	if y < 0 || y >= c.rows() {
		return
	}
	for _, r := range text {
		if x >= 0 && x < c.cols() {
			c.text[y*c.cols()+x] = Cell{Rune: r, FG: col}
		}
		x++
	}
}

// Mask paints the opaque pixels of m (alpha >= 50%) anchored at p,
// one mask pixel per canvas pixel.
func (c *Canvas) Mask(p Vec2, m *image.Alpha, col Color, align Align) {
	if m == nil {
		return
	}
	ps := c.PixelSize()
	tl := align.TopLeft(p, c.MaskSize(m))
	i0 := int(math.Round(tl.X / ps.W))
	j0 := int(math.Round(tl.Y / ps.H))
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.AlphaAt(x, y).A >= 128 {
				c.setPixel(i0+x-b.Min.X, j0+y-b.Min.Y, col)
			}
		}
	}
}

// Dim darkens everything drawn so far. Opacity 0 leaves the canvas as is,
// from 0.25 colours fade to gray and from 0.75 everything is blanked.
func (c *Canvas) Dim(opacity float64) {
	switch {
	case opacity >= 0.75:
		clear(c.pixels)
		clear(c.text)
	case opacity >= 0.25:
		for i, p := range c.pixels {
			c.pixels[i] = p.Dimmed()
		}
		for i, t := range c.text {
			c.text[i].FG = t.FG.Dimmed()
		}
	}
}

// Flush composes both layers into the screen.
func (c *Canvas) Flush() {
	c.screen.Clear()
	for row := 0; row < c.rows(); row++ {
		for col := 0; col < c.cols(); col++ {
			if t := c.text[row*c.cols()+col]; t.Rune != 0 {
				c.screen.SetCell(col, row, t)
				continue
			}
			top := c.pixel(col, row*2)
			bottom := c.pixel(col, row*2+1)
			switch {
			case top == ColorDefault && bottom == ColorDefault:
				// blank
			case top == bottom:
				c.screen.SetCell(col, row, Cell{Rune: '█', FG: top})
			case bottom == ColorDefault:
				c.screen.SetCell(col, row, Cell{Rune: '▀', FG: top})
			case top == ColorDefault:
				c.screen.SetCell(col, row, Cell{Rune: '▄', FG: bottom})
			default:
				c.screen.SetCell(col, row, Cell{Rune: '▀', FG: top, BG: bottom})
			}
		}
	}
}
