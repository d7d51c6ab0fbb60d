package screens

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/fonts"
)

// Dimmer is an overlay whose opacity eases towards Strength while Dim is
// set and towards zero otherwise.
type Dimmer struct {
	Dim      bool
	Strength float64
	Lerp     float64
	opacity  float64
}

// NewDimmer returns a half-strength dimmer that fades in slowly.
func NewDimmer() Dimmer {
	return Dimmer{Dim: true, Strength: 0.5, Lerp: 0.03}
}

// Opacity returns the current opacity.
func (d *Dimmer) Opacity() float64 {
	return d.opacity
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (d *Dimmer) SetOpacity(v float64) {
	d.opacity = core.ClampF(v, 0, 1)
}

// Update eases the opacity one step.
func (d *Dimmer) Update() {
	target := 0.0
	if d.Dim {
		target = d.Strength
	}
	d.SetOpacity(d.opacity + (target-d.opacity)*d.Lerp)
}

// Draw dims everything drawn before it.
func (d *Dimmer) Draw(c *core.Canvas) {
	c.Dim(d.opacity)
}

// Text is a positioned line of text. With a Font it is drawn as a
// rasterized banner, otherwise as terminal text.
type Text struct {
	Value string
	Font  *fonts.Font
	Color core.Color
	Pos   core.Vec2
	Align core.Align
}

// Draw draws the text.
func (t *Text) Draw(c *core.Canvas) {
	if t.Font != nil {
		c.Mask(t.Pos, t.Font.Rasterize(t.Value), t.Color, t.Align)
		return
	}
	c.Text(t.Pos, t.Value, t.Color, t.Align)
}

// drawLines draws lines of terminal text centred on p, one row apart.
func drawLines(c *core.Canvas, p core.Vec2, col core.Color, lines ...string) {
	h := c.CellSize().H
	top := p.Y - float64(len(lines)-1)*h/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		c.Text(core.V(p.X, top+float64(i)*h), line, col, core.AlignCenter)
	}
}

// Button is a text button with a hover state. Hovering lifts the label off
// its shadow.
type Button struct {
	Label  string
	Pos    core.Vec2 // top-left
	Size   core.SizeF
	Color  core.Color
	Shadow core.Color
	Hover  bool

	transition float64
}

// NewButton creates a button sized to its label.
func NewButton(m *Manager, label string) *Button {
	th := m.Theme()
	return &Button{
		Label:  label,
		Size:   m.Host.MeasureString(label, nil),
		Color:  th.Hover(),
		Shadow: th.Shadow(),
	}
}

// Center places the button centred on p.
func (b *Button) Center(p core.Vec2) {
	b.Pos = core.AlignCenter.TopLeft(p, b.Size)
}

// Bounds returns the button rectangle.
func (b *Button) Bounds() core.RectF {
	return core.NewRectF(b.Pos.X, b.Pos.Y, b.Size.W, b.Size.H)
}

// Contains reports whether p is on the button.
func (b *Button) Contains(p core.Vec2) bool {
	return b.Bounds().Contains(p)
}

// Transition returns the hover animation progress in [0, 1].
func (b *Button) Transition() float64 {
	return b.transition
}

// Update eases the hover transition.
func (b *Button) Update() {
	target := 0.0
	if b.Hover {
		target = 1
	}
	b.transition += (target - b.transition) * 0.3
}

// Draw draws the shadow and the label lifted by the transition.
func (b *Button) Draw(c *core.Canvas) {
	cs := c.CellSize()
	c.Text(b.Pos, b.Label, b.Shadow, core.AlignTopLeft)
	lift := core.V(cs.W, cs.H).Scale(b.transition)
	c.Text(b.Pos.Sub(lift), b.Label, b.Color, core.AlignTopLeft)
}

// Menu is a column of buttons driven by the pointer or the arrow keys.
type Menu struct {
	Buttons  []*Button
	selected int // -1 when nothing is selected
}

// NewMenu creates a menu with nothing selected.
func NewMenu(buttons ...*Button) *Menu {
	return &Menu{Buttons: buttons, selected: -1}
}

// Selected returns the selected button, or nil.
func (m *Menu) Selected() *Button {
	if m.selected < 0 || m.selected >= len(m.Buttons) {
		return nil
	}
	return m.Buttons[m.selected]
}

// Hover selects the button under p, if any.
func (m *Menu) Hover(p core.Vec2) {
	m.selected = -1
	for i, b := range m.Buttons {
		b.Hover = b.Contains(p)
		if b.Hover {
			m.selected = i
		}
	}
}

// At returns the button under p, or nil.
func (m *Menu) At(p core.Vec2) *Button {
	for _, b := range m.Buttons {
		if b.Contains(p) {
			return b
		}
	}
	return nil
}

// Key moves the selection with up and down and returns the selected button
// when enter or space is pressed.
func (m *Menu) Key(ev core.KeyEvent) *Button {
	n := len(m.Buttons)
	if n == 0 {
		return nil
	}
	switch {
	case ev.Is("up", "k", "shift+tab"):
		if m.selected < 0 {
			m.selected = n - 1
		} else {
			m.selected = (m.selected + n - 1) % n
		}
	case ev.Is("down", "j", "tab"):
		m.selected = (m.selected + 1) % n
	case ev.Is("enter", "space"):
		return m.Selected()
	default:
		return nil
	}
	for i, b := range m.Buttons {
		b.Hover = i == m.selected
	}
	return nil
}

// Update advances every button's hover transition.
func (m *Menu) Update() {
	for _, b := range m.Buttons {
		b.Update()
	}
}

// Draw draws every button.
func (m *Menu) Draw(c *core.Canvas) {
	for _, b := range m.Buttons {
		b.Draw(c)
	}
}
