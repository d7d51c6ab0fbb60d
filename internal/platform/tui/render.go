package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// palette maps core.Color to ANSI 256-color codes.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           lipgloss.Color("1"),
	core.ColorGreen:         lipgloss.Color("2"),
	core.ColorYellow:        lipgloss.Color("3"),
	core.ColorBlue:          lipgloss.Color("4"),
	core.ColorMagenta:       lipgloss.Color("5"),
	core.ColorCyan:          lipgloss.Color("6"),
	core.ColorWhite:         lipgloss.Color("7"),
	core.ColorBrightRed:     lipgloss.Color("9"),
	core.ColorBrightGreen:   lipgloss.Color("10"),
	core.ColorBrightYellow:  lipgloss.Color("11"),
	core.ColorBrightBlue:    lipgloss.Color("12"),
	core.ColorBrightMagenta: lipgloss.Color("13"),
	core.ColorBrightCyan:    lipgloss.Color("14"),
	core.ColorBrightWhite:   lipgloss.Color("15"),
	core.ColorOrange:        lipgloss.Color("208"),
	core.ColorGray:          lipgloss.Color("245"),
	core.ColorDarkGray:      lipgloss.Color("238"),
}

type styleKey struct {
	fg, bg core.Color
}

// Renderer turns screen buffers into styled strings. Styles are built once
// per colour pair. A Renderer is not safe for concurrent use; every
// program owns its own.
type Renderer struct {
	r      *lipgloss.Renderer
	styles map[styleKey]lipgloss.Style
}

// NewRenderer creates a renderer. A nil lipgloss renderer uses the default
// one bound to stdout; SSH sessions pass a renderer bound to their session.
func NewRenderer(r *lipgloss.Renderer) *Renderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Renderer{r: r, styles: make(map[styleKey]lipgloss.Style)}
}

func (rd *Renderer) style(k styleKey) lipgloss.Style {
	if s, ok := rd.styles[k]; ok {
		return s
	}
	s := rd.r.NewStyle()
	if c, ok := palette[k.fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := palette[k.bg]; ok {
		s = s.Background(c)
	}
	rd.styles[k] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func (rd *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			k := styleKey{fg: cell.FG, bg: cell.BG}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.FG != k.fg || cell.BG != k.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if k == (styleKey{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(rd.style(k).Render(run.String()))
		}
	}
	return sb.String()
}
