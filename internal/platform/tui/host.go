package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/fonts"
)

// Host adapts a terminal canvas to the surface the screens run in.
// Requests that need the Bubble Tea runtime are queued as commands and
// collected by the model after each dispatch.
type Host struct {
	canvas   *core.Canvas
	captured bool
	closed   bool
	pending  []tea.Cmd
}

// NewHost creates a host drawing onto canvas.
func NewHost(canvas *core.Canvas) *Host {
	return &Host{canvas: canvas}
}

// ClientSize returns the world size mapped onto the terminal.
func (h *Host) ClientSize() core.SizeF {
	return h.canvas.World()
}

// SetClientSize changes the world size mapped onto the terminal.
func (h *Host) SetClientSize(size core.SizeF) {
	h.canvas.SetWorld(size)
}

// MeasureString returns the world size text occupies when drawn as plain
// text, or as a mask rasterized with f.
func (h *Host) MeasureString(text string, f *fonts.Font) core.SizeF {
	if f == nil {
		return h.canvas.TextSize(text)
	}
	return h.canvas.MaskSize(f.Rasterize(text))
}

// CaptureMouse confines pointer events to the client area.
func (h *Host) CaptureMouse() {
	if h.captured {
		return
	}
	h.captured = true
	h.pending = append(h.pending, tea.EnableMouseAllMotion)
}

// ReleaseMouse stops confining pointer events.
func (h *Host) ReleaseMouse() {
	h.captured = false
}

// Captured reports whether the pointer is confined.
func (h *Host) Captured() bool {
	return h.captured
}

// Close asks the program to quit once the current dispatch ends.
func (h *Host) Close() {
	h.closed = true
}

// Closed reports whether Close was called.
func (h *Host) Closed() bool {
	return h.closed
}

// pointer converts a terminal cell to a world position. Cells outside the
// canvas report false unless the pointer is captured, in which case they
// are clamped to the nearest edge cell.
func (h *Host) pointer(col, row int) (core.Vec2, bool) {
	s := h.canvas.Screen()
	if s.Width() == 0 || s.Height() == 0 {
		return core.Vec2{}, false
	}
	if !s.In(col, row) {
		if !h.captured {
			return core.Vec2{}, false
		}
		col = core.Clamp(col, 0, s.Width()-1)
		row = core.Clamp(row, 0, s.Height()-1)
	}
	return h.canvas.WorldAt(col, row), true
}

// drain returns the queued commands as one batch.
func (h *Host) drain() tea.Cmd {
	if len(h.pending) == 0 {
		return nil
	}
	cmds := h.pending
	h.pending = nil
	return tea.Batch(cmds...)
}
