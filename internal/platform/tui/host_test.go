package tui

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/fonts"
)

func newTestHost() *Host {
	return NewHost(core.NewCanvas(core.NewScreen(10, 5), core.SizeF{W: 100, H: 100}))
}

func TestHostClientSize(t *testing.T) {
	h := newTestHost()
	h.SetClientSize(core.SizeF{W: 200, H: 50})
	if got := h.ClientSize(); got != (core.SizeF{W: 200, H: 50}) {
		t.Errorf("ClientSize() = %+v", got)
	}
}

func TestHostMeasureString(t *testing.T) {
	h := newTestHost()

	if got := h.MeasureString("abc", nil); got != (core.SizeF{W: 30, H: 20}) {
		t.Errorf("plain MeasureString() = %+v, expected 30x20", got)
	}

	fm, err := fonts.Open("", 72, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	f, err := fm.Get(fonts.Fixed, 13)
	if err != nil {
		t.Fatal(err)
	}
	// 7x13 bitmap glyphs, one mask pixel per 10x10 canvas pixel.
	if got := h.MeasureString("ab", f); got != (core.SizeF{W: 140, H: 130}) {
		t.Errorf("font MeasureString() = %+v, expected 140x130", got)
	}
}

func TestHostPointer(t *testing.T) {
	h := newTestHost()

	if p, ok := h.pointer(3, 2); !ok || p != core.V(35, 50) {
		t.Errorf("pointer(3, 2) = (%v, %v)", p, ok)
	}
	if _, ok := h.pointer(3, 7); ok {
		t.Error("pointer below the canvas should be ignored while released")
	}

	h.CaptureMouse()
	if p, ok := h.pointer(12, 7); !ok || p != core.V(95, 90) {
		t.Errorf("captured pointer(12, 7) = (%v, %v), expected clamp to (95, 90)", p, ok)
	}

	h.ReleaseMouse()
	if h.Captured() {
		t.Error("Captured() = true after ReleaseMouse")
	}
}

func TestHostQueuesCommands(t *testing.T) {
	h := newTestHost()
	if h.drain() != nil {
		t.Error("drain() on a fresh host should be nil")
	}

	h.CaptureMouse()
	h.CaptureMouse()
	if len(h.pending) != 1 {
		t.Errorf("pending = %d, expected one command for repeated captures", len(h.pending))
	}
	if h.drain() == nil || len(h.pending) != 0 {
		t.Error("drain() should return and clear the queue")
	}

	h.Close()
	if !h.Closed() {
		t.Error("Closed() = false after Close")
	}
}
