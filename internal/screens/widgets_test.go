package screens

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestDimmer(t *testing.T) {
	d := NewDimmer()
	for range 500 {
		d.Update()
	}
	if math.Abs(d.Opacity()-d.Strength) > 1e-3 {
		t.Errorf("opacity = %v, expected to settle at %v", d.Opacity(), d.Strength)
	}

	d.Dim = false
	for range 500 {
		d.Update()
	}
	if d.Opacity() > 1e-3 {
		t.Errorf("opacity = %v, expected to settle at 0", d.Opacity())
	}

	d.SetOpacity(3)
	if d.Opacity() != 1 {
		t.Errorf("SetOpacity() should clamp, got %v", d.Opacity())
	}
}

func TestFadeOutCompletesOnce(t *testing.T) {
	e := newEnv(t)
	calls := 0
	e.m.AddFadeOut(func() { calls++ })

	fade := e.m.Get(KindFadeOut).(*FadeOut)
	ticks := 0
	for e.has(KindFadeOut) && ticks < 200 {
		e.tick(1)
		ticks++
	}

	// 1 - 0.9^n reaches 0.95 after 29 steps.
	if ticks != 29 {
		t.Errorf("fade-out took %d ticks, expected 29", ticks)
	}
	if calls != 1 {
		t.Errorf("onComplete called %d times", calls)
	}
	if fade.Opacity() < 0.95 {
		t.Errorf("final opacity %v", fade.Opacity())
	}

	e.tick(10)
	if calls != 1 {
		t.Errorf("onComplete called again after removal: %d", calls)
	}
}

func TestButtonHoverTransition(t *testing.T) {
	e := newEnv(t)
	b := NewButton(e.m, "Play")

	if b.Size != (core.SizeF{W: 40, H: 30}) {
		t.Fatalf("Size = %+v", b.Size)
	}
	b.Center(core.V(100, 100))
	if b.Pos != core.V(80, 85) {
		t.Errorf("Pos = %v", b.Pos)
	}
	if !b.Contains(core.V(100, 100)) || b.Contains(core.V(10, 10)) {
		t.Error("Contains() mismatch")
	}

	b.Hover = true
	b.Update()
	if math.Abs(b.Transition()-0.3) > 1e-9 {
		t.Errorf("Transition() = %v after one update, expected 0.3", b.Transition())
	}
	b.Update()
	if math.Abs(b.Transition()-0.51) > 1e-9 {
		t.Errorf("Transition() = %v after two updates, expected 0.51", b.Transition())
	}

	b.Hover = false
	for range 100 {
		b.Update()
	}
	if b.Transition() > 1e-6 {
		t.Errorf("Transition() = %v, expected to settle at 0", b.Transition())
	}
}

func TestMenuKeys(t *testing.T) {
	e := newEnv(t)
	a, b, c := NewButton(e.m, "a"), NewButton(e.m, "b"), NewButton(e.m, "c")
	m := NewMenu(a, b, c)

	if m.Key(core.Key("enter")) != nil {
		t.Error("enter with nothing selected should do nothing")
	}

	tests := []struct {
		key  string
		want *Button
	}{
		{"down", a},
		{"down", b},
		{"up", a},
		{"up", c},
		{"down", a},
	}
	for i, tc := range tests {
		m.Key(core.Key(tc.key))
		if m.Selected() != tc.want {
			t.Errorf("step %d (%s): selected %q", i, tc.key, m.Selected().Label)
		}
		for _, btn := range m.Buttons {
			if btn.Hover != (btn == tc.want) {
				t.Errorf("step %d: hover of %q = %v", i, btn.Label, btn.Hover)
			}
		}
	}

	if m.Key(core.Key("enter")) != a {
		t.Error("enter should return the selected button")
	}
}

func TestMenuHover(t *testing.T) {
	e := newEnv(t)
	a, b := NewButton(e.m, "aa"), NewButton(e.m, "bb")
	a.Center(core.V(100, 100))
	b.Center(core.V(100, 200))
	m := NewMenu(a, b)

	m.Hover(core.V(100, 200))
	if m.Selected() != b || !b.Hover || a.Hover {
		t.Error("hover should select the button under the pointer")
	}
	if m.At(core.V(100, 100)) != a {
		t.Error("At() should find the first button")
	}

	m.Hover(core.V(500, 500))
	if m.Selected() != nil || b.Hover {
		t.Error("hovering empty space should clear the selection")
	}
}
