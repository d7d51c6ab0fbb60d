package screens

import (
	"os"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/fonts"
	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// fakeHost measures plain text as 10x30 world units per character and
// font text as 10 units per pixel.
type fakeHost struct {
	size     core.SizeF
	captured bool
	closed   bool
}

func (h *fakeHost) ClientSize() core.SizeF        { return h.size }
func (h *fakeHost) SetClientSize(size core.SizeF) { h.size = size }
func (h *fakeHost) CaptureMouse()                 { h.captured = true }
func (h *fakeHost) ReleaseMouse()                 { h.captured = false }
func (h *fakeHost) Close()                        { h.closed = true }

func (h *fakeHost) MeasureString(text string, f *fonts.Font) core.SizeF {
	if f != nil {
		b := f.Bounds(text)
		return core.SizeF{W: float64(b.X) * 10, H: float64(b.Y) * 10}
	}
	return core.SizeF{W: float64(utf8.RuneCountInString(text)) * 10, H: 30}
}

type fakeSound struct{ plays int }

func (s *fakeSound) Play(*audio.Sound) { s.plays++ }

type fakeHistory struct{ sessions []storage.Session }

func (h *fakeHistory) SaveSession(s storage.Session) (int64, error) {
	h.sessions = append(h.sessions, s)
	return int64(len(h.sessions)), nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func quietLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
}

type env struct {
	t       *testing.T
	m       *Manager
	host    *fakeHost
	clock   *fakeClock
	sound   *fakeSound
	history *fakeHistory
	scores  *highscore.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := config.Default()
	e := &env{
		t:       t,
		host:    &fakeHost{},
		clock:   &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		sound:   &fakeSound{},
		history: &fakeHistory{},
		scores:  highscore.Open("", 5, quietLogger()),
	}
	e.m = NewManager(&cfg, Services{
		Host:    e.host,
		Sound:   e.sound,
		Scores:  e.scores,
		History: e.history,
		Logger:  quietLogger(),
		Clock:   e.clock.Now,
	})
	return e
}

// tick advances the clock by one frame and updates the stack n times.
func (e *env) tick(n int) {
	for range n {
		e.clock.now = e.clock.now.Add(time.Second / 60)
		e.m.Update()
	}
}

// runUntil ticks until cond holds, failing the test after max ticks.
func (e *env) runUntil(what string, max int, cond func() bool) {
	e.t.Helper()
	for range max {
		if cond() {
			return
		}
		e.tick(1)
	}
	if !cond() {
		e.t.Fatalf("%s did not happen within %d ticks; stack %v", what, max, e.kinds())
	}
}

func (e *env) kinds() []Kind {
	var out []Kind
	for _, s := range e.m.Screens() {
		out = append(out, s.Kind())
	}
	return out
}

func (e *env) has(k Kind) bool { return e.m.Get(k) != nil }

func (e *env) key(names ...string) {
	for _, n := range names {
		e.m.KeyDown(core.Key(n))
	}
}

func (e *env) typeText(s string) {
	for _, r := range s {
		e.m.KeyDown(core.Char(r))
	}
}

// startGame goes from the title to an unfrozen gameplay screen.
func (e *env) startGame() *Breakout {
	e.t.Helper()
	if err := e.m.Start(); err != nil {
		e.t.Fatalf("Start() failed: %v", err)
	}
	e.runUntil("title fade-in", 200, func() bool { return !e.has(KindFadeIn) })

	e.key("down", "enter")
	e.runUntil("gameplay", 200, func() bool { return e.has(KindBreakout) })

	b := e.m.Get(KindBreakout).(*Breakout)
	e.runUntil("unfreeze", 200, func() bool { return !b.Frozen() })
	return b
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
