package screens

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/fonts"
	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Host is the surface the game runs in.
type Host interface {
	ClientSize() core.SizeF
	SetClientSize(size core.SizeF)
	// MeasureString returns the world size of text; a nil font means plain
	// terminal text.
	MeasureString(text string, f *fonts.Font) core.SizeF
	// CaptureMouse confines the pointer to the client area and reports
	// every movement, pressed button or not.
	CaptureMouse()
	// ReleaseMouse lets the pointer leave the client area again.
	ReleaseMouse()
	Close()
}

// FontProvider resolves font families.
type FontProvider interface {
	Get(family string, size float64) (*fonts.Font, error)
}

// SoundPlayer mixes sounds into the output.
type SoundPlayer interface {
	Play(s *audio.Sound)
}

// HighScores is the persisted high-score table.
type HighScores interface {
	IsHighScore(score int) bool
	Add(e highscore.Entry) (bool, error)
	Entries() []highscore.Entry
	Max() int
}

// History records finished sessions.
type History interface {
	SaveSession(s storage.Session) (int64, error)
}

// Services are the collaborators shared by all screens. Fonts, Sound and
// History may be nil.
type Services struct {
	Host     Host
	Fonts    FontProvider
	Sound    SoundPlayer
	HitSound *audio.Sound
	Scores   HighScores
	History  History
	Player   string
	Logger   *log.Logger
	Clock    func() time.Time
}

type entry struct {
	screen  Screen
	removed bool
}

// Manager owns the screen stack and dispatches host events to it.
//
// Screens are visited in insertion order. A screen removed during a pass is
// skipped if not yet visited, and a screen added during a pass is visited in
// that same pass. Removed entries are swept once the outermost pass ends.
type Manager struct {
	Services

	cfg     *config.Config
	entries []*entry
	depth   int
	closed  bool
}

// NewManager creates a manager and sizes the host to the stage.
func NewManager(cfg *config.Config, svc Services) *Manager {
	if svc.Logger == nil {
		svc.Logger = log.Default()
	}
	if svc.Clock == nil {
		svc.Clock = time.Now
	}
	if svc.Player == "" {
		svc.Player = "local"
	}
	m := &Manager{Services: svc, cfg: cfg}
	m.Host.SetClientSize(cfg.Theme.ClientSize())
	return m
}

// Config returns the game configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Theme returns the stage layout and colours.
func (m *Manager) Theme() *config.Theme {
	return &m.cfg.Theme
}

// ClientSize returns the host's client size.
func (m *Manager) ClientSize() core.SizeF {
	return m.Host.ClientSize()
}

// Start shows the title screen.
func (m *Manager) Start() error {
	_, err := m.AddKind(KindTitle)
	return err
}

// Add appends a screen to the stack.
func (m *Manager) Add(s Screen) Screen {
	m.entries = append(m.entries, &entry{screen: s})
	m.Logger.Debug("screen added", "kind", s.Kind())
	s.OnAdd()
	return s
}

// AddKind builds a screen through the registry and appends it.
func (m *Manager) AddKind(k Kind) (Screen, error) {
	s, err := Create(k, m)
	if err != nil {
		return nil, err
	}
	return m.Add(s), nil
}

// mustAdd is AddKind for transitions that have no caller to report to.
func (m *Manager) mustAdd(k Kind) {
	if _, err := m.AddKind(k); err != nil {
		m.Logger.Error("cannot add screen", "kind", k, "err", err)
	}
}

// AddFadeIn adds a fade-in transition that calls onComplete when done.
func (m *Manager) AddFadeIn(onComplete func()) {
	m.Add(newFadeIn(m, onComplete))
}

// AddFadeOut adds a fade-out transition that calls onComplete when done.
func (m *Manager) AddFadeOut(onComplete func()) {
	m.Add(newFadeOut(m, onComplete))
}

// Get returns the first live screen of a kind, or nil.
func (m *Manager) Get(k Kind) Screen {
	for _, e := range m.entries {
		if !e.removed && e.screen.Kind() == k {
			return e.screen
		}
	}
	return nil
}

// Remove takes a screen off the stack. It reports false if the screen was
// not on it.
func (m *Manager) Remove(s Screen) bool {
	if s == nil {
		return false
	}
	for _, e := range m.entries {
		if !e.removed && e.screen == s {
			e.removed = true
			m.Logger.Debug("screen removed", "kind", s.Kind())
			s.OnRemove()
			if m.depth == 0 {
				m.sweep()
			}
			return true
		}
	}
	return false
}

// RemoveKind removes the first live screen of a kind.
func (m *Manager) RemoveKind(k Kind) bool {
	return m.Remove(m.Get(k))
}

// Screens returns the live screens in order.
func (m *Manager) Screens() []Screen {
	out := make([]Screen, 0, len(m.entries))
	for _, e := range m.entries {
		if !e.removed {
			out = append(out, e.screen)
		}
	}
	return out
}

// Len returns the number of live screens.
func (m *Manager) Len() int {
	n := 0
	for _, e := range m.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Close asks the host to exit.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.Logger.Debug("closing")
	m.Host.Close()
}

// Closed reports whether Close was called.
func (m *Manager) Closed() bool {
	return m.closed
}

func (m *Manager) dispatch(fn func(Screen)) {
	m.depth++
	// len is re-read: screens appended during the pass are visited too.
	for i := 0; i < len(m.entries); i++ {
		e := m.entries[i]
		if e.removed {
			continue
		}
		fn(e.screen)
	}
	m.depth--
	if m.depth == 0 {
		m.sweep()
	}
}

func (m *Manager) sweep() {
	live := m.entries[:0]
	for _, e := range m.entries {
		if !e.removed {
			live = append(live, e)
		}
	}
	clear(m.entries[len(live):])
	m.entries = live
}

// Update advances every screen by one tick.
func (m *Manager) Update() {
	m.dispatch(func(s Screen) { s.Update() })
}

// Draw clears the canvas and draws every screen in order.
func (m *Manager) Draw(c *core.Canvas) {
	c.Clear()
	m.dispatch(func(s Screen) { s.Draw(c) })
	c.Flush()
}

// KeyDown delivers a key press.
func (m *Manager) KeyDown(ev core.KeyEvent) {
	m.dispatch(func(s Screen) { s.KeyDown(ev) })
}

// MouseMove delivers pointer movement.
func (m *Manager) MouseMove(ev core.MouseEvent) {
	m.dispatch(func(s Screen) { s.MouseMove(ev) })
}

// MouseDown delivers a button press.
func (m *Manager) MouseDown(ev core.MouseEvent) {
	m.dispatch(func(s Screen) { s.MouseDown(ev) })
}

// MouseUp delivers a button release.
func (m *Manager) MouseUp(ev core.MouseEvent) {
	m.dispatch(func(s Screen) { s.MouseUp(ev) })
}

// Deactivate tells every screen the host lost focus.
func (m *Manager) Deactivate() {
	m.dispatch(func(s Screen) { s.Deactivate() })
}
