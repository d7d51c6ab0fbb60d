package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/screens"
)

func kinds(m Model) []screens.Kind {
	var out []screens.Kind
	for _, s := range m.Manager().Screens() {
		out = append(out, s.Kind())
	}
	return out
}

func TestModelStartsOnTitle(t *testing.T) {
	m := newTestModel(t, Options{Width: 100, Height: 40})

	if got := kinds(m); len(got) == 0 || got[0] != screens.KindTitle {
		t.Fatalf("stack = %v, expected the title first", got)
	}
	if s := m.canvas.Screen(); s.Width() != 100 || s.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 100x39", s.Width(), s.Height())
	}
	if m.Init() == nil {
		t.Error("Init() should start the tick loop")
	}
}

func TestModelDefaults(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.opts.Width != 80 || m.opts.Height != 24 {
		t.Errorf("size = %dx%d, expected 80x24", m.opts.Width, m.opts.Height)
	}
	if m.opts.FPS != 60 {
		t.Errorf("FPS = %d, expected the config rate 60", m.opts.FPS)
	}
}

func TestModelCtrlCQuits(t *testing.T) {
	m := newTestModel(t, Options{Width: 80, Height: 24})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty once quitting")
	}
}

func TestModelResizeAndHelp(t *testing.T) {
	m := newTestModel(t, Options{Width: 80, Height: 24})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 41})
	if s := m.canvas.Screen(); s.Width() != 120 || s.Height() != 40 {
		t.Errorf("screen = %dx%d after resize, expected 120x40", s.Width(), s.Height())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.help.ShowAll {
		t.Fatal("f1 should show the full help")
	}
	if h := m.canvas.Screen().Height(); h != 37 {
		t.Errorf("screen height = %d with full help, expected 37", h)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if h := m.canvas.Screen().Height(); h != 40 {
		t.Errorf("screen height = %d after hiding help, expected 40", h)
	}
}

// settle ticks past the title fade-in.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	for range 60 {
		m, _ = send(t, m, TickMsg{})
	}
	return m
}

func TestModelView(t *testing.T) {
	m := settle(t, newTestModel(t, Options{Width: 120, Height: 40}))

	v := m.View()
	if lines := strings.Count(v, "\n") + 1; lines != 40 {
		t.Errorf("View() has %d lines, expected 40", lines)
	}
	for _, want := range []string{"Play", "High Scores", "Quit"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() is missing %q", want)
		}
	}
}

func TestModelQuitFromMenu(t *testing.T) {
	m := newTestModel(t, Options{Width: 120, Height: 40})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	var cmd tea.Cmd
	for i := 0; i < 200 && !m.quitting; i++ {
		m, cmd = send(t, m, TickMsg{})
	}
	if !m.quitting {
		t.Fatalf("model did not quit; stack %v", kinds(m))
	}
	if !isQuit(cmd) {
		t.Error("last command should be tea.Quit")
	}
}

func TestModelMouse(t *testing.T) {
	m := newTestModel(t, Options{Width: 120, Height: 40})

	// Wheel events and events on the footer are dropped without dispatch.
	_, cmd := send(t, m, tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if cmd != nil {
		t.Error("wheel event should be ignored")
	}
	_, cmd = send(t, m, tea.MouseMsg{X: 5, Y: 39, Action: tea.MouseActionMotion})
	if cmd != nil {
		t.Error("footer event should be ignored")
	}

	m, _ = send(t, m, tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	if m.pressed != core.MouseRight {
		t.Errorf("pressed = %v, expected right", m.pressed)
	}
	m, _ = send(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionRelease})
	if m.pressed != core.MouseNone {
		t.Errorf("pressed = %v after release", m.pressed)
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := settle(t, newTestModel(t, Options{Width: 60, Height: 20, ScreenshotDir: dir}))
	m.View()

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !strings.HasPrefix(files[0].Name(), "breakout_") {
		t.Fatalf("screenshots = %v, expected one breakout_*.txt", files)
	}
	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Play") {
		t.Error("screenshot should contain the title menu")
	}
}
