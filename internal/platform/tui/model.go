package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/screens"
)

// Heights of the help footer below the stage.
const (
	shortHelpRows = 1
	fullHelpRows  = 4
)

// Options configure a Model.
type Options struct {
	Width, Height int // terminal size in cells; 80x24 when unset
	FPS           int // ticks per second; the config's display rate when unset

	// ScreenshotDir is where ctrl+s writes screenshots. Empty disables them.
	ScreenshotDir string

	// Renderer styles the output; nil uses the stdout renderer.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model driving the screen manager.
type Model struct {
	mgr      *screens.Manager
	host     *Host
	canvas   *core.Canvas
	renderer *Renderer
	keys     KeyMap
	help     help.Model
	footer   lipgloss.Style
	opts     Options
	logger   *log.Logger
	pressed  core.MouseButton
	quitting bool
}

// NewModel creates the manager and shows the title screen. svc.Host is
// replaced by the terminal host.
func NewModel(cfg *config.Config, svc screens.Services, opts Options) (Model, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.FPS <= 0 {
		opts.FPS = cfg.Display.FPS
	}
	if svc.Logger == nil {
		svc.Logger = log.Default()
	}

	canvas := core.NewCanvas(core.NewScreen(opts.Width, max(opts.Height-shortHelpRows, 1)), cfg.Theme.ClientSize())
	host := NewHost(canvas)
	svc.Host = host

	mgr := screens.NewManager(cfg, svc)
	if err := mgr.Start(); err != nil {
		return Model{}, fmt.Errorf("tui: cannot show title screen: %w", err)
	}

	r := NewRenderer(opts.Renderer)
	h := help.New()
	h.Width = opts.Width

	return Model{
		mgr:      mgr,
		host:     host,
		canvas:   canvas,
		renderer: r,
		keys:     DefaultKeyMap(),
		help:     h,
		footer:   r.r.NewStyle().Foreground(lipgloss.Color("241")),
		opts:     opts,
		logger:   svc.Logger,
	}, nil
}

// Manager returns the screen manager.
func (m Model) Manager() *screens.Manager {
	return m.mgr
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.FPS), m.host.drain())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.opts.Width, m.opts.Height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.BlurMsg:
		m.mgr.Deactivate()
		return m.after(nil)

	case TickMsg:
		m.mgr.Update()
		return m.after(tickCmd(m.opts.FPS))
	}

	return m, nil
}

// resize fits the stage into the terminal above the help footer.
func (m *Model) resize() {
	rows := shortHelpRows
	if m.help.ShowAll {
		rows = fullHelpRows
	}
	m.canvas.Screen().Resize(m.opts.Width, max(m.opts.Height-rows, 1))
	m.help.Width = m.opts.Width
}

// after collects the host's queued commands once a dispatch is done.
func (m Model) after(next tea.Cmd) (tea.Model, tea.Cmd) {
	cmd := m.host.drain()
	if m.host.Closed() || m.mgr.Closed() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tea.Batch(next, cmd)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}

	for _, ev := range translateKey(msg) {
		m.mgr.KeyDown(ev)
	}
	return m.after(nil)
}

// handleMouse maps terminal mouse events to world coordinates.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	btn, ok := translateButton(msg.Button)
	if !ok {
		return m, nil
	}
	pos, ok := m.host.pointer(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.pressed = btn
		m.mgr.MouseDown(core.MouseEvent{Pos: pos, Button: btn})
	case tea.MouseActionRelease:
		// Some terminals do not report which button was released.
		if btn == core.MouseNone {
			btn = m.pressed
		}
		m.pressed = core.MouseNone
		m.mgr.MouseUp(core.MouseEvent{Pos: pos, Button: btn})
	case tea.MouseActionMotion:
		m.mgr.MouseMove(core.MouseEvent{Pos: pos, Button: btn})
	}
	return m.after(nil)
}

// saveScreenshot writes the last frame as plain text.
func (m Model) saveScreenshot() error {
	if m.opts.ScreenshotDir == "" {
		return nil
	}
	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	filename := fmt.Sprintf("breakout_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, filename)
	if err := os.WriteFile(path, []byte(m.canvas.Screen().String()), 0o600); err != nil {
		return fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.mgr.Draw(m.canvas)
	return m.renderer.Render(m.canvas.Screen()) + "\n" + m.footer.Render(m.help.View(m.keys))
}

// ProgramOptions returns the Bubble Tea options every breakout program
// runs with.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}

// Run starts a Bubble Tea program on the local terminal and blocks until
// the player quits.
func Run(cfg *config.Config, svc screens.Services, opts Options) error {
	model, err := NewModel(cfg, svc, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, ProgramOptions()...)
	_, err = p.Run()
	return err
}
