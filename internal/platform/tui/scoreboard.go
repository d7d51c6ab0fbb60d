package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// ScoreboardTab selects the table the scoreboard shows.
type ScoreboardTab int

const (
	TabHighScores ScoreboardTab = iota
	TabRecent
	TabBest
	tabCount
)

// String returns the tab title.
func (t ScoreboardTab) String() string {
	switch t {
	case TabHighScores:
		return "High Scores"
	case TabRecent:
		return "Recent Games"
	case TabBest:
		return "Best Games"
	default:
		return "?"
	}
}

// ScoreboardData is everything the scoreboard displays. Sessions and Stats
// are empty when no history database is available.
type ScoreboardData struct {
	HighScores []highscore.Entry
	Recent     []storage.Session
	Best       []storage.Session
	Stats      *storage.Stats
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextTab, k.PrevTab}, {k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next table"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev table"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model browsing high scores and the
// session history.
type ScoreboardModel struct {
	data     ScoreboardData
	tab      ScoreboardTab
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(data ScoreboardData, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		data:   data,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// Tab returns the selected tab.
func (m ScoreboardModel) Tab() ScoreboardTab {
	return m.tab
}

// Rows returns the rows of the selected tab.
func (m ScoreboardModel) Rows() []table.Row {
	return m.table.Rows()
}

func (m ScoreboardModel) columns() []table.Column {
	if m.tab == TabHighScores {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: highscore.MaxNameLen + 1},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 18},
		}
	}
	return []table.Column{
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 8},
		{Title: "Bricks", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 18},
	}
}

func (m ScoreboardModel) rows() []table.Row {
	if m.tab == TabHighScores {
		rows := make([]table.Row, len(m.data.HighScores))
		for i, e := range m.data.HighScores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				e.Name,
				fmt.Sprintf("%d", e.Score),
				e.Time.Local().Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	sessions := m.data.Recent
	if m.tab == TabBest {
		sessions = m.data.Best
	}
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		result := "lost"
		if s.Won {
			result = "won"
		}
		rows[i] = table.Row{
			s.Player,
			fmt.Sprintf("%d", s.Score),
			result,
			fmt.Sprintf("%d", s.Bricks),
			s.Duration.Round(time.Second).String(),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// createTable creates the table for the selected tab.
func (m ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("BREAKOUT"))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, tabCount)
	for t := range tabCount {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.String())
		} else {
			tabs[t] = tabStyle.Render(t.String())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if st := m.data.Stats; st != nil && m.tab != TabHighScores {
		b.WriteString(FormatStats(st))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.table.Rows()) > 0 {
		return m.table.View()
	}

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if m.tab == TabHighScores {
		return emptyStyle.Render("No high scores yet.\nPlay a game to set one!")
	}
	return emptyStyle.Render("No games recorded yet.")
}

// FormatStats renders history statistics as one line.
func FormatStats(st *storage.Stats) string {
	if st.Games == 0 {
		return "No games played."
	}
	return fmt.Sprintf("Games: %d  Wins: %d  Best: %d  Average: %.0f  Bricks: %d  Play time: %s",
		st.Games, st.Wins, st.HighScore, st.AvgScore, st.Bricks, st.PlayTime.Round(time.Second))
}

// RunScoreboard runs the scoreboard until the user quits.
func RunScoreboard(data ScoreboardData, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(data, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
