package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termgames/internal/registry"
	"github.com/vovakirdan/termgames/internal/storage"
)

const (
	maxScores = 100 // High score rows loaded per game
	maxRounds = 200 // Recent rounds scanned across all games
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the help bar.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.NextGame, k.PrevGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "k", "down", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("←", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows high scores per game. Games that record round
// statistics list their recent rounds with a lifetime summary instead.
type ScoreboardModel struct {
	games     []registry.GameInfo
	cursor    int
	store     *storage.Store
	table     table.Model
	rows      int                  // rows in the current table
	totals    *storage.RoundTotals // nil unless the game has rounds
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first registered game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	return m
}

func (m *ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// load rebuilds the table for the selected game.
func (m *ScoreboardModel) load() {
	m.totals = nil
	id := m.gameID()

	var rounds []storage.RoundEntry
	if m.store != nil && id != "" {
		rounds = m.roundsFor(id)
	}

	if len(rounds) > 0 {
		if totals, err := m.store.GetRoundTotals(id); err == nil {
			m.totals = totals
		}
		m.setTable(roundColumns(), roundRows(rounds))
		return
	}

	var scores []storage.ScoreEntry
	if m.store != nil && id != "" {
		scores, _ = m.store.TopScores(id, maxScores)
	}
	m.setTable(scoreColumns(), scoreRows(scores))
}

func (m *ScoreboardModel) roundsFor(gameID string) []storage.RoundEntry {
	all, err := m.store.RecentRounds(maxRounds)
	if err != nil {
		return nil
	}
	var out []storage.RoundEntry
	for _, r := range all {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out
}

func scoreColumns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 14},
	}
}

func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func roundColumns() []table.Column {
	return []table.Column{
		{Title: "Score", Width: 7},
		{Title: "Kills", Width: 6},
		{Title: "HS", Width: 4},
		{Title: "Acc", Width: 5},
		{Title: "Date", Width: 14},
	}
}

func roundRows(rounds []storage.RoundEntry) []table.Row {
	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Kills),
			fmt.Sprintf("%d", r.Headshots),
			fmt.Sprintf("%.0f%%", r.Accuracy()*100),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) setTable(columns []table.Column, rows []table.Row) {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // title, tabs, footer, help
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

	m.table = t
	m.rows = len(rows)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the game cursor by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	heading := "HIGH SCORES"
	if m.totals != nil {
		heading = "RECENT ROUNDS"
	}

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	var b strings.Builder
	b.WriteString(center(titleStyle.Render(heading)))
	b.WriteString("\n\n")
	b.WriteString(center(m.renderTabs()))
	b.WriteString("\n\n")
	b.WriteString(center(boxStyle.Render(m.renderBody())))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			tabs[i] = activeStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderBody() string {
	if m.rows == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	if m.totals == nil {
		return m.table.View()
	}

	stats := fmt.Sprintf("Rounds %d  |  Kills %d  |  Accuracy %.0f%%  |  Headshots %.0f%%",
		m.totals.Rounds, m.totals.Kills, m.totals.Accuracy()*100, m.totals.HeadshotRatio()*100)
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1).Render(stats)
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), footer)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
