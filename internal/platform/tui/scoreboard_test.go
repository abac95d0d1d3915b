package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termgames/internal/core"
	"github.com/vovakirdan/termgames/internal/registry"
	"github.com/vovakirdan/termgames/internal/storage"
)

func newTestScoreboard(t *testing.T, store *storage.Store) ScoreboardModel {
	t.Helper()
	m := NewScoreboardModel(store, 100, 30)
	m.games = []registry.GameInfo{
		{ID: "flappy", Title: "Flappy Bird"},
		{ID: "range", Title: "Shooting Range"},
	}
	m.cursor = 0
	m.load()
	return m
}

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func TestScoreboardPerGameTables(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, s := range []int{7, 12} {
		if _, err := store.SaveScore("flappy", s); err != nil {
			t.Fatal(err)
		}
	}
	stats := core.RoundStats{Kills: 4, Headshots: 1, ShotsFired: 10, ShotsHit: 5, Ticks: 600}
	if _, err := store.SaveRound("range", stats, 450); err != nil {
		t.Fatal(err)
	}

	m := newTestScoreboard(t, store)
	view := m.View()
	if !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "12") {
		t.Errorf("flappy view should list high scores:\n%s", view)
	}
	if m.totals != nil {
		t.Error("flappy has no round totals")
	}
	if m.rows != 2 {
		t.Errorf("rows = %d, want 2", m.rows)
	}

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	view = m.View()
	for _, want := range []string{"RECENT ROUNDS", "450", "50%", "Rounds 1", "Kills 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("range view missing %q:\n%s", want, view)
		}
	}

	// Wraps back to the first game
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after wrapping", m.cursor)
	}
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 after wrapping back", m.cursor)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := newTestScoreboard(t, nil)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Errorf("empty scoreboard should say so:\n%s", m.View())
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := updateScoreboard(t, newTestScoreboard(t, nil), runeKey("b"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back to the menu")
	}

	m = updateScoreboard(t, newTestScoreboard(t, nil), runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
