package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termgames/internal/core"
	_ "github.com/vovakirdan/termgames/internal/games/flappy"
	_ "github.com/vovakirdan/termgames/internal/games/shooter"
	"github.com/vovakirdan/termgames/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func get(t *testing.T, h http.Handler, path string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestHealthz(t *testing.T) {
	h := New(nil, log.New(io.Discard), 60, "range").Router()

	var body map[string]string
	require.Equal(t, http.StatusOK, get(t, h, "/healthz", &body))
	require.Equal(t, "ok", body["status"])
}

func TestListGames(t *testing.T) {
	h := New(nil, nil, 60, "range").Router()

	var body struct {
		Games []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"games"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/api/games", &body))

	ids := make([]string, 0, len(body.Games))
	for _, g := range body.Games {
		ids = append(ids, g.ID)
	}
	require.Contains(t, ids, "flappy")
	require.Contains(t, ids, "range")
}

func TestTopScores(t *testing.T) {
	store := newTestStore(t)
	for _, s := range []int{5, 40, 12} {
		_, err := store.SaveScore("flappy", s)
		require.NoError(t, err)
	}
	h := New(store, nil, 60, "range").Router()

	var body struct {
		Game   string      `json:"game"`
		Scores []scoreJSON `json:"scores"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/api/scores/flappy?limit=2", &body))
	require.Equal(t, "flappy", body.Game)
	require.Len(t, body.Scores, 2)
	require.Equal(t, 40, body.Scores[0].Score)
	require.Equal(t, 12, body.Scores[1].Score)

	var empty struct {
		Scores []scoreJSON `json:"scores"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/api/scores/range", &empty))
	require.NotNil(t, empty.Scores)
	require.Empty(t, empty.Scores)
}

func TestTopScoresErrors(t *testing.T) {
	h := New(newTestStore(t), nil, 60, "range").Router()

	var body map[string]string
	require.Equal(t, http.StatusNotFound, get(t, h, "/api/scores/tetris", &body))
	require.Contains(t, body["error"], "tetris")

	require.Equal(t, http.StatusBadRequest, get(t, h, "/api/scores/flappy?limit=abc", &body))
	require.Equal(t, http.StatusBadRequest, get(t, h, "/api/scores/flappy?limit=0", &body))
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	_, err := store.SaveScore("range", 1200)
	require.NoError(t, err)
	_, err = store.SaveScore("flappy", 7)
	require.NoError(t, err)
	_, err = store.SaveRound("range", core.RoundStats{Kills: 10, Headshots: 5, ShotsFired: 40, ShotsHit: 30, Ticks: 600}, 1200)
	require.NoError(t, err)

	h := New(store, nil, 60, "range").Router()

	var body struct {
		Games  []gameStatsJSON `json:"games"`
		Rounds roundTotalsJSON `json:"rounds"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/api/stats", &body))
	require.Len(t, body.Games, 2)
	require.Equal(t, "flappy", body.Games[0].GameID)
	require.Equal(t, "range", body.Games[1].GameID)
	require.Equal(t, 1200, body.Games[1].HighScore)
	require.Equal(t, 1, body.Rounds.Rounds)
	require.InDelta(t, 0.75, body.Rounds.Accuracy, 1e-9)
	require.InDelta(t, 0.5, body.Rounds.HeadshotRatio, 1e-9)
}

func TestRecentRounds(t *testing.T) {
	store := newTestStore(t)
	for i := 1; i <= 3; i++ {
		_, err := store.SaveRound("range", core.RoundStats{Kills: i, ShotsFired: 4, ShotsHit: 2, Ticks: 120 * i}, 100*i)
		require.NoError(t, err)
	}
	h := New(store, nil, 60, "range").Router()

	var body struct {
		Rounds []roundJSON `json:"rounds"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/api/rounds?limit=2", &body))
	require.Len(t, body.Rounds, 2)
	require.Equal(t, 300, body.Rounds[0].Score)
	require.InDelta(t, 6.0, body.Rounds[0].Seconds, 1e-9)
	require.InDelta(t, 0.5, body.Rounds[0].Accuracy, 1e-9)
}

func TestStoreUnavailable(t *testing.T) {
	h := New(nil, nil, 60, "range").Router()

	for _, path := range []string{"/api/scores/flappy", "/api/stats", "/api/rounds"} {
		var body map[string]string
		require.Equal(t, http.StatusServiceUnavailable, get(t, h, path, &body), path)
		require.NotEmpty(t, body["error"])
	}
}

type failingStore struct{}

var errBroken = errors.New("disk on fire")

func (failingStore) TopScores(string, int) ([]storage.ScoreEntry, error) { return nil, errBroken }
func (failingStore) GetAllGamesStats() (map[string]*storage.GameStats, error) {
	return nil, errBroken
}
func (failingStore) RecentRounds(int) ([]storage.RoundEntry, error)      { return nil, errBroken }
func (failingStore) GetRoundTotals(string) (*storage.RoundTotals, error) { return nil, errBroken }

func TestStorageErrors(t *testing.T) {
	h := New(failingStore{}, log.New(io.Discard), 60, "range").Router()

	for _, path := range []string{"/api/scores/flappy", "/api/stats", "/api/rounds"} {
		var body map[string]string
		require.Equal(t, http.StatusInternalServerError, get(t, h, path, &body), path)
		require.NotContains(t, body["error"], "disk on fire")
	}
}

func TestListenAndServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, addr, New(nil, nil, 60, "range").Router(), log.New(io.Discard))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
