// Package web serves a read-only JSON leaderboard over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/termgames/internal/registry"
	"github.com/vovakirdan/termgames/internal/storage"
)

const (
	defaultScoreLimit = 10
	defaultRoundLimit = 20
	maxLimit          = 100
)

// Store is the part of storage.Store the API reads from.
type Store interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
	RecentRounds(limit int) ([]storage.RoundEntry, error)
	GetRoundTotals(gameID string) (*storage.RoundTotals, error)
}

type scoreJSON struct {
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type gameStatsJSON struct {
	GameID     string    `json:"game_id"`
	Games      int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	LastPlayed time.Time `json:"last_played"`
}

type roundTotalsJSON struct {
	Rounds        int     `json:"rounds"`
	Kills         int     `json:"kills"`
	Headshots     int     `json:"headshots"`
	Accuracy      float64 `json:"accuracy"`
	HeadshotRatio float64 `json:"headshot_ratio"`
}

type roundJSON struct {
	GameID     string    `json:"game_id"`
	Score      int       `json:"score"`
	Kills      int       `json:"kills"`
	Headshots  int       `json:"headshots"`
	ShotsFired int       `json:"shots_fired"`
	ShotsHit   int       `json:"shots_hit"`
	Accuracy   float64   `json:"accuracy"`
	Seconds    float64   `json:"seconds"`
	CreatedAt  time.Time `json:"created_at"`
}

// Server holds the API dependencies.
type Server struct {
	store    Store
	logger   *log.Logger
	tickRate int
	roundsID string
}

// New creates an API server. store may be nil, in which case data routes answer 503.
// Round durations are derived from tickRate; roundsGameID selects the game whose
// round totals /api/stats reports.
func New(store Store, logger *log.Logger, tickRate int, roundsGameID string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Server{store: store, logger: logger, tickRate: tickRate, roundsID: roundsGameID}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/games", s.listGames)

	data := api.Group("", s.requireStore)
	data.GET("/scores/:game", s.topScores)
	data.GET("/stats", s.stats)
	data.GET("/rounds", s.recentRounds)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) requireStore(c *gin.Context) {
	if s.store == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "score storage unavailable"})
		return
	}
	c.Next()
}

func (s *Server) listGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": registry.List()})
}

func (s *Server) topScores(c *gin.Context) {
	gameID := c.Param("game")
	if !registry.Exists(gameID) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown game %q", gameID)})
		return
	}

	limit, ok := parseLimit(c, defaultScoreLimit)
	if !ok {
		return
	}

	entries, err := s.store.TopScores(gameID, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	scores := make([]scoreJSON, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, scoreJSON{Score: e.Score, CreatedAt: e.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"game": gameID, "scores": scores})
}

func (s *Server) stats(c *gin.Context) {
	all, err := s.store.GetAllGamesStats()
	if err != nil {
		s.internalError(c, err)
		return
	}

	games := make([]gameStatsJSON, 0, len(all))
	for _, st := range all {
		games = append(games, gameStatsJSON{
			GameID:     st.GameID,
			Games:      st.GamesCount,
			HighScore:  st.HighScore,
			AvgScore:   st.AvgScore,
			LastPlayed: st.LastPlayed,
		})
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GameID < games[j].GameID })

	totals, err := s.store.GetRoundTotals(s.roundsID)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games": games,
		"rounds": roundTotalsJSON{
			Rounds:        totals.Rounds,
			Kills:         totals.Kills,
			Headshots:     totals.Headshots,
			Accuracy:      totals.Accuracy(),
			HeadshotRatio: totals.HeadshotRatio(),
		},
	})
}

func (s *Server) recentRounds(c *gin.Context) {
	limit, ok := parseLimit(c, defaultRoundLimit)
	if !ok {
		return
	}

	entries, err := s.store.RecentRounds(limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	rounds := make([]roundJSON, 0, len(entries))
	for _, e := range entries {
		rounds = append(rounds, roundJSON{
			GameID:     e.GameID,
			Score:      e.Score,
			Kills:      e.Kills,
			Headshots:  e.Headshots,
			ShotsFired: e.ShotsFired,
			ShotsHit:   e.ShotsHit,
			Accuracy:   e.Accuracy(),
			Seconds:    float64(e.Ticks) / float64(s.tickRate),
			CreatedAt:  e.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("storage query failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage query failed"})
}

// parseLimit reads ?limit=, writing a 400 response when it is not a positive integer.
func parseLimit(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return min(n, maxLimit), true
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("web: listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}
