package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termgames/internal/core"
	"github.com/vovakirdan/termgames/internal/registry"
	"github.com/vovakirdan/termgames/internal/screenshot"
	"github.com/vovakirdan/termgames/internal/storage"
)

// Options carries the platform services a game session can use.
type Options struct {
	// Store persists scores and round statistics. May be nil.
	Store *storage.Store
	// Logger receives session events. Defaults to a discarding logger.
	Logger *log.Logger
	// HoldWindow overrides DefaultHoldWindow.
	HoldWindow time.Duration
	// ScreenshotDir is where ctrl+s writes captures. Empty disables screenshots.
	ScreenshotDir string
	// Reload delivers config change notifications for Reloadable games.
	Reload <-chan struct{}
}

// ReloadMsg asks the game to re-read its configuration.
type ReloadMsg struct{}

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	hold       *holdTracker
	pointer    *pointerState
	now        func() time.Time
	randomSeed bool // reseed on restart; a caller-chosen seed is kept
	standalone bool // quit the program when leaving the game
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	randomSeed := cfg.Seed == 0
	if randomSeed {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	km := NewKeyMapper()
	if wantsPointer(game) {
		km = NewLookKeyMapper()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  km,
		hold:       newHoldTracker(opts.HoldWindow),
		pointer:    &pointerState{},
		now:        time.Now,
		randomSeed: randomSeed,
	}
}

func wantsPointer(game registry.Game) bool {
	pg, ok := game.(registry.PointerGame)
	return ok && pg.WantsPointer()
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "seed", m.config.Seed)

	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.opts.Reload))
}

// waitForReload turns the next config notification into a ReloadMsg.
func waitForReload(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ReloadMsg{}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.pointer.Handle(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ReloadMsg:
		m.reload()
		return m, waitForReload(m.opts.Reload)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	ka, isQuit := m.keyMapper.MapKey(msg, m.gameState.GameOver)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case ka.Action == core.ActionNone:
	case ka.Action == core.ActionBack:
		// Back to menu only when the game is not running
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	case ka.Held:
		m.hold.Press(ka.Action, m.now())
		m.inputFrame.Set(ka.Action)
	default:
		m.inputFrame.Set(ka.Action)
	}

	return m, nil
}

// handleResize processes window resize events.
// Games draw to whatever size the screen has, so the round keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.hold.Apply(&m.inputFrame, now)
	m.pointer.Apply(&m.inputFrame)

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if m.randomSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.hold.Reset()
		m.inputFrame.Clear()
		m.logger.Info("game restarted", "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.recordGameOver()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		// Some games leave game over on their own, e.g. resetting the range.
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordGameOver saves the final score and, for games that report them, round statistics.
func (m *Model) recordGameOver() {
	score := m.gameState.Score
	m.logger.Info("game over", "score", score)
	if m.opts.Store == nil {
		return
	}

	if score > 0 {
		if _, err := m.opts.Store.SaveScore(m.game.ID(), score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}

	if sr, ok := m.game.(registry.StatsReporter); ok {
		stats := sr.RoundStats()
		if _, err := m.opts.Store.SaveRound(m.game.ID(), stats, score); err != nil {
			m.logger.Warn("could not save round", "error", err)
		}
	}
}

// reload re-reads the game config if the game supports it.
func (m *Model) reload() {
	r, ok := m.game.(registry.Reloadable)
	if !ok {
		return
	}
	if err := r.Reload(); err != nil {
		m.logger.Warn("config reload failed", "error", err)
		return
	}
	m.logger.Info("config reloaded")
}

// saveScreenshot saves the current screen as text and images.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}

	// Render current state
	m.game.Render(m.screen)

	paths, err := screenshot.Save(m.opts.ScreenshotDir, m.game.ID(), m.screen, m.now())
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", paths.Image)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// programOptions returns the Bubble Tea options a game needs.
func programOptions(game registry.Game) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if wantsPointer(game) {
		return append(opts, tea.WithMouseAllMotion())
	}
	return append(opts, tea.WithMouseCellMotion())
}

// Result describes how a game session ended.
type Result struct {
	BackToMenu bool
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (Result, error) {
	model := NewModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(model, programOptions(game)...)

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	if m, ok := final.(Model); ok {
		return Result{BackToMenu: m.BackToMenu()}, nil
	}
	return Result{}, nil
}
