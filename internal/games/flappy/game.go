// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
// The simulation runs in an 800x450 world and is scaled to the terminal on render.
package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/termgames/internal/config"
	"github.com/vovakirdan/termgames/internal/core"
	"github.com/vovakirdan/termgames/internal/registry"
)

// Bird is the player's body.
type Bird struct {
	X, Y     float64
	Radius   float64
	Velocity float64 // positive is down
	Rotation float64 // degrees, positive is nose down
}

// Game implements the Flappy Bird game logic.
type Game struct {
	bird       Bird
	pipes      *PipeRing
	clouds     []Cloud
	rng        *rand.Rand
	score      int
	best       int // best score this session
	gameOver   bool
	paused     bool
	flash      float64 // white crash flash, 1 = full
	runtime    core.RuntimeConfig
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	tickCount  int
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok {
		difficultyPreset = p
		return
	}
	difficultyPreset = "" // Use config default
}

// New creates a new Flappy Bird game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

func loadConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		return config.DefaultFlappyConfig(), err
	}
	config.ApplyFlappyPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Reset initializes or restarts the game.
// The session best score survives resets.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, _ := loadConfig()
	g.applyConfig(cfg)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.bird = Bird{
		X:      g.cfg.Bird.X,
		Y:      g.cfg.World.Height / 2,
		Radius: g.cfg.Bird.Radius,
	}
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.flash = 0
	g.tickCount = 0

	if g.pipes == nil {
		g.pipes = NewPipeRing(g.rng, &g.cfg, g.difficulty)
	} else {
		g.pipes.rng = g.rng
		g.pipes.UpdateConfig(&g.cfg, g.difficulty)
		g.pipes.Reset()
	}
	g.clouds = newClouds(g.rng, g.cfg.Clouds, g.cfg.World.Width)
}

// Reload re-reads the config file and applies it to the running round.
// Pipes keep their positions; new values take effect as pipes recycle.
func (g *Game) Reload() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g.applyConfig(cfg)
	g.bird.X = g.cfg.Bird.X
	g.bird.Radius = g.cfg.Bird.Radius
	if g.pipes != nil {
		g.pipes.UpdateConfig(&g.cfg, g.difficulty)
	}
	return nil
}

func (g *Game) applyConfig(cfg config.FlappyConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := g.runtime.DT()

	if g.gameOver {
		g.stepGameOver(dt)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	updateClouds(g.clouds, dt, g.cfg.World.Width, g.cfg.Clouds.WrapAt)

	phys := g.cfg.Physics
	if in.Has(core.ActionJump) || in.Has(core.ActionUp) || in.Has(core.ActionFire) {
		g.bird.Velocity = -phys.JumpStrength
		g.bird.Rotation = phys.JumpTilt
	}

	g.bird.Velocity += phys.Gravity * dt
	g.bird.Y += g.bird.Velocity * dt

	if g.bird.Velocity > phys.TiltThreshold {
		g.bird.Rotation = math.Min(g.bird.Rotation+phys.RotationSpeed*dt, phys.MaxTilt)
	}

	g.score += g.pipes.Update(dt, g.bird.X, g.score, g.tickCount)

	if g.pipes.Collides(g.bird.X, g.bird.Y, g.bird.Radius) {
		g.crash()
	}

	// The ceiling blocks, the ground kills.
	if g.bird.Y-g.bird.Radius < 0 {
		g.bird.Y = g.bird.Radius
		g.bird.Velocity = 0
	}
	if g.bird.Y+g.bird.Radius >= g.groundY() {
		g.crash()
	}

	return core.StepResult{State: g.State()}
}

// stepGameOver lets the bird tumble off screen and fades the flash.
func (g *Game) stepGameOver(dt float64) {
	if g.bird.Y < g.cfg.World.Height+50 {
		g.bird.Velocity += g.cfg.Physics.Gravity * dt
		g.bird.Y += g.bird.Velocity * dt
		g.bird.Rotation += g.cfg.Physics.FallSpin * dt
	}
	g.flash = math.Max(0, g.flash-g.cfg.Effects.FlashDecay*dt)
}

func (g *Game) crash() {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.flash = g.cfg.Effects.FlashDuration
	g.best = core.Max(g.best, g.score)
}

func (g *Game) groundY() float64 {
	return g.cfg.World.Height - g.cfg.World.Ground
}

// Best returns the best score of this session.
func (g *Game) Best() int {
	return core.Max(g.best, g.score)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
