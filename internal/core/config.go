package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// DT returns the fixed simulation step in seconds.
func (c RuntimeConfig) DT() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RoundStats summarizes a finished shooting round.
type RoundStats struct {
	Kills      int
	Headshots  int
	ShotsFired int
	ShotsHit   int
	Ticks      int
}

// Accuracy returns the hit ratio in [0, 1].
func (r RoundStats) Accuracy() float64 {
	if r.ShotsFired == 0 {
		return 0
	}
	return float64(r.ShotsHit) / float64(r.ShotsFired)
}
