package flappy

import (
	"math/rand"

	"github.com/vovakirdan/termgames/internal/config"
	"github.com/vovakirdan/termgames/internal/core"
)

// Pipe is a pair of vertical obstacles with a gap between them.
// Coordinates are world pixels.
type Pipe struct {
	X      float64 // left edge
	GapY   float64 // top of the gap
	Gap    float64 // gap height
	Passed bool    // scored already
}

// TopRect returns the collision rectangle for the top portion of the pipe.
func (p Pipe) TopRect(width float64) core.RectF {
	return core.RectF{X: p.X, Y: 0, W: width, H: p.GapY}
}

// BottomRect returns the collision rectangle for the bottom portion of the pipe.
func (p Pipe) BottomRect(width, worldH float64) core.RectF {
	bottomY := p.GapY + p.Gap
	return core.RectF{X: p.X, Y: bottomY, W: width, H: worldH - bottomY}
}

// PipeRing is a fixed set of pipes. Pipes that scroll off the left edge are
// recycled behind the furthest one instead of being freed.
type PipeRing struct {
	pipes      []Pipe
	rng        *rand.Rand
	cfg        *config.FlappyConfig
	difficulty *config.DifficultyManager
}

// NewPipeRing creates a pipe ring laid out for a new round.
func NewPipeRing(rng *rand.Rand, cfg *config.FlappyConfig, diff *config.DifficultyManager) *PipeRing {
	pr := &PipeRing{
		rng:        rng,
		cfg:        cfg,
		difficulty: diff,
	}
	pr.Reset()
	return pr
}

// UpdateConfig swaps the configuration without moving existing pipes.
func (pr *PipeRing) UpdateConfig(cfg *config.FlappyConfig, diff *config.DifficultyManager) {
	pr.cfg = cfg
	pr.difficulty = diff
}

// Reset lays out all pipes at their starting positions.
func (pr *PipeRing) Reset() {
	count := core.Max(pr.cfg.Pipes.Count, 1)
	if cap(pr.pipes) < count {
		pr.pipes = make([]Pipe, count)
	}
	pr.pipes = pr.pipes[:count]

	gap := pr.difficulty.GapSize(pr.cfg.Pipes.GapSize, 0, 0)
	for i := range pr.pipes {
		pr.pipes[i] = Pipe{
			X:    pr.cfg.World.Width + pr.cfg.Pipes.FirstOffset + float64(i)*pr.cfg.Pipes.Spacing,
			GapY: pr.randomGapY(gap),
			Gap:  gap,
		}
	}
}

// randomGapY picks an integer gap top in [margin, height - margin - gap].
func (pr *PipeRing) randomGapY(gap float64) float64 {
	lo := int(pr.cfg.Pipes.Margin)
	hi := int(pr.cfg.World.Height - pr.cfg.Pipes.Margin - gap)
	if hi <= lo {
		return float64(lo)
	}
	return float64(lo + pr.rng.Intn(hi-lo+1))
}

// Update scrolls every pipe left, recycles the ones that left the screen and
// returns how many pipes birdX moved past this tick.
func (pr *PipeRing) Update(dt, birdX float64, score, ticks int) int {
	speed := pr.difficulty.Speed(pr.cfg.Physics.PipeSpeed, score, ticks)
	for i := range pr.pipes {
		pr.pipes[i].X -= speed * dt
	}

	// Recycle after all pipes have moved so the furthest position is current.
	width := pr.cfg.Pipes.Width
	for i := range pr.pipes {
		if pr.pipes[i].X+width >= 0 {
			continue
		}
		gap := pr.difficulty.GapSize(pr.cfg.Pipes.GapSize, score, ticks)
		pr.pipes[i] = Pipe{
			X:    pr.Furthest() + pr.difficulty.Spacing(pr.cfg.Pipes.Spacing, score, ticks),
			GapY: pr.randomGapY(gap),
			Gap:  gap,
		}
	}

	passed := 0
	for i := range pr.pipes {
		if !pr.pipes[i].Passed && birdX > pr.pipes[i].X+width {
			pr.pipes[i].Passed = true
			passed++
		}
	}
	return passed
}

// Furthest returns the largest pipe X.
func (pr *PipeRing) Furthest() float64 {
	furthest := pr.pipes[0].X
	for _, p := range pr.pipes[1:] {
		if p.X > furthest {
			furthest = p.X
		}
	}
	return furthest
}

// Collides reports whether a circle touches any pipe.
func (pr *PipeRing) Collides(cx, cy, radius float64) bool {
	width := pr.cfg.Pipes.Width
	for _, p := range pr.pipes {
		// Pipes far from the bird cannot touch it.
		if p.X > cx+radius || p.X+width < cx-radius {
			continue
		}
		if core.CircleIntersectsRect(cx, cy, radius, p.TopRect(width)) ||
			core.CircleIntersectsRect(cx, cy, radius, p.BottomRect(width, pr.cfg.World.Height)) {
			return true
		}
	}
	return false
}

// Pipes returns the current pipes.
func (pr *PipeRing) Pipes() []Pipe {
	return pr.pipes
}

// Cloud is a background decoration that drifts left and wraps around.
type Cloud struct {
	X, Y  float64
	Speed float64
	Size  float64
}

// newClouds scatters clouds across the sky.
func newClouds(rng *rand.Rand, cfg config.FlappyClouds, worldW float64) []Cloud {
	clouds := make([]Cloud, cfg.Count)
	for i := range clouds {
		clouds[i] = Cloud{
			X:     float64(randRange(rng, 0, int(worldW))),
			Y:     float64(randRange(rng, cfg.MinY, cfg.MaxY)),
			Speed: float64(randRange(rng, cfg.MinSpeed, cfg.MaxSpeed)),
			Size:  float64(randRange(rng, cfg.MinSize, cfg.MaxSize)),
		}
	}
	return clouds
}

func updateClouds(clouds []Cloud, dt, worldW, wrapAt float64) {
	for i := range clouds {
		clouds[i].X -= clouds[i].Speed * dt
		if clouds[i].X < -wrapAt {
			clouds[i].X = worldW + wrapAt
		}
	}
}

// randRange returns an integer in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
