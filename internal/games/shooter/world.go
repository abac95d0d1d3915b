package shooter

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/vovakirdan/termgames/internal/config"
	"github.com/vovakirdan/termgames/internal/core"
)

// MaxWalls bounds the level geometry.
const MaxWalls = 100

// Target hitbox dimensions.
const (
	bodyHalf   = 0.4
	headHalf   = 0.3
	headBottom = 1.4
	headTop    = 1.9
)

// Wall is a solid box in the level. The first wall is the floor.
type Wall struct {
	Box   AABB
	Color core.Color
}

// Target is a training dummy standing on the floor.
type Target struct {
	ID         int
	Pos        mgl32.Vec3 // feet
	Active     bool
	Health     int
	HitTimer   float32
	DeathTimer float32
}

// Alive reports whether the target can still take damage.
func (t *Target) Alive() bool {
	return t.Active && t.Health > 0
}

// Name is the victim name shown in the killfeed.
func (t *Target) Name() string {
	return fmt.Sprintf("Bot %d", t.ID)
}

// HeadBox returns the head hitbox.
func (t *Target) HeadBox() AABB {
	return AABB{
		Min: mgl32.Vec3{t.Pos.X() - headHalf, headBottom, t.Pos.Z() - headHalf},
		Max: mgl32.Vec3{t.Pos.X() + headHalf, headTop, t.Pos.Z() + headHalf},
	}
}

// BodyBox returns the body hitbox from the feet to the neck.
func (t *Target) BodyBox() AABB {
	return AABB{
		Min: mgl32.Vec3{t.Pos.X() - bodyHalf, 0, t.Pos.Z() - bodyHalf},
		Max: mgl32.Vec3{t.Pos.X() + bodyHalf, headBottom, t.Pos.Z() + bodyHalf},
	}
}

// CorpseBox returns the box drawn while the death timer runs.
func (t *Target) CorpseBox() AABB {
	return BoxAt(mgl32.Vec3{t.Pos.X(), 0.2, t.Pos.Z()}, mgl32.Vec3{1.5, 0.4, 2.5})
}

// World holds the level geometry and the targets.
type World struct {
	walls   []Wall
	targets []Target
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{walls: make([]Wall, 0, MaxWalls)}
}

// AddWall appends a wall; it reports false when the level is full.
func (w *World) AddWall(center, size mgl32.Vec3, color core.Color) bool {
	if len(w.walls) >= MaxWalls {
		return false
	}
	w.walls = append(w.walls, Wall{Box: BoxAt(center, size), Color: color})
	return true
}

// Reset rebuilds the level and scatters fresh targets.
func (w *World) Reset(rng *rand.Rand, cfg config.RangeTargets) {
	w.walls = w.walls[:0]

	w.AddWall(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{60, 1, 60}, core.ColorGray)

	w.AddWall(mgl32.Vec3{-15, 2.5, 15}, mgl32.Vec3{10, 6, 1}, core.ColorDarkGray)
	w.AddWall(mgl32.Vec3{15, 2.5, -15}, mgl32.Vec3{10, 6, 1}, core.ColorDarkGray)

	w.AddWall(mgl32.Vec3{-5, 1, 5}, mgl32.Vec3{2, 2, 2}, core.ColorOrange)
	w.AddWall(mgl32.Vec3{5, 1.5, -5}, mgl32.Vec3{3, 3, 3}, core.ColorBeige)
	w.AddWall(mgl32.Vec3{0, 1, 10}, mgl32.Vec3{2, 2, 6}, core.ColorBrown)

	n := core.Max(cfg.Count, 0)
	if cap(w.targets) < n {
		w.targets = make([]Target, n)
	}
	w.targets = w.targets[:n]
	spread := core.Max(cfg.SpawnRange, 0)
	for i := range w.targets {
		x := rng.Intn(2*spread+1) - spread
		z := rng.Intn(2*spread+1) - spread
		w.targets[i] = Target{
			ID:     i + 1,
			Pos:    mgl32.Vec3{float32(x), 0, float32(z)},
			Active: true,
			Health: cfg.Health,
		}
	}
}

// Walls returns the level geometry.
func (w *World) Walls() []Wall {
	return w.walls
}

// Targets returns the targets, including inactive ones.
func (w *World) Targets() []Target {
	return w.targets
}

// Floor returns the floor box.
func (w *World) Floor() AABB {
	if len(w.walls) == 0 {
		return AABB{}
	}
	return w.walls[0].Box
}

// Blocked reports whether a body box overlaps any wall above the floor.
func (w *World) Blocked(body AABB) bool {
	for i := 1; i < len(w.walls); i++ {
		if w.walls[i].Box.Intersects(body) {
			return true
		}
	}
	return false
}

// ActiveTargets counts targets that are alive or still falling over.
func (w *World) ActiveTargets() int {
	n := 0
	for i := range w.targets {
		if w.targets[i].Active {
			n++
		}
	}
	return n
}

// UpdateTargets decays hit flashes and retires targets whose death timer ran out.
func (w *World) UpdateTargets(dt float32) {
	for i := range w.targets {
		t := &w.targets[i]
		if !t.Active {
			continue
		}
		if t.HitTimer > 0 {
			t.HitTimer = max(t.HitTimer-dt, 0)
		}
		if t.Health <= 0 {
			t.DeathTimer -= dt
			if t.DeathTimer <= 0 {
				t.Active = false
			}
		}
	}
}

// aliveTargets counts targets that can still be shot.
func (w *World) aliveTargets() int {
	n := 0
	for i := range w.targets {
		if w.targets[i].Alive() {
			n++
		}
	}
	return n
}
