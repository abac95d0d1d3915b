package shooter

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vovakirdan/termgames/internal/core"
)

// ParticleKind selects how a particle moves and is drawn.
type ParticleKind int

const (
	ParticleBlood ParticleKind = iota
	ParticleSpark
	ParticleExplosion
	ParticleSmoke
)

// Particle is one short-lived effect element.
type Particle struct {
	Pos     mgl32.Vec3
	Vel     mgl32.Vec3
	Color   core.Color
	Size    float32
	Life    float32
	MaxLife float32
	Kind    ParticleKind
	Active  bool
}

// Fade returns the remaining life in [0, 1].
func (p Particle) Fade() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return mgl32.Clamp(p.Life/p.MaxLife, 0, 1)
}

// ParticlePool is a fixed array of particles allocated by linear scan.
type ParticlePool struct {
	items []Particle
}

// NewParticlePool creates a pool with room for capacity particles.
func NewParticlePool(capacity int) *ParticlePool {
	return &ParticlePool{items: make([]Particle, core.Max(capacity, 0))}
}

// Spawn claims the first free slot. A full pool drops the particle.
func (pp *ParticlePool) Spawn(pos, vel mgl32.Vec3, color core.Color, size, life float32, kind ParticleKind) bool {
	for i := range pp.items {
		if pp.items[i].Active {
			continue
		}
		pp.items[i] = Particle{
			Pos:     pos,
			Vel:     vel,
			Color:   color,
			Size:    size,
			Life:    life,
			MaxLife: life,
			Kind:    kind,
			Active:  true,
		}
		return true
	}
	return false
}

// Update integrates every live particle and frees the expired ones.
func (pp *ParticlePool) Update(dt, gravity float32) {
	for i := range pp.items {
		p := &pp.items[i]
		if !p.Active {
			continue
		}

		p.Life -= dt
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))

		switch p.Kind {
		case ParticleBlood:
			p.Vel[1] -= gravity * dt
		case ParticleExplosion:
			p.Size += dt * 10
		case ParticleSmoke:
			p.Vel[1] += 2 * dt
			p.Size += dt * 2
		}

		if p.Life <= 0 {
			p.Active = false
		}
	}
}

// Clear frees every slot.
func (pp *ParticlePool) Clear() {
	for i := range pp.items {
		pp.items[i].Active = false
	}
}

// Active returns the number of live particles.
func (pp *ParticlePool) Active() int {
	n := 0
	for i := range pp.items {
		if pp.items[i].Active {
			n++
		}
	}
	return n
}

// Cap returns the pool capacity.
func (pp *ParticlePool) Cap() int {
	return len(pp.items)
}

// Each calls fn for every live particle.
func (pp *ParticlePool) Each(fn func(p *Particle)) {
	for i := range pp.items {
		if pp.items[i].Active {
			fn(&pp.items[i])
		}
	}
}
