package shooter

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vovakirdan/termgames/internal/config"
)

// Grenade is the single in-flight grenade. Only one may exist at a time.
type Grenade struct {
	Pos       mgl32.Vec3
	Vel       mgl32.Vec3
	Timer     float32 // fuse while flying, linger while exploding
	Active    bool
	Exploding bool
}

// throw launches the grenade from origin along dir with a bit of lift.
func (gr *Grenade) throw(origin, dir mgl32.Vec3, cfg config.RangeGrenade) {
	dir = dir.Normalize()
	dir[1] += float32(cfg.Lift)
	*gr = Grenade{
		Pos:    origin,
		Vel:    dir.Mul(float32(cfg.ThrowSpeed)),
		Timer:  float32(cfg.Fuse),
		Active: true,
	}
}

// update advances the grenade and reports true on the tick the fuse runs out.
func (gr *Grenade) update(dt, gravity float32, cfg config.RangeGrenade) (detonated bool) {
	if !gr.Active {
		return false
	}

	if gr.Exploding {
		gr.Timer -= dt
		if gr.Timer <= 0 {
			gr.Active = false
			gr.Exploding = false
		}
		return false
	}

	gr.Vel[1] -= gravity * dt
	gr.Pos = gr.Pos.Add(gr.Vel.Mul(dt))

	if floor := float32(cfg.Floor); gr.Pos.Y() < floor {
		gr.Pos[1] = floor
		gr.Vel[1] *= -float32(cfg.Bounce)
		gr.Vel[0] *= float32(cfg.Friction)
		gr.Vel[2] *= float32(cfg.Friction)
	}

	gr.Timer -= dt
	if gr.Timer <= 0 {
		gr.Exploding = true
		gr.Timer = float32(cfg.ExplosionTime)
		return true
	}
	return false
}
