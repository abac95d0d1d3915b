// Package shooter implements a first-person shooting range.
// The player walks a small walled yard, switches between a rifle, a pistol,
// a knife and grenades, and clears a set of training dummies. The world is
// raycast into the terminal grid on render.
package shooter

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/vovakirdan/termgames/internal/config"
	"github.com/vovakirdan/termgames/internal/core"
	"github.com/vovakirdan/termgames/internal/registry"
)

// GameID is the registry and score table key.
const GameID = "range"

// recoilPitchRate is the share of the pending camera kick applied per tick.
const recoilPitchRate = 0.1

// Game implements the shooting range logic.
type Game struct {
	cfg       config.RangeConfig
	loadout   Loadout
	runtime   core.RuntimeConfig
	rng       *rand.Rand
	player    Player
	world     *World
	grenade   Grenade
	particles *ParticlePool
	killfeed  *Killfeed
	score     int
	stats     core.RoundStats
	roundOver bool
	paused    bool
	frame     frameBuffers
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
	difficultyPreset = ""
}

// New creates a new shooting range instance.
func New() *Game {
	return &Game{world: NewWorld()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Shooting Range"
}

// WantsPointer asks the platform for every mouse motion event.
func (g *Game) WantsPointer() bool {
	return true
}

func loadConfig() (config.RangeConfig, error) {
	cfg, err := config.LoadRange(configPath)
	if err != nil {
		return config.DefaultRangeConfig(), err
	}
	config.ApplyRangePreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Reset starts a new round with a fresh player and range.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, _ := loadConfig()
	g.applyConfig(cfg)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.player = newPlayer(cfg)
	g.grenade = Grenade{}
	g.particles = NewParticlePool(cfg.Particles.Capacity)
	g.killfeed = NewKillfeed(cfg.Killfeed.Size, float32(cfg.Killfeed.Duration))
	g.paused = false
	g.resetRange()
}

// Reload re-reads the config file and applies it without restarting the round.
// Pool and feed sizes take effect on the next reset.
func (g *Game) Reload() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g.applyConfig(cfg)
	return nil
}

func (g *Game) applyConfig(cfg config.RangeConfig) {
	g.cfg = cfg
	g.loadout = NewLoadout(cfg.Weapons)
}

// resetRange rebuilds the level and targets. The player keeps position and ammo;
// a grenade still in flight is discarded.
func (g *Game) resetRange() {
	g.world.Reset(g.rng, g.cfg.Targets)
	g.grenade = Grenade{}
	g.particles.Clear()
	g.killfeed.Clear()
	g.score = 0
	g.stats = core.RoundStats{}
	g.roundOver = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := float32(g.runtime.DT())

	if g.roundOver {
		if in.Has(core.ActionResetRange) {
			g.resetRange()
		} else {
			g.updateEffects(dt)
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.stats.Ticks++
	p := &g.player

	if w, ok := weaponForAction(in); ok && w != p.Weapon {
		g.switchWeapon(w)
	}

	if in.Has(core.ActionInspect) && !p.Reloading && p.Weapon != WeaponGrenade {
		p.Inspecting = true
		p.InspectTimer = 0
	}

	if in.Has(core.ActionReload) && !p.Reloading && !p.Inspecting &&
		p.Weapon.UsesAmmo() && !p.magazineFull(g.loadout) && p.Reserve[p.Weapon] > 0 {
		p.Reloading = true
		p.ReloadTimer = 0
	}

	if in.Has(core.ActionResetRange) {
		g.resetRange()
	}

	g.look(in, dt)
	g.move(in, dt)
	g.applyGravity(in, dt)
	g.updateTimers(dt)
	g.handleFire(in)
	g.updateEffects(dt)
	g.world.UpdateTargets(dt)

	if g.world.ActiveTargets() == 0 {
		g.roundOver = true
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) switchWeapon(w WeaponType) {
	p := &g.player
	p.LastWeapon = p.Weapon
	p.Weapon = w
	p.EquipTimer = 0
	p.Cooldown = float32(g.cfg.Weapons.SwitchCooldown)
	p.Reloading = false
	p.ReloadTimer = 0
	p.Inspecting = false
}

// look turns the camera from pointer movement, arrow keys and pending recoil.
func (g *Game) look(in core.InputFrame, dt float32) {
	p := &g.player
	sens := float32(g.cfg.Player.LookSensitivity)
	turn := float32(g.cfg.Player.TurnSpeed) * dt

	dYaw := -float32(in.LookX) * sens
	dPitch := -float32(in.LookY) * sens
	if in.Held(core.ActionLookLeft) {
		dYaw += turn
	}
	if in.Held(core.ActionLookRight) {
		dYaw -= turn
	}
	if in.Held(core.ActionLookUp) {
		dPitch += turn
	}
	if in.Held(core.ActionLookDown) {
		dPitch -= turn
	}
	dPitch += p.RecoilPitch * recoilPitchRate

	p.Look(dYaw, dPitch)
	p.RecoilPitch = lerp(p.RecoilPitch, 0, dt*recoilDecay)

	target := mgl32.Vec2{-float32(in.LookX), -float32(in.LookY)}
	p.Sway[0] = mgl32.Clamp(lerp(p.Sway[0], target[0], dt*swayRate), -maxSway, maxSway)
	p.Sway[1] = mgl32.Clamp(lerp(p.Sway[1], target[1], dt*swayRate), -maxSway, maxSway)
}

// move walks on the XZ plane, resolving walls one axis at a time.
func (g *Game) move(in core.InputFrame, dt float32) {
	p := &g.player
	var fwdAmt, rightAmt float32
	if in.Held(core.ActionUp) {
		fwdAmt++
	}
	if in.Held(core.ActionDown) {
		fwdAmt--
	}
	if in.Held(core.ActionRight) {
		rightAmt++
	}
	if in.Held(core.ActionLeft) {
		rightAmt--
	}

	fwd, right := p.flatBasis()
	step := fwd.Mul(fwdAmt).Add(right.Mul(rightAmt))
	p.Moving = step.Len() > 0
	if !p.Moving {
		return
	}
	step = step.Normalize().Mul(float32(g.cfg.Player.WalkSpeed) * dt)

	eye := float32(g.cfg.Player.EyeHeight)
	radius := float32(g.cfg.Player.Radius)
	for _, axis := range [2]int{0, 2} {
		next := p.Pos
		next[axis] += step[axis]
		if !g.world.Blocked(p.Body(next, eye, radius)) {
			p.Pos = next
		}
	}

	floor := g.world.Floor()
	p.Pos[0] = mgl32.Clamp(p.Pos.X(), floor.Min.X()+radius, floor.Max.X()-radius)
	p.Pos[2] = mgl32.Clamp(p.Pos.Z(), floor.Min.Z()+radius, floor.Max.Z()-radius)
}

func (g *Game) applyGravity(in core.InputFrame, dt float32) {
	p := &g.player
	eye := float32(g.cfg.Player.EyeHeight)

	p.VelY -= float32(g.cfg.Player.Gravity) * dt
	p.Pos[1] += p.VelY * dt

	if p.Pos.Y() <= eye {
		p.Pos[1] = eye
		p.VelY = 0
		p.Grounded = true
	} else {
		p.Grounded = false
	}

	if in.Has(core.ActionJump) && p.Grounded {
		p.VelY = float32(g.cfg.Player.JumpForce)
	}
}

func (g *Game) updateTimers(dt float32) {
	p := &g.player

	if p.Moving && p.Grounded {
		p.WalkTimer += dt * walkCycleSpeed
	} else {
		p.WalkTimer = 0
	}

	p.EquipTimer = min(p.EquipTimer+float32(g.cfg.Weapons.EquipRate)*dt, 1)

	if p.Inspecting {
		p.InspectTimer += dt
		if p.InspectTimer > inspectLength {
			p.Inspecting = false
		}
	}

	if p.Reloading {
		p.ReloadTimer += dt
		if p.ReloadTimer >= float32(g.loadout.Spec(p.Weapon).ReloadTime) {
			p.finishReload(g.loadout)
		}
	}

	if p.Cooldown > 0 {
		p.Cooldown -= dt
	}
	p.decayRecoil(dt)
	if p.MuzzleFlash > 0 {
		p.MuzzleFlash -= dt
	}
}

func (g *Game) handleFire(in core.InputFrame) {
	p := &g.player

	var firing bool
	if p.Weapon == WeaponRifle {
		firing = in.Held(core.ActionFire)
	} else {
		firing = in.Has(core.ActionFire)
	}
	if !firing {
		return
	}

	// Pulling the trigger interrupts inspect and reload.
	if (p.Inspecting || p.Reloading) && p.Weapon != WeaponGrenade {
		p.Inspecting = false
		p.Reloading = false
		p.ReloadTimer = 0
	}

	if p.Cooldown > 0 || p.EquipTimer < float32(g.cfg.Weapons.EquipReady) || p.Reloading {
		return
	}

	spec := g.loadout.Spec(p.Weapon)
	switch p.Weapon {
	case WeaponRifle, WeaponPistol:
		if p.Ammo[p.Weapon] <= 0 {
			return
		}
		p.Ammo[p.Weapon]--
		p.Cooldown = float32(spec.Cooldown)
		p.Recoil = float32(spec.Recoil)
		p.RecoilPitch = float32(spec.RecoilPitch)
		p.MuzzleFlash = float32(spec.MuzzleFlash)
		g.shoot(spec, float32(spec.Spread))

	case WeaponKnife:
		p.Cooldown = float32(spec.Cooldown)
		p.Recoil = float32(spec.Recoil)
		g.shoot(spec, 0)

	case WeaponGrenade:
		if p.Grenades <= 0 || g.grenade.Active {
			return
		}
		p.Grenades--
		g.grenade.throw(p.Pos, p.Forward(), g.cfg.Grenade)
		p.Cooldown = float32(spec.Cooldown)
		p.EquipTimer = 0
	}
}

// shotResult is the nearest surface a shot met.
type shotResult struct {
	target   *Target
	headshot bool
	wall     bool
	hit      Hit
}

// shoot fires one hit-scan ray from the eye along the view.
func (g *Game) shoot(spec config.WeaponSpec, spread float32) {
	p := &g.player
	g.stats.ShotsFired++

	dir := p.Forward()
	if spread > 0 {
		dir[0] += g.randf(-100, 100, 0.0001) * spread
		dir[1] += g.randf(-100, 100, 0.0001) * spread
	}
	ray := Ray{Origin: p.Pos, Dir: dir.Normalize()}

	res, ok := g.traceShot(ray, float32(spec.Range))
	if !ok {
		return
	}

	if res.target != nil {
		g.stats.ShotsHit++
		dmg := spec.Damage
		if res.headshot {
			dmg *= g.cfg.Targets.HeadshotMultiplier
		}
		for i := 0; i < g.cfg.Targets.BloodParticles; i++ {
			vel := mgl32.Vec3{g.randf(-10, 10, 0.1), g.randf(0, 10, 0.1), g.randf(-10, 10, 0.1)}
			g.particles.Spawn(res.hit.Point, vel, core.ColorRed, 0.1, 0.5, ParticleBlood)
		}
		g.damageTarget(res.target, dmg, res.headshot, p.Weapon)
		return
	}

	g.particles.Spawn(res.hit.Point, res.hit.Normal.Mul(2), core.ColorYellow, 0.05, 0.2, ParticleSpark)
}

// traceShot finds the nearest live target or wall within maxRange.
// Within one target the head box wins over the body box.
func (g *Game) traceShot(ray Ray, maxRange float32) (shotResult, bool) {
	var best shotResult
	bestDist := maxRange
	found := false

	targets := g.world.Targets()
	for i := range targets {
		t := &targets[i]
		if !t.Alive() {
			continue
		}

		hit, head := Hit{}, false
		if h, ok := ray.IntersectBox(t.HeadBox()); ok && h.Distance < maxRange {
			hit, head = h, true
		} else if b, ok := ray.IntersectBox(t.BodyBox()); ok && b.Distance < maxRange {
			hit = b
		} else {
			continue
		}

		if hit.Distance < bestDist {
			bestDist = hit.Distance
			best = shotResult{target: t, headshot: head, hit: hit}
			found = true
		}
	}

	for _, w := range g.world.Walls() {
		if h, ok := ray.IntersectBox(w.Box); ok && h.Distance < bestDist {
			bestDist = h.Distance
			best = shotResult{wall: true, hit: h}
			found = true
		}
	}

	return best, found
}

// damageTarget applies damage and starts the death sequence exactly once.
func (g *Game) damageTarget(t *Target, dmg int, headshot bool, weapon WeaponType) {
	t.Health -= dmg
	t.HitTimer = float32(g.cfg.Targets.HitFlash)

	if t.Health <= 0 && t.DeathTimer == 0 {
		t.DeathTimer = float32(g.cfg.Targets.DeathTime)
		g.killfeed.Push("Player", t.Name(), weapon, headshot)
		g.stats.Kills++
		g.score += g.cfg.Scoring.Kill
		if headshot {
			g.stats.Headshots++
			g.score += g.cfg.Scoring.HeadshotBonus
		}
	}
}

// updateEffects advances the grenade, the particles and the killfeed.
func (g *Game) updateEffects(dt float32) {
	gravity := float32(g.cfg.Player.Gravity)
	if g.grenade.update(dt, gravity, g.cfg.Grenade) {
		g.explode()
	}
	g.particles.Update(dt, gravity)
	g.killfeed.Update(dt)
}

// explode spawns the blast effects and damages live targets in range.
func (g *Game) explode() {
	cfg := g.cfg.Grenade
	at := g.grenade.Pos

	for i := 0; i < cfg.Fragments; i++ {
		vel := mgl32.Vec3{g.randf(-50, 50, 0.1), g.randf(-50, 50, 0.1), g.randf(-50, 50, 0.1)}
		g.particles.Spawn(at, vel, core.ColorOrange, 0.5, 0.6, ParticleExplosion)
	}
	for i := 0; i < cfg.Smoke; i++ {
		vel := mgl32.Vec3{g.randf(-10, 10, 0.1), g.randf(5, 15, 0.1), g.randf(-10, 10, 0.1)}
		g.particles.Spawn(at, vel, core.ColorGray, 0.8, 1.5, ParticleSmoke)
	}

	targets := g.world.Targets()
	for i := range targets {
		t := &targets[i]
		if !t.Alive() {
			continue
		}
		if t.Pos.Sub(at).Len() < float32(cfg.Radius) {
			g.damageTarget(t, cfg.Damage, false, WeaponGrenade)
		}
	}
}

// randf returns an integer in [lo, hi] scaled by scale.
func (g *Game) randf(lo, hi int, scale float32) float32 {
	return float32(lo+g.rng.Intn(hi-lo+1)) * scale
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// RoundStats returns statistics for the current round.
func (g *Game) RoundStats() core.RoundStats {
	return g.stats
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.roundOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
