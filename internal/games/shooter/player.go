package shooter

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/vovakirdan/termgames/internal/config"
)

const (
	maxPitch       = 89
	inspectLength  = 2 * math.Pi
	recoilDecay    = 5
	swayRate       = 5
	maxSway        = 3
	walkCycleSpeed = 10
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Player is the first-person body, camera and weapon state.
type Player struct {
	Pos      mgl32.Vec3 // eye position
	Yaw      float32    // degrees, 0 looks down +Z
	Pitch    float32    // degrees, positive looks up
	VelY     float32
	Grounded bool
	Moving   bool

	Weapon     WeaponType
	LastWeapon WeaponType
	Ammo       [numWeapons]int
	Reserve    [numWeapons]int
	Grenades   int
	Health     int

	Cooldown    float32
	Recoil      float32 // viewmodel kick, negative while stabbing
	RecoilPitch float32 // camera kick still to be absorbed
	EquipTimer  float32
	WalkTimer   float32
	Sway        mgl32.Vec2
	MuzzleFlash float32

	Reloading    bool
	ReloadTimer  float32
	Inspecting   bool
	InspectTimer float32
}

// newPlayer spawns a player with a full loadout and the rifle drawn.
func newPlayer(cfg config.RangeConfig) Player {
	p := Player{
		Pos:        mgl32.Vec3{float32(cfg.Player.StartX), float32(cfg.Player.EyeHeight), float32(cfg.Player.StartZ)},
		Grounded:   true,
		Weapon:     WeaponRifle,
		LastWeapon: WeaponRifle,
		Grenades:   cfg.Grenade.Count,
		Health:     cfg.Player.Health,
		EquipTimer: 1,
	}
	p.Ammo[WeaponRifle] = cfg.Weapons.Rifle.Magazine
	p.Reserve[WeaponRifle] = cfg.Weapons.Rifle.Reserve
	p.Ammo[WeaponPistol] = cfg.Weapons.Pistol.Magazine
	p.Reserve[WeaponPistol] = cfg.Weapons.Pistol.Reserve
	return p
}

// Forward returns the unit view direction.
func (p *Player) Forward() mgl32.Vec3 {
	yaw := mgl32.DegToRad(p.Yaw)
	pitch := mgl32.DegToRad(p.Pitch)
	cp := float32(math.Cos(float64(pitch)))
	return mgl32.Vec3{
		cp * float32(math.Sin(float64(yaw))),
		float32(math.Sin(float64(pitch))),
		cp * float32(math.Cos(float64(yaw))),
	}
}

// Right returns the unit vector to the right of the view.
func (p *Player) Right() mgl32.Vec3 {
	return p.Forward().Cross(worldUp).Normalize()
}

// Up returns the camera up vector.
func (p *Player) Up() mgl32.Vec3 {
	return p.Right().Cross(p.Forward()).Normalize()
}

// flatBasis returns the walking directions on the XZ plane.
func (p *Player) flatBasis() (forward, right mgl32.Vec3) {
	yaw := float64(mgl32.DegToRad(p.Yaw))
	forward = mgl32.Vec3{float32(math.Sin(yaw)), 0, float32(math.Cos(yaw))}
	right = mgl32.Vec3{-forward.Z(), 0, forward.X()}
	return forward, right
}

// Look turns the camera by the given degrees and clamps the pitch.
func (p *Player) Look(dYaw, dPitch float32) {
	p.Yaw = float32(math.Mod(float64(p.Yaw+dYaw), 360))
	p.Pitch = mgl32.Clamp(p.Pitch+dPitch, -maxPitch, maxPitch)
}

// Body returns the player's collision box at eye position pos.
func (p *Player) Body(pos mgl32.Vec3, eyeHeight, radius float32) AABB {
	// Lift the feet slightly so standing on the floor is not a collision.
	return AABB{
		Min: mgl32.Vec3{pos.X() - radius, pos.Y() - eyeHeight + 0.01, pos.Z() - radius},
		Max: mgl32.Vec3{pos.X() + radius, pos.Y(), pos.Z() + radius},
	}
}

// magazineFull reports whether the current weapon needs no reload.
func (p *Player) magazineFull(l Loadout) bool {
	return p.Ammo[p.Weapon] >= l.Spec(p.Weapon).Magazine
}

// finishReload moves min(needed, reserve) rounds into the magazine.
func (p *Player) finishReload(l Loadout) {
	w := p.Weapon
	if w.UsesAmmo() {
		needed := l.Spec(w).Magazine - p.Ammo[w]
		take := min(max(needed, 0), p.Reserve[w])
		p.Ammo[w] += take
		p.Reserve[w] -= take
	}
	p.Reloading = false
	p.ReloadTimer = 0
}

// decayRecoil moves the viewmodel kick back to rest from either side.
func (p *Player) decayRecoil(dt float32) {
	step := dt * recoilDecay
	switch {
	case p.Recoil > 0:
		p.Recoil = max(p.Recoil-step, 0)
	case p.Recoil < 0:
		p.Recoil = min(p.Recoil+step, 0)
	}
}
