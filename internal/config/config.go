// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// FlappyConfig contains all configuration for the Flappy Bird game.
// Distances are logical world pixels, times are seconds, angles are degrees.
type FlappyConfig struct {
	World      FlappyWorld      `yaml:"world"`
	Bird       FlappyBird       `yaml:"bird"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Pipes      FlappyPipes      `yaml:"pipes"`
	Clouds     FlappyClouds     `yaml:"clouds"`
	Effects    FlappyEffects    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyWorld defines the logical playfield.
type FlappyWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Ground float64 `yaml:"ground"` // height of the ground strip at the bottom
}

// FlappyBird defines the bird body.
type FlappyBird struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	JumpStrength  float64 `yaml:"jump_strength"`
	PipeSpeed     float64 `yaml:"pipe_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"` // deg/s while falling
	FallSpin      float64 `yaml:"fall_spin"`      // deg/s after game over
	JumpTilt      float64 `yaml:"jump_tilt"`
	MaxTilt       float64 `yaml:"max_tilt"`
	TiltThreshold float64 `yaml:"tilt_threshold"` // fall velocity that starts the nose dive
}

// FlappyPipes defines the pipe ring.
type FlappyPipes struct {
	Count       int     `yaml:"count"`
	Width       float64 `yaml:"width"`
	CapHeight   float64 `yaml:"cap_height"`
	Spacing     float64 `yaml:"spacing"`
	GapSize     float64 `yaml:"gap_size"`
	Margin      float64 `yaml:"margin"`
	FirstOffset float64 `yaml:"first_offset"`
}

// FlappyClouds defines the background clouds.
type FlappyClouds struct {
	Count    int     `yaml:"count"`
	MinSpeed int     `yaml:"min_speed"`
	MaxSpeed int     `yaml:"max_speed"`
	MinSize  int     `yaml:"min_size"`
	MaxSize  int     `yaml:"max_size"`
	MinY     int     `yaml:"min_y"`
	MaxY     int     `yaml:"max_y"`
	WrapAt   float64 `yaml:"wrap_at"`
}

// FlappyEffects defines the crash flash.
type FlappyEffects struct {
	FlashDuration float64 `yaml:"flash_duration"`
	FlashDecay    float64 `yaml:"flash_decay"` // per second
}

// RangeConfig contains all configuration for the shooting range.
// Distances are world units, times are seconds, angles are degrees.
type RangeConfig struct {
	Player    RangePlayer    `yaml:"player"`
	Weapons   RangeWeapons   `yaml:"weapons"`
	Grenade   RangeGrenade   `yaml:"grenade"`
	Targets   RangeTargets   `yaml:"targets"`
	Particles RangeParticles `yaml:"particles"`
	Killfeed  RangeKillfeed  `yaml:"killfeed"`
	Scoring   RangeScoring   `yaml:"scoring"`
}

// RangePlayer defines the first-person body and camera.
type RangePlayer struct {
	EyeHeight       float64 `yaml:"eye_height"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	Gravity         float64 `yaml:"gravity"`
	JumpForce       float64 `yaml:"jump_force"`
	FOV             float64 `yaml:"fov"`
	LookSensitivity float64 `yaml:"look_sensitivity"` // degrees per pointer cell
	TurnSpeed       float64 `yaml:"turn_speed"`       // degrees per second for arrow keys
	Radius          float64 `yaml:"radius"`
	StartX          float64 `yaml:"start_x"`
	StartZ          float64 `yaml:"start_z"`
	Health          int     `yaml:"health"`
}

// WeaponSpec defines one weapon's stats.
type WeaponSpec struct {
	Damage      int     `yaml:"damage"`
	Cooldown    float64 `yaml:"cooldown"`
	Recoil      float64 `yaml:"recoil"`       // viewmodel kick, negative stabs forward
	RecoilPitch float64 `yaml:"recoil_pitch"` // camera kick in degrees
	Spread      float64 `yaml:"spread"`
	Range       float64 `yaml:"range"`
	Magazine    int     `yaml:"magazine"`
	Reserve     int     `yaml:"reserve"`
	ReloadTime  float64 `yaml:"reload_time"`
	MuzzleFlash float64 `yaml:"muzzle_flash"`
}

// RangeWeapons defines the loadout and the switching rules.
type RangeWeapons struct {
	Rifle          WeaponSpec `yaml:"rifle"`
	Pistol         WeaponSpec `yaml:"pistol"`
	Knife          WeaponSpec `yaml:"knife"`
	Grenade        WeaponSpec `yaml:"grenade"`
	SwitchCooldown float64    `yaml:"switch_cooldown"`
	EquipRate      float64    `yaml:"equip_rate"`  // equip progress per second
	EquipReady     float64    `yaml:"equip_ready"` // equip progress needed to fire
}

// RangeGrenade defines grenade flight and explosion.
type RangeGrenade struct {
	Count         int     `yaml:"count"`
	Fuse          float64 `yaml:"fuse"`
	ThrowSpeed    float64 `yaml:"throw_speed"`
	Lift          float64 `yaml:"lift"`
	Bounce        float64 `yaml:"bounce"`
	Friction      float64 `yaml:"friction"`
	Radius        float64 `yaml:"radius"`
	Damage        int     `yaml:"damage"`
	ExplosionTime float64 `yaml:"explosion_time"`
	Floor         float64 `yaml:"floor"`
	Fragments     int     `yaml:"fragments"`
	Smoke         int     `yaml:"smoke"`
}

// RangeTargets defines the dummies.
type RangeTargets struct {
	Count              int     `yaml:"count"`
	Health             int     `yaml:"health"`
	SpawnRange         int     `yaml:"spawn_range"`
	HeadshotMultiplier int     `yaml:"headshot_multiplier"`
	HitFlash           float64 `yaml:"hit_flash"`
	DeathTime          float64 `yaml:"death_time"`
	BloodParticles     int     `yaml:"blood_particles"`
}

// RangeParticles defines the particle pool.
type RangeParticles struct {
	Capacity int `yaml:"capacity"`
}

// RangeKillfeed defines the kill feed.
type RangeKillfeed struct {
	Size     int     `yaml:"size"`
	Duration float64 `yaml:"duration"`
}

// RangeScoring defines points per kill.
type RangeScoring struct {
	Kill          int `yaml:"kill"`
	HeadshotBonus int `yaml:"headshot_bonus"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     float64 `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction float64 `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
	MinGap           float64 `yaml:"min_gap"`
	MinSpacing       float64 `yaml:"min_spacing"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
