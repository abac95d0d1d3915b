package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/range.yaml
var defaultRangeYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:  800,
			Height: 450,
			Ground: 50,
		},
		Bird: FlappyBird{
			X:      100,
			Radius: 18,
		},
		Physics: FlappyPhysics{
			Gravity:       1100,
			JumpStrength:  380,
			PipeSpeed:     220,
			RotationSpeed: 180,
			FallSpin:      300,
			JumpTilt:      -25,
			MaxTilt:       90,
			TiltThreshold: 100,
		},
		Pipes: FlappyPipes{
			Count:       100,
			Width:       80,
			CapHeight:   30,
			Spacing:     320,
			GapSize:     140,
			Margin:      80,
			FirstOffset: 200,
		},
		Clouds: FlappyClouds{
			Count:    5,
			MinSpeed: 20,
			MaxSpeed: 50,
			MinSize:  30,
			MaxSize:  60,
			MinY:     20,
			MaxY:     150,
			WrapAt:   100,
		},
		Effects: FlappyEffects{
			FlashDuration: 1.0,
			FlashDecay:    3.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.6,
				GapReduction:     30,
				SpacingReduction: 60,
				MinGap:           100,
				MinSpacing:       220,
			},
		},
	}
}

// DefaultRangeConfig returns the default shooting range configuration.
func DefaultRangeConfig() RangeConfig {
	return RangeConfig{
		Player: RangePlayer{
			EyeHeight:       2,
			WalkSpeed:       6,
			Gravity:         18,
			JumpForce:       8,
			FOV:             75,
			LookSensitivity: 1.5,
			TurnSpeed:       120,
			Radius:          0.3,
			StartX:          0,
			StartZ:          -10,
			Health:          100,
		},
		Weapons: RangeWeapons{
			Rifle: WeaponSpec{
				Damage: 35, Cooldown: 0.1, Recoil: 0.2, RecoilPitch: 2.0, Spread: 0.05,
				Range: 1000, Magazine: 30, Reserve: 90, ReloadTime: 2.0, MuzzleFlash: 0.05,
			},
			Pistol: WeaponSpec{
				Damage: 25, Cooldown: 0.15, Recoil: 0.15, RecoilPitch: 1.5, Spread: 0.02,
				Range: 1000, Magazine: 20, Reserve: 120, ReloadTime: 1.5, MuzzleFlash: 0.05,
			},
			Knife: WeaponSpec{
				Damage: 55, Cooldown: 0.5, Recoil: -0.5, Range: 3.5,
			},
			Grenade: WeaponSpec{
				Cooldown: 1.0,
			},
			SwitchCooldown: 0.5,
			EquipRate:      3,
			EquipReady:     0.8,
		},
		Grenade: RangeGrenade{
			Count:         3,
			Fuse:          2,
			ThrowSpeed:    20,
			Lift:          0.2,
			Bounce:        0.5,
			Friction:      0.7,
			Radius:        8,
			Damage:        80,
			ExplosionTime: 0.5,
			Floor:         0.2,
			Fragments:     30,
			Smoke:         10,
		},
		Targets: RangeTargets{
			Count:              10,
			Health:             100,
			SpawnRange:         20,
			HeadshotMultiplier: 4,
			HitFlash:           0.2,
			DeathTime:          1.5,
			BloodParticles:     5,
		},
		Particles: RangeParticles{
			Capacity: 200,
		},
		Killfeed: RangeKillfeed{
			Size:     5,
			Duration: 5,
		},
		Scoring: RangeScoring{
			Kill:          100,
			HeadshotBonus: 100,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	case "range":
		return defaultRangeYAML
	default:
		return nil
	}
}
