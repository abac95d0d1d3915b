package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads Flappy Bird configuration.
// Search order: customPath -> user config dir -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load("flappy", customPath, defaultFlappyYAML, DefaultFlappyConfig)
}

// LoadRange loads shooting range configuration.
// Search order: customPath -> user config dir -> ./configs/range.yaml -> embedded default
func LoadRange(customPath string) (RangeConfig, error) {
	return load("range", customPath, defaultRangeYAML, DefaultRangeConfig)
}

// load decodes the first config found for gameID on top of the hardcoded
// defaults, so partial files only override the keys they set.
func load[T any](gameID, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths(gameID) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := defaults()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ResolvePath returns the config file that LoadFlappy/LoadRange would read
// for gameID, or "" when only the embedded default applies.
func ResolvePath(gameID, customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths(gameID) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func searchPaths(gameID string) []string {
	filename := gameID + ".yaml"
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
// ARCADE_CONFIG_DIR replaces ~/.arcade/configs when set.
func userConfigPath(filename string) string {
	if env, err := ParseEnv(); err == nil && env.ConfigDir != "" {
		return filepath.Join(env.ConfigDir, filename)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyRangePreset adjusts target toughness and ammo for a preset.
// The range has no progression, so fixed and normal leave it unchanged.
func ApplyRangePreset(cfg *RangeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Targets.Health = 60
		cfg.Weapons.Rifle.Reserve *= 2
		cfg.Weapons.Pistol.Reserve *= 2
		cfg.Grenade.Count += 2
	case DifficultyHard:
		cfg.Targets.Health = 150
		cfg.Weapons.Rifle.Reserve /= 2
		cfg.Weapons.Pistol.Reserve /= 2
		cfg.Grenade.Count = 1
	}
}
