package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the ARCADE_* environment overrides. Zero values mean unset.
type Env struct {
	FPS           int    `env:"ARCADE_FPS"`
	Seed          int64  `env:"ARCADE_SEED"`
	DB            string `env:"ARCADE_DB"`
	ConfigDir     string `env:"ARCADE_CONFIG_DIR"`
	LogLevel      string `env:"ARCADE_LOG_LEVEL"`
	HoldMS        int    `env:"ARCADE_HOLD_MS"        envDefault:"250"`
	ScreenshotDir string `env:"ARCADE_SCREENSHOT_DIR"`
}

// ParseEnv loads overrides from the environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{HoldMS: 250}, fmt.Errorf("config: parse env: %w", err)
	}
	return e, nil
}

// HoldWindow is how long a key counts as held after its last press or repeat.
func (e Env) HoldWindow() time.Duration {
	if e.HoldMS <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(e.HoldMS) * time.Millisecond
}
