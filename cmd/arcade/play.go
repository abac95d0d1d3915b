package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termgames/internal/config"
	"github.com/vovakirdan/termgames/internal/core"
	"github.com/vovakirdan/termgames/internal/games/flappy"
	"github.com/vovakirdan/termgames/internal/games/shooter"
	"github.com/vovakirdan/termgames/internal/platform/tui"
	"github.com/vovakirdan/termgames/internal/registry"
	"github.com/vovakirdan/termgames/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Range controls:
  W/A/S/D       - Move
  Arrows/Mouse  - Look
  E/Left click  - Fire
  R             - Reload
  F             - Inspect
  1-4           - Rifle, pistol, knife, grenade
  T             - Reset targets
  Space         - Jump

Flappy controls:
  Space/Up      - Flap

Common:
  P/Esc         - Pause
  Enter/R       - Restart (after game over)
  Ctrl+S        - Screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play range
  arcade play range --difficulty hard
  arcade play flappy --difficulty easy
  arcade play flappy --config ./my-flappy.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the game config when the file changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	if err := configureGame(gameID); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := gameOptions(store)

	if flagWatch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		opts.Reload = watchConfig(ctx, gameID)
	}

	logger.Info("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if _, err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// configureGame checks and sets config path and difficulty before the game is
// created. Games fall back to defaults on a bad file, so errors surface here.
func configureGame(gameID string) error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("invalid --difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
	}

	switch gameID {
	case "flappy":
		if _, err := config.LoadFlappy(flagConfig); err != nil {
			return err
		}
		flappy.SetConfigPath(flagConfig)
		flappy.SetDifficultyPreset(flagDifficulty)
	case shooter.GameID:
		if _, err := config.LoadRange(flagConfig); err != nil {
			return err
		}
		shooter.SetConfigPath(flagConfig)
		shooter.SetDifficultyPreset(flagDifficulty)
	}
	return nil
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func gameOptions(store *storage.Store) tui.Options {
	return tui.Options{
		Store:         store,
		Logger:        logger,
		HoldWindow:    envCfg.HoldWindow(),
		ScreenshotDir: screenshotDir(),
	}
}

func screenshotDir() string {
	if envCfg.ScreenshotDir != "" {
		return envCfg.ScreenshotDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "screenshots")
}

// watchConfig forwards config file changes to the running game.
func watchConfig(ctx context.Context, gameID string) <-chan struct{} {
	path := config.ResolvePath(gameID, flagConfig)
	if path == "" {
		logger.Warn("no config file to watch", "game", gameID)
		return nil
	}

	reload := make(chan struct{}, 1)
	go func() {
		err := config.Watch(ctx, path, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
		if err != nil {
			logger.Error("config watcher stopped", "path", path, "err", err)
		}
	}()
	logger.Info("watching config", "path", path)
	return reload
}
