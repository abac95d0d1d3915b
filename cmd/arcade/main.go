// arcade runs terminal games: a first-person shooting range and a Flappy Bird clone.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH and/or HTTP servers
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn, error
//
// ARCADE_FPS, ARCADE_SEED, ARCADE_DB and ARCADE_LOG_LEVEL apply when the
// matching flag is not given.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termgames/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/termgames/internal/games/flappy"
	_ "github.com/vovakirdan/termgames/internal/games/shooter"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	envCfg  config.Env
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Terminal games: a shooting range and Flappy Bird",
	Long: `arcade plays real-time games directly in your terminal.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server and HTTP leaderboard
  scores   - View high scores

Examples:
  arcade list
  arcade play range
  arcade play flappy --difficulty hard
  arcade menu
  arcade serve --ssh :2222 --http :8080
  arcade scores range`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup applies environment overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	e, err := config.ParseEnv()
	if err != nil {
		return err
	}
	envCfg = e
	applyEnv(cmd, e)

	if err := validateFlags(); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}

	out, err := logOutput(cmd)
	if err != nil {
		return err
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "arcade",
		Level:           level,
	})
	return nil
}

// applyEnv copies ARCADE_* values into flags the user did not set.
func applyEnv(cmd *cobra.Command, e config.Env) {
	flags := cmd.Flags()
	if e.FPS > 0 && !flags.Changed("fps") {
		flagFPS = e.FPS
	}
	if e.Seed != 0 && !flags.Changed("seed") {
		flagSeed = e.Seed
	}
	if e.DB != "" && !flags.Changed("db") {
		flagDBPath = e.DB
	}
	if e.LogLevel != "" && !flags.Changed("log-level") {
		flagLogLevel = e.LogLevel
	}
}

func validateFlags() error {
	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	return nil
}

// logOutput keeps the alt screen clean: interactive commands log to a file
// or nowhere, serve logs to stderr.
func logOutput(cmd *cobra.Command) (io.Writer, error) {
	if flagLogFile != "" {
		path, err := expandHome(flagLogFile)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		return f, nil
	}
	if cmd.Name() == serveCmd.Name() {
		return os.Stderr, nil
	}
	return io.Discard, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
