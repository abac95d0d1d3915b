package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termgames/internal/config"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&flagFPS, "fps", 60, "")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "")
	cmd.Flags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestApplyEnvFillsUnsetFlags(t *testing.T) {
	cmd := newFlagCmd(t)
	applyEnv(cmd, config.Env{FPS: 30, Seed: 7, DB: "/tmp/a.db", LogLevel: "debug"})

	require.Equal(t, 30, flagFPS)
	require.Equal(t, int64(7), flagSeed)
	require.Equal(t, "/tmp/a.db", flagDBPath)
	require.Equal(t, "debug", flagLogLevel)
}

func TestApplyEnvKeepsExplicitFlags(t *testing.T) {
	cmd := newFlagCmd(t, "--fps", "120", "--db", "./scores.db")
	applyEnv(cmd, config.Env{FPS: 30, DB: "/tmp/a.db"})

	require.Equal(t, 120, flagFPS)
	require.Equal(t, "./scores.db", flagDBPath)
}

func TestApplyEnvIgnoresZeroValues(t *testing.T) {
	cmd := newFlagCmd(t)
	applyEnv(cmd, config.Env{})

	require.Equal(t, 60, flagFPS)
	require.Equal(t, int64(0), flagSeed)
	require.Equal(t, "info", flagLogLevel)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/player")

	got, err := expandHome("~/.arcade/arcade.log")
	require.NoError(t, err)
	require.Equal(t, "/home/player/.arcade/arcade.log", got)

	got, err = expandHome("./arcade.log")
	require.NoError(t, err)
	require.Equal(t, "./arcade.log", got)
}

func TestListShowsRegisteredGames(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	runList(cmd, nil)

	require.Contains(t, out.String(), "flappy")
	require.Contains(t, out.String(), "range")
	require.Contains(t, out.String(), "arcade play <id>")
}

func TestValidateFlagsRejectsNonPositiveFPS(t *testing.T) {
	for _, fps := range []int{0, -1} {
		newFlagCmd(t, "--fps", strconv.Itoa(fps))
		require.Error(t, validateFlags(), "fps %d", fps)
	}

	newFlagCmd(t, "--fps", "30")
	require.NoError(t, validateFlags())
}

func TestConfigureGameRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("targets: [unclosed"), 0o644))
	goodYAML := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(goodYAML, []byte("targets:\n  count: 3\n"), 0o644))

	tests := []struct {
		name       string
		gameID     string
		config     string
		difficulty string
		wantErr    bool
	}{
		{"defaults", "range", "", "", false},
		{"good file", "range", goodYAML, "hard", false},
		{"missing file", "range", filepath.Join(dir, "missing.yaml"), "", true},
		{"broken yaml", "range", badYAML, "", true},
		{"broken flappy yaml", "flappy", badYAML, "", true},
		{"unknown difficulty", "flappy", "", "insane", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagConfig, flagDifficulty = tt.config, tt.difficulty
			t.Cleanup(func() {
				flagConfig, flagDifficulty = "", ""
				_ = configureGame(tt.gameID)
			})

			err := configureGame(tt.gameID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
