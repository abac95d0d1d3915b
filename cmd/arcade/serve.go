package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/termgames/internal/games/shooter"
	"github.com/vovakirdan/termgames/internal/platform/tui"
	"github.com/vovakirdan/termgames/internal/storage"
	"github.com/vovakirdan/termgames/internal/web"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server and HTTP leaderboard",
	Long: `Start an SSH server that lets users connect and play games, and
optionally a read-only HTTP leaderboard API.

Each SSH connection gets its own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Set --ssh "" to run only the HTTP API, or leave --http empty to run only SSH.

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --http :8080              # Also serve /api/scores, /api/stats, /api/rounds
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP leaderboard address (host:port), empty to disable")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: set --ssh or --http")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error

	if flagSSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
			HoldWindow:  envCfg.HoldWindow(),
		}, store, logger)
		if err != nil {
			return fmt.Errorf("create ssh server: %w", err)
		}
		servers = append(servers, sshServer.ListenAndServe)
	}

	if flagHTTPAddr != "" {
		router := web.New(store, logger, flagFPS, shooter.GameID).Router()
		servers = append(servers, func(ctx context.Context) error {
			return web.ListenAndServe(ctx, flagHTTPAddr, router, logger)
		})
	}

	logger.Info("press Ctrl+C to stop")
	if err := serveAll(ctx, servers); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// serveAll runs every server until ctx ends. The first failure stops the rest.
func serveAll(ctx context.Context, servers []func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, serve := range servers {
		g.Go(func() error {
			return serve(ctx)
		})
	}
	return g.Wait()
}
