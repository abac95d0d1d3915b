package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termgames/internal/registry"
	"github.com/vovakirdan/termgames/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.
For the range, lifetime kill and accuracy totals are shown too.

Examples:
  arcade scores flappy
  arcade scores range --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n", game.Title())
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(out, "Best: %d\n", best)
	}

	totals, err := store.GetRoundTotals(gameID)
	if err != nil {
		logger.Warn("round totals unavailable", "game", gameID, "err", err)
		return nil
	}
	printRoundTotals(out, totals)
	return nil
}

func printRoundTotals(out io.Writer, t *storage.RoundTotals) {
	if t == nil || t.Rounds == 0 {
		return
	}
	fmt.Fprintf(out, "Rounds: %d  Kills: %d  Headshots: %.0f%%  Accuracy: %.0f%%\n",
		t.Rounds, t.Kills, t.HeadshotRatio()*100, t.Accuracy()*100)
}
