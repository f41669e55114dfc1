package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/ledger"
	"github.com/vovakirdan/tui-memory/internal/registry"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show the leaderboard for a board",
	Long: `Display the fastest games for a board size.

Results are ranked by time, then by moves. Each board size keeps its own
leaderboard.

Examples:
  memory scores easy
  memory scores 4x5 -n 10
  memory scores clear 6x6`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear <board>",
	Short: "Delete every score for a board",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 0, "Number of scores to show (default from config)")
	scoresCmd.AddCommand(scoresClearCmd)
}

// scoresLedger resolves the board argument and opens the ledger, exiting on
// failure.
func scoresLedger(arg string) (registry.BoardInfo, *ledger.Ledger, func()) {
	board, err := registry.Resolve(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'memory list' to see available boards.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("memory", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l, kv, err := openLedger(logger)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	return board, l, func() {
		kv.Close()
		closeLog()
	}
}

func runScores(cmd *cobra.Command, args []string) {
	board, l, done := scoresLedger(args[0])
	defer done()

	ctx := context.Background()
	n := flagScoresLimit
	if n <= 0 {
		n = l.Display()
	}
	entries := l.TopN(ctx, board.Key(), n)

	fmt.Printf("Leaderboard for %s\n", board)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("Be the first to finish a game!")
		return
	}

	maxName := len("Player")
	for _, e := range entries {
		if len(e.PlayerName) > maxName {
			maxName = len(e.PlayerName)
		}
	}

	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "#", maxName, "Player", "Time", "Moves")
	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "-", maxName, "------", "----", "-----")

	for _, e := range entries {
		fmt.Printf("  %-4d  %-*s  %-8s  %d\n", e.Rank, maxName, e.PlayerName, game.FormatElapsed(e.TimeElapsed), e.Moves)
	}

	if best, ok := l.Best(ctx, board.Key()); ok {
		fmt.Println()
		fmt.Printf("Best: %s by %s in %d moves\n", game.FormatElapsed(best.TimeElapsed), best.PlayerName, best.Moves)
	}
}

func runScoresClear(cmd *cobra.Command, args []string) {
	board, l, done := scoresLedger(args[0])
	defer done()

	if err := l.Clear(context.Background(), board.Key()); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleared leaderboard for %s\n", board)
}
