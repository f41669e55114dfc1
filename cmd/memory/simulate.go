package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/ledger"
	"github.com/vovakirdan/tui-memory/internal/registry"
	"github.com/vovakirdan/tui-memory/internal/session"
)

var (
	flagSimGames  int
	flagSimRecall float64
	flagSimName   string
	flagSimThink  time.Duration
	flagSimSettle time.Duration
	flagSimRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [board]",
	Short: "Let a bot play headless games",
	Long: `Play games without a terminal UI using a bot that remembers the
tiles it has seen. Useful for checking timings and seeding leaderboards.

--recall sets the chance that the bot remembers a tile it saw (1 = perfect).
With --record finished games are submitted to the leaderboard.

Examples:
  memory simulate
  memory simulate hard --games 5 --recall 0.6
  memory simulate 4x5 --record --name robot --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&flagSimGames, "games", "g", 1, "Number of games to play")
	simulateCmd.Flags().Float64Var(&flagSimRecall, "recall", 1, "Chance the bot remembers a seen tile (0-1)")
	simulateCmd.Flags().StringVar(&flagSimName, "name", "bot", "Player name for recorded results")
	simulateCmd.Flags().DurationVar(&flagSimThink, "think", 50*time.Millisecond, "Pause between bot flips")
	simulateCmd.Flags().DurationVar(&flagSimSettle, "settle", 0, "Pair settle delay (default from config)")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Submit finished games to the leaderboard")
}

func runSimulate(_ *cobra.Command, args []string) {
	boards := registry.List()
	if len(boards) == 0 && len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no boards configured")
		os.Exit(1)
	}
	var board registry.BoardInfo
	if len(args) == 0 {
		board = boards[0]
	} else {
		b, err := registry.Resolve(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		board = b
	}
	if flagSimGames < 1 {
		fmt.Fprintln(os.Stderr, "Error: --games must be at least 1")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("memory-sim", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var sink session.ResultSink
	if flagSimRecord {
		l, kv, err := openLedger(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
			os.Exit(1)
		}
		defer kv.Close()
		sink = l
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	settle := appConfig.Timing.SettleDelay
	if flagSimSettle > 0 {
		settle = flagSimSettle
	}
	cfg := session.RunnerConfig{
		SettleDelay: settle,
		Tick:        appConfig.Timing.Tick,
		Think:       flagSimThink,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Simulating %d game(s) on %s\n\n", flagSimGames, board)

	var results []ledger.GameResult
	for i := range flagSimGames {
		s := session.New(flagSimName, board.Size, session.Options{
			RNG:    rng,
			Sink:   sink,
			Logger: logger,
		})
		bot := session.NewBot(rng)
		bot.Recall = flagSimRecall

		result, err := session.NewRunner(s, bot, cfg).Run(ctx)
		if errors.Is(err, context.Canceled) {
			fmt.Println("Interrupted.")
			break
		}

		status := ""
		if s.Recorded() {
			status = " (on the leaderboard)"
		}
		fmt.Printf("  Game %d: %d moves, %s%s\n", i+1, result.Moves, game.FormatElapsed(result.TimeElapsed), status)
		results = append(results, result)
	}

	if len(results) > 1 {
		var moves, secs int
		for _, r := range results {
			moves += r.Moves
			secs += r.TimeElapsed
		}
		n := float64(len(results))
		fmt.Println()
		fmt.Printf("Average: %.1f moves, %.1fs\n", float64(moves)/n, float64(secs)/n)
	}
}
