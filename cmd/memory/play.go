package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/registry"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a game",
	Long: `Play a game of memory in the terminal.

The board is a preset id (see 'memory list') or any RxC size with an even
number of tiles. With both a board and --name the game starts at once;
otherwise the start screen asks for what is missing.

Controls:
  Arrows/hjkl  Move cursor
  Space/Enter  Flip tile
  m            Toggle sound
  q/Esc        Quit game

Examples:
  memory play
  memory play hard --name Ann
  memory play 2x4 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagName, "name", "n", "", "Player name")
}

func runPlay(cmd *cobra.Command, args []string) {
	var board string
	if len(args) == 1 {
		b, err := registry.Resolve(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'memory list' to see available boards.")
			os.Exit(1)
		}
		board = b.ID
	}

	logger, closeLog, err := newLogger("memory", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Continue without a leaderboard if storage fails
	deps := tui.Deps{Config: appConfig, Logger: logger, Seed: flagSeed}
	l, kv, err := openLedger(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open score storage: %v\n", err)
		kv = storage.NewMemory()
	} else {
		deps.Ledger = l
	}
	defer kv.Close()
	deps.KV = kv

	// Get terminal size
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	result, err := tui.Run(deps, tui.Options{
		Player: flagName,
		Board:  board,
		Bell:   os.Stderr,
		Width:  width,
		Height: height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	if result.Completed {
		fmt.Printf("%s cleared %s in %d moves, %s.\n",
			result.PlayerName, result.BoardSize.Key(), result.Moves, game.FormatElapsed(result.TimeElapsed))
	}
}
