// memory is a terminal memory-matching game.
//
// Usage:
//
//	memory list                 - List board sizes
//	memory play [size]          - Play (start screen when no size/name given)
//	memory scores <size>        - Show the leaderboard for a board
//	memory scores clear <size>  - Clear a leaderboard
//	memory serve                - Start SSH server for remote play
//	memory api                  - Serve the leaderboards as JSON
//	memory simulate [size]      - Let a bot play headless games
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible boards
//	--db <dsn>        - Storage: SQLite path, "memory" or redis:// URL
//	--config <path>   - Configuration YAML
//	--log-file <path> - Write logs to a file
//	--debug           - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/registry"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool

	// Loaded in PersistentPreRunE
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memory",
	Short: "Memory - match pairs of tiles in your terminal",
	Long: `Memory is a terminal concentration game: flip two tiles at a time,
find every pair, and beat the leaderboard for your board size.

Available commands:
  list      - Show board sizes
  play      - Play a game
  scores    - View or clear leaderboards
  serve     - Start SSH server for remote play
  api       - Serve leaderboards over HTTP
  simulate  - Watch a bot play headless games

Examples:
  memory play
  memory play hard --name Ann
  memory scores 4x5
  memory serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		appConfig = cfg
		registry.RegisterAll(cfg.Boards)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Storage DSN: SQLite path, \"memory\" or redis://host:port/db (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(simulateCmd)
}
