package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/platform/httpapi"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the leaderboards over HTTP",
	Long: `Start a read-only JSON API over the leaderboards.

Routes:
  GET /health
  GET /boards
  GET /scores
  GET /scores/{board}?n=5
  GET /scores/{board}/best

Examples:
  memory api
  memory api --addr :9000 --db redis://localhost:6379/0`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (default from config)")
}

func runAPI(_ *cobra.Command, _ []string) {
	addr := appConfig.Server.APIAddr
	if flagAPIAddr != "" {
		addr = flagAPIAddr
	}

	logger, closeLog, err := newLogger("memory-api", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	l, kv, err := openLedger(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving leaderboards on %s\n", addr)
	if err := httpapi.New(l, logger).ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
