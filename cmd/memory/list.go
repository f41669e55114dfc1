package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List board sizes",
	Long:  `Shows the board presets from the configuration.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	boards := registry.List()

	if len(boards) == 0 {
		fmt.Println("No boards configured.")
		return
	}

	fmt.Println("Board sizes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range boards {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "ID", "Size", "Pairs", "Label")
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "-----")

	for _, b := range boards {
		fmt.Printf("  %-*s  %-6s  %-5d  %s\n", maxIDLen, b.ID, b.Key(), b.Size.Pairs(), b.Label)
	}

	fmt.Println()
	fmt.Println("Run 'memory play <id>' to play, or 'memory play 2x4' for any even size.")
}
