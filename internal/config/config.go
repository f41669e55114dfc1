// Package config provides YAML-based configuration for board presets,
// timings, leaderboard limits, sound defaults, and tile artwork.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/sound"
)

// Config is the complete application configuration.
type Config struct {
	Boards       []BoardPreset  `yaml:"boards"`
	DefaultBoard string         `yaml:"default_board"`
	Timing       Timing         `yaml:"timing"`
	Ledger       LedgerConfig   `yaml:"ledger"`
	Sound        sound.Settings `yaml:"sound"`
	Deck         Deck           `yaml:"deck"`
	Storage      StorageConfig  `yaml:"storage"`
	Server       ServerConfig   `yaml:"server"`
}

// BoardPreset is a named board size offered on the start screen.
type BoardPreset struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Rows  int    `yaml:"rows"`
	Cols  int    `yaml:"cols"`
}

// Size returns the preset's board size.
func (b BoardPreset) Size() game.BoardSize {
	return game.NewBoardSize(b.Rows, b.Cols)
}

// Timing controls the pace of a game.
type Timing struct {
	SettleDelay time.Duration `yaml:"settle_delay"` // Pause before a pair is judged
	Tick        time.Duration `yaml:"tick"`         // Clock resolution
}

// LedgerConfig limits the leaderboards.
type LedgerConfig struct {
	Capacity int `yaml:"capacity"` // Entries kept per board
	Display  int `yaml:"display"`  // Entries shown on the leaderboard screen
}

// Deck maps content ids to the glyph drawn on a face-up tile.
type Deck struct {
	Back   string   `yaml:"back"`
	Glyphs []string `yaml:"glyphs"` // Index i is content plant{i+1}
}

// Glyph returns the face for content, falling back to letters when the deck
// has fewer glyphs than the board has pairs.
func (d Deck) Glyph(content string) string {
	i := game.ContentIndex(content)
	if i < 0 {
		return "??"
	}
	if i < len(d.Glyphs) && d.Glyphs[i] != "" {
		return d.Glyphs[i]
	}
	return fmt.Sprintf("%c%d", 'A'+rune(i%26), i/26+1)
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // File path, "memory" or redis:// URL
}

// ServerConfig holds listen addresses for the SSH and HTTP servers.
type ServerConfig struct {
	SSHHost string `yaml:"ssh_host"`
	SSHPort int    `yaml:"ssh_port"`
	HostKey string `yaml:"host_key"`
	APIAddr string `yaml:"api_addr"`
}

// Validate checks the configuration for values that cannot produce a playable game.
func (c Config) Validate() error {
	if len(c.Boards) == 0 {
		return fmt.Errorf("config: at least one board is required")
	}
	seen := make(map[string]bool)
	for _, b := range c.Boards {
		if b.ID == "" {
			return fmt.Errorf("config: board %dx%d has no id", b.Rows, b.Cols)
		}
		if seen[b.ID] {
			return fmt.Errorf("config: duplicate board id %q", b.ID)
		}
		seen[b.ID] = true
		if !b.Size().Valid() {
			return fmt.Errorf("config: board %q (%dx%d) needs an even, positive tile count", b.ID, b.Rows, b.Cols)
		}
	}
	if c.DefaultBoard != "" && !seen[c.DefaultBoard] {
		return fmt.Errorf("config: default_board %q is not a listed board", c.DefaultBoard)
	}
	if c.Timing.SettleDelay < 0 || c.Timing.Tick < 0 {
		return fmt.Errorf("config: timings must not be negative")
	}
	if c.Ledger.Capacity < 0 || c.Ledger.Display < 0 {
		return fmt.Errorf("config: ledger limits must not be negative")
	}
	if c.Ledger.Capacity > 0 && c.Ledger.Display > c.Ledger.Capacity {
		return fmt.Errorf("config: ledger display (%d) exceeds capacity (%d)", c.Ledger.Display, c.Ledger.Capacity)
	}
	return nil
}
