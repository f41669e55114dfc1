package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-memory/internal/sound"
)

//go:embed defaults/memory.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Boards: []BoardPreset{
			{ID: "easy", Label: "Easy", Rows: 4, Cols: 4},
			{ID: "medium", Label: "Medium", Rows: 4, Cols: 5},
			{ID: "hard", Label: "Hard", Rows: 6, Cols: 6},
		},
		DefaultBoard: "easy",
		Timing: Timing{
			SettleDelay: 700 * time.Millisecond,
			Tick:        time.Second,
		},
		Ledger: LedgerConfig{
			Capacity: 10,
			Display:  5,
		},
		Sound: sound.DefaultSettings(),
		Deck: Deck{
			Back: "░░",
			Glyphs: []string{
				"🌵", "🌴", "🌲", "🌳", "🌿", "🍀", "🌻", "🌷", "🌹",
				"🌺", "🌸", "🌼", "🍁", "🍄", "🌾", "🪴", "🌱", "🪻",
			},
		},
		Storage: StorageConfig{
			DSN: "~/.memory/memory.db",
		},
		Server: ServerConfig{
			SSHHost: "0.0.0.0",
			SSHPort: 2222,
			HostKey: ".ssh/memory_ed25519",
			APIAddr: ":8080",
		},
	}
}
