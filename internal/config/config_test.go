package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	want := Default()

	if len(cfg.Boards) != len(want.Boards) {
		t.Fatalf("boards = %d, expected %d", len(cfg.Boards), len(want.Boards))
	}
	for i := range want.Boards {
		if cfg.Boards[i] != want.Boards[i] {
			t.Errorf("board %d = %+v, expected %+v", i, cfg.Boards[i], want.Boards[i])
		}
	}
	if cfg.Timing != want.Timing {
		t.Errorf("timing = %+v, expected %+v", cfg.Timing, want.Timing)
	}
	if cfg.Ledger != want.Ledger || cfg.Sound != want.Sound || cfg.Server != want.Server {
		t.Error("embedded config drifted from Default()")
	}
	if len(cfg.Deck.Glyphs) != len(want.Deck.Glyphs) {
		t.Errorf("glyphs = %d, expected %d", len(cfg.Deck.Glyphs), len(want.Deck.Glyphs))
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.yaml")
	data := []byte(`
boards:
  - id: tiny
    label: Tiny
    rows: 2
    cols: 2
default_board: tiny
timing:
  settle_delay: 300ms
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.Boards) != 1 || cfg.Boards[0].ID != "tiny" {
		t.Errorf("boards = %+v", cfg.Boards)
	}
	if cfg.Timing.SettleDelay != 300*time.Millisecond {
		t.Errorf("settle_delay = %v", cfg.Timing.SettleDelay)
	}
	// Unset fields keep defaults
	if cfg.Timing.Tick != time.Second || cfg.Ledger.Capacity != 10 {
		t.Errorf("defaults not preserved: %+v %+v", cfg.Timing, cfg.Ledger)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	tests := []struct {
		name string
		yaml string
	}{
		{"odd board", "boards:\n  - {id: odd, rows: 3, cols: 3}\n"},
		{"duplicate id", "boards:\n  - {id: a, rows: 2, cols: 2}\n  - {id: a, rows: 4, cols: 4}\n"},
		{"unknown default", "default_board: nope\n"},
		{"display over capacity", "ledger: {capacity: 3, display: 5}\n"},
		{"not yaml", "boards: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should reject this config")
			}
		})
	}
}

func TestDeckGlyph(t *testing.T) {
	d := Deck{Glyphs: []string{"🌵", ""}}

	tests := []struct {
		content string
		want    string
	}{
		{"plant01", "🌵"},
		{"plant02", "B1"},
		{"plant30", "D2"},
		{"rock", "??"},
	}
	for _, tc := range tests {
		if got := d.Glyph(tc.content); got != tc.want {
			t.Errorf("Glyph(%q) = %q, expected %q", tc.content, got, tc.want)
		}
	}
}
