// Package registry provides a global registry of board presets.
// Presets are registered at startup from configuration, allowing the CLI,
// the start screen and the HTTP API to agree on the offered sizes without
// hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/game"
)

// BoardInfo contains metadata about a registered board.
type BoardInfo struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Size  game.BoardSize `json:"size"`
}

// Key returns the leaderboard key of the board.
func (b BoardInfo) Key() string { return b.Size.Key() }

// String returns e.g. "Easy (4x4)".
func (b BoardInfo) String() string {
	return fmt.Sprintf("%s (%s)", b.Label, b.Size.Key())
}

var (
	boards = make(map[string]BoardInfo)
	mu     sync.RWMutex
)

// Register adds a board preset to the registry.
// Panics if a board with the same ID is already registered or the size is unplayable.
func Register(id, label string, size game.BoardSize) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := boards[id]; exists {
		panic(fmt.Sprintf("registry: board %q already registered", id))
	}
	if !size.Valid() {
		panic(fmt.Sprintf("registry: board %q has unplayable size %s", id, size))
	}

	boards[id] = BoardInfo{ID: id, Label: label, Size: size}
}

// RegisterAll registers every preset from cfg, skipping ids already present.
func RegisterAll(presets []config.BoardPreset) {
	for _, p := range presets {
		if Exists(p.ID) {
			continue
		}
		label := p.Label
		if label == "" {
			label = p.ID
		}
		Register(p.ID, label, p.Size())
	}
}

// List returns all registered boards, smallest first.
func List() []BoardInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BoardInfo, 0, len(boards))
	for _, b := range boards {
		result = append(result, b)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Size.TotalTiles != result[j].Size.TotalTiles {
			return result[i].Size.TotalTiles < result[j].Size.TotalTiles
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the board registered under id.
func Lookup(id string) (BoardInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := boards[id]
	return b, ok
}

// Exists checks if a board with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Resolve accepts a preset id ("hard") or a size ("6x6"). Sizes that match a
// preset return that preset; other valid sizes get a generated entry.
func Resolve(s string) (BoardInfo, error) {
	s = strings.TrimSpace(s)
	if b, ok := Lookup(strings.ToLower(s)); ok {
		return b, nil
	}

	size, err := game.ParseBoardSize(s)
	if err != nil {
		return BoardInfo{}, fmt.Errorf("registry: unknown board %q", s)
	}
	for _, b := range List() {
		if b.Size == size {
			return b, nil
		}
	}
	return BoardInfo{ID: size.Key(), Label: "Custom", Size: size}, nil
}

// reset clears the registry. Tests only.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	boards = make(map[string]BoardInfo)
}
