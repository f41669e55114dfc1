// Package game implements the memory-matching board and its pure state machine.
// It contains no external dependencies (especially no Bubble Tea) so the rules
// can be tested without a terminal.
package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// BoardSize describes the dimensions of a board.
// TotalTiles is always Rows*Cols and must be even so every tile has a partner.
type BoardSize struct {
	Rows       int `json:"rows" yaml:"rows"`
	Cols       int `json:"cols" yaml:"cols"`
	TotalTiles int `json:"totalTiles" yaml:"-"`
}

// NewBoardSize creates a board size with TotalTiles computed.
func NewBoardSize(rows, cols int) BoardSize {
	return BoardSize{Rows: rows, Cols: cols, TotalTiles: rows * cols}
}

// Pairs returns the number of pairs on the board.
func (b BoardSize) Pairs() int {
	return b.TotalTiles / 2
}

// Valid reports whether the size can hold a playable game.
func (b BoardSize) Valid() bool {
	return b.Rows >= 1 && b.Cols >= 1 &&
		b.TotalTiles == b.Rows*b.Cols &&
		b.TotalTiles > 0 && b.TotalTiles%2 == 0
}

// Key returns the "{rows}x{cols}" form used for leaderboards.
func (b BoardSize) Key() string {
	return fmt.Sprintf("%dx%d", b.Rows, b.Cols)
}

// String implements fmt.Stringer.
func (b BoardSize) String() string {
	return b.Key()
}

// ParseBoardSize parses "4x5" (or "4X5") into a board size.
func ParseBoardSize(s string) (BoardSize, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return BoardSize{}, fmt.Errorf("game: invalid board size %q (want ROWSxCOLS)", s)
	}
	rows, err := strconv.Atoi(parts[0])
	if err != nil {
		return BoardSize{}, fmt.Errorf("game: invalid rows in %q: %w", s, err)
	}
	cols, err := strconv.Atoi(parts[1])
	if err != nil {
		return BoardSize{}, fmt.Errorf("game: invalid cols in %q: %w", s, err)
	}
	size := NewBoardSize(rows, cols)
	if !size.Valid() {
		return BoardSize{}, fmt.Errorf("game: board size %q needs an even, positive tile count", s)
	}
	return size, nil
}

// ContentID returns the content identifier for the i-th pair (0-based).
// Identifiers follow the plant artwork naming: plant01, plant02, ...
func ContentID(i int) string {
	return fmt.Sprintf("plant%02d", i+1)
}

// ContentIndex is the inverse of ContentID. Returns -1 for unknown content.
func ContentIndex(content string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(content, "plant"))
	if err != nil || !strings.HasPrefix(content, "plant") || n < 1 {
		return -1
	}
	return n - 1
}

// NewTiles builds a shuffled set of face-down tiles for the given size.
// Every content identifier appears exactly twice.
func NewTiles(size BoardSize, rng *rand.Rand) []Tile {
	pairs := size.Pairs()
	contents := make([]string, 0, pairs*2)
	for i := range pairs {
		id := ContentID(i)
		contents = append(contents, id, id)
	}

	// rand.Shuffle is a Fisher-Yates shuffle, so every permutation is equally likely
	rng.Shuffle(len(contents), func(i, j int) {
		contents[i], contents[j] = contents[j], contents[i]
	})

	tiles := make([]Tile, len(contents))
	for i, c := range contents {
		tiles[i] = Tile{ID: i, Content: c}
	}
	return tiles
}

// NewGame returns a fresh state for the given board size.
func NewGame(size BoardSize, rng *rand.Rand) State {
	return State{
		Tiles:        NewTiles(size, rng),
		FlippedTiles: []int{},
	}
}
