package game

import "slices"

// Tile is a single card on the board.
// Matched tiles are always treated as face up.
type Tile struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Flipped bool   `json:"isFlipped"`
	Matched bool   `json:"isMatched"`
}

// FaceUp reports whether the tile's content is visible.
func (t Tile) FaceUp() bool {
	return t.Flipped || t.Matched
}

// State is an immutable snapshot of a game in progress.
// Apply never modifies a State; it returns a new one.
type State struct {
	Tiles        []Tile `json:"tiles"`
	FlippedTiles []int  `json:"flippedTiles"` // Face-up, unresolved tile ids (0, 1 or 2)
	Moves        int    `json:"moves"`
	MatchesFound int    `json:"matchesFound"`
	BoardLocked  bool   `json:"isBoardLocked"`
}

// TotalTiles returns the number of tiles on the board.
func (s State) TotalTiles() int {
	return len(s.Tiles)
}

// Pairs returns the number of pairs on the board.
func (s State) Pairs() int {
	return len(s.Tiles) / 2
}

// Complete reports whether every pair has been found.
func Complete(s State) bool {
	return len(s.Tiles) > 0 && s.MatchesFound == len(s.Tiles)/2
}

// PairReady reports whether two tiles are face up awaiting resolution.
func (s State) PairReady() bool {
	return len(s.FlippedTiles) == 2
}

// inRange reports whether id addresses a tile on the board.
func (s State) inRange(id int) bool {
	return id >= 0 && id < len(s.Tiles)
}

// clone returns a deep copy so transitions never share backing arrays with their input.
func (s State) clone() State {
	out := s
	out.Tiles = slices.Clone(s.Tiles)
	out.FlippedTiles = slices.Clone(s.FlippedTiles)
	if out.FlippedTiles == nil {
		out.FlippedTiles = []int{}
	}
	return out
}
