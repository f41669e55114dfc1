package session

import (
	"maps"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-memory/internal/game"
)

// Bot is a Strategy that remembers every tile it has seen and takes a known
// pair whenever it can. With Recall below 1 it sometimes forgets what it saw.
type Bot struct {
	Recall float64

	rng  *rand.Rand
	seen map[int]string
}

// NewBot creates a bot with perfect recall.
func NewBot(rng *rand.Rand) *Bot {
	return &Bot{Recall: 1, rng: rng, seen: make(map[int]string)}
}

// Observe records face-up tiles.
func (b *Bot) Observe(s game.State) {
	for _, t := range s.Tiles {
		if t.Matched {
			delete(b.seen, t.ID)
			continue
		}
		if t.Flipped && b.rng.Float64() < b.Recall {
			b.seen[t.ID] = t.Content
		}
	}
}

// Next picks the next tile to flip.
func (b *Bot) Next(s game.State) (int, bool) {
	if s.BoardLocked || len(s.FlippedTiles) >= 2 {
		return 0, false
	}

	if len(s.FlippedTiles) == 1 {
		first := s.Tiles[s.FlippedTiles[0]]
		if id, ok := b.partner(s, first.ID, first.Content); ok {
			return id, true
		}
		return b.unknown(s)
	}

	// Open with a remembered pair if there is one
	for _, id := range slices.Sorted(maps.Keys(b.seen)) {
		content := b.seen[id]
		if !game.CanFlip(s, id) {
			continue
		}
		if _, ok := b.partner(s, id, content); ok {
			return id, true
		}
	}
	return b.unknown(s)
}

func (b *Bot) partner(s game.State, self int, content string) (int, bool) {
	for _, id := range slices.Sorted(maps.Keys(b.seen)) {
		if id != self && b.seen[id] == content && game.CanFlip(s, id) {
			return id, true
		}
	}
	return 0, false
}

// unknown picks a random flippable tile, preferring ones never seen.
func (b *Bot) unknown(s game.State) (int, bool) {
	var fresh, open []int
	for _, t := range s.Tiles {
		if !game.CanFlip(s, t.ID) {
			continue
		}
		open = append(open, t.ID)
		if _, ok := b.seen[t.ID]; !ok {
			fresh = append(fresh, t.ID)
		}
	}
	switch {
	case len(fresh) > 0:
		return fresh[b.rng.Intn(len(fresh))], true
	case len(open) > 0:
		return open[b.rng.Intn(len(open))], true
	default:
		return 0, false
	}
}
