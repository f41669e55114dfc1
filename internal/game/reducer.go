package game

import "slices"

// Apply returns the state that results from applying a to s.
// It is pure: s is never modified, and the same inputs always give the same
// output. Actions whose preconditions do not hold return s unchanged.
func Apply(s State, a Action) State {
	switch a.Kind {
	case ActionFlip:
		return applyFlip(s, a.ID)
	case ActionMatch:
		return applyMatch(s, a.IDs)
	case ActionReset:
		return applyReset(s)
	case ActionLock:
		next := s.clone()
		next.BoardLocked = a.Lock
		return next
	default:
		return s
	}
}

// CanFlip reports whether Flip(id) would change the state.
func CanFlip(s State, id int) bool {
	if s.BoardLocked || !s.inRange(id) {
		return false
	}
	if len(s.FlippedTiles) >= 2 {
		return false
	}
	t := s.Tiles[id]
	return !t.Flipped && !t.Matched
}

func applyFlip(s State, id int) State {
	if !CanFlip(s, id) {
		return s
	}

	next := s.clone()
	next.Tiles[id].Flipped = true
	// A move is one completed pair attempt, counted on its second flip
	if len(s.FlippedTiles) == 1 {
		next.Moves++
	}
	next.FlippedTiles = append(next.FlippedTiles, id)
	return next
}

func applyMatch(s State, ids []int) State {
	if len(ids) != 2 || ids[0] == ids[1] {
		return s
	}
	// Only the pair currently face up can be matched
	for _, id := range ids {
		if !s.inRange(id) || s.Tiles[id].Matched || !slices.Contains(s.FlippedTiles, id) {
			return s
		}
	}

	next := s.clone()
	for _, id := range ids {
		next.Tiles[id].Matched = true
	}
	next.FlippedTiles = []int{}
	next.MatchesFound++
	return next
}

func applyReset(s State) State {
	next := s.clone()
	for i := range next.Tiles {
		if slices.Contains(s.FlippedTiles, next.Tiles[i].ID) {
			next.Tiles[i].Flipped = false
		}
	}
	next.FlippedTiles = []int{}
	return next
}
