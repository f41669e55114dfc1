package game

import (
	"errors"
	"fmt"
)

// ActionKind identifies a state transition.
type ActionKind int

const (
	ActionNone  ActionKind = iota
	ActionFlip             // Turn a face-down tile face up
	ActionMatch            // Mark the two flipped tiles as matched
	ActionReset            // Turn unmatched flipped tiles back over
	ActionLock             // Gate input while a pair is being evaluated
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "None"
	case ActionFlip:
		return "Flip"
	case ActionMatch:
		return "Match"
	case ActionReset:
		return "Reset"
	case ActionLock:
		return "Lock"
	default:
		return "Unknown"
	}
}

// Action is a transition request for Apply.
// Use the Flip, Match, Reset and Lock constructors rather than building it by hand.
type Action struct {
	Kind ActionKind
	ID   int   // Flip target
	IDs  []int // Match targets
	Lock bool  // Lock value
}

// Flip requests turning tile id face up.
func Flip(id int) Action {
	return Action{Kind: ActionFlip, ID: id}
}

// Match requests marking the given tiles as matched. Exactly two ids are expected.
func Match(ids ...int) Action {
	return Action{Kind: ActionMatch, IDs: ids}
}

// Reset requests turning every unresolved flipped tile face down.
func Reset() Action {
	return Action{Kind: ActionReset}
}

// Lock sets or clears the board lock.
func Lock(lock bool) Action {
	return Action{Kind: ActionLock, Lock: lock}
}

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a.Kind {
	case ActionFlip:
		return fmt.Sprintf("Flip(%d)", a.ID)
	case ActionMatch:
		return fmt.Sprintf("Match(%v)", a.IDs)
	case ActionLock:
		return fmt.Sprintf("Lock(%t)", a.Lock)
	default:
		return a.Kind.String()
	}
}

// ErrNoPair is returned by ResolvePair when the state does not hold exactly
// two unresolved tiles.
var ErrNoPair = errors.New("game: resolve requires exactly two flipped tiles")

// ResolvePair decides how the current pair attempt ends:
// Match when both tiles show the same content, Reset otherwise.
func ResolvePair(s State) (Action, error) {
	if len(s.FlippedTiles) != 2 {
		return Action{}, fmt.Errorf("%w (have %d)", ErrNoPair, len(s.FlippedTiles))
	}
	a, b := s.FlippedTiles[0], s.FlippedTiles[1]
	if !s.inRange(a) || !s.inRange(b) {
		return Action{}, fmt.Errorf("%w (ids %d, %d out of range)", ErrNoPair, a, b)
	}
	if s.Tiles[a].Content == s.Tiles[b].Content {
		return Match(a, b), nil
	}
	return Reset(), nil
}
