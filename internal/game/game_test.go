package game

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// stateWith builds an unshuffled state from explicit contents.
func stateWith(contents ...string) State {
	tiles := make([]Tile, len(contents))
	for i, c := range contents {
		tiles[i] = Tile{ID: i, Content: c}
	}
	return State{Tiles: tiles, FlippedTiles: []int{}}
}

func TestNewGamePairs(t *testing.T) {
	sizes := []BoardSize{
		NewBoardSize(4, 4),
		NewBoardSize(4, 5),
		NewBoardSize(6, 6),
		NewBoardSize(1, 2),
	}

	for _, size := range sizes {
		t.Run(size.Key(), func(t *testing.T) {
			s := NewGame(size, rand.New(rand.NewSource(7)))

			if len(s.Tiles) != size.TotalTiles {
				t.Fatalf("len(Tiles) = %d, expected %d", len(s.Tiles), size.TotalTiles)
			}

			counts := make(map[string]int)
			for i, tile := range s.Tiles {
				if tile.ID != i {
					t.Errorf("tile %d has ID %d", i, tile.ID)
				}
				if tile.Flipped || tile.Matched {
					t.Errorf("tile %d should start face down and unmatched", i)
				}
				counts[tile.Content]++
			}

			if len(counts) != size.Pairs() {
				t.Errorf("distinct contents = %d, expected %d", len(counts), size.Pairs())
			}
			for c, n := range counts {
				if n != 2 {
					t.Errorf("content %q appears %d times, expected 2", c, n)
				}
			}

			if len(s.FlippedTiles) != 0 || s.Moves != 0 || s.MatchesFound != 0 || s.BoardLocked {
				t.Errorf("fresh state has non-zero counters: %+v", s)
			}
		})
	}
}

func TestNewGameShuffleIsUniform(t *testing.T) {
	size := NewBoardSize(4, 4)
	rng := rand.New(rand.NewSource(20240601))
	const trials = 20000

	// counts[position][content index]
	var counts [16][8]int
	for range trials {
		tiles := NewTiles(size, rng)
		for pos, tile := range tiles {
			counts[pos][ContentIndex(tile.Content)]++
		}
	}

	expected := float64(trials) / 8
	tolerance := expected * 0.12
	for pos := range counts {
		for c, n := range counts[pos] {
			if diff := float64(n) - expected; diff > tolerance || diff < -tolerance {
				t.Errorf("position %d held %s %d times, expected about %.0f", pos, ContentID(c), n, expected)
			}
		}
	}
}

func TestNewGameDeterministicForSeed(t *testing.T) {
	size := NewBoardSize(6, 6)
	a := NewGame(size, rand.New(rand.NewSource(99)))
	b := NewGame(size, rand.New(rand.NewSource(99)))

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce the same board")
	}
}

func TestApplyIsPure(t *testing.T) {
	s := stateWith("A", "A", "B", "B")
	s = Apply(s, Flip(0))
	before := s.clone()

	actions := []Action{Flip(1), Flip(2), Match(0, 1), Reset(), Lock(true)}
	for _, a := range actions {
		t.Run(a.String(), func(t *testing.T) {
			first := Apply(s, a)
			second := Apply(s, a)

			if !reflect.DeepEqual(first, second) {
				t.Errorf("Apply(%v) not deterministic: %+v vs %+v", a, first, second)
			}
			if !reflect.DeepEqual(s, before) {
				t.Errorf("Apply(%v) mutated its input", a)
			}
		})
	}
}

func TestFlipNoOps(t *testing.T) {
	base := stateWith("A", "A", "B", "B")

	locked := Apply(base, Lock(true))
	flipped := Apply(base, Flip(0))
	matched := Apply(Apply(Apply(base, Flip(0)), Flip(1)), Match(0, 1))
	pairPending := Apply(Apply(base, Flip(0)), Flip(2))

	tests := []struct {
		name  string
		state State
		id    int
	}{
		{"locked board", locked, 1},
		{"already flipped", flipped, 0},
		{"already matched", matched, 1},
		{"negative id", base, -1},
		{"id past end", base, 4},
		{"third flip", pairPending, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(tc.state, Flip(tc.id))
			if !reflect.DeepEqual(got, tc.state) {
				t.Errorf("Flip(%d) should be a no-op, got %+v", tc.id, got)
			}
			if CanFlip(tc.state, tc.id) {
				t.Errorf("CanFlip(%d) = true, expected false", tc.id)
			}
		})
	}
}

func TestMovesCountPairAttempts(t *testing.T) {
	s := stateWith("A", "B", "A", "B")

	s = Apply(s, Flip(0))
	if s.Moves != 0 {
		t.Errorf("after first flip Moves = %d, expected 0", s.Moves)
	}

	s = Apply(s, Flip(1))
	if s.Moves != 1 {
		t.Errorf("after second flip Moves = %d, expected 1", s.Moves)
	}

	s = Apply(s, Reset())
	s = Apply(s, Flip(2))
	if s.Moves != 1 {
		t.Errorf("first flip of next attempt should not count, Moves = %d", s.Moves)
	}
	s = Apply(s, Flip(0))
	if s.Moves != 2 {
		t.Errorf("Moves = %d, expected 2", s.Moves)
	}
}

func TestResolvePair(t *testing.T) {
	s := stateWith("A", "A", "B", "C")

	same := Apply(Apply(s, Flip(0)), Flip(1))
	a, err := ResolvePair(same)
	if err != nil {
		t.Fatalf("ResolvePair() error: %v", err)
	}
	if a.Kind != ActionMatch || !reflect.DeepEqual(a.IDs, []int{0, 1}) {
		t.Errorf("ResolvePair() = %v, expected Match([0 1])", a)
	}

	diff := Apply(Apply(s, Flip(2)), Flip(3))
	a, err = ResolvePair(diff)
	if err != nil {
		t.Fatalf("ResolvePair() error: %v", err)
	}
	if a.Kind != ActionReset {
		t.Errorf("ResolvePair() = %v, expected Reset", a)
	}

	one := Apply(s, Flip(0))
	if _, err := ResolvePair(one); !errors.Is(err, ErrNoPair) {
		t.Errorf("ResolvePair() with one flip: err = %v, expected ErrNoPair", err)
	}
	if _, err := ResolvePair(s); !errors.Is(err, ErrNoPair) {
		t.Errorf("ResolvePair() with no flips: err = %v, expected ErrNoPair", err)
	}
}

func TestMatchAndReset(t *testing.T) {
	s := stateWith("A", "A", "B", "C")

	matched := Apply(Apply(Apply(s, Flip(0)), Flip(1)), Match(0, 1))
	if !matched.Tiles[0].Matched || !matched.Tiles[1].Matched {
		t.Error("Match should mark both tiles matched")
	}
	if len(matched.FlippedTiles) != 0 {
		t.Errorf("FlippedTiles = %v after Match, expected empty", matched.FlippedTiles)
	}
	if matched.MatchesFound != 1 {
		t.Errorf("MatchesFound = %d, expected 1", matched.MatchesFound)
	}

	reset := Apply(Apply(Apply(s, Flip(2)), Flip(3)), Reset())
	if reset.Tiles[2].Flipped || reset.Tiles[3].Flipped {
		t.Error("Reset should turn both tiles face down")
	}
	if len(reset.FlippedTiles) != 0 {
		t.Errorf("FlippedTiles = %v after Reset, expected empty", reset.FlippedTiles)
	}
}

func TestMatchRejectsMalformedIDs(t *testing.T) {
	s := Apply(Apply(stateWith("A", "A", "B", "B"), Flip(0)), Flip(1))

	for _, a := range []Action{Match(0), Match(0, 0), Match(0, 9), Match(0, 1, 2), Match(0, 2), Match(2, 3)} {
		if got := Apply(s, a); !reflect.DeepEqual(got, s) {
			t.Errorf("Apply(%v) should be a no-op", a)
		}
	}
}

func TestMatchRequiresFaceUpPair(t *testing.T) {
	s := stateWith("A", "A", "B", "C")
	s = Apply(Apply(s, Flip(2)), Flip(3))

	got := Apply(s, Match(0, 1))
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("Match of tiles that are not face up should be a no-op, got %+v", got)
	}

	// The real pair still resolves and the board stays winnable
	act, err := ResolvePair(got)
	if err != nil {
		t.Fatalf("ResolvePair() error: %v", err)
	}
	got = Apply(got, act)
	if !CanFlip(got, 2) || !CanFlip(got, 3) {
		t.Error("tiles 2 and 3 should be flippable after the miss resets them")
	}
	if got.MatchesFound != 0 {
		t.Errorf("MatchesFound = %d, expected 0", got.MatchesFound)
	}
}

func TestScenarioFourByFour(t *testing.T) {
	// 8 pairs with A at 0-1, B at 2/4, C at 3/5
	s := stateWith("A", "A", "B", "C", "B", "C", "D", "D", "E", "E", "F", "F", "G", "G", "H", "H")

	play := func(s State, a, b int) (State, Action) {
		t.Helper()
		s = Apply(s, Flip(a))
		s = Apply(s, Flip(b))
		s = Apply(s, Lock(true))
		act, err := ResolvePair(s)
		if err != nil {
			t.Fatalf("ResolvePair(%d, %d): %v", a, b, err)
		}
		s = Apply(s, act)
		return Apply(s, Lock(false)), act
	}

	s, act := play(s, 0, 1)
	if act.Kind != ActionMatch || s.MatchesFound != 1 || s.Moves != 1 {
		t.Fatalf("after 0/1: action %v, matches %d, moves %d", act, s.MatchesFound, s.Moves)
	}

	s, act = play(s, 2, 3)
	if act.Kind != ActionReset || s.Moves != 2 {
		t.Fatalf("after 2/3: action %v, moves %d", act, s.Moves)
	}
	if s.Tiles[2].Flipped || s.Tiles[3].Flipped {
		t.Fatal("tiles 2 and 3 should be face down again")
	}

	for _, pair := range [][2]int{{2, 4}, {3, 5}, {6, 7}, {8, 9}, {10, 11}, {12, 13}} {
		if Complete(s) {
			t.Fatal("game completed early")
		}
		s, _ = play(s, pair[0], pair[1])
	}
	if Complete(s) {
		t.Fatal("game completed with one pair left")
	}
	s, _ = play(s, 14, 15)

	if s.MatchesFound != 8 || !Complete(s) {
		t.Errorf("MatchesFound = %d, Complete = %v; expected 8, true", s.MatchesFound, Complete(s))
	}
	for _, tile := range s.Tiles {
		if !tile.Matched {
			t.Errorf("tile %d not matched at completion", tile.ID)
		}
	}
	if s.Moves != 9 {
		t.Errorf("Moves = %d, expected 9", s.Moves)
	}
}

func TestCompleteIffAllMatched(t *testing.T) {
	if Complete(State{}) {
		t.Error("empty board must not be complete")
	}

	s := stateWith("A", "A", "B", "B")
	s = Apply(Apply(Apply(s, Flip(0)), Flip(1)), Match(0, 1))
	if Complete(s) {
		t.Error("half-matched board reported complete")
	}
	s = Apply(Apply(Apply(s, Flip(2)), Flip(3)), Match(2, 3))
	if !Complete(s) {
		t.Error("fully matched board not complete")
	}
}

func TestParseBoardSize(t *testing.T) {
	tests := []struct {
		in      string
		want    BoardSize
		wantErr bool
	}{
		{"4x4", NewBoardSize(4, 4), false},
		{"4X5", NewBoardSize(4, 5), false},
		{" 6x6 ", NewBoardSize(6, 6), false},
		{"3x3", BoardSize{}, true},
		{"0x4", BoardSize{}, true},
		{"4", BoardSize{}, true},
		{"ax4", BoardSize{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseBoardSize(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseBoardSize(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseBoardSize(%q) = %+v, expected %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatElapsed(187); got != "3m 07s" {
		t.Errorf("FormatElapsed(187) = %q", got)
	}
	if got := FormatClock(59); got != "0:59" {
		t.Errorf("FormatClock(59) = %q", got)
	}
	if ContentIndex(ContentID(11)) != 11 {
		t.Error("ContentIndex should invert ContentID")
	}
	if ContentIndex("tree01") != -1 {
		t.Error("ContentIndex should reject foreign content")
	}
}
