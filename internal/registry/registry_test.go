package registry

import (
	"testing"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/game"
)

func TestRegisterAllAndList(t *testing.T) {
	reset()
	defer reset()

	RegisterAll(config.Default().Boards)
	// Second call is a no-op rather than a duplicate panic
	RegisterAll(config.Default().Boards)

	list := List()
	expected := []string{"easy", "medium", "hard"}
	if len(list) != len(expected) {
		t.Fatalf("List() = %v", list)
	}
	for i, id := range expected {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %s, expected %s", i, list[i].ID, id)
		}
	}
	if list[1].String() != "Medium (4x5)" {
		t.Errorf("String() = %q", list[1].String())
	}
}

func TestResolve(t *testing.T) {
	reset()
	defer reset()
	RegisterAll(config.Default().Boards)

	tests := []struct {
		in      string
		wantID  string
		wantKey string
		wantErr bool
	}{
		{"hard", "hard", "6x6", false},
		{"Easy", "easy", "4x4", false},
		{"4x5", "medium", "4x5", false},
		{"2x4", "2x4", "2x4", false},
		{"3x3", "", "", true},
		{"huge", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			b, err := Resolve(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Resolve(%q) err = %v", tc.in, err)
			}
			if err != nil {
				return
			}
			if b.ID != tc.wantID || b.Key() != tc.wantKey {
				t.Errorf("Resolve(%q) = %+v", tc.in, b)
			}
		})
	}
}

func TestRegisterPanics(t *testing.T) {
	reset()
	defer reset()

	Register("easy", "Easy", game.NewBoardSize(4, 4))

	for name, fn := range map[string]func(){
		"duplicate": func() { Register("easy", "Again", game.NewBoardSize(2, 2)) },
		"odd size":  func() { Register("odd", "Odd", game.NewBoardSize(3, 3)) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register() should panic")
				}
			}()
			fn()
		})
	}
}
