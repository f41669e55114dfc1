package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/ledger"
	"github.com/vovakirdan/tui-memory/internal/registry"
	"github.com/vovakirdan/tui-memory/internal/session"
	"github.com/vovakirdan/tui-memory/internal/sound"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	cfg := config.Default()
	cfg.Timing.SettleDelay = time.Millisecond
	cfg.Timing.Tick = time.Millisecond
	registry.RegisterAll(cfg.Boards)

	return Deps{
		Config: cfg,
		Ledger: ledger.New(storage.NewMemory(), ledger.Options{}),
		KV:     storage.NewMemory(),
		Seed:   7,
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('q'), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{enterKey, MenuActionSelect},
		{escKey, MenuActionBack},
		{runeKey('l'), MenuActionScoreboard},
		{runeKey('o'), MenuActionSettings},
		{runeKey('m'), MenuActionMute},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
				t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestMenuRequiresName(t *testing.T) {
	testDeps(t)
	m := NewMenuModel("", "easy", false, 80, 24)

	// Enter on an empty name keeps focus on the input
	m, _ = m.Update(enterKey)
	if m.focus != focusName || !strings.Contains(m.View(), "Please enter your name") {
		t.Fatal("empty name should be rejected")
	}

	for _, r := range "  Ann " {
		m, _ = m.Update(runeKey(r))
	}
	m, _ = m.Update(enterKey) // to board list
	m, _ = m.Update(runeKey('j'))
	m, _ = m.Update(enterKey)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selected board")
	}
	if sel.ID != "medium" || m.PlayerName() != "Ann" {
		t.Errorf("selected %s for %q", sel.ID, m.PlayerName())
	}
}

func TestGameModelCursorBounds(t *testing.T) {
	deps := testDeps(t)
	sess := session.New("Ann", game.NewBoardSize(4, 5), session.Options{})
	m := NewGameModel(sess, deps.Config, 80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Errorf("cursor moved off the board: %d", m.Cursor())
	}

	for range 10 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor() != 19 {
		t.Errorf("cursor = %d, expected bottom-right 19", m.Cursor())
	}
}

func TestGameModelSettleAndStaleTicks(t *testing.T) {
	deps := testDeps(t)
	sess := session.New("Ann", game.NewBoardSize(4, 4), session.Options{})
	m := NewGameModel(sess, deps.Config, 80, 24)

	m, cmd := m.Update(spaceKey)
	if cmd != nil {
		t.Error("first flip should not schedule a settle")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, cmd = m.Update(spaceKey)
	if cmd == nil {
		t.Fatal("second flip should schedule a settle")
	}
	if !sess.State().BoardLocked {
		t.Error("board should lock while the pair settles")
	}

	msg, ok := cmd().(settleMsg)
	if !ok {
		t.Fatal("settle command should produce a settleMsg")
	}
	m, _ = m.Update(msg)
	if sess.State().BoardLocked || len(sess.State().FlippedTiles) != 0 {
		t.Error("pair should be resolved after settling")
	}

	if _, cmd := m.Update(tickMsg{game: uuid.New()}); cmd != nil {
		t.Error("tick for another game should not reschedule")
	}
	if _, cmd := m.Update(tickMsg{game: sess.ID()}); cmd == nil || sess.Elapsed() != 1 {
		t.Error("tick for this game should advance and reschedule")
	}
}

// playOut finds every pair on the board and flips it through the app.
func playOut(t *testing.T, app AppModel) AppModel {
	t.Helper()
	st := app.game.Session().State()
	byContent := make(map[string][]int)
	for _, tile := range st.Tiles {
		byContent[tile.Content] = append(byContent[tile.Content], tile.ID)
	}

	var model tea.Model = app
	for _, ids := range byContent {
		var cmd tea.Cmd
		for _, id := range ids {
			a := model.(AppModel)
			a.game.cursor = id
			model, cmd = a.Update(spaceKey)
		}
		if cmd == nil {
			t.Fatal("pair should schedule a settle")
		}
		model, _ = model.Update(cmd())
	}
	return model.(AppModel)
}

func TestAppPlaysAndRecords(t *testing.T) {
	deps := testDeps(t)
	app := NewAppModel(deps, Options{Player: "Ann", Board: "easy"})
	if app.screen != screenGame {
		t.Fatalf("screen = %v, expected game", app.screen)
	}

	app = playOut(t, app)
	if app.screen != screenEnd {
		t.Fatalf("screen = %v, expected end", app.screen)
	}
	if !strings.Contains(app.View(), "Congratulations, Ann!") {
		t.Error("end screen missing greeting")
	}

	top := deps.Ledger.TopN(t.Context(), "4x4", 0)
	if len(top) != 1 || top[0].PlayerName != "Ann" || top[0].Moves != 8 {
		t.Errorf("ledger = %+v", top)
	}
	if app.end.rank != 1 {
		t.Errorf("rank = %d, expected 1", app.end.rank)
	}

	// Leaderboard from the end screen
	model, _ := app.Update(runeKey('l'))
	app = model.(AppModel)
	if app.screen != screenScores || len(app.scores.Scores()) != 1 {
		t.Errorf("leaderboard screen = %v with %d scores", app.screen, len(app.scores.Scores()))
	}
}

func TestAppQuitDoesNotRecord(t *testing.T) {
	deps := testDeps(t)
	app := NewAppModel(deps, Options{Player: "Ann", Board: "4x4"})

	model, _ := app.Update(spaceKey)
	model, _ = model.Update(runeKey('q'))
	app = model.(AppModel)

	if app.LastResult().Completed {
		t.Error("quit result should not be completed")
	}
	if got := deps.Ledger.TopN(t.Context(), "4x4", 0); len(got) != 0 {
		t.Errorf("quit game was recorded: %+v", got)
	}
}

func TestAppQuitShowsSummary(t *testing.T) {
	deps := testDeps(t)
	app := NewAppModel(deps, Options{Player: "Ann", Board: "4x4", Width: 100, Height: 30})

	model, _ := app.Update(spaceKey)
	model, _ = model.Update(runeKey('q'))
	app = model.(AppModel)

	if app.screen != screenEnd {
		t.Fatalf("screen = %v, expected the summary after quitting a game", app.screen)
	}
	if !app.end.Abandoned() {
		t.Error("summary should mark the game as abandoned")
	}
	if app.end.Result().PlayerName != "Ann" || app.end.Result().BoardSize.Key() != "4x4" {
		t.Errorf("summary result = %+v", app.end.Result())
	}
	view := app.View()
	if !strings.Contains(view, "Game abandoned") || strings.Contains(view, "Congratulations") {
		t.Errorf("summary view should say the game was abandoned:\n%s", view)
	}
	if strings.Contains(view, "on the leaderboard") {
		t.Error("abandoned game should show no rank")
	}

	model, _ = model.Update(escKey)
	if model.(AppModel).screen != screenMenu {
		t.Error("Esc on the summary should return to the menu")
	}
}

func TestEmptyLeaderboard(t *testing.T) {
	deps := testDeps(t)
	m := NewScoreboardModel(deps.Ledger, "6x6", 100, 30)
	if !strings.Contains(m.View(), emptyLeaderboard) {
		t.Error("empty leaderboard message missing")
	}
}

func TestSettingsPersist(t *testing.T) {
	deps := testDeps(t)
	app := NewAppModel(deps, Options{Player: "Ann"})

	// A pre-filled name puts focus on the board list
	model, _ := app.Update(runeKey('o'))
	if model.(AppModel).screen != screenSettings {
		t.Fatal("expected settings screen")
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft}) // background -0.1
	model, _ = model.Update(spaceKey)                      // mute
	model, _ = model.Update(escKey)

	if model.(AppModel).screen != screenMenu {
		t.Error("settings should return to the menu")
	}

	saved, err := sound.Load(t.Context(), deps.KV)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.Mute || saved.Background > 0.21 || saved.Background < 0.19 {
		t.Errorf("saved settings = %+v", saved)
	}
}
