package tui

import (
	"context"
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/ledger"
	"github.com/vovakirdan/tui-memory/internal/registry"
	"github.com/vovakirdan/tui-memory/internal/session"
	"github.com/vovakirdan/tui-memory/internal/sound"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// Deps are the collaborators shared by every screen.
type Deps struct {
	Config config.Config
	Ledger *ledger.Ledger // nil disables the leaderboard
	KV     storage.KV     // Settings persistence; nil keeps settings in memory
	Logger *log.Logger
	Seed   int64 // 0 = random based on time
}

// Options customize one app instance.
type Options struct {
	Player string    // Pre-filled name
	Board  string    // Preset id or size; starts a game at once when Player is set too
	Bell   io.Writer // Terminal bell output; nil is silent
	Width  int
	Height int
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenEnd
	screenScores
	screenSettings
)

// AppModel routes between the start, board, end, leaderboard and settings
// screens. It is the top-level model for local play and SSH sessions.
type AppModel struct {
	deps  Deps
	rng   *rand.Rand
	sound *sound.Service
	log   *log.Logger

	screen   screen
	menu     MenuModel
	game     GameModel
	end      EndModel
	scores   ScoreboardModel
	settings SettingsModel

	player   string
	board    registry.BoardInfo
	width    int
	height   int
	quitting bool
	last     ledger.GameResult
}

// NewAppModel creates the app. Registered boards must be in place before
// this is called.
func NewAppModel(deps Deps, opts Options) AppModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	seed := deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	settings := deps.Config.Sound
	if deps.KV != nil {
		loaded, err := sound.Load(context.Background(), deps.KV)
		if err != nil {
			deps.Logger.Warn("using default sound settings", "err", err)
		}
		settings = loaded
	}
	var player sound.Player
	if opts.Bell != nil {
		player = sound.NewBellPlayer(opts.Bell)
	}

	m := AppModel{
		deps:   deps,
		rng:    rand.New(rand.NewSource(seed)),
		sound:  sound.NewService(sound.NewHandle(settings), player),
		log:    deps.Logger,
		player: opts.Player,
		width:  opts.Width,
		height: opts.Height,
	}

	if b, err := registry.Resolve(opts.Board); err == nil {
		m.board = b
	} else if b, ok := registry.Lookup(deps.Config.DefaultBoard); ok {
		m.board = b
	}

	m.menu = NewMenuModel(m.player, m.board.ID, m.muted(), m.width, m.height)
	if opts.Player != "" && opts.Board != "" && m.board.Size.Valid() {
		m.startGame()
	}
	return m
}

// Init starts the first screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the current screen and switches screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenEnd:
		return m.updateEnd(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	m.player = m.menu.PlayerName()
	if b, ok := m.menu.Highlighted(); ok {
		m.board = b
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.toggleMute:
		m.menu.toggleMute = false
		m.toggleMute()
	case m.menu.WantsScoreboard():
		return m.openScores(), nil
	case m.menu.WantsSettings():
		m.settings = NewSettingsModel(m.sound.Settings(), m.width, m.height)
		m.screen = screenSettings
		return m, nil
	case m.menu.Selected() != nil:
		m.board = *m.menu.Selected()
		return m, m.startGame()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.game, cmd = m.game.Update(msg)

	switch {
	case m.game.toggleMute:
		m.game.toggleMute = false
		m.toggleMute()
	case m.game.quit:
		m.last = m.game.Session().Result()
		m.end = NewEndModel(m.last, 0, m.width, m.height)
		m.screen = screenEnd
		return m, nil
	case m.game.done:
		sess := m.game.Session()
		m.last = sess.Result()
		rank := 0
		if m.deps.Ledger != nil && sess.Recorded() {
			rank = m.deps.Ledger.Rank(context.Background(), m.last)
		}
		m.end = NewEndModel(m.last, rank, m.width, m.height)
		m.screen = screenEnd
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateEnd(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.end, _ = m.end.Update(msg)

	switch {
	case m.end.quitting:
		return m.quit()
	case m.end.playAgain:
		return m, m.startGame()
	case m.end.openScoreboard:
		return m.openScores(), nil
	case m.end.backToMenu:
		return m.backToMenu()
	}
	return m, nil
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)

	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.settings, _ = m.settings.Update(msg)
	if !m.settings.Done() {
		return m, nil
	}
	if m.settings.Changed() {
		m.saveSettings()
	}
	return m.backToMenu()
}

// startGame begins a new session for the current player and board.
func (m *AppModel) startGame() tea.Cmd {
	opts := session.Options{
		RNG:       m.rng,
		Listeners: []session.Listener{m.sound},
		Logger:    m.log,
	}
	if m.deps.Ledger != nil {
		opts.Sink = m.deps.Ledger
	}

	sess := session.New(m.player, m.board.Size, opts)
	m.game = NewGameModel(sess, m.deps.Config, m.width, m.height)
	m.screen = screenGame
	return m.game.Init()
}

func (m AppModel) openScores() AppModel {
	m.scores = NewScoreboardModel(m.deps.Ledger, m.board.Key(), m.width, m.height)
	m.screen = screenScores
	return m
}

func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.player, m.board.ID, m.muted(), m.width, m.height)
	m.screen = screenMenu
	return m, m.menu.Init()
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	if m.screen == screenGame {
		m.last = m.game.Session().Quit()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m AppModel) muted() bool {
	return m.sound.Settings().Get().Mute
}

func (m AppModel) toggleMute() {
	m.sound.Settings().Update(func(s sound.Settings) sound.Settings {
		s.Mute = !s.Mute
		return s
	})
	m.saveSettings()
}

func (m AppModel) saveSettings() {
	if m.deps.KV == nil {
		return
	}
	if err := sound.Save(context.Background(), m.deps.KV, m.sound.Settings().Get()); err != nil {
		m.log.Warn("cannot save sound settings", "err", err)
	}
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenEnd:
		return m.end.View()
	case screenScores:
		return m.scores.View()
	case screenSettings:
		return m.settings.View()
	default:
		return m.menu.View()
	}
}

// LastResult returns the result of the most recent game, finished or not.
func (m AppModel) LastResult() ledger.GameResult {
	return m.last
}

// Run starts the Bubble Tea program locally and returns the result of the
// last game played.
func Run(deps Deps, opts Options) (ledger.GameResult, error) {
	model := NewAppModel(deps, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return ledger.GameResult{}, err
	}
	if m, ok := finalModel.(AppModel); ok {
		return m.LastResult(), nil
	}
	return ledger.GameResult{}, nil
}
