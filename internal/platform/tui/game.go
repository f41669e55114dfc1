package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/session"
)

// GameModel is the board screen. It owns one session; the session pointer
// is only ever touched from the Bubble Tea update loop.
type GameModel struct {
	sess   *session.Session
	timing config.Timing
	deck   config.Deck
	keys   GameKeyMap
	help   help.Model

	cursor int
	width  int
	height int

	quit       bool // Player abandoned the game
	done       bool // Last pair found
	toggleMute bool // Cleared by the app after handling
}

// NewGameModel creates the board screen for sess.
func NewGameModel(sess *session.Session, cfg config.Config, width, height int) GameModel {
	h := help.New()
	h.Width = width
	return GameModel{
		sess:   sess,
		timing: cfg.Timing,
		deck:   cfg.Deck,
		keys:   DefaultGameKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
}

// Init starts the clock.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.timing.Tick, m.sess.ID())
}

// Update handles messages for the board.
func (m GameModel) Update(msg tea.Msg) (GameModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.sess.Tick(msg.game) {
			return m, tickCmd(m.timing.Tick, msg.game)
		}
		return m, nil

	case settleMsg:
		if m.sess.Resolve(context.Background(), msg.pair) && m.sess.Done() {
			m.done = true
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (GameModel, tea.Cmd) {
	size := m.sess.Size()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sess.Quit()
		m.quit = true
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		m.toggleMute = true
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor >= size.Cols {
			m.cursor -= size.Cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+size.Cols < size.TotalTiles {
			m.cursor += size.Cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%size.Cols > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%size.Cols < size.Cols-1 && m.cursor+1 < size.TotalTiles {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Flip):
		out := m.sess.Flip(m.cursor)
		if out.Pair != nil {
			return m, settleCmd(m.timing.SettleDelay, *out.Pair)
		}
	}

	return m, nil
}

// Session returns the session shown on the board.
func (m GameModel) Session() *session.Session { return m.sess }

// Cursor returns the highlighted tile id.
func (m GameModel) Cursor() int { return m.cursor }

// View renders the HUD and the board.
func (m GameModel) View() string {
	st := m.sess.State()
	size := m.sess.Size()

	hud := fmt.Sprintf("%s   Moves: %d   Time: %s   Pairs: %d/%d",
		titleStyle.Render(m.sess.Player()),
		st.Moves,
		game.FormatClock(m.sess.Elapsed()),
		st.MatchesFound,
		size.Pairs(),
	)

	rows := make([]string, 0, size.Rows)
	for r := range size.Rows {
		cells := make([]string, 0, size.Cols)
		for c := range size.Cols {
			id := r*size.Cols + c
			cells = append(cells, m.renderTile(st.Tiles[id], id == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	board := lipgloss.JoinVertical(lipgloss.Center, rows...)

	var b strings.Builder
	b.WriteString(hud)
	b.WriteString("\n\n")
	b.WriteString(board)
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return place(m.width, m.height, b.String())
}

func (m GameModel) renderTile(t game.Tile, selected bool) string {
	face := m.deck.Back
	style := tileStyle
	switch {
	case t.Matched:
		face = m.deck.Glyph(t.Content)
		style = style.BorderForeground(tileMatchedColor).Faint(true)
	case t.Flipped:
		face = m.deck.Glyph(t.Content)
		style = style.BorderForeground(tileFaceUpColor)
	}
	if selected {
		style = style.BorderForeground(tileCursorColor).Faint(false)
	}
	return style.Render(face)
}
