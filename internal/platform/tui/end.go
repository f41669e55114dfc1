package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/game"
	"github.com/vovakirdan/tui-memory/internal/ledger"
)

// EndModel summarizes a finished or abandoned game.
type EndModel struct {
	result    ledger.GameResult
	rank      int // 0 when not on the leaderboard
	keyMapper *KeyMapper
	width     int
	height    int

	playAgain      bool
	openScoreboard bool
	backToMenu     bool
	quitting       bool
}

// NewEndModel creates the summary for result.
func NewEndModel(result ledger.GameResult, rank, width, height int) EndModel {
	return EndModel{
		result:    result,
		rank:      rank,
		keyMapper: NewKeyMapper(),
		width:     width,
		height:    height,
	}
}

// Update handles messages for the end screen.
func (m EndModel) Update(msg tea.Msg) (EndModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.playAgain = true
			return m, nil
		}
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionSelect:
			m.playAgain = true
		case MenuActionScoreboard:
			m.openScoreboard = true
		case MenuActionBack:
			m.backToMenu = true
		case MenuActionQuit:
			m.quitting = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the summary.
func (m EndModel) View() string {
	var b strings.Builder

	if m.Abandoned() {
		b.WriteString(titleStyle.Render("Game abandoned, " + m.result.PlayerName))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("Unfinished games are not ranked."))
	} else {
		b.WriteString(titleStyle.Render("Congratulations, " + m.result.PlayerName + "!"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Board size:   %s\n", m.result.BoardSize.Key())
	fmt.Fprintf(&b, "Total moves:  %d\n", m.result.Moves)
	fmt.Fprintf(&b, "Time:         %s\n", game.FormatElapsed(m.result.TimeElapsed))
	b.WriteString("\n")
	if m.rank > 0 {
		b.WriteString(selectedStyle.Render(fmt.Sprintf(" #%d on the leaderboard ", m.rank)))
		b.WriteString("\n\n")
	}
	b.WriteString(subtleStyle.Render("Enter/R: Play again  |  L: Leaderboard  |  Esc: Menu  |  Q: Quit"))

	return place(m.width, m.height, panelStyle.Render(b.String()))
}

// Result returns the summarized result.
func (m EndModel) Result() ledger.GameResult { return m.result }

// Abandoned reports whether the player quit before finding every pair.
func (m EndModel) Abandoned() bool { return !m.result.Completed }
