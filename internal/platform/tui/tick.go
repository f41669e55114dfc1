// Package tui provides the Bubble Tea front end for the memory game.
// It handles the terminal UI loop, input mapping, and screen flow, locally
// and over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-memory/internal/session"
)

// tickMsg advances the clock of the game it names.
type tickMsg struct {
	game uuid.UUID
}

// settleMsg asks for a pending pair to be judged.
type settleMsg struct {
	pair session.PendingPair
}

// tickCmd returns a Bubble Tea command that sends one tick after d.
// Ticks carry the game id so a tick scheduled for an abandoned game is ignored.
func tickCmd(d time.Duration, game uuid.UUID) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{game: game}
	})
}

// settleCmd delivers the pending pair after the settle delay.
func settleCmd(d time.Duration, pair session.PendingPair) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return settleMsg{pair: pair}
	})
}
