package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/registry"
)

const maxNameLength = 20

// menuFocus is the part of the start screen receiving keys.
type menuFocus int

const (
	focusName menuFocus = iota
	focusBoards
)

// MenuModel is the start screen: player name, board size, and the
// leaderboard and settings entry points.
type MenuModel struct {
	name      textinput.Model
	boards    []registry.BoardInfo
	cursor    int
	focus     menuFocus
	keyMapper *KeyMapper
	muted     bool
	errMsg    string
	width     int
	height    int

	quitting       bool
	selected       *registry.BoardInfo // Set when the player starts a game
	openScoreboard bool
	openSettings   bool
	toggleMute     bool
}

// NewMenuModel creates the start screen. name pre-fills the input and
// board preselects a size when it matches a registered one.
func NewMenuModel(name, board string, muted bool, width, height int) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength
	ti.SetValue(name)

	m := MenuModel{
		name:      ti,
		boards:    registry.List(),
		keyMapper: NewKeyMapper(),
		muted:     muted,
		width:     width,
		height:    height,
	}
	for i, b := range m.boards {
		if b.ID == board || b.Key() == board {
			m.cursor = i
		}
	}

	if strings.TrimSpace(name) == "" {
		m.name.Focus()
	} else {
		m.focus = focusBoards
	}
	return m
}

// Init starts the cursor blink.
func (m MenuModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the start screen.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, nil
	case "tab", "shift+tab":
		return m.toggleFocus(), nil
	}

	if m.focus == focusName {
		if msg.String() == "enter" {
			if m.validName() {
				return m.toggleFocus(), nil
			}
			return m, nil
		}
		m.errMsg = ""
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.boards)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.boards) == 0 {
			return m, nil
		}
		if !m.validName() {
			return m.toggleFocus(), nil
		}
		selected := m.boards[m.cursor]
		m.selected = &selected

	case MenuActionBack:
		return m.toggleFocus(), nil

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionSettings:
		m.openSettings = true

	case MenuActionMute:
		m.toggleMute = true
		m.muted = !m.muted
	}

	return m, nil
}

func (m MenuModel) toggleFocus() MenuModel {
	if m.focus == focusName {
		m.focus = focusBoards
		m.name.Blur()
	} else {
		m.focus = focusName
		m.name.Focus()
	}
	return m
}

// validName reports whether the entered name is usable and sets the error line otherwise.
func (m *MenuModel) validName() bool {
	if m.PlayerName() == "" {
		m.errMsg = "Please enter your name"
		return false
	}
	m.errMsg = ""
	return true
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("  M E M O R Y  "))
	b.WriteString("\n\n")

	b.WriteString("Name: ")
	b.WriteString(m.name.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n\n")

	b.WriteString("Board size\n")
	for i, board := range m.boards {
		cursor := "  "
		line := board.String()
		if i == m.cursor {
			cursor = "> "
			if m.focus == focusBoards {
				line = selectedStyle.Render(line)
			}
		}
		b.WriteString(cursor + line + "\n")
	}

	sound := "on"
	if m.muted {
		sound = "muted"
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Sound: %s", sound)))
	b.WriteString("\n\n")

	controls := "Tab: Name/Board  |  Enter: Play  |  L: Leaderboard  |  O: Settings  |  M: Mute  |  Q: Quit"
	b.WriteString(subtleStyle.Render(controls))

	return place(m.width, m.height, panelStyle.Render(b.String()))
}

// PlayerName returns the trimmed player name.
func (m MenuModel) PlayerName() string {
	return strings.TrimSpace(m.name.Value())
}

// Selected returns the chosen board, or nil if none selected.
func (m MenuModel) Selected() *registry.BoardInfo {
	return m.selected
}

// Highlighted returns the board under the cursor.
func (m MenuModel) Highlighted() (registry.BoardInfo, bool) {
	if len(m.boards) == 0 {
		return registry.BoardInfo{}, false
	}
	return m.boards[m.cursor], true
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the leaderboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// WantsSettings returns true if user requested the settings panel.
func (m MenuModel) WantsSettings() bool {
	return m.openSettings
}
