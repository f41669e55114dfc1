package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/sound"
)

const volumeStep = 0.1

// SettingsModel edits the per-channel volumes and the mute switch.
// The last row is the mute toggle.
type SettingsModel struct {
	handle *sound.Handle
	bar    progress.Model
	cursor int
	width  int
	height int

	changed bool
	done    bool
}

// NewSettingsModel edits the settings held by handle.
func NewSettingsModel(handle *sound.Handle, width, height int) SettingsModel {
	return SettingsModel{
		handle: handle,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		width:  width,
		height: height,
	}
}

func (m SettingsModel) muteRow() int { return len(sound.Channels) }

// Update handles messages for the settings panel.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "w":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "s":
			if m.cursor < m.muteRow() {
				m.cursor++
			}
		case "left", "h", "a", "-":
			m.adjust(-volumeStep)
		case "right", "l", "d", "+", "=":
			m.adjust(volumeStep)
		case " ", "m":
			m.handle.Update(func(s sound.Settings) sound.Settings {
				s.Mute = !s.Mute
				return s
			})
			m.changed = true
		case "enter", "esc", "b", "q", "ctrl+c":
			m.done = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *SettingsModel) adjust(delta float64) {
	if m.cursor >= m.muteRow() {
		return
	}
	c := sound.Channels[m.cursor]
	m.handle.Update(func(s sound.Settings) sound.Settings {
		return s.WithVolume(c, s.Volume(c)+delta)
	})
	m.changed = true
}

// View renders the sliders.
func (m SettingsModel) View() string {
	cur := m.handle.Get()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sound settings"))
	b.WriteString("\n\n")

	for i, c := range sound.Channels {
		label := fmt.Sprintf("%-11s", c.String())
		if i == m.cursor {
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s %s\n", label, m.bar.ViewAs(cur.Volume(c)))
	}

	mute := "[ ] Mute"
	if cur.Mute {
		mute = "[x] Mute"
	}
	if m.cursor == m.muteRow() {
		mute = selectedStyle.Render(mute)
	}
	b.WriteString("\n" + mute + "\n\n")
	b.WriteString(subtleStyle.Render("↑/↓: Select  |  ←/→: Volume  |  Space: Mute  |  Esc: Back"))

	return place(m.width, m.height, panelStyle.Render(b.String()))
}

// Changed reports whether any setting was modified.
func (m SettingsModel) Changed() bool { return m.changed }

// Done reports whether the panel was closed.
func (m SettingsModel) Done() bool { return m.done }
