// ABOUTME: Bubbletea model for the playback TUI
// ABOUTME: Defines playback state and key handling for volume and mute
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Stream
	file     string
	mode     string
	frames   int
	duration time.Duration

	// Playback
	played time.Duration
	volume int
	muted  bool
	done   bool
	err    error

	volumeCtrl *VolumeControl

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
		if m.done {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderProgress())
	b.WriteString(m.renderControls())
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ AMR-NB Player ──────────────────────────────────────┐
│ File:   %-45s │
│ Mode:   %-10s Frames: %-8d 8000Hz Mono%-7s │
├──────────────────────────────────────────────────────┤
`, truncate(m.file, 45), m.mode, m.frames, "")
}

func (m Model) renderProgress() string {
	state := "Playing"
	switch {
	case m.err != nil:
		state = "Error: " + truncate(m.err.Error(), 36)
	case m.done:
		state = "Finished"
	}

	percent := 0
	if m.duration > 0 {
		percent = int(m.played * 100 / m.duration)
	}

	return fmt.Sprintf("│ %-52s │\n│ [%s] %5.1fs / %5.1fs%-10s │\n",
		state, renderBar(percent, 100, 20),
		m.played.Seconds(), m.duration.Seconds(), "")
}

func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}

	return fmt.Sprintf("│ Volume: [%s] %3d%%%-8s%-15s │\n",
		renderBar(m.volume, 100, 10), m.volume, muteIcon, "")
}

func (m Model) renderHelp() string {
	return `├──────────────────────────────────────────────────────┤
│ ↑/↓:Volume  m:Mute  q:Quit                           │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.volumeCtrl.quit()
		return m, tea.Quit
	case "up":
		m.volume = min(m.volume+5, 100)
		m.volumeCtrl.send(VolumeChangeMsg{Volume: m.volume, Muted: m.muted})
	case "down":
		m.volume = max(m.volume-5, 0)
		m.volumeCtrl.send(VolumeChangeMsg{Volume: m.volume, Muted: m.muted})
	case "m":
		m.muted = !m.muted
		m.volumeCtrl.send(VolumeChangeMsg{Volume: m.volume, Muted: m.muted})
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.File != "" {
		m.file = msg.File
	}
	if msg.Mode != "" {
		m.mode = msg.Mode
	}
	if msg.Frames != 0 {
		m.frames = msg.Frames
	}
	if msg.Duration != 0 {
		m.duration = msg.Duration
	}
	if msg.Played > m.played {
		m.played = msg.Played
	}
	if msg.Err != nil {
		m.err = msg.Err
	}
	if msg.Done {
		m.done = true
	}
}

// StatusMsg updates TUI state from the playback loop
type StatusMsg struct {
	File     string
	Mode     string
	Frames   int
	Duration time.Duration
	Played   time.Duration
	Err      error
	Done     bool
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
