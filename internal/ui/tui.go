// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program and the volume channel feeding playback
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg carries a volume or mute change to the playback loop
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg asks the playback loop to stop
type QuitMsg struct{}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// send drops the change when the playback loop is behind
func (v *VolumeControl) send(msg VolumeChangeMsg) {
	if v == nil {
		return
	}
	select {
	case v.Changes <- msg:
	default:
	}
}

func (v *VolumeControl) quit() {
	if v == nil {
		return
	}
	select {
	case v.Quit <- QuitMsg{}:
	default:
	}
}

// NewModel creates a new TUI model at the given volume
func NewModel(volCtrl *VolumeControl, volume int) Model {
	return Model{
		volume:     volume,
		volumeCtrl: volCtrl,
	}
}

// Run creates the TUI program; the caller starts it with Run on the program
func Run(volCtrl *VolumeControl, volume int) *tea.Program {
	return tea.NewProgram(NewModel(volCtrl, volume), tea.WithAltScreen())
}
