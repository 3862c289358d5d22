package tui

import tea "github.com/charmbracelet/bubbletea"

// Screen controls the terminal's fullscreen presentation. Active reports the
// real state; Enter and Exit return the commands that change it and must
// eventually deliver a FullscreenChangedMsg.
type Screen interface {
	Active() bool
	Enter() tea.Cmd
	Exit() tea.Cmd
}

// FullscreenChangedMsg reports that the screen entered or left fullscreen.
// The viewer's fullscreen flag only ever follows this message.
type FullscreenChangedMsg struct {
	Active bool
}

// AltScreen uses the terminal's alternate screen buffer as fullscreen.
type AltScreen struct {
	active bool
}

func NewAltScreen() *AltScreen { return &AltScreen{} }

func (a *AltScreen) Active() bool { return a.active }

func (a *AltScreen) Enter() tea.Cmd {
	a.active = true
	return tea.Sequence(tea.EnterAltScreen, changed(true))
}

func (a *AltScreen) Exit() tea.Cmd {
	a.active = false
	return tea.Sequence(tea.ExitAltScreen, changed(false))
}

func changed(active bool) tea.Cmd {
	return func() tea.Msg { return FullscreenChangedMsg{Active: active} }
}
