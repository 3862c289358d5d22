package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps m in a Bubble Tea program with mouse tracking when
// enabled. Hosts keep the program to Send ZoomInMsg, ZoomOutMsg and ResetMsg.
func NewProgram(m *Model, extra ...tea.ProgramOption) *tea.Program {
	opts := make([]tea.ProgramOption, 0, len(extra)+1)
	if m.mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	opts = append(opts, extra...)
	return tea.NewProgram(m, opts...)
}

// Run shows the viewer until the user quits, then tears it down.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	_, err := NewProgram(m).Run()
	return err
}
