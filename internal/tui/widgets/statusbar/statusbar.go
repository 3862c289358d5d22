package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"artlens/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state, cut to width
// columns when width > 0.
func (StatusBar) View(s state.UIState, width int) string {
	mode := "[" + strings.ToUpper(s.Mode.String()) + "]"
	zoom := fmt.Sprintf("Zoom: %d%%", int(s.Transform.Scale*100+0.5))
	pos := fmt.Sprintf("Pan: %+.0f,%+.0f", s.Transform.Offset.X, s.Transform.Offset.Y)

	parts := []string{mode, zoom, pos}
	switch s.Mode {
	case state.ModeSlide:
		parts = append(parts, fmt.Sprintf("Slider: %.0f%%", s.Slider))
	case state.ModeOverlay:
		parts = append(parts, fmt.Sprintf("Opacity: %.0f%%", s.Opacity))
	case state.ModeFull:
		parts = append(parts, "Showing: "+s.FullSource.String())
	case state.ModeSplit:
		parts = append(parts, "Split: "+s.SplitDirection.String())
	}
	if s.Drag.Active() {
		parts = append(parts, "Drag: "+s.Drag.Kind.String())
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	line := strings.Join(parts, "  ")
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}
