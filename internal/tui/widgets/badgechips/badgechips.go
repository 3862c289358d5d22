package badgechips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"artlens/internal/tui/state"
	"artlens/internal/tui/util"
)

// View renders status badges in the order given, as colored chips or as
// bracketed ASCII when color is off.
func View(badges []state.Badge, noColor bool) string {
	if len(badges) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)

	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		parts = append(parts, renderChip(b, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(b state.Badge, noColor bool) string {
	label := chipLabel(b)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(b).Render(label)
}

func chipLabel(b state.Badge) string {
	switch b.Kind {
	case state.ZOOM:
		return fmt.Sprintf("Zoom %d%%", b.Value)
	case state.PANNED:
		return "Panned"
	case state.DRAGGING:
		return "Dragging"
	case state.BROKEN_REFERENCE:
		return "Broken reference"
	case state.BROKEN_RENDER:
		return "Broken render"
	case state.FULLSCREEN:
		return "Fullscreen"
	case state.MODAL:
		return "Modal"
	default:
		return "Badge"
	}
}

func chipStyle(b state.Badge) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch b.Kind {
	case state.ZOOM:
		return base.Background(p.Primary).Foreground(lipgloss.Color("#1a1b26"))
	case state.PANNED:
		return base.Background(p.Success).Foreground(lipgloss.Color("#FFFFFF"))
	case state.DRAGGING:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case state.BROKEN_REFERENCE, state.BROKEN_RENDER:
		return base.Background(p.Danger).Foreground(lipgloss.Color("#FFFFFF"))
	case state.FULLSCREEN:
		return base.Background(p.Muted).Foreground(lipgloss.Color("#FFFFFF"))
	case state.MODAL:
		return base.Background(p.MutedDark).Foreground(p.Text)
	default:
		return base
	}
}
