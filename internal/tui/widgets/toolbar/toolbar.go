package toolbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"artlens/internal/tui/state"
	"artlens/internal/tui/util"
)

const gap = 1

type Toolbar struct {
	NoColor bool
	Palette util.Palette
}

func New(noColor bool) Toolbar {
	return Toolbar{NoColor: noColor, Palette: util.DefaultPalette()}
}

func buttonText(i int, t state.Tool) string {
	return fmt.Sprintf(" %d %s %s ", i+1, t.Icon, t.Label)
}

// Spans returns the hit ranges of the buttons, in toolbar order. Index is the
// tool's position.
func (Toolbar) Spans(s state.UIState) []util.Span {
	spans := make([]util.Span, 0, len(s.Tools))
	x := 0
	for i, t := range s.Tools {
		w := ansi.StringWidth(buttonText(i, t))
		spans = append(spans, util.Span{Start: x, End: x + w, Index: i})
		x += w + gap
	}
	return spans
}

// View renders the buttons left-aligned and the zoom readout right-aligned
// within width columns.
func (tb Toolbar) View(s state.UIState, width int) string {
	parts := make([]string, 0, len(s.Tools))
	for i, t := range s.Tools {
		parts = append(parts, tb.button(i, t, s))
	}
	left := strings.Join(parts, strings.Repeat(" ", gap))

	right := fmt.Sprintf("%d%%", int(s.Transform.Scale*100+0.5))
	if s.IsFullscreen {
		right = "⛶ " + right
	}

	lw, rw := ansi.StringWidth(left), ansi.StringWidth(right)
	if width <= 0 {
		return left + " " + right
	}
	if lw+1+rw > width {
		return ansi.Truncate(left, width, "…")
	}
	return left + strings.Repeat(" ", width-lw-rw) + right
}

func (tb Toolbar) button(i int, t state.Tool, s state.UIState) string {
	text := buttonText(i, t)
	active := t.ID == s.Mode
	dragged := s.Drag.Kind == state.DragTool && s.Drag.ToolIndex == i
	if tb.NoColor {
		switch {
		case dragged:
			return "{" + text[1:len(text)-1] + "}"
		case active:
			return "[" + text[1:len(text)-1] + "]"
		}
		return text
	}
	style := lipgloss.NewStyle().Foreground(tb.Palette.Text).Background(tb.Palette.MutedDark)
	switch {
	case dragged:
		style = style.Background(tb.Palette.Warning).Foreground(lipgloss.Color("#111111")).Bold(true)
	case active:
		style = style.Background(tb.Palette.Primary).Foreground(lipgloss.Color("#1a1b26")).Bold(true)
	}
	return style.Render(text)
}
