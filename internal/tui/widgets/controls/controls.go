// Package controls renders the mode-specific control row under the viewport
// and maps clicks on it back to values.
package controls

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"artlens/internal/tui/state"
	"artlens/internal/tui/util"
)

const (
	opacityPrefix = "Opacity "
	// " 100%"
	opacitySuffixWidth = 5
	sourcePrefix       = "Show: "
	trackFilled        = "━"
	trackEmpty         = "─"
	trackKnob          = "●"
)

type Controls struct {
	NoColor bool
	Palette util.Palette
}

func New(noColor bool) Controls {
	return Controls{NoColor: noColor, Palette: util.DefaultPalette()}
}

// View renders the control row for the current mode in width columns.
func (c Controls) View(s state.UIState, width int) string {
	var line string
	switch s.Mode {
	case state.ModeSlide:
		line = c.slide(s, width)
	case state.ModeSplit:
		line = c.split(s, width)
	case state.ModeOverlay:
		line = c.overlay(s, width)
	case state.ModeFull:
		line = c.full(s)
	}
	if width > 0 && ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}

func (c Controls) slide(s state.UIState, width int) string {
	var left, right string
	if state.ReferenceLabelVisible(s) {
		left = c.label("◀ Reference")
	}
	if state.RenderLabelVisible(s) {
		right = c.label("Render ▶")
	}
	return spread(left, fmt.Sprintf("%.0f%%", s.Slider), right, width)
}

func (c Controls) split(s state.UIState, width int) string {
	if s.SplitDirection == state.SplitVertical {
		return spread(c.label("▲ Reference"), "", c.label("▼ Render"), width)
	}
	return spread(c.label("Reference"), "│", c.label("Render"), width)
}

func (c Controls) overlay(s state.UIState, width int) string {
	_, w := Track(width)
	if w <= 0 {
		return fmt.Sprintf("%s%.0f%%", opacityPrefix, s.Opacity)
	}
	knob := int(math.Round(s.Opacity / 100 * float64(w-1)))
	var track strings.Builder
	for i := 0; i < w; i++ {
		switch {
		case i == knob:
			track.WriteString(trackKnob)
		case i < knob:
			track.WriteString(trackFilled)
		default:
			track.WriteString(trackEmpty)
		}
	}
	t := track.String()
	if !c.NoColor {
		t = lipgloss.NewStyle().Foreground(c.Palette.Primary).Render(t)
	}
	return opacityPrefix + t + fmt.Sprintf(" %3.0f%%", s.Opacity)
}

func (c Controls) full(s state.UIState) string {
	var b strings.Builder
	b.WriteString(sourcePrefix)
	for i, src := range sourceOrder {
		if i > 0 {
			b.WriteString(" ")
		}
		text := sourceText(src)
		active := s.FullSource == src
		switch {
		case c.NoColor && active:
			b.WriteString("[" + text[1:len(text)-1] + "]")
		case c.NoColor:
			b.WriteString(text)
		default:
			style := lipgloss.NewStyle().Foreground(c.Palette.Text).Background(c.Palette.MutedDark)
			if active {
				style = style.Background(c.Palette.Primary).Foreground(lipgloss.Color("#1a1b26")).Bold(true)
			}
			b.WriteString(style.Render(text))
		}
	}
	return b.String()
}

func (c Controls) label(text string) string {
	if c.NoColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(c.Palette.Text).Background(c.Palette.Surface).Render(text)
}

// Track returns the first column and the width of the opacity track in a row
// of width columns. w <= 0 means the row is too narrow for a track.
func Track(width int) (left, w int) {
	left = len(opacityPrefix)
	return left, width - left - opacitySuffixWidth
}

// OnTrack reports whether column x is on the opacity track.
func OnTrack(x, width int) bool {
	left, w := Track(width)
	return w > 0 && x >= left && x < left+w
}

// OpacityAt maps column x to an opacity percent along the track, clamped to
// the track ends.
func OpacityAt(x, width int) float64 {
	left, w := Track(width)
	if w <= 1 {
		return 0
	}
	pct := float64(x-left) / float64(w-1) * 100
	return math.Max(0, math.Min(100, pct))
}

var sourceOrder = []state.FullViewSource{state.SourceReference, state.SourceRender}

func sourceText(src state.FullViewSource) string {
	if src == state.SourceReference {
		return " Reference "
	}
	return " Render "
}

// SourceSpans returns the hit ranges of the full-view source buttons. Index
// holds the state.FullViewSource value.
func SourceSpans() []util.Span {
	spans := make([]util.Span, 0, len(sourceOrder))
	x := len(sourcePrefix)
	for _, src := range sourceOrder {
		w := ansi.StringWidth(sourceText(src))
		spans = append(spans, util.Span{Start: x, End: x + w, Index: int(src)})
		x += w + 1
	}
	return spans
}

// spread places left at the start, mid in the centre and right at the end of
// a width-column row.
func spread(left, mid, right string, width int) string {
	lw, mw, rw := ansi.StringWidth(left), ansi.StringWidth(mid), ansi.StringWidth(right)
	if width <= lw+mw+rw+2 {
		return strings.TrimSpace(strings.Join([]string{left, mid, right}, " "))
	}
	free := width - lw - mw - rw
	before := (width-mw)/2 - lw
	if before < 1 {
		before = 1
	}
	after := free - before
	if after < 1 {
		after = 1
	}
	return left + strings.Repeat(" ", before) + mid + strings.Repeat(" ", after) + right
}
