package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"

	"artlens/internal/tui/state"
)

const intro = `# Comparison viewer

Compare a **reference** image against a **render**.

- *Slide*: drag the handle to reveal the reference on the left.
- *Split*: both images side by side, zoomed and panned together.
- *Overlay*: the render blended over the reference.
- *Full*: one image at a time.

Scroll to zoom. Drag to pan once zoomed in. Drag a mode button to reorder the toolbar.
`

type HelpOverlay struct {
	NoColor bool
	help    help.Model

	// rendered intro, rebuilt only when the wrap width changes
	renderer      *glamour.TermRenderer
	rendererWidth int
	rendered      string
}

func NewHelpOverlay(noColor bool) HelpOverlay {
	h := help.New()
	h.ShowAll = true
	return HelpOverlay{NoColor: noColor, help: h}
}

// View renders the markdown intro followed by the full key table for km.
func (o *HelpOverlay) View(s state.UIState, km help.KeyMap, width int) string {
	var b strings.Builder
	b.WriteString(o.renderIntro(width))
	fmt.Fprintf(&b, "\nMode: %s\n\n", s.Mode)
	h := o.help
	h.Width = width
	b.WriteString(h.View(km))
	if s.InModal {
		b.WriteString("\n\nFullscreen is unavailable inside a modal.")
	}
	return b.String()
}

func (o *HelpOverlay) renderIntro(width int) string {
	if o.NoColor {
		return intro
	}
	if o.renderer != nil && o.rendererWidth == width {
		return o.rendered
	}
	r, err := newRenderer(width)
	if err != nil {
		return intro
	}
	out, err := r.Render(intro)
	if err != nil {
		return intro
	}
	o.renderer, o.rendererWidth, o.rendered = r, width, out
	return out
}

func newRenderer(width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(styles.TokyoNightStyle)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	return glamour.NewTermRenderer(opts...)
}
