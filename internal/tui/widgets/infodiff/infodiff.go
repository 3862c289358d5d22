package infodiff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"artlens/internal/source"
)

// MatchThreshold is the per-pixel color distance under which two pixels
// count as matching.
const MatchThreshold = 10.0

var (
	refLine    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	renderLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	refChar    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	renderChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint      = lipgloss.NewStyle().Faint(true)
	title      = lipgloss.NewStyle().Bold(true)
)

// View renders the metadata of both images as a line diff, with changed
// characters highlighted, followed by a pixel match summary.
func View(ref, render source.Image, noColor bool) string {
	var sb strings.Builder
	sb.WriteString(style(title, noColor, "Image info") + "\n")
	sb.WriteString(Lines(source.Describe(ref), source.Describe(render), noColor))
	sb.WriteString(Match(ref, render) + "\n")
	return sb.String()
}

// Lines diffs two "key: value" blocks. Equal lines are printed once; a
// differing pair is printed as "-" for the reference and "+" for the render.
func Lines(before, after string, noColor bool) string {
	bLines := strings.Split(strings.TrimRight(before, "\n"), "\n")
	aLines := strings.Split(strings.TrimRight(after, "\n"), "\n")
	var sb strings.Builder
	if len(bLines) != len(aLines) {
		sb.WriteString(style(title, noColor, "REFERENCE") + "\n")
		for _, l := range bLines {
			sb.WriteString(style(refLine, noColor, "- ") + l + "\n")
		}
		sb.WriteString(style(title, noColor, "RENDER") + "\n")
		for _, l := range aLines {
			sb.WriteString(style(renderLine, noColor, "+ ") + l + "\n")
		}
		return sb.String()
	}
	for i := range bLines {
		bl, al := bLines[i], aLines[i]
		if bl == al {
			sb.WriteString("  " + style(faint, noColor, bl) + "\n")
			continue
		}
		d := dmp.New()
		diffs := d.DiffMain(bl, al, false)
		d.DiffCleanupSemantic(diffs)

		sb.WriteString(style(refLine, noColor, "- "))
		for _, df := range diffs {
			switch df.Type {
			case dmp.DiffDelete:
				sb.WriteString(style(refChar, noColor, df.Text))
			case dmp.DiffEqual:
				sb.WriteString(style(refLine, noColor, df.Text))
			}
		}
		sb.WriteString("\n")

		sb.WriteString(style(renderLine, noColor, "+ "))
		for _, df := range diffs {
			switch df.Type {
			case dmp.DiffInsert:
				sb.WriteString(style(renderChar, noColor, df.Text))
			case dmp.DiffEqual:
				sb.WriteString(style(renderLine, noColor, df.Text))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Match summarises how many pixels of the two images agree.
func Match(ref, render source.Image) string {
	if ref.Broken() || render.Broken() {
		return "pixels: n/a (broken source)"
	}
	ratio, ok := source.MatchRatio(ref.Image, render.Image, MatchThreshold)
	if !ok {
		return "pixels: n/a (sizes differ)"
	}
	return fmt.Sprintf("pixels: %.1f%% match", ratio*100)
}

func style(s lipgloss.Style, noColor bool, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}
