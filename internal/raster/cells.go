package raster

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf draws the top pixel in the foreground and the bottom pixel in the
// background of one cell.
const upperHalf = "▀"

// PixelsPerRow is the vertical pixel count of one terminal cell.
const PixelsPerRow = 2

// Cells renders img as terminal lines, two pixel rows per line. Runs of cells
// with identical colours share one styled span.
func Cells(img *image.RGBA) []string {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	lines := make([]string, 0, (b.Dy()+1)/PixelsPerRow)
	for y := b.Min.Y; y < b.Max.Y; y += PixelsPerRow {
		var sb strings.Builder
		runFg, runBg := "", ""
		runLen := 0
		flush := func() {
			if runLen == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runFg)).Background(lipgloss.Color(runBg))
			sb.WriteString(style.Render(strings.Repeat(upperHalf, runLen)))
			runLen = 0
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			fg := Hex(img.RGBAAt(x, y))
			bg := fg
			if y+1 < b.Max.Y {
				bg = Hex(img.RGBAAt(x, y+1))
			}
			if runLen > 0 && (fg != runFg || bg != runBg) {
				flush()
			}
			runFg, runBg = fg, bg
			runLen++
		}
		flush()
		lines = append(lines, sb.String())
	}
	return lines
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
