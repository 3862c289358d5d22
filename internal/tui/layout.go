package tui

import (
	"image"

	"artlens/internal/raster"
)

// layout is the screen geometry in cells. Row 0 is the toolbar, the
// viewport follows, then the controls row and the status row.
type layout struct {
	width    int
	viewTop  int
	viewRows int
}

func (m *Model) layout() layout {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return layout{width: m.width, viewTop: 1, viewRows: rows}
}

func (l layout) toolbarRow() int  { return 0 }
func (l layout) controlsRow() int { return l.viewTop + l.viewRows }

// pixels is the viewport in image pixels: one column is one pixel wide and
// one row is two pixels tall.
func (l layout) pixels() image.Rectangle {
	return image.Rect(0, 0, l.width, l.viewRows*raster.PixelsPerRow)
}

func (l layout) inViewport(x, y int) bool {
	return x >= 0 && x < l.width && y >= l.viewTop && y < l.viewTop+l.viewRows
}

// handleColumn is the cell column of the slide divider.
func (l layout) handleColumn(slider float64) int {
	x := raster.SliderColumn(l.pixels(), slider)
	if x >= l.width {
		x = l.width - 1
	}
	return x
}
