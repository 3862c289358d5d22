package infodiff

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"artlens/internal/source"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestLinesMarksOnlyChangedPairs(t *testing.T) {
	out := Lines("format: png\nsize: 4x4\n", "format: png\nsize: 8x4\n", true)
	assert.Contains(t, out, "  format: png\n")
	assert.Contains(t, out, "- size: 4x4\n")
	assert.Contains(t, out, "+ size: 8x4\n")
}

func TestLinesUnevenBlocks(t *testing.T) {
	out := Lines("a\nb\n", "a\n", true)
	assert.Contains(t, out, "REFERENCE")
	assert.Contains(t, out, "RENDER")
	assert.Contains(t, out, "- b\n")
}

func TestMatch(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	a := source.Image{Handle: "a.png", Image: solid(4, 4, red), Format: "png"}
	b := source.Image{Handle: "b.png", Image: solid(4, 4, red), Format: "png"}
	assert.Equal(t, "pixels: 100.0% match", Match(a, b))

	c := source.Image{Handle: "c.png", Image: solid(2, 4, red), Format: "png"}
	assert.Equal(t, "pixels: n/a (sizes differ)", Match(a, c))

	broken := source.Image{Handle: "x.png", Image: source.Placeholder(4, 4), Err: errors.New("missing")}
	assert.Equal(t, "pixels: n/a (broken source)", Match(a, broken))
}

func TestViewIncludesSources(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	a := source.Image{Handle: "ref.png", Image: solid(4, 4, red), Format: "png"}
	b := source.Image{Handle: "out.png", Image: solid(4, 4, red), Format: "png"}
	out := View(a, b, true)
	assert.True(t, strings.HasPrefix(out, "Image info\n"))
	assert.Contains(t, out, "ref.png")
	assert.Contains(t, out, "out.png")
	assert.Contains(t, out, "  size: 4x4\n")
}
