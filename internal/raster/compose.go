// Package raster composes the comparison frame for the current view state and
// turns it into terminal cells.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"artlens/internal/tui/state"
)

// DefaultBackground fills the area not covered by an image.
var DefaultBackground = color.RGBA{R: 0x1a, G: 0x1b, B: 0x26, A: 0xff}

// Frame is everything Compose needs for one picture.
type Frame struct {
	Reference  image.Image
	Render     image.Image
	State      state.UIState
	Width      int // viewport width in pixels
	Height     int // viewport height in pixels
	Background color.Color
}

// Compose draws the frame for the current mode. Both images share one
// transform so their framing stays in registry.
func Compose(f Frame) *image.RGBA {
	if f.Width <= 0 || f.Height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	bounds := image.Rect(0, 0, f.Width, f.Height)
	t := f.State.Transform

	switch f.State.Mode {
	case state.ModeSplit:
		dst := f.blank(bounds)
		a, b := SplitPanes(bounds, f.State.SplitDirection)
		drawFitted(dst, a, f.Reference, t)
		drawFitted(dst, b, f.Render, t)
		return dst

	case state.ModeOverlay:
		under := f.blank(bounds)
		drawFitted(under, bounds, f.Reference, t)
		over := f.blank(bounds)
		drawFitted(over, bounds, f.Render, t)
		Blend(under, over, f.State.Opacity/100)
		return under

	case state.ModeFull:
		dst := f.blank(bounds)
		src := f.Render
		if f.State.FullSource == state.SourceReference {
			src = f.Reference
		}
		drawFitted(dst, bounds, src, t)
		return dst

	default: // slide
		dst := f.blank(bounds)
		drawFitted(dst, bounds, f.Render, t)
		clip := SliderColumn(bounds, f.State.Slider)
		if clip > bounds.Min.X {
			left := image.Rect(bounds.Min.X, bounds.Min.Y, clip, bounds.Max.Y)
			ref := f.blank(bounds)
			drawFitted(ref, bounds, f.Reference, t)
			draw.Draw(dst, left, ref, left.Min, draw.Src)
		}
		return dst
	}
}

func (f Frame) blank(r image.Rectangle) *image.RGBA {
	bg := f.Background
	if bg == nil {
		bg = DefaultBackground
	}
	dst := image.NewRGBA(r)
	draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Src)
	return dst
}

// SliderColumn is the first pixel column of the render side for a slider
// position in percent.
func SliderColumn(r image.Rectangle, slider float64) int {
	return r.Min.X + int(math.Round(slider/100*float64(r.Dx())))
}

// SplitPanes divides r in two halves: left/right or top/bottom.
func SplitPanes(r image.Rectangle, dir state.SplitDirection) (image.Rectangle, image.Rectangle) {
	if dir == state.SplitVertical {
		mid := r.Min.Y + r.Dy()/2
		return image.Rect(r.Min.X, r.Min.Y, r.Max.X, mid), image.Rect(r.Min.X, mid, r.Max.X, r.Max.Y)
	}
	mid := r.Min.X + r.Dx()/2
	return image.Rect(r.Min.X, r.Min.Y, mid, r.Max.Y), image.Rect(mid, r.Min.Y, r.Max.X, r.Max.Y)
}

// FitScale is the factor that makes src fit inside pane ("contain").
func FitScale(pane, src image.Rectangle) float64 {
	if src.Dx() == 0 || src.Dy() == 0 {
		return 0
	}
	return math.Min(float64(pane.Dx())/float64(src.Dx()), float64(pane.Dy())/float64(src.Dy()))
}

// Affine maps source pixels into pane: fit and centre, zoom about the pane
// centre, then translate by the pan offset.
func Affine(pane, src image.Rectangle, t state.Transform) f64.Aff3 {
	k := FitScale(pane, src) * t.Scale
	cx := float64(pane.Min.X) + float64(pane.Dx())/2 + t.Offset.X
	cy := float64(pane.Min.Y) + float64(pane.Dy())/2 + t.Offset.Y
	sx := float64(src.Min.X) + float64(src.Dx())/2
	sy := float64(src.Min.Y) + float64(src.Dy())/2
	return f64.Aff3{
		k, 0, cx - k*sx,
		0, k, cy - k*sy,
	}
}

func drawFitted(dst *image.RGBA, pane image.Rectangle, src image.Image, t state.Transform) {
	if src == nil || pane.Empty() {
		return
	}
	sb := src.Bounds()
	if sb.Empty() {
		return
	}
	m := Affine(pane, sb, t)
	target, ok := dst.SubImage(pane).(*image.RGBA)
	if !ok {
		return
	}
	var interp draw.Interpolator = draw.NearestNeighbor
	if m[0] < 1 {
		interp = draw.ApproxBiLinear
	}
	interp.Transform(target, m, src, sb, draw.Over, nil)
}

// HandleColor is the slide divider colour.
var HandleColor = color.RGBA{R: 0xc0, G: 0xca, B: 0xf5, A: 0xff}

// DrawHandle paints the slide divider: a one pixel wide line at the slider
// column, kept inside the frame at 0% and 100%.
func DrawHandle(dst *image.RGBA, slider float64, c color.RGBA) int {
	b := dst.Bounds()
	if b.Empty() {
		return -1
	}
	x := SliderColumn(b, slider)
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dst.SetRGBA(x, y, c)
	}
	return x
}
