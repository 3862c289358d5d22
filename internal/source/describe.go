package source

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// Describe summarises a loaded image as stable "key: value" lines, suitable
// for diffing two images' metadata.
func Describe(img Image) string {
	var b strings.Builder
	fmt.Fprintf(&b, "source: %s\n", Short(img.Handle))
	if img.Broken() {
		fmt.Fprintf(&b, "status: broken (%v)\n", img.Err)
		return b.String()
	}
	bounds := img.Image.Bounds()
	fmt.Fprintf(&b, "format: %s\n", img.Format)
	fmt.Fprintf(&b, "size: %dx%d\n", bounds.Dx(), bounds.Dy())
	fmt.Fprintf(&b, "model: %s\n", modelName(img.Image.ColorModel()))
	fmt.Fprintf(&b, "bytes: %d\n", img.Bytes)
	mean := MeanColor(img.Image)
	fmt.Fprintf(&b, "mean: #%02x%02x%02x alpha %d\n", mean.R, mean.G, mean.B, mean.A)
	return b.String()
}

func modelName(m color.Model) string {
	switch m {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "Alpha"
	}
	if _, ok := m.(color.Palette); ok {
		return "Paletted"
	}
	return "other"
}

// MeanColor averages every pixel of img in 8-bit space.
func MeanColor(img image.Image) color.RGBA {
	b := img.Bounds()
	n := uint64(b.Dx()) * uint64(b.Dy())
	if n == 0 {
		return color.RGBA{}
	}
	var sr, sg, sb, sa uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			sr += uint64(r >> 8)
			sg += uint64(g >> 8)
			sb += uint64(bl >> 8)
			sa += uint64(a >> 8)
		}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}

// ColorDistance is the alpha-weighted euclidean RGB distance between two
// colours plus a small alpha term. 0 means identical.
func ColorDistance(c1, c2 color.Color) float64 {
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()
	r1, g1, b1, a1 = r1>>8, g1>>8, b1>>8, a1>>8
	r2, g2, b2, a2 = r2>>8, g2>>8, b2>>8, a2>>8
	if a1 == 0 && a2 == 0 {
		return 0
	}
	alphaFactor := float64(a1+a2) / (2.0 * 255.0)
	dist := math.Sqrt(
		math.Pow(float64(int(r1)-int(r2)), 2) +
			math.Pow(float64(int(g1)-int(g2)), 2) +
			math.Pow(float64(int(b1)-int(b2)), 2))
	alphaDiff := math.Abs(float64(int(a1) - int(a2)))
	return dist*alphaFactor + alphaDiff*0.3
}

// MatchRatio returns the share of pixels whose distance is below threshold.
// Images of different sizes cannot be compared pixel by pixel; ok is false.
func MatchRatio(a, b image.Image, threshold float64) (ratio float64, ok bool) {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() || ba.Empty() {
		return 0, false
	}
	match := 0
	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			if ColorDistance(a.At(ba.Min.X+x, ba.Min.Y+y), b.At(bb.Min.X+x, bb.Min.Y+y)) < threshold {
				match++
			}
		}
	}
	return float64(match) / float64(ba.Dx()*ba.Dy()), true
}
