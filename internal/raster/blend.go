package raster

import (
	"image"
	"math"
)

// Blend mixes src over dst in place with the given alpha in [0,1]:
// 0 leaves dst untouched, 1 replaces it with src.
func Blend(dst, src *image.RGBA, alpha float64) {
	if math.IsNaN(alpha) || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	a := uint32(math.Round(alpha * 255))
	r := dst.Bounds().Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			for c := 0; c < 4; c++ {
				dst.Pix[di+c] = mix(dst.Pix[di+c], src.Pix[si+c], a)
			}
			di += 4
			si += 4
		}
	}
}

// mix is an integer lerp that is exact at both ends.
func mix(d, s uint8, a uint32) uint8 {
	return uint8((uint32(d)*(255-a) + uint32(s)*a + 127) / 255)
}
