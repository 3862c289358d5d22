package source

import (
	"image"
	"image/color"
)

const placeholderSize = 64

var (
	placeholderBack  = color.RGBA{R: 0x2b, G: 0x2b, B: 0x33, A: 0xff}
	placeholderCross = color.RGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0xff}
)

// Placeholder draws the broken-image picture: a dark tile with a red cross
// and frame.
func Placeholder(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := placeholderBack
			onFrame := x < 2 || y < 2 || x >= w-2 || y >= h-2
			// Both diagonals, about two pixels thick.
			d1 := x*h - y*w
			d2 := (w-1-x)*h - y*w
			thick := 2 * max(w, h)
			if onFrame || abs(d1) < thick || abs(d2) < thick {
				c = placeholderCross
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
