package rendering

import (
	"image"
	"image/draw"
	"math"

	"github.com/wikimol/wikimolgen/internal/rendering/style"
)

// AutoCrop trims an image to the bounds of its drawn content plus margin
// pixels.  Transparent styles crop on the alpha channel; opaque styles crop
// on deviation from the background color.
func AutoCrop(img image.Image, margin int, sty style.Style) image.Image {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if !isContent(sty, r, g, b, a) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return img // blank canvas, nothing to crop to
	}

	crop := image.Rect(
		maxInt(bounds.Min.X, minX-margin),
		maxInt(bounds.Min.Y, minY-margin),
		minInt(bounds.Max.X, maxX+margin+1),
		minInt(bounds.Max.Y, maxY+margin+1),
	)

	out := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(out, out.Bounds(), img, crop.Min, draw.Src)
	return out
}

// isContent decides whether a pixel belongs to the drawing.
func isContent(sty style.Style, r, g, b, a uint32) bool {
	if sty.Transparent {
		return a > 0
	}
	const scale = 65535.0
	dr := float64(r)/scale - sty.Background.R
	dg := float64(g)/scale - sty.Background.G
	db := float64(b)/scale - sty.Background.B
	return math.Abs(dr)+math.Abs(dg)+math.Abs(db) > 0.02
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
