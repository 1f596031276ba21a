package spot

import (
	"image"
	"image/color"
	"math"

	"elispot-analyzer/pkg/colorutil"
	"elispot-analyzer/pkg/geometry"
)

// RenderOverlay composites the normalized image to RGBA and strokes a
// circle outline around each accepted spot. The circle is centered on the
// spot centroid with the equivalent-diameter radius, so visually the ring
// hugs the measured extent rather than the bounding box. The input image is
// not modified; the overlay has the same dimensions.
func RenderOverlay(gray *image.Gray, spots []Spot) *image.RGBA {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colorutil.GrayToRGBA(gray.Pix[y*gray.Stride+x])
			i := out.PixOffset(x, y)
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}

	for _, s := range spots {
		r := s.Radius()
		if r < 1 {
			r = 1
		}
		strokeCircle(out, s.Centroid, r, colorutil.SpotMarker)
	}
	return out
}

// strokeCircle plots a one-pixel ring by sampling points around the
// circumference densely enough that adjacent samples land on neighboring
// pixels. Points outside the image are skipped.
func strokeCircle(img *image.RGBA, center geometry.Point2D, radius float64, c color.RGBA) {
	n := int(math.Ceil(2 * math.Pi * radius * 2))
	if n < 8 {
		n = 8
	}
	for _, p := range geometry.GenerateCirclePoints(center.X, center.Y, radius, n) {
		x := int(math.Round(p.X))
		y := int(math.Round(p.Y))
		if !image.Pt(x, y).In(img.Rect) {
			continue
		}
		i := img.PixOffset(x, y)
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}
