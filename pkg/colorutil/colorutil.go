// Package colorutil provides shared color utilities for the spot analyzer application.
package colorutil

import (
	"image/color"
)

// SpotMarker is the circle color drawn around detected spots.
// Matplotlib tab10 orange, the marker color assay reviewers are used to.
var SpotMarker = color.RGBA{R: 255, G: 127, B: 14, A: 255}

// GrayToRGBA expands a grayscale value into an opaque RGBA color.
func GrayToRGBA(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 255}
}
