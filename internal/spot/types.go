// Package spot implements the ELISpot spot detection and measurement
// pipeline: adaptive thresholding, morphological cleanup, connected
// component extraction, size filtering, metrics, and overlay rendering.
//
// Every stage takes immutable inputs and allocates its own output, so
// concurrent invocations over the same normalized image need no locking.
package spot

import (
	"image"

	"elispot-analyzer/pkg/geometry"
)

// Mask is a binary foreground/background grid with the same dimensions as
// the image it was derived from.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask creates an all-background mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is foreground.
// Out-of-bounds coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// Set marks the pixel at (x, y) as foreground or background.
func (m *Mask) Set(x, y int, fg bool) {
	m.Bits[y*m.Width+x] = fg
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Equal reports whether two masks have identical dimensions and bits.
func (m *Mask) Equal(other *Mask) bool {
	if m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for i, b := range m.Bits {
		if b != other.Bits[i] {
			return false
		}
	}
	return true
}

// Component is a maximal 8-connected set of foreground pixels.
type Component struct {
	Label         int              // positive label in raster-scan order
	Area          int              // pixel count
	Centroid      geometry.Point2D // mean pixel coordinate
	EquivDiameter float64          // diameter of the circle with the same area
	Bounds        geometry.RectInt
}

// Spot is one detected and accepted immune-response marker.
type Spot struct {
	ID            string           `json:"id"`
	Area          int              `json:"area"`
	EquivDiameter float64          `json:"diameter"`
	Centroid      geometry.Point2D `json:"centroid"`
	Bounds        geometry.RectInt `json:"bounds"`
}

// Radius returns half the equivalent diameter.
func (s Spot) Radius() float64 {
	return s.EquivDiameter / 2
}

// Result holds everything one analysis invocation produced. It is never
// modified after Detect returns it.
type Result struct {
	Spots     []Spot
	Histogram Histogram
	Overlay   *image.RGBA
	Params    Params

	// Normalized is the single-channel image the spots were measured on.
	// Shared with the caller; treated as read-only.
	Normalized *image.Gray
}

// Count returns the number of detected spots.
func (r *Result) Count() int {
	return len(r.Spots)
}
