package spot

import (
	"math"

	"elispot-analyzer/pkg/geometry"
)

// ExtractComponents labels the maximal 8-connected foreground regions of a
// mask and measures each one. Labels are assigned in raster-scan order of
// each region's first-encountered pixel, starting at 1, so the same mask
// always yields the same labeling. Region filling uses an explicit pixel
// stack instead of recursion; a full-frame component must not overflow the
// goroutine stack.
func ExtractComponents(m *Mask) []Component {
	labels := make([]int, m.Width*m.Height)
	var comps []Component

	stack := make([]geometry.PointInt, 0, 256)
	next := 1
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := y*m.Width + x
			if !m.Bits[idx] || labels[idx] != 0 {
				continue
			}

			label := next
			next++
			labels[idx] = label
			stack = append(stack[:0], geometry.PointInt{X: x, Y: y})

			var area int
			var sumX, sumY float64
			pixels := make([]geometry.PointInt, 0, 64)

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				area++
				sumX += float64(p.X)
				sumY += float64(p.Y)
				pixels = append(pixels, p)

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.X+dx, p.Y+dy
						if !m.At(nx, ny) {
							continue
						}
						nidx := ny*m.Width + nx
						if labels[nidx] != 0 {
							continue
						}
						labels[nidx] = label
						stack = append(stack, geometry.PointInt{X: nx, Y: ny})
					}
				}
			}

			comps = append(comps, Component{
				Label: label,
				Area:  area,
				Centroid: geometry.Point2D{
					X: sumX / float64(area),
					Y: sumY / float64(area),
				},
				EquivDiameter: EquivalentDiameter(area),
				Bounds:        geometry.BoundingBoxInt(pixels),
			})
		}
	}
	return comps
}

// EquivalentDiameter returns the diameter of the circle whose area equals
// the given pixel count.
func EquivalentDiameter(area int) float64 {
	return 2 * math.Sqrt(float64(area)/math.Pi)
}
