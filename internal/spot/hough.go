//go:build gocv

package spot

import (
	"image"

	"gocv.io/x/gocv"
)

// ConfirmCircles cross-validates detected spots against a Hough circle
// transform of the same image, keeping only spots with a Hough circle
// center within one equivalent radius of the spot centroid. Useful on noisy
// membranes where the threshold picks up smears that are not circular.
func ConfirmCircles(gray *image.Gray, spots []Spot, params Params) ([]Spot, error) {
	if len(spots) == 0 {
		return spots, nil
	}

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	minR, maxR := houghRadiusRange(params)

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(mat, &circles, gocv.HoughGradient,
		1,                 // accumulator resolution
		float64(minR*2+1), // min distance between centers
		100, 20,           // Canny high threshold, accumulator threshold
		minR, maxR)

	confirmed := make([]Spot, 0, len(spots))
	for _, s := range spots {
		for i := 0; i < circles.Cols(); i++ {
			v := circles.GetVecfAt(0, i)
			cx, cy := float64(v[0]), float64(v[1])
			dx, dy := cx-s.Centroid.X, cy-s.Centroid.Y
			r := s.Radius()
			if dx*dx+dy*dy <= r*r {
				confirmed = append(confirmed, s)
				break
			}
		}
	}
	return confirmed, nil
}

// houghRadiusRange derives the circle radius search range from the area
// bounds, padded a pixel each way for centroid jitter.
func houghRadiusRange(params Params) (int, int) {
	minR := int(EquivalentDiameter(params.MinArea)/2) - 1
	if minR < 1 {
		minR = 1
	}
	maxR := int(EquivalentDiameter(params.MaxArea)/2) + 1
	return minR, maxR
}
