//go:build !gocv

package spot

import (
	"errors"
	"image"
)

// ErrNoOpenCV is returned when circle confirmation is requested from a
// build without OpenCV support.
var ErrNoOpenCV = errors.New("circle confirmation requires a build with the gocv tag")

// ConfirmCircles is unavailable without OpenCV. Builds made with the gocv
// tag replace this with the real Hough transform cross-validation.
func ConfirmCircles(_ *image.Gray, _ []Spot, _ Params) ([]Spot, error) {
	return nil, ErrNoOpenCV
}
