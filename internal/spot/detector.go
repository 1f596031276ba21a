package spot

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoImage is returned when analysis is requested before an image is
// loaded.
var ErrNoImage = errors.New("no image loaded")

// Detect runs the full analysis pipeline on a normalized grayscale image:
//
//	1. Adaptive local-mean threshold
//	2. Morphological cleanup (open, then close)
//	3. 8-connected component extraction
//	4. Size filtering
//	5. Optional Hough circle cross-validation
//	6. Metrics and overlay rendering
//
// Parameters are validated before any stage runs; on a validation error no
// work is done and no partial result is returned. The input image is never
// modified and Detect is safe to call concurrently on the same image.
func Detect(gray *image.Gray, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	mask := Clean(AdaptiveThreshold(gray, params))
	comps := ExtractComponents(mask)
	spots := FilterBySize(comps, params)

	if params.ConfirmCircles {
		confirmed, err := ConfirmCircles(gray, spots, params)
		if err != nil {
			return nil, fmt.Errorf("circle confirmation: %w", err)
		}
		spots = reassignIDs(confirmed)
	}

	return &Result{
		Spots:      spots,
		Histogram:  BuildHistogram(spots),
		Overlay:    RenderOverlay(gray, spots),
		Params:     params,
		Normalized: gray,
	}, nil
}

// reassignIDs renumbers spots after a confirmation pass removed some, so
// IDs stay sequential.
func reassignIDs(spots []Spot) []Spot {
	for i := range spots {
		spots[i].ID = fmt.Sprintf("spot-%03d", i+1)
	}
	return spots
}
