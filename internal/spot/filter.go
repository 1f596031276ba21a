package spot

import "fmt"

// FilterBySize keeps the components whose pixel area lies within
// [MinArea, MaxArea] and converts them to spots. IDs are assigned
// sequentially in the components' label order, so the filter preserves the
// deterministic ordering established by extraction. An empty result is a
// valid outcome, not an error.
func FilterBySize(comps []Component, params Params) []Spot {
	spots := make([]Spot, 0, len(comps))
	for _, c := range comps {
		if c.Area < params.MinArea || c.Area > params.MaxArea {
			continue
		}
		spots = append(spots, Spot{
			ID:            fmt.Sprintf("spot-%03d", len(spots)+1),
			Area:          c.Area,
			EquivDiameter: c.EquivDiameter,
			Centroid:      c.Centroid,
			Bounds:        c.Bounds,
		})
	}
	return spots
}
