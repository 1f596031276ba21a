package spot

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram is a binned distribution of spot areas. Edges has one more
// element than Counts; bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64
	Counts []float64
}

// Bins returns the number of bins.
func (h Histogram) Bins() int {
	return len(h.Counts)
}

// Summary holds aggregate statistics over the accepted spots.
type Summary struct {
	Count        int
	TotalArea    int
	MeanArea     float64
	MedianArea   float64
	StdDevArea   float64
	MeanDiameter float64
}

// BuildHistogram bins the spot areas. The bin count follows Sturges' rule
// over the sample size, with edges spanning the observed area range. An
// empty spot list yields a zero-valued histogram.
func BuildHistogram(spots []Spot) Histogram {
	if len(spots) == 0 {
		return Histogram{}
	}

	areas := make([]float64, len(spots))
	for i, s := range spots {
		areas[i] = float64(s.Area)
	}
	sort.Float64s(areas)

	bins := int(math.Ceil(math.Log2(float64(len(areas))))) + 1
	if bins < 1 {
		bins = 1
	}

	minA, maxA := areas[0], areas[len(areas)-1]
	if maxA == minA {
		maxA = minA + 1
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, minA, maxA)
	// stat.Histogram requires every sample strictly below the last edge.
	edges[bins] = math.Nextafter(maxA, math.Inf(1))

	counts := stat.Histogram(nil, edges, areas, nil)
	return Histogram{Edges: edges, Counts: counts}
}

// Summarize computes aggregate statistics over the spots. All statistics of
// an empty spot list are zero.
func Summarize(spots []Spot) Summary {
	if len(spots) == 0 {
		return Summary{}
	}

	areas := make([]float64, len(spots))
	s := Summary{Count: len(spots)}
	for i, sp := range spots {
		areas[i] = float64(sp.Area)
		s.TotalArea += sp.Area
		s.MeanDiameter += sp.EquivDiameter
	}
	s.MeanDiameter /= float64(len(spots))

	sort.Float64s(areas)
	s.MeanArea = stat.Mean(areas, nil)
	s.MedianArea = stat.Quantile(0.5, stat.Empirical, areas, nil)
	if len(areas) > 1 {
		s.StdDevArea = stat.StdDev(areas, nil)
	}
	return s
}

// Report renders the spots as table rows for CSV export or console output.
// The first row is the header.
func Report(spots []Spot) [][]string {
	rows := make([][]string, 0, len(spots)+1)
	rows = append(rows, []string{"id", "area_px", "diameter_px", "centroid_x", "centroid_y"})
	for _, s := range spots {
		rows = append(rows, []string{
			s.ID,
			fmt.Sprintf("%d", s.Area),
			fmt.Sprintf("%.2f", s.EquivDiameter),
			fmt.Sprintf("%.2f", s.Centroid.X),
			fmt.Sprintf("%.2f", s.Centroid.Y),
		})
	}
	return rows
}
