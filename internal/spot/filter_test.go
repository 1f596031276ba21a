package spot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compsWithAreas(areas ...int) []Component {
	comps := make([]Component, len(areas))
	for i, a := range areas {
		comps[i] = Component{Label: i + 1, Area: a, EquivDiameter: EquivalentDiameter(a)}
	}
	return comps
}

func TestFilterBySizeBoundsInclusive(t *testing.T) {
	comps := compsWithAreas(9, 10, 500, 1000, 1001)
	spots := FilterBySize(comps, DefaultParams().WithAreaRange(10, 1000))

	require.Len(t, spots, 3)
	assert.Equal(t, 10, spots[0].Area)
	assert.Equal(t, 500, spots[1].Area)
	assert.Equal(t, 1000, spots[2].Area)
}

func TestFilterBySizeSequentialIDs(t *testing.T) {
	comps := compsWithAreas(5, 100, 5, 200)
	spots := FilterBySize(comps, DefaultParams().WithAreaRange(50, 500))

	require.Len(t, spots, 2)
	assert.Equal(t, "spot-001", spots[0].ID)
	assert.Equal(t, "spot-002", spots[1].ID)
}

func TestFilterBySizeEmptyResult(t *testing.T) {
	spots := FilterBySize(compsWithAreas(5, 2000), DefaultParams().WithAreaRange(10, 1000))
	assert.NotNil(t, spots)
	assert.Empty(t, spots)
}

func TestFilterBySizeWideningNeverDropsSpots(t *testing.T) {
	comps := compsWithAreas(3, 20, 80, 300, 900, 4000)

	narrow := FilterBySize(comps, DefaultParams().WithAreaRange(50, 500))
	wide := FilterBySize(comps, DefaultParams().WithAreaRange(10, 1000))
	assert.GreaterOrEqual(t, len(wide), len(narrow))
}
