package spot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractComponentsEmptyMask(t *testing.T) {
	assert.Empty(t, ExtractComponents(NewMask(20, 20)))
}

func TestExtractComponentsSingleBlock(t *testing.T) {
	m := NewMask(20, 20)
	for y := 5; y < 9; y++ {
		for x := 10; x < 14; x++ {
			m.Set(x, y, true)
		}
	}

	comps := ExtractComponents(m)
	require.Len(t, comps, 1)

	c := comps[0]
	assert.Equal(t, 1, c.Label)
	assert.Equal(t, 16, c.Area)
	assert.InDelta(t, 11.5, c.Centroid.X, 1e-9)
	assert.InDelta(t, 6.5, c.Centroid.Y, 1e-9)
	assert.Equal(t, 10, c.Bounds.X)
	assert.Equal(t, 5, c.Bounds.Y)
	assert.Equal(t, 4, c.Bounds.Width)
	assert.Equal(t, 4, c.Bounds.Height)
	assert.InDelta(t, 2*math.Sqrt(16/math.Pi), c.EquivDiameter, 1e-9)
}

func TestExtractComponentsRasterLabelOrder(t *testing.T) {
	// Three blocks: the topmost first-pixel wins label 1 regardless of
	// size, then left to right on the next row of regions.
	m := NewMask(30, 30)
	m.Set(20, 2, true) // topmost
	for y := 10; y < 13; y++ {
		m.Set(3, y, true)  // left
		m.Set(15, y, true) // right
	}

	comps := ExtractComponents(m)
	require.Len(t, comps, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{comps[0].Label, comps[1].Label, comps[2].Label})
	assert.InDelta(t, 20, comps[0].Centroid.X, 1e-9)
	assert.InDelta(t, 3, comps[1].Centroid.X, 1e-9)
	assert.InDelta(t, 15, comps[2].Centroid.X, 1e-9)
}

func TestExtractComponentsDiagonalConnectivity(t *testing.T) {
	m := NewMask(10, 10)
	m.Set(2, 2, true)
	m.Set(3, 3, true)
	m.Set(4, 4, true)

	comps := ExtractComponents(m)
	require.Len(t, comps, 1)
	assert.Equal(t, 3, comps[0].Area)
}

func TestExtractComponentsDeterministic(t *testing.T) {
	m := diskMask(60, 60, 15, 15, 6)
	addDisk(m, 40, 35, 9)

	a := ExtractComponents(m)
	b := ExtractComponents(m)
	assert.Equal(t, a, b)
}

func TestExtractComponentsFullFrame(t *testing.T) {
	// A component covering the whole mask must not blow the stack; the
	// fill uses an explicit work list.
	m := NewMask(400, 400)
	for i := range m.Bits {
		m.Bits[i] = true
	}

	comps := ExtractComponents(m)
	require.Len(t, comps, 1)
	assert.Equal(t, 400*400, comps[0].Area)
}

func TestEquivalentDiameter(t *testing.T) {
	assert.Zero(t, EquivalentDiameter(0))
	assert.InDelta(t, 20, EquivalentDiameter(314), 0.1)
}
