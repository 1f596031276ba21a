package spot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRejectsInvalidParams(t *testing.T) {
	gray := uniformGray(50, 50, 128)

	result, err := Detect(gray, DefaultParams().WithWindow(4))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDetectBlankImage(t *testing.T) {
	gray := uniformGray(100, 80, 180)

	result, err := Detect(gray, DefaultParams().WithWindow(15).WithSensitivity(2))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count())
	assert.Equal(t, 0, result.Histogram.Bins())
	assert.Equal(t, 100, result.Overlay.Rect.Dx())
	assert.Equal(t, 80, result.Overlay.Rect.Dy())
}

func TestDetectTwoCircles(t *testing.T) {
	// One small and one large dark disk on a pale background. Both must
	// come back with equivalent diameters close to the drawn ones.
	gray := uniformGray(120, 70, 200)
	drawDisk(gray, 25, 25, 5, 40)
	drawDisk(gray, 75, 35, 10, 40)

	params := DefaultParams().
		WithWindow(15).
		WithSensitivity(2).
		WithAreaRange(50, 500)

	result, err := Detect(gray, params)
	require.NoError(t, err)
	require.Equal(t, 2, result.Count())

	// Raster order: the small disk's topmost pixel is at y=20, the large
	// disk's at y=25.
	small, large := result.Spots[0], result.Spots[1]
	assert.Equal(t, "spot-001", small.ID)
	assert.Equal(t, "spot-002", large.ID)

	assert.InDelta(t, 10, small.EquivDiameter, 1)
	assert.InDelta(t, 20, large.EquivDiameter, 1)
	assert.InDelta(t, 25, small.Centroid.X, 1)
	assert.InDelta(t, 25, small.Centroid.Y, 1)
	assert.InDelta(t, 75, large.Centroid.X, 1)
	assert.InDelta(t, 35, large.Centroid.Y, 1)
	assert.Less(t, small.Area, large.Area)
}

func TestDetectSizeFilterExcludes(t *testing.T) {
	gray := uniformGray(120, 70, 200)
	drawDisk(gray, 25, 25, 5, 40)  // area ~81
	drawDisk(gray, 75, 35, 10, 40) // area ~317

	params := DefaultParams().
		WithWindow(15).
		WithSensitivity(2).
		WithAreaRange(150, 500)

	result, err := Detect(gray, params)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count())
	assert.Equal(t, "spot-001", result.Spots[0].ID)
	assert.InDelta(t, 20, result.Spots[0].EquivDiameter, 1)
}

func TestDetectDeterministic(t *testing.T) {
	gray := uniformGray(120, 70, 200)
	drawDisk(gray, 25, 25, 5, 40)
	drawDisk(gray, 75, 35, 10, 40)

	params := DefaultParams().WithWindow(15).WithSensitivity(2).WithAreaRange(50, 500)

	a, err := Detect(gray, params)
	require.NoError(t, err)
	b, err := Detect(gray, params)
	require.NoError(t, err)

	assert.Equal(t, a.Spots, b.Spots)
}

func TestDetectDoesNotModifyInput(t *testing.T) {
	gray := uniformGray(80, 60, 200)
	drawDisk(gray, 40, 30, 8, 40)
	before := make([]uint8, len(gray.Pix))
	copy(before, gray.Pix)

	_, err := Detect(gray, DefaultParams().WithWindow(15).WithSensitivity(2))
	require.NoError(t, err)
	assert.Equal(t, before, gray.Pix)
}
