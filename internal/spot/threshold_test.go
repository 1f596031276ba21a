package spot

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

// uniformGray builds a w x h image filled with the given value.
func uniformGray(w, h int, v uint8) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for i := range gray.Pix {
		gray.Pix[i] = v
	}
	return gray
}

// drawDisk paints a filled disk of the given value.
func drawDisk(gray *image.Gray, cx, cy, r int, v uint8) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				gray.Pix[y*gray.Stride+x] = v
			}
		}
	}
}

func TestAdaptiveThresholdUniformImageEmpty(t *testing.T) {
	gray := uniformGray(50, 50, 128)
	params := DefaultParams().WithWindow(15).WithSensitivity(2)

	mask := AdaptiveThreshold(gray, params)
	assert.Equal(t, 0, mask.Count())
}

func TestAdaptiveThresholdMarksDarkRegion(t *testing.T) {
	gray := uniformGray(60, 60, 200)
	drawDisk(gray, 30, 30, 5, 40)
	params := DefaultParams().WithWindow(15).WithSensitivity(2)

	mask := AdaptiveThreshold(gray, params)

	assert.True(t, mask.At(30, 30), "disk center should be foreground")
	assert.False(t, mask.At(5, 5), "far background should stay background")
	// The threshold must not flood beyond the disk neighborhood.
	assert.Less(t, mask.Count(), 150)
	assert.Greater(t, mask.Count(), 50)
}

func TestAdaptiveThresholdBrightPolarity(t *testing.T) {
	gray := uniformGray(60, 60, 40)
	drawDisk(gray, 30, 30, 5, 220)
	params := DefaultParams().WithWindow(15).WithSensitivity(2)
	params.Polarity = PolarityBright

	mask := AdaptiveThreshold(gray, params)
	assert.True(t, mask.At(30, 30))
	assert.False(t, mask.At(5, 5))
}

func TestAdaptiveThresholdDeterministic(t *testing.T) {
	gray := uniformGray(60, 60, 200)
	drawDisk(gray, 20, 20, 4, 30)
	drawDisk(gray, 42, 38, 6, 30)
	params := DefaultParams().WithWindow(15).WithSensitivity(2)

	a := AdaptiveThreshold(gray, params)
	b := AdaptiveThreshold(gray, params)
	assert.True(t, a.Equal(b))
}

func TestAdaptiveThresholdSubImage(t *testing.T) {
	// A view into a larger frame must segment exactly like a standalone
	// copy of the same pixels; the row indexing works in view-local
	// coordinates.
	frame := uniformGray(100, 100, 200)
	drawDisk(frame, 50, 50, 5, 40)
	view := frame.SubImage(image.Rect(30, 30, 90, 90)).(*image.Gray)

	standalone := uniformGray(60, 60, 200)
	drawDisk(standalone, 20, 20, 5, 40)

	params := DefaultParams().WithWindow(15).WithSensitivity(2)
	assert.True(t, AdaptiveThreshold(view, params).Equal(AdaptiveThreshold(standalone, params)))
}

func TestAdaptiveThresholdDoesNotModifyInput(t *testing.T) {
	gray := uniformGray(30, 30, 200)
	drawDisk(gray, 15, 15, 4, 30)
	before := make([]uint8, len(gray.Pix))
	copy(before, gray.Pix)

	AdaptiveThreshold(gray, DefaultParams().WithWindow(15))
	assert.Equal(t, before, gray.Pix)
}
