package app

import (
	"image"
	"testing"

	"elispot-analyzer/internal/spot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, 80, 60))
	for i := range gray.Pix {
		gray.Pix[i] = 200
	}
	// one dark disk
	for y := 22; y <= 38; y++ {
		for x := 32; x <= 48; x++ {
			dx, dy := x-40, y-30
			if dx*dx+dy*dy <= 64 {
				gray.Pix[y*gray.Stride+x] = 40
			}
		}
	}
	return gray
}

func TestAnalyzeWithoutImage(t *testing.T) {
	state := NewState()
	_, err := state.Analyze()
	assert.ErrorIs(t, err, spot.ErrNoImage)
}

func TestSetParamsRejectsInvalid(t *testing.T) {
	state := NewState()
	err := state.SetParams(spot.DefaultParams().WithWindow(2))
	assert.ErrorIs(t, err, spot.ErrInvalidParameter)
	// The stored params must be untouched.
	assert.Equal(t, spot.DefaultParams(), state.CurrentParams())
}

func TestCurrentImage(t *testing.T) {
	state := NewState()
	assert.Nil(t, state.CurrentImage())
	assert.False(t, state.HasImage())

	img := testImage()
	state.Normalized = img
	assert.Same(t, img, state.CurrentImage())
	assert.True(t, state.HasImage())
}

func TestAnalyzeEmitsCompletionEvent(t *testing.T) {
	state := NewState()
	state.Normalized = testImage()

	require.NoError(t, state.SetParams(
		spot.DefaultParams().WithWindow(15).WithSensitivity(2).WithAreaRange(50, 500)))

	var got *spot.Result
	state.On(EventAnalysisComplete, func(data interface{}) {
		got, _ = data.(*spot.Result)
	})

	result, err := state.Analyze()
	require.NoError(t, err)
	assert.Same(t, result, got)
	assert.Same(t, result, state.CurrentResult())
	assert.Equal(t, 1, result.Count())
}

func TestAnalyzeFailureEmitsEvent(t *testing.T) {
	state := NewState()
	state.Normalized = testImage()
	state.Params = spot.DefaultParams().WithWindow(4)

	failed := false
	state.On(EventAnalysisFailed, func(interface{}) { failed = true })

	_, err := state.Analyze()
	assert.Error(t, err)
	assert.True(t, failed)
	assert.Nil(t, state.CurrentResult())
}
