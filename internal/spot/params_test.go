package spot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParamsValid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}

func TestValidateRejectsEvenWindow(t *testing.T) {
	err := DefaultParams().WithWindow(40).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestValidateRejectsTinyWindow(t *testing.T) {
	err := DefaultParams().WithWindow(1).Validate()
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestValidateRejectsNegativeMinArea(t *testing.T) {
	err := DefaultParams().WithAreaRange(-1, 100).Validate()
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestValidateRejectsInvertedAreaRange(t *testing.T) {
	err := DefaultParams().WithAreaRange(500, 100).Validate()
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestValidateAcceptsEqualAreaBounds(t *testing.T) {
	assert.NoError(t, DefaultParams().WithAreaRange(100, 100).Validate())
}

func TestWithHelpersCopy(t *testing.T) {
	base := DefaultParams()
	modified := base.WithWindow(15).WithSensitivity(3).WithAreaRange(5, 50)

	assert.Equal(t, 41, base.WindowSize)
	assert.Equal(t, 15, modified.WindowSize)
	assert.Equal(t, float64(3), modified.Sensitivity)
	assert.Equal(t, 5, modified.MinArea)
	assert.Equal(t, 50, modified.MaxArea)
}

func TestParsePolarity(t *testing.T) {
	p, err := ParsePolarity("dark")
	require.NoError(t, err)
	assert.Equal(t, PolarityDark, p)

	p, err = ParsePolarity("bright")
	require.NoError(t, err)
	assert.Equal(t, PolarityBright, p)

	_, err = ParsePolarity("sideways")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
