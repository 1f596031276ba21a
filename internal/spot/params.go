package spot

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when analysis parameters fail validation.
// The pipeline rejects bad parameters before any stage runs, so a failed
// invocation never produces a partial result.
var ErrInvalidParameter = errors.New("invalid analysis parameter")

// Polarity selects which side of the local threshold counts as foreground.
type Polarity int

const (
	// PolarityDark marks pixels darker than the local threshold as spots.
	// This is the convention for developed ELISpot membranes, where spots
	// appear as dark blots on a pale background.
	PolarityDark Polarity = iota

	// PolarityBright marks pixels brighter than the local threshold,
	// for assays imaged with inverted contrast.
	PolarityBright
)

func (p Polarity) String() string {
	switch p {
	case PolarityDark:
		return "dark"
	case PolarityBright:
		return "bright"
	default:
		return "unknown"
	}
}

// ParsePolarity converts a polarity name ("dark" or "bright") to a Polarity.
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "dark":
		return PolarityDark, nil
	case "bright":
		return PolarityBright, nil
	default:
		return 0, fmt.Errorf("%w: polarity %q (want dark or bright)", ErrInvalidParameter, s)
	}
}

// Params holds the tunable settings for one analysis invocation.
// A Params value is treated as immutable: the With* helpers return copies,
// and the pipeline never modifies the value it is given.
type Params struct {
	// WindowSize is the side of the square neighborhood used for the
	// local adaptive threshold. Must be odd and at least 3.
	WindowSize int

	// Sensitivity is subtracted from the local mean to form the
	// threshold. Higher values require spots to stand out more from
	// their surroundings.
	Sensitivity float64

	// MinArea and MaxArea bound the pixel count of accepted spots.
	MinArea int
	MaxArea int

	// Polarity selects dark-on-light or bright-on-dark spots.
	Polarity Polarity

	// ConfirmCircles enables Hough-circle cross-validation of accepted
	// spots. Requires a build with OpenCV support.
	ConfirmCircles bool
}

// DefaultParams returns the parameter set the interactive shell starts from.
// These match the slider defaults assay operators are used to: a 41 px
// window with sensitivity 10 on images normalized to 674 px width.
func DefaultParams() Params {
	return Params{
		WindowSize:  41,
		Sensitivity: 10,
		MinArea:     10,
		MaxArea:     1000,
		Polarity:    PolarityDark,
	}
}

// WithWindow returns a copy of params with a different threshold window.
func (p Params) WithWindow(size int) Params {
	p.WindowSize = size
	return p
}

// WithSensitivity returns a copy of params with a different sensitivity.
func (p Params) WithSensitivity(s float64) Params {
	p.Sensitivity = s
	return p
}

// WithAreaRange returns a copy of params with different spot area bounds.
func (p Params) WithAreaRange(minArea, maxArea int) Params {
	p.MinArea = minArea
	p.MaxArea = maxArea
	return p
}

// Validate checks the parameter set. All violations wrap ErrInvalidParameter.
func (p Params) Validate() error {
	if p.WindowSize < 3 || p.WindowSize%2 == 0 {
		return fmt.Errorf("%w: window size %d must be odd and >= 3", ErrInvalidParameter, p.WindowSize)
	}
	if p.MinArea < 0 {
		return fmt.Errorf("%w: min area %d must not be negative", ErrInvalidParameter, p.MinArea)
	}
	if p.MinArea > p.MaxArea {
		return fmt.Errorf("%w: min area %d exceeds max area %d", ErrInvalidParameter, p.MinArea, p.MaxArea)
	}
	if p.Polarity != PolarityDark && p.Polarity != PolarityBright {
		return fmt.Errorf("%w: polarity %d", ErrInvalidParameter, p.Polarity)
	}
	return nil
}
