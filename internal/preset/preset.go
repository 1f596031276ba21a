// Package preset loads analysis parameter presets from YAML files, so
// batch runs can share tuned settings without retyping flag values.
package preset

import (
	"fmt"
	"os"

	"elispot-analyzer/internal/spot"

	"gopkg.in/yaml.v3"
)

// file mirrors the YAML layout. Pointer fields distinguish an absent key
// from an explicit zero, so a preset can override only some parameters.
type file struct {
	WindowSize     *int     `yaml:"window_size"`
	Sensitivity    *float64 `yaml:"sensitivity"`
	MinArea        *int     `yaml:"min_area"`
	MaxArea        *int     `yaml:"max_area"`
	Polarity       *string  `yaml:"polarity"`
	ConfirmCircles *bool    `yaml:"confirm_circles"`
}

// Load reads a preset file and applies it on top of the default
// parameters. The result is validated before being returned.
func Load(path string) (spot.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spot.Params{}, fmt.Errorf("failed to read preset: %w", err)
	}
	return Parse(data)
}

// Parse applies YAML preset data on top of the default parameters.
func Parse(data []byte) (spot.Params, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return spot.Params{}, fmt.Errorf("failed to parse preset: %w", err)
	}

	params := spot.DefaultParams()
	if f.WindowSize != nil {
		params.WindowSize = *f.WindowSize
	}
	if f.Sensitivity != nil {
		params.Sensitivity = *f.Sensitivity
	}
	if f.MinArea != nil {
		params.MinArea = *f.MinArea
	}
	if f.MaxArea != nil {
		params.MaxArea = *f.MaxArea
	}
	if f.Polarity != nil {
		p, err := spot.ParsePolarity(*f.Polarity)
		if err != nil {
			return spot.Params{}, err
		}
		params.Polarity = p
	}
	if f.ConfirmCircles != nil {
		params.ConfirmCircles = *f.ConfirmCircles
	}

	if err := params.Validate(); err != nil {
		return spot.Params{}, err
	}
	return params, nil
}

// Save writes parameters to a preset file.
func Save(path string, params spot.Params) error {
	polarity := params.Polarity.String()
	f := file{
		WindowSize:     &params.WindowSize,
		Sensitivity:    &params.Sensitivity,
		MinArea:        &params.MinArea,
		MaxArea:        &params.MaxArea,
		Polarity:       &polarity,
		ConfirmCircles: &params.ConfirmCircles,
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	return nil
}
