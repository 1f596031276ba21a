// Package label reads plate and well labels printed on assay scans.
package label

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"elispot-analyzer/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
)

// LabelChars is the character set for plate label OCR. Labels are plate
// IDs and well coordinates, so lowercase is excluded to reduce confusion
// (0/O, 1/I, etc.)
const LabelChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-_/"

// Engine provides OCR functionality using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Disable dictionary-based word correction - plate IDs aren't English
	// words and Tesseract would otherwise "correct" them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadRegion performs OCR on a region of a grayscale scan, typically the
// label strip along an edge of the plate image.
func (e *Engine) ReadRegion(gray *image.Gray, bounds geometry.RectInt) (string, error) {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	x := max(0, bounds.X)
	y := max(0, bounds.Y)
	rw := min(bounds.Width, w-x)
	rh := min(bounds.Height, h-y)
	if rw <= 0 || rh <= 0 {
		return "", fmt.Errorf("invalid region bounds")
	}

	region := gray.SubImage(image.Rect(x, y, x+rw, y+rh))

	var buf bytes.Buffer
	if err := png.Encode(&buf, region); err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}

	// PSM 7 = single text line, which is what a label strip is.
	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetWhitelist(LabelChars); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
