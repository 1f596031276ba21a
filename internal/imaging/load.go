// Package imaging provides image loading and normalization for spot analysis.
//
// Every assay image, whatever its original format or bit depth, is reduced to
// a single-channel *image.Gray stretched to the full [0,255] range and scaled
// to a canonical working width. Downstream stages treat the normalized image
// as read-only and allocate fresh buffers for their outputs.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned when input data cannot be decoded as a
// grayscale-convertible raster image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// MaxInputSize is the largest accepted width or height in pixels.
// Larger scans should be downsampled before analysis.
const MaxInputSize = 1000

// Load reads and decodes an assay image from the specified path.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Decode decodes an image from a reader, accepting any registered format
// (TIFF, PNG, JPEG).
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxInputSize || bounds.Dy() > MaxInputSize {
		return nil, fmt.Errorf("image %dx%d exceeds the allowed size of %dx%d",
			bounds.Dx(), bounds.Dy(), MaxInputSize, MaxInputSize)
	}
	return img, nil
}

// Grayscale converts any decoded image to a single-channel grayscale image
// using the standard luminance weights.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray.Pix[y*gray.Stride+x] = uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 24)
		}
	}
	return gray
}

// Stretch rescales intensities so the darkest pixel maps to 0 and the
// brightest to 255. A uniform image is returned as an unmodified copy,
// since it carries no contrast to stretch.
func Stretch(gray *image.Gray) *image.Gray {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	minV, maxV := uint8(255), uint8(0)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, v := range row {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}

	if maxV == minV {
		copyPix(out, gray)
		return out
	}

	span := int(maxV) - int(minV)
	for y := 0; y < h; y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range src {
			dst[x] = uint8((int(v) - int(minV)) * 255 / span)
		}
	}
	return out
}

// Normalize converts a decoded image to the canonical single-channel
// representation: grayscale, contrast-stretched, resized to CanonicalWidth.
func Normalize(img image.Image) *image.Gray {
	return ResizeToWidth(Stretch(Grayscale(img)), CanonicalWidth)
}

// LoadNormalized loads an image and applies the full normalization.
func LoadNormalized(path string) (*image.Gray, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Normalize(img), nil
}

func copyPix(dst, src *image.Gray) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[y*src.Stride:y*src.Stride+w])
	}
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FileFilter returns a file filter string for use in file dialogs.
func FileFilter() string {
	return "Image Files (*.tiff, *.tif, *.png, *.jpg, *.jpeg)"
}
