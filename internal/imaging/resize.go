package imaging

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// CanonicalWidth is the working width every normalized image is scaled to.
// Spot areas and the size-filter bounds are expressed in pixels at this
// resolution, so it must stay fixed for parameter sets to be comparable
// across scans.
const CanonicalWidth = 674

// ResizeToWidth scales a grayscale image to the given width, preserving the
// aspect ratio. Catmull-Rom resampling keeps the result deterministic and
// free of the aliasing a nearest-neighbor scale would introduce into the
// local-mean threshold.
func ResizeToWidth(gray *image.Gray, width int) *image.Gray {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w == width || w == 0 || h == 0 {
		return gray
	}

	height := (h*width + w/2) / w
	if height < 1 {
		height = 1
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(out, out.Rect, gray, gray.Rect, xdraw.Src, nil)
	return out
}
