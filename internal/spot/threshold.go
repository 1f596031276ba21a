package spot

import "image"

// AdaptiveThreshold segments a grayscale image into a foreground mask using
// a local mean threshold. For each pixel the mean intensity of the
// WindowSize x WindowSize neighborhood is computed over a replicate-border
// extension of the image, the sensitivity offset is applied, and the pixel
// is classified according to the polarity:
//
//	dark:   foreground if v < mean - sensitivity
//	bright: foreground if v > mean + sensitivity
//
// The input image is not modified. The caller is expected to have validated
// the parameters; an even or undersized window here would skew the mean.
func AdaptiveThreshold(gray *image.Gray, params Params) *Mask {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	mask := NewMask(w, h)
	if w == 0 || h == 0 {
		return mask
	}

	pad := params.WindowSize / 2
	ew, eh := w+2*pad, h+2*pad

	// Summed-area table over the border-extended image. integral[y][x]
	// holds the sum of all extended pixels above and left of (x, y), so a
	// window sum is four lookups regardless of window size.
	integral := make([]uint64, (ew+1)*(eh+1))
	stride := ew + 1
	for y := 0; y < eh; y++ {
		var rowSum uint64
		for x := 0; x < ew; x++ {
			rowSum += uint64(extendedAt(gray, x-pad, y-pad))
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	window := float64(params.WindowSize * params.WindowSize)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Window corners in extended coordinates; pixel (x, y)
			// maps to (x+pad, y+pad), so the window starts at (x, y).
			x0, y0 := x, y
			x1, y1 := x+params.WindowSize, y+params.WindowSize
			sum := integral[y1*stride+x1] - integral[y0*stride+x1] -
				integral[y1*stride+x0] + integral[y0*stride+x0]
			mean := float64(sum) / window

			v := float64(gray.Pix[y*gray.Stride+x])
			switch params.Polarity {
			case PolarityBright:
				mask.Set(x, y, v > mean+params.Sensitivity)
			default:
				mask.Set(x, y, v < mean-params.Sensitivity)
			}
		}
	}
	return mask
}

// extendedAt samples the image with replicate-border semantics: coordinates
// outside the image clamp to the nearest edge pixel.
func extendedAt(gray *image.Gray, x, y int) uint8 {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if x < 0 {
		x = 0
	} else if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= h {
		y = h - 1
	}
	return gray.Pix[y*gray.Stride+x]
}
