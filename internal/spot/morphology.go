package spot

// Cleanup kernel sides. Fixed rather than user-tunable so the size filter
// operates on comparable areas across runs: a 5x5 opening removes isolated
// noise pixels and thin bridges between adjacent spots, the 3x3 closing
// fills pinholes the threshold leaves inside large spots.
const (
	openKernelSize  = 5
	closeKernelSize = 3
)

// Erode returns a mask where a pixel is foreground only if every pixel of
// the size x size square neighborhood around it is foreground. Neighborhood
// pixels outside the mask count as background.
func Erode(m *Mask, size int) *Mask {
	out := NewMask(m.Width, m.Height)
	r := size / 2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) {
				continue
			}
			out.Set(x, y, allSet(m, x, y, r))
		}
	}
	return out
}

// Dilate returns a mask where a pixel is foreground if any pixel of the
// size x size square neighborhood around it is foreground.
func Dilate(m *Mask, size int) *Mask {
	out := NewMask(m.Width, m.Height)
	r := size / 2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.Set(x, y, anySet(m, x, y, r))
		}
	}
	return out
}

// Open erodes then dilates, removing foreground features smaller than the
// kernel. Opening is idempotent: applying it twice with the same kernel
// yields the same mask as applying it once.
func Open(m *Mask, size int) *Mask {
	return Dilate(Erode(m, size), size)
}

// Close dilates then erodes, filling background holes smaller than the
// kernel. Idempotent like Open.
func Close(m *Mask, size int) *Mask {
	return Erode(Dilate(m, size), size)
}

// Clean applies the standard segmentation cleanup: an opening to drop
// speckle noise followed by a closing to fill pinholes inside spots.
func Clean(m *Mask) *Mask {
	return Close(Open(m, openKernelSize), closeKernelSize)
}

func allSet(m *Mask, cx, cy, r int) bool {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if !m.At(cx+dx, cy+dy) {
				return false
			}
		}
	}
	return true
}

func anySet(m *Mask, cx, cy, r int) bool {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if m.At(cx+dx, cy+dy) {
				return true
			}
		}
	}
	return false
}
