package fireworks

import "math"

// Viewport describes the logical drawing area and the backing pixel ratio.
type Viewport struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// NewViewport caps the device pixel ratio at maxRatio. Ratios below 1 or
// unknown ratios are treated as 1.
func NewViewport(width, height, deviceRatio, maxRatio float64) Viewport {
	ratio := deviceRatio
	if ratio < 1 || math.IsNaN(ratio) {
		ratio = 1
	}
	if maxRatio >= 1 && ratio > maxRatio {
		ratio = maxRatio
	}
	return Viewport{
		Width:      math.Max(width, 0),
		Height:     math.Max(height, 0),
		PixelRatio: ratio,
	}
}

// BackingSize returns the physical pixel size of the drawing buffer.
func (v Viewport) BackingSize() (int, int) {
	return int(math.Ceil(v.Width * v.PixelRatio)), int(math.Ceil(v.Height * v.PixelRatio))
}

// Empty reports whether there is nothing to draw on.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Device classifies the viewport. Narrow viewports are mobile.
func (v Viewport) Device(breakpoint float64) DeviceClass {
	if v.Width < breakpoint {
		return DeviceMobile
	}
	return DeviceDesktop
}
