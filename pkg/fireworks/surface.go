package fireworks

import "image/color"

// Surface is the drawing target of the engine. Coordinates and widths are in
// logical pixels; implementations apply their own pixel ratio.
type Surface interface {
	// Fade paints black at the given alpha over the whole surface.
	Fade(alpha float64)
	// StrokeLine draws a single straight segment.
	StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA)
}

// Resizable surfaces are notified when the viewport changes.
type Resizable interface {
	Resize(v Viewport)
}

type discardSurface struct{}

func (discardSurface) Fade(float64)                                    {}
func (discardSurface) StrokeLine(_, _, _, _, _ float64, _ color.NRGBA) {}

// withAlpha scales the colour's alpha by a in [0,1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
