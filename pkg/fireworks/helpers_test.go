package fireworks

import (
	"image/color"
	"testing"

	"github.com/decker502/fireworks/pkg/config"
)

type strokeCall struct {
	x0, y0, x1, y1, width float64
	clr                   color.NRGBA
}

// recordingSurface remembers every draw call.
type recordingSurface struct {
	fades   []float64
	strokes []strokeCall
	resized []Viewport
}

func (r *recordingSurface) Fade(alpha float64) { r.fades = append(r.fades, alpha) }

func (r *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	r.strokes = append(r.strokes, strokeCall{x0, y0, x1, y1, width, clr})
}

func (r *recordingSurface) Resize(v Viewport) { r.resized = append(r.resized, v) }

func (r *recordingSurface) reset() {
	r.fades = r.fades[:0]
	r.strokes = r.strokes[:0]
}

func testTuning(t *testing.T, device DeviceClass) Tuning {
	t.Helper()
	return NewTuning(config.DefaultFireworksConfig(), device)
}

func testPalette(t *testing.T) []color.NRGBA {
	t.Helper()
	palette, err := NewPalette(config.DefaultFireworksConfig())
	if err != nil {
		t.Fatalf("failed to build palette: %v", err)
	}
	return palette
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
