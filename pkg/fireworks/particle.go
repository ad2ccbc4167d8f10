package fireworks

import (
	"image/color"
	"math"
)

// SparkParams are the per-spark values sampled from a category profile.
type SparkParams struct {
	Speed       float64
	Decay       float64
	Friction    float64
	Gravity     float64
	TrailLength int
}

// Particle is a single spark of a burst. It slows down through friction,
// sinks under gravity and fades until its alpha drops to its decay rate.
type Particle struct {
	X, Y     float64
	Angle    float64
	Speed    float64
	Friction float64
	Gravity  float64
	Alpha    float64
	Decay    float64

	Color    color.NRGBA
	Category Category

	trail  Trail
	pooled bool
}

func (p *Particle) isPooled() bool   { return p.pooled }
func (p *Particle) setPooled(v bool) { p.pooled = v }
func (p *Particle) Trail() *Trail    { return &p.trail }

// Init (re)initialises p in place at the burst point.
func (p *Particle) Init(at Point, clr color.NRGBA, cat Category, angle float64, sp SparkParams) {
	p.X, p.Y = at.X, at.Y
	p.Angle = angle
	p.Speed = sp.Speed
	p.Friction = sp.Friction
	p.Gravity = sp.Gravity
	p.Alpha = 1
	p.Decay = sp.Decay
	p.Color = clr
	p.Category = cat
	p.trail.Reset(sp.TrailLength, at)
}

// Tick advances the spark one frame and reports whether it burnt out.
func (p *Particle) Tick() bool {
	p.trail.Push(Point{p.X, p.Y})
	p.Speed *= p.Friction
	p.X += math.Cos(p.Angle) * p.Speed
	p.Y += math.Sin(p.Angle)*p.Speed + p.Gravity
	p.Alpha -= p.Decay
	return p.Alpha <= p.Decay
}

// Draw strokes the spark's streak in its colour at the current alpha.
func (p *Particle) Draw(s Surface) {
	tail := p.trail.Oldest()
	s.StrokeLine(tail.X, tail.Y, p.X, p.Y, 1, withAlpha(p.Color, p.Alpha))
}
