package fireworks

import (
	"image/color"
	"math"
)

// ShellParams are the per-launch values sampled from a category profile.
type ShellParams struct {
	Speed        float64
	Acceleration float64
	LineWidth    float64
	TrailLength  int
}

// Projectile is a rising shell travelling in a straight line towards its
// target. It detonates once the distance covered reaches the distance to the
// target.
type Projectile struct {
	X, Y   float64
	Origin Point
	Target Point

	Angle        float64
	Speed        float64
	Acceleration float64
	LineWidth    float64

	DistanceToTarget float64
	DistanceTraveled float64

	Color    color.NRGBA
	Category Category

	trail  Trail
	pooled bool
}

func (p *Projectile) isPooled() bool   { return p.pooled }
func (p *Projectile) setPooled(v bool) { p.pooled = v }
func (p *Projectile) Trail() *Trail    { return &p.trail }
func (p *Projectile) Position() Point  { return Point{p.X, p.Y} }

// Init (re)initialises p in place for a new flight.
func (p *Projectile) Init(origin, target Point, clr color.NRGBA, cat Category, sp ShellParams) {
	p.X, p.Y = origin.X, origin.Y
	p.Origin = origin
	p.Target = target
	p.DistanceToTarget = math.Hypot(target.X-origin.X, target.Y-origin.Y)
	p.DistanceTraveled = 0
	p.Angle = math.Atan2(target.Y-origin.Y, target.X-origin.X)
	p.Speed = sp.Speed
	p.Acceleration = sp.Acceleration
	p.LineWidth = sp.LineWidth
	p.Color = clr
	p.Category = cat
	p.trail.Reset(sp.TrailLength, origin)
}

// Tick advances the shell one frame and reports whether it detonated.
//
// The distance check uses the tentative next position and the position is
// only committed when the shell has not yet arrived, so a detonating shell
// stays at its last in-flight position.
func (p *Projectile) Tick() bool {
	p.trail.Push(Point{p.X, p.Y})

	// 起点与目标重合时直接引爆
	if p.DistanceToTarget <= 0 {
		return true
	}

	p.Speed *= p.Acceleration
	vx := math.Cos(p.Angle) * p.Speed
	vy := math.Sin(p.Angle) * p.Speed

	p.DistanceTraveled = math.Hypot(p.Origin.X-p.X-vx, p.Origin.Y-p.Y-vy)
	if p.DistanceTraveled >= p.DistanceToTarget {
		return true
	}

	p.X += vx
	p.Y += vy
	return false
}

// Draw strokes the motion streak from the oldest trail point to the head.
func (p *Projectile) Draw(s Surface) {
	tail := p.trail.Oldest()
	s.StrokeLine(tail.X, tail.Y, p.X, p.Y, p.LineWidth, p.Color)
}

// DetonationTicks returns the number of ticks a shell needs to cover distance
// when starting at speed and multiplying it by accel every tick.
//
// After k ticks the shell has covered speed*(a + a² + ... + a^k), so k is the
// smallest integer with speed*a*(a^k-1)/(a-1) >= distance.
func DetonationTicks(distance, speed, accel float64) int {
	if distance <= 0 {
		return 1
	}
	if speed <= 0 {
		return math.MaxInt
	}
	if accel == 1 {
		return int(math.Ceil(distance / speed))
	}
	k := math.Log(1+distance*(accel-1)/(speed*accel)) / math.Log(accel)
	return int(math.Ceil(k))
}
