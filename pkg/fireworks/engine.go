package fireworks

import (
	"image/color"
	"log"
)

// Detonation describes a shell that reached its target.
type Detonation struct {
	At       Point
	Color    color.NRGBA
	Category Category
	Sparks   int
}

// DetonationHandler is notified after a detonation's sparks were spawned.
type DetonationHandler func(d Detonation)

// Stats is a snapshot of the engine's entity bookkeeping.
type Stats struct {
	Frames int

	ActiveProjectiles  int
	PooledProjectiles  int
	CreatedProjectiles int
	PeakProjectiles    int

	ActiveParticles  int
	PooledParticles  int
	CreatedParticles int
	PeakParticles    int

	Launches    int
	Detonations int
}

// Engine owns the shells and sparks of one finale: their pools, the active
// collections and the surface they are drawn on. One Engine is created per
// finale and discarded or Reset on teardown.
type Engine struct {
	tuning  Tuning
	rng     *Random
	surface Surface

	projectilePool *Pool[*Projectile]
	particlePool   *Pool[*Particle]

	projectiles []*Projectile
	particles   []*Particle

	handlers []DetonationHandler
	stats    Stats
}

// NewEngine creates an engine drawing on surface. A nil surface discards
// all drawing.
func NewEngine(tuning Tuning, rng *Random, surface Surface) *Engine {
	if surface == nil {
		surface = discardSurface{}
	}
	if rng == nil {
		rng = NewRandom(1)
	}
	return &Engine{
		tuning:         tuning,
		rng:            rng,
		surface:        surface,
		projectilePool: NewPool(func() *Projectile { return &Projectile{} }),
		particlePool:   NewPool(func() *Particle { return &Particle{} }),
	}
}

// Tuning returns the engine's physics and category parameters.
func (e *Engine) Tuning() *Tuning {
	return &e.tuning
}

// SetTuning replaces the tuning used by future launches and bursts.
func (e *Engine) SetTuning(t Tuning) {
	e.tuning = t
}

// Surface returns the current drawing target.
func (e *Engine) Surface() Surface {
	return e.surface
}

// Resize forwards a viewport change to the surface if it cares.
func (e *Engine) Resize(v Viewport) {
	if r, ok := e.surface.(Resizable); ok {
		r.Resize(v)
	}
}

// OnDetonate registers a handler called for every detonation.
func (e *Engine) OnDetonate(h DetonationHandler) {
	e.handlers = append(e.handlers, h)
}

// Launch puts a new shell of category cat in flight from origin to target.
func (e *Engine) Launch(origin, target Point, clr color.NRGBA, cat Category) *Projectile {
	prof := e.tuning.Profile(cat)
	p := e.projectilePool.Acquire()
	p.Init(origin, target, clr, cat, ShellParams{
		Speed:        e.rng.In(prof.ShellSpeed),
		Acceleration: e.tuning.Acceleration,
		LineWidth:    prof.LineWidth,
		TrailLength:  prof.ShellTrail,
	})
	e.projectiles = append(e.projectiles, p)
	e.stats.Launches++
	if n := len(e.projectiles); n > e.stats.PeakProjectiles {
		e.stats.PeakProjectiles = n
	}
	return p
}

// Explode spawns a burst of sparks at the given point and returns how many
// were created.
func (e *Engine) Explode(at Point, clr color.NRGBA, cat Category) int {
	prof := e.tuning.Profile(cat)
	for i := 0; i < prof.SparkCount; i++ {
		sp := e.particlePool.Acquire()
		sp.Init(at, clr, cat, e.rng.Angle(), SparkParams{
			Speed:       e.rng.In(prof.SparkSpeed),
			Decay:       e.rng.In(prof.Decay),
			Friction:    e.tuning.Friction,
			Gravity:     e.tuning.Gravity,
			TrailLength: prof.SparkTrail,
		})
		e.particles = append(e.particles, sp)
	}
	if n := len(e.particles); n > e.stats.PeakParticles {
		e.stats.PeakParticles = n
	}
	return prof.SparkCount
}

// Frame runs one animation frame: fade the surface, then draw and advance
// every shell and every spark. Both collections are walked back to front so
// finished entities can be removed in place.
func (e *Engine) Frame() {
	e.stats.Frames++
	e.surface.Fade(e.tuning.FadeAlpha)

	for i := len(e.projectiles) - 1; i >= 0; i-- {
		p := e.projectiles[i]
		p.Draw(e.surface)
		if p.Tick() {
			e.detonate(p)
			e.projectiles = removeAt(e.projectiles, i)
			e.projectilePool.Release(p)
		}
	}

	for i := len(e.particles) - 1; i >= 0; i-- {
		sp := e.particles[i]
		sp.Draw(e.surface)
		if sp.Tick() {
			e.particles = removeAt(e.particles, i)
			e.particlePool.Release(sp)
		}
	}
}

func (e *Engine) detonate(p *Projectile) {
	d := Detonation{At: p.Target, Color: p.Color, Category: p.Category}
	d.Sparks = e.Explode(d.At, d.Color, d.Category)
	e.stats.Detonations++
	if p.Category == CategoryMain {
		log.Printf("[Engine] main shell detonated at (%.1f, %.1f), %d sparks", d.At.X, d.At.Y, d.Sparks)
	}
	for _, h := range e.handlers {
		h(d)
	}
}

// Projectiles returns the shells in flight. The slice must not be modified.
func (e *Engine) Projectiles() []*Projectile {
	return e.projectiles
}

// Particles returns the live sparks. The slice must not be modified.
func (e *Engine) Particles() []*Particle {
	return e.particles
}

// Stats returns a snapshot of the entity bookkeeping.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.ActiveProjectiles = len(e.projectiles)
	s.PooledProjectiles = e.projectilePool.Len()
	s.CreatedProjectiles = e.projectilePool.Created()
	s.ActiveParticles = len(e.particles)
	s.PooledParticles = e.particlePool.Len()
	s.CreatedParticles = e.particlePool.Created()
	return s
}

// Reset returns every active entity to its pool without drawing.
func (e *Engine) Reset() {
	for i, p := range e.projectiles {
		e.projectilePool.Release(p)
		e.projectiles[i] = nil
	}
	e.projectiles = e.projectiles[:0]
	for i, sp := range e.particles {
		e.particlePool.Release(sp)
		e.particles[i] = nil
	}
	e.particles = e.particles[:0]
}

// removeAt swaps the last element into i. Safe while iterating backwards
// because the moved element has already been visited.
func removeAt[T any](s []T, i int) []T {
	last := len(s) - 1
	s[i] = s[last]
	var zero T
	s[last] = zero
	return s[:last]
}
