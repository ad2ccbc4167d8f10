package fireworks

import (
	"fmt"
	"image/color"
	"log"
	"time"
)

// State is a phase of the finale.
type State int

const (
	// StateIdle: created, main shell not yet launched.
	StateIdle State = iota
	// StateMainAscending: the main shell is in flight.
	StateMainAscending
	// StateMainExploded: the main burst is playing, captions pending.
	StateMainExploded
	// StateCaptionsAndAmbient: captions are being revealed and ambient
	// bursts fire periodically. Terminal until Stop.
	StateCaptionsAndAmbient
	// StateStopped: all timers cancelled, input ignored.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMainAscending:
		return "main-ascending"
	case StateMainExploded:
		return "main-exploded"
	case StateCaptionsAndAmbient:
		return "captions-and-ambient"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Caption is emitted when a caption line becomes visible.
type Caption struct {
	Index  int
	Text   string
	At     time.Duration
	Reveal time.Duration
}

// Hooks are the presentation-side callbacks of a Director. Any may be nil.
type Hooks struct {
	OnCaption      func(c Caption)
	OnRestartReady func()
	OnStateChange  func(from, to State)
}

// Director sequences the finale: it launches the main shell, waits for its
// detonation, schedules the captions and the restart affordance, runs the
// ambient burst generator and turns pointer input into interactive shells.
type Director struct {
	engine  *Engine
	sched   *Scheduler
	rng     *Random
	palette []color.NRGBA
	show    Show
	hooks   Hooks

	viewport Viewport
	state    State
	started  bool

	captionsShown  int
	restartReady   bool
	captionStarted time.Duration
}

// NewDirector wires a director to engine. The palette must not be empty.
func NewDirector(engine *Engine, rng *Random, palette []color.NRGBA, show Show, hooks Hooks) *Director {
	if len(palette) == 0 {
		palette = []color.NRGBA{{R: 255, G: 255, B: 255, A: 255}}
	}
	if rng == nil {
		rng = engine.rng
	}
	d := &Director{
		engine:  engine,
		sched:   NewScheduler(),
		rng:     rng,
		palette: palette,
		show:    show,
		hooks:   hooks,
	}
	engine.OnDetonate(d.onDetonation)
	return d
}

// Engine returns the engine driven by the director.
func (d *Director) Engine() *Engine { return d.engine }

// Scheduler exposes the director's clock.
func (d *Director) Scheduler() *Scheduler { return d.sched }

// State returns the current phase.
func (d *Director) State() State { return d.state }

// Elapsed returns the time since Start.
func (d *Director) Elapsed() time.Duration { return d.sched.Now() }

// Viewport returns the last known viewport.
func (d *Director) Viewport() Viewport { return d.viewport }

// CaptionsShown returns how many caption lines have been revealed.
func (d *Director) CaptionsShown() int { return d.captionsShown }

// RestartReady reports whether the restart affordance has been shown.
func (d *Director) RestartReady() bool { return d.restartReady }

// CaptionPhaseStart returns the clock value at which captions began, and
// whether they have begun.
func (d *Director) CaptionPhaseStart() (time.Duration, bool) {
	return d.captionStarted, d.state == StateCaptionsAndAmbient
}

// Start begins the finale on the given viewport. Calling it again is a no-op.
func (d *Director) Start(v Viewport) bool {
	if d.started || d.state == StateStopped {
		return false
	}
	d.started = true
	d.viewport = v
	d.engine.Resize(v)
	log.Printf("[Director] finale started on %.0fx%.0f (ratio %.2f)", v.Width, v.Height, v.PixelRatio)
	d.sched.After(d.show.MainLaunchDelay, d.launchMain)
	return true
}

// Update advances the show clock by dt and then runs one engine frame.
func (d *Director) Update(dt time.Duration) {
	if d.state != StateStopped {
		d.sched.Advance(dt)
	}
	d.engine.Frame()
}

// OnResize updates the viewport used for launch geometry and forwards it to
// the surface. Entities in flight keep their coordinates.
func (d *Director) OnResize(v Viewport) {
	if d.state == StateStopped {
		return
	}
	d.viewport = v
	d.engine.Resize(v)
}

// OnPointerDown launches an interactive shell towards (x, y).
func (d *Director) OnPointerDown(x, y float64) {
	if !d.acceptsInput() {
		return
	}
	d.launchInteractive(Point{x, y})
}

// OnMultiTouch launches one interactive shell per active touch point.
func (d *Director) OnMultiTouch(points []Point) {
	if !d.acceptsInput() {
		return
	}
	for _, p := range points {
		d.launchInteractive(p)
	}
}

// Stop cancels every pending timer and ignores further input. Shells and
// sparks already in the engine keep animating if Update is still called.
func (d *Director) Stop() {
	if d.state == StateStopped {
		return
	}
	d.sched.CancelAll()
	d.setState(StateStopped)
}

func (d *Director) acceptsInput() bool {
	return d.started && d.state != StateStopped && !d.viewport.Empty()
}

func (d *Director) setState(s State) {
	if s == d.state {
		return
	}
	from := d.state
	d.state = s
	log.Printf("[Director] %s -> %s at %v", from, s, d.sched.Now())
	if d.hooks.OnStateChange != nil {
		d.hooks.OnStateChange(from, s)
	}
}

func (d *Director) launchMain() {
	w, h := d.viewport.Width, d.viewport.Height
	clr := d.palette[d.show.MainColor%len(d.palette)]
	d.engine.Launch(Point{w / 2, h}, Point{w / 2, h * d.show.MainTargetY}, clr, CategoryMain)
	d.setState(StateMainAscending)
}

func (d *Director) onDetonation(det Detonation) {
	if det.Category != CategoryMain || d.state != StateMainAscending {
		return
	}
	d.setState(StateMainExploded)
	d.sched.After(d.show.CaptionDelay, d.beginCaptions)
}

func (d *Director) beginCaptions() {
	d.captionStarted = d.sched.Now()
	d.setState(StateCaptionsAndAmbient)

	for i, text := range d.show.Captions {
		c := Caption{Index: i, Text: text, Reveal: d.show.CaptionReveal}
		d.sched.After(time.Duration(i)*d.show.CaptionInterval, func() {
			c.At = d.sched.Now()
			d.captionsShown++
			if d.hooks.OnCaption != nil {
				d.hooks.OnCaption(c)
			}
		})
	}

	restartAt := time.Duration(len(d.show.Captions))*d.show.CaptionInterval + d.show.RestartDelay
	d.sched.After(restartAt, func() {
		d.restartReady = true
		log.Printf("[Director] restart ready at %v", d.sched.Now())
		if d.hooks.OnRestartReady != nil {
			d.hooks.OnRestartReady()
		}
	})

	d.sched.Every(d.show.AmbientInterval, d.ambientTick)
}

func (d *Director) ambientTick() {
	if !d.rng.Chance(d.show.AmbientProbability) {
		return
	}
	d.launchAmbient()
}

func (d *Director) launchAmbient() {
	w, h := d.viewport.Width, d.viewport.Height
	band := d.show.AmbientBand.Scale(w)
	startX := d.rng.In(band)
	targetX := d.rng.In(band)

	// 中央区域的目标点限制在画面上部
	yRange := d.show.EdgeTargetY
	if d.show.CenterColumn.Scale(w).Contains(targetX) {
		yRange = d.show.CenterTargetY
	}
	targetY := d.rng.In(yRange.Scale(h))

	clr := d.palette[d.rng.Index(len(d.palette))]
	d.engine.Launch(Point{startX, h}, Point{targetX, targetY}, clr, CategoryAmbient)
}

func (d *Director) launchInteractive(target Point) {
	w, h := d.viewport.Width, d.viewport.Height
	startX := d.rng.In(d.show.InteractiveBand.Scale(w))
	clr := d.palette[d.rng.Index(len(d.palette))]
	d.engine.Launch(Point{startX, h}, target, clr, CategoryAmbient)
}
