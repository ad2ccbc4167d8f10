package fireworks

import "testing"

func TestEngineMainScenario(t *testing.T) {
	surface := &recordingSurface{}
	e := NewEngine(testTuning(t, DeviceDesktop), NewRandom(1), surface)

	var detonations []Detonation
	e.OnDetonate(func(d Detonation) { detonations = append(detonations, d) })

	w, h := 800.0, 600.0
	e.Launch(Point{w / 2, h}, Point{w / 2, h * 0.3}, white, CategoryMain)

	bound := DetonationTicks(h*0.7, 2.5, 1.02)
	frames := 0
	for len(detonations) == 0 {
		e.Frame()
		frames++
		if frames > bound {
			t.Fatalf("main shell did not detonate within %d frames", bound)
		}
	}

	if frames != bound {
		t.Errorf("expected detonation on frame %d, got %d", bound, frames)
	}
	if len(detonations) != 1 {
		t.Fatalf("expected exactly one detonation, got %d", len(detonations))
	}
	d := detonations[0]
	if d.Category != CategoryMain {
		t.Errorf("expected main detonation, got %v", d.Category)
	}
	if d.At != (Point{w / 2, h * 0.3}) {
		t.Errorf("expected burst at the target, got %v", d.At)
	}
	if d.Sparks != 150 {
		t.Errorf("expected 150 desktop main sparks, got %d", d.Sparks)
	}

	stats := e.Stats()
	if stats.ActiveProjectiles != 0 || stats.PooledProjectiles != 1 {
		t.Errorf("detonated shell should be back in the pool: %+v", stats)
	}
	if stats.ActiveParticles != 150 {
		t.Errorf("expected 150 live sparks, got %d", stats.ActiveParticles)
	}
	if len(surface.fades) != frames {
		t.Errorf("expected one fade per frame, got %d fades for %d frames", len(surface.fades), frames)
	}
}

func TestEngineMainBurstOutnumbersAmbient(t *testing.T) {
	for _, device := range []DeviceClass{DeviceDesktop, DeviceMobile} {
		t.Run(device.String(), func(t *testing.T) {
			e := NewEngine(testTuning(t, device), NewRandom(5), nil)
			mainCount := e.Explode(Point{100, 100}, white, CategoryMain)
			ambientCount := e.Explode(Point{100, 100}, white, CategoryAmbient)
			if mainCount <= ambientCount {
				t.Errorf("main burst (%d) should exceed ambient burst (%d)", mainCount, ambientCount)
			}
			if e.Stats().ActiveParticles != mainCount+ambientCount {
				t.Errorf("expected %d live sparks, got %d", mainCount+ambientCount, e.Stats().ActiveParticles)
			}
		})
	}
}

func TestEngineMobileCounts(t *testing.T) {
	e := NewEngine(testTuning(t, DeviceMobile), NewRandom(5), nil)
	if got := e.Explode(Point{}, white, CategoryMain); got != 60 {
		t.Errorf("expected 60 mobile main sparks, got %d", got)
	}
	if got := e.Explode(Point{}, white, CategoryAmbient); got != 20 {
		t.Errorf("expected 20 mobile ambient sparks, got %d", got)
	}
}

func TestEnginePoolsReconcile(t *testing.T) {
	rng := NewRandom(2024)
	e := NewEngine(testTuning(t, DeviceDesktop), rng, nil)
	w, h := 800.0, 600.0

	check := func(frame int) {
		s := e.Stats()
		if s.ActiveProjectiles+s.PooledProjectiles != s.CreatedProjectiles {
			t.Fatalf("frame %d: projectile leak: active %d + pooled %d != created %d",
				frame, s.ActiveProjectiles, s.PooledProjectiles, s.CreatedProjectiles)
		}
		if s.CreatedProjectiles != s.PeakProjectiles {
			t.Fatalf("frame %d: created projectiles %d != peak %d", frame, s.CreatedProjectiles, s.PeakProjectiles)
		}
		if s.ActiveParticles+s.PooledParticles != s.CreatedParticles {
			t.Fatalf("frame %d: particle leak: active %d + pooled %d != created %d",
				frame, s.ActiveParticles, s.PooledParticles, s.CreatedParticles)
		}
		if s.CreatedParticles != s.PeakParticles {
			t.Fatalf("frame %d: created particles %d != peak %d", frame, s.CreatedParticles, s.PeakParticles)
		}
	}

	for frame := 0; frame < 1500; frame++ {
		if frame%40 == 0 {
			target := Point{rng.Between(0.1*w, 0.9*w), rng.Between(0.1*h, 0.7*h)}
			e.Launch(Point{rng.Between(0.1*w, 0.9*w), h}, target, white, CategoryAmbient)
		}
		if frame == 100 {
			e.Launch(Point{w / 2, h}, Point{w / 2, h * 0.3}, white, CategoryMain)
		}
		e.Frame()
		check(frame)
	}

	// 停止发射后所有实体最终回到池中
	for i := 0; i < 400; i++ {
		e.Frame()
	}
	check(-1)
	s := e.Stats()
	if s.ActiveProjectiles != 0 || s.ActiveParticles != 0 {
		t.Errorf("expected everything to burn out, got %+v", s)
	}
	if s.Detonations != s.Launches {
		t.Errorf("every launch should detonate once: %d launches, %d detonations", s.Launches, s.Detonations)
	}
}

func TestEngineZeroDistanceLaunch(t *testing.T) {
	e := NewEngine(testTuning(t, DeviceDesktop), NewRandom(1), nil)
	count := 0
	e.OnDetonate(func(Detonation) { count++ })

	e.Launch(Point{300, 300}, Point{300, 300}, white, CategoryAmbient)
	e.Frame()

	if count != 1 {
		t.Errorf("zero-distance launch should detonate on the first frame, got %d detonations", count)
	}
}

func TestEngineReset(t *testing.T) {
	e := NewEngine(testTuning(t, DeviceDesktop), NewRandom(1), nil)
	e.Launch(Point{0, 600}, Point{400, 100}, white, CategoryAmbient)
	e.Explode(Point{10, 10}, white, CategoryMain)

	e.Reset()
	s := e.Stats()
	if s.ActiveProjectiles != 0 || s.ActiveParticles != 0 {
		t.Errorf("reset should clear active entities: %+v", s)
	}
	if s.PooledProjectiles != 1 || s.PooledParticles != 150 {
		t.Errorf("reset should return entities to pools: %+v", s)
	}

	// 重置后再次使用不应分配新对象
	e.Explode(Point{10, 10}, white, CategoryMain)
	if e.Stats().CreatedParticles != 150 {
		t.Errorf("expected pooled sparks to be reused, created=%d", e.Stats().CreatedParticles)
	}
}

func TestEngineResizeForwardsToSurface(t *testing.T) {
	surface := &recordingSurface{}
	e := NewEngine(testTuning(t, DeviceDesktop), NewRandom(1), surface)
	v := NewViewport(1024, 768, 3, 2)
	e.Resize(v)

	if len(surface.resized) != 1 || surface.resized[0].PixelRatio != 2 {
		t.Errorf("expected one resize with capped ratio 2, got %+v", surface.resized)
	}
}

// removeAt moves the last element into the hole: order changes, the set does not.
func TestRemoveAtKeepsSurvivors(t *testing.T) {
	a, b, c, d := &Particle{}, &Particle{}, &Particle{}, &Particle{}
	s := removeAt([]*Particle{a, b, c, d}, 1)

	want := []*Particle{a, d, c}
	if len(s) != len(want) {
		t.Fatalf("len = %d, want %d", len(s), len(want))
	}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("s[%d] mismatch after swap-remove", i)
		}
	}
	if full := s[:4]; full[3] != nil {
		t.Error("vacated slot should be cleared for the pool")
	}
}
