package scenes

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/ui"
)

const frameSeconds = 1.0 / 60.0

// fakeCanvas counts draw calls without allocating GPU images.
type fakeCanvas struct {
	render.CountingSurface
	disposed int
}

func (f *fakeCanvas) Image() *ebiten.Image { return nil }

func (f *fakeCanvas) Dispose() { f.disposed++ }

// fakePointer replays scripted presses, one batch per Collect.
type fakePointer struct {
	mouse   [][2]int
	touches [][][2]int
}

func (f *fakePointer) AppendJustPressedTouchIDs(dst []ebiten.TouchID) []ebiten.TouchID {
	if len(f.touches) == 0 {
		return dst
	}
	for i := range f.touches[0] {
		dst = append(dst, ebiten.TouchID(i))
	}
	return dst
}

func (f *fakePointer) AppendTouchIDs(dst []ebiten.TouchID) []ebiten.TouchID {
	return f.AppendJustPressedTouchIDs(dst)
}

func (f *fakePointer) TouchPosition(id ebiten.TouchID) (int, int) {
	p := f.touches[0][int(id)]
	if int(id) == len(f.touches[0])-1 {
		defer func() { f.touches = f.touches[1:] }()
	}
	return p[0], p[1]
}

func (f *fakePointer) IsMouseJustPressed() bool { return len(f.mouse) > 0 }

func (f *fakePointer) CursorPosition() (int, int) {
	p := f.mouse[0]
	f.mouse = f.mouse[1:]
	return p[0], p[1]
}

func newTestFinale(t *testing.T, sm *game.SceneManager, pointer *fakePointer) (*FinaleScene, *fakeCanvas) {
	t.Helper()
	s, err := NewFinaleScene(sm, FinaleOptions{Config: config.DefaultFireworksConfig(), Seed: 7})
	if err != nil {
		t.Fatalf("NewFinaleScene failed: %v", err)
	}
	fc := &fakeCanvas{}
	s.newCanvas = func(fireworks.Viewport) drawCanvas { return fc }
	if pointer == nil {
		pointer = &fakePointer{}
	}
	s.pointer = ui.NewPointerCollectorWithSource(pointer)
	return s, fc
}

func runFor(s *FinaleScene, d time.Duration) {
	frames := int(d.Seconds() / frameSeconds)
	for i := 0; i < frames; i++ {
		s.Update(frameSeconds)
	}
}

func TestFinaleSceneWaitsForViewport(t *testing.T) {
	s, fc := newTestFinale(t, game.NewSceneManager(), nil)
	s.Update(frameSeconds)
	if s.Director() != nil {
		t.Fatal("director should not exist before the first viewport")
	}

	s.Resize(fireworks.NewViewport(0, 600, 1, 2))
	if s.Director() != nil {
		t.Error("an empty viewport must not start the show")
	}

	s.Resize(fireworks.NewViewport(800, 600, 1, 2))
	if s.Director() == nil {
		t.Fatal("director should be created on the first viewport")
	}
	if fc.Resizes != 1 {
		t.Errorf("expected canvas sized once, got %d", fc.Resizes)
	}

	s.Resize(fireworks.NewViewport(1024, 768, 1, 2))
	if got := s.Director().Viewport().Width; got != 1024 {
		t.Errorf("director should follow the resize, width %v", got)
	}
	if fc.Resizes != 2 {
		t.Errorf("canvas should be resized through the engine, got %d", fc.Resizes)
	}
}

func TestFinaleSceneRunsFullSequence(t *testing.T) {
	s, fc := newTestFinale(t, game.NewSceneManager(), nil)
	s.Resize(fireworks.NewViewport(800, 600, 1, 2))

	runFor(s, 12*time.Second)

	if len(s.captions) != 3 {
		t.Fatalf("expected 3 captions, got %d", len(s.captions))
	}
	if !s.restartShown {
		t.Error("restart label should be visible")
	}
	if fc.Fades == 0 {
		t.Error("engine frames should fade the canvas")
	}

	// 字幕间隔 2 秒
	if gap := s.captions[1].at - s.captions[0].at; gap != 2*time.Second {
		t.Errorf("expected 2s between captions, got %v", gap)
	}
	for i, line := range s.captions {
		if st := line.styleAt(s.Director().Elapsed()); st.alpha != 1 || st.offsetY != 0 {
			t.Errorf("caption %d should have settled, got %+v", i, st)
		}
	}
}

func TestFinaleSceneDeviceClass(t *testing.T) {
	s, _ := newTestFinale(t, game.NewSceneManager(), nil)
	s.Resize(fireworks.NewViewport(390, 844, 3, 2))
	if s.device != fireworks.DeviceMobile {
		t.Errorf("narrow viewport should be mobile, got %s", s.device)
	}
	if s.layout.captionSize != captionFontMobile {
		t.Errorf("expected mobile caption size, got %v", s.layout.captionSize)
	}
	if n := s.Director().Engine().Tuning().Profile(fireworks.CategoryMain).SparkCount; n != 60 {
		t.Errorf("expected 60 main sparks on mobile, got %d", n)
	}

	forced, err := NewFinaleScene(game.NewSceneManager(), FinaleOptions{ForceMobile: true, Seed: 1})
	if err != nil {
		t.Fatalf("NewFinaleScene failed: %v", err)
	}
	forced.newCanvas = func(fireworks.Viewport) drawCanvas { return &fakeCanvas{} }
	forced.Resize(fireworks.NewViewport(1280, 800, 1, 2))
	if forced.device != fireworks.DeviceMobile {
		t.Error("ForceMobile should override the viewport width")
	}
}

func TestFinaleScenePointerLaunches(t *testing.T) {
	pointer := &fakePointer{}
	s, _ := newTestFinale(t, game.NewSceneManager(), pointer)
	s.Resize(fireworks.NewViewport(800, 600, 2, 2))
	engine := s.Director().Engine()

	// 屏幕坐标是物理像素，需要除以像素比
	pointer.mouse = [][2]int{{600, 400}}
	s.Update(frameSeconds)
	if got := len(engine.Projectiles()); got != 1 {
		t.Fatalf("expected one interactive shell, got %d", got)
	}
	if target := engine.Projectiles()[0].Target; target != (fireworks.Point{X: 300, Y: 200}) {
		t.Errorf("expected logical target (300,200), got %+v", target)
	}

	pointer.touches = [][][2]int{{{100, 100}, {200, 200}, {300, 300}}}
	s.Update(frameSeconds)
	if got := engine.Stats().Launches; got != 4 {
		t.Errorf("expected 3 more launches from touches, got %d total", got)
	}
}

func TestFinaleSceneRestart(t *testing.T) {
	sm := game.NewSceneManager()
	pointer := &fakePointer{}
	first, firstCanvas := newTestFinale(t, sm, pointer)

	var second *FinaleScene
	sm.SetSceneFactory(func() game.Scene {
		second, _ = newTestFinale(t, sm, nil)
		return second
	})
	sm.SwitchTo(first)
	sm.Resize(fireworks.NewViewport(800, 600, 1, 2))

	// 按钮出现之前点击按钮区域只会发射烟花
	runFor(first, time.Second)
	box := first.labelRect
	pointer.mouse = [][2]int{{int(box.X + box.W/2), int(box.Y + box.H/2)}}
	sm.Update(frameSeconds)
	if second != nil {
		t.Fatal("restart must not trigger before the label is shown")
	}

	runFor(first, 12*time.Second)
	if !first.restartShown {
		t.Fatal("restart label should be visible")
	}
	pointer.mouse = [][2]int{{int(box.X + box.W/2), int(box.Y + box.H/2)}}
	sm.Update(frameSeconds)

	if second == nil || sm.GetCurrentScene() != second {
		t.Fatal("clicking the label should switch to a fresh scene")
	}
	if first.Director().State() != fireworks.StateStopped {
		t.Errorf("old director should be stopped, got %s", first.Director().State())
	}
	if first.Director().Scheduler().Pending() != 0 {
		t.Error("old director should have no pending timers")
	}
	if firstCanvas.disposed != 1 {
		t.Errorf("old canvas should be disposed once, got %d", firstCanvas.disposed)
	}
	if second.Director() == nil || second.Director().State() != fireworks.StateIdle {
		t.Error("new scene should start from the last viewport")
	}

	first.Teardown()
	if firstCanvas.disposed != 1 {
		t.Error("Teardown should be idempotent")
	}
}

func TestCaptionLineStyle(t *testing.T) {
	line := captionLine{at: time.Second, reveal: 2 * time.Second}

	start := line.styleAt(time.Second)
	if start.alpha != 0 || start.offsetY != captionSlide {
		t.Errorf("caption should start hidden and lowered, got %+v", start)
	}

	mid := line.styleAt(2 * time.Second)
	if math.Abs(mid.alpha-0.8024) > 0.001 {
		t.Errorf("expected CSS ease at the midpoint, got %v", mid.alpha)
	}

	if end := line.styleAt(10 * time.Second); end.alpha != 1 || end.offsetY != 0 {
		t.Errorf("caption should stay in its final state, got %+v", end)
	}
}

func TestFinaleLayout(t *testing.T) {
	l := newFinaleLayout(fireworks.NewViewport(800, 600, 1, 2), fireworks.DeviceDesktop)
	if l.centerX != 400 {
		t.Errorf("expected centred captions, got %v", l.centerX)
	}
	if l.lineY(1)-l.lineY(0) != l.lineHeight {
		t.Error("lines should be one line height apart")
	}

	box := l.labelRect(3, 60, 18)
	if box.W != 60+2*labelPaddingX || box.X+box.W/2 != 400 {
		t.Errorf("unexpected label box %+v", box)
	}
	if box.Y <= l.lineY(2) {
		t.Error("label should sit below the last caption")
	}
	if !box.contains(400, box.Y+1) || box.contains(0, 0) {
		t.Error("contains is wrong")
	}

	if labelAlpha(0) != 0 || labelAlpha(5*time.Second) != 1 {
		t.Error("label should fade in from 0 to 1")
	}
}

func TestFinaleFactory(t *testing.T) {
	sm := game.NewSceneManager()
	factory := FinaleFactory(sm, FinaleOptions{Seed: 5})

	a, ok := factory().(*FinaleScene)
	if !ok {
		t.Fatal("factory should build a FinaleScene")
	}
	b := factory().(*FinaleScene)
	if a.opts.Seed != 5 || b.opts.Seed != 1005 {
		t.Errorf("expected seeds 5 and 1005, got %d and %d", a.opts.Seed, b.opts.Seed)
	}

	bad := config.DefaultFireworksConfig()
	bad.Palette = []string{"not a colour"}
	if FinaleFactory(sm, FinaleOptions{Config: bad})() != nil {
		t.Error("factory should return nil for an unusable config")
	}
}

func TestFinaleSceneWrapsLongCaptions(t *testing.T) {
	cfg := config.DefaultFireworksConfig()
	cfg.Captions = []string{
		"short",
		"a caption that is far too long to fit on a narrow phone screen in a single line of text",
	}
	s, err := NewFinaleScene(game.NewSceneManager(), FinaleOptions{Config: cfg, Seed: 1})
	if err != nil {
		t.Fatalf("NewFinaleScene failed: %v", err)
	}
	s.newCanvas = func(fireworks.Viewport) drawCanvas { return &fakeCanvas{} }
	s.Resize(fireworks.NewViewport(320, 640, 1, 2))
	if s.captionFace == nil {
		t.Skip("default font unavailable")
	}

	if len(s.wrapped[0]) != 1 {
		t.Errorf("short caption should stay on one line, got %v", s.wrapped[0])
	}
	if len(s.wrapped[1]) < 2 {
		t.Errorf("long caption should wrap, got %v", s.wrapped[1])
	}
	if s.rowOffset[1] != 1 || s.totalRows != 1+len(s.wrapped[1]) {
		t.Errorf("unexpected rows: offsets %v total %d", s.rowOffset, s.totalRows)
	}
	if s.labelRect.Y <= s.layout.lineY(s.totalRows-1) {
		t.Error("restart label should sit below every wrapped line")
	}
}
