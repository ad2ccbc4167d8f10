package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render/canvas"
	"github.com/decker502/fireworks/pkg/ui"
	"github.com/decker502/fireworks/pkg/utils"
)

var (
	captionColor = color.NRGBA{R: 255, G: 244, B: 214, A: 255}
	labelColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	labelBorder  = color.NRGBA{R: 255, G: 255, B: 255, A: 150}
)

// drawCanvas 场景使用的绘制目标，canvas.Surface 实现此接口
type drawCanvas interface {
	fireworks.Surface
	fireworks.Resizable
	Image() *ebiten.Image
	Dispose()
}

// FinaleOptions 终章场景的创建参数
type FinaleOptions struct {
	Config *config.FireworksConfig
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
	// ForceMobile 强制使用移动端的火花数量
	ForceMobile bool
}

// FinaleScene 烟花终章场景
//
// 第一次收到视口时创建引擎和导演并开始演出（设备类型取决于视口宽度）。
// 字幕由导演的 OnCaption 回调加入，绘制时按 ease 曲线上滑淡入；
// 重播按钮出现后点击它会通过 SceneManager 重新创建整个场景。
type FinaleScene struct {
	sceneManager *game.SceneManager
	cfg          *config.FireworksConfig
	opts         FinaleOptions
	palette      []color.NRGBA
	show         fireworks.Show

	director *fireworks.Director
	canvas   drawCanvas
	pointer  *ui.PointerCollector
	device   fireworks.DeviceClass
	viewport fireworks.Viewport
	layout   finaleLayout

	captions     []captionLine
	wrapped      [][]string // 每条字幕换行后的文本
	rowOffset    []int      // 每条字幕第一行所在的行号
	totalRows    int
	restartAt    time.Duration
	restartShown bool
	labelRect    rect
	restartLabel string

	faceRatio   float64
	captionFace *text.GoTextFace
	labelFace   *text.GoTextFace

	newCanvas func(v fireworks.Viewport) drawCanvas
	torndown  bool
}

// NewFinaleScene creates the finale scene. The show starts on the first Resize.
func NewFinaleScene(sm *game.SceneManager, opts FinaleOptions) (*FinaleScene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultFireworksConfig()
	}
	palette, err := fireworks.NewPalette(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	return &FinaleScene{
		sceneManager: sm,
		cfg:          cfg,
		opts:         opts,
		palette:      palette,
		show:         fireworks.NewShow(cfg),
		pointer:      ui.NewPointerCollector(),
		restartLabel: cfg.RestartLabel,
		newCanvas: func(v fireworks.Viewport) drawCanvas {
			return canvas.New(v)
		},
	}, nil
}

// Director 返回场景的导演（演出开始前为 nil）
func (s *FinaleScene) Director() *fireworks.Director {
	return s.director
}

// Resize 实现 game.Resizable
func (s *FinaleScene) Resize(v fireworks.Viewport) {
	if s.torndown || v.Empty() {
		return
	}
	s.viewport = v
	if s.director == nil {
		s.start(v)
	} else {
		s.director.OnResize(v)
	}
	s.layout = newFinaleLayout(v, s.device)
	s.updateFaces(v.PixelRatio)
	s.wrapCaptions()
	s.updateLabelRect()
}

// wrapCaptions 按当前宽度给所有字幕换行（窄屏上长字幕会占多行）
func (s *FinaleScene) wrapCaptions() {
	maxWidth := s.viewport.Width * captionMaxWidth * s.faceRatio
	s.wrapped = s.wrapped[:0]
	s.rowOffset = s.rowOffset[:0]
	row := 0
	for _, c := range s.show.Captions {
		lines := []string{c}
		if s.captionFace != nil {
			lines = ui.WrapText(c, s.captionFace, maxWidth)
		}
		s.wrapped = append(s.wrapped, lines)
		s.rowOffset = append(s.rowOffset, row)
		row += len(lines)
	}
	s.totalRows = row
}

func (s *FinaleScene) start(v fireworks.Viewport) {
	s.device = v.Device(s.cfg.Display.MobileBreakpoint)
	if s.opts.ForceMobile || utils.IsMobile() {
		s.device = fireworks.DeviceMobile
	}

	s.canvas = s.newCanvas(v)
	engine := fireworks.NewEngine(fireworks.NewTuning(s.cfg, s.device), fireworks.NewRandom(s.opts.Seed), s.canvas)
	s.director = fireworks.NewDirector(engine, fireworks.NewRandom(s.opts.Seed+1), s.palette, s.show, fireworks.Hooks{
		OnCaption: func(c fireworks.Caption) {
			s.captions = append(s.captions, captionLine{index: c.Index, at: c.At, reveal: c.Reveal})
		},
		OnRestartReady: func() {
			s.restartShown = true
			s.restartAt = s.director.Elapsed()
		},
	})
	log.Printf("[FinaleScene] 设备类型: %s, 种子: %d", s.device, s.opts.Seed)
	s.director.Start(v)
}

// updateFaces 按像素比重建字体（画面按物理像素绘制）
func (s *FinaleScene) updateFaces(ratio float64) {
	if s.captionFace != nil && s.faceRatio == ratio {
		return
	}
	captionFace, err := ui.NewDefaultFace(s.layout.captionSize * ratio)
	if err != nil {
		log.Printf("[FinaleScene] 字体加载失败: %v", err)
		return
	}
	labelFace, err := ui.NewDefaultFace(labelFontSize * ratio)
	if err != nil {
		log.Printf("[FinaleScene] 字体加载失败: %v", err)
		return
	}
	s.captionFace, s.labelFace, s.faceRatio = captionFace, labelFace, ratio
}

func (s *FinaleScene) updateLabelRect() {
	w, h := 0.0, labelFontSize
	if s.labelFace != nil && s.faceRatio > 0 {
		w, h = text.Measure(s.restartLabel, s.labelFace, 0)
		w /= s.faceRatio
		h /= s.faceRatio
	}
	s.labelRect = s.layout.labelRect(s.totalRows, w, h)
}

// Update 处理输入并推进演出
func (s *FinaleScene) Update(deltaTime float64) {
	if s.director == nil || s.torndown {
		return
	}

	presses := s.pointer.Collect()
	if len(presses) > 0 {
		s.handlePresses(presses)
		if s.torndown {
			return
		}
	}

	s.director.Update(time.Duration(deltaTime * float64(time.Second)))
}

// handlePresses 把屏幕坐标转换为逻辑坐标后交给导演
func (s *FinaleScene) handlePresses(presses []ui.PointerPress) {
	ratio := s.viewport.PixelRatio
	points := make([]fireworks.Point, 0, len(presses))
	for _, p := range presses {
		points = append(points, fireworks.Point{X: float64(p.X) / ratio, Y: float64(p.Y) / ratio})
	}

	// 重播按钮优先于发射烟花
	if s.restartShown && len(points) == 1 && s.labelRect.contains(points[0].X, points[0].Y) {
		log.Printf("[FinaleScene] 重播")
		s.sceneManager.Restart()
		return
	}

	if presses[0].Touch {
		s.director.OnMultiTouch(points)
		return
	}
	s.director.OnPointerDown(points[0].X, points[0].Y)
}

// Draw 绘制烟花画布、字幕和重播按钮
func (s *FinaleScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if s.canvas == nil {
		return
	}
	if img := s.canvas.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
	s.drawCaptions(screen)
	s.drawRestartLabel(screen)
}

func (s *FinaleScene) drawCaptions(screen *ebiten.Image) {
	if s.captionFace == nil {
		return
	}
	now := s.director.Elapsed()
	r := s.viewport.PixelRatio
	for _, line := range s.captions {
		st := line.styleAt(now)
		if st.alpha <= 0 || line.index >= len(s.wrapped) {
			continue
		}
		for k, sub := range s.wrapped[line.index] {
			op := &text.DrawOptions{}
			op.PrimaryAlign = text.AlignCenter
			op.GeoM.Translate(s.layout.centerX*r, (s.layout.lineY(s.rowOffset[line.index]+k)+st.offsetY)*r)
			op.ColorScale.ScaleWithColor(captionColor)
			op.ColorScale.ScaleAlpha(float32(st.alpha))
			text.Draw(screen, sub, s.captionFace, op)
		}
	}
}

func (s *FinaleScene) drawRestartLabel(screen *ebiten.Image) {
	if !s.restartShown || s.labelFace == nil {
		return
	}
	a := labelAlpha(s.director.Elapsed() - s.restartAt)
	if a <= 0 {
		return
	}
	r := float32(s.viewport.PixelRatio)
	box := s.labelRect
	border := labelBorder
	border.A = uint8(float64(border.A) * a)
	vector.StrokeRect(screen, float32(box.X)*r, float32(box.Y)*r, float32(box.W)*r, float32(box.H)*r, r, border, true)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate((box.X+box.W/2)*float64(r), (box.Y+box.H/2)*float64(r))
	op.ColorScale.ScaleWithColor(labelColor)
	op.ColorScale.ScaleAlpha(float32(a))
	text.Draw(screen, s.restartLabel, s.labelFace, op)
}

// Teardown 实现 game.Teardown：停止导演并释放画布
func (s *FinaleScene) Teardown() {
	if s.torndown {
		return
	}
	s.torndown = true
	if s.director != nil {
		s.director.Stop()
		s.director.Engine().Reset()
	}
	if s.canvas != nil {
		s.canvas.Dispose()
	}
}
