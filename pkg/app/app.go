// Package app 提供烟花终章应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用内嵌的 data/fireworks.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
	// ForceMobile 强制使用移动端的火花数量
	ForceMobile bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	fireworks                *config.FireworksConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用内嵌配置前需要先调用 embedded.Init()；未初始化时回退到内置默认值。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fwConfig, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 创建场景管理器，重播时通过工厂重新创建终章场景
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.FinaleFactory(sceneManager, scenes.FinaleOptions{
		Config:      fwConfig,
		Seed:        cfg.Seed,
		ForceMobile: cfg.ForceMobile,
	}))
	if !sceneManager.Restart() {
		return nil, fmt.Errorf("终章场景创建失败")
	}
	log.Printf("[App] Finale scene ready (%d captions)", len(fwConfig.Captions))

	return &App{
		sceneManager: sceneManager,
		fireworks:    fwConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadConfig 按优先级加载配置：外部文件 > 内嵌文件 > 内置默认值
func LoadConfig(path string) (*config.FireworksConfig, error) {
	if path != "" {
		c, err := config.LoadFireworksConfig(path)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载配置文件: %s", path)
		return c, nil
	}
	if embedded.IsInitialized() {
		c, err := config.LoadEmbeddedFireworksConfig()
		if err != nil {
			return nil, fmt.Errorf("内嵌配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载内嵌配置: %s", config.DefaultConfigPath)
		return c, nil
	}
	log.Printf("[Config] 使用内置默认配置")
	return config.DefaultFireworksConfig(), nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.fireworks.Display.WindowWidth, a.fireworks.Display.WindowHeight
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// LayoutF 返回以物理像素计的屏幕尺寸（逻辑尺寸 * 像素比）
//
// 窗口尺寸变化和像素比都在这里转发给场景，场景内部只使用逻辑坐标。
func (a *App) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	v := a.viewportFor(outsideWidth, outsideHeight, deviceScaleFactor())
	a.sceneManager.Resize(v)
	w, h := v.BackingSize()
	return float64(w), float64(h)
}

// Layout 实现 ebiten.Game；实际由 LayoutF 生效
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(math.Ceil(w)), int(math.Ceil(h))
}

func (a *App) viewportFor(w, h, scale float64) fireworks.Viewport {
	return fireworks.NewViewport(w, h, scale, a.fireworks.Display.PixelRatioCap)
}

func deviceScaleFactor() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Config 返回生效的烟花配置
func (a *App) Config() *config.FireworksConfig {
	return a.fireworks
}

// Close 停止演出并释放资源
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
