package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/decker502/fireworks/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内嵌默认配置的路径
const DefaultConfigPath = "data/fireworks.yaml"

// ErrInvalidConfig 所有校验失败都会包装此错误，调用方可用 errors.Is 判断
var ErrInvalidConfig = errors.New("invalid fireworks config")

// FireworksConfig 烟花终章配置
//
// 包含物理参数、主/氛围两类烟花的参数、调色板、演出时间表、字幕和显示参数。
//
// 配置文件位置: data/fireworks.yaml
type FireworksConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Categories CategoriesConfig `yaml:"categories"`

	// Palette hsl(...) 颜色字符串列表
	Palette []string `yaml:"palette"`

	Show ShowConfig `yaml:"show"`

	// Captions 终章字幕，按顺序逐行显示
	Captions []string `yaml:"captions"`

	// RestartLabel 重播按钮文字
	RestartLabel string `yaml:"restartLabel"`

	Display DisplayConfig `yaml:"display"`
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PhysicsConfig 全局物理参数
type PhysicsConfig struct {
	// Acceleration 升空速度每帧乘数，必须 >= 1
	Acceleration float64 `yaml:"acceleration"`
	// Friction 火花速度每帧乘数，(0,1)
	Friction float64 `yaml:"friction"`
	// Gravity 火花每帧额外下坠量
	Gravity float64 `yaml:"gravity"`
	// FadeAlpha 每帧覆盖黑色的透明度，(0,1]
	FadeAlpha float64 `yaml:"fadeAlpha"`
}

// SparkCount 按设备类型区分的火花数量
type SparkCount struct {
	Desktop int `yaml:"desktop"`
	Mobile  int `yaml:"mobile"`
}

// CategoryConfig 单一烟花类别的参数
type CategoryConfig struct {
	ShellSpeed Range      `yaml:"shellSpeed"`
	LineWidth  float64    `yaml:"lineWidth"`
	ShellTrail int        `yaml:"shellTrail"`
	SparkTrail int        `yaml:"sparkTrail"`
	SparkSpeed Range      `yaml:"sparkSpeed"`
	Decay      Range      `yaml:"decay"`
	Sparks     SparkCount `yaml:"sparks"`
}

// CategoriesConfig 主烟花与氛围烟花
type CategoriesConfig struct {
	Main    CategoryConfig `yaml:"main"`
	Ambient CategoryConfig `yaml:"ambient"`
}

// ShowConfig 演出时间表
//
// 所有 *Ms 字段单位为毫秒；比例字段相对于视口宽或高。
type ShowConfig struct {
	MainLaunchDelayMs  int     `yaml:"mainLaunchDelayMs"`
	MainTargetY        float64 `yaml:"mainTargetY"`
	MainColor          int     `yaml:"mainColor"`
	CaptionDelayMs     int     `yaml:"captionDelayMs"`
	CaptionIntervalMs  int     `yaml:"captionIntervalMs"`
	CaptionRevealMs    int     `yaml:"captionRevealMs"`
	RestartDelayMs     int     `yaml:"restartDelayMs"`
	AmbientIntervalMs  int     `yaml:"ambientIntervalMs"`
	AmbientProbability float64 `yaml:"ambientProbability"`
	AmbientBand        Range   `yaml:"ambientBand"`
	CenterColumn       Range   `yaml:"centerColumn"`
	CenterTargetY      Range   `yaml:"centerTargetY"`
	EdgeTargetY        Range   `yaml:"edgeTargetY"`
	InteractiveBand    Range   `yaml:"interactiveBand"`
}

// DisplayConfig 显示参数
type DisplayConfig struct {
	// PixelRatioCap 设备像素比上限
	PixelRatioCap float64 `yaml:"pixelRatioCap"`
	// MobileBreakpoint 逻辑宽度小于此值视为移动设备
	MobileBreakpoint float64 `yaml:"mobileBreakpoint"`
	WindowWidth      int     `yaml:"windowWidth"`
	WindowHeight     int     `yaml:"windowHeight"`
}

// DefaultFireworksConfig 返回与 data/fireworks.yaml 相同的默认配置
func DefaultFireworksConfig() *FireworksConfig {
	return &FireworksConfig{
		Physics: PhysicsConfig{
			Acceleration: 1.02,
			Friction:     0.96,
			Gravity:      0.04,
			FadeAlpha:    0.2,
		},
		Categories: CategoriesConfig{
			Main: CategoryConfig{
				ShellSpeed: Range{Min: 2.5, Max: 2.5},
				LineWidth:  2,
				ShellTrail: 2,
				SparkTrail: 5,
				SparkSpeed: Range{Min: 1, Max: 8},
				Decay:      Range{Min: 0.005, Max: 0.01},
				Sparks:     SparkCount{Desktop: 150, Mobile: 60},
			},
			Ambient: CategoryConfig{
				ShellSpeed: Range{Min: 2, Max: 4},
				LineWidth:  1,
				ShellTrail: 2,
				SparkTrail: 3,
				SparkSpeed: Range{Min: 1, Max: 5},
				Decay:      Range{Min: 0.015, Max: 0.025},
				Sparks:     SparkCount{Desktop: 60, Mobile: 20},
			},
		},
		Palette: []string{
			"hsl(330, 80%, 75%)",
			"hsl(45, 90%, 65%)",
			"hsl(190, 80%, 70%)",
			"hsl(260, 60%, 75%)",
			"hsl(30, 90%, 70%)",
			"hsl(140, 60%, 70%)",
		},
		Show: ShowConfig{
			MainLaunchDelayMs:  500,
			MainTargetY:        0.3,
			MainColor:          1,
			CaptionDelayMs:     2000,
			CaptionIntervalMs:  2000,
			CaptionRevealMs:    2000,
			RestartDelayMs:     1000,
			AmbientIntervalMs:  1200,
			AmbientProbability: 0.5,
			AmbientBand:        Range{Min: 0.1, Max: 0.9},
			CenterColumn:       Range{Min: 0.3, Max: 0.7},
			CenterTargetY:      Range{Min: 0.1, Max: 0.4},
			EdgeTargetY:        Range{Min: 0.1, Max: 0.7},
			InteractiveBand:    Range{Min: 0.2, Max: 0.8},
		},
		Captions: []string{
			"Thank you for every moment",
			"The light stays with us",
			"Until the next chapter",
		},
		RestartLabel: "Replay",
		Display: DisplayConfig{
			PixelRatioCap:    2,
			MobileBreakpoint: 768,
			WindowWidth:      960,
			WindowHeight:     640,
		},
	}
}

// ParseFireworksConfig 解析 YAML 配置
//
// 未出现在 YAML 中的字段保留默认值，解析后执行 Validate。
func ParseFireworksConfig(data []byte) (*FireworksConfig, error) {
	config := DefaultFireworksConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse fireworks config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFireworksConfig 从文件系统加载配置
func LoadFireworksConfig(path string) (*FireworksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fireworks config: %w", err)
	}
	return ParseFireworksConfig(data)
}

// LoadEmbeddedFireworksConfig 从内嵌资源加载默认配置
//
// 调用前必须先调用 embedded.Init()。
func LoadEmbeddedFireworksConfig() (*FireworksConfig, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded fireworks config: %w", err)
	}
	return ParseFireworksConfig(data)
}

// Validate 验证配置有效性
//
// 检查项：
//   - 所有范围 Min <= Max，速度/衰减范围为正
//   - 摩擦系数在 (0,1)，加速度 >= 1，淡出透明度在 (0,1]
//   - 主烟花火花数量严格多于氛围烟花
//   - 调色板非空，主烟花颜色索引有效
//   - 概率在 [0,1]，时间间隔为正
func (c *FireworksConfig) Validate() error {
	p := c.Physics
	if p.Acceleration < 1 {
		return invalidf("physics.acceleration must be >= 1, got %.3f", p.Acceleration)
	}
	if p.Friction <= 0 || p.Friction >= 1 {
		return invalidf("physics.friction must be in (0,1), got %.3f", p.Friction)
	}
	if p.Gravity < 0 {
		return invalidf("physics.gravity must be >= 0, got %.3f", p.Gravity)
	}
	if p.FadeAlpha <= 0 || p.FadeAlpha > 1 {
		return invalidf("physics.fadeAlpha must be in (0,1], got %.3f", p.FadeAlpha)
	}

	if err := c.Categories.Main.validate("main"); err != nil {
		return err
	}
	if err := c.Categories.Ambient.validate("ambient"); err != nil {
		return err
	}
	main, ambient := c.Categories.Main.Sparks, c.Categories.Ambient.Sparks
	if main.Desktop <= ambient.Desktop || main.Mobile <= ambient.Mobile {
		return invalidf("main sparks (%d/%d) must exceed ambient sparks (%d/%d)",
			main.Desktop, main.Mobile, ambient.Desktop, ambient.Mobile)
	}

	if len(c.Palette) == 0 {
		return invalidf("palette must not be empty")
	}

	s := c.Show
	if s.MainColor < 0 || s.MainColor >= len(c.Palette) {
		return invalidf("show.mainColor %d out of palette range [0,%d)", s.MainColor, len(c.Palette))
	}
	if s.MainTargetY < 0 || s.MainTargetY > 1 {
		return invalidf("show.mainTargetY must be in [0,1], got %.3f", s.MainTargetY)
	}
	if s.AmbientProbability < 0 || s.AmbientProbability > 1 {
		return invalidf("show.ambientProbability must be in [0,1], got %.3f", s.AmbientProbability)
	}
	if s.AmbientIntervalMs <= 0 {
		return invalidf("show.ambientIntervalMs must be > 0, got %d", s.AmbientIntervalMs)
	}
	if s.CaptionIntervalMs <= 0 || s.CaptionRevealMs <= 0 {
		return invalidf("show caption interval/reveal must be > 0")
	}
	if s.MainLaunchDelayMs < 0 || s.CaptionDelayMs < 0 || s.RestartDelayMs < 0 {
		return invalidf("show delays must be >= 0")
	}
	ratios := map[string]Range{
		"ambientBand":     s.AmbientBand,
		"centerColumn":    s.CenterColumn,
		"centerTargetY":   s.CenterTargetY,
		"edgeTargetY":     s.EdgeTargetY,
		"interactiveBand": s.InteractiveBand,
	}
	for name, r := range ratios {
		if r.Min > r.Max || r.Min < 0 || r.Max > 1 {
			return invalidf("show.%s must satisfy 0 <= min <= max <= 1, got [%.3f, %.3f]", name, r.Min, r.Max)
		}
	}

	d := c.Display
	if d.PixelRatioCap < 1 {
		return invalidf("display.pixelRatioCap must be >= 1, got %.2f", d.PixelRatioCap)
	}
	if d.MobileBreakpoint < 0 {
		return invalidf("display.mobileBreakpoint must be >= 0")
	}
	if d.WindowWidth <= 0 || d.WindowHeight <= 0 {
		return invalidf("display window size must be positive, got %dx%d", d.WindowWidth, d.WindowHeight)
	}

	return nil
}

func (c CategoryConfig) validate(name string) error {
	if c.ShellSpeed.Min <= 0 || c.ShellSpeed.Min > c.ShellSpeed.Max {
		return invalidf("categories.%s.shellSpeed invalid: min(%.3f) max(%.3f)", name, c.ShellSpeed.Min, c.ShellSpeed.Max)
	}
	if c.SparkSpeed.Min < 0 || c.SparkSpeed.Min > c.SparkSpeed.Max {
		return invalidf("categories.%s.sparkSpeed invalid: min(%.3f) max(%.3f)", name, c.SparkSpeed.Min, c.SparkSpeed.Max)
	}
	if c.Decay.Min <= 0 || c.Decay.Min > c.Decay.Max {
		return invalidf("categories.%s.decay invalid: min(%.3f) max(%.3f)", name, c.Decay.Min, c.Decay.Max)
	}
	if c.LineWidth <= 0 {
		return invalidf("categories.%s.lineWidth must be > 0", name)
	}
	if c.ShellTrail < 1 || c.SparkTrail < 1 {
		return invalidf("categories.%s trail lengths must be >= 1", name)
	}
	if c.Sparks.Desktop <= 0 || c.Sparks.Mobile <= 0 {
		return invalidf("categories.%s.sparks must be > 0", name)
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
