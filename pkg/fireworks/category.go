// Package fireworks implements the finale fireworks engine: rising shells,
// decaying sparks, entity pools, the per-frame simulation loop and the
// timed show sequence that drives them.
package fireworks

import (
	"fmt"
	"image/color"
	"time"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/utils"
)

// Category controls the visual scale of a shell and the burst it produces.
type Category int

const (
	// CategoryAmbient covers background bursts and user-triggered shells.
	CategoryAmbient Category = iota
	// CategoryMain is the single centre-stage shell that opens the finale.
	CategoryMain

	categoryCount
)

func (c Category) String() string {
	switch c {
	case CategoryAmbient:
		return "ambient"
	case CategoryMain:
		return "main"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// DeviceClass selects the particle budget.
type DeviceClass int

const (
	DeviceDesktop DeviceClass = iota
	DeviceMobile
)

func (d DeviceClass) String() string {
	if d == DeviceMobile {
		return "mobile"
	}
	return "desktop"
}

// Range is a half-open sampling interval [Min, Max).
type Range struct {
	Min, Max float64
}

// Scale multiplies both bounds by f.
func (r Range) Scale(f float64) Range {
	return Range{Min: r.Min * f, Max: r.Max * f}
}

// Contains reports whether v lies strictly inside (Min, Max).
func (r Range) Contains(v float64) bool {
	return v > r.Min && v < r.Max
}

// Profile is the per-category tuning record.
type Profile struct {
	ShellSpeed Range
	LineWidth  float64
	ShellTrail int
	SparkTrail int
	SparkSpeed Range
	Decay      Range
	SparkCount int
}

// Tuning groups the physics constants with the resolved per-category profiles.
type Tuning struct {
	Acceleration float64
	Friction     float64
	Gravity      float64
	FadeAlpha    float64

	profiles [categoryCount]Profile
}

// Profile returns the record for c. Unknown categories fall back to ambient.
func (t *Tuning) Profile(c Category) *Profile {
	if c < 0 || c >= categoryCount {
		c = CategoryAmbient
	}
	return &t.profiles[c]
}

// NewTuning resolves cfg for the given device class.
func NewTuning(cfg *config.FireworksConfig, device DeviceClass) Tuning {
	t := Tuning{
		Acceleration: cfg.Physics.Acceleration,
		Friction:     cfg.Physics.Friction,
		Gravity:      cfg.Physics.Gravity,
		FadeAlpha:    cfg.Physics.FadeAlpha,
	}
	t.profiles[CategoryMain] = newProfile(cfg.Categories.Main, device)
	t.profiles[CategoryAmbient] = newProfile(cfg.Categories.Ambient, device)
	return t
}

func newProfile(c config.CategoryConfig, device DeviceClass) Profile {
	count := c.Sparks.Desktop
	if device == DeviceMobile {
		count = c.Sparks.Mobile
	}
	return Profile{
		ShellSpeed: Range(c.ShellSpeed),
		LineWidth:  c.LineWidth,
		ShellTrail: c.ShellTrail,
		SparkTrail: c.SparkTrail,
		SparkSpeed: Range(c.SparkSpeed),
		Decay:      Range(c.Decay),
		SparkCount: count,
	}
}

// Show is the timing and geometry of the finale sequence.
type Show struct {
	MainLaunchDelay time.Duration
	MainTargetY     float64
	MainColor       int

	CaptionDelay    time.Duration
	CaptionInterval time.Duration
	CaptionReveal   time.Duration
	RestartDelay    time.Duration

	AmbientInterval    time.Duration
	AmbientProbability float64
	AmbientBand        Range
	CenterColumn       Range
	CenterTargetY      Range
	EdgeTargetY        Range
	InteractiveBand    Range

	Captions []string
}

// NewShow converts the millisecond based config into durations.
func NewShow(cfg *config.FireworksConfig) Show {
	s := cfg.Show
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return Show{
		MainLaunchDelay:    ms(s.MainLaunchDelayMs),
		MainTargetY:        s.MainTargetY,
		MainColor:          s.MainColor,
		CaptionDelay:       ms(s.CaptionDelayMs),
		CaptionInterval:    ms(s.CaptionIntervalMs),
		CaptionReveal:      ms(s.CaptionRevealMs),
		RestartDelay:       ms(s.RestartDelayMs),
		AmbientInterval:    ms(s.AmbientIntervalMs),
		AmbientProbability: s.AmbientProbability,
		AmbientBand:        Range(s.AmbientBand),
		CenterColumn:       Range(s.CenterColumn),
		CenterTargetY:      Range(s.CenterTargetY),
		EdgeTargetY:        Range(s.EdgeTargetY),
		InteractiveBand:    Range(s.InteractiveBand),
		Captions:           append([]string(nil), cfg.Captions...),
	}
}

// NewPalette parses the configured hsl(...) strings.
func NewPalette(cfg *config.FireworksConfig) ([]color.NRGBA, error) {
	palette := make([]color.NRGBA, 0, len(cfg.Palette))
	for i, s := range cfg.Palette {
		c, err := utils.ParseHSL(s)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette = append(palette, c)
	}
	return palette, nil
}
