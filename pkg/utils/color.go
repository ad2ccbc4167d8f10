package utils

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHSL 解析 CSS 风格的 "hsl(h, s%, l%)" 颜色字符串
//
// 色相单位为度，饱和度与亮度为百分比，返回不透明的 NRGBA。
func ParseHSL(s string) (color.NRGBA, error) {
	str := strings.TrimSpace(strings.ToLower(s))
	if !strings.HasPrefix(str, "hsl(") || !strings.HasSuffix(str, ")") {
		return color.NRGBA{}, fmt.Errorf("invalid hsl color %q: expected hsl(h, s%%, l%%)", s)
	}
	body := str[len("hsl(") : len(str)-1]

	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return color.NRGBA{}, fmt.Errorf("invalid hsl color %q: expected 3 components, got %d", s, len(parts))
	}

	h, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hsl hue in %q: %w", s, err)
	}
	sat, err := parsePercent(parts[1])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hsl saturation in %q: %w", s, err)
	}
	light, err := parsePercent(parts[2])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hsl lightness in %q: %w", s, err)
	}

	return HSLToRGB(h, sat, light), nil
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("missing %% in %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, err
	}
	return Clamp(v/100, 0, 1), nil
}

// HSLToRGB 将 HSL 转换为颜色，结果截断到合法范围
// h 单位为度（任意值，自动取模），s、l 为 [0,1]
func HSLToRGB(h, s, l float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, Clamp(s, 0, 1), Clamp(l, 0, 1)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
