// Package render 提供不依赖图形后端的绘制目标实现
//
//   - TerminalSurface: tcell 终端字符画
//   - CountingSurface: 只计数的无头实现
//
// ebiten 画布位于 render/canvas 子包。
package render

import (
	"image/color"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// CountingSurface 不绘制任何内容，只统计调用次数（用于无头模式和遥测）
type CountingSurface struct {
	Fades   int
	Strokes int
	Resizes int

	viewport fireworks.Viewport
}

func (c *CountingSurface) Fade(float64) { c.Fades++ }

func (c *CountingSurface) StrokeLine(_, _, _, _, _ float64, _ color.NRGBA) { c.Strokes++ }

func (c *CountingSurface) Resize(v fireworks.Viewport) {
	c.Resizes++
	c.viewport = v
}

// Viewport 返回最后一次 Resize 的视口
func (c *CountingSurface) Viewport() fireworks.Viewport { return c.viewport }

// TakeStrokes 返回并清零线段计数
func (c *CountingSurface) TakeStrokes() int {
	n := c.Strokes
	c.Strokes = 0
	return n
}
