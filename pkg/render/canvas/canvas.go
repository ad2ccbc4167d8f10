// Package canvas 提供基于 ebiten 离屏图像的绘制目标
//
// 与 render 包分开，使无头和终端程序不链接图形后端。
package canvas

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/fireworks/pkg/fireworks"
)

var (
	_ fireworks.Surface   = (*Surface)(nil)
	_ fireworks.Resizable = (*Surface)(nil)
)

// Surface 持久化的离屏画布
//
// 每帧只覆盖一层半透明黑色而不清屏，旧的线段逐渐变暗形成拖尾。
// 画布尺寸为逻辑尺寸乘以像素比，绘制时坐标统一乘以像素比。
type Surface struct {
	canvas   *ebiten.Image
	viewport fireworks.Viewport
	width    int
	height   int
}

// New 按视口创建画布
func New(v fireworks.Viewport) *Surface {
	c := &Surface{}
	c.Resize(v)
	return c
}

// Resize 重新分配画布（内容会被清空）
func (c *Surface) Resize(v fireworks.Viewport) {
	w, h := v.BackingSize()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.viewport = v
	if c.canvas != nil && w == c.width && h == c.height {
		return
	}
	if c.canvas != nil {
		c.canvas.Deallocate()
	}
	c.canvas = ebiten.NewImage(w, h)
	c.width, c.height = w, h
	log.Printf("[Canvas] 画布尺寸 %dx%d (逻辑 %.0fx%.0f, 像素比 %.2f)", w, h, v.Width, v.Height, v.PixelRatio)
}

// Fade 在整个画布上覆盖一层黑色
func (c *Surface) Fade(alpha float64) {
	a := uint8(alpha*255 + 0.5)
	vector.DrawFilledRect(c.canvas, 0, 0, float32(c.width), float32(c.height), color.NRGBA{A: a}, false)
}

// StrokeLine 绘制一条线段，坐标为逻辑像素
func (c *Surface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	r := c.viewport.PixelRatio
	vector.StrokeLine(c.canvas,
		float32(x0*r), float32(y0*r), float32(x1*r), float32(y1*r),
		float32(width*r), clr, true)
}

// Image 返回画布图像
func (c *Surface) Image() *ebiten.Image {
	return c.canvas
}

// Viewport 返回当前视口
func (c *Surface) Viewport() fireworks.Viewport {
	return c.viewport
}

// Dispose 释放 GPU 资源
func (c *Surface) Dispose() {
	if c.canvas != nil {
		c.canvas.Deallocate()
		c.canvas = nil
	}
}
