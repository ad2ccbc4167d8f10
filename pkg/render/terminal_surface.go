package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// 终端单元格对应的逻辑像素尺寸（字符大约是 1:2 的竖长方形）
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

type cell struct {
	r, g, b float64 // 0..1，已与黑色背景混合
}

// TerminalSurface 把引擎的线段栅格化到字符网格
//
// 每个单元格保存混合后的颜色，Fade 让所有单元格向黑色衰减，
// Flush 按亮度选择字符（█▓▒░）写入 tcell 屏幕。
type TerminalSurface struct {
	cols, rows int
	cellW      float64
	cellH      float64
	cells      []cell
}

// NewTerminalSurface 创建 cols x rows 的字符画布
func NewTerminalSurface(cols, rows int) *TerminalSurface {
	s := &TerminalSurface{cellW: DefaultCellWidth, cellH: DefaultCellHeight}
	s.SetGrid(cols, rows)
	return s
}

// ViewportFor 返回与字符网格等价的逻辑视口
func ViewportFor(cols, rows int) fireworks.Viewport {
	return fireworks.NewViewport(float64(cols)*DefaultCellWidth, float64(rows)*DefaultCellHeight, 1, 1)
}

// SetGrid 调整网格尺寸，内容清空
func (s *TerminalSurface) SetGrid(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	n := cols * rows
	if cap(s.cells) >= n {
		s.cells = s.cells[:n]
		clear(s.cells)
	} else {
		s.cells = make([]cell, n)
	}
}

// Resize 根据逻辑视口重新计算网格
func (s *TerminalSurface) Resize(v fireworks.Viewport) {
	s.SetGrid(int(math.Ceil(v.Width/s.cellW)), int(math.Ceil(v.Height/s.cellH)))
}

// Size 返回网格尺寸
func (s *TerminalSurface) Size() (int, int) {
	return s.cols, s.rows
}

// Fade 所有单元格按 alpha 向黑色混合
func (s *TerminalSurface) Fade(alpha float64) {
	keep := 1 - alpha
	for i := range s.cells {
		c := &s.cells[i]
		c.r *= keep
		c.g *= keep
		c.b *= keep
	}
}

// StrokeLine 以单元格为步长栅格化线段（DDA）
func (s *TerminalSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	cx0, cy0 := x0/s.cellW, y0/s.cellH
	cx1, cy1 := x1/s.cellW, y1/s.cellH
	dx, dy := cx1-cx0, cy1-cy0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps < 1 {
		steps = 1
	}

	a := float64(clr.A) / 255
	r, g, b := float64(clr.R)/255, float64(clr.G)/255, float64(clr.B)/255
	lastX, lastY := -1, -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Floor(cx0 + dx*t))
		y := int(math.Floor(cy0 + dy*t))
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		s.blend(x, y, r, g, b, a)
	}
}

func (s *TerminalSurface) blend(x, y int, r, g, b, a float64) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	c := &s.cells[y*s.cols+x]
	c.r = c.r*(1-a) + r*a
	c.g = c.g*(1-a) + g*a
	c.b = c.b*(1-a) + b*a
}

// Intensity 返回单元格亮度（0..1），越界返回 0
func (s *TerminalSurface) Intensity(x, y int) float64 {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return 0
	}
	c := s.cells[y*s.cols+x]
	return math.Max(c.r, math.Max(c.g, c.b))
}

// Glyph 按亮度返回字符，太暗时返回空格
func Glyph(intensity float64) rune {
	switch {
	case intensity > 0.6:
		return '█'
	case intensity > 0.3:
		return '▓'
	case intensity > 0.12:
		return '▒'
	case intensity > 0.03:
		return '░'
	default:
		return ' '
	}
}

// Flush 把网格写入屏幕（不调用 Show）
func (s *TerminalSurface) Flush(screen tcell.Screen) {
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			c := s.cells[y*s.cols+x]
			ch := Glyph(math.Max(c.r, math.Max(c.g, c.b)))
			if ch == ' ' {
				screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			fg := tcell.NewRGBColor(to255(c.r), to255(c.g), to255(c.b))
			screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(fg))
		}
	}
}

func to255(v float64) int32 {
	return int32(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}
