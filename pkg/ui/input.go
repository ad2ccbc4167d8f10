// Package ui 提供依赖 ebiten 的输入采集、字体和文字排版工具
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPress 一次指针按下事件（屏幕坐标）
type PointerPress struct {
	X, Y  int
	Touch bool
}

// PointerSource 抽象 ebiten 的指针输入，便于测试替换
type PointerSource interface {
	AppendJustPressedTouchIDs(dst []ebiten.TouchID) []ebiten.TouchID
	AppendTouchIDs(dst []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	IsMouseJustPressed() bool
	CursorPosition() (int, int)
}

type ebitenPointerSource struct{}

func (ebitenPointerSource) AppendJustPressedTouchIDs(dst []ebiten.TouchID) []ebiten.TouchID {
	return inpututil.AppendJustPressedTouchIDs(dst)
}

func (ebitenPointerSource) AppendTouchIDs(dst []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(dst)
}

func (ebitenPointerSource) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

func (ebitenPointerSource) IsMouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (ebitenPointerSource) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// PointerCollector 每帧收集一次指针按下事件
//
// 触摸优先：只要本帧有新的触摸开始，就返回所有当前活动触摸点的位置
// （与浏览器 touchstart 的 touches 列表一致），每帧最多一批。
// 没有触摸时检测鼠标左键点击。
type PointerCollector struct {
	src      PointerSource
	justIDs  []ebiten.TouchID
	touchIDs []ebiten.TouchID
	presses  []PointerPress
}

// NewPointerCollector 创建读取 ebiten 输入的收集器
func NewPointerCollector() *PointerCollector {
	return NewPointerCollectorWithSource(ebitenPointerSource{})
}

// NewPointerCollectorWithSource 使用自定义输入源创建收集器
func NewPointerCollectorWithSource(src PointerSource) *PointerCollector {
	return &PointerCollector{src: src}
}

// Collect 返回本帧的按下事件，返回的切片在下一次调用前有效
func (c *PointerCollector) Collect() []PointerPress {
	c.presses = c.presses[:0]

	c.justIDs = c.src.AppendJustPressedTouchIDs(c.justIDs[:0])
	if len(c.justIDs) > 0 {
		c.touchIDs = c.src.AppendTouchIDs(c.touchIDs[:0])
		for _, id := range c.touchIDs {
			x, y := c.src.TouchPosition(id)
			c.presses = append(c.presses, PointerPress{X: x, Y: y, Touch: true})
		}
		return c.presses
	}

	if c.src.IsMouseJustPressed() {
		x, y := c.src.CursorPosition()
		c.presses = append(c.presses, PointerPress{X: x, Y: y})
	}
	return c.presses
}
