package scenes

import (
	"time"

	"github.com/decker502/fireworks/pkg/fireworks"
	"github.com/decker502/fireworks/pkg/utils"
)

// 字幕与重播按钮的版式参数（逻辑像素）
const (
	captionFontDesktop = 28.0
	captionFontMobile  = 18.0
	labelFontSize      = 18.0
	captionLineHeight  = 1.8  // 行高 = 字号 * 1.8
	captionSlide       = 20.0 // 字幕入场时向上滑动的距离
	captionBlockTop    = 0.62 // 字幕块顶部位于画面高度的比例
	labelPaddingX      = 18.0
	labelPaddingY      = 10.0
	labelGap           = 24.0 // 字幕块与按钮之间的距离
	labelFadeDuration  = time.Second
	captionMaxWidth    = 0.9 // 字幕最大宽度占画面宽度的比例，超出时换行
)

// captionLine 已经开始显示的一行字幕
type captionLine struct {
	index  int
	at     time.Duration
	reveal time.Duration
}

// lineStyle 某一时刻字幕行的绘制参数
type lineStyle struct {
	offsetY float64 // 相对最终位置的下移量
	alpha   float64
}

// styleAt 按 CSS ease 曲线计算字幕行的上滑和淡入，动画结束后固定在最终状态
func (l captionLine) styleAt(now time.Duration) lineStyle {
	t := utils.Progress((now - l.at).Seconds(), l.reveal.Seconds())
	e := utils.EaseCSS(t)
	return lineStyle{offsetY: captionSlide * (1 - e), alpha: e}
}

// rect 逻辑坐标系下的矩形
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// finaleLayout 根据视口计算字幕和按钮位置
type finaleLayout struct {
	captionSize float64
	lineHeight  float64
	blockTop    float64
	centerX     float64
}

func newFinaleLayout(v fireworks.Viewport, device fireworks.DeviceClass) finaleLayout {
	size := captionFontDesktop
	if device == fireworks.DeviceMobile {
		size = captionFontMobile
	}
	return finaleLayout{
		captionSize: size,
		lineHeight:  size * captionLineHeight,
		blockTop:    v.Height * captionBlockTop,
		centerX:     v.Width / 2,
	}
}

// lineY 第 i 行字幕的最终基准位置（行顶部）
func (l finaleLayout) lineY(i int) float64 {
	return l.blockTop + float64(i)*l.lineHeight
}

// labelRect 重播按钮的区域，textW/textH 为文字尺寸
func (l finaleLayout) labelRect(lines int, textW, textH float64) rect {
	w := textW + 2*labelPaddingX
	h := textH + 2*labelPaddingY
	return rect{
		X: l.centerX - w/2,
		Y: l.lineY(lines) + labelGap,
		W: w,
		H: h,
	}
}

// labelAlpha 重播按钮淡入进度
func labelAlpha(since time.Duration) float64 {
	return utils.EaseCSS(utils.Progress(since.Seconds(), labelFadeDuration.Seconds()))
}
