// Package utils 提供不依赖图形后端的通用工具函数（颜色、缓动、平台检测）
package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseCSS CSS 默认的 "ease" 曲线，即 cubic-bezier(0.25, 0.1, 0.25, 1)
// 字幕上滑动画使用此曲线
func EaseCSS(t float64) float64 {
	return CubicBezier(0.25, 0.1, 0.25, 1, t)
}

// CubicBezier 计算控制点为 (x1,y1)、(x2,y2) 的 CSS 三次贝塞尔缓动
// 先用牛顿迭代由 x 求参数 s，不收敛时退回二分法
func CubicBezier(x1, y1, x2, y2, t float64) float64 {
	t = Clamp(t, 0, 1)
	if t == 0 || t == 1 {
		return t
	}

	bx := func(s float64) float64 { return bezier(x1, x2, s) }
	s := t
	for i := 0; i < 8; i++ {
		x := bx(s) - t
		if math.Abs(x) < 1e-7 {
			return bezier(y1, y2, s)
		}
		d := bezierSlope(x1, x2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= x / d
	}

	lo, hi := 0.0, 1.0
	s = t
	for i := 0; i < 50; i++ {
		x := bx(s)
		if math.Abs(x-t) < 1e-7 {
			break
		}
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return bezier(y1, y2, s)
}

// bezier 端点固定为 0 和 1 的一维三次贝塞尔
func bezier(p1, p2, s float64) float64 {
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

func bezierSlope(p1, p2, s float64) float64 {
	u := 1 - s
	return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Progress 返回 elapsed/duration 并限制在 [0,1]
// duration <= 0 时视为已完成
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp(elapsed/duration, 0, 1)
}
