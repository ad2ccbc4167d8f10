package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 按最大宽度贪心换行
//
// 在空格处断行；单个单词本身超过 maxWidth 时才按字符强制断开。
// 连续空白折叠为一个空格，行首行尾不保留空白。
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if measureTextWidth(word, font) <= maxWidth {
			current = word
			continue
		}

		// 超长单词：按字符拆开，最后一段留在当前行继续拼接
		pieces := breakWord(word, font, maxWidth)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{textStr}
	}
	return lines
}

// breakWord 把一个超宽的单词按字符切成若干段，每段至少一个字符
func breakWord(word string, font *text.GoTextFace, maxWidth float64) []string {
	var pieces []string
	current := ""
	for _, r := range word {
		test := current + string(r)
		if current != "" && measureTextWidth(test, font) > maxWidth {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = test
	}
	return append(pieces, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	// 使用 Measure 方法测量文本尺寸
	width, _ := text.Measure(textStr, font, 0)
	return width
}
