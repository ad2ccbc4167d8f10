package ui

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFontOnce   sync.Once
	defaultFontSource *text.GoTextFaceSource
	defaultFontErr    error
)

// DefaultFontSource 返回内置的 Go Regular 字体源（只解析一次）
func DefaultFontSource() (*text.GoTextFaceSource, error) {
	defaultFontOnce.Do(func() {
		defaultFontSource, defaultFontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if defaultFontErr != nil {
			defaultFontErr = fmt.Errorf("failed to load default font: %w", defaultFontErr)
		}
	})
	return defaultFontSource, defaultFontErr
}

// NewDefaultFace 创建指定字号的默认字体
func NewDefaultFace(size float64) (*text.GoTextFace, error) {
	src, err := DefaultFontSource()
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{
		Source:    src,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}
