package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// Scene represents one screen of the application (e.g., the finale).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景需要感知视口变化时实现
//
// SceneManager 会把最近一次的视口转发给新切换的场景，
// 因此场景不需要自己查询窗口尺寸。
type Resizable interface {
	Resize(v fireworks.Viewport)
}

// Teardown 是一个可选接口，场景被替换时调用
//
// 场景在这里停止计时器并释放离屏画布等 GPU 资源。
type Teardown interface {
	Teardown()
}
