package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/fireworks"
)

// SceneFactory 场景工厂函数类型
// 用于重新创建初始场景（重播），避免 game 与 scenes 包循环依赖
type SceneFactory func() Scene

// SceneManager manages the application's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于重播时创建新场景

	viewport    fireworks.Viewport
	hasViewport bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is torn down if it implements Teardown, and the new
// scene receives the last known viewport if it implements Resizable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if old, ok := sm.currentScene.(Teardown); ok {
		old.Teardown()
	}
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.hasViewport {
		r.Resize(sm.viewport)
	}
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Restart 用工厂函数创建一个全新的场景并替换当前场景
//
// 旧场景的计时器和资源在 SwitchTo 中通过 Teardown 释放。
func (sm *SceneManager) Restart() bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory()
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景")
		return false
	}
	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 场景已重新开始")
	return true
}

// Resize 记录视口并转发给当前场景
func (sm *SceneManager) Resize(v fireworks.Viewport) {
	if sm.hasViewport && sm.viewport == v {
		return
	}
	sm.viewport = v
	sm.hasViewport = true
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(v)
	}
}

// Viewport 返回最后一次 Resize 的视口
func (sm *SceneManager) Viewport() (fireworks.Viewport, bool) {
	return sm.viewport, sm.hasViewport
}

// Close 释放当前场景
func (sm *SceneManager) Close() {
	if old, ok := sm.currentScene.(Teardown); ok {
		old.Teardown()
	}
	sm.currentScene = nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
