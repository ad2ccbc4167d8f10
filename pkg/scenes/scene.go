package scenes

import (
	"log"

	"github.com/decker502/fireworks/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// FinaleFactory 返回创建终章场景的工厂函数，重播时由 SceneManager 调用
//
// 每次重播使用递增的种子，保证重播的演出与上一次不同但仍可复现。
func FinaleFactory(sm *game.SceneManager, opts FinaleOptions) game.SceneFactory {
	round := uint64(0)
	return func() game.Scene {
		o := opts
		if o.Seed != 0 {
			o.Seed += round * 1000
		}
		round++
		s, err := NewFinaleScene(sm, o)
		if err != nil {
			log.Printf("[Scenes] 创建终章场景失败: %v", err)
			return nil
		}
		return s
	}
}
