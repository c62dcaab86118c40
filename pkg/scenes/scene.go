package scenes

import (
	"log"

	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// Services 场景共享的依赖
type Services struct {
	RoadConfig   *config.RoadConfig
	Results      *game.ResultsManager
	Settings     *game.SettingsManager
	SceneManager *game.SceneManager
}

// NewFactory 返回按场景标识创建场景的工厂
func NewFactory(services *Services) game.SceneFactory {
	return func(id game.SceneID) game.Scene {
		switch id {
		case game.SceneMenu:
			return NewMenuScene(services)
		case game.SceneRoad:
			scene, err := NewRoadScene(services)
			if err != nil {
				log.Printf("[Scenes] Failed to create road scene: %v", err)
				return nil
			}
			return scene
		case game.SceneResults:
			return NewResultsScene(services)
		}
		return nil
	}
}
