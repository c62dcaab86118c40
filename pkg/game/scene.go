package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the game (menu, road, results table).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// SceneID 场景标识
type SceneID string

const (
	SceneMenu    SceneID = "menu"
	SceneRoad    SceneID = "road"
	SceneResults SceneID = "results"
)
