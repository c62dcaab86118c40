package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 场景包依赖本包，通过工厂避免循环依赖
type SceneFactory func(id SceneID) Scene

// SceneManager controls which scene is active.
// Only the active scene's Update and Draw are called.
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	sceneFactory SceneFactory
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 返回最近一次通过 Load 切换到的场景标识
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// Load 通过工厂创建并切换到指定场景
// 返回是否切换成功
func (sm *SceneManager) Load(id SceneID) bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: scene factory not set")
		return false
	}

	scene := sm.sceneFactory(id)
	if scene == nil {
		log.Printf("[SceneManager] Error: unknown scene %q", id)
		return false
	}

	sm.SwitchTo(scene)
	sm.currentID = id
	log.Printf("[SceneManager] Switched to scene %q", id)
	return true
}

// Update updates the active scene, if any.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the active scene, if any.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
