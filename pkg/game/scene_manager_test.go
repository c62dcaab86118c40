package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene records calls made by the SceneManager.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func TestSceneManagerWithoutScene(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Fatal("expected no active scene")
	}
	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(nil)
}

func TestSceneManagerDelegates(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	sm.SwitchTo(scene)

	sm.Update(0.016)
	sm.Draw(nil)

	if !scene.updateCalled || scene.deltaTime != 0.016 {
		t.Errorf("Update not delegated: %+v", scene)
	}
	if !scene.drawCalled {
		t.Error("Draw not delegated")
	}
}

func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	if sm.Load(SceneMenu) {
		t.Fatal("Load() without factory should fail")
	}

	menu := &MockScene{}
	road := &MockScene{}
	sm.SetSceneFactory(func(id SceneID) Scene {
		switch id {
		case SceneMenu:
			return menu
		case SceneRoad:
			return road
		}
		return nil
	})

	tests := []struct {
		id      SceneID
		wantOK  bool
		wantCur Scene
	}{
		{SceneMenu, true, menu},
		{SceneRoad, true, road},
		{SceneResults, false, road},
	}
	for _, tt := range tests {
		if got := sm.Load(tt.id); got != tt.wantOK {
			t.Errorf("Load(%q) = %v, want %v", tt.id, got, tt.wantOK)
		}
		if sm.GetCurrentScene() != tt.wantCur {
			t.Errorf("after Load(%q) wrong active scene", tt.id)
		}
	}
	if sm.CurrentID() != SceneRoad {
		t.Errorf("CurrentID() = %q, want %q", sm.CurrentID(), SceneRoad)
	}
}
