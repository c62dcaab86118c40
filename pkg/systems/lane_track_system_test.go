package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/ecs"
)

// setCameraY 直接设置镜头位置
func setCameraY(w *testWorld, y float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CameraComponent](w.em) {
		cam, _ := ecs.GetComponent[*components.CameraComponent](w.em, id)
		cam.Y = y
	}
}

// placePlayer 直接把玩家放到指定车道中心
func placePlayer(w *testWorld, row int) {
	y := float64(row)*w.cfg.LaneHeight + w.cfg.LaneHeight/2
	player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, w.player.Entity())
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, w.player.Entity())
	player.TargetY = y
	pos.Y = y
}

// assertLaneSequence 检查车道编号连续、类型按奇偶交替、位置正确
func assertLaneSequence(t *testing.T, lanes []components.LaneComponent, laneHeight float64) {
	t.Helper()
	for i, lane := range lanes {
		if i > 0 && lane.Index != lanes[i-1].Index+1 {
			t.Fatalf("lane indices not contiguous: %d after %d", lane.Index, lanes[i-1].Index)
		}
		if lane.Kind != components.LaneKindForIndex(lane.Index) {
			t.Fatalf("lane %d has kind %s", lane.Index, lane.Kind)
		}
		if lane.Y != float64(lane.Index)*laneHeight {
			t.Fatalf("lane %d at y=%v, want %v", lane.Index, lane.Y, float64(lane.Index)*laneHeight)
		}
	}
}

func TestInitializeCreatesInitialLanes(t *testing.T) {
	w := newTestWorld(newTestConfig(), 1, true)

	lanes := w.lanes.Lanes()
	if len(lanes) < w.cfg.InitialLaneCount() {
		t.Fatalf("got %d lanes, want at least %d", len(lanes), w.cfg.InitialLaneCount())
	}
	if lanes[0].Index != 0 || lanes[0].Kind != components.LaneSafe {
		t.Errorf("first lane should be safe lane 0, got %+v", lanes[0])
	}
	assertLaneSequence(t, lanes, w.cfg.LaneHeight)
}

func TestEnsureLookaheadMonotonic(t *testing.T) {
	w := newTestWorld(newTestConfig(), 1, false)
	rng := rand.New(rand.NewSource(7))

	top := 0.0
	for i := 0; i < 200; i++ {
		// 镜头上边缘偶尔回退，生成必须保持单调
		top += rng.Float64()*300 - 50
		before := w.lanes.NextIndex()
		added := w.lanes.EnsureLookahead(top)

		if w.lanes.NextIndex() != before+added {
			t.Fatalf("NextIndex advanced by %d, reported %d", w.lanes.NextIndex()-before, added)
		}
		if added%w.cfg.LaneBatchSize != 0 {
			t.Fatalf("lanes should be added in batches of %d, got %d", w.cfg.LaneBatchSize, added)
		}
		if w.lanes.HighestTop() <= top+w.cfg.LookaheadMargin {
			t.Fatalf("lookahead not satisfied: highest top %v, camera top %v", w.lanes.HighestTop(), top)
		}
	}

	lanes := w.lanes.Lanes()
	if len(lanes) != w.lanes.NextIndex() {
		t.Fatalf("got %d lanes, want %d", len(lanes), w.lanes.NextIndex())
	}
	assertLaneSequence(t, lanes, w.cfg.LaneHeight)
}

func TestEvictRemovesLanesBelowThreshold(t *testing.T) {
	w := newTestWorld(newTestConfig(), 1, true)
	placePlayer(w, 12)

	// 镜头下边缘 600，回收线 400：上边缘 60..360 的 0-5 号车道被回收
	setCameraY(w, 600+w.cfg.PlayfieldHeight/2)
	removed := w.lanes.Evict(w.camera.Bottom())
	w.em.RemoveMarkedEntities()

	if removed != 6 {
		t.Fatalf("Evict() removed %d lanes, want 6", removed)
	}
	lanes := w.lanes.Lanes()
	if lanes[0].Index != 6 {
		t.Errorf("lowest lane = %d, want 6", lanes[0].Index)
	}
	assertLaneSequence(t, lanes, w.cfg.LaneHeight)

	// 回收后的编号不会再生成
	next := w.lanes.NextIndex()
	w.lanes.EnsureLookahead(w.camera.Top())
	for _, lane := range w.lanes.Lanes() {
		if lane.Index < 6 {
			t.Fatalf("evicted lane %d was recreated", lane.Index)
		}
	}
	if w.lanes.NextIndex() < next {
		t.Fatal("NextIndex must never decrease")
	}
}

func TestEvictDefersLaneWithObstacle(t *testing.T) {
	w := newTestWorld(newTestConfig(), 1, true)
	placePlayer(w, 12)
	setCameraY(w, 600+w.cfg.PlayfieldHeight/2)

	// 3 号车道中心 210 上还有车
	car := addObstacle(w, 210, 100, components.DirectionRight, 0)

	if removed := w.lanes.Evict(w.camera.Bottom()); removed != 5 {
		t.Fatalf("Evict() removed %d lanes, want 5", removed)
	}
	w.em.RemoveMarkedEntities()

	lanes := w.lanes.Lanes()
	if lanes[0].Index != 3 {
		t.Fatalf("occupied lane 3 should survive, lowest lane = %d", lanes[0].Index)
	}

	// 车离开后下一轮回收
	w.em.DestroyEntity(car)
	w.em.RemoveMarkedEntities()
	if removed := w.lanes.Evict(w.camera.Bottom()); removed != 1 {
		t.Fatalf("second Evict() removed %d lanes, want 1", removed)
	}
	w.em.RemoveMarkedEntities()
	if got := w.lanes.Lanes()[0].Index; got != 6 {
		t.Errorf("lowest lane = %d, want 6", got)
	}
}

func TestEvictionIsThrottledByTimer(t *testing.T) {
	cfg := newTestConfig()
	cfg.EvictionInterval = 1.0
	w := newTestWorld(cfg, 1, true)
	placePlayer(w, 12)
	setCameraY(w, 600+cfg.PlayfieldHeight/2)

	w.lanes.Update(0.5)
	w.em.RemoveMarkedEntities()
	if got := w.lanes.Lanes()[0].Index; got != 0 {
		t.Fatalf("eviction ran before interval elapsed, lowest lane = %d", got)
	}

	w.lanes.Update(0.5)
	w.em.RemoveMarkedEntities()
	if got := w.lanes.Lanes()[0].Index; got != 6 {
		t.Fatalf("eviction should run once interval elapsed, lowest lane = %d", got)
	}
}

func TestCameraScenarioGeneratesLanes(t *testing.T) {
	cfg := newTestConfig()
	cfg.CameraSpeed = 20
	cfg.LaneHeight = 60
	cfg.CameraStartY = floatPtr(0)
	cfg.PlayfieldHeight = 240
	cfg.InitialLanes = 1
	cfg.LookaheadMargin = 270

	w := newTestWorld(cfg, 1, true)
	initial := w.lanes.NextIndex()

	for i := 0; i < 12; i++ {
		if w.step(0.25) {
			t.Fatal("run ended unexpectedly")
		}
	}

	if w.camera.Y() != 60 {
		t.Errorf("camera y = %v, want 60", w.camera.Y())
	}
	if added := w.lanes.NextIndex() - initial; added < 3 {
		t.Errorf("generated %d lanes above the initial window, want at least 3", added)
	}
}

func TestEvictionSafetyDuringLongRun(t *testing.T) {
	cfg := newTestConfig()
	w := newTestWorld(cfg, 99, true)
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 60*120 && !w.clock.IsEnded(); i++ {
		// 玩家只保证不被镜头甩掉，不刻意躲车
		_, y := w.player.Position()
		if y < w.camera.Y() && rng.Intn(20) == 0 {
			w.player.MoveUp()
		}
		w.step(1.0 / 60.0)

		lanes := w.lanes.Lanes()
		for _, id := range obstacleIDs(w.em) {
			pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
			if !laneExistsAt(lanes, pos.Y) {
				t.Fatalf("tick %d: obstacle %d at y=%v has no lane", i, id, pos.Y)
			}
		}
		if w.player.Alive() && !laneExistsAt(lanes, w.player.TargetY()) {
			t.Fatalf("tick %d: player lane was evicted", i)
		}
	}
}

func laneExistsAt(lanes []components.LaneComponent, y float64) bool {
	for i := range lanes {
		if lanes[i].Contains(y) {
			return true
		}
	}
	return false
}
