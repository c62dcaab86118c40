package systems

import (
	"math/rand"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
)

// testWorld 组装一套完整的系统，供测试共享使用
type testWorld struct {
	cfg         *config.RoadConfig
	em          *ecs.EntityManager
	clock       *RunClockSystem
	camera      *CameraPursuitSystem
	lanes       *LaneTrackSystem
	motion      *ObstacleMotionSystem
	spawner     *TrafficSpawnSystem
	player      *PlayerMotionSystem
	termination *TerminationSystem
}

// newTestConfig 返回测试用的默认参数
func newTestConfig() *config.RoadConfig {
	return config.DefaultRoadConfig()
}

// newTestWorld 创建测试世界；initialize 为 true 时铺设初始车道
func newTestWorld(cfg *config.RoadConfig, seed int64, initialize bool) *testWorld {
	em := ecs.NewEntityManager()
	clock := NewRunClockSystem(em)
	camera := NewCameraPursuitSystem(em, cfg)
	lanes := NewLaneTrackSystem(em, cfg, camera)
	player := NewPlayerMotionSystem(em, cfg)

	w := &testWorld{
		cfg:         cfg,
		em:          em,
		clock:       clock,
		camera:      camera,
		lanes:       lanes,
		motion:      NewObstacleMotionSystem(em, clock),
		spawner:     NewTrafficSpawnSystem(em, cfg, clock, rand.New(rand.NewSource(seed))),
		player:      player,
		termination: NewTerminationSystem(em, cfg, camera, player, clock),
	}
	if initialize {
		lanes.Initialize(cfg.InitialLaneCount())
	}
	return w
}

// step 按模拟器的顺序推进一个 tick
func (w *testWorld) step(dt float64) bool {
	if w.clock.IsEnded() {
		return true
	}
	w.clock.Update(dt)
	w.camera.Update(dt)
	w.lanes.Update(dt)
	w.motion.Update(dt)
	w.em.RemoveMarkedEntities()
	w.player.Update(dt)
	w.spawner.Update(dt)
	ended := w.termination.Evaluate()
	w.em.RemoveMarkedEntities()
	return ended
}

// addLane 直接创建一条车道（绕过 LaneTrackSystem，用于构造特定场景）
func addLane(em *ecs.EntityManager, index int, height float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LaneComponent{
		Index:  index,
		Kind:   components.LaneKindForIndex(index),
		Y:      float64(index) * height,
		Height: height,
	})
	return id
}

// addObstacle 在指定位置放置一辆车
func addObstacle(w *testWorld, centerY, x float64, dir components.Direction, spawnTime float64) ecs.EntityID {
	cfg := w.cfg
	startX := -cfg.ObstacleWidth / 2
	endX := cfg.PlayfieldWidth + cfg.ObstacleWidth/2
	if dir == components.DirectionLeft {
		startX, endX = endX, startX
	}

	id := w.em.CreateEntity()
	ecs.AddComponent(w.em, id, &components.ObstacleComponent{
		Direction: dir,
		Speed:     cfg.ObstacleSpeed,
		StartX:    startX,
		EndX:      endX,
		SpawnTime: spawnTime,
		Duration:  cfg.ObstacleDuration(),
		Width:     cfg.ObstacleWidth,
		Height:    cfg.ObstacleHeight,
	})
	ecs.AddComponent(w.em, id, &components.PositionComponent{X: x, Y: centerY})
	ecs.AddComponent(w.em, id, &components.CollisionComponent{
		Width:  cfg.ObstacleWidth * cfg.HitboxScale,
		Height: cfg.ObstacleHeight * cfg.HitboxScale,
	})
	return id
}

// obstacleIDs 返回所有存活车辆
func obstacleIDs(em *ecs.EntityManager) []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ObstacleComponent](em)
}

func floatPtr(v float64) *float64 {
	return &v
}
