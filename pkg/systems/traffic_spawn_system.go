package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
)

const trafficSpawnTimerName = "traffic_spawn"

// SpawnSlot 一个可用的出生位置：某条车流车道的某一侧
type SpawnSlot struct {
	LaneIndex int
	CenterY   float64
	Direction components.Direction // 出生后行驶方向；Right 表示从左侧出发
}

// TrafficSpawnSystem 车流生成系统
//
// 每隔 spawnInterval 秒尝试生成一辆车：
//  1. 枚举所有存活的车流车道
//  2. 按位置匹配车道上的车，判断左右两个出生侧是否空闲
//  3. 在所有空闲的 (车道, 出生侧) 中均匀随机选一个
//  4. 没有空闲位置时本轮跳过（不是错误）
//
// 出生侧被占用的条件：
//   - 车道上已有同方向行驶的车
//   - 反方向的车距离出生侧屏幕边缘不到 spawnSafetyMargin（即将驶出）
type TrafficSpawnSystem struct {
	entityManager *ecs.EntityManager
	clock         *RunClockSystem
	rng           *rand.Rand
	timerEntity   ecs.EntityID

	playfieldWidth float64
	obstacleWidth  float64
	obstacleHeight float64
	speed          float64
	duration       float64
	variants       int
	safetyMargin   float64
	matchTolerance float64
	hitboxScale    float64
}

// NewTrafficSpawnSystem 创建车流生成系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 道路参数
//   - clock: 运行时钟，用作车辆的出生时间
//   - rng: 随机源（测试中注入固定种子）
func NewTrafficSpawnSystem(em *ecs.EntityManager, cfg *config.RoadConfig, clock *RunClockSystem, rng *rand.Rand) *TrafficSpawnSystem {
	s := &TrafficSpawnSystem{
		entityManager:  em,
		clock:          clock,
		rng:            rng,
		playfieldWidth: cfg.PlayfieldWidth,
		obstacleWidth:  cfg.ObstacleWidth,
		obstacleHeight: cfg.ObstacleHeight,
		speed:          cfg.ObstacleSpeed,
		duration:       cfg.ObstacleDuration(),
		variants:       cfg.ObstacleVariants,
		safetyMargin:   cfg.SpawnSafetyMargin,
		matchTolerance: cfg.LaneMatchTolerance,
		hitboxScale:    cfg.HitboxScale,
	}

	s.timerEntity = em.CreateEntity()
	ecs.AddComponent(em, s.timerEntity, &components.TimerComponent{
		Name:       trafficSpawnTimerName,
		TargetTime: cfg.SpawnInterval,
	})

	return s
}

// Update 推进生成计时器，到点时尝试生成一辆车
func (s *TrafficSpawnSystem) Update(deltaTime float64) {
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, s.timerEntity)
	if !ok {
		return
	}

	timer.CurrentTime += deltaTime
	if timer.CurrentTime < timer.TargetTime {
		return
	}
	timer.CurrentTime -= timer.TargetTime

	s.TrySpawn()
}

// AvailableSlots 返回当前所有空闲的出生位置
func (s *TrafficSpawnSystem) AvailableSlots() []SpawnSlot {
	slots := make([]SpawnSlot, 0)

	for _, laneID := range ecs.GetEntitiesWith1[*components.LaneComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(laneID) {
			continue
		}
		lane, _ := ecs.GetComponent[*components.LaneComponent](s.entityManager, laneID)
		if lane.Kind != components.LaneTraffic {
			continue
		}

		centerY := lane.CenterY()
		rightFree, leftFree := s.freeSides(centerY)

		if rightFree {
			slots = append(slots, SpawnSlot{LaneIndex: lane.Index, CenterY: centerY, Direction: components.DirectionRight})
		}
		if leftFree {
			slots = append(slots, SpawnSlot{LaneIndex: lane.Index, CenterY: centerY, Direction: components.DirectionLeft})
		}
	}

	return slots
}

// freeSides 判断车道两侧出生点是否空闲
// 返回值: (从左侧出发向右是否空闲, 从右侧出发向左是否空闲)
func (s *TrafficSpawnSystem) freeSides(laneCenterY float64) (bool, bool) {
	rightFree, leftFree := true, true

	for _, id := range obstaclesInLane(s.entityManager, laneCenterY, s.matchTolerance) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		switch obstacle.Direction {
		case components.DirectionRight:
			rightFree = false
			// 向右的车快到右侧出生点了
			if pos.X > s.playfieldWidth-s.safetyMargin {
				leftFree = false
			}
		case components.DirectionLeft:
			leftFree = false
			// 向左的车快到左侧出生点了
			if pos.X < s.safetyMargin {
				rightFree = false
			}
		}
	}

	return rightFree, leftFree
}

// TrySpawn 尝试生成一辆车
// 返回是否生成成功；没有空闲位置时返回 false
func (s *TrafficSpawnSystem) TrySpawn() bool {
	slots := s.AvailableSlots()
	if len(slots) == 0 {
		return false
	}

	slot := slots[s.rng.Intn(len(slots))]
	s.spawn(slot)
	return true
}

// spawn 在指定出生位置创建车辆
func (s *TrafficSpawnSystem) spawn(slot SpawnSlot) ecs.EntityID {
	// 车辆中心从屏幕外半个车身处出发，行驶到另一侧屏幕外半个车身处，
	// 总路程 = 场地宽度 + 车宽
	startX := -s.obstacleWidth / 2
	endX := s.playfieldWidth + s.obstacleWidth/2
	if slot.Direction == components.DirectionLeft {
		startX, endX = endX, startX
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.ObstacleComponent{
		LaneIndex: slot.LaneIndex,
		Direction: slot.Direction,
		Speed:     s.speed,
		StartX:    startX,
		EndX:      endX,
		SpawnTime: s.clock.Elapsed(),
		Duration:  s.duration,
		Width:     s.obstacleWidth,
		Height:    s.obstacleHeight,
		Variant:   s.rng.Intn(s.variants),
	})
	ecs.AddComponent(s.entityManager, id, &components.PositionComponent{
		X: startX,
		Y: slot.CenterY,
	})
	ecs.AddComponent(s.entityManager, id, &components.CollisionComponent{
		Width:  s.obstacleWidth * s.hitboxScale,
		Height: s.obstacleHeight * s.hitboxScale,
	})

	log.Printf("[TrafficSpawnSystem] Spawned obstacle %d: lane=%d, direction=%s, t=%.2f",
		id, slot.LaneIndex, slot.Direction, s.clock.Elapsed())

	return id
}
