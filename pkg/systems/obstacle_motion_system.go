package systems

import (
	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/ecs"
)

// ObstacleMotionSystem 车辆匀速穿越场地
//
// 位置由运行时钟推导而不是逐帧累加，帧率波动不会改变穿越时长。
// 到达或越过对侧终点的车辆在同一 tick 内被移除。
type ObstacleMotionSystem struct {
	entityManager *ecs.EntityManager
	clock         *RunClockSystem
}

// NewObstacleMotionSystem 创建车辆移动系统
func NewObstacleMotionSystem(em *ecs.EntityManager, clock *RunClockSystem) *ObstacleMotionSystem {
	return &ObstacleMotionSystem{
		entityManager: em,
		clock:         clock,
	}
}

// Update 更新所有车辆位置
// 参数 deltaTime 不参与计算，位置只取决于时钟
func (s *ObstacleMotionSystem) Update(deltaTime float64) {
	now := s.clock.Elapsed()

	entities := ecs.GetEntitiesWith2[*components.ObstacleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		age := now - obstacle.SpawnTime
		if age >= obstacle.Duration {
			pos.X = obstacle.EndX
			s.entityManager.DestroyEntity(id)
			continue
		}
		if age < 0 {
			age = 0
		}
		pos.X = obstacle.StartX + obstacle.Direction.Sign()*obstacle.Speed*age
	}
}

// Count 返回当前存活的车辆数量
func (s *ObstacleMotionSystem) Count() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestroy(id) {
			count++
		}
	}
	return count
}
