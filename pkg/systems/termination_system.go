package systems

import (
	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
	"github.com/decker502/crazyroad/pkg/utils"
)

// TerminationSystem 碰撞与结束判定
//
// 状态机只有一个非终态（进行中）和两个终态：
//   - 被车撞到：玩家碰撞盒与任一车辆碰撞盒重叠
//   - 掉队：玩家位置低于镜头下边缘超过 fallTolerance
//
// 同一次判定中先检查碰撞。进入终态后冻结玩家、镜头和时钟，之后的判定都是空操作。
type TerminationSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraPursuitSystem
	player        *PlayerMotionSystem
	clock         *RunClockSystem
	fallTolerance float64
}

// NewTerminationSystem 创建结束判定系统
func NewTerminationSystem(em *ecs.EntityManager, cfg *config.RoadConfig, camera *CameraPursuitSystem, player *PlayerMotionSystem, clock *RunClockSystem) *TerminationSystem {
	return &TerminationSystem{
		entityManager: em,
		camera:        camera,
		player:        player,
		clock:         clock,
		fallTolerance: cfg.FallTolerance,
	}
}

// Update 每 tick 判定一次
func (s *TerminationSystem) Update(deltaTime float64) {
	s.Evaluate()
}

// Evaluate 执行一次判定
// 返回值为 true 表示本次调用让本局结束
func (s *TerminationSystem) Evaluate() bool {
	if s.clock.IsEnded() {
		return false
	}

	var cause components.RunPhase
	switch {
	case s.CheckCollision():
		cause = components.RunEndedCollision
	case s.CheckFellBehind():
		cause = components.RunEndedFellBehind
	default:
		return false
	}

	if !s.clock.End(cause) {
		return false
	}
	s.player.Kill()
	s.camera.Halt()
	return true
}

// CheckCollision 检查玩家是否与任一车辆重叠
func (s *TerminationSystem) CheckCollision() bool {
	playerBox, ok := s.hitbox(s.player.Entity())
	if !ok {
		return false
	}

	entities := ecs.GetEntitiesWith3[
		*components.ObstacleComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		box, _ := s.hitbox(id)
		if playerBox.Overlaps(box) {
			return true
		}
	}
	return false
}

// CheckFellBehind 检查玩家是否被镜头甩在后面
func (s *TerminationSystem) CheckFellBehind() bool {
	_, y := s.player.Position()
	return y < s.camera.Bottom()-s.fallTolerance
}

// hitbox 返回实体的碰撞盒（以位置为中心）
func (s *TerminationSystem) hitbox(id ecs.EntityID) (utils.Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return utils.Rect{}, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
	if !ok {
		return utils.Rect{}, false
	}
	return utils.Rect{CenterX: pos.X, CenterY: pos.Y, Width: col.Width, Height: col.Height}, true
}
