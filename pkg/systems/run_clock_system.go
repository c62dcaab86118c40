package systems

import (
	"log"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/ecs"
)

// RunClockSystem 运行时钟
//
// 累积本局存活时间，供 HUD 每帧读取，也是车辆位置和最终成绩的时间基准。
// 本局结束后时钟冻结。
type RunClockSystem struct {
	entityManager *ecs.EntityManager
	runEntity     ecs.EntityID
}

// NewRunClockSystem 创建运行时钟系统，并创建本局状态实体
func NewRunClockSystem(em *ecs.EntityManager) *RunClockSystem {
	s := &RunClockSystem{
		entityManager: em,
	}

	s.runEntity = em.CreateEntity()
	ecs.AddComponent(em, s.runEntity, &components.RunStateComponent{
		Phase:   components.RunRunning,
		Elapsed: 0,
	})

	return s
}

// Update 累积运行时间
func (s *RunClockSystem) Update(deltaTime float64) {
	state := s.state()
	if state == nil || state.Phase.IsEnded() {
		return
	}
	state.Elapsed += deltaTime
}

// Elapsed 返回累积存活时间（秒）
func (s *RunClockSystem) Elapsed() float64 {
	if state := s.state(); state != nil {
		return state.Elapsed
	}
	return 0
}

// Phase 返回本局状态
func (s *RunClockSystem) Phase() components.RunPhase {
	if state := s.state(); state != nil {
		return state.Phase
	}
	return components.RunRunning
}

// IsEnded 本局是否已结束
func (s *RunClockSystem) IsEnded() bool {
	return s.Phase().IsEnded()
}

// End 将本局切换到结束状态
//
// 只有第一次调用生效，返回 true；之后的调用返回 false。
func (s *RunClockSystem) End(phase components.RunPhase) bool {
	state := s.state()
	if state == nil || state.Phase.IsEnded() || !phase.IsEnded() {
		return false
	}
	state.Phase = phase
	log.Printf("[RunClockSystem] Run ended: cause=%s, elapsed=%.2fs", phase, state.Elapsed)
	return true
}

func (s *RunClockSystem) state() *components.RunStateComponent {
	state, ok := ecs.GetComponent[*components.RunStateComponent](s.entityManager, s.runEntity)
	if !ok {
		return nil
	}
	return state
}
