package systems

import (
	"math"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
	"github.com/decker502/crazyroad/pkg/utils"
)

// floorEpsilon 比较落脚点与最低行时的浮点容差
const floorEpsilon = 1e-9

// PlayerMotionSystem 玩家状态与跳跃动画
//
// 落脚点按车道量化，每次移动恰好改变一个车道高度。
// 移动不排队：跳跃途中再次移动，会从当前插值位置重新开始一段新的跳跃。
type PlayerMotionSystem struct {
	entityManager *ecs.EntityManager
	playerEntity  ecs.EntityID

	laneHeight    float64
	jumpPhase     float64
	jumpOvershoot float64
}

// NewPlayerMotionSystem 创建玩家系统，玩家站在第 0 条车道中心
func NewPlayerMotionSystem(em *ecs.EntityManager, cfg *config.RoadConfig) *PlayerMotionSystem {
	s := &PlayerMotionSystem{
		entityManager: em,
		laneHeight:    cfg.LaneHeight,
		jumpPhase:     cfg.JumpPhase,
		jumpOvershoot: cfg.JumpOvershoot,
	}

	startY := cfg.PlayerStartY()
	s.playerEntity = em.CreateEntity()
	ecs.AddComponent(em, s.playerEntity, &components.PlayerComponent{
		TargetY: startY,
		Width:   cfg.PlayerWidth,
		Height:  cfg.PlayerHeight,
		Alive:   true,
	})
	ecs.AddComponent(em, s.playerEntity, &components.PositionComponent{
		X: cfg.PlayfieldWidth / 2,
		Y: startY,
	})
	ecs.AddComponent(em, s.playerEntity, &components.CollisionComponent{
		Width:  cfg.PlayerWidth * cfg.HitboxScale,
		Height: cfg.PlayerHeight * cfg.HitboxScale,
	})
	ecs.AddComponent(em, s.playerEntity, &components.JumpComponent{
		PhaseDuration: cfg.JumpPhase,
	})

	return s
}

// MoveUp 向前跳一个车道，总是成功（玩家已死亡时除外）
func (s *PlayerMotionSystem) MoveUp() bool {
	player, pos, jump, ok := s.parts()
	if !ok || !player.Alive {
		return false
	}

	player.TargetY += s.laneHeight
	s.startJump(jump, pos.Y, pos.Y+s.laneHeight/2+s.jumpOvershoot, player.TargetY)
	return true
}

// MoveDown 向后退一个车道
// 落脚点会低于第 0 条车道中心时拒绝移动，不启动任何动画
func (s *PlayerMotionSystem) MoveDown() bool {
	player, pos, jump, ok := s.parts()
	if !ok || !player.Alive {
		return false
	}

	newTarget := player.TargetY - s.laneHeight
	if newTarget < s.laneHeight/2-floorEpsilon {
		return false
	}

	player.TargetY = newTarget
	s.startJump(jump, pos.Y, pos.Y-s.laneHeight/2-s.jumpOvershoot, player.TargetY)
	return true
}

// startJump 从当前位置开始一段新的两段式跳跃
func (s *PlayerMotionSystem) startJump(jump *components.JumpComponent, startY, peakY, targetY float64) {
	jump.StartY = startY
	jump.PeakY = peakY
	jump.TargetY = targetY
	jump.PhaseDuration = s.jumpPhase
	jump.Elapsed = 0
	jump.IsActive = true
}

// Update 推进跳跃动画
// 第一段 EaseOut 冲到 PeakY，第二段 EaseIn 落到 TargetY
func (s *PlayerMotionSystem) Update(deltaTime float64) {
	player, pos, jump, ok := s.parts()
	if !ok || !player.Alive || !jump.IsActive {
		return
	}

	jump.Elapsed += deltaTime
	phase := jump.PhaseDuration

	switch {
	case jump.Elapsed < phase:
		t := utils.Clamp01(jump.Elapsed / phase)
		pos.Y = utils.Lerp(jump.StartY, jump.PeakY, utils.EaseOutQuad(t))
	case jump.Elapsed < 2*phase:
		t := utils.Clamp01((jump.Elapsed - phase) / phase)
		pos.Y = utils.Lerp(jump.PeakY, jump.TargetY, utils.EaseInQuad(t))
	default:
		pos.Y = jump.TargetY
		jump.IsActive = false
	}
}

// Kill 标记玩家死亡（不可恢复）
func (s *PlayerMotionSystem) Kill() {
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerEntity); ok {
		player.Alive = false
	}
}

// Alive 玩家是否存活
func (s *PlayerMotionSystem) Alive() bool {
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerEntity)
	return ok && player.Alive
}

// Position 返回玩家当前（插值后）位置
func (s *PlayerMotionSystem) Position() (float64, float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.playerEntity)
	if !ok {
		return 0, 0
	}
	return pos.X, pos.Y
}

// TargetY 返回玩家落脚点
func (s *PlayerMotionSystem) TargetY() float64 {
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerEntity)
	if !ok {
		return 0
	}
	return player.TargetY
}

// Row 返回落脚点所在的车道编号
func (s *PlayerMotionSystem) Row() int {
	return int(math.Round((s.TargetY() - s.laneHeight/2) / s.laneHeight))
}

// IsJumping 是否正在跳跃
func (s *PlayerMotionSystem) IsJumping() bool {
	jump, ok := ecs.GetComponent[*components.JumpComponent](s.entityManager, s.playerEntity)
	return ok && jump.IsActive
}

// Entity 返回玩家实体ID
func (s *PlayerMotionSystem) Entity() ecs.EntityID {
	return s.playerEntity
}

func (s *PlayerMotionSystem) parts() (*components.PlayerComponent, *components.PositionComponent, *components.JumpComponent, bool) {
	player, ok1 := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerEntity)
	pos, ok2 := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.playerEntity)
	jump, ok3 := ecs.GetComponent[*components.JumpComponent](s.entityManager, s.playerEntity)
	return player, pos, jump, ok1 && ok2 && ok3
}
