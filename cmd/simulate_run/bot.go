package main

import (
	"math"

	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/simulation"
)

// bot 简单的贪心玩家：前方车道安全就前进，当前车道危险就后退
type bot struct {
	laneHeight     float64
	obstacleSpeed  float64
	matchTolerance float64
	reaction       float64 // 一次跳跃所需时间，期间不能被车撞到
	aheadLimit     float64 // 超过镜头中心多少后不再前进
}

func newBot(cfg *config.RoadConfig) *bot {
	return &bot{
		laneHeight:     cfg.LaneHeight,
		obstacleSpeed:  cfg.ObstacleSpeed,
		matchTolerance: cfg.LaneMatchTolerance,
		reaction:       2*cfg.JumpPhase + 0.1,
		aheadLimit:     cfg.PlayfieldHeight / 4,
	}
}

// decide 返回本 tick 要执行的移动
func (b *bot) decide(sim *simulation.Simulation) (simulation.MoveDirection, bool) {
	p := sim.Player()
	if p.Jumping || !p.Alive {
		return simulation.MoveUp, false
	}

	obstacles := sim.Obstacles()
	ahead := p.TargetY + b.laneHeight
	if p.TargetY < sim.CameraY()+b.aheadLimit && b.laneSafe(obstacles, p, ahead) {
		return simulation.MoveUp, true
	}

	if !b.laneSafe(obstacles, p, p.TargetY) {
		behind := p.TargetY - b.laneHeight
		if behind >= b.laneHeight/2 && b.laneSafe(obstacles, p, behind) {
			return simulation.MoveDown, true
		}
	}
	return simulation.MoveUp, false
}

// laneSafe 在 reaction 时间内车道中心 laneY 上没有车经过玩家所在的横向范围
func (b *bot) laneSafe(obstacles []simulation.ObstacleView, p simulation.PlayerView, laneY float64) bool {
	for _, o := range obstacles {
		if math.Abs(o.Y-laneY) >= b.matchTolerance {
			continue
		}
		if b.threatens(o, p) {
			return false
		}
	}
	return true
}

// threatens 车辆在 reaction 时间内是否会与玩家横向重叠
func (b *bot) threatens(o simulation.ObstacleView, p simulation.PlayerView) bool {
	reach := (o.HitboxWidth + p.HitboxWidth) / 2
	travel := b.obstacleSpeed * b.reaction * o.Direction.Sign()

	// 本段时间内车辆中心扫过的区间
	from, to := o.X, o.X+travel
	if from > to {
		from, to = to, from
	}
	return to > p.X-reach && from < p.X+reach
}
