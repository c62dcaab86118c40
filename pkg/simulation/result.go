package simulation

import (
	"time"

	"github.com/google/uuid"

	"github.com/decker502/crazyroad/pkg/components"
)

// RunResult 一局的最终成绩，每局只产生一次，产生后不再变化
type RunResult struct {
	ID          uuid.UUID           `yaml:"id"`
	ElapsedTime float64             `yaml:"elapsedTime"` // 存活时间（秒）
	Timestamp   time.Time           `yaml:"timestamp"`   // 本局结束的墙钟时间
	Cause       components.RunPhase `yaml:"cause"`
}

// TickEvents Advance 的返回值
type TickEvents struct {
	Elapsed    float64
	Ended      bool
	Calibrated bool       // 本次调用只记录了时间，没有推进模拟
	Result     *RunResult // 只在交付成绩的那一次调用中非空
}

// MoveDirection 玩家移动方向
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)

func (d MoveDirection) String() string {
	if d == MoveDown {
		return "down"
	}
	return "up"
}

// LaneView 渲染用的车道快照
type LaneView struct {
	Index  int
	Kind   components.LaneKind
	Y      float64
	Height float64
}

// ObstacleView 渲染用的车辆快照
type ObstacleView struct {
	X, Y          float64
	Width, Height float64
	HitboxWidth   float64
	HitboxHeight  float64
	Direction     components.Direction
	Variant       int
}

// PlayerView 渲染用的玩家快照
type PlayerView struct {
	X, Y          float64
	TargetY       float64
	Row           int
	Width, Height float64
	HitboxWidth   float64
	HitboxHeight  float64
	Alive         bool
	Jumping       bool
}
