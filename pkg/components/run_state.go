package components

// RunPhase 单局状态
type RunPhase int

const (
	// RunRunning 进行中
	RunRunning RunPhase = iota
	// RunEndedCollision 被车撞到
	RunEndedCollision
	// RunEndedFellBehind 被镜头甩在后面
	RunEndedFellBehind
)

// String 返回状态名称
func (p RunPhase) String() string {
	switch p {
	case RunRunning:
		return "running"
	case RunEndedCollision:
		return "collision"
	case RunEndedFellBehind:
		return "fell_behind"
	default:
		return "unknown"
	}
}

// IsEnded 是否已结束
func (p RunPhase) IsEnded() bool {
	return p != RunRunning
}

// RunStateComponent 本局状态和运行时钟
// 进入结束状态后不再有任何系统修改它
type RunStateComponent struct {
	Phase   RunPhase
	Elapsed float64 // 累积存活时间（秒）
}
