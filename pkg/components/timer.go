package components

// TimerComponent 通用计时器组件
// 用于在单个 tick 内做节流判定（如生成车辆、回收车道）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "traffic_spawn"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
}
