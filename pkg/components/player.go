package components

// PlayerComponent 玩家状态
//
// 实际显示位置保存在 PositionComponent.Y（插值后的当前位置），
// TargetY 是按车道量化后的落脚点。
type PlayerComponent struct {
	TargetY float64 // 落脚点（车道中心线）
	Width   float64 // 视觉宽度
	Height  float64 // 视觉高度
	Alive   bool    // 存活标记，只能从 true 变为 false
}

// JumpComponent 玩家跳跃动画（两段式：起跳 → 落地）
//
// 纯表现用途，决策逻辑只依赖 PlayerComponent.TargetY；
// 但碰撞和掉队判定使用插值后的当前位置。
type JumpComponent struct {
	StartY        float64 // 起跳位置（发起移动时的插值位置）
	PeakY         float64 // 第一段终点
	TargetY       float64 // 第二段终点（落脚点）
	PhaseDuration float64 // 每段时长（秒）
	Elapsed       float64 // 已进行时间（秒）
	IsActive      bool    // 是否正在跳跃
}
