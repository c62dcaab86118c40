package config

// 窗口布局常量
// 逻辑分辨率与默认场地尺寸一致，Ebitengine 负责缩放到实际窗口
const (
	// GameWindowWidth 逻辑窗口宽度
	GameWindowWidth = 390

	// GameWindowHeight 逻辑窗口高度
	GameWindowHeight = 844

	// HUDPadding HUD 文字距窗口边缘的距离
	HUDPadding = 12

	// ResultsRowHeight 成绩列表每行高度（与原版列表行高一致）
	ResultsRowHeight = 60

	// SwipeMinDistance 触摸下滑判定的最小距离
	SwipeMinDistance = 40
)
