package components

// CameraComponent 追击镜头状态。
// Y 是可见窗口的中心，只随时间单调增加，与玩家操作无关。
type CameraComponent struct {
	// Y 镜头中心（世界坐标）
	Y float64

	// Speed 上升速度（像素/秒）
	Speed float64

	// Halted 本局结束后镜头永久停止
	Halted bool
}
