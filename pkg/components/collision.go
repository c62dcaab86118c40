package components

// CollisionComponent 定义实体的碰撞检测边界框
// 以实体位置为中心；尺寸已按 hitboxScale 缩小，边缘擦碰不算碰撞
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}
