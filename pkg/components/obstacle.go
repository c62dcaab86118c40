package components

// Direction 车辆行驶方向
type Direction int

const (
	// DirectionRight 从左侧出发向右行驶
	DirectionRight Direction = iota
	// DirectionLeft 从右侧出发向左行驶
	DirectionLeft
)

// String 返回方向名称
func (d Direction) String() string {
	if d == DirectionLeft {
		return "left"
	}
	return "right"
}

// Sign 返回方向在 X 轴上的符号（右 +1，左 -1）
func (d Direction) Sign() float64 {
	if d == DirectionLeft {
		return -1
	}
	return 1
}

// Opposite 返回相反方向
func (d Direction) Opposite() Direction {
	if d == DirectionLeft {
		return DirectionRight
	}
	return DirectionLeft
}

// ObstacleComponent 车辆组件
//
// 车辆的 X 坐标完全由运行时钟推导：
//
//	X = StartX + Sign * Speed * (clock - SpawnTime)
//
// 不做逐帧累加，帧率变化不会影响穿越时长。
type ObstacleComponent struct {
	LaneIndex int       // 生成时所在车道编号（仅用于展示，查询一律按位置匹配）
	Direction Direction // 行驶方向
	Speed     float64   // 速度（像素/秒）
	StartX    float64   // 起点中心 X（屏幕外）
	EndX      float64   // 终点中心 X（屏幕外，另一侧）
	SpawnTime float64   // 生成时的运行时钟（秒）
	Duration  float64   // 穿越时长 = (场地宽度 + 车宽) / 速度
	Width     float64   // 视觉宽度
	Height    float64   // 视觉高度
	Variant   int       // 外观编号，由表现层映射到具体皮肤
}
