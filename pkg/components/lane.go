package components

// LaneKind 车道类型
type LaneKind int

const (
	// LaneSafe 安全车道（草地），不会生成车辆
	LaneSafe LaneKind = iota
	// LaneTraffic 车流车道（公路），定期生成车辆
	LaneTraffic
)

// String 返回车道类型名称
func (k LaneKind) String() string {
	switch k {
	case LaneSafe:
		return "safe"
	case LaneTraffic:
		return "traffic"
	default:
		return "unknown"
	}
}

// LaneKindForIndex 根据车道编号奇偶性返回车道类型
// 偶数为安全车道，奇数为车流车道
func LaneKindForIndex(index int) LaneKind {
	if index%2 == 0 {
		return LaneSafe
	}
	return LaneTraffic
}

// LaneComponent 车道组件
//
// 车道创建后不可修改，只能被回收。
// Y 为车道下边缘（世界坐标，向上为正），车道覆盖 [Y, Y+Height)。
type LaneComponent struct {
	Index  int      // 车道编号，严格递增且无间隔
	Kind   LaneKind // 车道类型
	Y      float64  // 下边缘 = Index * Height
	Height float64  // 车道高度
}

// Top 返回车道上边缘
func (l *LaneComponent) Top() float64 {
	return l.Y + l.Height
}

// CenterY 返回车道中心线
func (l *LaneComponent) CenterY() float64 {
	return l.Y + l.Height/2
}

// Contains 判断纵坐标是否落在车道范围内
func (l *LaneComponent) Contains(y float64) bool {
	return y >= l.Y && y < l.Y+l.Height
}
