package utils

// Rect 轴对齐矩形，以中心点和尺寸描述
type Rect struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// Left 返回左边界
func (r Rect) Left() float64 { return r.CenterX - r.Width/2 }

// Right 返回右边界
func (r Rect) Right() float64 { return r.CenterX + r.Width/2 }

// Bottom 返回下边界（Y 轴向上）
func (r Rect) Bottom() float64 { return r.CenterY - r.Height/2 }

// Top 返回上边界（Y 轴向上）
func (r Rect) Top() float64 { return r.CenterY + r.Height/2 }

// Overlaps 检查两个矩形是否重叠
// 仅接触边缘不算重叠，保持判定对玩家宽容
func (r Rect) Overlaps(o Rect) bool {
	return r.Right() > o.Left() &&
		r.Left() < o.Right() &&
		r.Top() > o.Bottom() &&
		r.Bottom() < o.Top()
}
