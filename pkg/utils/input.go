// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// Gesture 一次按下到抬起之间的手势
type Gesture int

const (
	// GestureNone 没有完成的手势
	GestureNone Gesture = iota
	// GestureTap 轻点
	GestureTap
	// GestureSwipeDown 向下滑动（屏幕坐标 y 增大）
	GestureSwipeDown
	// GestureSwipeUp 向上滑动
	GestureSwipeUp
)

// ClassifyGesture 根据起止位移判断手势
// 纵向位移不小于 minDistance 且大于横向位移时为滑动，否则为轻点
func ClassifyGesture(dx, dy, minDistance int) Gesture {
	adx, ady := abs(dx), abs(dy)
	if ady >= minDistance && ady > adx {
		if dy > 0 {
			return GestureSwipeDown
		}
		return GestureSwipeUp
	}
	return GestureTap
}

// GestureTracker 跟踪一次触摸或鼠标拖动，在抬起的那一帧给出手势
type GestureTracker struct {
	minDistance int

	active   bool
	touch    bool
	touchID  ebiten.TouchID
	startX   int
	startY   int
	currentX int
	currentY int
}

// NewGestureTracker 创建手势跟踪器
func NewGestureTracker(minDistance int) *GestureTracker {
	return &GestureTracker{minDistance: minDistance}
}

// Update 每帧调用一次，手势完成的那一帧返回手势类型
func (g *GestureTracker) Update() Gesture {
	if !g.active {
		g.begin()
		return GestureNone
	}

	if g.touch {
		if !touchActive(g.touchID) {
			return g.end()
		}
		g.currentX, g.currentY = ebiten.TouchPosition(g.touchID)
		return GestureNone
	}

	g.currentX, g.currentY = ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return g.end()
	}
	return GestureNone
}

// Reset 放弃正在跟踪的手势
func (g *GestureTracker) Reset() {
	g.active = false
}

func (g *GestureTracker) begin() {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		g.start(x, y)
		g.touch = true
		g.touchID = ids[0]
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.start(x, y)
		g.touch = false
	}
}

func (g *GestureTracker) start(x, y int) {
	g.active = true
	g.startX, g.startY = x, y
	g.currentX, g.currentY = x, y
}

func (g *GestureTracker) end() Gesture {
	g.active = false
	return ClassifyGesture(g.currentX-g.startX, g.currentY-g.startY, g.minDistance)
}

// touchActive 触摸点是否仍然按下
func touchActive(id ebiten.TouchID) bool {
	for _, current := range ebiten.AppendTouchIDs(nil) {
		if current == id {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
