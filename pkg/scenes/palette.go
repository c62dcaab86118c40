package scenes

import (
	"image/color"

	"github.com/decker502/crazyroad/pkg/components"
)

// 颜色表
var (
	colorBackground  = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	colorSafeLane    = color.RGBA{R: 92, G: 156, B: 76, A: 255}
	colorTrafficLane = color.RGBA{R: 58, G: 58, B: 64, A: 255}
	colorLaneMark    = color.RGBA{R: 220, G: 220, B: 200, A: 255}
	colorPlayer      = color.RGBA{R: 250, G: 210, B: 60, A: 255}
	colorPlayerDead  = color.RGBA{R: 140, G: 120, B: 60, A: 255}
	colorHitbox      = color.RGBA{R: 255, G: 0, B: 0, A: 160}
	colorOverlay     = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	colorHighlight   = color.RGBA{R: 250, G: 210, B: 60, A: 90}
	colorRowAlt      = color.RGBA{R: 255, G: 255, B: 255, A: 18}
)

// obstacleColors 车辆外观编号对应的颜色
var obstacleColors = []color.RGBA{
	{R: 214, G: 69, B: 65, A: 255},
	{R: 66, G: 133, B: 244, A: 255},
	{R: 244, G: 160, B: 0, A: 255},
	{R: 155, G: 89, B: 182, A: 255},
	{R: 236, G: 240, B: 241, A: 255},
}

// variantColor 返回车辆外观颜色，超出范围的编号循环使用
func variantColor(variant int) color.RGBA {
	if variant < 0 {
		variant = -variant
	}
	return obstacleColors[variant%len(obstacleColors)]
}

// laneColor 返回车道底色
func laneColor(kind components.LaneKind) color.RGBA {
	if kind == components.LaneTraffic {
		return colorTrafficLane
	}
	return colorSafeLane
}
