package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/game"
	"github.com/decker502/crazyroad/pkg/utils"
)

// MenuScene 标题菜单
// Enter/Space 或点击上半屏开始，点击下半屏或按 T 查看成绩
type MenuScene struct {
	services *Services
	best     float64
	hasBest  bool
}

// NewMenuScene 创建菜单场景
func NewMenuScene(services *Services) *MenuScene {
	s := &MenuScene{services: services}
	if services.Results != nil {
		if results := services.Results.Results(); len(results) > 0 {
			s.best = results[0].ElapsedTime
			s.hasBest = true
		}
	}
	return s
}

// Update 处理菜单输入
func (s *MenuScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.services.SceneManager.Load(game.SceneRoad)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.services.SceneManager.Load(game.SceneResults)
		return
	}

	if pressed, _, y := utils.IsJustTouchedOrClicked(); pressed {
		s.services.SceneManager.Load(menuTarget(y, config.GameWindowHeight))
	}
}

// menuTarget 点击上半屏开始游戏，下半屏进入成绩表
func menuTarget(y, screenHeight int) game.SceneID {
	if y < screenHeight*2/3 {
		return game.SceneRoad
	}
	return game.SceneResults
}

// Draw 绘制菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	drawRect(screen, 0, float64(config.GameWindowHeight)*2/3, config.GameWindowWidth, 1, colorLaneMark)

	x := config.HUDPadding * 3
	y := config.GameWindowHeight / 3
	ebitenutil.DebugPrintAt(screen, "CRAZY ROAD", x, y)
	if s.hasBest {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Best: %.1fs", s.best), x, y+30)
	}

	if utils.IsMobile() {
		ebitenutil.DebugPrintAt(screen, "Tap to start", x, y+70)
		ebitenutil.DebugPrintAt(screen, "Tap here for results", x, config.GameWindowHeight*2/3+30)
		return
	}
	ebitenutil.DebugPrintAt(screen, "Enter: start", x, y+70)
	ebitenutil.DebugPrintAt(screen, "T: results", x, y+90)
	ebitenutil.DebugPrintAt(screen, "Up/W/Space: forward   Down/S: back", x, y+130)
	ebitenutil.DebugPrintAt(screen, "H: hitboxes   F11: fullscreen", x, y+150)
}
