package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/game"
	"github.com/decker502/crazyroad/pkg/simulation"
	"github.com/decker502/crazyroad/pkg/utils"
)

// RoadScene 进行中的一局
//
// 场景只负责把宿主时间和输入转交给模拟，再按查询结果绘制画面。
// 本局结束后显示结算浮层，R 或轻点重新开始，Esc 返回菜单。
type RoadScene struct {
	services *Services
	sim      *simulation.Simulation
	gestures *utils.GestureTracker

	hostTime float64 // 传给 Advance 的单调时间
	result   *simulation.RunResult
	rank     int
}

// NewRoadScene 创建一局新的游戏
func NewRoadScene(services *Services) (*RoadScene, error) {
	s := &RoadScene{
		services: services,
		gestures: utils.NewGestureTracker(config.SwipeMinDistance),
	}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// restart 丢弃当前模拟，开始新的一局
func (s *RoadScene) restart() error {
	sim, err := simulation.NewSimulation(s.services.RoadConfig, nil)
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	s.sim = sim
	s.hostTime = 0
	s.result = nil
	s.rank = 0
	s.gestures.Reset()
	log.Printf("[RoadScene] Run started")
	return nil
}

// Update 处理输入并推进模拟
func (s *RoadScene) Update(deltaTime float64) {
	// 窗口失去焦点视为暂停，恢复后的第一帧重新校准
	if !ebiten.IsFocused() {
		s.sim.Recalibrate()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) && s.services.Settings != nil {
		s.services.Settings.ToggleHitboxes()
	}

	if s.result != nil {
		s.handleGameOverInput()
		return
	}

	s.handleInput()
	s.tick(deltaTime)
}

// handleInput 键盘与触摸输入
func (s *RoadScene) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp),
		inpututil.IsKeyJustPressed(ebiten.KeyW),
		inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.sim.RequestMove(simulation.MoveUp)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown),
		inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.sim.RequestMove(simulation.MoveDown)
	}

	switch s.gestures.Update() {
	case utils.GestureTap, utils.GestureSwipeUp:
		s.sim.RequestMove(simulation.MoveUp)
	case utils.GestureSwipeDown:
		s.sim.RequestMove(simulation.MoveDown)
	}
}

func (s *RoadScene) handleGameOverInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.services.SceneManager.Load(game.SceneMenu)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || s.gestures.Update() == utils.GestureTap {
		if err := s.restart(); err != nil {
			log.Printf("[RoadScene] %v", err)
		}
	}
}

// tick 推进宿主时间并处理本帧的结束事件
func (s *RoadScene) tick(deltaTime float64) {
	s.hostTime += deltaTime
	events := s.sim.Advance(s.hostTime)
	if events.Result != nil {
		s.onRunEnded(*events.Result)
	}
}

// onRunEnded 记录成绩并进入结算
func (s *RoadScene) onRunEnded(result simulation.RunResult) {
	s.result = &result
	if s.services.Results == nil {
		return
	}
	if err := s.services.Results.Record(result); err != nil {
		log.Printf("[RoadScene] Failed to record result: %v", err)
	}
	s.rank = s.services.Results.Rank(result.ID)
}

// Draw 绘制车道、车辆、玩家和 HUD
func (s *RoadScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	cfg := s.sim.Config()
	cameraY := s.sim.CameraY()
	showHitboxes := s.services.Settings != nil && s.services.Settings.GetSettings().ShowHitboxes

	for _, lane := range s.sim.Lanes() {
		top := worldToScreenY(lane.Y+lane.Height, cameraY, cfg.PlayfieldHeight)
		drawRect(screen, 0, top, cfg.PlayfieldWidth, lane.Height, laneColor(lane.Kind))
		if lane.Kind == components.LaneTraffic {
			mid := top + lane.Height/2
			for x := 10.0; x < cfg.PlayfieldWidth; x += 40 {
				drawRect(screen, x, mid-1, 20, 2, colorLaneMark)
			}
		}
	}

	for _, o := range s.sim.Obstacles() {
		cy := worldToScreenY(o.Y, cameraY, cfg.PlayfieldHeight)
		drawRect(screen, o.X-o.Width/2, cy-o.Height/2, o.Width, o.Height, variantColor(o.Variant))
		if showHitboxes {
			drawRect(screen, o.X-o.HitboxWidth/2, cy-o.HitboxHeight/2, o.HitboxWidth, o.HitboxHeight, colorHitbox)
		}
	}

	p := s.sim.Player()
	py := worldToScreenY(p.Y, cameraY, cfg.PlayfieldHeight)
	playerColor := colorPlayer
	if !p.Alive {
		playerColor = colorPlayerDead
	}
	drawRect(screen, p.X-p.Width/2, py-p.Height/2, p.Width, p.Height, playerColor)
	if showHitboxes {
		drawRect(screen, p.X-p.HitboxWidth/2, py-p.HitboxHeight/2, p.HitboxWidth, p.HitboxHeight, colorHitbox)
	}

	ebitenutil.DebugPrintAt(screen, formatElapsed(s.sim.Elapsed()), config.HUDPadding, config.HUDPadding)

	if s.result != nil {
		s.drawGameOver(screen, cfg)
	}
}

func (s *RoadScene) drawGameOver(screen *ebiten.Image, cfg *config.RoadConfig) {
	drawRect(screen, 0, 0, cfg.PlayfieldWidth, cfg.PlayfieldHeight, colorOverlay)

	lines := gameOverLines(*s.result, s.rank, utils.IsMobile())
	y := int(cfg.PlayfieldHeight/2) - len(lines)*10
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.HUDPadding*3, y)
		y += 20
	}
}

// worldToScreenY 世界坐标 y 向上，屏幕坐标 y 向下，镜头中心对应屏幕中线
func worldToScreenY(worldY, cameraY, screenHeight float64) float64 {
	return screenHeight/2 - (worldY - cameraY)
}

func drawRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// formatElapsed HUD 计时文本
func formatElapsed(seconds float64) string {
	return fmt.Sprintf("Time: %.1fs", seconds)
}

// gameOverTitle 按结束原因给出结算标题
func gameOverTitle(cause components.RunPhase) string {
	switch cause {
	case components.RunEndedCollision:
		return "Hit by a car!"
	case components.RunEndedFellBehind:
		return "Too slow!"
	}
	return "Game over"
}

// gameOverLines 结算浮层的文字
func gameOverLines(result simulation.RunResult, rank int, touch bool) []string {
	lines := []string{
		gameOverTitle(result.Cause),
		fmt.Sprintf("You survived %.1fs", result.ElapsedTime),
	}
	if rank > 0 {
		lines = append(lines, fmt.Sprintf("Rank #%d", rank))
	}
	lines = append(lines, "")
	if touch {
		lines = append(lines, "Tap to play again")
	} else {
		lines = append(lines, "R: play again   Esc: menu")
	}
	return lines
}
