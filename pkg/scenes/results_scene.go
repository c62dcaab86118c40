package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/game"
	"github.com/decker502/crazyroad/pkg/simulation"
	"github.com/decker502/crazyroad/pkg/utils"
)

// resultsDateLayout 成绩表日期格式
const resultsDateLayout = "2006-01-02 15:04"

// ResultsScene 历史成绩表
// 最近一局高亮显示，C 清空，Esc 或点击返回菜单
type ResultsScene struct {
	services *Services
}

// NewResultsScene 创建成绩表场景
func NewResultsScene(services *Services) *ResultsScene {
	return &ResultsScene{services: services}
}

// Update 处理成绩表输入
func (s *ResultsScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && s.services.Results != nil {
		if err := s.services.Results.Clear(); err != nil {
			log.Printf("[ResultsScene] Failed to clear results: %v", err)
		}
		return
	}

	pressed, _, _ := utils.IsJustTouchedOrClicked()
	if pressed || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.services.SceneManager.Load(game.SceneMenu)
	}
}

// resultRow 表格中的一行
type resultRow struct {
	text      string
	highlight bool
}

// buildResultRows 生成表格文字，最多 maxRows 行
func buildResultRows(results []simulation.RunResult, newest simulation.RunResult, maxRows int) []resultRow {
	rows := make([]resultRow, 0, len(results))
	for i, r := range results {
		if i >= maxRows {
			break
		}
		rows = append(rows, resultRow{
			text:      fmt.Sprintf("%2d. %7.1fs   %s", i+1, r.ElapsedTime, r.Timestamp.Local().Format(resultsDateLayout)),
			highlight: r.ID == newest.ID,
		})
	}
	return rows
}

// Draw 绘制成绩表
func (s *ResultsScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	x := config.HUDPadding
	ebitenutil.DebugPrintAt(screen, "RESULTS", x, config.HUDPadding)

	if s.services.Results == nil || len(s.services.Results.Results()) == 0 {
		ebitenutil.DebugPrintAt(screen, "No runs yet", x, config.HUDPadding+40)
		return
	}

	top := config.HUDPadding + 40
	maxRows := (config.GameWindowHeight - top - config.ResultsRowHeight) / config.ResultsRowHeight
	newest := simulation.RunResult{ID: s.services.Results.LastRecordedID()}
	rows := buildResultRows(s.services.Results.Results(), newest, maxRows)

	for i, row := range rows {
		y := top + i*config.ResultsRowHeight
		switch {
		case row.highlight:
			drawRect(screen, 0, float64(y), config.GameWindowWidth, config.ResultsRowHeight, colorHighlight)
		case i%2 == 1:
			drawRect(screen, 0, float64(y), config.GameWindowWidth, config.ResultsRowHeight, colorRowAlt)
		}
		ebitenutil.DebugPrintAt(screen, row.text, x, y+config.ResultsRowHeight/2-8)
	}

	ebitenutil.DebugPrintAt(screen, "C: clear   Esc: back", x, config.GameWindowHeight-config.ResultsRowHeight/2)
}
