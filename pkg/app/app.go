// Package app 提供游戏应用的核心包装器
//
// 初始化逻辑从 main 包提取出来，桌面端（main.go）和移动端（mobile/mobile.go）共用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/embedded"
	"github.com/decker502/crazyroad/pkg/game"
	"github.com/decker502/crazyroad/pkg/scenes"
	"github.com/decker502/crazyroad/pkg/utils"
)

// 应用名，用作 gdata 存储目录
const appName = "crazyroad"

// defaultRoadConfigPath 嵌入的默认道路参数
const defaultRoadConfigPath = "data/road.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// RoadConfigPath 道路参数文件，为空时使用嵌入的默认参数
	RoadConfigPath string
	// Seed 非 0 时覆盖参数文件中的随机种子
	Seed int64
	// MaxResults 最多保留的历史成绩数，0 表示不限制
	MaxResults int
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	roadConfig   *config.RoadConfig
	verbose      bool

	pendingWindowSizeReset   bool // 退出全屏后延迟设置窗口大小
	windowSizeResetCountdown int
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入参数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	roadConfig, err := loadRoadConfig(cfg.RoadConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed != 0 {
		roadConfig.Seed = cfg.Seed
	}

	gdataManager := openStorage()

	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings manager: %w", err)
	}
	results, err := game.NewResultsManager(gdataManager, cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to create results manager: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewFactory(&scenes.Services{
		RoadConfig:   roadConfig,
		Results:      results,
		Settings:     settings,
		SceneManager: sceneManager,
	}))
	if !sceneManager.Load(game.SceneMenu) {
		return nil, fmt.Errorf("failed to load menu scene")
	}

	log.Printf("[App] Started: playfield=%.0fx%.0f, seed=%d, results=%d",
		roadConfig.PlayfieldWidth, roadConfig.PlayfieldHeight, roadConfig.Seed, len(results.Results()))

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		roadConfig:   roadConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// loadRoadConfig 读取道路参数：指定文件优先，其次嵌入的默认文件，最后内置默认值
func loadRoadConfig(path string) (*config.RoadConfig, error) {
	if path != "" {
		cfg, err := config.LoadRoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load road config: %w", err)
		}
		log.Printf("[App] Road config loaded from %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(defaultRoadConfigPath)
	if err != nil {
		log.Printf("[App] Embedded road config unavailable (%v), using defaults", err)
		return config.DefaultRoadConfig(), nil
	}
	cfg, err := config.ParseRoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded road config: %w", err)
	}
	return cfg, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级为内存模式）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable (%v), results will not be saved", err)
		return nil
	}
	return m
}

// ApplySettings 应用启动设置（全屏）
func (a *App) ApplySettings() {
	if a.settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
}

// Update 更新游戏逻辑，每个 tick 调用一次
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.screenSize())
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 等窗口管理器处理完再恢复窗口大小
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时用黑边填充并线性缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（与场地尺寸一致）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenSize()
}

func (a *App) screenSize() (int, int) {
	return int(a.roadConfig.PlayfieldWidth), int(a.roadConfig.PlayfieldHeight)
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
