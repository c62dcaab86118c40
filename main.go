package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/crazyroad/pkg/app"
	"github.com/decker502/crazyroad/pkg/embedded"
)

func main() {
	configPath := flag.String("config", "", "road config YAML (default: embedded data/road.yaml)")
	seed := flag.Int64("seed", 0, "random seed, 0 = use config / time")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	maxResults := flag.Int("max-results", 50, "number of results to keep, 0 = unlimited")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		RoadConfigPath: *configPath,
		Seed:           *seed,
		MaxResults:     *maxResults,
	})
	if err != nil {
		// 非 verbose 模式下 log 输出已被关闭
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	width, height := gameApp.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Crazy Road")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	gameApp.ApplySettings()

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
