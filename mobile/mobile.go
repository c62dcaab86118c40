//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.crazyroad -o build/android/crazyroad.aar ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/CrazyRoad.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/crazyroad/pkg/app"
	"github.com/decker502/crazyroad/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    true,
		MaxResults: 50,
	})
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
