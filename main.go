package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "YAML config overriding the embedded data/fireworks.yaml")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 uses the current time)")
	mobileFlag  = flag.Bool("mobile", false, "Use mobile spark counts")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verboseFlag,
		ConfigPath:  *configFlag,
		Seed:        *seedFlag,
		ForceMobile: *mobileFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	display := gameApp.Config().Display
	ebiten.SetWindowSize(display.WindowWidth, display.WindowHeight)
	ebiten.SetWindowTitle("Fireworks Finale")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the loop; Update and Draw run until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
