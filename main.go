package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gonewx/towerviz/pkg/app"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose      = flag.Bool("verbose", false, "详细日志")
	showcasePath = flag.String("showcase", "", "外部展示配置文件路径（默认使用内置 data/showcase.yaml）")
	fontPath     = flag.String("font", "", "标签字体文件路径（默认使用内置 Go Regular）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		ShowcasePath: *showcasePath,
		FontPath:     *fontPath,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("展示程序初始化失败: %v", err)
	}

	// 通过信号结束程序时同样保存设置
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		gameApp.SaveOnExit()
		os.Exit(0)
	}()

	ebiten.SetWindowSize(config.ShowcaseWindowWidth, config.ShowcaseWindowHeight)
	ebiten.SetWindowTitle("Tower Visual Showcase")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	// 窗口关闭
	gameApp.SaveOnExit()
}
