// Package app 提供展示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/embedded"
	"github.com/gonewx/towerviz/pkg/game"
	"github.com/gonewx/towerviz/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 默认数据文件路径（嵌入资源）
const (
	TowerVisualConfigPath = "data/tower_visuals.yaml"
	ShowcaseConfigPath    = "data/showcase.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ShowcasePath 指定外部展示配置文件，为空则使用嵌入的 data/showcase.yaml
	ShowcasePath string
	// FontPath 指定标签字体文件（TTF/OTF），为空则使用内置 Go Regular
	FontPath string
}

// App 是展示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameState                *game.GameState
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化展示程序
//
// 桌面端调用此函数前应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时从工作目录读取 data/ 下的文件。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 字体资源
	resourceManager, err := game.NewResourceManager()
	if err != nil {
		return nil, fmt.Errorf("资源管理器初始化失败: %w", err)
	}
	if cfg.FontPath != "" {
		if err := resourceManager.SetDefaultFont(cfg.FontPath); err != nil {
			log.Printf("[App] Warning: %v, using built-in font", err)
		}
	}

	// 塔视觉配置：加载失败时使用默认配置
	visualConfig := loadVisualConfig()

	// 展示配置：缺失时无法继续
	showcase, err := loadShowcaseConfig(cfg.ShowcasePath)
	if err != nil {
		return nil, fmt.Errorf("展示配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载展示配置: %d 座塔, %d 列", len(showcase.Towers), showcase.Columns)

	gameState := game.GetGameState()
	ebiten.SetFullscreen(gameState.Settings().Fullscreen)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		if name != scenes.ShowcaseSceneName {
			return nil
		}
		scene, err := scenes.NewShowcaseScene(resourceManager, gameState, visualConfig, showcase)
		if err != nil {
			log.Printf("[App] Warning: failed to create showcase scene: %v", err)
			return nil
		}
		return scene
	})

	if !sceneManager.LoadScene(scenes.ShowcaseSceneName) {
		return nil, fmt.Errorf("无法创建展示场景")
	}

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
	}, nil
}

// loadVisualConfig 从嵌入资源加载塔视觉配置，失败时返回默认配置
func loadVisualConfig() *config.TowerVisualConfig {
	if !embedded.Exists(TowerVisualConfigPath) {
		log.Printf("[Config] %s not found, using default tower visuals", TowerVisualConfigPath)
		return config.DefaultTowerVisualConfig()
	}
	data, err := embedded.ReadFile(TowerVisualConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v, using default tower visuals", err)
		return config.DefaultTowerVisualConfig()
	}
	visualConfig, err := config.ParseTowerVisualConfig(data)
	if err != nil {
		log.Printf("[Config] Warning: %v, using default tower visuals", err)
		return config.DefaultTowerVisualConfig()
	}
	source := "embedded"
	if !embedded.IsInitialized() {
		source = "working directory"
	}
	log.Printf("[Config] 加载塔视觉配置: %s (%s)", TowerVisualConfigPath, source)
	return visualConfig
}

// loadShowcaseConfig 加载展示配置，path 为空时使用嵌入资源
func loadShowcaseConfig(path string) (*config.ShowcaseConfig, error) {
	if path != "" {
		return config.LoadShowcaseConfig(path)
	}
	data, err := embedded.ReadFile(ShowcaseConfigPath)
	if err != nil {
		return nil, err
	}
	return config.ParseShowcaseConfig(data)
}

// Update 更新展示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ShowcaseWindowWidth, config.ShowcaseWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.ShowcaseWindowWidth, config.ShowcaseWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记录到设置中
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		if sm := a.gameState.GetSettingsManager(); sm != nil {
			sm.SetFullscreen(!isFullscreen)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ShowcaseWindowWidth, config.ShowcaseWindowHeight
}

// SaveOnExit 在程序退出时让当前场景保存状态
func (a *App) SaveOnExit() bool {
	if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}
