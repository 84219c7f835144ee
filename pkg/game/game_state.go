package game

import (
	"log"

	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "towerviz"

// 镜头缩放范围
const (
	MinCameraZoom = 0.5
	MaxCameraZoom = 3.0
)

// GameState 存储全局展示状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	// 镜头（世界坐标系统）
	CameraX    float64 // 镜头中心 X
	CameraY    float64 // 镜头中心 Y
	CameraZoom float64 // 镜头缩放，1 为原始大小

	// SelectedTower 当前选中的塔，0 表示未选中
	SelectedTower ecs.EntityID

	gdataManager    *gdata.Manager   // 可为 nil（降级模式，设置不持久化）
	settingsManager *SettingsManager // 视觉设置
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 延迟初始化；gdata 打开失败时设置仅保存在内存中
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = NewGameState(openGdata())
	}
	return globalGameState
}

// NewGameState 用给定的 gdata 管理器创建状态（nil 表示降级模式）
func NewGameState(gdataManager *gdata.Manager) *GameState {
	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[GameState] Warning: settings manager init failed: %v", err)
	}
	return &GameState{
		CameraZoom:      1,
		gdataManager:    gdataManager,
		settingsManager: sm,
	}
}

func openGdata() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[GameState] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: AppName,
	})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}
	return manager
}

// GetGdataManager 返回 gdata 管理器，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回视觉设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// Settings 当前视觉设置的快捷访问；设置管理器缺失时返回默认设置
func (gs *GameState) Settings() *VisualSettings {
	if gs.settingsManager == nil {
		return DefaultSettings()
	}
	return gs.settingsManager.GetSettings()
}

// SetCameraZoom 设置镜头缩放并限制在 [MinCameraZoom, MaxCameraZoom]
func (gs *GameState) SetCameraZoom(zoom float64) {
	if zoom < MinCameraZoom {
		zoom = MinCameraZoom
	}
	if zoom > MaxCameraZoom {
		zoom = MaxCameraZoom
	}
	gs.CameraZoom = zoom
}

// ZoomBy 按倍数缩放镜头
func (gs *GameState) ZoomBy(factor float64) {
	gs.SetCameraZoom(gs.CameraZoom * factor)
}

// WorldToScreen 世界坐标转换为屏幕坐标
// 屏幕中心对应镜头中心
func (gs *GameState) WorldToScreen(x, y float64, screenW, screenH int) (float64, float64) {
	return (x-gs.CameraX)*gs.CameraZoom + float64(screenW)/2,
		(y-gs.CameraY)*gs.CameraZoom + float64(screenH)/2
}

// ScreenToWorld 屏幕坐标转换为世界坐标
func (gs *GameState) ScreenToWorld(sx, sy float64, screenW, screenH int) (float64, float64) {
	return (sx-float64(screenW)/2)/gs.CameraZoom + gs.CameraX,
		(sy-float64(screenH)/2)/gs.CameraZoom + gs.CameraY
}
