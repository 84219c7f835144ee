package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// VisualSettings 塔视觉的显示设置
// 全局设置，持久化在 gdata 的 settings/visual 下
type VisualSettings struct {
	// 选中塔时显示范围圈
	ShowRangeOnSelect bool `yaml:"showRangeOnSelect"`

	// LOD 细节（DPS/等级）开关与镜头缩放阈值
	LODEnabled       bool    `yaml:"lodEnabled"`
	LODZoomThreshold float64 `yaml:"lodZoomThreshold"` // 0 表示使用视觉配置中的阈值

	// 光晕层开关（关闭后 outerGlow/midGlow/glow 不绘制）
	GlowEnabled bool `yaml:"glowEnabled"`

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *VisualSettings {
	return &VisualSettings{
		ShowRangeOnSelect: true,
		LODEnabled:        true,
		LODZoomThreshold:  0,
		GlowEnabled:       true,
		Fullscreen:        false,
	}
}

// EffectiveLODThreshold 实际生效的 LOD 缩放阈值
// 设置中的阈值为 0 时返回 fallback（通常是 config.LOD.ZoomThreshold）
func (s *VisualSettings) EffectiveLODThreshold(fallback float64) float64 {
	if s.LODZoomThreshold > 0 {
		return s.LODZoomThreshold
	}
	return fallback
}

// SettingsManager 设置管理器
// 负责视觉设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *VisualSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "visual"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方的错误位，加载失败不会返回错误（使用默认设置）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或设置不存在时使用默认设置。
// 已保存文件中缺失的字段保持默认值。
//
// 返回：
//   - error: 读取或反序列化失败时返回错误（此时设置已重置为默认）
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.LODZoomThreshold < 0 {
		loaded.LODZoomThreshold = 0
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *VisualSettings {
	return sm.settings
}

// SetShowRangeOnSelect 设置选中时是否显示范围圈
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetShowRangeOnSelect(enabled bool) {
	sm.settings.ShowRangeOnSelect = enabled
}

// SetLODEnabled 设置 LOD 细节开关
func (sm *SettingsManager) SetLODEnabled(enabled bool) {
	sm.settings.LODEnabled = enabled
}

// SetLODZoomThreshold 设置 LOD 缩放阈值，负数按 0 处理（使用配置默认值）
func (sm *SettingsManager) SetLODZoomThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	}
	sm.settings.LODZoomThreshold = threshold
}

// SetGlowEnabled 设置光晕层开关
func (sm *SettingsManager) SetGlowEnabled(enabled bool) {
	sm.settings.GlowEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
