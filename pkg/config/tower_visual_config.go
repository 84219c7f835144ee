package config

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
	"gopkg.in/yaml.v3"
)

// TowerVisualConfig 塔视觉构建配置
//
// 包含基础尺寸、稀有度光晕表、图层 Z 值、装饰层常量、待机动画速度和 LOD 阈值。
// 所有尺寸都是塔本地坐标（+Y 向下）中的像素值。
//
// 配置文件位置: data/tower_visuals.yaml
type TowerVisualConfig struct {
	// Geometry 基础尺寸
	Geometry TowerGeometryConfig `yaml:"geometry"`

	// Rarity 稀有度光晕表
	// key: 稀有度名称 ("common", "rare", "epic", "legendary")
	Rarity map[string]RarityGlowConfig `yaml:"rarity"`

	// LayerZ 图层 Z 值表
	// key: 图层名称 (如 "range", "body", "lodDetail")，未配置的图层使用默认值
	LayerZ map[string]float64 `yaml:"layerZ"`

	// Decorators 装饰层常量
	Decorators DecoratorConfig `yaml:"decorators"`

	// Idle 待机动画参数
	Idle IdleMotionConfig `yaml:"idle"`

	// LOD 细节层级参数
	LOD LODConfig `yaml:"lod"`

	// Aim 炮管瞄准参数
	Aim AimConfig `yaml:"aim"`
}

// TowerGeometryConfig 基础尺寸
type TowerGeometryConfig struct {
	PlatformSize float64 `yaml:"platformSize"` // 平台边长
	BodyRadius   float64 `yaml:"bodyRadius"`   // 主体半径
	BarrelLength float64 `yaml:"barrelLength"` // 炮管长度（从基部到炮口）
	BarrelWidth  float64 `yaml:"barrelWidth"`  // 炮管宽度
	StrokeWidth  float64 `yaml:"strokeWidth"`  // 轮廓线宽
}

// RarityGlowConfig 单个稀有度的光晕参数
type RarityGlowConfig struct {
	// GlowRadius/GlowAlpha 内层光晕
	GlowRadius float64 `yaml:"glowRadius"`
	GlowAlpha  float64 `yaml:"glowAlpha"`

	// MidGlowRadius/MidGlowAlpha 中层光晕
	MidGlowRadius float64 `yaml:"midGlowRadius"`
	MidGlowAlpha  float64 `yaml:"midGlowAlpha"`

	// OuterGlowRadius/OuterGlowAlpha 外层光晕
	OuterGlowRadius float64 `yaml:"outerGlowRadius"`
	OuterGlowAlpha  float64 `yaml:"outerGlowAlpha"`

	// RingRadius 史诗及以上的旋转外环半径
	RingRadius float64 `yaml:"ringRadius"`
}

// DecoratorConfig 装饰层常量
type DecoratorConfig struct {
	MergeSpacing   float64 `yaml:"mergeSpacing"`   // 合成标记间距
	MergeOffsetY   float64 `yaml:"mergeOffsetY"`   // 合成标记行的 Y 偏移
	MergeGlyphSize float64 `yaml:"mergeGlyphSize"` // 合成标记大小

	RangeFillAlpha   float64   `yaml:"rangeFillAlpha"`
	RangeStrokeAlpha float64   `yaml:"rangeStrokeAlpha"`
	RangeStrokeWidth float64   `yaml:"rangeStrokeWidth"`
	RangeDash        []float64 `yaml:"rangeDash"` // 范围圈虚线（线段、间隔）

	CooldownColor  string  `yaml:"cooldownColor"` // "#rrggbbaa"
	CooldownWidth  float64 `yaml:"cooldownWidth"`
	CooldownRadius float64 `yaml:"cooldownRadius"`

	MergeHighlightRadius float64 `yaml:"mergeHighlightRadius"`

	LODOffsetY       float64 `yaml:"lodOffsetY"`
	DPSFontSize      float64 `yaml:"dpsFontSize"`
	LevelBadgeRadius float64 `yaml:"levelBadgeRadius"`
}

// IdleMotionConfig 待机动画参数
type IdleMotionConfig struct {
	RotateSpeed      float64 `yaml:"rotateSpeed"`      // 弧度/秒
	PulsePeriod      float64 `yaml:"pulsePeriod"`      // 秒
	PulseMinAlpha    float64 `yaml:"pulseMinAlpha"`    // 脉冲最低透明度
	OrbitSpeed       float64 `yaml:"orbitSpeed"`       // 弧度/秒
	FlickerInterval  float64 `yaml:"flickerInterval"`  // 秒
	SequenceInterval float64 `yaml:"sequenceInterval"` // 秒
}

// LODConfig 细节层级参数
type LODConfig struct {
	// ZoomThreshold 镜头缩放达到此值时显示 DPS/等级细节
	ZoomThreshold float64 `yaml:"zoomThreshold"`
}

// AimConfig 炮管瞄准参数
type AimConfig struct {
	TurnSpeed           float64 `yaml:"turnSpeed"`           // 弧度/秒
	MuzzleFlashDuration float64 `yaml:"muzzleFlashDuration"` // 秒
}

// defaultLayerZ 图层默认 Z 值
// 范围圈在最底层，光晕在平台之后，LOD 细节在最顶层
var defaultLayerZ = map[types.LayerSlot]float64{
	types.SlotRange:          -10,
	types.SlotOuterGlow:      -3,
	types.SlotMidGlow:        -2,
	types.SlotGlow:           -1,
	types.SlotBasePlatform:   0,
	types.SlotBody:           1,
	types.SlotBarrel:         2,
	types.SlotMuzzleFlash:    1, // 相对 barrel 内部
	types.SlotDetails:        3,
	types.SlotStars:          4,
	types.SlotCooldown:       5,
	types.SlotMergeHighlight: 6,
	types.SlotLODDetail:      10,
}

// DefaultTowerVisualConfig 返回内置默认配置（与 data/tower_visuals.yaml 一致）
func DefaultTowerVisualConfig() *TowerVisualConfig {
	layerZ := make(map[string]float64, len(defaultLayerZ))
	for slot, z := range defaultLayerZ {
		layerZ[slot.Name()] = z
	}

	return &TowerVisualConfig{
		Geometry: TowerGeometryConfig{
			PlatformSize: 60,
			BodyRadius:   18,
			BarrelLength: 26,
			BarrelWidth:  6,
			StrokeWidth:  2,
		},
		Rarity: map[string]RarityGlowConfig{
			"common": {
				GlowRadius: 26, GlowAlpha: 0.18,
				MidGlowRadius: 32, MidGlowAlpha: 0.08,
				OuterGlowRadius: 38, OuterGlowAlpha: 0.03,
			},
			"rare": {
				GlowRadius: 28, GlowAlpha: 0.25,
				MidGlowRadius: 35, MidGlowAlpha: 0.12,
				OuterGlowRadius: 42, OuterGlowAlpha: 0.05,
			},
			"epic": {
				GlowRadius: 30, GlowAlpha: 0.32,
				MidGlowRadius: 38, MidGlowAlpha: 0.16,
				OuterGlowRadius: 46, OuterGlowAlpha: 0.08,
				RingRadius: 44,
			},
			"legendary": {
				GlowRadius: 32, GlowAlpha: 0.4,
				MidGlowRadius: 42, MidGlowAlpha: 0.22,
				OuterGlowRadius: 52, OuterGlowAlpha: 0.12,
				RingRadius: 48,
			},
		},
		LayerZ: layerZ,
		Decorators: DecoratorConfig{
			MergeSpacing:         10,
			MergeOffsetY:         38,
			MergeGlyphSize:       4,
			RangeFillAlpha:       0.08,
			RangeStrokeAlpha:     0.35,
			RangeStrokeWidth:     1.5,
			RangeDash:            []float64{8, 6},
			CooldownColor:        "#ffffffd9",
			CooldownWidth:        3,
			CooldownRadius:       24,
			MergeHighlightRadius: 36,
			LODOffsetY:           -48,
			DPSFontSize:          10,
			LevelBadgeRadius:     8,
		},
		Idle: IdleMotionConfig{
			RotateSpeed:      0.6,
			PulsePeriod:      1.6,
			PulseMinAlpha:    0.55,
			OrbitSpeed:       1.2,
			FlickerInterval:  0.08,
			SequenceInterval: 0.25,
		},
		LOD: LODConfig{
			ZoomThreshold: 1.5,
		},
		Aim: AimConfig{
			TurnSpeed:           6,
			MuzzleFlashDuration: 0.08,
		},
	}
}

// LoadTowerVisualConfig 从文件加载塔视觉配置
//
// 参数:
//   - path: 配置文件路径（如 "data/tower_visuals.yaml"）
//
// 返回:
//   - *TowerVisualConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadTowerVisualConfig(path string) (*TowerVisualConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tower visual config: %w", err)
	}
	return ParseTowerVisualConfig(data)
}

// ParseTowerVisualConfig 解析 YAML 数据
// 未出现在文件中的字段保留默认值
func ParseTowerVisualConfig(data []byte) (*TowerVisualConfig, error) {
	config := DefaultTowerVisualConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse tower visual config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tower visual config: %w", err)
	}

	return config, nil
}

// LoadTowerVisualConfigOrDefault 加载配置，失败时记录警告并返回默认配置
func LoadTowerVisualConfigOrDefault(path string) *TowerVisualConfig {
	config, err := LoadTowerVisualConfig(path)
	if err != nil {
		log.Printf("[TowerVisualConfig] Warning: %v, using defaults", err)
		return DefaultTowerVisualConfig()
	}
	return config
}

// Validate 验证配置有效性
//
// 检查：
//   - 基础尺寸为正数
//   - 每个稀有度都有光晕配置，透明度在 [0,1]，史诗及以上配置了外环半径
//   - 图层名称合法
//   - 合成标记间距非负，冷却颜色可解析
//   - 动画周期/间隔为正数
func (c *TowerVisualConfig) Validate() error {
	g := c.Geometry
	if g.PlatformSize <= 0 || g.BodyRadius <= 0 || g.BarrelLength <= 0 || g.BarrelWidth <= 0 {
		return fmt.Errorf("geometry sizes must be positive: platform=%.1f body=%.1f barrel=%.1fx%.1f",
			g.PlatformSize, g.BodyRadius, g.BarrelLength, g.BarrelWidth)
	}
	if g.StrokeWidth < 0 {
		return fmt.Errorf("strokeWidth must be >= 0, got %.1f", g.StrokeWidth)
	}

	for _, tier := range types.AllRarities() {
		glow, ok := c.Rarity[tier.String()]
		if !ok {
			return fmt.Errorf("missing rarity glow config for '%s'", tier)
		}
		for name, alpha := range map[string]float64{
			"glowAlpha":      glow.GlowAlpha,
			"midGlowAlpha":   glow.MidGlowAlpha,
			"outerGlowAlpha": glow.OuterGlowAlpha,
		} {
			if alpha < 0 || alpha > 1 {
				return fmt.Errorf("rarity '%s' %s must be in [0,1], got %.2f", tier, name, alpha)
			}
		}
		if tier.AtLeast(types.RarityEpic) && glow.RingRadius <= 0 {
			return fmt.Errorf("rarity '%s' requires ringRadius > 0", tier)
		}
	}

	for name := range c.LayerZ {
		if !isLayerName(name) {
			return fmt.Errorf("unknown layer '%s' in layerZ", name)
		}
	}

	d := c.Decorators
	if d.MergeSpacing < 0 {
		return fmt.Errorf("mergeSpacing must be >= 0, got %.1f", d.MergeSpacing)
	}
	if _, err := utils.ParseHexColor(d.CooldownColor); err != nil {
		return fmt.Errorf("cooldownColor: %w", err)
	}

	idle := c.Idle
	if idle.PulsePeriod <= 0 || idle.FlickerInterval <= 0 || idle.SequenceInterval <= 0 {
		return fmt.Errorf("idle periods must be positive: pulse=%.2f flicker=%.2f sequence=%.2f",
			idle.PulsePeriod, idle.FlickerInterval, idle.SequenceInterval)
	}
	if idle.PulseMinAlpha < 0 || idle.PulseMinAlpha > 1 {
		return fmt.Errorf("pulseMinAlpha must be in [0,1], got %.2f", idle.PulseMinAlpha)
	}

	if c.LOD.ZoomThreshold <= 0 {
		return fmt.Errorf("lod zoomThreshold must be positive, got %.2f", c.LOD.ZoomThreshold)
	}
	if c.Aim.TurnSpeed < 0 || c.Aim.MuzzleFlashDuration < 0 {
		return fmt.Errorf("aim values must be >= 0")
	}

	return nil
}

func isLayerName(name string) bool {
	for s := types.LayerSlot(0); int(s) < types.LayerSlotCount; s++ {
		if s.Name() == name {
			return true
		}
	}
	return false
}

// GetLayerZ 获取图层 Z 值
// 未配置的图层返回内置默认值
func (c *TowerVisualConfig) GetLayerZ(slot types.LayerSlot) float64 {
	if z, ok := c.LayerZ[slot.Name()]; ok {
		return z
	}
	return defaultLayerZ[slot]
}

// GetRarityGlow 获取稀有度光晕参数
// 未配置时回退到 common，再回退到内置默认值
func (c *TowerVisualConfig) GetRarityGlow(tier types.RarityTier) RarityGlowConfig {
	if glow, ok := c.Rarity[tier.String()]; ok {
		return glow
	}
	if glow, ok := c.Rarity[types.RarityCommon.String()]; ok {
		return glow
	}
	return DefaultTowerVisualConfig().Rarity[types.RarityCommon.String()]
}

// GetCooldownColor 解析冷却弧颜色，非法时返回白色 85% 透明度
func (c *TowerVisualConfig) GetCooldownColor() color.NRGBA {
	col, err := utils.ParseHexColor(c.Decorators.CooldownColor)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 217}
	}
	return col
}

// ShowcaseConfig 展示程序配置
//
// 配置文件位置: data/showcase.yaml
type ShowcaseConfig struct {
	// Columns 每行展示的塔数量
	Columns int `yaml:"columns"`

	// CellSize 网格单元尺寸
	CellSize float64 `yaml:"cellSize"`

	// Towers 要展示的塔
	Towers []ShowcaseTower `yaml:"towers"`
}

// ShowcaseTower 单个展示塔参数
type ShowcaseTower struct {
	WeaponType      string  `yaml:"weaponType"`
	Color           string  `yaml:"color"`
	Rarity          string  `yaml:"rarity"`
	Range           float64 `yaml:"range"`
	MergeLevel      int     `yaml:"mergeLevel"`
	Level           int     `yaml:"level"`
	Damage          float64 `yaml:"damage"`
	AttackSpeed     float64 `yaml:"attackSpeed"`
	ProjectileCount int     `yaml:"projectileCount"`
	Cooldown        float64 `yaml:"cooldown"` // 秒，0 表示不显示冷却弧
}

// LoadShowcaseConfig 从文件加载展示配置
func LoadShowcaseConfig(path string) (*ShowcaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase config: %w", err)
	}
	return ParseShowcaseConfig(data)
}

// ParseShowcaseConfig 解析展示配置
func ParseShowcaseConfig(data []byte) (*ShowcaseConfig, error) {
	var config ShowcaseConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse showcase config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid showcase config: %w", err)
	}
	return &config, nil
}

// Validate 验证展示配置
func (c *ShowcaseConfig) Validate() error {
	if c.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", c.Columns)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("cellSize must be positive, got %.1f", c.CellSize)
	}
	for i, t := range c.Towers {
		if _, err := utils.ParseHexColor(t.Color); err != nil {
			return fmt.Errorf("tower[%d] (%s): %w", i, t.WeaponType, err)
		}
	}
	return nil
}
