package entities

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
)

// TowerRootName 塔视觉合成树根节点名称
const TowerRootName = "tower"

// TowerVisualParams 构建塔视觉所需的参数
//
// 数值参数按原样使用，不做范围校验：负范围得到负半径的圆，
// 合成等级 <= 0 得到空的合成标记层。
type TowerVisualParams struct {
	// WeaponType 武器类型字符串，大小写不敏感，未知值按 projectile 处理
	WeaponType string

	// Color 塔的基础色
	Color color.NRGBA

	// Range 攻击范围（范围圈半径）
	Range float64

	// MergeLevel 合成等级（合成标记数量）
	MergeLevel int

	// Level 塔等级（LOD 等级徽章）
	Level int

	Damage          float64
	AttackSpeed     float64
	ProjectileCount int

	// Rarity 稀有度字符串，未知值按 common 处理
	Rarity string
}

// IdleAnimationStarter 待机动画启动入口
//
// 合成完成后被调用恰好一次，调用方不关心返回值。
type IdleAnimationStarter interface {
	StartIdleAnimation(root *scenegraph.Node, archetype types.Archetype, c color.NRGBA)
}

// IdleAnimationStarterFunc 函数适配器
type IdleAnimationStarterFunc func(root *scenegraph.Node, archetype types.Archetype, c color.NRGBA)

// StartIdleAnimation 实现 IdleAnimationStarter
func (f IdleAnimationStarterFunc) StartIdleAnimation(root *scenegraph.Node, archetype types.Archetype, c color.NRGBA) {
	f(root, archetype, c)
}

// towerPalette 由基础色派生的配色
type towerPalette struct {
	base   color.NRGBA
	light  color.NRGBA // 发光部件、高光
	dark   color.NRGBA // 平台底色
	stroke color.NRGBA // 轮廓线
	glow   color.NRGBA // 光晕（提高彩度）
}

func newTowerPalette(base color.NRGBA) towerPalette {
	base.A = 255
	return towerPalette{
		base:   base,
		light:  utils.Lighten(base, 0.25),
		dark:   utils.Darken(base, 0.35),
		stroke: utils.Lighten(base, 0.1),
		glow:   utils.Saturate(base, 1.2),
	}
}

// buildContext 单次构建共享的只读上下文
type buildContext struct {
	cfg       *config.TowerVisualConfig
	archetype types.Archetype
	rarity    types.RarityTier
	palette   towerPalette
}

func newBuildContext(cfg *config.TowerVisualConfig, archetype types.Archetype, rarity types.RarityTier, c color.NRGBA) *buildContext {
	return &buildContext{
		cfg:       cfg,
		archetype: archetype,
		rarity:    rarity,
		palette:   newTowerPalette(c),
	}
}

// 常用尺寸
func (ctx *buildContext) platformHalf() float64 { return ctx.cfg.Geometry.PlatformSize / 2 }
func (ctx *buildContext) bodyRadius() float64   { return ctx.cfg.Geometry.BodyRadius }
func (ctx *buildContext) lineWidth() float64    { return ctx.cfg.Geometry.StrokeWidth }

// BuildTowerVisual 构建塔视觉合成树
//
// 固定顺序组装图层：outerGlow, midGlow, glow, basePlatform, body,
// barrel（含 muzzleFlash 子节点）, details, stars, range, cooldown,
// mergeHighlight, lodDetail。每个图层使用配置中的 Z 值，
// range/cooldown/mergeHighlight/muzzleFlash 初始隐藏。
//
// 组装完成后调用 starter（可为 nil）恰好一次。
//
// 参数:
//   - cfg: 视觉配置，nil 时使用 config.DefaultTowerVisualConfig()
//   - p: 构建参数
//   - starter: 待机动画启动入口
//
// 返回:
//   - *scenegraph.Node: 名为 "tower" 的根节点
func BuildTowerVisual(cfg *config.TowerVisualConfig, p TowerVisualParams, starter IdleAnimationStarter) *scenegraph.Node {
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}

	archetype := types.ParseArchetype(p.WeaponType)
	rarity := types.ParseRarity(p.Rarity)
	ctx := newBuildContext(cfg, archetype, rarity, p.Color)

	root := scenegraph.NewContainer(TowerRootName)

	attachLayer(root, cfg, types.SlotOuterGlow, buildOuterGlow(ctx))
	attachLayer(root, cfg, types.SlotMidGlow, buildMidGlow(ctx))
	attachLayer(root, cfg, types.SlotGlow, buildGlow(ctx))
	attachLayer(root, cfg, types.SlotBasePlatform, buildPlatform(ctx))
	attachLayer(root, cfg, types.SlotBody, buildBody(ctx))

	barrel := attachLayer(root, cfg, types.SlotBarrel, buildBarrel(ctx))
	attachLayer(barrel, cfg, types.SlotMuzzleFlash, buildMuzzleFlash(ctx))

	attachLayer(root, cfg, types.SlotDetails, buildDetails(ctx))
	attachLayer(root, cfg, types.SlotStars, buildMergeIndicator(ctx, p.MergeLevel))
	// 范围圈按组装顺序插在第 9 位，绘制顺序由 Z 决定（-10，位于最底层）
	attachLayer(root, cfg, types.SlotRange, buildRangeIndicator(ctx, p.Range))
	attachLayer(root, cfg, types.SlotCooldown, buildCooldownArc(ctx))
	attachLayer(root, cfg, types.SlotMergeHighlight, buildMergeHighlight(ctx))
	attachLayer(root, cfg, types.SlotLODDetail, buildLODDetail(ctx, p.Level, ComputeDPS(p.Damage, p.AttackSpeed, p.ProjectileCount)))

	if starter != nil {
		starter.StartIdleAnimation(root, archetype, p.Color)
	}

	return root
}

// attachLayer 为图层子树设置名称、Z 值和初始可见性并挂到父节点
func attachLayer(parent *scenegraph.Node, cfg *config.TowerVisualConfig, slot types.LayerSlot, layer *scenegraph.Node) *scenegraph.Node {
	layer.Name = slot.Name()
	layer.Hidden = slot.StartsHidden()
	return parent.AddChild(layer.WithZ(cfg.GetLayerZ(slot)))
}

// ecsIdleAnimationStarter 把待机动画启动请求转换为一次性命令组件
type ecsIdleAnimationStarter struct {
	em       *ecs.EntityManager
	entityID ecs.EntityID
}

// StartIdleAnimation 挂载 IdleAnimationCommandComponent，由 IdleAnimationSystem 消费
func (s *ecsIdleAnimationStarter) StartIdleAnimation(_ *scenegraph.Node, archetype types.Archetype, c color.NRGBA) {
	ecs.AddComponent(s.em, s.entityID, &components.IdleAnimationCommandComponent{
		Archetype: archetype,
		Color:     c,
	})
}

// NewTowerVisualEntity 创建塔视觉实体
//
// 构建合成树并挂载运行时协作系统需要的组件：
// PositionComponent, TowerVisualComponent, TowerStatsComponent,
// CooldownComponent, TowerAimComponent, TowerSelectionComponent，
// 以及一次性的 IdleAnimationCommandComponent。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 视觉配置（可为 nil）
//   - p: 构建参数
//   - x, y: 塔中心的世界坐标
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败时返回 0
//   - error: em 为 nil 时返回错误
func NewTowerVisualEntity(em *ecs.EntityManager, cfg *config.TowerVisualConfig, p TowerVisualParams, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}

	entityID := em.CreateEntity()

	root := BuildTowerVisual(cfg, p, &ecsIdleAnimationStarter{em: em, entityID: entityID})

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, &components.TowerVisualComponent{
		Root:      root,
		Archetype: types.ParseArchetype(p.WeaponType),
		Rarity:    types.ParseRarity(p.Rarity),
		Color:     p.Color,
		Scale:     1,
	})
	ecs.AddComponent(em, entityID, &components.TowerStatsComponent{
		Level:           p.Level,
		MergeLevel:      p.MergeLevel,
		Damage:          p.Damage,
		AttackSpeed:     p.AttackSpeed,
		ProjectileCount: p.ProjectileCount,
		Range:           p.Range,
	})
	ecs.AddComponent(em, entityID, &components.CooldownComponent{})
	ecs.AddComponent(em, entityID, &components.TowerAimComponent{TurnSpeed: cfg.Aim.TurnSpeed})
	ecs.AddComponent(em, entityID, &components.TowerSelectionComponent{})

	log.Printf("[TowerVisualFactory] Created tower entity %d: %s/%s at (%.1f, %.1f), %d nodes",
		entityID, types.ParseArchetype(p.WeaponType), types.ParseRarity(p.Rarity), x, y, root.CountNodes())

	return entityID, nil
}
