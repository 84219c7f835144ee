package systems

import (
	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/entities"
	"github.com/gonewx/towerviz/pkg/game"
	"github.com/gonewx/towerviz/pkg/types"
)

// TowerLODSystem 控制 LOD 细节层
//
//   - 数值变更（TowerStatsComponent.Dirty）时刷新 DPS 和等级标签，并同步合成标记与范围圈半径
//   - 设置开启 LOD 且镜头缩放达到阈值时显示 lodDetail
type TowerLODSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TowerVisualConfig
	gameState     *game.GameState
}

// NewTowerLODSystem 创建 LOD 系统
// cfg 为 nil 时使用默认配置
func NewTowerLODSystem(em *ecs.EntityManager, cfg *config.TowerVisualConfig, gs *game.GameState) *TowerLODSystem {
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}
	return &TowerLODSystem{
		entityManager: em,
		config:        cfg,
		gameState:     gs,
	}
}

// LODVisible LOD 细节是否可见
func (s *TowerLODSystem) LODVisible() bool {
	if s.gameState == nil {
		return false
	}
	settings := s.gameState.Settings()
	if !settings.LODEnabled {
		return false
	}
	return s.gameState.CameraZoom >= settings.EffectiveLODThreshold(s.config.LOD.ZoomThreshold)
}

// Update 刷新脏标签并更新 LOD 可见性
func (s *TowerLODSystem) Update(deltaTime float64) {
	visible := s.LODVisible()

	ids := ecs.GetEntitiesWith2[*components.TowerStatsComponent, *components.TowerVisualComponent](s.entityManager)
	for _, id := range ids {
		stats, _ := ecs.GetComponent[*components.TowerStatsComponent](s.entityManager, id)
		visual, _ := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, id)

		lod := visual.Root.Slot(types.SlotLODDetail)
		if lod == nil {
			continue
		}

		if stats.Dirty {
			s.refresh(visual, stats)
			stats.Dirty = false
		}
		lod.Hidden = !visible
	}
}

func (s *TowerLODSystem) refresh(visual *components.TowerVisualComponent, stats *components.TowerStatsComponent) {
	root := visual.Root
	dps := entities.ComputeDPS(stats.Damage, stats.AttackSpeed, stats.ProjectileCount)
	entities.UpdateLODDetail(root.Slot(types.SlotLODDetail), s.config, dps, stats.Level)
	entities.SetMergeLevel(root, s.config, visual.Archetype, visual.Rarity, visual.Color, stats.MergeLevel)

	if rng := root.Slot(types.SlotRange); rng != nil {
		rng.Geometry.Radius = stats.Range
	}
}
