package systems

import (
	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/game"
	"github.com/gonewx/towerviz/pkg/types"
)

// TowerSelectionSystem 选中与合成候选的视觉反馈
//
//   - 选中且设置允许时显示范围圈
//   - 合成候选时显示合成高亮环，透明度按脉冲周期呼吸
type TowerSelectionSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TowerVisualConfig
	gameState     *game.GameState
}

// NewTowerSelectionSystem 创建选中系统
func NewTowerSelectionSystem(em *ecs.EntityManager, cfg *config.TowerVisualConfig, gs *game.GameState) *TowerSelectionSystem {
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}
	return &TowerSelectionSystem{
		entityManager: em,
		config:        cfg,
		gameState:     gs,
	}
}

// Select 选中一座塔（0 表示取消选中），其余塔取消选中
func (s *TowerSelectionSystem) Select(target ecs.EntityID) {
	ids := ecs.GetEntitiesWith1[*components.TowerSelectionComponent](s.entityManager)
	for _, id := range ids {
		sel, _ := ecs.GetComponent[*components.TowerSelectionComponent](s.entityManager, id)
		sel.Selected = id == target
	}
	if s.gameState != nil {
		s.gameState.SelectedTower = target
	}
}

// SetMergeCandidate 设置塔是否为合成候选
func (s *TowerSelectionSystem) SetMergeCandidate(id ecs.EntityID, candidate bool) {
	sel, ok := ecs.GetComponent[*components.TowerSelectionComponent](s.entityManager, id)
	if !ok {
		return
	}
	if candidate && !sel.MergeCandidate {
		sel.HighlightElapsed = 0
	}
	sel.MergeCandidate = candidate
}

// Update 更新范围圈和合成高亮的可见性
func (s *TowerSelectionSystem) Update(deltaTime float64) {
	showRange := true
	if s.gameState != nil {
		showRange = s.gameState.Settings().ShowRangeOnSelect
	}
	idle := s.config.Idle

	ids := ecs.GetEntitiesWith2[*components.TowerSelectionComponent, *components.TowerVisualComponent](s.entityManager)
	for _, id := range ids {
		sel, _ := ecs.GetComponent[*components.TowerSelectionComponent](s.entityManager, id)
		visual, _ := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, id)

		if rng := visual.Root.Slot(types.SlotRange); rng != nil {
			rng.Hidden = !(sel.Selected && showRange)
		}

		highlight := visual.Root.Slot(types.SlotMergeHighlight)
		if highlight == nil {
			continue
		}
		if !sel.MergeCandidate {
			highlight.Hidden = true
			continue
		}
		sel.HighlightElapsed += deltaTime
		highlight.Hidden = false
		// 合成高亮的呼吸比待机脉冲快一倍
		highlight.Alpha = PulseAlpha(sel.HighlightElapsed, idle.PulsePeriod/2, 0, idle.PulseMinAlpha)
	}
}
