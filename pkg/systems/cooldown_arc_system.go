package systems

import (
	"math"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/types"
)

// CooldownArcSystem 把攻击冷却映射到冷却弧
//
// 冷却弧从正上方（-90°）开始，扫过 2π·Remaining/Duration，
// 随冷却推进逐渐缩短；Remaining <= 0 时隐藏。
type CooldownArcSystem struct {
	entityManager *ecs.EntityManager
}

// NewCooldownArcSystem 创建冷却弧系统
func NewCooldownArcSystem(em *ecs.EntityManager) *CooldownArcSystem {
	return &CooldownArcSystem{
		entityManager: em,
	}
}

// CooldownSweep 冷却剩余比例对应的扫过角度（弧度），结果在 [0, 2π]
func CooldownSweep(remaining, duration float64) float64 {
	if duration <= 0 || remaining <= 0 {
		return 0
	}
	return 2 * math.Pi * math.Min(1, remaining/duration)
}

// StartCooldown 开始一次完整冷却
func StartCooldown(em *ecs.EntityManager, id ecs.EntityID, duration float64) {
	cd, ok := ecs.GetComponent[*components.CooldownComponent](em, id)
	if !ok {
		return
	}
	cd.Duration = duration
	cd.Remaining = duration
}

// Update 递减冷却并刷新冷却弧
func (s *CooldownArcSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.CooldownComponent, *components.TowerVisualComponent](s.entityManager)

	for _, id := range entities {
		cd, _ := ecs.GetComponent[*components.CooldownComponent](s.entityManager, id)
		visual, _ := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, id)

		if cd.Remaining > 0 {
			cd.Remaining = math.Max(0, cd.Remaining-deltaTime)
		}

		arc := visual.Root.Slot(types.SlotCooldown)
		if arc == nil {
			continue
		}

		sweep := CooldownSweep(cd.Remaining, cd.Duration)
		arc.Geometry.StartAngle = -math.Pi / 2
		arc.Geometry.EndAngle = -math.Pi/2 + sweep
		arc.Hidden = sweep == 0
	}
}
