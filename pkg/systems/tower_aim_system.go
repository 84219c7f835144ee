package systems

import (
	"math"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
)

// TowerAimSystem 炮管瞄准与炮口闪光
//
// 炮管节点以基部为原点，直接设置 Rotation 即可让炮口指向目标。
// 角度约定与 TowerAimComponent 一致：0 朝上，顺时针为正。
type TowerAimSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TowerVisualConfig
}

// NewTowerAimSystem 创建瞄准系统
func NewTowerAimSystem(em *ecs.EntityManager, cfg *config.TowerVisualConfig) *TowerAimSystem {
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}
	return &TowerAimSystem{
		entityManager: em,
		config:        cfg,
	}
}

// AimAngle 从塔中心 (x, y) 指向目标 (tx, ty) 的炮管角度
// 0 表示正上方（-Y），顺时针为正
func AimAngle(x, y, tx, ty float64) float64 {
	return math.Atan2(tx-x, -(ty - y))
}

// normalizeAngle 把角度归一化到 (-π, π]
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// TurnToward 以不超过 maxStep 的步长从 current 转向 target，走最短方向
// maxStep <= 0 时直接返回 target
func TurnToward(current, target, maxStep float64) float64 {
	diff := normalizeAngle(target - current)
	if maxStep <= 0 || math.Abs(diff) <= maxStep {
		return current + diff
	}
	if diff > 0 {
		return current + maxStep
	}
	return current - maxStep
}

// SetAimTarget 让塔瞄准世界坐标中的目标点
func SetAimTarget(em *ecs.EntityManager, id ecs.EntityID, tx, ty float64) {
	aim, ok := ecs.GetComponent[*components.TowerAimComponent](em, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return
	}
	aim.TargetAngle = AimAngle(pos.X, pos.Y, tx, ty)
	aim.HasTarget = true
}

// TriggerFire 请求开火：下一次 Update 显示炮口闪光
func TriggerFire(em *ecs.EntityManager, id ecs.EntityID) {
	if aim, ok := ecs.GetComponent[*components.TowerAimComponent](em, id); ok {
		aim.FireRequested = true
	}
}

// Update 转动炮管并更新炮口闪光
func (s *TowerAimSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.TowerAimComponent, *components.TowerVisualComponent](s.entityManager)

	for _, id := range ids {
		aim, _ := ecs.GetComponent[*components.TowerAimComponent](s.entityManager, id)
		visual, _ := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, id)

		barrel := visual.Root.Slot(types.SlotBarrel)
		if barrel == nil {
			continue
		}

		if aim.HasTarget {
			barrel.Rotation = TurnToward(barrel.Rotation, aim.TargetAngle, aim.TurnSpeed*deltaTime)
		}

		if aim.FireRequested {
			aim.FireRequested = false
			aim.FlashRemaining = s.config.Aim.MuzzleFlashDuration
		} else if aim.FlashRemaining > 0 {
			aim.FlashRemaining = math.Max(0, aim.FlashRemaining-deltaTime)
		}

		if flash := visual.Root.Slot(types.SlotMuzzleFlash); flash != nil {
			flash.Hidden = aim.FlashRemaining <= 0
			if duration := s.config.Aim.MuzzleFlashDuration; duration > 0 {
				// 闪光先慢后快地淡出
				flash.Alpha = utils.EaseOutQuad(aim.FlashRemaining / duration)
			}
		}
	}
}
