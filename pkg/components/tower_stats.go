package components

// TowerStatsComponent 塔的数值属性（视觉用）
//
// 数值只用于 LOD 细节显示（DPS、等级）和范围圈半径，不参与战斗结算。
// 修改数值后设置 Dirty = true，TowerLODSystem 会在下一帧刷新标签文字。
type TowerStatsComponent struct {
	Level           int
	MergeLevel      int
	Damage          float64
	AttackSpeed     float64
	ProjectileCount int
	Range           float64

	// Dirty 数值已变更，标签待刷新
	Dirty bool
}
