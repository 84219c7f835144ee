package components

// TowerSelectionComponent 塔的选中/合成候选状态
type TowerSelectionComponent struct {
	// Selected 被玩家选中，显示范围圈
	Selected bool

	// MergeCandidate 拖拽中可以与之合成，显示合成高亮
	MergeCandidate bool

	// HighlightElapsed 合成高亮脉冲计时（秒）
	HighlightElapsed float64
}
