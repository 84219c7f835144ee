package components

// PositionComponent 实体在世界坐标中的位置（塔的中心点）
type PositionComponent struct {
	X float64
	Y float64
}
