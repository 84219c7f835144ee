package config

// 布局配置常量
// 本文件定义了展示程序的窗口尺寸和塔网格的排布方式

// Window Configuration (窗口配置)
const (
	// ShowcaseWindowWidth 是展示程序的逻辑屏幕宽度
	ShowcaseWindowWidth = 960

	// ShowcaseWindowHeight 是展示程序的逻辑屏幕高度
	ShowcaseWindowHeight = 720

	// TowerPickRadius 点击选中塔的判定半径（世界坐标）
	// 与默认平台尺寸的一半（30）一致
	TowerPickRadius = 30.0
)

// GridPosition 返回第 index 座塔在展示网格中的世界坐标
//
// 网格以世界原点为中心：镜头位于 (0, 0) 时整张网格居中显示。
// 列数由 columns 决定，行数由 count 推导。
//
// 参数：
//   - index: 塔的序号（0-based）
//   - columns: 每行的塔数量（<= 0 时按 1 处理）
//   - count: 塔的总数
//   - cellSize: 网格单元尺寸
//
// 返回：
//   - x, y: 单元中心的世界坐标
func GridPosition(index, columns, count int, cellSize float64) (x, y float64) {
	if columns <= 0 {
		columns = 1
	}
	rows := (count + columns - 1) / columns
	if rows < 1 {
		rows = 1
	}
	cols := columns
	if count < columns {
		cols = count
	}
	if cols < 1 {
		cols = 1
	}

	col := index % columns
	row := index / columns

	x = (float64(col) - float64(cols-1)/2) * cellSize
	y = (float64(row) - float64(rows-1)/2) * cellSize
	return x, y
}
