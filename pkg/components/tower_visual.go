package components

import (
	"image/color"

	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
)

// TowerVisualComponent 塔的视觉合成树
//
// Root 由 entities.BuildTowerVisual 生成，组件独占这棵树。
// 其他系统（待机动画、冷却、LOD、瞄准、选中）通过 Root.Slot / Root.FindPart
// 定位子节点并就地修改可见性、透明度、旋转等属性。
//
// Archetype/Rarity/Color 是构建时解析结果的副本，供协作系统选择行为，
// 不会反过来影响已经构建好的树。
type TowerVisualComponent struct {
	Root      *scenegraph.Node
	Archetype types.Archetype
	Rarity    types.RarityTier
	Color     color.NRGBA

	// Scale 整体缩放（展示程序按镜头缩放设置），0 视为 1
	Scale float64
}
