package components

import (
	"image/color"

	"github.com/gonewx/towerviz/pkg/types"
)

// IdleAnimationCommandComponent 待机动画启动命令(纯数据)
//
// 设计目的:
//
//	塔视觉构建完成后只需"通知"动画系统一次，构建器不关心动画时序。
//	命令以组件形式挂到实体上，由 IdleAnimationSystem 在下一次 Update 中消费。
//
// 生命周期:
//  1. entities.NewTowerVisualEntity 构建完成后添加此组件（每座塔仅一次）
//  2. IdleAnimationSystem 查询未处理的命令，挂载 IdleMotionComponent
//  3. 执行后标记 Processed = true，并移除命令组件
//
// 注意事项:
//   - 组件只包含数据,不包含方法
//   - 命令不携带节点引用，动画系统从 TowerVisualComponent 取合成树
type IdleAnimationCommandComponent struct {
	// Archetype 塔原型，决定待机运动风格（旋转/脉冲/环绕/闪烁/序列）
	Archetype types.Archetype

	// Color 塔的基础色，供需要着色的动画使用
	Color color.NRGBA

	// Processed 是否已被 IdleAnimationSystem 处理
	Processed bool
}
