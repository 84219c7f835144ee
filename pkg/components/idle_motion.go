package components

import "github.com/gonewx/towerviz/pkg/types"

// IdleMotionComponent 正在运行的待机动画状态
//
// 由 IdleAnimationSystem 在消费 IdleAnimationCommandComponent 时添加，
// 之后每帧推进 Elapsed 并驱动合成树中的具名部件。
type IdleMotionComponent struct {
	// Style 运动风格
	Style types.IdleMotion

	// Elapsed 动画累计时间（秒）
	Elapsed float64

	// Phase 初始相位（弧度），让同原型的多座塔不同步
	Phase float64

	// Step 序列/闪烁动画当前步（由 Elapsed 推导，缓存用于检测步进）
	Step int
}
