package components

// CooldownComponent 攻击冷却状态
//
// CooldownArcSystem 每帧递减 Remaining，并把 Remaining/Duration
// 映射为冷却弧的扫过角度。Remaining <= 0 时冷却弧隐藏。
type CooldownComponent struct {
	// Duration 一次完整冷却的时长（秒）
	Duration float64

	// Remaining 剩余冷却时间（秒）
	Remaining float64
}
