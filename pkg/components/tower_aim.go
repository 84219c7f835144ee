package components

// TowerAimComponent 炮管瞄准状态
//
// 炮管节点以基部为原点，旋转即可让炮口指向目标。
// 角度为弧度，0 表示炮口朝上（-Y），顺时针为正。
type TowerAimComponent struct {
	// TargetAngle 目标角度
	TargetAngle float64

	// HasTarget 是否有目标；无目标时炮管保持当前角度
	HasTarget bool

	// TurnSpeed 转向速度（弧度/秒），0 表示立即对准
	TurnSpeed float64

	// FireRequested 请求开火，由 TowerAimSystem 消费后清除
	FireRequested bool

	// FlashRemaining 炮口闪光剩余显示时间（秒）
	FlashRemaining float64
}
