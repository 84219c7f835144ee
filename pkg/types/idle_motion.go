package types

// IdleMotion 待机动画风格
// 由原型决定，动画系统据此选择旋转、脉冲、环绕等运动
type IdleMotion int

const (
	// IdleRotate 缓慢旋转（瞄准环、神圣光环）
	IdleRotate IdleMotion = iota
	// IdlePulse 透明度/缩放脉冲
	IdlePulse
	// IdleOrbit 部件绕中心环绕
	IdleOrbit
	// IdleFlicker 放电节点随机闪烁
	IdleFlicker
	// IdleSequence 进程节点依次点亮
	IdleSequence
)

// IdleMotionFor 返回原型对应的待机动画风格
func IdleMotionFor(a Archetype) IdleMotion {
	switch a {
	case ArchetypeProjectile, ArchetypeLegendary:
		return IdleRotate
	case ArchetypeArtillery, ArchetypeBeam, ArchetypePyro, ArchetypeExecute:
		return IdlePulse
	case ArchetypeFrost, ArchetypeMagic:
		return IdleOrbit
	case ArchetypeTesla:
		return IdleFlicker
	case ArchetypeMultishot:
		return IdleSequence
	default:
		return IdlePulse
	}
}

// String 返回动画风格名称
func (m IdleMotion) String() string {
	switch m {
	case IdleRotate:
		return "rotate"
	case IdlePulse:
		return "pulse"
	case IdleOrbit:
		return "orbit"
	case IdleFlicker:
		return "flicker"
	case IdleSequence:
		return "sequence"
	default:
		return "unknown"
	}
}
