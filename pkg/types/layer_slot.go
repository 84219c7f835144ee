package types

// LayerSlot 塔视觉复合节点中的图层槽位
//
// 槽位名称是与动画、玩法、UI 等外部协作者之间的契约：
// 协作者通过名称定位图层来切换可见性、更新逐帧数值或驱动待机动画。
// 改名会破坏外部查找，只能新增不能修改。
type LayerSlot int

const (
	SlotOuterGlow LayerSlot = iota
	SlotMidGlow
	SlotGlow
	SlotBasePlatform
	SlotBody
	SlotBarrel
	SlotMuzzleFlash // 嵌套在 barrel 下
	SlotDetails
	SlotStars
	SlotRange
	SlotCooldown
	SlotMergeHighlight
	SlotLODDetail

	layerSlotCount
)

// LayerSlotCount 槽位总数
const LayerSlotCount = int(layerSlotCount)

var layerSlotNames = [layerSlotCount]string{
	SlotOuterGlow:      "outerGlow",
	SlotMidGlow:        "midGlow",
	SlotGlow:           "glow",
	SlotBasePlatform:   "basePlatform",
	SlotBody:           "body",
	SlotBarrel:         "barrel",
	SlotMuzzleFlash:    "muzzleFlash",
	SlotDetails:        "details",
	SlotStars:          "stars",
	SlotRange:          "range",
	SlotCooldown:       "cooldown",
	SlotMergeHighlight: "mergeHighlight",
	SlotLODDetail:      "lodDetail",
}

// Name 返回槽位的稳定名称
func (s LayerSlot) Name() string {
	if s < 0 || s >= layerSlotCount {
		return ""
	}
	return layerSlotNames[s]
}

// String 实现 fmt.Stringer
func (s LayerSlot) String() string {
	return s.Name()
}

// TopLevelSlots 按组装顺序返回根节点的直接子图层
// 该顺序同时决定兄弟节点的迭代顺序（muzzleFlash 不在其中）
func TopLevelSlots() []LayerSlot {
	return []LayerSlot{
		SlotOuterGlow,
		SlotMidGlow,
		SlotGlow,
		SlotBasePlatform,
		SlotBody,
		SlotBarrel,
		SlotDetails,
		SlotStars,
		SlotRange,
		SlotCooldown,
		SlotMergeHighlight,
		SlotLODDetail,
	}
}

// StartsHidden 图层创建时是否隐藏
func (s LayerSlot) StartsHidden() bool {
	switch s {
	case SlotRange, SlotCooldown, SlotMergeHighlight, SlotMuzzleFlash:
		return true
	default:
		return false
	}
}

// IsGlow 是否为光晕图层（渲染时使用叠加混合）
func (s LayerSlot) IsGlow() bool {
	return s == SlotOuterGlow || s == SlotMidGlow || s == SlotGlow
}
