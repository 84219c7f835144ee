package types

import "strconv"

// PartName 构建器子树中的具名部件
//
// 与 LayerSlot 一样属于外部契约：待机动画按名称定位部件（如 conductor、hub、
// processNode_0）。名称在直接父节点内唯一，跨构建器版本保持稳定。
// 带序号的部件用 Index 生成，如 PartProcessNode.Index(2) == "processNode_2"。
type PartName string

// Index 返回带序号的部件名
func (p PartName) Index(i int) PartName {
	return p + "_" + PartName(strconv.Itoa(i))
}

// String 实现 fmt.Stringer
func (p PartName) String() string {
	return string(p)
}

// 光晕
const (
	PartGlowDisc     PartName = "glowDisc"
	PartRotatingRing PartName = "rotatingRing"
)

// 弹射型
const (
	PartTargetRingOuter PartName = "targetRingOuter"
	PartTargetRingInner PartName = "targetRingInner"
	PartCrosshair       PartName = "crosshair"
	PartCornerBracket   PartName = "cornerBracket"
	PartCenterDot       PartName = "centerDot"
	PartOctagon         PartName = "octagon"
	PartCircuitTrace    PartName = "circuitTrace"
)

// 火炮型
const (
	PartHull            PartName = "hull"
	PartArmorPlate      PartName = "armorPlate"
	PartAmmoIndicator   PartName = "ammoIndicator"
	PartReinforcedPlate PartName = "reinforcedPlate"
	PartBolt            PartName = "bolt"
)

// 冰霜型
const (
	PartCrystalStar PartName = "crystalStar"
	PartInnerFacet  PartName = "innerFacet"
	PartDiamond     PartName = "diamond"
	PartIceShard    PartName = "iceShard"
)

// 魔法型
const (
	PartOrbPlatform PartName = "orbPlatform"
	PartCenterOrb   PartName = "centerOrb"
	PartRune        PartName = "rune"
	PartArcaneOuter PartName = "arcaneCircleOuter"
	PartArcaneInner PartName = "arcaneCircleInner"
	PartRuneMarker  PartName = "runeMarker"
)

// 光束型
const (
	PartHousing    PartName = "housing"
	PartLens       PartName = "lens"
	PartLensRing   PartName = "lensRing"
	PartGridPlate  PartName = "gridPlate"
	PartGridTraceH PartName = "gridTraceH"
	PartGridTraceV PartName = "gridTraceV"
)

// 电塔型
const (
	PartCoilBase      PartName = "coilBase"
	PartConductor     PartName = "conductor"
	PartDischargeNode PartName = "dischargeNode"
	PartInsulator     PartName = "insulator"
	PartInsulatorRing PartName = "insulatorRing"
)

// 火焰型
const (
	PartFuelHousing     PartName = "fuelHousing"
	PartFuelTank        PartName = "fuelTank"
	PartPilotFlame      PartName = "pilotFlame"
	PartIndustrialPlate PartName = "industrialPlate"
	PartHazardStripe    PartName = "hazardStripe"
)

// 传说型
const (
	PartDivineCore PartName = "divineCore"
	PartSword      PartName = "sword"
	PartDivineRing PartName = "divineRing"
	PartHexagram   PartName = "hexagram"
	PartDivineRay  PartName = "divineRay"
)

// 多重射击型
const (
	PartHub         PartName = "hub"
	PartProcessNode PartName = "processNode"
	PartProcessLink PartName = "processLink"
	PartServerRack  PartName = "serverRack"
	PartRackSlot    PartName = "rackSlot"
)

// 处决型
const (
	PartWarningTriangle PartName = "warningTriangle"
	PartWarningMark     PartName = "warningMark"
	PartDarkPlate       PartName = "darkPlate"
)

// 炮管
const (
	PartBarrelTube    PartName = "barrelTube"
	PartMuzzleBrake   PartName = "muzzleBrake"
	PartMortarRing    PartName = "mortarRing"
	PartIceTip        PartName = "iceTip"
	PartFloatingOrb   PartName = "floatingOrb"
	PartFocusLens     PartName = "focusLens"
	PartAntennaSphere PartName = "antennaSphere"
	PartNozzle        PartName = "nozzle"
	PartLightBeam     PartName = "lightBeam"
	PartEmitter       PartName = "emitter"
	PartGlitchBlock   PartName = "glitchBlock"
)

// 装饰层
const (
	PartMergeGlyph    PartName = "mergeGlyph"
	PartDPSBackground PartName = "dpsBackground"
	PartDPSLabel      PartName = "dpsLabel"
	PartLevelBadge    PartName = "levelBadge"
	PartLevelLabel    PartName = "levelLabel"
	PartRarityPip     PartName = "rarityPip"
)
