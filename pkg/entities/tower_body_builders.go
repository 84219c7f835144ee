package entities

import (
	"log"
	"math"

	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
)

// MagicRuneOrbitRadius 魔法塔符文环绕半径
const MagicRuneOrbitRadius = 16.0

// TeslaNodeLift 电塔放电节点的垂直偏移
const TeslaNodeLift = 4.0

// swordOutline 传说塔剑形轮廓（14 点，半径 18 时的坐标，剑尖朝上）
var swordOutline = []scenegraph.Point{
	{X: 0, Y: -16},
	{X: 2.5, Y: -11},
	{X: 2.5, Y: 3},
	{X: 7, Y: 3},
	{X: 7, Y: 5.5},
	{X: 2, Y: 5.5},
	{X: 2, Y: 12},
	{X: 0, Y: 14},
	{X: -2, Y: 12},
	{X: -2, Y: 5.5},
	{X: -7, Y: 5.5},
	{X: -7, Y: 3},
	{X: -2.5, Y: 3},
	{X: -2.5, Y: -11},
}

func (ctx *buildContext) bodyStyle() scenegraph.ShapeStyle {
	return scenegraph.FilledStroked(ctx.palette.base, ctx.palette.dark, ctx.lineWidth())
}

// buildBody 按原型构建塔身
func buildBody(ctx *buildContext) *scenegraph.Node {
	layer := scenegraph.NewContainer("")

	switch ctx.archetype {
	case types.ArchetypeProjectile:
		buildProjectileBody(ctx, layer)
	case types.ArchetypeArtillery:
		buildArtilleryBody(ctx, layer)
	case types.ArchetypeFrost:
		buildFrostBody(ctx, layer)
	case types.ArchetypeMagic:
		buildMagicBody(ctx, layer)
	case types.ArchetypeBeam:
		buildBeamBody(ctx, layer)
	case types.ArchetypeTesla:
		buildTeslaBody(ctx, layer)
	case types.ArchetypePyro:
		buildPyroBody(ctx, layer)
	case types.ArchetypeLegendary:
		buildLegendaryBody(ctx, layer)
	case types.ArchetypeMultishot:
		buildMultishotBody(ctx, layer)
	case types.ArchetypeExecute:
		buildExecuteBody(ctx, layer)
	default:
		log.Printf("[TowerVisualFactory] Warning: no body recipe for archetype %d, using projectile", ctx.archetype)
		buildProjectileBody(ctx, layer)
	}

	return layer
}

// 同心瞄准环 + 4 条准星（间隔 90°）+ 4 个角括号（偏移 45°）+ 中心点
func buildProjectileBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()

	// 外环由四段弧组成，旋转时可见
	arcs := make([]scenegraph.Geometry, 0, 4)
	for i := 0; i < 4; i++ {
		start := float64(i)*math.Pi/2 + 0.2
		arcs = append(arcs, scenegraph.Arc(r, start, start+math.Pi/2-0.4))
	}
	layer.AddChild(scenegraph.NewShape(string(types.PartTargetRingOuter),
		scenegraph.Compound(arcs...), scenegraph.Stroked(ctx.palette.base, ctx.lineWidth())))
	layer.AddChild(scenegraph.NewShape(string(types.PartTargetRingInner),
		scenegraph.Circle(r*0.6), ctx.bodyStyle()))

	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		line := scenegraph.Line(scenegraph.Polar(r*0.3, angle), scenegraph.Polar(r*0.85, angle))
		layer.AddChild(scenegraph.NewShape(string(types.PartCrosshair.Index(i)),
			line, scenegraph.Stroked(ctx.palette.light, 1.5)))
	}

	for i := 0; i < 4; i++ {
		angle := math.Pi/4 + float64(i)*math.Pi/2
		bracket := scenegraph.Arc(r+4, angle-0.3, angle+0.3)
		layer.AddChild(scenegraph.NewShape(string(types.PartCornerBracket.Index(i)),
			bracket, scenegraph.Stroked(ctx.palette.stroke, 2).WithCap(scenegraph.LineCapSquare)))
	}

	layer.AddChild(scenegraph.NewShape(string(types.PartCenterDot),
		scenegraph.Circle(2.5), ctx.accentStyle()))
}

// 圆角方形炮塔 + 2 条水平装甲线 + 发光弹药指示灯
func buildArtilleryBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	layer.AddChild(scenegraph.NewShape(string(types.PartHull),
		scenegraph.RoundedRect(2*r, 2*r, 5), ctx.bodyStyle()))

	for i, y := range []float64{-r / 3, r / 3} {
		line := scenegraph.Line(scenegraph.Point{X: -r * 0.8, Y: y}, scenegraph.Point{X: r * 0.8, Y: y})
		layer.AddChild(scenegraph.NewShape(string(types.PartArmorPlate.Index(i)),
			line, scenegraph.Stroked(ctx.palette.dark, 1.5)))
	}

	layer.AddChild(scenegraph.NewShape(string(types.PartAmmoIndicator),
		scenegraph.Circle(4), ctx.glowingAccentStyle(3)).At(0, r*0.55))
}

// 6 角星（内点 0.6 倍半径）+ 旋转 30° 的内部晶面
func buildFrostBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	star := scenegraph.StarPolygon(6, r, r*0.6, -math.Pi/2)
	layer.AddChild(scenegraph.NewShape(string(types.PartCrystalStar), star,
		scenegraph.FilledStroked(utils.WithAlpha(ctx.palette.base, 0.85), ctx.palette.light, ctx.lineWidth())))

	facet := scenegraph.StarPolygon(6, r*0.5, r*0.3, -math.Pi/2)
	layer.AddChild(scenegraph.NewShape(string(types.PartInnerFacet), facet,
		scenegraph.Stroked(ctx.palette.light, 1)).WithRotation(math.Pi / 6))
}

// 法球底座 + 发光中心法球 + 3 个环绕符文（120° 间隔，半径 16）
func buildMagicBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	layer.AddChild(scenegraph.NewShape(string(types.PartOrbPlatform),
		scenegraph.Circle(r), scenegraph.FilledStroked(ctx.palette.dark, ctx.palette.base, ctx.lineWidth())))
	layer.AddChild(scenegraph.NewShape(string(types.PartCenterOrb),
		scenegraph.Circle(r*0.45), ctx.glowingAccentStyle(5)))

	for i := 0; i < 3; i++ {
		p := scenegraph.Polar(MagicRuneOrbitRadius, -math.Pi/2+float64(i)*2*math.Pi/3)
		layer.AddChild(scenegraph.NewShape(string(types.PartRune.Index(i)),
			scenegraph.RegularPolygon(3, 3.5, -math.Pi/2), ctx.accentStyle()).At(p.X, p.Y))
	}
}

// 圆角方形外壳 + 发光透镜 + 透镜内环
func buildBeamBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	layer.AddChild(scenegraph.NewShape(string(types.PartHousing),
		scenegraph.RoundedRect(2*r, 2*r, 6), ctx.bodyStyle()))
	layer.AddChild(scenegraph.NewShape(string(types.PartLens),
		scenegraph.Circle(r*0.5), ctx.glowingAccentStyle(4)))
	layer.AddChild(scenegraph.NewShape(string(types.PartLensRing),
		scenegraph.Circle(r*0.7), scenegraph.Stroked(ctx.palette.light, 1)))
}

// 椭圆线圈座 + 中心导电尖刺 + 4 个放电节点（四个正方向，下移 4）
func buildTeslaBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	layer.AddChild(scenegraph.NewShape(string(types.PartCoilBase),
		scenegraph.Ellipse(2*r, 1.4*r), ctx.bodyStyle()))

	spike := scenegraph.Polygon(
		scenegraph.Point{X: -3, Y: 0},
		scenegraph.Point{X: 0, Y: -r * 1.1},
		scenegraph.Point{X: 3, Y: 0},
	)
	layer.AddChild(scenegraph.NewShape(string(types.PartConductor), spike,
		scenegraph.FilledStroked(ctx.palette.light, ctx.palette.stroke, 1)))

	for i := 0; i < 4; i++ {
		p := scenegraph.Polar(r*0.8, float64(i)*math.Pi/2)
		layer.AddChild(scenegraph.NewShape(string(types.PartDischargeNode.Index(i)),
			scenegraph.Circle(3), ctx.glowingAccentStyle(3)).At(p.X, p.Y+TeslaNodeLift))
	}
}

// 圆角矩形燃料舱 + 两侧燃料罐 + 发光引燃火苗
func buildPyroBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	layer.AddChild(scenegraph.NewShape(string(types.PartFuelHousing),
		scenegraph.RoundedRect(1.6*r, 2*r, 5), ctx.bodyStyle()))

	for i, x := range []float64{-r, r} {
		layer.AddChild(scenegraph.NewShape(string(types.PartFuelTank.Index(i)),
			scenegraph.Ellipse(r*0.5, r*1.2), scenegraph.FilledStroked(ctx.palette.dark, ctx.palette.stroke, 1)).At(x, 0))
	}

	flame := utils.Mix(ctx.palette.light, hazardAmber, 0.5)
	layer.AddChild(scenegraph.NewShape(string(types.PartPilotFlame),
		scenegraph.Circle(3), scenegraph.Filled(flame).WithGlow(4).WithBlend(scenegraph.BlendAdd)).At(0, r*0.4))
}

// 发光圆核 + 14 点剑形
func buildLegendaryBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	layer.AddChild(scenegraph.NewShape(string(types.PartDivineCore),
		scenegraph.Circle(r), ctx.bodyStyle().WithGlow(4)))

	scale := r / 18
	points := make([]scenegraph.Point, len(swordOutline))
	for i, p := range swordOutline {
		points[i] = scenegraph.Point{X: p.X * scale, Y: p.Y * scale}
	}
	layer.AddChild(scenegraph.NewShape(string(types.PartSword), scenegraph.Polygon(points...),
		scenegraph.FilledStroked(ctx.palette.light, ctx.palette.dark, 1)))
}

// 中心枢纽 + 五边形排列的 5 个处理节点（起始角 -90°），每个节点连线到枢纽
func buildMultishotBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()

	nodes := make([]scenegraph.Point, 5)
	for i := range nodes {
		nodes[i] = scenegraph.Polar(r*0.85, -math.Pi/2+float64(i)*2*math.Pi/5)
	}

	// 连线先加入，绘制在节点下方
	for i, p := range nodes {
		layer.AddChild(scenegraph.NewShape(string(types.PartProcessLink.Index(i)),
			scenegraph.Line(scenegraph.Point{}, p), scenegraph.Stroked(utils.WithAlpha(ctx.palette.light, 0.7), 1)))
	}

	layer.AddChild(scenegraph.NewShape(string(types.PartHub),
		scenegraph.Circle(r*0.4), ctx.bodyStyle()))

	for i, p := range nodes {
		layer.AddChild(scenegraph.NewShape(string(types.PartProcessNode.Index(i)),
			scenegraph.Circle(3.5), ctx.accentStyle()).At(p.X, p.Y))
	}
}

// 警告三角 + 居中的 "!" 标签
func buildExecuteBody(ctx *buildContext, layer *scenegraph.Node) {
	r := ctx.bodyRadius()
	layer.AddChild(scenegraph.NewShape(string(types.PartWarningTriangle),
		scenegraph.RegularPolygon(3, r, -math.Pi/2), scenegraph.FilledStroked(ctx.palette.base, executeRed, ctx.lineWidth())))

	layer.AddChild(scenegraph.NewLabel(string(types.PartWarningMark), "!", 14, executePlate).At(0, r*0.15))
}
