package entities

import (
	"image/color"
	"log"
	"math"

	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
)

var (
	hazardAmber  = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	executeRed   = color.NRGBA{R: 255, G: 23, B: 68, A: 255}
	executePlate = color.NRGBA{R: 18, G: 14, B: 20, A: 255}
)

// 共享样式
func (ctx *buildContext) plateStyle() scenegraph.ShapeStyle {
	return scenegraph.FilledStroked(ctx.palette.dark, ctx.palette.stroke, ctx.lineWidth())
}

func (ctx *buildContext) traceStyle() scenegraph.ShapeStyle {
	return scenegraph.Stroked(utils.WithAlpha(ctx.palette.light, 0.6), 1).WithCap(scenegraph.LineCapRound)
}

func (ctx *buildContext) accentStyle() scenegraph.ShapeStyle {
	return scenegraph.Filled(ctx.palette.light)
}

// glowingAccentStyle 发光部件：高光填充 + 外发光 + 叠加混合
func (ctx *buildContext) glowingAccentStyle(glowWidth float64) scenegraph.ShapeStyle {
	return scenegraph.Filled(ctx.palette.light).WithGlow(glowWidth).WithBlend(scenegraph.BlendAdd)
}

// buildPlatform 按原型构建底座平台
func buildPlatform(ctx *buildContext) *scenegraph.Node {
	layer := scenegraph.NewContainer("")

	switch ctx.archetype {
	case types.ArchetypeProjectile:
		buildProjectilePlatform(ctx, layer)
	case types.ArchetypeArtillery:
		buildArtilleryPlatform(ctx, layer)
	case types.ArchetypeFrost:
		buildFrostPlatform(ctx, layer)
	case types.ArchetypeMagic:
		buildMagicPlatform(ctx, layer)
	case types.ArchetypeBeam:
		buildBeamPlatform(ctx, layer)
	case types.ArchetypeTesla:
		buildTeslaPlatform(ctx, layer)
	case types.ArchetypePyro:
		buildPyroPlatform(ctx, layer)
	case types.ArchetypeLegendary:
		buildLegendaryPlatform(ctx, layer)
	case types.ArchetypeMultishot:
		buildMultishotPlatform(ctx, layer)
	case types.ArchetypeExecute:
		buildExecutePlatform(ctx, layer)
	default:
		log.Printf("[TowerVisualFactory] Warning: no platform recipe for archetype %d, using projectile", ctx.archetype)
		buildProjectilePlatform(ctx, layer)
	}

	return layer
}

// 八边形 + 十字电路走线
func buildProjectilePlatform(ctx *buildContext, layer *scenegraph.Node) {
	h := ctx.platformHalf()
	layer.AddChild(scenegraph.NewShape(string(types.PartOctagon),
		scenegraph.RegularPolygon(8, h, math.Pi/8), ctx.plateStyle()))

	reach := h * 0.8
	layer.AddChild(scenegraph.NewShape(string(types.PartCircuitTrace.Index(0)),
		scenegraph.Line(scenegraph.Point{X: -reach}, scenegraph.Point{X: reach}), ctx.traceStyle()))
	layer.AddChild(scenegraph.NewShape(string(types.PartCircuitTrace.Index(1)),
		scenegraph.Line(scenegraph.Point{Y: -reach}, scenegraph.Point{Y: reach}), ctx.traceStyle()))
}

// 加固方板 + 四角螺栓
func buildArtilleryPlatform(ctx *buildContext, layer *scenegraph.Node) {
	s := ctx.cfg.Geometry.PlatformSize
	layer.AddChild(scenegraph.NewShape(string(types.PartReinforcedPlate),
		scenegraph.RoundedRect(s, s, 4), ctx.plateStyle()))

	inset := s/2 - 6
	corners := []scenegraph.Point{
		{X: -inset, Y: -inset},
		{X: inset, Y: -inset},
		{X: inset, Y: inset},
		{X: -inset, Y: inset},
	}
	for i, c := range corners {
		layer.AddChild(scenegraph.NewShape(string(types.PartBolt.Index(i)),
			scenegraph.Circle(2.5), ctx.accentStyle()).At(c.X, c.Y))
	}
}

// 菱形轮廓
func buildFrostPlatform(ctx *buildContext, layer *scenegraph.Node) {
	s := ctx.cfg.Geometry.PlatformSize
	layer.AddChild(scenegraph.NewShape(string(types.PartDiamond),
		scenegraph.Diamond(s, s), ctx.plateStyle()))
}

// 双环法阵 + 6 个符文标记（60° 间隔）
func buildMagicPlatform(ctx *buildContext, layer *scenegraph.Node) {
	h := ctx.platformHalf()
	layer.AddChild(scenegraph.NewShape(string(types.PartArcaneOuter),
		scenegraph.Circle(h), ctx.plateStyle()))
	layer.AddChild(scenegraph.NewShape(string(types.PartArcaneInner),
		scenegraph.Circle(h-6), scenegraph.Stroked(ctx.palette.stroke, 1)))

	for i := 0; i < 6; i++ {
		p := scenegraph.Polar(h-3, float64(i)*math.Pi/3)
		layer.AddChild(scenegraph.NewShape(string(types.PartRuneMarker.Index(i)),
			scenegraph.Diamond(4, 5), ctx.accentStyle()).At(p.X, p.Y))
	}
}

// 方形网格板，横竖各 2 条走线位于三等分处
func buildBeamPlatform(ctx *buildContext, layer *scenegraph.Node) {
	s := ctx.cfg.Geometry.PlatformSize
	h := s / 2
	layer.AddChild(scenegraph.NewShape(string(types.PartGridPlate),
		scenegraph.Rectangle(s, s), ctx.plateStyle()))

	for i, offset := range []float64{-s / 6, s / 6} {
		layer.AddChild(scenegraph.NewShape(string(types.PartGridTraceH.Index(i)),
			scenegraph.Line(scenegraph.Point{X: -h, Y: offset}, scenegraph.Point{X: h, Y: offset}), ctx.traceStyle()))
	}
	for i, offset := range []float64{-s / 6, s / 6} {
		layer.AddChild(scenegraph.NewShape(string(types.PartGridTraceV.Index(i)),
			scenegraph.Line(scenegraph.Point{X: offset, Y: -h}, scenegraph.Point{X: offset, Y: h}), ctx.traceStyle()))
	}
}

// 圆形绝缘座 + 0.7 倍半径内环
func buildTeslaPlatform(ctx *buildContext, layer *scenegraph.Node) {
	h := ctx.platformHalf()
	layer.AddChild(scenegraph.NewShape(string(types.PartInsulator),
		scenegraph.Circle(h), ctx.plateStyle()))
	layer.AddChild(scenegraph.NewShape(string(types.PartInsulatorRing),
		scenegraph.Circle(h*0.7), scenegraph.Stroked(ctx.palette.stroke, 1)))
}

// 工业圆角方板 + 4 条斜向警示条纹
func buildPyroPlatform(ctx *buildContext, layer *scenegraph.Node) {
	s := ctx.cfg.Geometry.PlatformSize
	h := s / 2
	layer.AddChild(scenegraph.NewShape(string(types.PartIndustrialPlate),
		scenegraph.RoundedRect(s, s, 6), ctx.plateStyle()))

	const stripeWidth = 6.0
	const stripeHeight = 6.0
	pitch := (s - 16) / 4
	bottom := h - 3
	for i := 0; i < 4; i++ {
		x0 := -h + 8 + float64(i)*pitch
		quad := scenegraph.Polygon(
			scenegraph.Point{X: x0, Y: bottom},
			scenegraph.Point{X: x0 + stripeWidth, Y: bottom},
			scenegraph.Point{X: x0 + stripeWidth*2, Y: bottom - stripeHeight},
			scenegraph.Point{X: x0 + stripeWidth, Y: bottom - stripeHeight},
		)
		layer.AddChild(scenegraph.NewShape(string(types.PartHazardStripe.Index(i)),
			quad, scenegraph.Filled(utils.WithAlpha(hazardAmber, 0.85))))
	}
}

// 外环 + 内接六芒星 + 4 道神圣光线（半径 20 到 40）
func buildLegendaryPlatform(ctx *buildContext, layer *scenegraph.Node) {
	h := ctx.platformHalf()
	layer.AddChild(scenegraph.NewShape(string(types.PartDivineRing),
		scenegraph.Circle(h), ctx.plateStyle().WithGlow(2)))

	hexagram := scenegraph.Compound(
		scenegraph.RegularPolygon(3, h*0.85, -math.Pi/2),
		scenegraph.RegularPolygon(3, h*0.85, math.Pi/2),
	)
	layer.AddChild(scenegraph.NewShape(string(types.PartHexagram),
		hexagram, scenegraph.Stroked(ctx.palette.light, 1)))

	const rayInner, rayOuter = 20.0, 40.0
	for i := 0; i < 4; i++ {
		angle := float64(i) * math.Pi / 2
		ray := scenegraph.Line(scenegraph.Polar(rayInner, angle), scenegraph.Polar(rayOuter, angle))
		style := scenegraph.Stroked(utils.WithAlpha(ctx.palette.light, 0.7), 2).
			WithGlow(3).
			WithBlend(scenegraph.BlendAdd).
			WithCap(scenegraph.LineCapRound)
		layer.AddChild(scenegraph.NewShape(string(types.PartDivineRay.Index(i)), ray, style))
	}
}

// 服务器机架 + 3 条槽位
func buildMultishotPlatform(ctx *buildContext, layer *scenegraph.Node) {
	s := ctx.cfg.Geometry.PlatformSize
	layer.AddChild(scenegraph.NewShape(string(types.PartServerRack),
		scenegraph.Rectangle(s*0.8, s), ctx.plateStyle()))

	for i := 0; i < 3; i++ {
		y := -s/4 + float64(i)*s/4
		layer.AddChild(scenegraph.NewShape(string(types.PartRackSlot.Index(i)),
			scenegraph.Rectangle(s*0.6, 3), scenegraph.Filled(utils.WithAlpha(ctx.palette.base, 0.7))).At(0, y))
	}
}

// 暗色方板 + 红色发光边框
func buildExecutePlatform(ctx *buildContext, layer *scenegraph.Node) {
	s := ctx.cfg.Geometry.PlatformSize
	style := scenegraph.FilledStroked(executePlate, executeRed, ctx.lineWidth()).WithGlow(4)
	layer.AddChild(scenegraph.NewShape(string(types.PartDarkPlate), scenegraph.Rectangle(s, s), style))
}
