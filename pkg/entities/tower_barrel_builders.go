package entities

import (
	"log"
	"math"

	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
)

// 炮管锚点约定：炮管节点原点位于基部中心（塔中心），
// 所有几何都在 y <= 0 一侧并以 x = 0 对称，炮口在 y = -barrelLength。
// 旋转炮管节点时绕基部转动，炮口随之指向目标。

// barrelSegment 从 y=bottom 向上延伸 height 的矩形，水平居中于 x
func barrelSegment(name types.PartName, x, bottom, width, height float64, style scenegraph.ShapeStyle) *scenegraph.Node {
	return scenegraph.NewShape(string(name), scenegraph.Rectangle(width, height), style).At(x, bottom-height/2)
}

func (ctx *buildContext) barrelStyle() scenegraph.ShapeStyle {
	return scenegraph.FilledStroked(ctx.palette.stroke, ctx.palette.dark, 1)
}

// buildBarrel 按原型构建炮管
func buildBarrel(ctx *buildContext) *scenegraph.Node {
	layer := scenegraph.NewContainer("")

	switch ctx.archetype {
	case types.ArchetypeProjectile:
		buildProjectileBarrel(ctx, layer)
	case types.ArchetypeArtillery:
		buildArtilleryBarrel(ctx, layer)
	case types.ArchetypeFrost:
		buildFrostBarrel(ctx, layer)
	case types.ArchetypeMagic:
		buildMagicBarrel(ctx, layer)
	case types.ArchetypeBeam:
		buildBeamBarrel(ctx, layer)
	case types.ArchetypeTesla:
		buildTeslaBarrel(ctx, layer)
	case types.ArchetypePyro:
		buildPyroBarrel(ctx, layer)
	case types.ArchetypeLegendary:
		buildLegendaryBarrel(ctx, layer)
	case types.ArchetypeMultishot:
		buildMultishotBarrel(ctx, layer)
	case types.ArchetypeExecute:
		buildExecuteBarrel(ctx, layer)
	default:
		log.Printf("[TowerVisualFactory] Warning: no barrel recipe for archetype %d, using projectile", ctx.archetype)
		buildProjectileBarrel(ctx, layer)
	}

	return layer
}

// 直管 + 炮口制退器
func buildProjectileBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w, l, ctx.barrelStyle()))
	layer.AddChild(barrelSegment(types.PartMuzzleBrake, 0, -l+4, w*1.8, 4, ctx.barrelStyle()))
}

// 粗短迫击炮管 + 加强环
func buildArtilleryBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	tube := scenegraph.NewShape(string(types.PartBarrelTube),
		scenegraph.RoundedRect(w*1.6, l, 2), ctx.barrelStyle()).At(0, -l/2)
	layer.AddChild(tube)
	layer.AddChild(barrelSegment(types.PartMortarRing, 0, -l+5, w*2.2, 5, ctx.bodyStyle()))
}

// 细管 + 冰晶尖端
func buildFrostBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w*0.8, l*0.7, ctx.barrelStyle()))

	tipHeight := l * 0.3
	tip := scenegraph.NewShape(string(types.PartIceTip), scenegraph.Diamond(w*1.6, tipHeight),
		scenegraph.FilledStroked(utils.WithAlpha(ctx.palette.light, 0.9), ctx.palette.stroke, 1))
	layer.AddChild(tip.At(0, -l+tipHeight/2))
}

// 法杖 + 悬浮法球
func buildMagicBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w*0.6, l*0.75, ctx.barrelStyle()))

	orbRadius := w * 0.9
	layer.AddChild(scenegraph.NewShape(string(types.PartFloatingOrb),
		scenegraph.Circle(orbRadius), ctx.glowingAccentStyle(4)).At(0, -l+orbRadius))
}

// 发射管 + 聚焦透镜
func buildBeamBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w, l*0.8, ctx.barrelStyle()))

	lensHeight := l * 0.2
	layer.AddChild(scenegraph.NewShape(string(types.PartFocusLens),
		scenegraph.Ellipse(w*1.8, lensHeight), ctx.glowingAccentStyle(3)).At(0, -l+lensHeight/2))
}

// 天线杆 + 天线球
func buildTeslaBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w*0.4, l*0.8, ctx.barrelStyle()))

	sphereRadius := w * 0.7
	layer.AddChild(scenegraph.NewShape(string(types.PartAntennaSphere),
		scenegraph.Circle(sphereRadius), ctx.glowingAccentStyle(4)).At(0, -l+sphereRadius))
}

// 底座 + 三联喷嘴
func buildPyroBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w*2.6, l*0.3, ctx.bodyStyle()))

	for i, x := range []float64{-w * 0.8, 0, w * 0.8} {
		layer.AddChild(barrelSegment(types.PartNozzle.Index(i), x, 0, w*0.6, l, ctx.barrelStyle()))
	}
}

// 短底座 + 垂直光束
func buildLegendaryBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w*1.2, l*0.25, ctx.barrelStyle()))

	beam := scenegraph.Filled(utils.WithAlpha(ctx.palette.light, 0.9)).WithGlow(4).WithBlend(scenegraph.BlendAdd)
	layer.AddChild(barrelSegment(types.PartLightBeam, 0, 0, w*0.5, l, beam))
}

// 底座 + 多发射器簇（中间最长）
func buildMultishotBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w*2.4, l*0.3, ctx.bodyStyle()))

	emitters := []struct{ x, length float64 }{
		{-w, l * 0.8},
		{0, l},
		{w, l * 0.8},
	}
	for i, e := range emitters {
		layer.AddChild(barrelSegment(types.PartEmitter.Index(i), e.x, 0, w*0.5, e.length, ctx.barrelStyle()))
	}
}

// 故障风矩形：主管 + 两块左右对称错位的色块
func buildExecuteBarrel(ctx *buildContext, layer *scenegraph.Node) {
	l, w := ctx.cfg.Geometry.BarrelLength, ctx.cfg.Geometry.BarrelWidth
	layer.AddChild(barrelSegment(types.PartBarrelTube, 0, 0, w, l, scenegraph.FilledStroked(executePlate, executeRed, 1)))

	glitch := scenegraph.Filled(utils.WithAlpha(executeRed, 0.75)).WithBlend(scenegraph.BlendAdd)
	layer.AddChild(barrelSegment(types.PartGlitchBlock.Index(0), w*0.3, -l*0.55, w*1.4, 3, glitch))
	layer.AddChild(barrelSegment(types.PartGlitchBlock.Index(1), -w*0.3, -l*0.25, w*1.4, 3, glitch))
}

// buildMuzzleFlash 炮口闪光，位于炮管尖端，初始隐藏
func buildMuzzleFlash(ctx *buildContext) *scenegraph.Node {
	w := ctx.cfg.Geometry.BarrelWidth
	style := scenegraph.Filled(utils.WithAlpha(ctx.palette.light, 0.95)).WithGlow(5).WithBlend(scenegraph.BlendAdd)
	flash := scenegraph.NewShape("", scenegraph.StarPolygon(8, w*1.4, w*0.6, -math.Pi/2), style)
	return flash.At(0, -ctx.cfg.Geometry.BarrelLength)
}
