package entities

import (
	"math"

	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
)

// 光晕分三层，半径和透明度由稀有度决定，全部使用叠加混合。
// 史诗及以上在外层光晕中额外有一个旋转外环（由待机动画驱动旋转）。

func glowDisc(ctx *buildContext, radius, alpha float64) *scenegraph.Node {
	style := scenegraph.Filled(utils.WithAlpha(ctx.palette.glow, alpha)).WithBlend(scenegraph.BlendAdd)
	return scenegraph.NewShape(string(types.PartGlowDisc), scenegraph.Circle(radius), style)
}

func buildOuterGlow(ctx *buildContext) *scenegraph.Node {
	glow := ctx.cfg.GetRarityGlow(ctx.rarity)
	layer := scenegraph.NewContainer("")
	layer.AddChild(glowDisc(ctx, glow.OuterGlowRadius, glow.OuterGlowAlpha))

	if ctx.rarity.AtLeast(types.RarityEpic) {
		layer.AddChild(buildRotatingRing(ctx, glow.RingRadius))
	}
	return layer
}

// buildRotatingRing 四段弧组成的外环，弧之间留缺口以便看出旋转
func buildRotatingRing(ctx *buildContext, radius float64) *scenegraph.Node {
	const segments = 4
	const gap = 0.35

	arcs := make([]scenegraph.Geometry, 0, segments)
	step := 2 * math.Pi / segments
	for i := 0; i < segments; i++ {
		start := float64(i)*step + gap/2
		arcs = append(arcs, scenegraph.Arc(radius, start, start+step-gap))
	}

	width := 1.5
	if ctx.rarity == types.RarityLegendary {
		width = 2.5
	}
	style := scenegraph.Stroked(utils.WithAlpha(ctx.palette.light, 0.8), width).
		WithGlow(3).
		WithBlend(scenegraph.BlendAdd).
		WithCap(scenegraph.LineCapRound)
	return scenegraph.NewShape(string(types.PartRotatingRing), scenegraph.Compound(arcs...), style)
}

func buildMidGlow(ctx *buildContext) *scenegraph.Node {
	glow := ctx.cfg.GetRarityGlow(ctx.rarity)
	layer := scenegraph.NewContainer("")
	layer.AddChild(glowDisc(ctx, glow.MidGlowRadius, glow.MidGlowAlpha))
	return layer
}

func buildGlow(ctx *buildContext) *scenegraph.Node {
	glow := ctx.cfg.GetRarityGlow(ctx.rarity)
	layer := scenegraph.NewContainer("")
	layer.AddChild(glowDisc(ctx, glow.GlowRadius, glow.GlowAlpha))
	return layer
}
