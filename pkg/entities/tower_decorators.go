package entities

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
)

// buildDetails 细节层：冰霜塔的 3 片环绕冰晶（120° 间隔），以及稀有度标记点
func buildDetails(ctx *buildContext) *scenegraph.Node {
	layer := scenegraph.NewContainer("")

	if ctx.archetype == types.ArchetypeFrost {
		orbit := ctx.bodyRadius() + 10
		for i := 0; i < 3; i++ {
			angle := -math.Pi/2 + float64(i)*2*math.Pi/3
			p := scenegraph.Polar(orbit, angle)
			shard := scenegraph.NewShape(string(types.PartIceShard.Index(i)), scenegraph.Diamond(4, 9),
				scenegraph.FilledStroked(utils.WithAlpha(ctx.palette.light, 0.9), ctx.palette.stroke, 1))
			// 冰晶长轴指向外侧
			layer.AddChild(shard.At(p.X, p.Y).WithRotation(angle + math.Pi/2))
		}
	}

	// 稀有度标记：平台左下角，每高一档多一个点
	h := ctx.platformHalf()
	for i := 0; i < int(ctx.rarity); i++ {
		layer.AddChild(scenegraph.NewShape(string(types.PartRarityPip.Index(i)),
			scenegraph.Circle(1.5), ctx.accentStyle()).At(-h+5+float64(i)*5, h-5))
	}

	return layer
}

// MergeGlyphOffsets 合成标记的 X 坐标：以 x=0 对称，间距 spacing
// n <= 0 时返回空切片
func MergeGlyphOffsets(n int, spacing float64) []float64 {
	if n <= 0 {
		return nil
	}
	offsets := make([]float64, n)
	center := float64(n-1) / 2
	for i := range offsets {
		offsets[i] = (float64(i) - center) * spacing
	}
	return offsets
}

// buildMergeIndicator 合成标记层：n 个符号水平对称排列
// 传说塔和冰霜塔使用菱形，其余使用圆点；数量不设上限
func buildMergeIndicator(ctx *buildContext, n int) *scenegraph.Node {
	layer := scenegraph.NewContainer("")
	fillMergeGlyphs(layer, ctx, n)
	return layer
}

func fillMergeGlyphs(layer *scenegraph.Node, ctx *buildContext, n int) {
	d := ctx.cfg.Decorators
	size := d.MergeGlyphSize
	style := scenegraph.FilledStroked(ctx.palette.light, ctx.palette.dark, 1)

	for i, x := range MergeGlyphOffsets(n, d.MergeSpacing) {
		var g scenegraph.Geometry
		if ctx.archetype.UsesDiamondGlyph() {
			g = scenegraph.Diamond(size*2, size*2.5)
		} else {
			g = scenegraph.Circle(size)
		}
		layer.AddChild(scenegraph.NewShape(string(types.PartMergeGlyph.Index(i)), g, style).At(x, d.MergeOffsetY))
	}
}

// SetMergeLevel 用新的合成等级重建合成标记层
// root 为 BuildTowerVisual 返回的根节点；stars 层不存在时不做任何事
func SetMergeLevel(root *scenegraph.Node, cfg *config.TowerVisualConfig, archetype types.Archetype, rarity types.RarityTier, c color.NRGBA, n int) {
	stars := root.Slot(types.SlotStars)
	if stars == nil {
		return
	}
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}
	stars.RemoveAllChildren()
	fillMergeGlyphs(stars, newBuildContext(cfg, archetype, rarity, c), n)
}

// buildRangeIndicator 范围圈：半径等于 radius（不缩放不校验），初始隐藏
func buildRangeIndicator(ctx *buildContext, radius float64) *scenegraph.Node {
	d := ctx.cfg.Decorators
	style := scenegraph.FilledStroked(
		utils.WithAlpha(ctx.palette.base, d.RangeFillAlpha),
		utils.WithAlpha(ctx.palette.base, d.RangeStrokeAlpha),
		d.RangeStrokeWidth,
	)

	// 虚线样式会被计算出来，但不赋值给 style.Dash，范围圈保持实线
	// TODO: 等确认需要虚线范围圈后再把 dash 应用到描边
	_ = RangeDashPattern(d.RangeDash, radius)

	return scenegraph.NewShape("", scenegraph.Circle(radius), style)
}

// RangeDashPattern 把配置的虚线（线段、间隔）调整为在周长上整除的图案
// radius <= 0 或配置不完整时返回 nil
func RangeDashPattern(dash []float64, radius float64) []float64 {
	if len(dash) < 2 || radius <= 0 || dash[0] <= 0 || dash[1] < 0 {
		return nil
	}
	period := dash[0] + dash[1]
	circumference := 2 * math.Pi * radius
	count := math.Max(1, math.Round(circumference/period))
	scale := circumference / (count * period)
	return []float64{dash[0] * scale, dash[1] * scale}
}

// buildCooldownArc 冷却弧：仅描边的空弧，扫过角度由 CooldownArcSystem 逐帧设置
func buildCooldownArc(ctx *buildContext) *scenegraph.Node {
	d := ctx.cfg.Decorators
	style := scenegraph.Stroked(ctx.cfg.GetCooldownColor(), d.CooldownWidth).WithCap(scenegraph.LineCapRound)
	return scenegraph.NewShape("", scenegraph.Arc(d.CooldownRadius, -math.Pi/2, -math.Pi/2), style)
}

// mergeHighlightDash 合成高亮环的虚线（线段、间隔）
var mergeHighlightDash = []float64{6, 4}

// buildMergeHighlight 合成高亮环（虚线），初始隐藏
func buildMergeHighlight(ctx *buildContext) *scenegraph.Node {
	radius := ctx.cfg.Decorators.MergeHighlightRadius
	style := scenegraph.Stroked(ctx.palette.light, 2).WithGlow(6).WithBlend(scenegraph.BlendAdd)
	style.Dash = RangeDashPattern(mergeHighlightDash, radius)
	return scenegraph.NewShape("", scenegraph.Circle(radius), style)
}

// ComputeDPS 每秒伤害 = 伤害 × 攻速 × 弹丸数
func ComputeDPS(damage, attackSpeed float64, projectileCount int) float64 {
	return damage * attackSpeed * float64(projectileCount)
}

// FormatDPS 格式化 DPS 标签："60 DPS"，四舍五入后 >= 1000 时 "1.2K DPS"
// 非有限值按原样输出（"+Inf DPS"）
func FormatDPS(dps float64) string {
	if math.Round(dps) >= 1000 && !math.IsInf(dps, 0) {
		return fmt.Sprintf("%.1fK DPS", dps/1000)
	}
	return fmt.Sprintf("%.0f DPS", dps)
}

// buildLODDetail LOD 细节层：带背景框的 DPS 标签 + 圆形等级徽章
func buildLODDetail(ctx *buildContext, level int, dps float64) *scenegraph.Node {
	d := ctx.cfg.Decorators
	layer := scenegraph.NewContainer("").At(0, d.LODOffsetY)

	layer.AddChild(scenegraph.NewShape(string(types.PartDPSBackground), scenegraph.Geometry{},
		scenegraph.FilledStroked(utils.WithAlpha(executePlate, 0.78), utils.WithAlpha(ctx.palette.base, 0.8), 1)))
	layer.AddChild(scenegraph.NewLabel(string(types.PartDPSLabel), "", d.DPSFontSize, ctx.palette.light))
	layer.AddChild(scenegraph.NewShape(string(types.PartLevelBadge), scenegraph.Circle(d.LevelBadgeRadius),
		scenegraph.FilledStroked(ctx.palette.base, ctx.palette.light, 1)))
	layer.AddChild(scenegraph.NewLabel(string(types.PartLevelLabel), "", d.DPSFontSize, ctx.palette.dark))

	UpdateLODDetail(layer, ctx.cfg, dps, level)
	return layer
}

// UpdateLODDetail 刷新 LOD 细节层的文字并重新排版背景框与等级徽章
// 部件缺失时跳过对应部分
func UpdateLODDetail(layer *scenegraph.Node, cfg *config.TowerVisualConfig, dps float64, level int) {
	if layer == nil {
		return
	}
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}
	d := cfg.Decorators

	text := FormatDPS(dps)
	// 等宽估算：字宽约 0.6 倍字号
	width := math.Max(40, float64(len(text))*d.DPSFontSize*0.6+10)
	height := d.DPSFontSize + 6

	if bg := layer.Part(types.PartDPSBackground); bg != nil {
		bg.Geometry = scenegraph.RoundedRect(width, height, 3)
	}
	if label := layer.Part(types.PartDPSLabel); label != nil {
		label.Label.Text = text
	}

	badgeX := width/2 + d.LevelBadgeRadius + 3
	if badge := layer.Part(types.PartLevelBadge); badge != nil {
		badge.At(badgeX, 0)
	}
	if label := layer.Part(types.PartLevelLabel); label != nil {
		label.Label.Text = strconv.Itoa(level)
		label.At(badgeX, 0)
	}
}
