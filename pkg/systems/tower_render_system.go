package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/game"
	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 外发光描边的透明度系数
const glowStrokeAlpha = 0.3

// drawItem 按绘制顺序展开后的一个可绘制节点
type drawItem struct {
	node  *scenegraph.Node
	m     scenegraph.Affine // 本地坐标 → 屏幕坐标
	alpha float64           // 沿树累乘后的透明度
}

// TowerRenderSystem 绘制塔视觉合成树
//
// 每座塔的根节点先缩放（塔缩放 × 镜头缩放）再平移到屏幕坐标，
// 子节点按 ZPosition 稳定排序后深度优先绘制。
// 形状用 vector.Path 细分为三角形后 DrawTriangles，叠加混合的部件使用 BlendLighter；
// 标签用 text/v2 居中绘制。
type TowerRenderSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	resources     *game.ResourceManager

	whiteSubImage *ebiten.Image
	vs            []ebiten.Vertex
	is            []uint16
	glowSlots     map[string]bool
}

// NewTowerRenderSystem 创建渲染系统
// resources 为 nil 时不绘制标签
func NewTowerRenderSystem(em *ecs.EntityManager, gs *game.GameState, rm *game.ResourceManager) *TowerRenderSystem {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	glow := make(map[string]bool)
	for _, slot := range types.TopLevelSlots() {
		if slot.IsGlow() {
			glow[slot.Name()] = true
		}
	}

	return &TowerRenderSystem{
		entityManager: em,
		gameState:     gs,
		resources:     rm,
		whiteSubImage: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		glowSlots:     glow,
	}
}

// Draw 绘制所有塔，按世界 Y 坐标从上到下（相同时按实体 ID）
func (s *TowerRenderSystem) Draw(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.TowerVisualComponent, *components.PositionComponent](s.entityManager)

	type tower struct {
		visual *components.TowerVisualComponent
		pos    *components.PositionComponent
	}
	towers := make([]tower, 0, len(ids))
	for _, id := range ids {
		visual, _ := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if visual.Root == nil {
			continue
		}
		towers = append(towers, tower{visual, pos})
	}
	sort.SliceStable(towers, func(i, j int) bool {
		return towers[i].pos.Y < towers[j].pos.Y
	})

	bounds := screen.Bounds()
	glowEnabled := true
	if s.gameState != nil {
		glowEnabled = s.gameState.Settings().GlowEnabled
	}

	for _, t := range towers {
		base := s.towerTransform(t.visual, t.pos, bounds.Dx(), bounds.Dy())
		var skip map[string]bool
		if !glowEnabled {
			skip = s.glowSlots
		}
		for _, item := range collectDrawItems(t.visual.Root, base, skip) {
			s.drawItem(screen, item)
		}
	}
}

// towerTransform 塔根节点到屏幕坐标的变换
func (s *TowerRenderSystem) towerTransform(visual *components.TowerVisualComponent, pos *components.PositionComponent, screenW, screenH int) scenegraph.Affine {
	scale := visual.Scale
	if scale == 0 {
		scale = 1
	}
	x, y := pos.X, pos.Y
	if s.gameState != nil {
		scale *= s.gameState.CameraZoom
		x, y = s.gameState.WorldToScreen(pos.X, pos.Y, screenW, screenH)
	}
	return scenegraph.Affine{A: scale, D: scale, Tx: x, Ty: y}
}

// collectDrawItems 按绘制顺序展开合成树
//
// 隐藏节点连同子树跳过；skipTopLevel 中的根节点直接子节点（如关闭光晕时的光晕层）同样跳过。
// 父节点先于子节点绘制，兄弟节点按 DrawOrder。
func collectDrawItems(root *scenegraph.Node, base scenegraph.Affine, skipTopLevel map[string]bool) []drawItem {
	var items []drawItem
	var visit func(n *scenegraph.Node, parent scenegraph.Affine, parentAlpha float64, depth int)
	visit = func(n *scenegraph.Node, parent scenegraph.Affine, parentAlpha float64, depth int) {
		if n.Hidden {
			return
		}
		if depth == 1 && skipTopLevel[n.Name] {
			return
		}
		m := n.LocalTransform().Then(parent)
		alpha := parentAlpha * n.Alpha
		if alpha <= 0 {
			return
		}
		if n.Kind != scenegraph.KindContainer {
			items = append(items, drawItem{node: n, m: m, alpha: alpha})
		}
		for _, c := range n.DrawOrder() {
			visit(c, m, alpha, depth+1)
		}
	}
	visit(root, base, 1, 0)
	return items
}

// strokeScale 变换对线宽的平均缩放
func strokeScale(m scenegraph.Affine) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func (s *TowerRenderSystem) drawItem(screen *ebiten.Image, item drawItem) {
	switch item.node.Kind {
	case scenegraph.KindShape:
		s.drawShape(screen, item)
	case scenegraph.KindLabel:
		s.drawLabel(screen, item)
	}
}

func (s *TowerRenderSystem) drawShape(screen *ebiten.Image, item drawItem) {
	n := item.node
	style := n.Style
	contours := n.Geometry.Contours()
	if len(contours) == 0 {
		return
	}

	blend := ebiten.BlendSourceOver
	if style.Blend == scenegraph.BlendAdd {
		blend = ebiten.BlendLighter
	}

	if style.HasFill() {
		path := buildPath(contours, item.m, true)
		s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
		s.drawTriangles(screen, style.FillColor, item.alpha, blend)
	}

	if !style.HasStroke() {
		return
	}
	if style.Dash != nil {
		contours = dashContours(contours, style.Dash)
	}
	path := buildPath(contours, item.m, false)
	width := style.LineWidth * strokeScale(item.m)

	if style.GlowWidth > 0 {
		glowWidth := width + 2*style.GlowWidth*strokeScale(item.m)
		s.stroke(screen, &path, glowWidth, style.LineCap, style.StrokeColor, item.alpha*glowStrokeAlpha, ebiten.BlendLighter)
	}
	s.stroke(screen, &path, width, style.LineCap, style.StrokeColor, item.alpha, blend)
}

func (s *TowerRenderSystem) stroke(screen *ebiten.Image, path *vector.Path, width float64, lineCap scenegraph.LineCap, c color.NRGBA, alpha float64, blend ebiten.Blend) {
	opts := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  toVectorCap(lineCap),
	}
	s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], opts)
	s.drawTriangles(screen, c, alpha, blend)
}

func (s *TowerRenderSystem) drawTriangles(screen *ebiten.Image, c color.NRGBA, alpha float64, blend ebiten.Blend) {
	if len(s.is) == 0 {
		return
	}
	a := float32(c.A) / 255 * float32(alpha)
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = float32(c.R) / 255
		s.vs[i].ColorG = float32(c.G) / 255
		s.vs[i].ColorB = float32(c.B) / 255
		s.vs[i].ColorA = a
	}
	screen.DrawTriangles(s.vs, s.is, s.whiteSubImage, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		Blend:          blend,
		AntiAlias:      true,
	})
}

func (s *TowerRenderSystem) drawLabel(screen *ebiten.Image, item drawItem) {
	if s.resources == nil {
		return
	}
	label := item.node.Label
	if label.Text == "" {
		return
	}
	size := label.FontSize * strokeScale(item.m)
	if size <= 0 {
		return
	}

	face := s.resources.DefaultFace(math.Round(size*2) / 2)
	center := item.m.Apply(scenegraph.Point{})

	op := &text.DrawOptions{}
	op.GeoM.Translate(center.X, center.Y)
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(label.Color)
	op.ColorScale.ScaleAlpha(float32(item.alpha))
	text.Draw(screen, label.Text, face, op)
}

// buildPath 把轮廓变换到屏幕坐标并构造路径
// forFill 为 true 时开放轮廓也闭合（填充需要闭合区域）
func buildPath(contours []scenegraph.Contour, m scenegraph.Affine, forFill bool) vector.Path {
	var path vector.Path
	for _, c := range contours {
		if len(c.Points) < 2 {
			continue
		}
		p := m.Apply(c.Points[0])
		path.MoveTo(float32(p.X), float32(p.Y))
		for _, pt := range c.Points[1:] {
			p = m.Apply(pt)
			path.LineTo(float32(p.X), float32(p.Y))
		}
		if c.Closed || forFill {
			path.Close()
		}
	}
	return path
}

func toVectorCap(c scenegraph.LineCap) vector.LineCap {
	switch c {
	case scenegraph.LineCapRound:
		return vector.LineCapRound
	case scenegraph.LineCapSquare:
		return vector.LineCapSquare
	default:
		return vector.LineCapButt
	}
}

// dashContours 把轮廓切成虚线段
// dash 为线段/间隔长度交替；无效图案（总长 <= 0）时原样返回
func dashContours(contours []scenegraph.Contour, dash []float64) []scenegraph.Contour {
	period := 0.0
	for _, d := range dash {
		if d < 0 {
			return contours
		}
		period += d
	}
	if period <= 0 || len(dash) == 0 {
		return contours
	}

	var out []scenegraph.Contour
	for _, c := range contours {
		pts := c.Points
		if c.Closed && len(pts) > 1 {
			pts = append(append([]scenegraph.Point(nil), pts...), pts[0])
		}

		idx := 0
		remaining := dash[0]
		on := true
		var current []scenegraph.Point
		if len(pts) > 0 {
			current = []scenegraph.Point{pts[0]}
		}

		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
			pos := 0.0
			for segLen-pos > remaining {
				pos += remaining
				t := pos / segLen
				p := scenegraph.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
				if on {
					current = append(current, p)
					out = append(out, scenegraph.Contour{Points: current})
					current = nil
				} else {
					current = []scenegraph.Point{p}
				}
				on = !on
				idx = (idx + 1) % len(dash)
				remaining = dash[idx]
			}
			remaining -= segLen - pos
			if on {
				current = append(current, b)
			}
		}
		if on && len(current) > 1 {
			out = append(out, scenegraph.Contour{Points: current})
		}
	}
	return out
}
