// Package scenegraph 提供塔视觉使用的保留模式场景图
//
// 节点树只描述"画什么"：几何、样式、变换、可见性和绘制顺序。
// 节点不持有父节点引用，子节点由直接父节点独占。
// 绘制由 systems.TowerRenderSystem 完成，本包不依赖 ebiten。
package scenegraph

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/gonewx/towerviz/pkg/types"
)

// NodeKind 节点类型
type NodeKind int

const (
	// KindContainer 纯容器，不绘制自身
	KindContainer NodeKind = iota
	// KindShape 形状节点
	KindShape
	// KindLabel 文字标签节点
	KindLabel
)

// Node 场景图节点
type Node struct {
	// Name 节点名称，在直接父节点内唯一
	Name string
	Kind NodeKind

	// Position 相对父节点的位置
	Position Point

	// ZPosition 兄弟节点间的绘制顺序，值相同时按插入顺序
	ZPosition float64

	// Rotation 旋转（弧度），绕节点原点
	Rotation float64

	ScaleX float64
	ScaleY float64

	// Alpha 节点透明度（0-1），渲染时沿树向下相乘
	Alpha float64

	// Hidden 隐藏时整个子树不绘制
	Hidden bool

	// Geometry/Style 仅 KindShape 使用
	Geometry Geometry
	Style    ShapeStyle

	// Label 仅 KindLabel 使用
	Label LabelStyle

	children []*Node
}

func newNode(name string, kind NodeKind) *Node {
	return &Node{
		Name:   name,
		Kind:   kind,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
	}
}

// NewContainer 创建容器节点
func NewContainer(name string) *Node {
	return newNode(name, KindContainer)
}

// NewShape 创建形状节点
func NewShape(name string, g Geometry, style ShapeStyle) *Node {
	n := newNode(name, KindShape)
	n.Geometry = g
	n.Style = style
	return n
}

// NewLabel 创建文字标签节点，文字以节点原点居中
func NewLabel(name, text string, fontSize float64, c color.NRGBA) *Node {
	n := newNode(name, KindLabel)
	n.Label = LabelStyle{Text: text, FontSize: fontSize, Color: c}
	return n
}

// At 设置位置并返回自身，便于链式构建
func (n *Node) At(x, y float64) *Node {
	n.Position = Point{X: x, Y: y}
	return n
}

// WithZ 设置 ZPosition 并返回自身
func (n *Node) WithZ(z float64) *Node {
	n.ZPosition = z
	return n
}

// WithRotation 设置旋转并返回自身
func (n *Node) WithRotation(r float64) *Node {
	n.Rotation = r
	return n
}

// WithAlpha 设置透明度并返回自身
func (n *Node) WithAlpha(a float64) *Node {
	n.Alpha = a
	return n
}

// SetScale 同时设置 X/Y 缩放
func (n *Node) SetScale(s float64) {
	n.ScaleX = s
	n.ScaleY = s
}

// AddChild 追加子节点并返回该子节点
// 同名兄弟会破坏按名查找的契约，这里只记录警告，由 Validate 报告
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		return nil
	}
	if child.Name != "" && n.ChildNamed(child.Name) != nil {
		log.Printf("[SceneGraph] Warning: duplicate child name %q under %q", child.Name, n.Name)
	}
	n.children = append(n.children, child)
	return child
}

// Children 返回子节点（按插入顺序），调用方不应修改返回的切片
func (n *Node) Children() []*Node {
	return n.children
}

// ChildCount 子节点数量
func (n *Node) ChildCount() int {
	return len(n.children)
}

// ChildNamed 查找直接子节点；n 为 nil 时返回 nil，便于链式查找
func (n *Node) ChildNamed(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// RemoveChild 按名称移除直接子节点
func (n *Node) RemoveChild(name string) bool {
	for i, c := range n.children {
		if c.Name == name {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAllChildren 清空子节点
func (n *Node) RemoveAllChildren() {
	n.children = n.children[:0]
}

// Slot 按图层槽位查找节点
// muzzleFlash 嵌套在 barrel 下，其余槽位为直接子节点
func (n *Node) Slot(s types.LayerSlot) *Node {
	if s == types.SlotMuzzleFlash {
		barrel := n.ChildNamed(types.SlotBarrel.Name())
		if barrel == nil {
			return nil
		}
		return barrel.ChildNamed(s.Name())
	}
	return n.ChildNamed(s.Name())
}

// Part 按部件名查找直接子节点
func (n *Node) Part(p types.PartName) *Node {
	return n.ChildNamed(string(p))
}

// FindPart 深度优先查找部件（包含自身）
func (n *Node) FindPart(p types.PartName) *Node {
	var found *Node
	n.Walk(func(node *Node, depth int) bool {
		if found != nil {
			return false
		}
		if node.Name == string(p) {
			found = node
			return false
		}
		return true
	})
	return found
}

// Walk 先序遍历子树；fn 返回 false 时不再进入该节点的子节点
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// CountNodes 子树节点总数（包含自身）
func (n *Node) CountNodes() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// DrawOrder 返回按绘制顺序排列的子节点
// 按 ZPosition 稳定排序，ZPosition 相同时保持插入顺序
func (n *Node) DrawOrder() []*Node {
	ordered := make([]*Node, len(n.children))
	copy(ordered, n.children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZPosition < ordered[j].ZPosition
	})
	return ordered
}

// Bounds 子树在本节点本地坐标下的包围盒（忽略隐藏状态，不含本节点自身变换）
// 标签节点按字号估算为一个点，不参与包围盒
func (n *Node) Bounds() (Rect, bool) {
	return n.bounds(Identity())
}

func (n *Node) bounds(m Affine) (r Rect, ok bool) {
	if n.Kind == KindShape {
		for _, c := range n.Geometry.Contours() {
			for _, p := range c.Points {
				q := m.Apply(p)
				pr := Rect{MinX: q.X, MinY: q.Y, MaxX: q.X, MaxY: q.Y}
				if !ok {
					r, ok = pr, true
				} else {
					r = r.Union(pr)
				}
			}
		}
	}
	for _, c := range n.children {
		cr, cok := c.bounds(c.LocalTransform().Then(m))
		if !cok {
			continue
		}
		if !ok {
			r, ok = cr, true
		} else {
			r = r.Union(cr)
		}
	}
	return r, ok
}

// Validate 检查子树中每个节点的子节点名称是否唯一
func (n *Node) Validate() error {
	var err error
	n.Walk(func(node *Node, depth int) bool {
		if err != nil {
			return false
		}
		seen := make(map[string]bool, len(node.children))
		for _, c := range node.children {
			if c.Name == "" {
				continue
			}
			if seen[c.Name] {
				err = fmt.Errorf("duplicate child name %q under %q", c.Name, node.Name)
				return false
			}
			seen[c.Name] = true
		}
		return true
	})
	return err
}
