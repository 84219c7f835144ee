package scenegraph

import "github.com/gonewx/towerviz/pkg/utils"

// NodeDescription 节点的可序列化摘要（用于 YAML 导出和调试）
type NodeDescription struct {
	Name     string            `yaml:"name"`
	Kind     string            `yaml:"kind"`
	Position [2]float64        `yaml:"position,flow"`
	Z        float64           `yaml:"z"`
	Rotation float64           `yaml:"rotation,omitempty"`
	Alpha    float64           `yaml:"alpha"`
	Hidden   bool              `yaml:"hidden,omitempty"`
	Shape    *ShapeDescription `yaml:"shape,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Children []NodeDescription `yaml:"children,omitempty"`
}

// ShapeDescription 形状摘要
type ShapeDescription struct {
	Geometry string  `yaml:"geometry"`
	Radius   float64 `yaml:"radius,omitempty"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Points   int     `yaml:"points,omitempty"`
	Fill     string  `yaml:"fill,omitempty"`
	Stroke   string  `yaml:"stroke,omitempty"`
	Line     float64 `yaml:"lineWidth,omitempty"`
	Glow     float64 `yaml:"glowWidth,omitempty"`
	Additive bool    `yaml:"additive,omitempty"`
}

// Describe 生成子树摘要，子节点按插入顺序排列
func Describe(n *Node) NodeDescription {
	d := NodeDescription{
		Name:     n.Name,
		Kind:     n.Kind.String(),
		Position: [2]float64{n.Position.X, n.Position.Y},
		Z:        n.ZPosition,
		Rotation: n.Rotation,
		Alpha:    n.Alpha,
		Hidden:   n.Hidden,
	}
	switch n.Kind {
	case KindShape:
		points := 0
		for _, c := range n.Geometry.Contours() {
			points += len(c.Points)
		}
		d.Shape = &ShapeDescription{
			Geometry: n.Geometry.Kind.String(),
			Radius:   n.Geometry.Radius,
			Width:    n.Geometry.Width,
			Height:   n.Geometry.Height,
			Points:   points,
			Line:     n.Style.LineWidth,
			Glow:     n.Style.GlowWidth,
			Additive: n.Style.Blend == BlendAdd,
		}
		if n.Style.HasFill() {
			d.Shape.Fill = utils.FormatHexColor(n.Style.FillColor)
		}
		if n.Style.HasStroke() {
			d.Shape.Stroke = utils.FormatHexColor(n.Style.StrokeColor)
		}
	case KindLabel:
		d.Text = n.Label.Text
	}
	for _, c := range n.children {
		d.Children = append(d.Children, Describe(c))
	}
	return d
}

// String 返回节点类型名称
func (k NodeKind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindLabel:
		return "label"
	default:
		return "container"
	}
}

// String 返回几何类型名称
func (k GeometryKind) String() string {
	switch k {
	case GeometryCircle:
		return "circle"
	case GeometryEllipse:
		return "ellipse"
	case GeometryRect:
		return "rect"
	case GeometryRoundedRect:
		return "roundedRect"
	case GeometryPolygon:
		return "polygon"
	case GeometryPolyline:
		return "polyline"
	case GeometryArc:
		return "arc"
	case GeometryCompound:
		return "compound"
	default:
		return "none"
	}
}
