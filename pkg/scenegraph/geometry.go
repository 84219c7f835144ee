package scenegraph

import "math"

// Point 二维点（本地坐标，+X 向右，+Y 向下）
type Point struct {
	X, Y float64
}

// Polar 按极坐标返回点，角度单位为弧度，0 指向 +X
func Polar(radius, angle float64) Point {
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// Add 点相加
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rect 轴对齐包围盒
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width 包围盒宽度
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height 包围盒高度
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union 合并两个包围盒
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// GeometryKind 几何类型
type GeometryKind int

const (
	// GeometryNone 无几何（容器、标签）
	GeometryNone GeometryKind = iota
	GeometryCircle
	GeometryEllipse
	GeometryRect
	GeometryRoundedRect
	GeometryPolygon  // 闭合多边形
	GeometryPolyline // 开放折线
	GeometryArc      // 开放圆弧，仅描边
	GeometryCompound // 多个子几何组成的复合路径
)

// Geometry 形状节点的几何描述
//
// 保留解析参数（半径、宽高等）供协作者和测试读取，
// 绘制时通过 Contours 细分为折线。
type Geometry struct {
	Kind GeometryKind

	// Radius 圆/圆弧半径
	Radius float64

	// Width/Height 椭圆、矩形尺寸（以本地原点为中心）
	Width  float64
	Height float64

	// CornerRadius 圆角矩形的圆角半径
	CornerRadius float64

	// StartAngle/EndAngle 圆弧起止角（弧度）
	StartAngle float64
	EndAngle   float64

	// Points 多边形/折线顶点
	Points []Point

	// Parts 复合几何的子几何
	Parts []Geometry
}

// Contour 细分后的一条轮廓
type Contour struct {
	Points []Point
	Closed bool
}

// Circle 以原点为圆心的圆
func Circle(radius float64) Geometry {
	return Geometry{Kind: GeometryCircle, Radius: radius}
}

// Ellipse 以原点为中心的椭圆
func Ellipse(width, height float64) Geometry {
	return Geometry{Kind: GeometryEllipse, Width: width, Height: height}
}

// Rectangle 以原点为中心的矩形
func Rectangle(width, height float64) Geometry {
	return Geometry{Kind: GeometryRect, Width: width, Height: height}
}

// RoundedRect 以原点为中心的圆角矩形
func RoundedRect(width, height, cornerRadius float64) Geometry {
	return Geometry{Kind: GeometryRoundedRect, Width: width, Height: height, CornerRadius: cornerRadius}
}

// Polygon 闭合多边形
func Polygon(points ...Point) Geometry {
	return Geometry{Kind: GeometryPolygon, Points: points}
}

// Polyline 开放折线
func Polyline(points ...Point) Geometry {
	return Geometry{Kind: GeometryPolyline, Points: points}
}

// Line 两点线段
func Line(from, to Point) Geometry {
	return Polyline(from, to)
}

// Arc 以原点为圆心的圆弧；start == end 时为空弧
func Arc(radius, startAngle, endAngle float64) Geometry {
	return Geometry{Kind: GeometryArc, Radius: radius, StartAngle: startAngle, EndAngle: endAngle}
}

// Compound 复合几何
func Compound(parts ...Geometry) Geometry {
	return Geometry{Kind: GeometryCompound, Parts: parts}
}

// RegularPolygon 正多边形，rotation 为第一个顶点的角度
func RegularPolygon(sides int, radius, rotation float64) Geometry {
	if sides < 3 {
		return Polygon()
	}
	pts := make([]Point, sides)
	for i := 0; i < sides; i++ {
		pts[i] = Polar(radius, rotation+2*math.Pi*float64(i)/float64(sides))
	}
	return Polygon(pts...)
}

// StarPolygon 星形轮廓：外顶点在 outer 半径，内顶点在 inner 半径交替排列
func StarPolygon(points int, outer, inner, rotation float64) Geometry {
	if points < 2 {
		return Polygon()
	}
	pts := make([]Point, 0, points*2)
	step := math.Pi / float64(points)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts = append(pts, Polar(r, rotation+step*float64(i)))
	}
	return Polygon(pts...)
}

// Diamond 以原点为中心的菱形
func Diamond(width, height float64) Geometry {
	return Polygon(
		Point{X: 0, Y: -height / 2},
		Point{X: width / 2, Y: 0},
		Point{X: 0, Y: height / 2},
		Point{X: -width / 2, Y: 0},
	)
}

// IsEmpty 是否没有任何可绘制的轮廓
func (g Geometry) IsEmpty() bool {
	return len(g.Contours()) == 0
}

// Contours 将几何细分为轮廓
func (g Geometry) Contours() []Contour {
	switch g.Kind {
	case GeometryCircle:
		return []Contour{{Points: ellipsePoints(g.Radius, g.Radius), Closed: true}}
	case GeometryEllipse:
		return []Contour{{Points: ellipsePoints(g.Width/2, g.Height/2), Closed: true}}
	case GeometryRect:
		hw, hh := g.Width/2, g.Height/2
		return []Contour{{Points: []Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}, Closed: true}}
	case GeometryRoundedRect:
		return []Contour{{Points: roundedRectPoints(g.Width, g.Height, g.CornerRadius), Closed: true}}
	case GeometryPolygon:
		if len(g.Points) < 2 {
			return nil
		}
		return []Contour{{Points: g.Points, Closed: true}}
	case GeometryPolyline:
		if len(g.Points) < 2 {
			return nil
		}
		return []Contour{{Points: g.Points, Closed: false}}
	case GeometryArc:
		pts := arcPoints(g.Radius, g.StartAngle, g.EndAngle)
		if len(pts) < 2 {
			return nil
		}
		return []Contour{{Points: pts, Closed: false}}
	case GeometryCompound:
		var out []Contour
		for _, p := range g.Parts {
			out = append(out, p.Contours()...)
		}
		return out
	default:
		return nil
	}
}

// Bounds 几何在本地坐标下的包围盒；没有轮廓时 ok 为 false
func (g Geometry) Bounds() (r Rect, ok bool) {
	for _, c := range g.Contours() {
		for _, p := range c.Points {
			if !ok {
				r = Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				ok = true
				continue
			}
			r = r.Union(Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
		}
	}
	return r, ok
}

// segmentsFor 根据半径选择细分段数
func segmentsFor(radius float64) int {
	n := int(math.Abs(radius) * 1.5)
	if n < 16 {
		n = 16
	}
	if n > 96 {
		n = 96
	}
	return n
}

func ellipsePoints(rx, ry float64) []Point {
	n := segmentsFor(math.Max(math.Abs(rx), math.Abs(ry)))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: rx * math.Cos(a), Y: ry * math.Sin(a)}
	}
	return pts
}

func arcPoints(radius, start, end float64) []Point {
	sweep := end - start
	if sweep == 0 || math.IsNaN(sweep) {
		return nil
	}
	n := int(math.Ceil(float64(segmentsFor(radius)) * math.Abs(sweep) / (2 * math.Pi)))
	if n < 2 {
		n = 2
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = Polar(radius, start+sweep*float64(i)/float64(n))
	}
	return pts
}

func roundedRectPoints(width, height, corner float64) []Point {
	hw, hh := width/2, height/2
	corner = math.Min(corner, math.Min(math.Abs(hw), math.Abs(hh)))
	if corner <= 0 {
		return []Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	}
	const cornerSegments = 6
	centers := []struct {
		c     Point
		start float64
	}{
		{Point{hw - corner, -hh + corner}, -math.Pi / 2},
		{Point{hw - corner, hh - corner}, 0},
		{Point{-hw + corner, hh - corner}, math.Pi / 2},
		{Point{-hw + corner, -hh + corner}, math.Pi},
	}
	pts := make([]Point, 0, 4*(cornerSegments+1))
	for _, cc := range centers {
		for i := 0; i <= cornerSegments; i++ {
			a := cc.start + (math.Pi/2)*float64(i)/cornerSegments
			pts = append(pts, cc.c.Add(Polar(corner, a)))
		}
	}
	return pts
}
