package scenegraph

import "image/color"

// LineCap 描边端点样式
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// BlendMode 混合模式
type BlendMode int

const (
	// BlendAlpha 普通透明混合
	BlendAlpha BlendMode = iota
	// BlendAdd 叠加混合（光晕、发光部件）
	BlendAdd
)

// ShapeStyle 形状节点的绘制样式
//
// 颜色使用非预乘的 color.NRGBA；Alpha 为 0 的填充或描边视为不绘制。
type ShapeStyle struct {
	FillColor   color.NRGBA
	StrokeColor color.NRGBA
	LineWidth   float64

	// GlowWidth 描边外发光宽度，0 表示无发光
	GlowWidth float64

	LineCap LineCap
	Blend   BlendMode

	// Dash 描边虚线样式（线段长、间隔长交替），nil 表示实线
	Dash []float64
}

// HasFill 是否需要填充
func (s ShapeStyle) HasFill() bool {
	return s.FillColor.A > 0
}

// HasStroke 是否需要描边
func (s ShapeStyle) HasStroke() bool {
	return s.StrokeColor.A > 0 && s.LineWidth > 0
}

// Filled 仅填充的样式
func Filled(c color.NRGBA) ShapeStyle {
	return ShapeStyle{FillColor: c}
}

// Stroked 仅描边的样式
func Stroked(c color.NRGBA, width float64) ShapeStyle {
	return ShapeStyle{StrokeColor: c, LineWidth: width}
}

// FilledStroked 填充加描边的样式
func FilledStroked(fill, stroke color.NRGBA, width float64) ShapeStyle {
	return ShapeStyle{FillColor: fill, StrokeColor: stroke, LineWidth: width}
}

// WithGlow 返回带外发光的样式副本
func (s ShapeStyle) WithGlow(width float64) ShapeStyle {
	s.GlowWidth = width
	return s
}

// WithBlend 返回指定混合模式的样式副本
func (s ShapeStyle) WithBlend(b BlendMode) ShapeStyle {
	s.Blend = b
	return s
}

// WithCap 返回指定端点样式的副本
func (s ShapeStyle) WithCap(c LineCap) ShapeStyle {
	s.LineCap = c
	return s
}

// LabelStyle 标签节点的文字样式
type LabelStyle struct {
	Text     string
	FontSize float64
	Color    color.NRGBA
}
