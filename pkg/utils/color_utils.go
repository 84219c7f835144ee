package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// 塔视觉的派生色（描边、高光、暗部）都从一个基础色计算，
// 明暗调整在 Lab 空间完成，保证不同色相的亮度变化观感一致。

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

// ParseHexColor 解析 "#rgb"、"#rrggbb" 或 "#rrggbbaa"（# 可省略）
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return fromColorful(c, alpha), nil
}

// FormatHexColor 格式化为 "#rrggbb"，alpha 不为 255 时追加两位 alpha
func FormatHexColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WithAlpha 返回替换了透明度的颜色，alpha 取值 0-1
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = alphaByte(alpha)
	return c
}

// ScaleAlpha 按比例缩放透明度
func ScaleAlpha(c color.NRGBA, factor float64) color.NRGBA {
	c.A = alphaByte(float64(c.A) / 255 * factor)
	return c
}

// Lighten 在 Lab 空间提高亮度，amount 取值 0-1（对应 L 通道增量）
func Lighten(c color.NRGBA, amount float64) color.NRGBA {
	l, a, b := toColorful(c).Lab()
	return fromColorful(colorful.Lab(l+amount, a, b), c.A)
}

// Darken 在 Lab 空间降低亮度
func Darken(c color.NRGBA, amount float64) color.NRGBA {
	return Lighten(c, -amount)
}

// Mix 在 Lab 空间混合两种颜色，t=0 返回 a，t=1 返回 b
// 透明度线性插值
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	t = Clamp01(t)
	mixed := toColorful(a).BlendLab(toColorful(b), t)
	alpha := Lerp(float64(a.A), float64(b.A), t)
	return fromColorful(mixed, uint8(alpha+0.5))
}

// Saturate 在 HCL 空间调整彩度，factor>1 更鲜艳
func Saturate(c color.NRGBA, factor float64) color.NRGBA {
	h, chroma, l := toColorful(c).Hcl()
	return fromColorful(colorful.Hcl(h, chroma*factor, l), c.A)
}

func alphaByte(a float64) uint8 {
	return uint8(Clamp01(a)*255 + 0.5)
}

