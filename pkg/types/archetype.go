// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// Archetype 塔的视觉原型
// 原型决定塔的全部视觉配方（底座、主体、炮管），是一个封闭集合：
// 新增原型必须同时修改分类器和三类构建器的 switch
type Archetype int

const (
	// ArchetypeProjectile 弹射型（默认原型）
	ArchetypeProjectile Archetype = iota
	// ArchetypeArtillery 火炮型
	ArchetypeArtillery
	// ArchetypeFrost 冰霜型
	ArchetypeFrost
	// ArchetypeMagic 魔法型
	ArchetypeMagic
	// ArchetypeBeam 光束型
	ArchetypeBeam
	// ArchetypeTesla 电塔型
	ArchetypeTesla
	// ArchetypePyro 火焰型
	ArchetypePyro
	// ArchetypeLegendary 传说型
	ArchetypeLegendary
	// ArchetypeMultishot 多重射击型
	ArchetypeMultishot
	// ArchetypeExecute 处决型
	ArchetypeExecute

	archetypeCount
)

// ArchetypeCount 原型总数
const ArchetypeCount = int(archetypeCount)

// archetypeAliases 武器类型字符串（小写）到原型的映射
// 除原型本名外还收录了内容表里出现过的别名
var archetypeAliases = map[string]Archetype{
	"projectile": ArchetypeProjectile,
	"bow":        ArchetypeProjectile,
	"crossbow":   ArchetypeProjectile,
	"gun":        ArchetypeProjectile,

	"artillery": ArchetypeArtillery,
	"cannon":    ArchetypeArtillery,
	"mortar":    ArchetypeArtillery,
	"bomb":      ArchetypeArtillery,

	"frost": ArchetypeFrost,
	"ice":   ArchetypeFrost,
	"cryo":  ArchetypeFrost,

	"magic":  ArchetypeMagic,
	"arcane": ArchetypeMagic,
	"staff":  ArchetypeMagic,
	"wand":   ArchetypeMagic,

	"beam":  ArchetypeBeam,
	"laser": ArchetypeBeam,

	"tesla":     ArchetypeTesla,
	"lightning": ArchetypeTesla,
	"shock":     ArchetypeTesla,

	"pyro":         ArchetypePyro,
	"flame":        ArchetypePyro,
	"fire":         ArchetypePyro,
	"flamethrower": ArchetypePyro,

	"legendary": ArchetypeLegendary,
	"excalibur": ArchetypeLegendary,
	"divine":    ArchetypeLegendary,

	"multishot": ArchetypeMultishot,
	"multi":     ArchetypeMultishot,
	"scatter":   ArchetypeMultishot,

	"execute": ArchetypeExecute,
	"null":    ArchetypeExecute,
	"reaper":  ArchetypeExecute,
}

// ParseArchetype 将武器类型字符串分类为原型
// 大小写不敏感，忽略首尾空白；未知或空字符串返回 ArchetypeProjectile
func ParseArchetype(weaponType string) Archetype {
	key := strings.ToLower(strings.TrimSpace(weaponType))
	if a, ok := archetypeAliases[key]; ok {
		return a
	}
	return ArchetypeProjectile
}

// AllArchetypes 按定义顺序返回全部原型
func AllArchetypes() []Archetype {
	all := make([]Archetype, 0, ArchetypeCount)
	for a := Archetype(0); a < archetypeCount; a++ {
		all = append(all, a)
	}
	return all
}

// IsValid 是否为已定义的原型
func (a Archetype) IsValid() bool {
	return a >= 0 && a < archetypeCount
}

// String 返回原型的规范名称
func (a Archetype) String() string {
	switch a {
	case ArchetypeProjectile:
		return "projectile"
	case ArchetypeArtillery:
		return "artillery"
	case ArchetypeFrost:
		return "frost"
	case ArchetypeMagic:
		return "magic"
	case ArchetypeBeam:
		return "beam"
	case ArchetypeTesla:
		return "tesla"
	case ArchetypePyro:
		return "pyro"
	case ArchetypeLegendary:
		return "legendary"
	case ArchetypeMultishot:
		return "multishot"
	case ArchetypeExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// UsesDiamondGlyph 合并指示器是否使用菱形图标（传说、冰霜），其余为圆点
func (a Archetype) UsesDiamondGlyph() bool {
	return a == ArchetypeLegendary || a == ArchetypeFrost
}
