package types

import "strings"

// RarityTier 稀有度等级（有序）
// common < rare < epic < legendary
// 稀有度影响光晕强度，并在 epic 及以上解锁外圈旋转光环
type RarityTier int

const (
	// RarityCommon 普通（默认）
	RarityCommon RarityTier = iota
	// RarityRare 稀有
	RarityRare
	// RarityEpic 史诗
	RarityEpic
	// RarityLegendary 传说
	RarityLegendary
)

// ParseRarity 将稀有度字符串分类为等级
// 大小写不敏感；除 "rare"、"epic"、"legendary" 外一律返回 RarityCommon
func ParseRarity(rarity string) RarityTier {
	switch strings.ToLower(strings.TrimSpace(rarity)) {
	case "rare":
		return RarityRare
	case "epic":
		return RarityEpic
	case "legendary":
		return RarityLegendary
	default:
		return RarityCommon
	}
}

// AllRarities 从低到高返回全部稀有度
func AllRarities() []RarityTier {
	return []RarityTier{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// AtLeast 当前等级是否不低于 other
func (r RarityTier) AtLeast(other RarityTier) bool {
	return r >= other
}

// String 返回稀有度名称
func (r RarityTier) String() string {
	switch r {
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "common"
	}
}
