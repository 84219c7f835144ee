// cmd/tower_tree_dump/main.go
// 塔视觉合成树导出工具
//
// 用法：
//
//	go run ./cmd/tower_tree_dump --weapon=frost --rarity=epic
//	go run ./cmd/tower_tree_dump --all --rarity=legendary --out=trees.yaml
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/entities"
	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
	"github.com/gonewx/towerviz/pkg/utils"
	"gopkg.in/yaml.v3"
)

var (
	configPath  = flag.String("config", "data/tower_visuals.yaml", "塔视觉配置文件路径")
	weaponType  = flag.String("weapon", "projectile", "武器类型")
	rarity      = flag.String("rarity", "common", "稀有度")
	colorHex    = flag.String("color", "#4fc3f7", "基础色 #rrggbb")
	towerRange  = flag.Float64("range", 120, "攻击范围")
	mergeLevel  = flag.Int("merge", 1, "合成等级")
	level       = flag.Int("level", 1, "塔等级")
	damage      = flag.Float64("damage", 10, "伤害")
	attackSpeed = flag.Float64("speed", 1, "攻速")
	projectiles = flag.Int("count", 1, "弹丸数")
	all         = flag.Bool("all", false, "导出全部原型（忽略 --weapon）")
	outPath     = flag.String("out", "", "输出文件（默认标准输出）")
	verbose     = flag.Bool("verbose", false, "详细日志")
)

// towerDump 单座塔的导出结果
type towerDump struct {
	WeaponType string                     `yaml:"weaponType"`
	Archetype  string                     `yaml:"archetype"`
	Rarity     string                     `yaml:"rarity"`
	Nodes      int                        `yaml:"nodes"`
	Tree       scenegraph.NodeDescription `yaml:"tree"`
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.LoadTowerVisualConfigOrDefault(*configPath)

	c, err := utils.ParseHexColor(*colorHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "颜色无效: %v\n", err)
		os.Exit(1)
	}

	base := entities.TowerVisualParams{
		WeaponType:      *weaponType,
		Color:           c,
		Range:           *towerRange,
		MergeLevel:      *mergeLevel,
		Level:           *level,
		Damage:          *damage,
		AttackSpeed:     *attackSpeed,
		ProjectileCount: *projectiles,
		Rarity:          *rarity,
	}

	params := []entities.TowerVisualParams{base}
	if *all {
		params = allArchetypes(base)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建输出文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := dumpTowers(w, cfg, params); err != nil {
		fmt.Fprintf(os.Stderr, "导出失败: %v\n", err)
		os.Exit(1)
	}
}

// allArchetypes 为每个原型复制一份参数
func allArchetypes(base entities.TowerVisualParams) []entities.TowerVisualParams {
	archetypes := types.AllArchetypes()
	params := make([]entities.TowerVisualParams, len(archetypes))
	for i, a := range archetypes {
		params[i] = base
		params[i].WeaponType = a.String()
	}
	return params
}

// dumpTowers 构建每座塔并以 YAML 文档流写出
func dumpTowers(w io.Writer, cfg *config.TowerVisualConfig, params []entities.TowerVisualParams) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	for _, p := range params {
		root := entities.BuildTowerVisual(cfg, p, entities.IdleAnimationStarterFunc(func(*scenegraph.Node, types.Archetype, color.NRGBA) {}))
		dump := towerDump{
			WeaponType: p.WeaponType,
			Archetype:  types.ParseArchetype(p.WeaponType).String(),
			Rarity:     types.ParseRarity(p.Rarity).String(),
			Nodes:      root.CountNodes(),
			Tree:       scenegraph.Describe(root),
		}
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("failed to encode %s: %w", p.WeaponType, err)
		}
	}
	return nil
}
