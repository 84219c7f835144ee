package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gonewx/towerviz/pkg/types"
)

// TestTowerVisualConfigFileMatchesDefaults 数据文件与内置默认值保持一致
func TestTowerVisualConfigFileMatchesDefaults(t *testing.T) {
	cfg, err := LoadTowerVisualConfig("../../data/tower_visuals.yaml")
	if err != nil {
		t.Fatalf("failed to load data/tower_visuals.yaml: %v", err)
	}

	def := DefaultTowerVisualConfig()
	if !reflect.DeepEqual(cfg, def) {
		t.Errorf("data/tower_visuals.yaml differs from DefaultTowerVisualConfig()\nfile:    %+v\ndefault: %+v", cfg, def)
	}
}

func TestDefaultTowerVisualConfigValid(t *testing.T) {
	cfg := DefaultTowerVisualConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.Geometry.PlatformSize != 60 || cfg.Geometry.BodyRadius != 18 ||
		cfg.Geometry.BarrelLength != 26 || cfg.Geometry.BarrelWidth != 6 {
		t.Errorf("unexpected geometry defaults: %+v", cfg.Geometry)
	}
	if cfg.Decorators.MergeSpacing != 10 {
		t.Errorf("expected merge spacing 10, got %.1f", cfg.Decorators.MergeSpacing)
	}
}

func TestParseTowerVisualConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *TowerVisualConfig)
	}{
		{
			name: "部分覆盖保留默认值",
			yamlContent: `
geometry:
  platformSize: 80
  bodyRadius: 18
  barrelLength: 26
  barrelWidth: 6
decorators:
  mergeSpacing: 12
  cooldownColor: "#ff0000"
`,
			validate: func(t *testing.T, cfg *TowerVisualConfig) {
				if cfg.Geometry.PlatformSize != 80 {
					t.Errorf("expected platformSize 80, got %.1f", cfg.Geometry.PlatformSize)
				}
				if cfg.Decorators.MergeSpacing != 12 {
					t.Errorf("expected mergeSpacing 12, got %.1f", cfg.Decorators.MergeSpacing)
				}
				if cfg.Idle.PulsePeriod != 1.6 {
					t.Errorf("idle defaults should survive, got %.2f", cfg.Idle.PulsePeriod)
				}
				if cfg.GetLayerZ(types.SlotLODDetail) != 10 {
					t.Errorf("layerZ defaults should survive")
				}
			},
		},
		{
			name: "覆盖单个图层 Z 值",
			yamlContent: `
layerZ:
  stars: 7
`,
			validate: func(t *testing.T, cfg *TowerVisualConfig) {
				if cfg.GetLayerZ(types.SlotStars) != 7 {
					t.Errorf("expected stars z 7, got %.1f", cfg.GetLayerZ(types.SlotStars))
				}
				if cfg.GetLayerZ(types.SlotRange) != -10 {
					t.Errorf("expected range z -10, got %.1f", cfg.GetLayerZ(types.SlotRange))
				}
			},
		},
		{
			name: "未知图层名",
			yamlContent: `
layerZ:
  turret: 3
`,
			wantErr:     true,
			errContains: "unknown layer",
		},
		{
			name: "史诗缺少外环半径",
			yamlContent: `
rarity:
  epic:
    glowRadius: 30
    glowAlpha: 0.3
    midGlowRadius: 38
    midGlowAlpha: 0.1
    outerGlowRadius: 46
    outerGlowAlpha: 0.05
`,
			wantErr:     true,
			errContains: "ringRadius",
		},
		{
			name: "透明度越界",
			yamlContent: `
rarity:
  common:
    glowRadius: 26
    glowAlpha: 1.5
`,
			wantErr:     true,
			errContains: "glowAlpha",
		},
		{
			name: "非正尺寸",
			yamlContent: `
geometry:
  platformSize: 0
  bodyRadius: 18
  barrelLength: 26
  barrelWidth: 6
`,
			wantErr:     true,
			errContains: "geometry",
		},
		{
			name: "非法冷却颜色",
			yamlContent: `
decorators:
  mergeSpacing: 10
  cooldownColor: "white"
`,
			wantErr:     true,
			errContains: "cooldownColor",
		},
		{
			name:        "YAML 语法错误",
			yamlContent: "geometry: [unclosed",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseTowerVisualConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadTowerVisualConfigOrDefault(t *testing.T) {
	cfg := LoadTowerVisualConfigOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg == nil || cfg.Geometry.BodyRadius != 18 {
		t.Fatalf("missing file should fall back to defaults, got %+v", cfg)
	}

	path := filepath.Join(t.TempDir(), "tower_visuals.yaml")
	if err := os.WriteFile(path, []byte("lod:\n  zoomThreshold: 2.5\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	cfg = LoadTowerVisualConfigOrDefault(path)
	if cfg.LOD.ZoomThreshold != 2.5 {
		t.Errorf("expected zoom threshold 2.5, got %.2f", cfg.LOD.ZoomThreshold)
	}
}

func TestGetRarityGlowFallback(t *testing.T) {
	cfg := DefaultTowerVisualConfig()
	if cfg.GetRarityGlow(types.RarityLegendary).RingRadius != 48 {
		t.Error("legendary ring radius should be 48")
	}

	delete(cfg.Rarity, "epic")
	if got := cfg.GetRarityGlow(types.RarityEpic); got != cfg.Rarity["common"] {
		t.Errorf("missing tier should fall back to common, got %+v", got)
	}

	cfg.Rarity = nil
	if got := cfg.GetRarityGlow(types.RarityRare); got.GlowRadius != 26 {
		t.Errorf("empty table should fall back to built-in common, got %+v", got)
	}
}

func TestGetCooldownColor(t *testing.T) {
	cfg := DefaultTowerVisualConfig()
	c := cfg.GetCooldownColor()
	if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 217 {
		t.Errorf("unexpected cooldown color %v", c)
	}

	cfg.Decorators.CooldownColor = "bogus"
	if got := cfg.GetCooldownColor(); got != c {
		t.Errorf("invalid color should fall back to white 85%%, got %v", got)
	}
}

func TestShowcaseConfig(t *testing.T) {
	cfg, err := LoadShowcaseConfig("../../data/showcase.yaml")
	if err != nil {
		t.Fatalf("failed to parse showcase config: %v", err)
	}
	if len(cfg.Towers) != types.ArchetypeCount {
		t.Errorf("showcase should list one tower per archetype, got %d", len(cfg.Towers))
	}

	seen := make(map[types.Archetype]bool)
	for _, tower := range cfg.Towers {
		seen[types.ParseArchetype(tower.WeaponType)] = true
	}
	if len(seen) != types.ArchetypeCount {
		t.Errorf("showcase towers should cover every archetype, covered %d", len(seen))
	}

	if _, err := LoadShowcaseConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should be an error")
	}
	if _, err := ParseShowcaseConfig([]byte("columns: 0\ncellSize: 100\n")); err == nil {
		t.Error("columns 0 should be rejected")
	}
	bad := "columns: 2\ncellSize: 100\ntowers:\n  - { weaponType: beam, color: nope }\n"
	if _, err := ParseShowcaseConfig([]byte(bad)); err == nil {
		t.Error("invalid tower color should be rejected")
	}
}
