package entities

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
)

const eps = 1e-6

var testColor = color.NRGBA{R: 79, G: 195, B: 247, A: 255}

func defaultParams(weaponType, rarity string) TowerVisualParams {
	return TowerVisualParams{
		WeaponType:      weaponType,
		Color:           testColor,
		Range:           120,
		MergeLevel:      3,
		Level:           2,
		Damage:          10,
		AttackSpeed:     2,
		ProjectileCount: 3,
		Rarity:          rarity,
	}
}

// TestBuildTowerVisualStructure 每个原型 × 稀有度都有完整的图层结构
func TestBuildTowerVisualStructure(t *testing.T) {
	cfg := config.DefaultTowerVisualConfig()

	for _, a := range types.AllArchetypes() {
		for _, r := range types.AllRarities() {
			t.Run(a.String()+"/"+r.String(), func(t *testing.T) {
				root := BuildTowerVisual(cfg, defaultParams(a.String(), r.String()), nil)

				if root.Name != TowerRootName {
					t.Errorf("root name = %q, want %q", root.Name, TowerRootName)
				}
				if err := root.Validate(); err != nil {
					t.Fatalf("duplicate names: %v", err)
				}

				slots := types.TopLevelSlots()
				if root.ChildCount() != len(slots) {
					t.Fatalf("root has %d children, want %d", root.ChildCount(), len(slots))
				}
				for i, slot := range slots {
					child := root.Children()[i]
					if child.Name != slot.Name() {
						t.Errorf("child %d = %q, want %q", i, child.Name, slot.Name())
					}
					if child.ZPosition != cfg.GetLayerZ(slot) {
						t.Errorf("%s z = %v, want %v", slot, child.ZPosition, cfg.GetLayerZ(slot))
					}
					if child.Hidden != slot.StartsHidden() {
						t.Errorf("%s hidden = %v, want %v", slot, child.Hidden, slot.StartsHidden())
					}
				}

				flash := root.Slot(types.SlotMuzzleFlash)
				if flash == nil {
					t.Fatal("muzzleFlash should be nested under barrel")
				}
				if !flash.Hidden {
					t.Error("muzzleFlash should start hidden")
				}
				if root.ChildNamed(types.SlotMuzzleFlash.Name()) != nil {
					t.Error("muzzleFlash must not be a direct child of root")
				}

				if root.Slot(types.SlotBasePlatform).ChildCount() == 0 ||
					root.Slot(types.SlotBody).ChildCount() == 0 {
					t.Error("platform and body should not be empty")
				}
			})
		}
	}
}

// TestLayerDrawOrder 光晕在平台之后，平台在塔身之后，范围圈最底层，LOD 最顶层
func TestLayerDrawOrder(t *testing.T) {
	root := BuildTowerVisual(nil, defaultParams("projectile", "common"), nil)
	order := root.DrawOrder()

	index := make(map[string]int, len(order))
	for i, n := range order {
		index[n.Name] = i
	}

	before := [][2]types.LayerSlot{
		{types.SlotRange, types.SlotOuterGlow},
		{types.SlotOuterGlow, types.SlotMidGlow},
		{types.SlotMidGlow, types.SlotGlow},
		{types.SlotGlow, types.SlotBasePlatform},
		{types.SlotBasePlatform, types.SlotBody},
		{types.SlotBody, types.SlotBarrel},
		{types.SlotBarrel, types.SlotDetails},
		{types.SlotDetails, types.SlotStars},
		{types.SlotStars, types.SlotCooldown},
		{types.SlotCooldown, types.SlotMergeHighlight},
		{types.SlotMergeHighlight, types.SlotLODDetail},
	}
	for _, pair := range before {
		if index[pair[0].Name()] >= index[pair[1].Name()] {
			t.Errorf("%s should draw before %s", pair[0], pair[1])
		}
	}
	if order[len(order)-1].Name != types.SlotLODDetail.Name() {
		t.Errorf("lodDetail should be topmost, got %q", order[len(order)-1].Name)
	}

	// 插入顺序与绘制顺序相互独立：range 是第 9 个子节点，却最先绘制
	if got := root.Children()[8].Name; got != types.SlotRange.Name() {
		t.Errorf("child 8 = %q, want range", got)
	}
	if order[0].Name != types.SlotRange.Name() {
		t.Errorf("range should draw first, got %q", order[0].Name)
	}
}

// TestBarrelPivotInvariant 炮管锚定在基部：几何全部在 y<=0，以 x=0 对称
func TestBarrelPivotInvariant(t *testing.T) {
	cfg := config.DefaultTowerVisualConfig()
	length := cfg.Geometry.BarrelLength

	for _, a := range types.AllArchetypes() {
		t.Run(a.String(), func(t *testing.T) {
			root := BuildTowerVisual(cfg, defaultParams(a.String(), "rare"), nil)
			barrel := root.Slot(types.SlotBarrel)

			if barrel.Position != (scenegraph.Point{}) {
				t.Errorf("barrel node should sit at the tower center, got %+v", barrel.Position)
			}

			// 只看炮管自身部件（muzzleFlash 超出炮口）
			flash := root.Slot(types.SlotMuzzleFlash)
			barrel.RemoveChild(types.SlotMuzzleFlash.Name())
			r, found := barrel.Bounds()
			barrel.AddChild(flash)
			if !found {
				t.Fatal("barrel has no geometry")
			}

			if math.Abs(r.MaxY) > eps {
				t.Errorf("barrel base should be at y=0, max y = %v", r.MaxY)
			}
			if math.Abs(r.MinY+length) > eps {
				t.Errorf("barrel tip should be at y=-%v, min y = %v", length, r.MinY)
			}
			if math.Abs(r.MinX+r.MaxX) > eps {
				t.Errorf("barrel should be centered on x=0, bounds x [%v, %v]", r.MinX, r.MaxX)
			}

			if flash.Position.X != 0 || flash.Position.Y != -length {
				t.Errorf("muzzleFlash should sit at the tip, got %+v", flash.Position)
			}

			// 绕原点旋转 90° 后，基部仍在原点附近，炮口移到 +X 方向
			barrel.Rotation = math.Pi / 2
			tip := barrel.ToParent(scenegraph.Point{Y: -length})
			base := barrel.ToParent(scenegraph.Point{})
			if math.Abs(base.X) > eps || math.Abs(base.Y) > eps {
				t.Errorf("rotating barrel moved its base to %+v", base)
			}
			if math.Abs(tip.X-length) > eps || math.Abs(tip.Y) > eps {
				t.Errorf("rotated tip = %+v, want (%v, 0)", tip, length)
			}
		})
	}
}

// TestMergeIndicator 合成标记数量等于合成等级，x 坐标对称
func TestMergeIndicator(t *testing.T) {
	tests := []struct {
		name      string
		weapon    string
		n         int
		wantX     []float64
		wantShape scenegraph.GeometryKind
	}{
		{"三个圆点", "projectile", 3, []float64{-10, 0, 10}, scenegraph.GeometryCircle},
		{"两个菱形（冰霜）", "frost", 2, []float64{-5, 5}, scenegraph.GeometryPolygon},
		{"一个菱形（传说）", "legendary", 1, []float64{0}, scenegraph.GeometryPolygon},
		{"零级为空", "beam", 0, nil, scenegraph.GeometryNone},
		{"负数为空", "beam", -2, nil, scenegraph.GeometryNone},
		{"不设上限", "tesla", 25, nil, scenegraph.GeometryCircle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams(tt.weapon, "common")
			p.MergeLevel = tt.n
			stars := BuildTowerVisual(nil, p, nil).Slot(types.SlotStars)

			want := tt.n
			if want < 0 {
				want = 0
			}
			if stars.ChildCount() != want {
				t.Fatalf("glyph count = %d, want %d", stars.ChildCount(), want)
			}

			sum := 0.0
			for i, g := range stars.Children() {
				if g.Name != string(types.PartMergeGlyph.Index(i)) {
					t.Errorf("glyph %d name = %q", i, g.Name)
				}
				if g.Geometry.Kind != tt.wantShape {
					t.Errorf("glyph %d kind = %v, want %v", i, g.Geometry.Kind, tt.wantShape)
				}
				if tt.wantX != nil && math.Abs(g.Position.X-tt.wantX[i]) > eps {
					t.Errorf("glyph %d x = %v, want %v", i, g.Position.X, tt.wantX[i])
				}
				sum += g.Position.X
			}
			if math.Abs(sum) > eps {
				t.Errorf("glyphs should be symmetric about x=0, sum = %v", sum)
			}
		})
	}
}

func TestSetMergeLevel(t *testing.T) {
	root := BuildTowerVisual(nil, defaultParams("magic", "epic"), nil)
	SetMergeLevel(root, nil, types.ArchetypeMagic, types.RarityEpic, testColor, 5)

	stars := root.Slot(types.SlotStars)
	if stars.ChildCount() != 5 {
		t.Fatalf("expected 5 glyphs after SetMergeLevel, got %d", stars.ChildCount())
	}
	if x := stars.Children()[0].Position.X; math.Abs(x+20) > eps {
		t.Errorf("first glyph x = %v, want -20", x)
	}

	SetMergeLevel(root, nil, types.ArchetypeMagic, types.RarityEpic, testColor, 0)
	if stars.ChildCount() != 0 {
		t.Error("merge level 0 should clear glyphs")
	}

	// 没有 stars 层时不应 panic
	SetMergeLevel(scenegraph.NewContainer("empty"), nil, types.ArchetypeMagic, types.RarityEpic, testColor, 2)
}

// TestRangeIndicator 范围圈半径等于输入值，不缩放，虚线不生效
func TestRangeIndicator(t *testing.T) {
	for _, radius := range []float64{150, 0, -40} {
		p := defaultParams("artillery", "rare")
		p.Range = radius
		rng := BuildTowerVisual(nil, p, nil).Slot(types.SlotRange)

		if rng.Kind != scenegraph.KindShape || rng.Geometry.Kind != scenegraph.GeometryCircle {
			t.Fatalf("range should be a circle shape, got %v/%v", rng.Kind, rng.Geometry.Kind)
		}
		if rng.Geometry.Radius != radius {
			t.Errorf("range radius = %v, want %v", rng.Geometry.Radius, radius)
		}
		if !rng.Hidden {
			t.Error("range should start hidden")
		}
		if !rng.Style.HasFill() || !rng.Style.HasStroke() {
			t.Error("range should be filled and stroked")
		}
		if rng.Style.Dash != nil {
			t.Errorf("dash pattern must not be applied, got %v", rng.Style.Dash)
		}
	}
}

func TestRangeDashPattern(t *testing.T) {
	pattern := RangeDashPattern([]float64{8, 6}, 100)
	if len(pattern) != 2 {
		t.Fatalf("expected 2 values, got %v", pattern)
	}
	period := pattern[0] + pattern[1]
	count := 2 * math.Pi * 100 / period
	if math.Abs(count-math.Round(count)) > 1e-9 {
		t.Errorf("pattern should tile the circumference evenly, count = %v", count)
	}
	if math.Abs(pattern[0]/pattern[1]-8.0/6.0) > 1e-9 {
		t.Errorf("dash/gap ratio should be preserved, got %v", pattern)
	}

	if RangeDashPattern([]float64{8, 6}, 0) != nil {
		t.Error("zero radius should give nil")
	}
	if RangeDashPattern([]float64{8}, 10) != nil {
		t.Error("incomplete dash should give nil")
	}
}

// TestDashedOutlines 范围圈保持实线，合成高亮环为虚线
func TestDashedOutlines(t *testing.T) {
	root := BuildTowerVisual(nil, defaultParams("magic", "epic"), nil)

	if dash := root.Slot(types.SlotRange).Style.Dash; dash != nil {
		t.Errorf("range indicator should stay solid, got dash %v", dash)
	}
	highlight := root.Slot(types.SlotMergeHighlight)
	if len(highlight.Style.Dash) != 2 {
		t.Fatalf("merge highlight should be dashed, got %v", highlight.Style.Dash)
	}
	if !highlight.Hidden {
		t.Error("merge highlight should start hidden")
	}
}

func TestCooldownArcDefaults(t *testing.T) {
	cfg := config.DefaultTowerVisualConfig()
	arc := BuildTowerVisual(cfg, defaultParams("pyro", "common"), nil).Slot(types.SlotCooldown)

	if arc.Geometry.Kind != scenegraph.GeometryArc || !arc.Geometry.IsEmpty() {
		t.Errorf("cooldown should be an empty arc, got %+v", arc.Geometry)
	}
	if arc.Style.HasFill() {
		t.Error("cooldown arc should be stroke-only")
	}
	if arc.Style.LineWidth != 3 || arc.Style.LineCap != scenegraph.LineCapRound {
		t.Errorf("unexpected stroke style %+v", arc.Style)
	}
	want := color.NRGBA{R: 255, G: 255, B: 255, A: 217}
	if arc.Style.StrokeColor != want {
		t.Errorf("stroke color = %v, want %v", arc.Style.StrokeColor, want)
	}
	if !arc.Hidden {
		t.Error("cooldown should start hidden")
	}
}

// TestLODDetail DPS = 伤害 × 攻速 × 弹丸数
func TestLODDetail(t *testing.T) {
	tests := []struct {
		name       string
		damage     float64
		speed      float64
		count      int
		level      int
		wantDPS    string
		wantLevelL string
	}{
		{"10x2x3", 10, 2, 3, 2, "60 DPS", "2"},
		{"千位缩写", 400, 1.5, 2, 7, "1.2K DPS", "7"},
		{"零弹丸", 10, 2, 0, 1, "0 DPS", "1"},
		{"负伤害不校验", -5, 2, 1, 0, "-10 DPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams("execute", "legendary")
			p.Damage, p.AttackSpeed, p.ProjectileCount, p.Level = tt.damage, tt.speed, tt.count, tt.level

			lod := BuildTowerVisual(nil, p, nil).Slot(types.SlotLODDetail)
			label := lod.Part(types.PartDPSLabel)
			if label == nil || label.Kind != scenegraph.KindLabel {
				t.Fatal("dpsLabel should be a label node")
			}
			if label.Label.Text != tt.wantDPS {
				t.Errorf("dps text = %q, want %q", label.Label.Text, tt.wantDPS)
			}
			if lvl := lod.Part(types.PartLevelLabel); lvl == nil || lvl.Label.Text != tt.wantLevelL {
				t.Errorf("level label wrong: %+v", lvl)
			}
			if lod.Part(types.PartDPSBackground) == nil || lod.Part(types.PartLevelBadge) == nil {
				t.Error("background and level badge should exist")
			}
			if lod.Part(types.PartDPSBackground).Geometry.Kind != scenegraph.GeometryRoundedRect {
				t.Error("dps background should be a rounded rect")
			}
		})
	}
}

func TestFormatDPS(t *testing.T) {
	tests := []struct {
		dps  float64
		want string
	}{
		{60, "60 DPS"},
		{999, "999 DPS"},
		{999.4, "999 DPS"},
		{999.6, "1.0K DPS"},
		{1000, "1.0K DPS"},
		{math.Inf(1), "+Inf DPS"},
		{1234, "1.2K DPS"},
		{12500, "12.5K DPS"},
	}
	for _, tt := range tests {
		if got := FormatDPS(tt.dps); got != tt.want {
			t.Errorf("FormatDPS(%v) = %q, want %q", tt.dps, got, tt.want)
		}
	}
}

// TestRarityOuterRing 史诗及以上在外层光晕中有旋转外环
func TestRarityOuterRing(t *testing.T) {
	for _, r := range types.AllRarities() {
		outer := BuildTowerVisual(nil, defaultParams("beam", r.String()), nil).Slot(types.SlotOuterGlow)
		hasRing := outer.Part(types.PartRotatingRing) != nil
		if want := r.AtLeast(types.RarityEpic); hasRing != want {
			t.Errorf("%s: rotatingRing present = %v, want %v", r, hasRing, want)
		}
		if outer.Part(types.PartGlowDisc) == nil {
			t.Errorf("%s: outer glow disc missing", r)
		}
	}
}

// TestGlowScalesWithRarity 光晕强度随稀有度单调增加
func TestGlowScalesWithRarity(t *testing.T) {
	prevAlpha := uint8(0)
	prevRadius := 0.0
	for _, r := range types.AllRarities() {
		disc := BuildTowerVisual(nil, defaultParams("magic", r.String()), nil).
			Slot(types.SlotGlow).Part(types.PartGlowDisc)
		if disc.Style.FillColor.A <= prevAlpha || disc.Geometry.Radius <= prevRadius {
			t.Errorf("%s glow (r=%v a=%d) should exceed previous tier (r=%v a=%d)",
				r, disc.Geometry.Radius, disc.Style.FillColor.A, prevRadius, prevAlpha)
		}
		if disc.Style.Blend != scenegraph.BlendAdd {
			t.Errorf("%s glow should use additive blend", r)
		}
		prevAlpha, prevRadius = disc.Style.FillColor.A, disc.Geometry.Radius
	}
}

func TestUnknownInputsFallBack(t *testing.T) {
	root := BuildTowerVisual(nil, defaultParams("  PLASMA-ray ", "mythic"), nil)
	body := root.Slot(types.SlotBody)
	if body.Part(types.PartTargetRingOuter) == nil {
		t.Error("unknown weapon type should build the projectile body")
	}
	if root.Slot(types.SlotOuterGlow).Part(types.PartRotatingRing) != nil {
		t.Error("unknown rarity should be treated as common")
	}
}

// TestIdleStarterCalledOnce 待机动画入口在组装完成后被调用恰好一次
func TestIdleStarterCalledOnce(t *testing.T) {
	calls := 0
	var gotRoot *scenegraph.Node
	var gotArchetype types.Archetype
	var gotColor color.NRGBA

	starter := IdleAnimationStarterFunc(func(root *scenegraph.Node, a types.Archetype, c color.NRGBA) {
		calls++
		gotRoot, gotArchetype, gotColor = root, a, c
		// 调用时合成树已组装完整
		if root.Slot(types.SlotLODDetail) == nil {
			t.Error("starter invoked before assembly finished")
		}
	})

	root := BuildTowerVisual(nil, defaultParams("Lightning", "epic"), starter)

	if calls != 1 {
		t.Fatalf("starter called %d times, want 1", calls)
	}
	if gotRoot != root {
		t.Error("starter should receive the returned root")
	}
	if gotArchetype != types.ArchetypeTesla {
		t.Errorf("archetype = %v, want tesla", gotArchetype)
	}
	if gotColor != testColor {
		t.Errorf("color = %v, want %v", gotColor, testColor)
	}
}

func TestNewTowerVisualEntity(t *testing.T) {
	if _, err := NewTowerVisualEntity(nil, nil, defaultParams("beam", "rare"), 0, 0); err == nil {
		t.Fatal("nil entity manager should return an error")
	}

	em := ecs.NewEntityManager()
	id, err := NewTowerVisualEntity(em, nil, defaultParams("multi", "legendary"), 120, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != 120 || pos.Y != 80 {
		t.Errorf("position component wrong: %+v", pos)
	}

	visual, ok := ecs.GetComponent[*components.TowerVisualComponent](em, id)
	if !ok || visual.Root == nil {
		t.Fatal("visual component missing")
	}
	if visual.Archetype != types.ArchetypeMultishot || visual.Rarity != types.RarityLegendary {
		t.Errorf("visual archetype/rarity = %v/%v", visual.Archetype, visual.Rarity)
	}

	cmd, ok := ecs.GetComponent[*components.IdleAnimationCommandComponent](em, id)
	if !ok {
		t.Fatal("idle animation command should be attached")
	}
	if cmd.Processed || cmd.Archetype != types.ArchetypeMultishot || cmd.Color != testColor {
		t.Errorf("unexpected command %+v", cmd)
	}

	stats, ok := ecs.GetComponent[*components.TowerStatsComponent](em, id)
	if !ok || stats.Damage != 10 || stats.ProjectileCount != 3 || stats.Level != 2 {
		t.Errorf("stats component wrong: %+v", stats)
	}

	for name, has := range map[string]bool{
		"cooldown":  ecs.HasComponent[*components.CooldownComponent](em, id),
		"aim":       ecs.HasComponent[*components.TowerAimComponent](em, id),
		"selection": ecs.HasComponent[*components.TowerSelectionComponent](em, id),
	} {
		if !has {
			t.Errorf("%s component missing", name)
		}
	}
}
