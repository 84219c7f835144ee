package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/entities"
	"github.com/gonewx/towerviz/pkg/game"
	"github.com/gonewx/towerviz/pkg/systems"
	"github.com/gonewx/towerviz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ShowcaseSceneName is the name registered with the scene factory.
const ShowcaseSceneName = "showcase"

const (
	showcaseZoomStep = 0.1
	helpFontSize     = 14
	helpLineHeight   = 18
)

var showcaseBackground = color.RGBA{R: 18, G: 22, B: 30, A: 255}

// showcaseTower tracks one tower on the showcase grid.
type showcaseTower struct {
	id       ecs.EntityID
	cooldown float64 // auto-fire interval, 0 disables auto fire
}

// showcaseInput is one frame of player input, already in logical screen coordinates.
type showcaseInput struct {
	cursorX, cursorY float64
	click            bool
	wheel            float64
	fire             bool // Space
	merge            bool // M
	mergeDrag        bool // Shift held
	toggleLOD        bool // L
	toggleGlow       bool // G
	toggleRange      bool // R
	toggleHelp       bool // H
}

// ShowcaseScene lays out one tower per configured entry on a grid and
// drives every tower visual system.
//
// Controls: click selects, wheel zooms, Space fires the selected tower,
// M merges a tower of the same rarity into it, holding Shift highlights merge candidates,
// L/G/R toggle LOD/glow/range settings and H toggles the help panel.
type ShowcaseScene struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	resources     *game.ResourceManager
	visualConfig  *config.TowerVisualConfig

	idleSystem      *systems.IdleAnimationSystem
	cooldownSystem  *systems.CooldownArcSystem
	lodSystem       *systems.TowerLODSystem
	aimSystem       *systems.TowerAimSystem
	selectionSystem *systems.TowerSelectionSystem
	renderSystem    *systems.TowerRenderSystem

	towers   []showcaseTower
	showHelp bool

	screenWidth  int
	screenHeight int
}

// NewShowcaseScene creates the showcase scene and builds every configured tower.
// rm may be nil, in which case labels and the help panel are not drawn.
func NewShowcaseScene(rm *game.ResourceManager, gs *game.GameState, visualCfg *config.TowerVisualConfig, showcase *config.ShowcaseConfig) (*ShowcaseScene, error) {
	if gs == nil {
		return nil, fmt.Errorf("game state cannot be nil")
	}
	if showcase == nil {
		return nil, fmt.Errorf("showcase config cannot be nil")
	}
	if visualCfg == nil {
		visualCfg = config.DefaultTowerVisualConfig()
	}

	em := ecs.NewEntityManager()
	scene := &ShowcaseScene{
		entityManager:   em,
		gameState:       gs,
		resources:       rm,
		visualConfig:    visualCfg,
		idleSystem:      systems.NewIdleAnimationSystem(em, visualCfg),
		cooldownSystem:  systems.NewCooldownArcSystem(em),
		lodSystem:       systems.NewTowerLODSystem(em, visualCfg, gs),
		aimSystem:       systems.NewTowerAimSystem(em, visualCfg),
		selectionSystem: systems.NewTowerSelectionSystem(em, visualCfg, gs),
		renderSystem:    systems.NewTowerRenderSystem(em, gs, rm),
		showHelp:        !utils.IsMobile(),
		screenWidth:     config.ShowcaseWindowWidth,
		screenHeight:    config.ShowcaseWindowHeight,
	}

	for i, t := range showcase.Towers {
		c, err := utils.ParseHexColor(t.Color)
		if err != nil {
			return nil, fmt.Errorf("tower[%d] (%s): %w", i, t.WeaponType, err)
		}
		x, y := config.GridPosition(i, showcase.Columns, len(showcase.Towers), showcase.CellSize)

		id, err := entities.NewTowerVisualEntity(em, visualCfg, entities.TowerVisualParams{
			WeaponType:      t.WeaponType,
			Color:           c,
			Range:           t.Range,
			MergeLevel:      t.MergeLevel,
			Level:           t.Level,
			Damage:          t.Damage,
			AttackSpeed:     t.AttackSpeed,
			ProjectileCount: t.ProjectileCount,
			Rarity:          t.Rarity,
		}, x, y)
		if err != nil {
			return nil, fmt.Errorf("failed to create tower[%d]: %w", i, err)
		}

		// 首帧刷新 LOD 标签
		if stats, ok := ecs.GetComponent[*components.TowerStatsComponent](em, id); ok {
			stats.Dirty = true
		}
		scene.towers = append(scene.towers, showcaseTower{id: id, cooldown: t.Cooldown})
	}

	log.Printf("[ShowcaseScene] Created %d towers (%d columns)", len(scene.towers), showcase.Columns)
	return scene, nil
}

// Update reads input and advances all systems.
func (s *ShowcaseScene) Update(deltaTime float64) {
	s.handleInput(readShowcaseInput())
	s.step(deltaTime)
}

// readShowcaseInput samples Ebitengine input state for this frame.
// Touch taps select towers the same way mouse clicks do.
func readShowcaseInput() showcaseInput {
	pointer := utils.ReadPointer()
	_, wheelY := ebiten.Wheel()
	return showcaseInput{
		cursorX:     float64(pointer.X),
		cursorY:     float64(pointer.Y),
		click:       pointer.JustPressed,
		wheel:       wheelY,
		fire:        inpututil.IsKeyJustPressed(ebiten.KeySpace),
		merge:       inpututil.IsKeyJustPressed(ebiten.KeyM),
		mergeDrag:   ebiten.IsKeyPressed(ebiten.KeyShift),
		toggleLOD:   inpututil.IsKeyJustPressed(ebiten.KeyL),
		toggleGlow:  inpututil.IsKeyJustPressed(ebiten.KeyG),
		toggleRange: inpututil.IsKeyJustPressed(ebiten.KeyR),
		toggleHelp:  inpututil.IsKeyJustPressed(ebiten.KeyH),
	}
}

// handleInput applies one frame of input to the scene.
func (s *ShowcaseScene) handleInput(in showcaseInput) {
	wx, wy := s.gameState.ScreenToWorld(in.cursorX, in.cursorY, s.screenWidth, s.screenHeight)

	// 所有塔的炮管跟随鼠标
	for _, t := range s.towers {
		systems.SetAimTarget(s.entityManager, t.id, wx, wy)
	}

	if in.click {
		s.selectionSystem.Select(s.pickTower(wx, wy))
	}
	if in.wheel != 0 {
		s.gameState.ZoomBy(1 + showcaseZoomStep*in.wheel)
	}

	selected := s.gameState.SelectedTower
	if in.fire && selected != 0 {
		s.fire(selected)
	}
	if in.merge && selected != 0 {
		s.mergeUp(selected)
	}
	s.updateMergeCandidates(in.mergeDrag)

	if in.toggleHelp {
		s.showHelp = !s.showHelp
	}

	settings := s.gameState.GetSettingsManager()
	if settings == nil {
		return
	}
	current := settings.GetSettings()
	if in.toggleLOD {
		settings.SetLODEnabled(!current.LODEnabled)
	}
	if in.toggleGlow {
		settings.SetGlowEnabled(!current.GlowEnabled)
	}
	if in.toggleRange {
		settings.SetShowRangeOnSelect(!current.ShowRangeOnSelect)
	}
}

// step advances auto fire and every system by deltaTime.
func (s *ShowcaseScene) step(deltaTime float64) {
	for _, t := range s.towers {
		if t.cooldown <= 0 {
			continue
		}
		cd, ok := ecs.GetComponent[*components.CooldownComponent](s.entityManager, t.id)
		if ok && cd.Remaining <= 0 {
			systems.StartCooldown(s.entityManager, t.id, t.cooldown)
			systems.TriggerFire(s.entityManager, t.id)
		}
	}

	s.idleSystem.Update(deltaTime)
	s.selectionSystem.Update(deltaTime)
	s.aimSystem.Update(deltaTime)
	s.cooldownSystem.Update(deltaTime)
	s.lodSystem.Update(deltaTime)

	// 合成消耗的塔在本帧末尾清理
	s.entityManager.RemoveMarkedEntities()
}

// pickTower returns the tower whose center is nearest to (wx, wy) within
// TowerPickRadius, or 0 when none is close enough.
func (s *ShowcaseScene) pickTower(wx, wy float64) ecs.EntityID {
	var best ecs.EntityID
	bestDist := config.TowerPickRadius
	for _, t := range s.towers {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, t.id)
		if !ok {
			continue
		}
		if d := math.Hypot(pos.X-wx, pos.Y-wy); d <= bestDist {
			best, bestDist = t.id, d
		}
	}
	return best
}

// fire shows the muzzle flash and restarts the cooldown arc.
func (s *ShowcaseScene) fire(id ecs.EntityID) {
	duration := 1.0
	for _, t := range s.towers {
		if t.id == id && t.cooldown > 0 {
			duration = t.cooldown
		}
	}
	systems.TriggerFire(s.entityManager, id)
	systems.StartCooldown(s.entityManager, id, duration)
}

// mergeUp consumes the first other tower of the same rarity and raises the
// merge level and level of id. It reports false when no partner exists.
func (s *ShowcaseScene) mergeUp(id ecs.EntityID) bool {
	stats, ok := ecs.GetComponent[*components.TowerStatsComponent](s.entityManager, id)
	if !ok {
		return false
	}
	partner := s.mergePartner(id)
	if partner < 0 {
		log.Printf("[ShowcaseScene] Tower %d has no merge partner", id)
		return false
	}

	consumed := s.towers[partner].id
	s.entityManager.DestroyEntity(consumed)
	s.towers = append(s.towers[:partner], s.towers[partner+1:]...)

	stats.MergeLevel++
	stats.Level++
	stats.Dirty = true
	log.Printf("[ShowcaseScene] Merged tower %d into %d, merge level %d", consumed, id, stats.MergeLevel)
	return true
}

// mergePartner returns the index in s.towers of the first tower sharing id's
// rarity, or -1.
func (s *ShowcaseScene) mergePartner(id ecs.EntityID) int {
	visual, ok := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, id)
	if !ok {
		return -1
	}
	for i, t := range s.towers {
		if t.id == id {
			continue
		}
		if v, ok := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, t.id); ok && v.Rarity == visual.Rarity {
			return i
		}
	}
	return -1
}

// updateMergeCandidates highlights towers of the selected tower's rarity while active.
func (s *ShowcaseScene) updateMergeCandidates(active bool) {
	selected := s.gameState.SelectedTower
	selVisual, hasSel := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, selected)

	for _, t := range s.towers {
		candidate := false
		if active && hasSel && t.id != selected {
			if v, ok := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, t.id); ok {
				candidate = v.Rarity == selVisual.Rarity
			}
		}
		s.selectionSystem.SetMergeCandidate(t.id, candidate)
	}
}

// Draw renders the towers and the help panel.
func (s *ShowcaseScene) Draw(screen *ebiten.Image) {
	screen.Fill(showcaseBackground)
	s.renderSystem.Draw(screen)

	if !s.showHelp || s.resources == nil {
		return
	}
	face := s.resources.DefaultFace(helpFontSize)
	for i, line := range s.helpLines() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(12, 12+float64(i*helpLineHeight))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 220, G: 226, B: 235, A: 255})
		text.Draw(screen, line, face, op)
	}
}

// helpLines returns the help panel text reflecting current settings.
func (s *ShowcaseScene) helpLines() []string {
	settings := s.gameState.Settings()
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return []string{
		fmt.Sprintf("Towers: %d   Zoom: %.2f", s.entityManager.EntityCount(), s.gameState.CameraZoom),
		"Click: select   Wheel: zoom   Space: fire   M: merge   Shift: merge candidates",
		fmt.Sprintf("L: LOD detail (%s)   G: glow (%s)   R: range on select (%s)   H: help",
			onOff(settings.LODEnabled), onOff(settings.GlowEnabled), onOff(settings.ShowRangeOnSelect)),
	}
}

// SaveOnExit persists visual settings.
func (s *ShowcaseScene) SaveOnExit() bool {
	sm := s.gameState.GetSettingsManager()
	if sm == nil {
		return true
	}
	if err := sm.Save(); err != nil {
		log.Printf("[ShowcaseScene] Warning: failed to save settings: %v", err)
		return false
	}
	log.Printf("[ShowcaseScene] Settings saved")
	return true
}
