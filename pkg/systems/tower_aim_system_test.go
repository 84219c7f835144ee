package systems

import (
	"math"
	"testing"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/types"
)

func TestAimAngle(t *testing.T) {
	tests := []struct {
		name   string
		tx, ty float64
		want   float64
	}{
		{"正上方", 0, -10, 0},
		{"正右方", 10, 0, math.Pi / 2},
		{"正下方", 0, 10, math.Pi},
		{"正左方", -10, 0, -math.Pi / 2},
		{"右上 45°", 10, -10, math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AimAngle(0, 0, tt.tx, tt.ty)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AimAngle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTurnToward(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		step    float64
		want    float64
	}{
		{"一步到位", 0, 0.5, 1, 0.5},
		{"受步长限制", 0, 2, 0.5, 0.5},
		{"反向转动", 0, -2, 0.5, -0.5},
		{"走最短方向", 3, -3, 0.1, 3.1},
		{"步长为零立即对准", 0, 2, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TurnToward(tt.current, tt.target, tt.step)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TurnToward = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestBarrelTracksTarget 炮管旋转后炮口指向目标
func TestBarrelTracksTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewTowerAimSystem(em, nil)
	id := newTestTower(t, em, "projectile", "common")

	aim, _ := ecs.GetComponent[*components.TowerAimComponent](em, id)
	aim.TurnSpeed = 0

	SetAimTarget(em, id, 100, 0)
	system.Update(0.016)

	root := visualOf(t, em, id).Root
	barrel := root.Slot(types.SlotBarrel)
	if math.Abs(barrel.Rotation-math.Pi/2) > 1e-9 {
		t.Fatalf("barrel rotation = %v, want π/2", barrel.Rotation)
	}

	// 炮口 (0, -L) 旋转后应位于目标方向
	tip := barrel.ToParent(root.Slot(types.SlotMuzzleFlash).Position)
	if tip.X <= 0 || math.Abs(tip.Y) > 1e-6 {
		t.Errorf("muzzle tip = (%v, %v), want on +X axis", tip.X, tip.Y)
	}
}

func TestMuzzleFlash(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTowerVisualConfig()
	system := NewTowerAimSystem(em, cfg)
	id := newTestTower(t, em, "artillery", "common")
	flash := visualOf(t, em, id).Root.Slot(types.SlotMuzzleFlash)

	system.Update(0.016)
	if !flash.Hidden {
		t.Error("muzzle flash should start hidden")
	}

	TriggerFire(em, id)
	system.Update(0.016)
	if flash.Hidden || flash.Alpha != 1 {
		t.Errorf("muzzle flash should show at full alpha after firing, hidden=%v alpha=%v", flash.Hidden, flash.Alpha)
	}

	system.Update(cfg.Aim.MuzzleFlashDuration / 2)
	if math.Abs(flash.Alpha-0.75) > 1e-9 {
		t.Errorf("half-way flash alpha = %v, want 0.75", flash.Alpha)
	}

	system.Update(cfg.Aim.MuzzleFlashDuration)
	if !flash.Hidden {
		t.Error("muzzle flash should hide after its duration")
	}
}
