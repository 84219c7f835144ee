package game

import (
	"math"
	"testing"
)

// resetGlobalGameState 重置全局 GameState 单例
// 用于测试隔离
func resetGlobalGameState() {
	globalGameState = nil
}

// TestGetGameStateSingleton 多次获取返回同一实例
func TestGetGameStateSingleton(t *testing.T) {
	openTestGdata(t, "unused") // 只为隔离 HOME
	resetGlobalGameState()
	t.Cleanup(resetGlobalGameState)

	gs1 := GetGameState()
	gs2 := GetGameState()
	if gs1 != gs2 {
		t.Error("GetGameState() should return the same instance")
	}
	if gs1.CameraZoom != 1 {
		t.Errorf("initial CameraZoom = %v, want 1", gs1.CameraZoom)
	}
	if gs1.Settings() == nil {
		t.Error("Settings() should never be nil")
	}
}

// TestGameStateWithoutGdata 降级模式：设置只在内存中
func TestGameStateWithoutGdata(t *testing.T) {
	gs := NewGameState(nil)

	if gs.GetGdataManager() != nil {
		t.Error("expected nil gdata manager")
	}
	if gs.GetSettingsManager() == nil {
		t.Fatal("settings manager should exist in degraded mode")
	}
	gs.GetSettingsManager().SetLODEnabled(false)
	if gs.Settings().LODEnabled {
		t.Error("Settings() should reflect the manager's current settings")
	}
}

func TestSettingsWithoutManager(t *testing.T) {
	gs := &GameState{}
	if s := gs.Settings(); s == nil || !s.LODEnabled {
		t.Error("missing manager should fall back to defaults")
	}
}

// TestSetCameraZoomClamp 缩放限制在允许范围内
func TestSetCameraZoomClamp(t *testing.T) {
	gs := NewGameState(nil)

	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"正常值", 1.5, 1.5},
		{"低于下限", 0.1, MinCameraZoom},
		{"高于上限", 10, MaxCameraZoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs.SetCameraZoom(tt.input)
			if gs.CameraZoom != tt.want {
				t.Errorf("CameraZoom = %v, want %v", gs.CameraZoom, tt.want)
			}
		})
	}

	gs.SetCameraZoom(1)
	gs.ZoomBy(2)
	if gs.CameraZoom != 2 {
		t.Errorf("ZoomBy(2) = %v, want 2", gs.CameraZoom)
	}
}

// TestWorldScreenRoundTrip 世界坐标与屏幕坐标互相转换
func TestWorldScreenRoundTrip(t *testing.T) {
	gs := NewGameState(nil)
	gs.CameraX, gs.CameraY = 100, 50
	gs.SetCameraZoom(2)

	sx, sy := gs.WorldToScreen(100, 50, 800, 600)
	if sx != 400 || sy != 300 {
		t.Errorf("camera center should map to screen center, got (%v, %v)", sx, sy)
	}

	sx, sy = gs.WorldToScreen(130, 40, 800, 600)
	if sx != 460 || sy != 280 {
		t.Errorf("WorldToScreen = (%v, %v), want (460, 280)", sx, sy)
	}

	wx, wy := gs.ScreenToWorld(sx, sy, 800, 600)
	if math.Abs(wx-130) > 1e-9 || math.Abs(wy-40) > 1e-9 {
		t.Errorf("ScreenToWorld = (%v, %v), want (130, 40)", wx, wy)
	}
}
