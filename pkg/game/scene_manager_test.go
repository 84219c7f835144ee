package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordingScene 记录 Update/Draw 调用
type recordingScene struct {
	updates   int
	draws     int
	deltaTime float64
}

func (r *recordingScene) Update(deltaTime float64) {
	r.updates++
	r.deltaTime = deltaTime
}

func (r *recordingScene) Draw(screen *ebiten.Image) {
	r.draws++
}

func TestSceneManagerEmpty(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Fatal("new manager should have no scene")
	}

	// 没有场景时 Update/Draw 不应 panic
	sm.Update(0.016)
	sm.Draw(ebiten.NewImage(4, 4))
}

// TestSceneManagerDispatch 只有当前场景收到 Update/Draw
func TestSceneManagerDispatch(t *testing.T) {
	sm := NewSceneManager()
	first, second := &recordingScene{}, &recordingScene{}
	screen := ebiten.NewImage(4, 4)

	sm.SwitchTo(first)
	sm.Update(0.016)
	sm.Draw(screen)

	sm.SwitchTo(second)
	sm.Update(0.033)
	sm.Draw(screen)

	if first.updates != 1 || first.draws != 1 {
		t.Errorf("first scene: updates=%d draws=%d, want 1/1", first.updates, first.draws)
	}
	if second.updates != 1 || second.draws != 1 || second.deltaTime != 0.033 {
		t.Errorf("second scene: %+v", second)
	}
	if sm.GetCurrentScene() != second {
		t.Error("current scene should be the second scene")
	}
}

// TestSceneManagerLoadScene 通过工厂按名称创建场景
func TestSceneManagerLoadScene(t *testing.T) {
	sm := NewSceneManager()
	if sm.LoadScene("showcase") {
		t.Error("LoadScene without a factory should fail")
	}

	created := &recordingScene{}
	sm.SetSceneFactory(func(name string) Scene {
		if name == "showcase" {
			return created
		}
		return nil
	})

	if !sm.LoadScene("showcase") {
		t.Fatal("LoadScene(showcase) should succeed")
	}
	if sm.LoadScene("missing") {
		t.Error("LoadScene should fail when the factory returns nil")
	}
	if sm.GetCurrentScene() != created {
		t.Error("a failed load must keep the current scene")
	}
}
