package scenegraph

import (
	"image/color"
	"math"
	"testing"

	"github.com/gonewx/towerviz/pkg/types"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewContainer("root")
	if n.Alpha != 1 || n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("unexpected defaults: alpha=%v scale=(%v,%v)", n.Alpha, n.ScaleX, n.ScaleY)
	}
	if n.Hidden {
		t.Error("new node should be visible")
	}
	if n.Kind != KindContainer {
		t.Errorf("expected container, got %v", n.Kind)
	}
}

func TestAddChildAndLookup(t *testing.T) {
	root := NewContainer("root")
	a := root.AddChild(NewContainer("a"))
	root.AddChild(NewShape("b", Circle(4), Filled(color.NRGBA{255, 0, 0, 255})))

	if root.ChildCount() != 2 {
		t.Fatalf("expected 2 children, got %d", root.ChildCount())
	}
	if root.ChildNamed("a") != a {
		t.Error("ChildNamed(a) should return the added node")
	}
	if root.ChildNamed("missing") != nil {
		t.Error("ChildNamed(missing) should be nil")
	}
	if root.AddChild(nil) != nil {
		t.Error("AddChild(nil) should return nil")
	}
	if !root.RemoveChild("a") || root.ChildCount() != 1 {
		t.Error("RemoveChild(a) should remove the node")
	}
	if root.RemoveChild("a") {
		t.Error("second RemoveChild(a) should report false")
	}
	root.RemoveAllChildren()
	if root.ChildCount() != 0 {
		t.Error("RemoveAllChildren should clear children")
	}
}

func TestSlotLooksUpMuzzleFlashUnderBarrel(t *testing.T) {
	root := NewContainer("tower")
	barrel := root.AddChild(NewContainer(types.SlotBarrel.Name()))
	flash := barrel.AddChild(NewShape(types.SlotMuzzleFlash.Name(), Circle(3), Filled(color.NRGBA{255, 255, 255, 255})))
	body := root.AddChild(NewContainer(types.SlotBody.Name()))

	if root.Slot(types.SlotMuzzleFlash) != flash {
		t.Error("Slot(muzzleFlash) should resolve through barrel")
	}
	if root.Slot(types.SlotBody) != body {
		t.Error("Slot(body) should be a direct child")
	}
	if root.Slot(types.SlotRange) != nil {
		t.Error("missing slot should be nil")
	}

	empty := NewContainer("tower")
	if empty.Slot(types.SlotMuzzleFlash) != nil {
		t.Error("muzzleFlash without barrel should be nil")
	}
}

func TestFindPartAndPart(t *testing.T) {
	root := NewContainer("tower")
	body := root.AddChild(NewContainer("body"))
	hub := body.AddChild(NewShape(string(types.PartHub), Circle(5), Filled(color.NRGBA{A: 255})))

	if root.Part(types.PartHub) != nil {
		t.Error("Part should only search direct children")
	}
	if body.Part(types.PartHub) != hub {
		t.Error("body.Part(hub) should find the hub")
	}
	if root.FindPart(types.PartHub) != hub {
		t.Error("FindPart should search the whole subtree")
	}
	if root.FindPart(types.PartConductor) != nil {
		t.Error("FindPart(conductor) should be nil")
	}

	// 缺失的槽位链式查找返回 nil 而不是 panic
	if root.Slot(types.SlotDetails).Part(types.PartIceShard) != nil {
		t.Error("lookup through a missing slot should be nil")
	}
}

func TestDrawOrderStableByZ(t *testing.T) {
	root := NewContainer("root")
	root.AddChild(NewContainer("first").WithZ(1))
	root.AddChild(NewContainer("back").WithZ(-5))
	root.AddChild(NewContainer("second").WithZ(1))
	root.AddChild(NewContainer("front").WithZ(9))

	order := root.DrawOrder()
	want := []string{"back", "first", "second", "front"}
	for i, n := range order {
		if n.Name != want[i] {
			t.Errorf("DrawOrder()[%d] = %q, want %q", i, n.Name, want[i])
		}
	}
	// 原始插入顺序不受影响
	if root.Children()[0].Name != "first" {
		t.Error("DrawOrder must not reorder the children slice")
	}
}

func TestValidateDetectsDuplicates(t *testing.T) {
	root := NewContainer("root")
	child := root.AddChild(NewContainer("a"))
	child.AddChild(NewContainer("x"))
	child.AddChild(NewContainer("y"))
	if err := root.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child.AddChild(NewContainer("x"))
	if err := root.Validate(); err == nil {
		t.Error("expected duplicate name error")
	}
}

func TestWalkAndCount(t *testing.T) {
	root := NewContainer("root")
	a := root.AddChild(NewContainer("a"))
	a.AddChild(NewContainer("a1"))
	root.AddChild(NewContainer("b"))

	if got := root.CountNodes(); got != 4 {
		t.Errorf("CountNodes() = %d, want 4", got)
	}

	maxDepth := 0
	root.Walk(func(n *Node, depth int) bool {
		if depth > maxDepth {
			maxDepth = depth
		}
		return n.Name != "a" // 不进入 a 的子树
	})
	if maxDepth != 1 {
		t.Errorf("walk should have pruned a's subtree, max depth %d", maxDepth)
	}
}

func TestLocalTransform(t *testing.T) {
	n := NewContainer("n").At(10, 20).WithRotation(math.Pi / 2)
	n.SetScale(2)

	p := n.ToParent(Point{X: 1, Y: 0})
	// 缩放 2 → (2,0)，旋转 90° → (0,2)，平移 → (10,22)
	if !approx(p.X, 10) || !approx(p.Y, 22) {
		t.Errorf("ToParent = (%v,%v), want (10,22)", p.X, p.Y)
	}

	id := Identity()
	q := id.Apply(Point{X: 3, Y: 4})
	if q.X != 3 || q.Y != 4 {
		t.Error("identity should not move points")
	}
}

func TestAffineThenOrder(t *testing.T) {
	translate := Affine{A: 1, D: 1, Tx: 5}
	rotate := NewContainer("r").WithRotation(math.Pi / 2).LocalTransform()

	// 先平移再旋转：(0,0) → (5,0) → (0,5)
	p := translate.Then(rotate).Apply(Point{})
	if !approx(p.X, 0) || !approx(p.Y, 5) {
		t.Errorf("translate.Then(rotate) = (%v,%v), want (0,5)", p.X, p.Y)
	}
}

func TestBoundsIncludesChildrenTransforms(t *testing.T) {
	root := NewContainer("root")
	root.AddChild(NewShape("c", Rectangle(4, 2), Filled(color.NRGBA{A: 255})).At(10, 0))

	r, ok := root.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if !approx(r.MinX, 8) || !approx(r.MaxX, 12) || !approx(r.MinY, -1) || !approx(r.MaxY, 1) {
		t.Errorf("unexpected bounds %+v", r)
	}

	empty := NewContainer("empty")
	if _, ok := empty.Bounds(); ok {
		t.Error("empty container should have no bounds")
	}
}

func TestDescribe(t *testing.T) {
	root := NewContainer("tower")
	root.AddChild(NewShape("range", Circle(120), FilledStroked(color.NRGBA{0, 255, 0, 20}, color.NRGBA{0, 255, 0, 90}, 1))).Hidden = true
	root.AddChild(NewLabel("label", "60 DPS", 10, color.NRGBA{255, 255, 255, 255}))

	d := Describe(root)
	if d.Kind != "container" || len(d.Children) != 2 {
		t.Fatalf("unexpected description %+v", d)
	}
	if d.Children[0].Shape == nil || d.Children[0].Shape.Radius != 120 || !d.Children[0].Hidden {
		t.Errorf("range description wrong: %+v", d.Children[0])
	}
	if d.Children[0].Shape.Fill != "#00ff0014" {
		t.Errorf("fill = %q", d.Children[0].Shape.Fill)
	}
	if d.Children[1].Text != "60 DPS" {
		t.Errorf("label text = %q", d.Children[1].Text)
	}
}
