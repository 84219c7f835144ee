package scenegraph

import (
	"math"
	"testing"
)

func TestCircleContour(t *testing.T) {
	g := Circle(20)
	contours := g.Contours()
	if len(contours) != 1 || !contours[0].Closed {
		t.Fatalf("circle should produce one closed contour, got %+v", contours)
	}
	for _, p := range contours[0].Points {
		if d := math.Hypot(p.X, p.Y); !approx(d, 20) {
			t.Fatalf("point %+v not on radius 20 (distance %v)", p, d)
		}
	}

	r, ok := g.Bounds()
	if !ok || !approx(r.Width(), 40) {
		t.Errorf("circle bounds width = %v, want 40", r.Width())
	}
}

func TestZeroAndNegativeRadiusAreStructurallyValid(t *testing.T) {
	for _, radius := range []float64{0, -15} {
		g := Circle(radius)
		if len(g.Contours()) != 1 {
			t.Errorf("Circle(%v) should still produce a contour", radius)
		}
		if g.Radius != radius {
			t.Errorf("Circle(%v).Radius = %v", radius, g.Radius)
		}
	}
}

func TestArcEmptyAndSweep(t *testing.T) {
	if !Arc(10, 0, 0).IsEmpty() {
		t.Error("zero-sweep arc should be empty")
	}
	if !Arc(10, 1, math.NaN()).IsEmpty() {
		t.Error("NaN sweep arc should be empty")
	}

	g := Arc(10, -math.Pi/2, math.Pi/2)
	c := g.Contours()
	if len(c) != 1 || c[0].Closed {
		t.Fatalf("arc should be one open contour")
	}
	first, last := c[0].Points[0], c[0].Points[len(c[0].Points)-1]
	if !approx(first.X, 0) || !approx(first.Y, -10) {
		t.Errorf("arc start = %+v, want (0,-10)", first)
	}
	if !approx(last.X, 0) || !approx(last.Y, 10) {
		t.Errorf("arc end = %+v, want (0,10)", last)
	}
}

func TestStarPolygonAlternatesRadius(t *testing.T) {
	g := StarPolygon(6, 20, 12, 0)
	if len(g.Points) != 12 {
		t.Fatalf("6-point star should have 12 vertices, got %d", len(g.Points))
	}
	for i, p := range g.Points {
		want := 20.0
		if i%2 == 1 {
			want = 12
		}
		if d := math.Hypot(p.X, p.Y); !approx(d, want) {
			t.Errorf("vertex %d radius %v, want %v", i, d, want)
		}
	}
	if len(StarPolygon(1, 5, 2, 0).Points) != 0 {
		t.Error("degenerate star should be empty")
	}
}

func TestRegularPolygon(t *testing.T) {
	g := RegularPolygon(8, 10, 0)
	if len(g.Points) != 8 {
		t.Fatalf("octagon should have 8 vertices")
	}
	if !approx(g.Points[0].X, 10) || !approx(g.Points[0].Y, 0) {
		t.Errorf("first vertex = %+v", g.Points[0])
	}
	if len(RegularPolygon(2, 10, 0).Points) != 0 {
		t.Error("polygon with fewer than 3 sides should be empty")
	}
}

func TestRoundedRectBounds(t *testing.T) {
	g := RoundedRect(30, 20, 4)
	r, ok := g.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if !approx(r.MinX, -15) || !approx(r.MaxX, 15) || !approx(r.MinY, -10) || !approx(r.MaxY, 10) {
		t.Errorf("rounded rect bounds = %+v", r)
	}

	sharp := RoundedRect(10, 10, 0).Contours()[0]
	if len(sharp.Points) != 4 {
		t.Errorf("zero corner radius should collapse to 4 points, got %d", len(sharp.Points))
	}
}

func TestCompoundAndDiamond(t *testing.T) {
	g := Compound(Diamond(10, 20), Line(Point{0, 0}, Point{5, 5}))
	c := g.Contours()
	if len(c) != 2 {
		t.Fatalf("compound should produce 2 contours, got %d", len(c))
	}
	if !c[0].Closed || c[1].Closed {
		t.Error("diamond closed, line open")
	}
	r, _ := Diamond(10, 20).Bounds()
	if !approx(r.Width(), 10) || !approx(r.Height(), 20) {
		t.Errorf("diamond bounds = %+v", r)
	}
}

func TestPolygonTooFewPoints(t *testing.T) {
	if !Polygon(Point{1, 1}).IsEmpty() {
		t.Error("single-point polygon should be empty")
	}
	if !Polyline().IsEmpty() {
		t.Error("empty polyline should be empty")
	}
	if (Geometry{}).Contours() != nil {
		t.Error("GeometryNone has no contours")
	}
}
