package geom

import (
	"math"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestAnchorPositions(t *testing.T) {
	tests := []struct {
		name       string
		cx, cy, hs float64
		want       Anchors
	}{
		{
			name: "default size",
			cx:   2, cy: 2, hs: 0.2,
			want: Anchors{
				TopLeft:     Point{1.65, 2.1},
				TopRight:    Point{2.35, 2.1},
				BottomLeft:  Point{1.65, 1.9},
				BottomRight: Point{2.35, 1.9},
			},
		},
		{
			name: "origin",
			cx:   0, cy: 0, hs: 1,
			want: Anchors{
				TopLeft:     Point{-1.15, 0.5},
				TopRight:    Point{1.15, 0.5},
				BottomLeft:  Point{-1.15, -0.5},
				BottomRight: Point{1.15, -0.5},
			},
		},
		{
			name: "zero size",
			cx:   1, cy: 1, hs: 0,
			want: Anchors{
				TopLeft:     Point{0.85, 1},
				TopRight:    Point{1.15, 1},
				BottomLeft:  Point{0.85, 1},
				BottomRight: Point{1.15, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnchorPositions(tt.cx, tt.cy, tt.hs)
			gotAll, wantAll := got.All(), tt.want.All()
			for i := range gotAll {
				if !near(gotAll[i].X, wantAll[i].X) || !near(gotAll[i].Y, wantAll[i].Y) {
					t.Errorf("anchor %d = %+v, want %+v", i, gotAll[i], wantAll[i])
				}
			}
		})
	}
}

func TestPointMid(t *testing.T) {
	got := Point{1, 2}.Mid(Point{3, -2})
	if got != (Point{2, 0}) {
		t.Errorf("Mid() = %+v, want {2 0}", got)
	}
}

func TestRect(t *testing.T) {
	r := RectAround(Point{2, 1}, 0.5)

	if r.Width() != 1 {
		t.Errorf("Width() = %v, want 1", r.Width())
	}
	if r.Height() != 1 {
		t.Errorf("Height() = %v, want 1", r.Height())
	}
	if r.Center() != (Point{2, 1}) {
		t.Errorf("Center() = %+v, want {2 1}", r.Center())
	}
	if !r.Contains(Point{1.5, 0.5}) {
		t.Error("Contains() should include the corner")
	}
	if r.Contains(Point{2.6, 1}) {
		t.Error("Contains() should exclude points right of the box")
	}
}

func TestBoundsInclude(t *testing.T) {
	var b Bounds
	if !b.Empty() {
		t.Fatal("zero Bounds should be empty")
	}

	b.Include(Point{1, 1})
	b.Include(Point{-1, 3})
	b.IncludeRect(Rect{Min: Point{0, -2}, Max: Point{0.5, 0}})

	if b.MinX != -1 || b.MaxX != 1 || b.MinY != -2 || b.MaxY != 3 {
		t.Errorf("bounds = %+v, want [-1,1]x[-2,3]", b)
	}
	if b.Width() != 2 || b.Height() != 5 {
		t.Errorf("Width/Height = %v/%v, want 2/5", b.Width(), b.Height())
	}
}

func TestBoundsDegenerate(t *testing.T) {
	var b Bounds
	b.Include(Point{2, 0})
	b.Include(Point{2, 1})

	if b.Width() != MinExtent {
		t.Errorf("Width() = %v, want %v for zero span", b.Width(), MinExtent)
	}

	padded := b.Pad(0.1)
	if padded.MaxX <= padded.MinX {
		t.Errorf("padded bounds should have positive width, got %+v", padded)
	}
	if !padded.Contains(Point{2, 0.5}) {
		t.Error("padded bounds should still contain original points")
	}
}

func TestBoundsPad(t *testing.T) {
	var b Bounds
	b.Include(Point{0, 0})
	b.Include(Point{10, 5})

	p := b.Pad(0.1)
	if !near(p.MinX, -1) || !near(p.MaxX, 11) || !near(p.MinY, -0.5) || !near(p.MaxY, 5.5) {
		t.Errorf("Pad(0.1) = %+v", p)
	}
}
