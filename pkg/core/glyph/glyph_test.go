package glyph

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/core/scene"
)

func TestPumpDirection(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		up   bool
	}{
		{"down apex below base", Down, false},
		{"up apex above base", Up, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, _ := Pump(geom.Point{X: 1, Y: 1}, 0.05, tt.dir, "")
			apex, b1, b2 := shape.Points[0], shape.Points[1], shape.Points[2]
			if b1.Y != b2.Y {
				t.Fatalf("base points should share y, got %v and %v", b1.Y, b2.Y)
			}
			if tt.up && !(apex.Y > b1.Y) {
				t.Errorf("apex y %v should be above base y %v", apex.Y, b1.Y)
			}
			if !tt.up && !(apex.Y < b1.Y) {
				t.Errorf("apex y %v should be below base y %v", apex.Y, b1.Y)
			}
		})
	}
}

func TestPumpGeometry(t *testing.T) {
	shape, _ := Pump(geom.Point{X: 2, Y: 1}, 0.1, Down, "x")
	want := "M 2,0.9 L 1.9,1.2 L 2.1,1.2 Z"
	if got := shape.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if shape.Kind != scene.KindPath || shape.Fill != Fill {
		t.Errorf("pump should be a filled path, got %+v", shape)
	}
}

func TestPumpLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
		wantX float64
	}{
		{"default placeholder", "", DefaultPumpLabel, 1 + 1.5*0.05 + 0.005*4},
		{"custom metric", "COP: 3.04", "COP: 3.04", 1 + 1.5*0.05 + 0.005*9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ann := Pump(geom.Point{X: 1, Y: 2}, 0.05, Up, tt.label)
			if ann.Text != tt.want {
				t.Errorf("Text = %q, want %q", ann.Text, tt.want)
			}
			if math.Abs(ann.At.X-tt.wantX) > 1e-12 {
				t.Errorf("label x = %v, want %v", ann.At.X, tt.wantX)
			}
			if ann.At.Y != 2 {
				t.Errorf("label y = %v, want vertically centered at 2", ann.At.Y)
			}
			if ann.Anchor != scene.AnchorLeft {
				t.Errorf("Anchor = %q, want left", ann.Anchor)
			}
		})
	}
}

func TestValveShape(t *testing.T) {
	v := Valve(geom.Point{X: 0, Y: 0}, 0.1)
	if got, want := v[0].Path(), "M 0,0 L -0.05,0.2 L 0.05,0.2 Z"; got != want {
		t.Errorf("upper Path() = %q, want %q", got, want)
	}
	if got, want := v[1].Path(), "M 0,0 L -0.05,-0.2 L 0.05,-0.2 Z"; got != want {
		t.Errorf("lower Path() = %q, want %q", got, want)
	}
}

func TestValveMirrorSymmetry(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lower triangle mirrors upper across y = mid", prop.ForAll(
		func(x, y, scale float64) bool {
			v := Valve(geom.Point{X: x, Y: y}, scale)
			upper, lower := v[0].Points, v[1].Points
			if len(upper) != len(lower) {
				return false
			}
			for i := range upper {
				if upper[i].X != lower[i].X {
					return false
				}
				if math.Abs((upper[i].Y-y)+(lower[i].Y-y)) > 1e-9 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(0.001, 1),
	))

	properties.TestingRun(t)
}

func TestPumpDirectionProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("apex is on the flow side of the base", prop.ForAll(
		func(x, y, scale float64, up bool) bool {
			dir := Down
			if up {
				dir = Up
			}
			shape, _ := Pump(geom.Point{X: x, Y: y}, scale, dir, "")
			apex, base := shape.Points[0], shape.Points[1]
			if up {
				return apex.Y > base.Y
			}
			return apex.Y < base.Y
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(0.001, 1),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
