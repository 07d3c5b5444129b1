package geom

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAnchorInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-1e3, 1e3)
	size := gen.Float64Range(0, 10)

	properties.Property("left and right tips share x", prop.ForAll(
		func(cx, cy, s float64) bool {
			a := AnchorPositions(cx, cy, s)
			return a.TopLeft.X == a.BottomLeft.X && a.TopRight.X == a.BottomRight.X
		},
		coord, coord, size,
	))

	properties.Property("vertical tip spacing equals half-size", prop.ForAll(
		func(cx, cy, s float64) bool {
			a := AnchorPositions(cx, cy, s)
			return near(a.TopLeft.Y-a.BottomLeft.Y, s) && near(a.TopRight.Y-a.BottomRight.Y, s)
		},
		coord, coord, size,
	))

	properties.Property("tips sit StandOff outside the box", prop.ForAll(
		func(cx, cy, s float64) bool {
			a := AnchorPositions(cx, cy, s)
			box := RectAround(Point{cx, cy}, s)
			return near(box.Min.X-a.TopLeft.X, StandOff) && near(a.TopRight.X-box.Max.X, StandOff)
		},
		coord, coord, size,
	))

	properties.TestingRun(t)
}

func TestBoundsContainsIncluded(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every included point is contained", prop.ForAll(
		func(xs, ys []float64) bool {
			var b Bounds
			n := min(len(xs), len(ys))
			for i := 0; i < n; i++ {
				b.Include(Point{xs[i], ys[i]})
			}
			for i := 0; i < n; i++ {
				if !b.Contains(Point{xs[i], ys[i]}) {
					return false
				}
			}
			return b.Width() > 0 && b.Height() > 0
		},
		gen.SliceOf(gen.Float64Range(-100, 100)),
		gen.SliceOf(gen.Float64Range(-100, 100)),
	))

	properties.TestingRun(t)
}
