package geom

// StandOff is the horizontal distance from a box edge to its anchor tips.
const StandOff = 0.15

// Point is a position in plot units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned rectangle. Min holds the lower-left corner.
type Rect struct {
	Min, Max Point
}

// RectAround returns the square of half-size half centered at c.
func RectAround(c Point, half float64) Rect {
	return Rect{
		Min: Point{X: c.X - half, Y: c.Y - half},
		Max: Point{X: c.X + half, Y: c.Y + half},
	}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return r.Min.Mid(r.Max) }

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Anchors holds the four connector attachment tips of a box.
type Anchors struct {
	TopLeft, TopRight       Point
	BottomLeft, BottomRight Point
}

// AnchorPositions computes the anchor tips of a box centered at (cx, cy) with
// half-size half. Tips lie StandOff outside the box horizontally and half/2
// above or below the center.
func AnchorPositions(cx, cy, half float64) Anchors {
	left := cx - half - StandOff
	right := cx + half + StandOff
	top := cy + half/2
	bottom := cy - half/2
	return Anchors{
		TopLeft:     Point{X: left, Y: top},
		TopRight:    Point{X: right, Y: top},
		BottomLeft:  Point{X: left, Y: bottom},
		BottomRight: Point{X: right, Y: bottom},
	}
}

// All returns the tips in top-left, top-right, bottom-left, bottom-right order.
func (a Anchors) All() [4]Point {
	return [4]Point{a.TopLeft, a.TopRight, a.BottomLeft, a.BottomRight}
}
