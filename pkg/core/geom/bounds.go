package geom

import "math"

// MinExtent is the smallest span Bounds reports on either axis.
const MinExtent = 1.0

// Bounds is an axis-aligned bounding box that grows as points are included.
// The zero value is empty and ready to use.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
	set        bool
}

// Empty reports whether nothing has been included yet.
func (b Bounds) Empty() bool { return !b.set }

// Include extends b to contain p.
func (b *Bounds) Include(p Point) {
	if !b.set {
		b.MinX, b.MaxX = p.X, p.X
		b.MinY, b.MaxY = p.Y, p.Y
		b.set = true
		return
	}
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// IncludeRect extends b to contain every corner of r.
func (b *Bounds) IncludeRect(r Rect) {
	b.Include(r.Min)
	b.Include(r.Max)
}

// Width returns the horizontal span, or MinExtent when the span is zero.
func (b Bounds) Width() float64 { return extent(b.MaxX - b.MinX) }

// Height returns the vertical span, or MinExtent when the span is zero.
func (b Bounds) Height() float64 { return extent(b.MaxY - b.MinY) }

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Point) bool {
	return b.set && p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Pad returns b grown by fraction of its (guarded) span on each side.
// A fraction of 0.1 adds 10% of the width left and right and 10% of the
// height above and below.
func (b Bounds) Pad(fraction float64) Bounds {
	dx := b.Width() * fraction
	dy := b.Height() * fraction
	if b.MaxX == b.MinX {
		dx += MinExtent / 2
	}
	if b.MaxY == b.MinY {
		dy += MinExtent / 2
	}
	return Bounds{
		MinX: b.MinX - dx, MaxX: b.MaxX + dx,
		MinY: b.MinY - dy, MaxY: b.MaxY + dy,
		set: b.set,
	}
}

func extent(d float64) float64 {
	if d <= 0 || math.IsNaN(d) {
		return MinExtent
	}
	return d
}
