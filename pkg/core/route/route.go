// Package route turns a pair of adjacent nodes into connector primitives.
//
// A connector runs from a bottom anchor tip of the start node to the matching
// top anchor tip of the end node, on either the left or the right side. A
// [Pump] or [Valve] connector also carries a glyph at the segment midpoint:
//
//	routed := route.Route(a, b, route.Right, route.Pump, "COP: 3.04")
//	sc.Add(routed.Shapes()...)
//
// Routing is pure; the same inputs always produce the same primitives.
package route

import (
	"strings"

	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/core/glyph"
	"github.com/matzehuels/heatflow/pkg/core/network"
	"github.com/matzehuels/heatflow/pkg/core/scene"
	"github.com/matzehuels/heatflow/pkg/errors"
)

// LineStyle is the stroke of every connector segment.
var LineStyle = scene.Stroke{Color: "black", Width: 2}

// Side selects which pair of anchor tips a connector uses.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// ParseSide maps "left" or "right" (case-insensitive) to a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, errors.New(errors.ErrCodeInvalidSide, "unknown side %q (want left or right)", s)
}

// Kind is the connector type.
type Kind int

const (
	Normal Kind = iota
	Pump
	Valve
)

var kindNames = [...]string{Normal: "normal", Pump: "pump", Valve: "valve"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps "normal", "pump" or "valve" (case-insensitive) to a Kind.
// An empty string is Normal.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return Normal, nil
	case "pump":
		return Pump, nil
	case "valve":
		return Valve, nil
	}
	return Normal, errors.New(errors.ErrCodeInvalidKind, "unknown connection type %q (want normal, pump or valve)", s)
}

// Routed holds the primitives of one connector.
type Routed struct {
	Line   scene.Shape
	Glyphs []scene.Shape
	Label  *scene.Annotation
	Mid    geom.Point // glyph placement point
}

// Shapes returns the line followed by the glyph shapes.
func (r Routed) Shapes() []scene.Shape {
	out := make([]scene.Shape, 0, 1+len(r.Glyphs))
	out = append(out, r.Line)
	return append(out, r.Glyphs...)
}

type config struct {
	scale float64
	seam  float64
}

// Option configures Route.
type Option func(*config)

// WithScale sets the glyph scale. Non-positive values keep [glyph.DefaultScale].
func WithScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithSeam extends both line endpoints vertically by eps, away from the
// other node, so the segment overlaps the stub arrows it joins. The glyph
// point is always computed from the un-extended endpoints.
func WithSeam(eps float64) Option {
	return func(c *config) { c.seam = eps }
}

// Route builds the connector from start to end on the given side.
// Endpoints are always start's bottom tip and end's top tip on that side.
// A pump glyph points up when start.Y > end.Y and down otherwise.
func Route(start, end *network.Node, side Side, kind Kind, label string, opts ...Option) Routed {
	cfg := config{scale: glyph.DefaultScale}
	for _, opt := range opts {
		opt(&cfg)
	}

	from, to := Endpoints(start, end, side)
	mid := from.Mid(to)

	a, b := from, to
	if cfg.seam != 0 {
		dir := 1.0
		if from.Y < to.Y {
			dir = -1
		}
		a = a.Add(0, dir*cfg.seam)
		b = b.Add(0, -dir*cfg.seam)
	}

	r := Routed{Line: scene.Line(a, b, LineStyle), Mid: mid}
	switch kind {
	case Pump:
		dir := glyph.Down
		if start.Y > end.Y {
			dir = glyph.Up
		}
		shape, ann := glyph.Pump(mid, cfg.scale, dir, label)
		r.Glyphs = []scene.Shape{shape}
		r.Label = &ann
	case Valve:
		v := glyph.Valve(mid, cfg.scale)
		r.Glyphs = v[:]
		if label != "" {
			ann := glyph.Label(mid, cfg.scale, label)
			r.Label = &ann
		}
	}
	return r
}

// Endpoints returns the anchor tips a connector on side joins.
func Endpoints(start, end *network.Node, side Side) (from, to geom.Point) {
	sa, ea := start.Anchors(), end.Anchors()
	if side == Right {
		return sa.BottomRight, ea.TopRight
	}
	return sa.BottomLeft, ea.TopLeft
}
