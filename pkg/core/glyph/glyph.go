// Package glyph draws the inline pump and valve symbols placed on connectors.
//
// A valve is a bowtie: two triangles sharing an apex at the connector midpoint,
// mirrored across the horizontal line through it. A pump is a single triangle
// whose apex points in the direction of flow, paired with a text label to its
// right (typically a coefficient of performance such as "COP: 3.04").
//
// Glyphs are sized by a scale in plot units; [DefaultScale] suits boxes of the
// default half-size 0.2.
package glyph

import (
	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/core/scene"
)

const (
	// DefaultScale is the glyph scale used by connectors.
	DefaultScale = 0.05

	// DefaultPumpLabel is shown next to a pump when no label is supplied.
	DefaultPumpLabel = "COP:"

	// LabelFontSize is the font size of glyph labels.
	LabelFontSize = 12

	labelGap       = 1.5   // label offset from the glyph center, in scales
	labelCharNudge = 0.005 // extra offset per label character
	upApexNudge    = -0.0025
)

// Outline and Fill are the glyph colors.
var (
	Outline = scene.Stroke{Color: "black", Width: 1}
	Fill    = "white"
)

// Direction is the way a pump triangle points.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Valve returns the two triangles of a valve centered at mid. The first
// opens upward to mid.Y+2*scale, the second is its mirror image below.
func Valve(mid geom.Point, scale float64) [2]scene.Shape {
	half := scale / 2
	upper := mid.Y + scale*2
	lower := mid.Y - scale*2
	return [2]scene.Shape{
		scene.Polygon([]geom.Point{
			mid,
			{X: mid.X - half, Y: upper},
			{X: mid.X + half, Y: upper},
		}, Outline, Fill),
		scene.Polygon([]geom.Point{
			mid,
			{X: mid.X - half, Y: lower},
			{X: mid.X + half, Y: lower},
		}, Outline, Fill),
	}
}

// Pump returns the pump triangle at mid pointing in dir, and its label.
// The first polygon point is always the apex.
func Pump(mid geom.Point, scale float64, dir Direction, label string) (scene.Shape, scene.Annotation) {
	var pts []geom.Point
	switch dir {
	case Up:
		pts = []geom.Point{
			{X: mid.X + upApexNudge, Y: mid.Y + scale*2},
			{X: mid.X - scale, Y: mid.Y - scale},
			{X: mid.X + scale, Y: mid.Y - scale},
		}
	default:
		pts = []geom.Point{
			{X: mid.X, Y: mid.Y - scale},
			{X: mid.X - scale, Y: mid.Y + scale*2},
			{X: mid.X + scale, Y: mid.Y + scale*2},
		}
	}
	if label == "" {
		label = DefaultPumpLabel
	}
	return scene.Polygon(pts, Outline, Fill), Label(mid, scale, label)
}

// Label returns a left-anchored text annotation beside a glyph at mid.
// Longer labels are pushed further right so they clear the glyph.
func Label(mid geom.Point, scale float64, text string) scene.Annotation {
	return scene.Annotation{
		At:     geom.Point{X: mid.X + labelGap*scale + labelCharNudge*float64(len(text)), Y: mid.Y},
		Text:   text,
		Anchor: scene.AnchorLeft,
		Font:   scene.Font{Size: LabelFontSize, Color: "black"},
	}
}
