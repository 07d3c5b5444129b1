package scene

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/errors"
)

// MaxExportHeight bounds the canvas height ExportSize will return.
const MaxExportHeight = 40000

// ShapeKind identifies the geometry a Shape carries.
type ShapeKind string

const (
	KindRect ShapeKind = "rect"
	KindLine ShapeKind = "line"
	KindPath ShapeKind = "path"
)

// Stroke describes an outline.
type Stroke struct {
	Color string  `json:"color"`
	Width float64 `json:"width,omitempty"`
}

// Shape is a rectangle, a line segment or a closed polygon.
//
// Rectangles and lines use From/To (lower-left and upper-right corner for
// rectangles, endpoints for lines). Paths use Points and are always closed.
type Shape struct {
	Kind   ShapeKind    `json:"type"`
	From   geom.Point   `json:"from"`
	To     geom.Point   `json:"to"`
	Points []geom.Point `json:"points,omitempty"`
	Stroke Stroke       `json:"line"`
	Fill   string       `json:"fillcolor,omitempty"`
}

// Rect returns a rectangle shape covering r.
func Rect(r geom.Rect, stroke Stroke, fill string) Shape {
	return Shape{Kind: KindRect, From: r.Min, To: r.Max, Stroke: stroke, Fill: fill}
}

// Line returns a line segment from a to b.
func Line(a, b geom.Point, stroke Stroke) Shape {
	return Shape{Kind: KindLine, From: a, To: b, Stroke: stroke}
}

// Polygon returns a closed, filled path through pts.
func Polygon(pts []geom.Point, stroke Stroke, fill string) Shape {
	return Shape{Kind: KindPath, Points: pts, Stroke: stroke, Fill: fill}
}

// Path returns the SVG path string for a path shape.
// It returns an empty string for other kinds.
func (s Shape) Path() string {
	if s.Kind != KindPath || len(s.Points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range s.Points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(fmtCoord(p.X))
		b.WriteByte(',')
		b.WriteString(fmtCoord(p.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

// Extent returns every point that bounds the shape.
func (s Shape) Extent() []geom.Point {
	if s.Kind == KindPath {
		return s.Points
	}
	return []geom.Point{s.From, s.To}
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TextAnchor is the horizontal alignment of annotation text.
type TextAnchor string

const (
	AnchorCenter TextAnchor = "center"
	AnchorLeft   TextAnchor = "left"
)

// Font describes annotation text styling.
type Font struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// Arrow is a pointer drawn from Tail to the annotation position.
type Arrow struct {
	Tail  geom.Point `json:"tail"`
	Head  int        `json:"arrowhead"`
	Width float64    `json:"arrowwidth"`
	Color string     `json:"arrowcolor"`
}

// Annotation is positioned text, an arrow, or both.
type Annotation struct {
	At     geom.Point `json:"at"`
	Text   string     `json:"text,omitempty"`
	Anchor TextAnchor `json:"xanchor,omitempty"`
	Font   Font       `json:"font"`
	Arrow  *Arrow     `json:"arrow,omitempty"`
}

// Extent returns the annotation position and, for arrows, the tail.
func (a Annotation) Extent() []geom.Point {
	if a.Arrow != nil {
		return []geom.Point{a.At, a.Arrow.Tail}
	}
	return []geom.Point{a.At}
}

// Scene is the combined output of a diagram.
type Scene struct {
	Shapes      []Shape      `json:"shapes"`
	Annotations []Annotation `json:"annotations"`
}

// Add appends shapes to the scene.
func (s *Scene) Add(shapes ...Shape) { s.Shapes = append(s.Shapes, shapes...) }

// Annotate appends annotations to the scene.
func (s *Scene) Annotate(anns ...Annotation) { s.Annotations = append(s.Annotations, anns...) }

// Count returns the number of shapes of kind k.
func (s Scene) Count(k ShapeKind) int {
	n := 0
	for _, sh := range s.Shapes {
		if sh.Kind == k {
			n++
		}
	}
	return n
}

// Bounds returns the box covering every shape and annotation point.
func (s Scene) Bounds() geom.Bounds {
	var b geom.Bounds
	for _, sh := range s.Shapes {
		for _, p := range sh.Extent() {
			b.Include(p)
		}
	}
	for _, a := range s.Annotations {
		for _, p := range a.Extent() {
			b.Include(p)
		}
	}
	return b
}

// ExportSize returns the pixel canvas for bounds padded by margin on each axis.
// Width is fixed at widthPx; height follows the padded aspect ratio and is at
// least one pixel. Heights above MaxExportHeight are rejected.
func ExportSize(b geom.Bounds, widthPx int, margin float64) (int, int, error) {
	if widthPx <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "export width must be positive, got %d", widthPx)
	}
	if margin < 0 || math.IsNaN(margin) {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "export margin must not be negative, got %v", margin)
	}
	p := b.Pad(margin)
	h := math.Round(float64(widthPx) * p.Height() / p.Width())
	if math.IsNaN(h) || h > MaxExportHeight {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"diagram too tall: %d px wide would need %.0f px height (max %d)", widthPx, h, MaxExportHeight)
	}
	return widthPx, max(1, int(h)), nil
}
