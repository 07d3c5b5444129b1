package sink

import (
	"encoding/json"

	"github.com/matzehuels/heatflow/pkg/core/scene"
)

type jsonOutput struct {
	Title       string             `json:"title,omitempty"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Margin      float64            `json:"margin"`
	Bounds      jsonBounds         `json:"bounds"`
	Shapes      []jsonShape        `json:"shapes"`
	Annotations []scene.Annotation `json:"annotations"`
}

type jsonBounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type jsonShape struct {
	scene.Shape
	Path string `json:"path,omitempty"`
}

// RenderJSON exports the scene as shape and annotation descriptors in plot
// units, together with the pixel canvas the other sinks would use. Path
// shapes carry their SVG path string.
func RenderJSON(sc scene.Scene, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	f, err := newFrame(sc, c)
	if err != nil {
		return nil, err
	}

	b := sc.Bounds()
	out := jsonOutput{
		Title:       c.title,
		Width:       f.W,
		Height:      f.H,
		Margin:      c.margin,
		Bounds:      jsonBounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY},
		Shapes:      make([]jsonShape, 0, len(sc.Shapes)),
		Annotations: sc.Annotations,
	}
	if out.Annotations == nil {
		out.Annotations = []scene.Annotation{}
	}
	for _, s := range sc.Shapes {
		out.Shapes = append(out.Shapes, jsonShape{Shape: s, Path: s.Path()})
	}
	return json.MarshalIndent(out, "", "  ")
}
