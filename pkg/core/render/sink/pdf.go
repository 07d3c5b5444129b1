package sink

import (
	"github.com/matzehuels/heatflow/pkg/core/render"
	"github.com/matzehuels/heatflow/pkg/core/scene"
)

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(sc scene.Scene, opts ...Option) ([]byte, error) {
	svg, err := RenderSVG(sc, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
