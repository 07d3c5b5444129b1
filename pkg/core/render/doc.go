// Package render turns assembled diagrams into output artifacts.
//
// # Overview
//
// Rendering is split into two subpackages:
//
//   - [sink]: the schematic itself as SVG, PNG, PDF or a JSON descriptor
//   - [nodelink]: a Graphviz overview of the node chain with pinned positions
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). The schematic PDF sink uses it; the
// schematic PNG sink rasterizes natively and does not need it.
//
//	svg := sink.RenderSVG(d.Scene())
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/heatflow/pkg/core/render/sink
// [nodelink]: github.com/matzehuels/heatflow/pkg/core/render/nodelink
package render
