// Package nodelink renders a node chain as a Graphviz overview diagram.
//
// # Overview
//
// The overview is a compact alternative to the schematic: each node becomes a
// box at its own plot position, and each connector becomes an edge annotated
// with its kind and label. Graphviz never chooses positions here; nodes are
// pinned with pos="x,y!" and laid out by neato, so the overview matches the
// schematic's arrangement.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels also list the corner labels
//   - Scale: inches per plot unit (default 1.5)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
