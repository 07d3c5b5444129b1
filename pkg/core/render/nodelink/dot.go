package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/network"
	"github.com/matzehuels/heatflow/pkg/core/render"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/errors"
)

// DefaultScale is the number of inches per plot unit.
const DefaultScale = 1.5

// Options configures overview generation.
type Options struct {
	// Detailed adds corner labels to node labels.
	Detailed bool
	// Scale is inches per plot unit. Zero means DefaultScale.
	Scale float64
}

var edgeColors = map[route.Kind]string{
	route.Normal: "black",
	route.Pump:   "firebrick",
	route.Valve:  "steelblue",
}

// ToDOT converts a diagram to Graphviz DOT with every node pinned at its
// plot position. The result can be rendered with [RenderSVG], [RenderPDF] or
// [RenderPNG].
func ToDOT(d *diagram.Diagram, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=lightskyblue, color=darkslategrey, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range d.Chain().Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%s,%s!\"];\n",
			n.ID, fmtLabel(n, opts.Detailed), fmtFloat(n.X*scale), fmtFloat(n.Y*scale))
	}

	buf.WriteString("\n")
	for _, c := range d.Connections() {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.Key.StartID, c.Key.EndID, strings.Join(fmtEdgeAttrs(c), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *network.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	var parts []string
	for _, c := range []struct{ name, text string }{
		{"top-left", n.Corners.TopLeft},
		{"top-right", n.Corners.TopRight},
		{"bottom-left", n.Corners.BottomLeft},
		{"bottom-right", n.Corners.BottomRight},
	} {
		if c.text != "" {
			parts = append(parts, c.name+": "+c.text)
		}
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtEdgeAttrs(c diagram.Connection) []string {
	tail, head := "sw", "nw"
	if c.Key.Side == route.Right {
		tail, head = "se", "ne"
	}
	attrs := []string{
		fmt.Sprintf("tailport=%s", tail),
		fmt.Sprintf("headport=%s", head),
		fmt.Sprintf("color=%s", edgeColors[c.Kind]),
	}
	if c.Kind != route.Normal {
		label := c.Kind.String()
		if c.Label != "" {
			label += "\n" + c.Label
		}
		attrs = append(attrs, fmt.Sprintf("label=%q", label), "penwidth=2")
	}
	return attrs
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// keeps pinned node positions.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
