package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/heatflow/pkg/core/scene"
)

const arrowMarker = `    <marker id="arrowhead" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="4" markerHeight="4" orient="auto-start-reverse">
      <path d="M0,0 L10,5 L0,10 z" fill="context-stroke"/>
    </marker>`

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(sc scene.Scene, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	f, err := newFrame(sc, c)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		f.W, f.H, f.W, f.H)
	if c.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(c.title))
	}
	fmt.Fprintf(&buf, "  <defs>\n%s\n  </defs>\n", arrowMarker)
	if c.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", f.W, f.H, svgColor(c.background))
	}

	for _, s := range sc.Shapes {
		renderShape(&buf, f, s)
	}
	for _, a := range sc.Annotations {
		renderAnnotation(&buf, f, a)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderShape(buf *bytes.Buffer, f frame, s scene.Shape) {
	stroke := fmt.Sprintf(`stroke="%s" stroke-width="%.1f"`, svgColor(s.Stroke.Color), strokeWidth(s.Stroke.Width))
	switch s.Kind {
	case scene.KindRect:
		x0, y0 := f.px(s.From)
		x1, y1 := f.px(s.To)
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" %s/>`+"\n",
			min(x0, x1), min(y0, y1), abs(x1-x0), abs(y1-y0), svgColor(s.Fill), stroke)
	case scene.KindLine:
		x0, y0 := f.px(s.From)
		x1, y1 := f.px(s.To)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`+"\n", x0, y0, x1, y1, stroke)
	case scene.KindPath:
		if len(s.Points) == 0 {
			return
		}
		fmt.Fprintf(buf, `  <path d="%s" fill="%s" %s/>`+"\n", pixelPath(f, s), svgColor(s.Fill), stroke)
	}
}

func pixelPath(f frame, s scene.Shape) string {
	var b strings.Builder
	for i, p := range s.Points {
		x, y := f.px(p)
		if i == 0 {
			fmt.Fprintf(&b, "M %.2f,%.2f", x, y)
		} else {
			fmt.Fprintf(&b, " L %.2f,%.2f", x, y)
		}
	}
	b.WriteString(" Z")
	return b.String()
}

func renderAnnotation(buf *bytes.Buffer, f frame, a scene.Annotation) {
	x, y := f.px(a.At)
	if a.Arrow != nil {
		tx, ty := f.px(a.Arrow.Tail)
		fmt.Fprintf(buf, `  <line class="arrow" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" marker-end="url(#arrowhead)"/>`+"\n",
			tx, ty, x, y, svgColor(a.Arrow.Color), strokeWidth(a.Arrow.Width))
	}
	if a.Text == "" {
		return
	}
	anchor := "middle"
	if a.Anchor == scene.AnchorLeft {
		anchor = "start"
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="middle" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
		x, y, anchor, fontSize(a.Font.Size), svgColor(textColor(a.Font.Color)), escapeXML(a.Text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

func fontSize(s float64) float64 {
	if s <= 0 {
		return 12
	}
	return s
}

func textColor(c string) string {
	if c == "" {
		return "black"
	}
	return c
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
