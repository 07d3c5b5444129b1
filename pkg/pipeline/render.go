package pipeline

import (
	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/render/nodelink"
	"github.com/matzehuels/heatflow/pkg/core/render/sink"
	"github.com/matzehuels/heatflow/pkg/errors"
)

// Render writes d in every format of opts.Formats.
func Render(d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(d, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat writes d in a single format. JSON and DOT output do not
// depend on the visualization type.
func RenderFormat(d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch {
	case format == FormatDOT:
		data = []byte(nodelink.ToDOT(d, nodelinkOptions(opts)))
	case format == FormatJSON:
		data, err = sink.RenderJSON(d.Scene(), sinkOptions(opts)...)
	case opts.IsNodelink():
		data, err = renderNodelink(d, format, opts)
	default:
		data, err = renderSchematic(d, format, opts)
	}
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeRender
		}
		return nil, errors.Wrap(code, err, "render %s", format)
	}
	return data, nil
}

func renderSchematic(d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	sc := d.Scene()
	switch format {
	case FormatSVG:
		return sink.RenderSVG(sc, sinkOptions(opts)...)
	case FormatPNG:
		return sink.RenderPNG(sc, sinkOptions(opts)...)
	case FormatPDF:
		return sink.RenderPDF(sc, sinkOptions(opts)...)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported schematic format: %s", format)
}

func renderNodelink(d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	dot := nodelink.ToDOT(d, nodelinkOptions(opts))
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(dot)
	case FormatPNG:
		return nodelink.RenderPNG(dot, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
}

func sinkOptions(opts Options) []sink.Option {
	out := []sink.Option{
		sink.WithWidth(opts.Width),
		sink.WithMargin(opts.MarginValue()),
		sink.WithScale(opts.Scale),
	}
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	if opts.Background != "" {
		out = append(out, sink.WithBackground(opts.Background))
	}
	return out
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed}
}
