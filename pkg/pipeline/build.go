package pipeline

import (
	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/io"
)

// Parse decodes and validates a definition.
func Parse(data []byte, f io.Format) (*io.Definition, error) {
	return io.Parse(data, f)
}

// Build assembles the diagram for def. Options override the definition's
// own policy; overrides naming no adjacent pair are returned, not failed.
func Build(def *io.Definition, opts Options) (*diagram.Diagram, []diagram.ConnKey, error) {
	return def.Build(diagramOptions(opts)...)
}

func diagramOptions(opts Options) []diagram.Option {
	var out []diagram.Option
	if opts.NoCorners {
		out = append(out, diagram.WithCornerLabels(false))
	}
	if opts.Policy != "" {
		// Validate has already rejected unknown names.
		if p, err := diagram.ParsePolicy(opts.Policy); err == nil {
			out = append(out, diagram.WithPolicy(p))
		}
	}
	if opts.Seam > 0 {
		out = append(out, diagram.WithRouteOptions(route.WithSeam(opts.Seam)))
	}
	return out
}
