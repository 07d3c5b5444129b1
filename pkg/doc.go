// Package pkg provides the core libraries for heatflow schematics.
//
// # Overview
//
// heatflow draws heat-pump process flows: a vertical chain of component
// boxes joined by paired pipes (one left, one right) with optional pump
// and valve glyphs and performance labels. The pkg directory is organized
// into three areas:
//
//  1. [core] - Domain logic (geometry, nodes, routing, glyphs, scenes, rendering)
//  2. [io] and [pipeline] - Definition files and orchestration (parse → build → render)
//  3. [cache], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	TOML / YAML / JSON definition
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [core/diagram] package (chain + connections + policy)
//	         ↓
//	    [core/scene] package (flat list of drawable artists)
//	         ↓
//	    [core/render/sink] or [core/render/nodelink]
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	def, _ := io.Load("plant.toml")
//	d, unmatched, _ := def.Build()
//	for _, k := range unmatched {
//	    log.Printf("override %s→%s matched nothing", k.StartID, k.EndID)
//	}
//	svg, _ := sink.RenderSVG(d.Scene(), sink.WithWidth(1200))
//
// Or, with caching and hooks, through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, pipeline.Options{Path: "plant.toml", Formats: []string{"svg", "png"}})
//
// # Main Packages
//
// [core/geom] - Points, bounds and the small vector helpers routing needs.
//
// [core/network] - Nodes, their four anchors and the ordered chain.
//
// [core/route] - Connector geometry between adjacent nodes: straight,
// L-shaped and offset routes, the glyph point and the arrow.
//
// [core/glyph] - Pump (circle) and valve (bow-tie) primitives.
//
// [core/diagram] - Assembles the chain and its connections, applies the
// connection-kind policy and per-connection overrides.
//
// [core/render] - Scene sinks (SVG, PNG, PDF, JSON) and the graphviz
// overview.
//
// [cache] - Artifact caches: file, Redis and null.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/geom
// [core/network]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/network
// [core/route]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/route
// [core/glyph]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/glyph
// [core/diagram]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/diagram
// [core/scene]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/scene
// [core/render]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/render
// [core/render/sink]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/render/sink
// [core/render/nodelink]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/core/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/heatflow/pkg/buildinfo
package pkg
