package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatflow/pkg/cache"
	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/observability"
)

// Runner executes the pipeline with artifact caching.
//
// A Runner holds no per-run state, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses DefaultKeyer, a nil cache
// disables caching and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs parse → build → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	hooks := observability.Pipeline()

	data, format, err := opts.readDefinition()
	if err != nil {
		return nil, err
	}

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, string(format))
	def, err := Parse(data, format)
	parseTime := time.Since(parseStart)
	nodeCount := 0
	if def != nil {
		nodeCount = len(def.Nodes)
	}
	hooks.OnParseComplete(ctx, string(format), nodeCount, parseTime, err)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Definition:     def,
		DefinitionHash: cache.Hash(data),
		Artifacts:      make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.ParseTime = parseTime
	result.Stats.NodeCount = nodeCount
	logger.Debug("parsed definition", "format", format, "nodes", nodeCount, "duration", parseTime)

	// Stage 2: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, nodeCount)
	d, unmatched, err := Build(def, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, result.Stats.BuildTime, err)
		return nil, err
	}
	result.Diagram = d
	result.Unmatched = unmatched
	result.Stats.ConnectionCount = len(d.Connections())
	hooks.OnBuildComplete(ctx, result.Stats.ConnectionCount, len(unmatched), result.Stats.BuildTime, nil)

	for _, k := range unmatched {
		logger.Warn("connection override matches no adjacent pair",
			"start", k.StartID, "end", k.EndID, "side", k.Side)
	}
	logger.Info("built diagram",
		"nodes", nodeCount,
		"connections", result.Stats.ConnectionCount,
		"duration", result.Stats.BuildTime)

	if opts.Title == "" {
		opts.Title = def.Title
	}

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	err = r.render(ctx, result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	logger.Info("rendered outputs",
		"viz", opts.VizType,
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// render fills result.Artifacts, serving each format from the cache when
// possible and storing the ones it had to render.
func (r *Runner) render(ctx context.Context, result *Result, opts Options) error {
	cacheHooks := observability.Cache()

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeTimeout, err, "render %s", format)
		}
		key := r.Keyer.ArtifactKey(result.DefinitionHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if hit {
				cacheHooks.OnCacheHit(ctx, format)
				result.Artifacts[format] = data
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}

		data, err := RenderFormat(result.Diagram, format, opts)
		if err != nil {
			return err
		}
		result.Artifacts[format] = data

		err = cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		})
		if err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}

	result.CacheInfo.RenderHit = len(result.CacheInfo.Hits) == len(opts.Formats)
	return nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
