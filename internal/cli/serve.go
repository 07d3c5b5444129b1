package cli

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatflow/internal/server"
	"github.com/matzehuels/heatflow/pkg/cache"
	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/pipeline"
)

const defaultAddr = ":8080"

// redisKeyPrefix scopes artifact keys when the cache is shared.
const redisKeyPrefix = "heatflow:"

type serveOpts struct {
	addr    string
	redis   string
	noCache bool
	timeout time.Duration
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve POST /v1/render, GET /v1/sample, /healthz and /metrics.

Rendered artifacts are cached in Redis when --redis is given, otherwise in
the local file cache.`,
		Example: `  heatflow serve --addr :9090
  curl --data-binary @plant.json 'localhost:9090/v1/render?format=png' -o plant.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Serve.Addr != "" {
				opts.addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("redis") && c.Config.Serve.Redis != "" {
				opts.redis = c.Config.Serve.Redis
			}
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the shared artifact cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultRenderTimeout, "per-request render timeout")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.serveRunner(cmd, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	metrics := server.NewMetrics()
	metrics.Install()

	srv := server.New(runner,
		server.WithLogger(logger),
		server.WithMetrics(metrics),
		server.WithRenderTimeout(opts.timeout))

	printInfo("Serving on %s", opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}

func (c *CLI) serveRunner(cmd *cobra.Command, opts serveOpts) (*pipeline.Runner, error) {
	if opts.redis == "" || opts.noCache {
		return c.newRunner(opts.noCache)
	}
	rc, err := cache.NewRedisCache(cmd.Context(), &redis.Options{Addr: opts.redis})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis at %s", opts.redis)
	}
	c.Logger.Info("using redis cache", "addr", opts.redis)
	return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisKeyPrefix), c.Logger), nil
}
