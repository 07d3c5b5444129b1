package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/heatflow/pkg/observability"
)

// Metrics holds the Prometheus collectors for the service. It implements
// the observability hook interfaces so the pipeline and cache report into
// it once Install has been called.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec
	NodesPerRun   prometheus.Histogram
	Unmatched     prometheus.Counter

	CacheLookups    *prometheus.CounterVec
	CacheWriteBytes *prometheus.HistogramVec
}

// NewMetrics creates collectors on a private registry, plus the Go and
// process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "heatflow_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatflow_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "heatflow_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		}),

		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatflow_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"stage"}),
		StageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "heatflow_pipeline_stage_errors_total",
			Help: "Pipeline stage failures",
		}, []string{"stage"}),
		NodesPerRun: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatflow_definition_nodes",
			Help:    "Nodes per parsed definition",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50},
		}),
		Unmatched: f.NewCounter(prometheus.CounterOpts{
			Name: "heatflow_unmatched_overrides_total",
			Help: "Connection overrides that matched no adjacent pair",
		}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "heatflow_cache_lookups_total",
			Help: "Artifact cache lookups by format and result",
		}, []string{"format", "result"}),
		CacheWriteBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatflow_cache_write_bytes",
			Help:    "Size of artifacts written to the cache",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"format"}),
	}
}

// Install registers m as the process-wide pipeline, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) stage(name string, d time.Duration, err error) {
	m.StageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.StageErrors.WithLabelValues(name).Inc()
	}
}

// OnParseStart implements observability.PipelineHooks.
func (m *Metrics) OnParseStart(context.Context, string) {}

// OnParseComplete implements observability.PipelineHooks.
func (m *Metrics) OnParseComplete(_ context.Context, _ string, nodes int, d time.Duration, err error) {
	m.stage("parse", d, err)
	if err == nil {
		m.NodesPerRun.Observe(float64(nodes))
	}
}

// OnBuildStart implements observability.PipelineHooks.
func (m *Metrics) OnBuildStart(context.Context, int) {}

// OnBuildComplete implements observability.PipelineHooks.
func (m *Metrics) OnBuildComplete(_ context.Context, _, unmatched int, d time.Duration, err error) {
	m.stage("build", d, err)
	m.Unmatched.Add(float64(unmatched))
}

// OnRenderStart implements observability.PipelineHooks.
func (m *Metrics) OnRenderStart(context.Context, string, []string) {}

// OnRenderComplete implements observability.PipelineHooks.
func (m *Metrics) OnRenderComplete(_ context.Context, _ string, _ []string, d time.Duration, err error) {
	m.stage("render", d, err)
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, format string) {
	m.CacheLookups.WithLabelValues(format, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, format string) {
	m.CacheLookups.WithLabelValues(format, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, format string, size int) {
	m.CacheWriteBytes.WithLabelValues(format).Observe(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPRequestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.HTTPRequestsInFlight.Dec()
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
