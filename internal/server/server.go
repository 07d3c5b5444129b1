// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /v1/render   render the definition in the body
//	GET  /v1/sample   the starter definition, in ?format=json|toml|yaml
//	GET  /healthz     liveness
//	GET  /metrics     Prometheus metrics
//
// The request body of /v1/render is a definition in JSON, TOML or YAML,
// chosen by Content-Type. Query parameters mirror the render command's
// flags: format, type, width, margin, scale, policy, no_corners, seam,
// title, background, detailed and refresh.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/heatflow/pkg/buildinfo"
	"github.com/matzehuels/heatflow/pkg/errors"
	hio "github.com/matzehuels/heatflow/pkg/io"
	"github.com/matzehuels/heatflow/pkg/pipeline"
)

const (
	// DefaultRenderTimeout bounds a single render request.
	DefaultRenderTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Response headers set by /v1/render.
const (
	HeaderCache     = "X-Cache"
	HeaderUnmatched = "X-Unmatched-Overrides"
)

// Server is the HTTP front end of a pipeline.Runner.
type Server struct {
	runner        *pipeline.Runner
	metrics       *Metrics
	logger        *log.Logger
	renderTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics serves m on /metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithRenderTimeout bounds each render. Non-positive values are ignored.
func WithRenderTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.renderTimeout = d
		}
	}
}

// New creates a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:        runner,
		logger:        log.Default(),
		renderTimeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(s.recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", buildinfo.UserAgent())
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/sample", s.handleSample)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, http.StatusMethodNotAllowed,
			errors.New(errors.ErrCodeInvalidInput, "method %s not allowed on %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.renderTimeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	f := hio.Format(r.URL.Query().Get("format"))
	switch f {
	case "":
		f = hio.FormatJSON
	case hio.FormatJSON, hio.FormatTOML, hio.FormatYAML:
	default:
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q (want json, toml or yaml)", f))
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	if err := hio.Encode(w, hio.Sample(), f); err != nil {
		s.logger.Error("encode sample", "error", err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts.DefinitionFormat, err = hio.FormatFromContentType(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, pipeline.MaxDefinitionSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeErrorStatus(w, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "definition too large (max %d bytes)", pipeline.MaxDefinitionSize))
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(body) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "empty request body"))
		return
	}
	opts.Definition = body

	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, errors.ErrCodeTimeout) {
			err = errors.Wrap(errors.ErrCodeTimeout, err, "render timed out")
		}
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	data := result.Artifacts[format]
	cacheStatus := "MISS"
	if result.CacheInfo.RenderHit {
		cacheStatus = "HIT"
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set(HeaderCache, cacheStatus)
	h.Set(HeaderUnmatched, strconv.Itoa(len(result.Unmatched)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderOptions maps query parameters to pipeline options. Exactly one
// output format is produced per request.
func renderOptions(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}
	opts.VizType = q.Get("type")
	opts.Policy = q.Get("policy")
	opts.Title = q.Get("title")
	opts.Background = q.Get("background")

	if opts.Width, err = intParam(q, "width"); err != nil {
		return opts, err
	}
	if q.Has("margin") {
		m, err := floatParam(q, "margin")
		if err != nil {
			return opts, err
		}
		opts.Margin = &m
	}
	if opts.Scale, err = floatParam(q, "scale"); err != nil {
		return opts, err
	}
	if opts.Seam, err = floatParam(q, "seam"); err != nil {
		return opts, err
	}
	if opts.NoCorners, err = boolParam(q, "no_corners"); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q, "detailed"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q, "refresh"); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", name, v)
	}
	return n, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative number, got %q", name, v)
	}
	return f, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}
