package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/heatflow/pkg/cache"
	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/render"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/io"
	"github.com/matzehuels/heatflow/pkg/observability"
)

func sampleTOML(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, io.Encode(&buf, io.Sample(), io.FormatTOML))
	return buf.Bytes()
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	return NewRunner(c, nil, nil)
}

func TestExecuteSchematic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Definition:       sampleTOML(t),
		DefinitionFormat: io.FormatTOML,
		Formats:          []string{FormatSVG, FormatJSON, FormatDOT, FormatPNG},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stats.NodeCount)
	assert.Equal(t, 4, res.Stats.ConnectionCount)
	assert.Empty(t, res.Unmatched)
	assert.Len(t, res.DefinitionHash, 64)

	svg := string(res.Artifacts[FormatSVG])
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "COP: 3.04")
	assert.Contains(t, svg, "<title>TropiCHeat</title>")

	assert.Contains(t, string(res.Artifacts[FormatJSON]), `"shapes"`)
	assert.Contains(t, string(res.Artifacts[FormatDOT]), `"A" -> "B"`)
	assert.True(t, bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")))

	c, ok := res.Diagram.Connection(diagram.ConnKey{StartID: "A", EndID: "B", Side: route.Left})
	require.True(t, ok)
	assert.Equal(t, route.Valve, c.Kind)
}

func TestExecuteFromPath(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Path: "../io/testdata/preset.yaml"})
	require.NoError(t, err)

	assert.Equal(t, []diagram.ConnKey{{StartID: "A", EndID: "E", Side: route.Left}}, res.Unmatched)
	assert.Equal(t, 8, res.Stats.ConnectionCount)

	_, err = r.Execute(context.Background(), Options{Path: "../io/testdata/missing.yaml"})
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestExecutePolicyOverride(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Path: "../io/testdata/preset.yaml", Policy: "normal"})
	require.NoError(t, err)

	c, _ := res.Diagram.Connection(diagram.ConnKey{StartID: "B", EndID: "C", Side: route.Left})
	assert.Equal(t, route.Normal, c.Kind)
}

func TestExecuteNoCorners(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	data := sampleTOML(t)

	with, err := r.Execute(context.Background(), Options{Definition: data, DefinitionFormat: io.FormatTOML})
	require.NoError(t, err)
	without, err := r.Execute(context.Background(), Options{Definition: data, DefinitionFormat: io.FormatTOML, NoCorners: true})
	require.NoError(t, err)

	assert.Contains(t, string(with.Artifacts[FormatSVG]), "45 °C")
	assert.NotContains(t, string(without.Artifacts[FormatSVG]), "°C")
}

func TestExecuteInvalidDefinition(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Definition:       []byte(`{"nodes":[{"id":"A","label":"x"},{"id":"A","label":"y"}]}`),
		DefinitionFormat: io.FormatJSON,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDefinition))
}

func TestExecuteCaching(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()
	opts := Options{
		Definition:       sampleTOML(t),
		DefinitionFormat: io.FormatTOML,
		Formats:          []string{FormatSVG, FormatJSON},
	}

	first, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.RenderHit)
	assert.Empty(t, first.CacheInfo.Hits)

	second, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts, second.Artifacts)

	wider := opts
	wider.Width = 1200
	third, err := r.Execute(ctx, wider)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.RenderHit)

	refresh := opts
	refresh.Refresh = true
	fourth, err := r.Execute(ctx, refresh)
	require.NoError(t, err)
	assert.Empty(t, fourth.CacheInfo.Hits)
}

func TestExecutePartialCacheHit(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()
	base := Options{Definition: sampleTOML(t), DefinitionFormat: io.FormatTOML}

	_, err := r.Execute(ctx, base)
	require.NoError(t, err)

	both := base
	both.Formats = []string{FormatSVG, FormatDOT}
	res, err := r.Execute(ctx, both)
	require.NoError(t, err)
	assert.Equal(t, []string{FormatSVG}, res.CacheInfo.Hits)
	assert.False(t, res.CacheInfo.RenderHit)
	assert.NotEmpty(t, res.Artifacts[FormatDOT])
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(ctx, Options{Definition: sampleTOML(t), DefinitionFormat: io.FormatTOML})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTimeout))
}

func TestExecuteNodelink(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Definition:       sampleTOML(t),
		DefinitionFormat: io.FormatTOML,
		VizType:          VizNodelink,
		Formats:          []string{FormatDOT, FormatSVG},
		Detailed:         true,
	})
	require.NoError(t, err)

	dot := string(res.Artifacts[FormatDOT])
	assert.Contains(t, dot, "layout=neato")
	assert.Contains(t, dot, "45 °C")
	assert.Contains(t, string(res.Artifacts[FormatSVG]), "<svg")
}

func TestExecutePDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Definition:       sampleTOML(t),
		DefinitionFormat: io.FormatTOML,
		Formats:          []string{FormatPDF},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF")))
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	parsed, built, rendered int
	lastErr                 error
}

func (h *recordingHooks) OnParseComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.parsed++
	h.lastErr = err
}

func (h *recordingHooks) OnBuildComplete(context.Context, int, int, time.Duration, error) {
	h.built++
}

func (h *recordingHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
	h.rendered++
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Definition: sampleTOML(t), DefinitionFormat: io.FormatTOML})
	require.NoError(t, err)
	assert.Equal(t, 1, hooks.parsed)
	assert.Equal(t, 1, hooks.built)
	assert.Equal(t, 1, hooks.rendered)

	_, err = r.Execute(context.Background(), Options{Definition: []byte("nodes = ["), DefinitionFormat: io.FormatTOML})
	require.Error(t, err)
	assert.Equal(t, 2, hooks.parsed)
	assert.Error(t, hooks.lastErr)
	assert.Equal(t, 1, hooks.built)
}
