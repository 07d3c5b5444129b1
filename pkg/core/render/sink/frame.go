package sink

import (
	"math"

	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/core/scene"
	"github.com/matzehuels/heatflow/pkg/errors"
)

const (
	// DefaultWidth is the canvas width in pixels.
	DefaultWidth = 800
	// DefaultMargin is the padding fraction applied to each axis.
	DefaultMargin = 0.1
	// DefaultScale is the PNG supersampling factor.
	DefaultScale = 2.0
	// MaxScale bounds the PNG supersampling factor.
	MaxScale = 8.0
	// MaxRasterPixels bounds the PNG canvas area after scaling.
	MaxRasterPixels = 100_000_000
)

// Option configures a sink.
type Option func(*config)

type config struct {
	width      int
	margin     float64
	title      string
	background string
	scale      float64
}

// WithWidth sets the canvas width in pixels.
func WithWidth(px int) Option { return func(c *config) { c.width = px } }

// WithMargin sets the padding fraction applied to each axis.
func WithMargin(m float64) Option { return func(c *config) { c.margin = m } }

// WithTitle embeds a title in formats that carry one.
func WithTitle(t string) Option { return func(c *config) { c.title = t } }

// WithBackground fills the canvas before drawing. Empty means transparent
// for SVG and white for PNG.
func WithBackground(color string) Option { return func(c *config) { c.background = color } }

// WithScale sets the PNG resolution multiplier.
func WithScale(s float64) Option { return func(c *config) { c.scale = s } }

func newConfig(opts []Option) config {
	c := config{width: DefaultWidth, margin: DefaultMargin, scale: DefaultScale}
	for _, opt := range opts {
		opt(&c)
	}
	if c.width <= 0 {
		c.width = DefaultWidth
	}
	if c.margin < 0 {
		c.margin = DefaultMargin
	}
	if c.scale <= 0 {
		c.scale = DefaultScale
	}
	return c
}

// frame maps plot coordinates onto a pixel canvas.
type frame struct {
	W, H   int
	bounds geom.Bounds
	sx, sy float64
}

func newFrame(sc scene.Scene, c config) (frame, error) {
	if c.scale > MaxScale {
		return frame{}, errors.New(errors.ErrCodeInvalidInput, "scale %g exceeds maximum %g", c.scale, MaxScale)
	}
	b := sc.Bounds()
	if b.Empty() {
		b.Include(geom.Point{})
	}
	w, h, err := scene.ExportSize(b, c.width, c.margin)
	if err != nil {
		return frame{}, err
	}
	p := b.Pad(c.margin)
	return frame{
		W:      w,
		H:      h,
		bounds: p,
		sx:     float64(w) / p.Width(),
		sy:     float64(h) / p.Height(),
	}, nil
}

// raster returns the PNG canvas size for scale, refusing canvases larger
// than MaxRasterPixels.
func (f frame) raster(scale float64) (int, int, error) {
	w := math.Round(float64(f.W) * scale)
	h := math.Round(float64(f.H) * scale)
	if w*h > MaxRasterPixels {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"PNG canvas %.0fx%.0f exceeds %d pixels", w, h, MaxRasterPixels)
	}
	return int(w), int(h), nil
}

// px returns the canvas position of p.
func (f frame) px(p geom.Point) (float64, float64) {
	return (p.X - f.bounds.MinX) * f.sx, (f.bounds.MaxY - p.Y) * f.sy
}
